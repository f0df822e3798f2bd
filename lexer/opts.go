// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

// Opts defines options for the serialization format shared by the Lexer &
// the tree codec.
type Opts struct {
	Debug     bool
	EndMarker rune
	Splitter  rune
	Logger    logrus.FieldLogger
}

const (
	// defEndMarker is the rune closing a node's list of children.
	defEndMarker = ')'

	// defSplitter is the rune separating serialized node values.
	defSplitter = ','

	emptyRune rune = 0
)

// NewOpts configures the lexer's Opts.
func NewOpts() *Opts {
	return &Opts{
		EndMarker: defEndMarker,
		Splitter:  defSplitter,
		Logger:    logrus.New(),
	}
}

// Validate populates missing Opts entries with defaults.
func (o *Opts) Validate() {
	if o.EndMarker == emptyRune {
		o.EndMarker = defEndMarker
	}
	if o.Splitter == emptyRune {
		o.Splitter = defSplitter
	}
	if o.Logger == nil {
		o.Logger = logrus.New()
	}
}
