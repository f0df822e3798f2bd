// SPDX-License-Identifier: MIT

// Package lexer tokenizes the compact text serialization of a tree: node
// values separated by a splitter rune, a node's children closed off by an
// end-marker rune, e.g. "a,b),c))".
package lexer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

type (
	// stateFn is the next lexing state to execute; a nil stateFn halts the
	// scan.
	stateFn func(context.Context) stateFn

	// matchFn validates rune identities.
	matchFn func(rune) bool

	// Lexer captures serialized node values & structure markers from a
	// rune source, emitting them as Items over a channel.
	Lexer struct {
		Debug bool

		endMarker rune
		splitter  rune
		logger    logrus.FieldLogger

		// c is a channel for communicating lexed Items.
		c chan Item

		// source is the input source.
		source io.RuneReader

		// buffer is a slice of runes being lexed; bufferIndex is the
		// current position. When the index exceeds the buffer's length,
		// the buffer is populated from the source.
		buffer      []rune
		bufferIndex int

		valueCounter int
		endCounter   int
	}

	// Option defines the Lexer functional option type.
	Option func(*Lexer)
)

const (
	peekLimit     = 512
	defBufferSize = 10
)

// Lexing errors.
var (
	ErrInvalidPeekLength   = fmt.Errorf("invalid peek length")
	ErrInvalidBackupAmount = fmt.Errorf("invalid backup amount")
	ErrUnknownTokens       = fmt.Errorf("unknown tokens")
)

// Array lookups are cheaper than rune comparison chains here; both
// functions stay inlinable.
var (
	whitespace = [256]bool{
		' ':  true,
		'\t': true,
		'\r': true,
		'\n': true,
	}

	valueSymbols = [256]bool{
		'_': true,
		'-': true,
		'.': true,
	}
)

// New creates a scanner for a serialized tree.
func New(options ...Option) *Lexer {
	l := &Lexer{
		endMarker: defEndMarker,
		splitter:  defSplitter,
		logger:    logrus.New(),

		c: make(chan Item, defBufferSize),

		buffer: make([]rune, 0, defBufferSize),
		source: strings.NewReader(""),
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.Debug = debug } }

// WithEndMarker configures the endMarker option.
func WithEndMarker(r rune) Option { return func(l *Lexer) { l.endMarker = r } }

// WithSplitter configures the splitter option.
func WithSplitter(r rune) Option { return func(l *Lexer) { l.splitter = r } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// WithSource configures the source option.
func WithSource(source io.RuneReader) Option { return func(l *Lexer) { l.source = source } }

// EndMarker obtains the configured end marker.
func (l *Lexer) EndMarker() rune { return l.endMarker }

// Splitter obtains the configured value splitter.
func (l *Lexer) Splitter() rune { return l.splitter }

// ValueCounter obtains the number of values emitted so far.
func (l *Lexer) ValueCounter() int { return l.valueCounter }

// EndCounter obtains the number of end markers emitted so far.
func (l *Lexer) EndCounter() int { return l.endCounter }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Lex lexes the input by executing state functions, closing the Item
// channel once the input is exhausted.
func (l *Lexer) Lex(ctx context.Context) {
	select {
	case <-ctx.Done():
		l.EmitError(ctx.Err())
	default:
		for state := l.lexWhitespace; state != nil; {
			state = state(ctx)
		}
	}

	close(l.c)
}

// lexWhitespace discards whitespace, then dispatches on the next rune.
func (l *Lexer) lexWhitespace(ctx context.Context) stateFn {
	if err := l.acceptWhile(isWhitespace); err != nil {
		l.EmitError(err)
		return nil
	}
	// Ignore white spaces, discard instead of emit.
	l.discard()

	next := l.next()
	switch {
	case next == emptyRune:
		return nil
	case next == l.endMarker:
		l.endCounter++
		l.emit(ItemEndMarker)

		return l.lexWhitespace(ctx)
	case next == l.splitter:
		l.emit(ItemSplitter)

		return l.lexWhitespace(ctx)
	case isValue(next):
		return l.lexValue(ctx)
	default:
		if err := l.backup(); err != nil {
			l.EmitError(err)
			return nil
		}

		nextRunes, err := l.peekN(peekLimit)
		if err != nil {
			l.EmitError(err)
			return nil
		}

		l.EmitError(fmt.Errorf("%w: %s", ErrUnknownTokens, string(nextRunes)))

		return nil
	}
}

// lexValue consumes a serialized node value.
func (l *Lexer) lexValue(ctx context.Context) stateFn {
	if err := l.acceptWhile(isValue); err != nil {
		l.EmitError(err)
		return nil
	}

	l.valueCounter++
	l.emit(ItemValue)

	return l.lexWhitespace(ctx)
}

// next returns the next rune in the input.
func (l *Lexer) next() (r rune) {
	if l.bufferIndex >= len(l.buffer) {
		// Request data from the source.
		if l.fill(0) < 1 {
			r = emptyRune
			return
		}
	}

	r = l.buffer[l.bufferIndex]
	l.bufferIndex++

	return
}

// peekN returns the next N runes without updating the index.
//
// This operation will return a shorter slice if the end of the source is
// reached.
func (l *Lexer) peekN(n int) (list []rune, err error) {
	if n < 1 {
		err = fmt.Errorf("%w: %d", ErrInvalidPeekLength, n)
		return
	}

	limit := l.bufferIndex + n
	if limit > len(l.buffer) {
		// Request data from the source, then clamp to what is available.
		l.fill(0)
		if limit > len(l.buffer) {
			limit = len(l.buffer)
		}
	}

	if limit == l.bufferIndex {
		err = io.EOF
		return
	}

	list = l.buffer[l.bufferIndex:limit]

	return
}

// backup steps back one rune.
func (l *Lexer) backup() error { return l.backupN(1) }

// backupN steps back N runes.
func (l *Lexer) backupN(n int) (err error) {
	if l.bufferIndex < n {
		err = fmt.Errorf("%w: amount %d index: %d", ErrInvalidBackupAmount, n, l.bufferIndex)
		return
	}
	l.bufferIndex -= n

	return
}

// discard the buffer content before the current buffer index.
func (l *Lexer) discard() {
	l.buffer = l.buffer[l.bufferIndex:]
	l.bufferIndex = 0
}

// fill sources runes from the source reader into the buffer.
func (l *Lexer) fill(amount int) (sourced int) {
	if amount < defBufferSize {
		amount = defBufferSize
	}

	buffer := make([]rune, amount)
	for ; sourced < amount; sourced++ {
		r, _, err := l.source.ReadRune()
		if err != nil {
			// Error can only be io.EOF.
			break
		}
		buffer[sourced] = r
	}

	l.buffer = append(l.buffer, buffer[:sourced]...)

	return
}

// acceptWhile consumes runes while the condition holds.
func (l *Lexer) acceptWhile(fn matchFn) (err error) {
	for {
		r := l.next()
		if r == emptyRune {
			// End of input.
			return io.EOF
		}

		// End of the current token type.
		if !fn(r) {
			return l.backup()
		}
	}
}

// emit sends an Item over the communication channel.
func (l *Lexer) emit(t ItemID) {
	runes := l.buffer[:l.bufferIndex]

	bufSize := 0
	for _, r := range runes {
		bufSize += utf8.RuneLen(r)
	}
	buf := make([]byte, bufSize)

	index := 0
	for _, r := range runes {
		index += utf8.EncodeRune(buf[index:], r)
	}

	if l.Debug {
		l.logger.Debug("lexer emit: ", string(buf))
	}

	l.c <- Item{
		ID:  t,
		Val: buf,
	}
	l.discard()
}

// EmitEOF sends an ItemEOF Item over the communication channel.
func (l *Lexer) EmitEOF() {
	l.c <- Item{ID: ItemEOF}
}

// EmitError sends an error over the Lexer's channel.
//
// This terminates the scan with an error, or an ItemEOF for io.EOF.
func (l *Lexer) EmitError(err error) {
	if err == io.EOF {
		l.EmitEOF()
		return
	}

	l.c <- Item{
		ID:  ItemError,
		Err: err,
	}
}

// Item returns a lexed Item from the input; false once the input is
// exhausted.
func (l *Lexer) Item() (i Item, ok bool) {
	i, ok = <-l.c
	return
}

// isWhitespace returns true for whitespace, newline & carriage return.
func isWhitespace(r rune) bool { return r < 256 && whitespace[r] }

// isValue returns true for a rune valid inside a serialized value.
func isValue(r rune) bool {
	return (r < 256 && valueSymbols[r]) || unicode.IsLetter(r) || unicode.IsDigit(r)
}
