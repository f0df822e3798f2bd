// SPDX-License-Identifier: MIT
package arbor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gitlab.com/ashpool/arbor/lexer"
)

// Deserialization errors.
var (
	ErrInvalidSerialization = errors.New("invalid tree serialization")
	ErrExcessiveValues      = errors.New("the deserialization source has excessive values")
	ErrExcessiveEndMarkers  = errors.New("the deserialization source has excessive end markers")
)

// Deserialize transforms a serialized tree into a [Tree].
//
// The lexed value/end-marker stream drives a parent stack: a value appends a
// child under the stack's top & pushes it, an end marker pops. Structural
// imbalance is reported after the build through the lexer's counters.
func Deserialize[T any](ctx context.Context, lexOptions []lexer.Option, options ...Option) (*Tree[T], error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	l := lexer.New(lexOptions...)
	go l.Lex(ctx)

	var (
		t     *Tree[T]
		stack []NodeID
	)

scan:
	for {
		item, proceed := l.Item()
		if !proceed {
			break
		}

		switch item.ID {
		case lexer.ItemEOF:
			break scan
		case lexer.ItemError:
			return nil, fmt.Errorf("%w: %v", ErrInvalidSerialization, item.Err)
		case lexer.ItemSplitter:
			continue
		case lexer.ItemEndMarker:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		case lexer.ItemValue:
			value, err := decodeValue[T](item.Val)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidSerialization, err)
			}

			if t == nil {
				if t, err = New(value, options...); err != nil {
					return nil, err
				}

				rootID, _ := t.RootID()
				stack = append(stack, rootID)
				continue
			}

			if len(stack) < 1 {
				return nil, fmt.Errorf("%w: %v", ErrInvalidSerialization, ErrMultipleRootNodes)
			}

			parent, err := t.GetMut(stack[len(stack)-1])
			if err != nil {
				return nil, err
			}

			child, err := parent.Append(value)
			if err != nil {
				return nil, err
			}
			stack = append(stack, child.ID())
		}
	}

	if t == nil {
		return nil, fmt.Errorf("%w: empty source", ErrInvalidSerialization)
	}

	diff := l.ValueCounter() - l.EndCounter()
	switch {
	case diff > 0:
		return t, fmt.Errorf("%w: +%d", ErrExcessiveValues, diff)
	case diff < 0:
		return t, fmt.Errorf("%w: %s +%d", ErrExcessiveEndMarkers, string(l.EndMarker()), -diff)
	}

	if t.cfg.Debug {
		t.cfg.Logger.Debugf("deserialized %d node(s)", t.NodeCount())
	}

	return t, nil
}

// decodeValue unmarshals a lexed value into the payload type.
//
// Bare words are valid serialize output for string payloads but not valid
// JSON, so a failed decode retries with the raw bytes quoted.
func decodeValue[T any](raw []byte) (T, error) {
	var dest T
	if err := json.Unmarshal(raw, &dest); err == nil {
		return dest, nil
	}

	quoted, err := json.Marshal(string(raw))
	if err != nil {
		return dest, err
	}

	err = json.Unmarshal(quoted, &dest)

	return dest, err
}
