// SPDX-License-Identifier: MIT
package arbor

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/ashpool/arbor/lexer"
)

// Serialize transforms a [Tree] into its compact text form: each node is
// written as its value, then its children in order, then the end marker,
// with values separated by the splitter. "a,b),c))" is the tree a→(b c).
//
// Unlike map-backed hierarchies, sibling order is intrinsic here, so the
// output is deterministic without sorting.
func Serialize[T any](ctx context.Context, t *Tree[T], opts *lexer.Opts) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	opts.Validate()

	root, ok := t.RootID()
	if !ok {
		return "", ErrEmptyTree
	}

	type frame struct {
		id  NodeID
		end bool
	}

	var buffer strings.Builder

	stack := []frame{{id: root}}
	first := true
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.end {
			buffer.WriteRune(opts.EndMarker)
			continue
		}

		n, err := t.node(f.id)
		if err != nil {
			return "", err
		}

		// The splitter precedes values only, never end markers.
		if !first {
			buffer.WriteRune(opts.Splitter)
		}
		first = false
		buffer.WriteString(fmt.Sprint(n.value))

		stack = append(stack, frame{id: f.id, end: true})
		for child := n.lastChild; !child.IsNone(); {
			stack = append(stack, frame{id: child})
			child = t.arena.get(child).prevSibling
		}
	}

	return buffer.String(), nil
}
