// SPDX-License-Identifier: MIT
package arbor

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Format renders the tree with box-drawing branches, one node per line. An
// empty tree renders as an empty string.
func Format[T any](t *Tree[T]) string {
	root, ok := t.RootID()
	if !ok {
		return ""
	}

	type frame struct {
		id     NodeID
		branch treeprint.Tree
	}

	printer := treeprint.NewWithRoot(fmt.Sprint(t.arena.get(root).value))

	stack := []frame{{id: root, branch: printer}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Branches are added for a whole sibling chain at once so the
		// printer sees the children in order regardless of pop order.
		for child := t.arena.get(f.id).firstChild; !child.IsNone(); {
			n := t.arena.get(child)
			stack = append(stack, frame{
				id:     child,
				branch: f.branch.AddBranch(fmt.Sprint(n.value)),
			})
			child = n.nextSibling
		}
	}

	return printer.String()
}

// String implements fmt.Stringer for debug rendering.
func (t *Tree[T]) String() string { return Format(t) }
