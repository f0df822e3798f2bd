// SPDX-License-Identifier: MIT
package arbor

// Pull-based traversal cursors over the link fields. Each accessor call
// yields an independent cursor, so traversals are restartable & never share
// state. Mutating the tree mid-traversal invalidates the cursor's remaining
// sequence; this is a documented precondition, not a detected condition.

import "sort"

type (
	// AncestorIter walks parent links from a node up to & including the
	// chain's top, the starting node excluded.
	AncestorIter[T any] struct {
		tree *Tree[T]
		next NodeID
	}

	// ChildIter walks a node's immediate children first to last.
	ChildIter[T any] struct {
		tree *Tree[T]
		next NodeID
	}

	// SiblingIter walks the sibling chain away from a node in one direction,
	// the starting node excluded.
	SiblingIter[T any] struct {
		tree     *Tree[T]
		next     NodeID
		backward bool
	}

	// DescendantIter yields a node & its whole subtree in pre-order,
	// children left to right. The cursor keeps an explicit stack so
	// arbitrarily deep trees cannot exhaust the native call stack.
	DescendantIter[T any] struct {
		tree  *Tree[T]
		stack []NodeID
	}

	// List is a type wrapper for []NodeRef.
	List[T any] []NodeRef[T]
)

// Ancestors obtains a fresh cursor over the node's ancestors.
func (r NodeRef[T]) Ancestors() *AncestorIter[T] {
	it := &AncestorIter[T]{tree: r.tree}
	if n := r.tree.arena.get(r.id); n != nil {
		it.next = n.parent
	}

	return it
}

// Next yields the following ancestor; false once past the top of the chain.
func (it *AncestorIter[T]) Next() (NodeRef[T], bool) {
	n := it.tree.arena.get(it.next)
	if n == nil {
		return NodeRef[T]{}, false
	}

	ref := NodeRef[T]{id: it.next, tree: it.tree}
	it.next = n.parent

	return ref, true
}

// Collect drains the cursor into a List.
func (it *AncestorIter[T]) Collect() List[T] { return collect[T](it) }

// Children obtains a fresh cursor over the node's immediate children.
func (r NodeRef[T]) Children() *ChildIter[T] {
	it := &ChildIter[T]{tree: r.tree}
	if n := r.tree.arena.get(r.id); n != nil {
		it.next = n.firstChild
	}

	return it
}

// Next yields the following child; false once past the last child.
func (it *ChildIter[T]) Next() (NodeRef[T], bool) {
	n := it.tree.arena.get(it.next)
	if n == nil {
		return NodeRef[T]{}, false
	}

	ref := NodeRef[T]{id: it.next, tree: it.tree}
	it.next = n.nextSibling

	return ref, true
}

// Collect drains the cursor into a List.
func (it *ChildIter[T]) Collect() List[T] { return collect[T](it) }

// NextSiblings obtains a fresh cursor over the siblings following the node.
func (r NodeRef[T]) NextSiblings() *SiblingIter[T] {
	it := &SiblingIter[T]{tree: r.tree}
	if n := r.tree.arena.get(r.id); n != nil {
		it.next = n.nextSibling
	}

	return it
}

// PrevSiblings obtains a fresh cursor over the siblings preceding the node,
// nearest first.
func (r NodeRef[T]) PrevSiblings() *SiblingIter[T] {
	it := &SiblingIter[T]{tree: r.tree, backward: true}
	if n := r.tree.arena.get(r.id); n != nil {
		it.next = n.prevSibling
	}

	return it
}

// Next yields the following sibling; false once past the chain's end.
func (it *SiblingIter[T]) Next() (NodeRef[T], bool) {
	n := it.tree.arena.get(it.next)
	if n == nil {
		return NodeRef[T]{}, false
	}

	ref := NodeRef[T]{id: it.next, tree: it.tree}
	if it.backward {
		it.next = n.prevSibling
	} else {
		it.next = n.nextSibling
	}

	return ref, true
}

// Collect drains the cursor into a List.
func (it *SiblingIter[T]) Collect() List[T] { return collect[T](it) }

// Descendants obtains a fresh pre-order cursor over the node & its subtree.
func (r NodeRef[T]) Descendants() *DescendantIter[T] {
	it := &DescendantIter[T]{tree: r.tree}
	if r.tree.arena.get(r.id) != nil {
		it.stack = append(it.stack, r.id)
	}

	return it
}

// Next yields the following node in pre-order; false once the subtree is
// exhausted.
func (it *DescendantIter[T]) Next() (NodeRef[T], bool) {
	if len(it.stack) < 1 {
		return NodeRef[T]{}, false
	}

	id := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]

	n := it.tree.arena.get(id)
	if n == nil {
		return NodeRef[T]{}, false
	}

	// Push children in reverse so the leftmost child pops first.
	for child := n.lastChild; !child.IsNone(); {
		it.stack = append(it.stack, child)
		child = it.tree.arena.get(child).prevSibling
	}

	return NodeRef[T]{id: id, tree: it.tree}, true
}

// Collect drains the cursor into a List.
func (it *DescendantIter[T]) Collect() List[T] { return collect[T](it) }

func collect[T any](it interface{ Next() (NodeRef[T], bool) }) List[T] {
	list := make(List[T], 0)
	for {
		ref, ok := it.Next()
		if !ok {
			return list
		}
		list = append(list, ref)
	}
}

// Values returns the payload for each entry of a [List].
func (l List[T]) Values() []T {
	values := make([]T, len(l))
	for index := range l {
		values[index] = l[index].Value()
	}

	return values
}

// IDs returns the NodeID for each entry of a [List].
func (l List[T]) IDs() []NodeID {
	ids := make([]NodeID, len(l))
	for index := range l {
		ids[index] = l[index].ID()
	}

	return ids
}

// SortedValues returns a [List]'s payloads in ascending order.
func SortedValues[T Constraint](l List[T]) []T {
	values := l.Values()
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return values
}
