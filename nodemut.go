// SPDX-License-Identifier: MIT
package arbor

import "fmt"

// NodeMut is a mutable view pairing a NodeID with its [Tree]. All structural
// mutation passes through a NodeMut; operations on a stale view fail with
// ErrInvalidNodeID instead of touching the arena.
//
// Mutable access requires exclusive access to the Tree for the duration of
// the operation.
type NodeMut[T any] struct {
	id   NodeID
	tree *Tree[T]
}

// ID retrieves the viewed node's NodeID.
func (m NodeMut[T]) ID() NodeID { return m.id }

// AsRef returns a read-only facade over the same node.
func (m NodeMut[T]) AsRef() NodeRef[T] { return NodeRef[T]{id: m.id, tree: m.tree} }

// Value retrieves the node's payload.
func (m NodeMut[T]) Value() (T, error) {
	var zero T

	n, err := m.tree.node(m.id)
	if err != nil {
		return zero, err
	}

	return n.value, nil
}

// SetValue replaces the node's payload.
func (m NodeMut[T]) SetValue(value T) error {
	n, err := m.tree.node(m.id)
	if err != nil {
		return err
	}

	n.value = value

	return nil
}

// Replace swaps in value & returns the previous payload.
func (m NodeMut[T]) Replace(value T) (T, error) {
	var zero T

	n, err := m.tree.node(m.id)
	if err != nil {
		return zero, err
	}

	previous := n.value
	n.value = value

	return previous, nil
}

// Parent retrieves a mutable view of the node's parent; false for the tree
// root or a detached subtree's top.
func (m NodeMut[T]) Parent() (NodeMut[T], bool) {
	n := m.tree.arena.get(m.id)
	if n == nil || n.parent.IsNone() {
		return NodeMut[T]{}, false
	}

	return NodeMut[T]{id: n.parent, tree: m.tree}, true
}

// Append allocates a new node holding value & links it as the node's last
// child in O(1). The returned view of the child allows chained construction.
func (m NodeMut[T]) Append(value T) (NodeMut[T], error) {
	if _, err := m.tree.node(m.id); err != nil {
		return NodeMut[T]{}, err
	}

	// Allocate before resolving link targets; growth may move the slots.
	id := m.tree.arena.alloc(value)
	m.tree.count++
	m.tree.linkLast(m.id, id)

	return NodeMut[T]{id: id, tree: m.tree}, nil
}

// Prepend allocates a new node holding value & links it as the node's first
// child in O(1).
func (m NodeMut[T]) Prepend(value T) (NodeMut[T], error) {
	if _, err := m.tree.node(m.id); err != nil {
		return NodeMut[T]{}, err
	}

	id := m.tree.arena.alloc(value)
	m.tree.count++
	m.tree.linkFirst(m.id, id)

	return NodeMut[T]{id: id, tree: m.tree}, nil
}

// Detach unlinks the node & its subtree from its parent. Every node in the
// subtree stays live & keeps its NodeID; the node heads an orphaned subtree
// until relocated with AppendSubtree / PrependSubtree or removed. Detaching
// a parentless node is a no-op.
func (m NodeMut[T]) Detach() error {
	if _, err := m.tree.node(m.id); err != nil {
		return err
	}

	m.tree.unlink(m.id)

	return nil
}

// AppendSubtree relocates the subtree headed by id to be the node's last
// child, detaching it from its current position first.
//
// Rejected with ErrWouldCycle when the destination lies inside the moved
// subtree, the node becoming its own ancestor included.
func (m NodeMut[T]) AppendSubtree(id NodeID) error {
	return m.attachSubtree(id, false)
}

// PrependSubtree relocates the subtree headed by id to be the node's first
// child. See AppendSubtree.
func (m NodeMut[T]) PrependSubtree(id NodeID) error {
	return m.attachSubtree(id, true)
}

func (m NodeMut[T]) attachSubtree(id NodeID, first bool) error {
	if _, err := m.tree.node(m.id); err != nil {
		return err
	}
	if _, err := m.tree.node(id); err != nil {
		return err
	}

	if m.tree.isDescendant(m.id, id) {
		return fmt.Errorf("%w: %s under %s", ErrWouldCycle, id, m.id)
	}

	m.tree.unlink(id)
	if first {
		m.tree.linkFirst(m.id, id)
	} else {
		m.tree.linkLast(m.id, id)
	}

	// Relocating the designated root hands the role to the destination
	// chain's top, keeping the root parentless.
	if id == m.tree.root {
		m.tree.root = m.tree.topAncestor(m.id)
	}

	return nil
}

// RemoveSubtree detaches the node, releases it & every descendant, & returns
// the removed node's payload. Every NodeID inside the subtree becomes
// permanently invalid & NodeCount drops by the subtree's size.
//
// The traversal keeps an explicit stack so removal cost is bounded by the
// subtree's size, not the native call stack.
func (m NodeMut[T]) RemoveSubtree() (T, error) {
	var zero T

	n, err := m.tree.node(m.id)
	if err != nil {
		return zero, err
	}
	value := n.value

	m.tree.unlink(m.id)

	stack := []NodeID{m.id}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for child := m.tree.arena.get(id).firstChild; !child.IsNone(); {
			stack = append(stack, child)
			child = m.tree.arena.get(child).nextSibling
		}

		m.tree.arena.release(id.index)
		m.tree.count--
	}

	if m.id == m.tree.root {
		m.tree.root = NodeID{}
	}

	return value, nil
}

// RemovePromoteChildren releases only the node, splicing its children into
// its former position: their order among themselves & relative to the
// remaining siblings is preserved.
//
// For a parentless node (the tree root or a detached subtree's top) the
// promotion is only well-defined with exactly one child, which takes over as
// the new top; zero or multiple children fail with
// ErrAmbiguousRootPromotion & leave the tree untouched.
func (m NodeMut[T]) RemovePromoteChildren() (T, error) {
	var zero T

	n, err := m.tree.node(m.id)
	if err != nil {
		return zero, err
	}
	value := n.value

	if n.parent.IsNone() {
		if n.firstChild.IsNone() || n.firstChild != n.lastChild {
			return zero, fmt.Errorf("%w: %s", ErrAmbiguousRootPromotion, m.id)
		}

		child := n.firstChild
		m.tree.arena.get(child).parent = NodeID{}
		if m.id == m.tree.root {
			m.tree.root = child
		}

		m.tree.arena.release(m.id.index)
		m.tree.count--

		return value, nil
	}

	parentID := n.parent
	prev, next := n.prevSibling, n.nextSibling
	first, last := n.firstChild, n.lastChild

	if first.IsNone() {
		// Childless: a plain splice-out.
		m.tree.unlink(m.id)
	} else {
		for child := first; !child.IsNone(); {
			c := m.tree.arena.get(child)
			c.parent = parentID
			child = c.nextSibling
		}

		p := m.tree.arena.get(parentID)
		if prev.IsNone() {
			p.firstChild = first
		} else {
			m.tree.arena.get(prev).nextSibling = first
			m.tree.arena.get(first).prevSibling = prev
		}
		if next.IsNone() {
			p.lastChild = last
		} else {
			m.tree.arena.get(next).prevSibling = last
			m.tree.arena.get(last).nextSibling = next
		}
	}

	m.tree.arena.release(m.id.index)
	m.tree.count--

	return value, nil
}
