// SPDX-License-Identifier: MIT
package arbor

// NodeRef is a read-only view pairing a NodeID with its [Tree]. Navigation
// never mutates the tree, so NodeRefs may be shared freely between readers.
//
// A NodeRef survives mutation of unrelated parts of the tree; once its own
// node is removed, Value reports the zero value & every relative accessor
// reports absence.
type NodeRef[T any] struct {
	id   NodeID
	tree *Tree[T]
}

// ID retrieves the viewed node's NodeID.
func (r NodeRef[T]) ID() NodeID { return r.id }

// Value retrieves the node's payload; the zero value for a stale view.
func (r NodeRef[T]) Value() T {
	var zero T

	n := r.tree.arena.get(r.id)
	if n == nil {
		return zero
	}

	return n.value
}

// relative resolves one link field to a view, reporting absence for a stale
// view or a missing relative.
func (r NodeRef[T]) relative(pick func(*node[T]) NodeID) (NodeRef[T], bool) {
	n := r.tree.arena.get(r.id)
	if n == nil {
		return NodeRef[T]{}, false
	}

	id := pick(n)
	if id.IsNone() {
		return NodeRef[T]{}, false
	}

	return NodeRef[T]{id: id, tree: r.tree}, true
}

// Parent retrieves a view of the node's parent; false for the tree root or a
// detached subtree's top.
func (r NodeRef[T]) Parent() (NodeRef[T], bool) {
	return r.relative(func(n *node[T]) NodeID { return n.parent })
}

// FirstChild retrieves a view of the node's first child.
func (r NodeRef[T]) FirstChild() (NodeRef[T], bool) {
	return r.relative(func(n *node[T]) NodeID { return n.firstChild })
}

// LastChild retrieves a view of the node's last child.
func (r NodeRef[T]) LastChild() (NodeRef[T], bool) {
	return r.relative(func(n *node[T]) NodeID { return n.lastChild })
}

// PrevSibling retrieves a view of the sibling preceding the node.
func (r NodeRef[T]) PrevSibling() (NodeRef[T], bool) {
	return r.relative(func(n *node[T]) NodeID { return n.prevSibling })
}

// NextSibling retrieves a view of the sibling following the node.
func (r NodeRef[T]) NextSibling() (NodeRef[T], bool) {
	return r.relative(func(n *node[T]) NodeID { return n.nextSibling })
}
