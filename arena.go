// SPDX-License-Identifier: MIT
package arbor

import "github.com/google/uuid"

// slot is a single arena cell. A freed slot keeps its generation counter so
// NodeIDs minted for earlier occupants can be told apart from live ones.
type slot[T any] struct {
	generation uint64
	occupied   bool
	node       node[T]
}

// arena owns every node record for one Tree. Slots are never shuffled:
// release tombstones a slot, bumps its generation & queues the index for
// reuse, which keeps every surviving NodeID stable for the life of its node.
type arena[T any] struct {
	// tree is the owning Tree's instance id, stamped into every NodeID the
	// arena mints.
	tree uuid.UUID

	slots []slot[T]
	free  []int
}

func newArena[T any](tree uuid.UUID, capacity int) *arena[T] {
	return &arena[T]{
		tree:  tree,
		slots: make([]slot[T], 0, capacity),
	}
}

// alloc places value into a free slot, growing the backing store when none is
// available, & returns the new occupant's NodeID.
func (a *arena[T]) alloc(value T) NodeID {
	var index int
	if n := len(a.free); n > 0 {
		index, a.free = a.free[n-1], a.free[:n-1]
	} else {
		index = len(a.slots)
		a.slots = append(a.slots, slot[T]{})
	}

	s := &a.slots[index]
	s.occupied = true
	s.node = node[T]{value: value}

	return NodeID{index: index, generation: s.generation, tree: a.tree}
}

// release tombstones the slot at index & queues it for reuse.
//
// The generation bump permanently invalidates every NodeID minted for the
// outgoing occupant; the node record is zeroed so the payload is released.
func (a *arena[T]) release(index int) {
	s := &a.slots[index]
	s.occupied = false
	s.generation++
	s.node = node[T]{}

	a.free = append(a.free, index)
}

// get resolves id to its node record, or nil for a stale or foreign id.
//
// This is the single validity gate: every navigation & mutation passes
// through here before touching link fields.
func (a *arena[T]) get(id NodeID) *node[T] {
	if id.tree != a.tree || id.index < 0 || id.index >= len(a.slots) {
		return nil
	}

	s := &a.slots[id.index]
	if !s.occupied || s.generation != id.generation {
		return nil
	}

	return &s.node
}

// reserve grows the backing store so at least n slots fit without
// reallocation.
func (a *arena[T]) reserve(n int) {
	if n <= cap(a.slots) {
		return
	}

	slots := make([]slot[T], len(a.slots), n)
	copy(slots, a.slots)
	a.slots = slots
}

func (a *arena[T]) capacity() int { return cap(a.slots) }
