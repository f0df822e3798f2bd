// SPDX-License-Identifier: MIT
package arbor

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type (
	// Tree is an arena-backed n-ary tree. It owns all node memory; callers
	// hold NodeIDs & reach nodes through [NodeRef] / [NodeMut] views.
	//
	// Synchronization is unnecessary, the type is designed for single write
	// multiple read; no mutation may run while a read-only traversal is in
	// progress.
	Tree[T any] struct {
		// cfg contains a pointer to a [Config] shared by all operations.
		cfg *Config

		arena *arena[T]
		root  NodeID

		// count tracks occupied nodes so NodeCount stays O(1).
		count int

		// findCache holds value→NodeID entries for [Find]; nil unless
		// enabled with [WithFindCache].
		findCache *ristretto.Cache[string, NodeID]
	}

	// Config defines configuration shared by a [Tree]'s operations.
	Config struct {
		// Logger for [Tree] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// Option defines the Tree construction functional option type.
	Option func(*treeOptions)

	treeOptions struct {
		cfg       *Config
		capacity  int
		findCache bool
	}
)

const (
	findCacheCounters = 10_000
	findCacheSize     = 1 << 16
	cacheEntryCost    = 1
)

// Errors encountered when handling a Tree.
var (
	ErrInvalidNodeID = errors.New("invalid node id")
	ErrEmptyTree     = errors.New("tree has no root")
	ErrNotFound      = errors.New("not found")

	ErrInvalidCapacity        = errors.New("invalid capacity")
	ErrWouldCycle             = errors.New("relocation would create a cycle")
	ErrAmbiguousRootPromotion = errors.New("root promotion is ambiguous")
)

var defConfig = DefConfig()

// DefConfig obtains the package's default [Config].
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// WithConfig shares a [Config] with the constructed [Tree].
func WithConfig(cfg *Config) Option {
	return func(o *treeOptions) { o.cfg = cfg }
}

// WithCapacity pre-allocates arena space for capacity nodes, trading peak
// memory for avoided reallocation during bulk construction.
func WithCapacity(capacity int) Option {
	return func(o *treeOptions) { o.capacity = capacity }
}

// WithFindCache enables a cache for [Find] operations.
func WithFindCache() Option {
	return func(o *treeOptions) { o.findCache = true }
}

// New instantiates a [Tree] holding a single root node.
//
// Fails only for invalid capacity configuration.
func New[T any](rootValue T, options ...Option) (*Tree[T], error) {
	t, err := newTree[T](options...)
	if err != nil {
		return nil, err
	}

	t.root = t.arena.alloc(rootValue)
	t.count = 1

	return t, nil
}

func newTree[T any](options ...Option) (*Tree[T], error) {
	opts := treeOptions{cfg: defConfig}
	for _, opt := range options {
		opt(&opts)
	}

	if opts.capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, opts.capacity)
	}

	t := &Tree[T]{
		cfg:   opts.cfg,
		arena: newArena[T](uuid.New(), opts.capacity),
	}

	if opts.findCache {
		cache, err := ristretto.NewCache(&ristretto.Config[string, NodeID]{
			NumCounters: findCacheCounters,
			MaxCost:     findCacheSize,
			BufferItems: 64,
		})
		if err != nil {
			return nil, err
		}
		t.findCache = cache
	}

	return t, nil
}

// Config retrieves the [Tree]'s Config.
func (t *Tree[T]) Config() *Config { return t.cfg }

// ID retrieves the [Tree]'s process-unique instance id.
func (t *Tree[T]) ID() uuid.UUID { return t.arena.tree }

// RootID retrieves the root's NodeID; false when the tree has been emptied.
func (t *Tree[T]) RootID() (NodeID, bool) { return t.root, !t.root.IsNone() }

// NodeCount retrieves the number of live nodes, detached subtrees included.
func (t *Tree[T]) NodeCount() int { return t.count }

// Capacity retrieves the number of nodes the arena holds before it must grow.
func (t *Tree[T]) Capacity() int { return t.arena.capacity() }

// Reserve grows the arena so at least capacity nodes fit without
// reallocation.
func (t *Tree[T]) Reserve(capacity int) { t.arena.reserve(capacity) }

// Valid reports whether id resolves against the Tree: matching instance id,
// occupied slot & matching generation.
func (t *Tree[T]) Valid(id NodeID) bool { return t.arena.get(id) != nil }

// Get returns a read-only view of the node id identifies.
func (t *Tree[T]) Get(id NodeID) (NodeRef[T], error) {
	if _, err := t.node(id); err != nil {
		return NodeRef[T]{}, err
	}

	return NodeRef[T]{id: id, tree: t}, nil
}

// GetMut returns a mutable view of the node id identifies.
func (t *Tree[T]) GetMut(id NodeID) (NodeMut[T], error) {
	if _, err := t.node(id); err != nil {
		return NodeMut[T]{}, err
	}

	return NodeMut[T]{id: id, tree: t}, nil
}

// Root returns a read-only view of the root node.
func (t *Tree[T]) Root() (NodeRef[T], error) {
	if t.root.IsNone() {
		return NodeRef[T]{}, ErrEmptyTree
	}

	return NodeRef[T]{id: t.root, tree: t}, nil
}

// RootMut returns a mutable view of the root node.
func (t *Tree[T]) RootMut() (NodeMut[T], error) {
	if t.root.IsNone() {
		return NodeMut[T]{}, ErrEmptyTree
	}

	return NodeMut[T]{id: t.root, tree: t}, nil
}

// SetRoot allocates a new root node; the previous root, if any, is shifted
// down to become its only child.
func (t *Tree[T]) SetRoot(value T) NodeID {
	oldRoot := t.root

	id := t.arena.alloc(value)
	t.count++
	t.root = id

	if !oldRoot.IsNone() {
		n := t.arena.get(id)
		n.firstChild, n.lastChild = oldRoot, oldRoot
		t.arena.get(oldRoot).parent = id
	}

	return id
}

// Clear releases every node. The Tree keeps its capacity & instance id, the
// root becomes none & every outstanding NodeID dies with its slot's
// generation bump.
func (t *Tree[T]) Clear() {
	for index := range t.arena.slots {
		if t.arena.slots[index].occupied {
			t.arena.release(index)
		}
	}

	t.root = NodeID{}
	t.count = 0
}

// node resolves id for internal use.
func (t *Tree[T]) node(id NodeID) (*node[T], error) {
	n := t.arena.get(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidNodeID, id)
	}

	return n, nil
}

// linkLast links child as parent's new last child. Both ids must be live.
func (t *Tree[T]) linkLast(parentID, childID NodeID) {
	p, c := t.arena.get(parentID), t.arena.get(childID)

	c.parent = parentID
	if p.lastChild.IsNone() {
		p.firstChild, p.lastChild = childID, childID
		return
	}

	prev := p.lastChild
	t.arena.get(prev).nextSibling = childID
	c.prevSibling = prev
	p.lastChild = childID
}

// linkFirst links child as parent's new first child. Both ids must be live.
func (t *Tree[T]) linkFirst(parentID, childID NodeID) {
	p, c := t.arena.get(parentID), t.arena.get(childID)

	c.parent = parentID
	if p.firstChild.IsNone() {
		p.firstChild, p.lastChild = childID, childID
		return
	}

	next := p.firstChild
	t.arena.get(next).prevSibling = childID
	c.nextSibling = next
	p.firstChild = childID
}

// unlink splices id out of its parent's child chain & clears its parent &
// sibling links. No-op for a parentless node.
func (t *Tree[T]) unlink(id NodeID) {
	n := t.arena.get(id)
	if n.parent.IsNone() {
		return
	}

	p := t.arena.get(n.parent)
	if p.firstChild == id {
		p.firstChild = n.nextSibling
	}
	if p.lastChild == id {
		p.lastChild = n.prevSibling
	}

	if !n.prevSibling.IsNone() {
		t.arena.get(n.prevSibling).nextSibling = n.nextSibling
	}
	if !n.nextSibling.IsNone() {
		t.arena.get(n.nextSibling).prevSibling = n.prevSibling
	}

	n.parent, n.prevSibling, n.nextSibling = NodeID{}, NodeID{}, NodeID{}
}

// isDescendant reports whether id lies in the subtree headed by topID,
// topID itself included.
func (t *Tree[T]) isDescendant(id, topID NodeID) bool {
	for !id.IsNone() {
		if id == topID {
			return true
		}

		n := t.arena.get(id)
		if n == nil {
			return false
		}
		id = n.parent
	}

	return false
}

// topAncestor walks parent links from id to the chain's parentless top.
func (t *Tree[T]) topAncestor(id NodeID) NodeID {
	for {
		n := t.arena.get(id)
		if n == nil || n.parent.IsNone() {
			return id
		}
		id = n.parent
	}
}
