// SPDX-License-Identifier: MIT
package arbor

// Builder assembles a [Tree] from a root value & optional capacity
// configuration, for callers that prefer staged construction over [New]'s
// options.
type Builder[T any] struct {
	root     *T
	capacity int
	options  []Option
}

// NewBuilder instantiates a Builder with the default settings.
func NewBuilder[T any]() *Builder[T] { return &Builder[T]{} }

// WithRoot sets the root node's value.
func (b *Builder[T]) WithRoot(value T) *Builder[T] {
	b.root = &value
	return b
}

// WithCapacity pre-allocates arena space for capacity nodes.
func (b *Builder[T]) WithCapacity(capacity int) *Builder[T] {
	b.capacity = capacity
	return b
}

// WithOptions forwards further [Option]s to the constructed Tree.
func (b *Builder[T]) WithOptions(options ...Option) *Builder[T] {
	b.options = append(b.options, options...)
	return b
}

// Build assembles the Tree; without a root value the tree starts empty.
//
// Fails only for invalid capacity configuration.
func (b *Builder[T]) Build() (*Tree[T], error) {
	options := append([]Option{WithCapacity(b.capacity)}, b.options...)

	t, err := newTree[T](options...)
	if err != nil {
		return nil, err
	}

	if b.root != nil {
		t.root = t.arena.alloc(*b.root)
		t.count = 1
	}

	return t, nil
}
