// SPDX-License-Identifier: MIT
package arbor

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

type (
	// Source defines an interface for entities that can be read into a
	// [Tree]: each record names its own value & its parent's value. The
	// record whose parent is the zero value becomes the root.
	Source[T Constraint] interface {
		// Value obtains the value stored by the Source.
		Value() T
		// Parent obtains the parent stored by the Source.
		Parent() T
	}

	// BuildSource is a wrapper type for []Source used to generate a Tree.
	BuildSource[T Constraint] struct {
		cfg *Config

		list []Source[T]

		// isOrdered marks sources listing parents before their children,
		// which build in a single pass.
		isOrdered bool
	}

	// Record is a ready-made Source implementation.
	Record[T Constraint] struct {
		value  T
		parent T
	}

	// BuildOption defines the BuildSource functional option type.
	BuildOption[T Constraint] func(*BuildSource[T])
)

// Tree building errors.
var (
	ErrBuildTree = errors.New("failed to build tree")

	ErrMissingRootNode   = errors.New("missing root node")
	ErrMultipleRootNodes = errors.New("build source has multiple root nodes")

	ErrEmptyBuildSource       = errors.New("empty build source")
	ErrInconsistentBuildCache = errors.New("inconsistency between the tree and build cache")

	ErrLocateParents = errors.New("unable to locate parent(s)")

	ErrPanicked = errors.New("recovery from panic")
)

// NewRecord instantiates a Record.
func NewRecord[T Constraint](value, parent T) Record[T] {
	return Record[T]{value: value, parent: parent}
}

// Value obtains the value stored by the Record.
func (r Record[T]) Value() T { return r.value }

// Parent obtains the parent stored by the Record.
func (r Record[T]) Parent() T { return r.parent }

// NewBuildSource instantiates a BuildSource.
func NewBuildSource[T Constraint](options ...BuildOption[T]) *BuildSource[T] {
	b := &BuildSource[T]{cfg: defConfig, list: []Source[T]{}}

	for _, opt := range options {
		opt(b)
	}

	return b
}

// WithSources configures the underlying list.
func WithSources[T Constraint](list []Source[T]) BuildOption[T] {
	return func(b *BuildSource[T]) { b.list = list }
}

// WithBuildConfig configures the [Config] used while building.
func WithBuildConfig[T Constraint](cfg *Config) BuildOption[T] {
	return func(b *BuildSource[T]) { b.cfg = cfg }
}

// WithOrdered marks the source as listing parents before their children.
func WithOrdered[T Constraint]() BuildOption[T] {
	return func(b *BuildSource[T]) { b.isOrdered = true }
}

// Len retrieves the length of the BuildSource.
func (b *BuildSource[T]) Len() int { return len(b.list) }

// Cut a value at some index from the BuildSource.
func (b *BuildSource[T]) Cut(index int) {
	if index == 0 {
		b.list = b.list[1:]
		return
	}

	upper := index + 1
	// Cut upto (excluding) `index`, cut from (including) `index+1`.
	b.list = append(b.list[:index], b.list[upper:]...)
}

// Build generates a [Tree] from the BuildSource.
//
// Unordered sources converge over repeated passes; a pass that places no
// record reports the leftovers through ErrLocateParents.
func (b *BuildSource[T]) Build(ctx context.Context, options ...Option) (t *Tree[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil {
			// Skip expensive operation if not debug.
			if b.cfg.Debug {
				b.cfg.Logger.Debugf("current tree: %s \nsource remnants: %s", spew.Sprint(t), spew.Sprint(b))
			}

			t = nil
			err = fmt.Errorf("%w: %v", ErrBuildTree, err)
		}
	}()

	if b.Len() < 1 {
		err = ErrEmptyBuildSource
		return
	}

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	var rootValue T
	ids := make(map[T]NodeID, b.Len())

	rootIndex := 0
	for index := range b.list {
		if b.list[index].Parent() != rootValue {
			continue
		}

		// Disallow additional root node(s).
		if t != nil {
			err = ErrMultipleRootNodes
			return
		}

		value := b.list[index].Value()
		if t, err = New(value, options...); err != nil {
			return
		}

		ids[value], _ = t.RootID()
		rootIndex = index
	}
	if t == nil {
		err = ErrMissingRootNode
		return
	}

	// Remove the root node from the build source.
	prevLen := b.Len()
	b.Cut(rootIndex)

	for {
		lenSrc := b.Len()
		if lenSrc < 1 {
			return
		}

		if lenSrc == prevLen {
			err = fmt.Errorf("%w for: %s", ErrLocateParents, spew.Sprint(b))
			return
		}
		prevLen = lenSrc

		for index := 0; index < lenSrc; index++ {
			record := b.list[index]

			// Parent not in the tree yet.
			parentID, ok := ids[record.Parent()]
			if !ok {
				continue
			}

			parent, gErr := t.GetMut(parentID)
			if gErr != nil {
				// Inconsistency between the cache & the tree.
				err = fmt.Errorf("%w: %v", ErrInconsistentBuildCache, gErr)
				return
			}

			child, aErr := parent.Append(record.Value())
			if aErr != nil {
				err = aErr
				return
			}
			ids[record.Value()] = child.ID()

			// Remove the placed record from the build source.
			b.Cut(index)

			// Allow for unordered sources.
			//
			// Adds extraneous opcodes compared to the ordered source's
			// operation.
			if !b.isOrdered {
				break
			}

			index--
			lenSrc--
		}
	}
}
