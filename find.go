// SPDX-License-Identifier: MIT
package arbor

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/exp/constraints"
)

// Constraint is a wrapper interface containing comparable &
// constraints.Ordered.
type Constraint interface {
	comparable
	constraints.Ordered
}

// findPoolSize bounds the workers scanning subtrees for FindAll.
const findPoolSize = 100

// Find returns a read-only view of the first node holding value, searching
// the subtree below the root in pre-order.
//
// With [WithFindCache] enabled, previous hits resolve through the cache.
// Cached ids are validated against the arena before use, so entries left
// behind by removals degrade to ordinary misses rather than resolving to a
// recycled slot.
func Find[T comparable](ctx context.Context, t *Tree[T], value T) (NodeRef[T], error) {
	if t.findCache != nil {
		if id, ok := t.findCache.Get(cacheKey(value)); ok {
			if n := t.arena.get(id); n != nil && n.value == value {
				return NodeRef[T]{id: id, tree: t}, nil
			}
		}
	}

	root, err := t.Root()
	if err != nil {
		return NodeRef[T]{}, err
	}

	for it := root.Descendants(); ; {
		select {
		case <-ctx.Done():
			return NodeRef[T]{}, ctx.Err()
		default:
		}

		ref, ok := it.Next()
		if !ok {
			break
		}

		if ref.Value() == value {
			if t.findCache != nil {
				t.findCache.Set(cacheKey(value), ref.id, cacheEntryCost)
			}

			return ref, nil
		}
	}

	return NodeRef[T]{}, fmt.Errorf("(%v) %w", value, ErrNotFound)
}

// FindAll returns the NodeID of every node below the root holding value.
//
// The root's subtrees are scanned concurrently on a bounded worker pool;
// result order is unspecified. Scanning is read-only, so the single write
// multiple read contract holds, but no mutation may run concurrently.
func FindAll[T comparable](ctx context.Context, t *Tree[T], value T) ([]NodeID, error) {
	root, err := t.Root()
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		matches []NodeID
	)

	scan := func(top NodeID) {
		var local []NodeID

		stack := []NodeID{top}
		for len(stack) > 0 {
			select {
			case <-ctx.Done():
				return
			default:
			}

			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			n := t.arena.get(id)
			if n == nil {
				continue
			}
			if n.value == value {
				local = append(local, id)
			}

			for child := n.firstChild; !child.IsNone(); {
				stack = append(stack, child)
				child = t.arena.get(child).nextSibling
			}
		}

		if len(local) > 0 {
			mu.Lock()
			matches = append(matches, local...)
			mu.Unlock()
		}
	}

	if t.arena.get(root.id).value == value {
		matches = append(matches, root.id)
	}

	pool, err := ants.NewPool(findPoolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	wg := new(sync.WaitGroup)
	for it := root.Children(); ; {
		child, ok := it.Next()
		if !ok {
			break
		}

		top := child.id
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			scan(top)
		}); err != nil {
			wg.Done()
			wg.Wait()

			return nil, err
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if t.cfg.Debug {
		t.cfg.Logger.Debugf("find (%v): %d match(es)", value, len(matches))
	}

	if len(matches) < 1 {
		return nil, fmt.Errorf("(%v) %w", value, ErrNotFound)
	}

	return matches, nil
}

// cacheKey folds a payload into a cache key; payload types are not
// constrained to ristretto's key set.
func cacheKey[T any](value T) string { return fmt.Sprint(value) }
