// SPDX-License-Identifier: MIT
package arbor

// node is the arena-resident record for a single tree node: the payload plus
// five relationship links. A zero NodeID link marks a missing relative.
//
// Invariants maintained by the Tree's link surgery:
//   - the forward chain firstChild→nextSibling terminates at lastChild &
//     the backward chain lastChild→prevSibling is its exact reverse
//   - every node on a parent's child chain holds that parent in its parent
//     field & vice versa
//   - a parentless node heads either the tree or a detached subtree
type node[T any] struct {
	value T

	parent      NodeID
	firstChild  NodeID
	lastChild   NodeID
	prevSibling NodeID
	nextSibling NodeID
}
