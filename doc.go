// SPDX-License-Identifier: MIT

// Package arbor implements an arena-backed n-ary tree.
//
// A [Tree] owns all node memory in a growable slot arena; callers hold
// [NodeID] handles instead of pointers & reach nodes through read-only
// [NodeRef] or mutable [NodeMut] views. Each slot carries a generation
// counter that is bumped whenever the slot is freed, so a handle minted for
// a removed node is detected & rejected instead of dangling.
//
// Synchronization is unnecessary, the package is designed for single write
// multiple read: no mutation may run while another operation (including a
// traversal) is in progress.
package arbor
