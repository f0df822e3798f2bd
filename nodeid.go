// SPDX-License-Identifier: MIT
package arbor

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeID is a generational handle for a single node: the arena slot index,
// the slot's generation at allocation time & the owning [Tree]'s instance id.
//
// NodeIDs are immutable, comparable & usable as map keys; equality covers all
// three fields. The zero value identifies no node. A NodeID survives any
// amount of mutation elsewhere in its tree, but dies permanently once its
// node is removed; a dead or foreign id fails validation instead of
// resolving to some other node.
type NodeID struct {
	index      int
	generation uint64
	tree       uuid.UUID
}

// IsNone reports whether id is the zero NodeID.
func (id NodeID) IsNone() bool { return id == NodeID{} }

// String formats id for log & error messages.
func (id NodeID) String() string {
	return fmt.Sprintf("%d@g%d/%s", id.index, id.generation, id.tree)
}
