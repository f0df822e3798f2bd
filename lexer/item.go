// SPDX-License-Identifier: MIT
package lexer

type (
	// ItemID int holding an identifier for the Item tokens.
	ItemID int

	// Item type holding the token kind & value of a scanned sequence.
	Item struct {
		Err error
		Val []byte // The value of this Item.
		ID  ItemID // The type of this Item.
	}
)

const (
	_             = iota // Consume 0 to start actual numbering at 1.
	ItemError            // Notify occurrence of an `error`.
	ItemSplitter         // Separator between serialized node values.
	ItemEOF              // End of the input.
	ItemValue            // A node's serialized payload.
	ItemEndMarker        // End of a node's children.
)
