// Package history provides reversible-edit undo/redo for the editcore engine.
//
// # Edits
//
// An Edit is an immutable range replacement. It records the range it
// replaces, the replacement text, and the text the range covered when the
// edit was constructed. That captured text makes the inverse a pure
// computation:
//
//	doer, _ := history.NewEdit(text, "fast", 4, 9)
//	undoer := doer.Reversed()
//
// An Edit's offsets are only meaningful against the exact buffer state it
// was built from. Applying one against anything else silently corrupts the
// text, so Apply refuses edits whose range no longer fits the buffer
// (ErrStaleEdit).
//
// # History
//
// History owns the past and future stacks:
//
//	h := history.New(1000)
//	h.Perform(buf, "fast", 4, 9) // past grows
//	h.Undo(buf)                  // past shrinks, future grows
//	h.Redo(buf)                  // future shrinks, past grows
//
// Undo immediately followed by Redo restores both the text and the stacks
// exactly, for chains of any length.
//
// # Why Perform clears the redo stack
//
// Every redoer in future encodes offsets that assume the precise sequence
// of buffer states that existed before the new edit. One fresh Perform
// shifts the text under those offsets, so the only safe policy is to
// discard the entire future stack. Rebasing queued redoers over the new
// edit (operational-transformation style) is a possible extension, not
// something this package attempts.
package history
