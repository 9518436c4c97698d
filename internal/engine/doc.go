// Package engine provides the reversible-edit engine for editcore.
//
// The engine is the facade over three sub-packages:
//
//   - buffer: a mutable byte sequence whose only mutation is range replace
//   - history: immutable Edit values plus the past/future undo/redo stacks
//   - tracking: named checkpoints of full buffer state
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("The quick brown fox"))
//
//	e.Perform("fast", 4, 9) // "The fast brown fox"
//	e.Undo()                // "The quick brown fox"
//	e.Redo()                // "The fast brown fox"
//
// Each Perform records the inverse of the applied edit, so undo is a pure
// stack pop. A Perform issued while redo entries are pending discards them:
// their offsets assume buffer states that no longer exist.
//
// # Errors
//
//   - ErrRangeInvalid: offsets outside the buffer; a caller bug, surfaced
//     immediately, nothing mutated
//   - ErrNothingToUndo / ErrNothingToRedo: empty stack; treat as a no-op
//     signal (e.g. disable the Undo control)
//   - ErrStaleEdit: a recorded edit no longer fits the buffer; an internal
//     consistency failure that the future-clearing policy makes unreachable
//   - ErrReadOnly: edit attempted on an engine built WithReadOnly
//
// # Checkpoints
//
//	id := e.CreateCheckpoint("before_rewrite")
//	// ... edits ...
//	e.RestoreCheckpoint(id) // whole-buffer replace, itself undoable
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use. Perform, Undo, and Redo
// are serialized; each either fully completes or fails before mutating
// anything.
package engine
