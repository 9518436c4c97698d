// Package tracking provides named checkpoints of buffer state.
//
// A Checkpoint captures the full buffer text, its revision, and a name at
// a point in time. The Store keeps checkpoints addressable by ID or name
// and optionally bounds how many are retained:
//
//	store := tracking.NewStore(100)
//	cp := store.Create("before_refactor", buf.Text(), buf.RevisionID())
//	// ... edits ...
//	saved, _ := store.Get(cp.ID)
//	_ = saved.Text()
//
// Restoring a checkpoint is the engine's job: it replaces the whole buffer
// through the history machinery so the restore itself is undoable.
package tracking
