package engine

import (
	"io"
	"sync"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/history"
	"github.com/dshills/editcore/internal/engine/tracking"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// Edit is an immutable range-replacement value.
	Edit = history.Edit

	// EditInfo is read-only info about a recorded edit.
	EditInfo = history.EditInfo

	// CheckpointID uniquely identifies a named checkpoint.
	CheckpointID = tracking.CheckpointID

	// Checkpoint is a named capture of buffer state.
	Checkpoint = tracking.Checkpoint
)

// Engine is the facade for the reversible-edit engine. It combines the
// text buffer, the undo/redo history, and the checkpoint store behind one
// thread-safe API.
//
// The buffer knows nothing about history; the history owns both stacks and
// is handed the buffer per operation. The engine serializes the three edit
// operations so each is a single uninterruptible step against the pair.
type Engine struct {
	mu sync.RWMutex

	buf         *buffer.Buffer
	history     *history.History
	checkpoints *tracking.Store

	// Configuration
	maxUndoEntries int
	maxCheckpoints int
	readOnly       bool

	// Initialization
	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
		maxCheckpoints: DefaultMaxCheckpoints,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.NewFromString(e.initContent)
	e.history = history.New(e.maxUndoEntries)
	e.checkpoints = tracking.NewStore(e.maxCheckpoints)

	return e
}

// NewFromReader creates an Engine whose initial content is read from r.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithContent(string(data))}, opts...)...), nil
}

// Read Operations

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// TextRange returns text in the given byte range.
func (e *Engine) TextRange(start, end ByteOffset) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.TextRange(start, end)
}

// Len returns the buffer length in bytes.
func (e *Engine) Len() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// IsEmpty returns true if the buffer is empty.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.IsEmpty()
}

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID()
}

// Edit Operations

// Perform replaces the range [from, to) with replacement, records the
// inverse for undo, and discards any pending redo. Returns the resulting
// text.
func (e *Engine) Perform(replacement string, from, to ByteOffset) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return "", ErrReadOnly
	}
	return e.history.Perform(e.buf, replacement, from, to)
}

// Undo reverses the most recent edit. Returns the resulting text.
func (e *Engine) Undo() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return "", ErrReadOnly
	}
	return e.history.Undo(e.buf)
}

// Redo reapplies the most recently undone edit. Returns the resulting text.
func (e *Engine) Redo() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return "", ErrReadOnly
	}
	return e.history.Redo(e.buf)
}

// History State

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.CanRedo()
}

// UndoCount returns the number of undo operations available.
func (e *Engine) UndoCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.UndoCount()
}

// RedoCount returns the number of redo operations available.
func (e *Engine) RedoCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.RedoCount()
}

// NetChangeOfLast returns the signed length change of the most recently
// applied edit.
func (e *Engine) NetChangeOfLast() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.NetChangeOfLast()
}

// UndoInfo returns info about available undo operations, oldest first.
func (e *Engine) UndoInfo() []EditInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.UndoInfo()
}

// RedoInfo returns info about available redo operations, oldest first.
func (e *Engine) RedoInfo() []EditInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.RedoInfo()
}

// ClearHistory removes all undo/redo history. The buffer is untouched.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Clear()
}

// Checkpoints

// CreateCheckpoint captures the current buffer state under a name and
// returns its ID.
func (e *Engine) CreateCheckpoint(name string) CheckpointID {
	e.mu.Lock()
	defer e.mu.Unlock()

	cp := e.checkpoints.Create(name, e.buf.Text(), e.buf.RevisionID())
	return cp.ID
}

// CheckpointText returns the text captured by a checkpoint.
func (e *Engine) CheckpointText(id CheckpointID) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	cp, ok := e.checkpoints.Get(id)
	if !ok {
		return "", ErrCheckpointNotFound
	}
	return cp.Text(), nil
}

// Checkpoints returns all checkpoints, newest first.
func (e *Engine) Checkpoints() []*Checkpoint {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.checkpoints.List()
}

// RestoreCheckpoint replaces the whole buffer with a checkpoint's captured
// text. The restore goes through the history, so it is undoable like any
// other edit. Returns the resulting text.
func (e *Engine) RestoreCheckpoint(id CheckpointID) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return "", ErrReadOnly
	}

	cp, ok := e.checkpoints.Get(id)
	if !ok {
		return "", ErrCheckpointNotFound
	}
	return e.history.Perform(e.buf, cp.Text(), 0, e.buf.Len())
}

// RemoveCheckpoint deletes a checkpoint.
func (e *Engine) RemoveCheckpoint(id CheckpointID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkpoints.Remove(id)
}
