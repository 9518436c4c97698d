package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/editcore/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is the default depth of the past stack.
const DefaultMaxEntries = 1000

// entry wraps an edit with metadata.
type entry struct {
	edit      Edit
	timestamp time.Time
}

// History is the undo/redo state machine for a buffer. It owns two stacks
// of edits: past holds undoers (inverses of performed edits, top = most
// recent) and future holds redoers (inverses of undos).
//
// Every edit in future is valid only against the precise sequence of buffer
// states that existed when it was queued, so Perform discards the entire
// future stack. Preserving it would leave redoers whose offsets assume text
// that no longer exists.
//
// All methods are thread-safe, and each operation either fully completes or
// fails before mutating the buffer or either stack.
type History struct {
	mu sync.Mutex

	past   []*entry
	future []*entry

	// Net length change of the most recently applied edit.
	lastNetChange ByteOffset

	maxEntries int
}

// New creates a new history with the given maximum past-stack depth.
// Non-positive values select DefaultMaxEntries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Perform constructs an edit replacing buf's range [from, to) with
// replacement, applies it, and records its inverse on the past stack.
// The future stack is cleared unconditionally: a fresh edit invalidates
// the offset assumptions of every queued redoer.
// Returns the resulting buffer text.
func (h *History) Perform(buf *buffer.Buffer, replacement string, from, to ByteOffset) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	doer, err := NewEdit(buf.Text(), replacement, from, to)
	if err != nil {
		return "", err
	}
	undoer := doer.Reversed()

	text, err := doer.Apply(buf)
	if err != nil {
		return "", err
	}

	h.pushPastLocked(undoer)
	h.future = nil
	h.lastNetChange = doer.NetChange()

	return text, nil
}

// Undo applies the most recent undoer, moving its inverse to the future
// stack. Fails with ErrNothingToUndo if there is nothing to undo; the
// caller should treat that as a no-op signal, not a crash.
// Returns the resulting buffer text.
func (h *History) Undo(buf *buffer.Buffer) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return "", ErrNothingToUndo
	}

	top := h.past[len(h.past)-1]
	if err := top.edit.CheckFresh(buf); err != nil {
		return "", err
	}

	// The redoer must be computed from the pre-undo state, which is
	// exactly what the undoer's captured text encodes.
	redoer := top.edit.Reversed()

	text, err := top.edit.Apply(buf)
	if err != nil {
		return "", err
	}

	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, &entry{edit: redoer, timestamp: time.Now()})
	h.lastNetChange = top.edit.NetChange()

	return text, nil
}

// Redo applies the most recent redoer, moving its inverse back to the past
// stack. Fails with ErrNothingToRedo if there is nothing to redo.
// Returns the resulting buffer text.
func (h *History) Redo(buf *buffer.Buffer) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return "", ErrNothingToRedo
	}

	top := h.future[len(h.future)-1]
	if err := top.edit.CheckFresh(buf); err != nil {
		return "", err
	}

	undoer := top.edit.Reversed()

	text, err := top.edit.Apply(buf)
	if err != nil {
		return "", err
	}

	h.future = h.future[:len(h.future)-1]
	h.pushPastLocked(undoer)
	h.lastNetChange = top.edit.NetChange()

	return text, nil
}

// pushPastLocked records an undoer, trimming the oldest entries past the
// configured depth.
func (h *History) pushPastLocked(undoer Edit) {
	h.past = append(h.past, &entry{edit: undoer, timestamp: time.Now()})

	if len(h.past) > h.maxEntries {
		excess := len(h.past) - h.maxEntries
		h.past = h.past[excess:]
	}
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future)
}

// NetChangeOfLast returns the signed length change of the most recently
// applied edit, whichever of Perform, Undo, or Redo applied it.
// Returns 0 before any edit has been applied.
func (h *History) NetChangeOfLast() ByteOffset {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastNetChange
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.past = nil
	h.future = nil
}

// EditInfo provides read-only info about a recorded edit.
type EditInfo struct {
	Description string    // Human-readable description
	Timestamp   time.Time // When the edit was recorded
	NetChange   ByteOffset
}

// infoFor builds an EditInfo for a stack entry.
func infoFor(e *entry) EditInfo {
	return EditInfo{
		Description: e.edit.String(),
		Timestamp:   e.timestamp,
		NetChange:   e.edit.NetChange(),
	}
}

// PeekUndo returns info about the next undo without removing it.
func (h *History) PeekUndo() (EditInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return EditInfo{}, false
	}
	return infoFor(h.past[len(h.past)-1]), true
}

// PeekRedo returns info about the next redo without removing it.
func (h *History) PeekRedo() (EditInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return EditInfo{}, false
	}
	return infoFor(h.future[len(h.future)-1]), true
}

// UndoInfo returns info about all available undo operations, oldest first.
func (h *History) UndoInfo() []EditInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]EditInfo, len(h.past))
	for i, e := range h.past {
		result[i] = infoFor(e)
	}
	return result
}

// RedoInfo returns info about all available redo operations, oldest first.
func (h *History) RedoInfo() []EditInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]EditInfo, len(h.future))
	for i, e := range h.future {
		result[i] = infoFor(e)
	}
	return result
}

// MaxEntries returns the maximum past-stack depth.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

// SetMaxEntries changes the maximum past-stack depth.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.past) > max {
		excess := len(h.past) - max
		h.past = h.past[excess:]
	}
}
