package history

import (
	"errors"
	"fmt"

	"github.com/dshills/editcore/internal/engine/buffer"
)

// Errors returned by edit operations.
var (
	// ErrStaleEdit indicates an edit whose offsets are no longer valid
	// against the current buffer content. This should never occur as long
	// as the history's future-clearing policy holds; it is an internal
	// consistency failure, not a recoverable condition.
	ErrStaleEdit = errors.New("stale edit: offsets no longer valid against buffer content")
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Edit is an immutable description of a single range replacement.
// Its offsets are valid only against the exact buffer text that existed
// when it was constructed; applying it against any other state is
// incorrect, which is why the history discards queued redoers whenever a
// fresh edit is performed.
//
// OldText is captured at construction from the same text the offsets were
// validated against, so the inverse edit is computable without re-reading
// the buffer.
type Edit struct {
	Range   Range  // Range to replace, valid against the construction-time text
	NewText string // Replacement text
	OldText string // Text the range covered at construction (for the inverse)
}

// NewEdit constructs an Edit against the given buffer text.
// Fails with buffer.ErrRangeInvalid unless 0 <= from <= to <= len(text).
func NewEdit(text string, replacement string, from, to ByteOffset) (Edit, error) {
	if from < 0 || from > to || to > ByteOffset(len(text)) {
		return Edit{}, fmt.Errorf("edit range [%d:%d) against %d bytes: %w",
			from, to, len(text), buffer.ErrRangeInvalid)
	}
	return Edit{
		Range:   buffer.NewRange(from, to),
		NewText: replacement,
		OldText: text[from:to],
	}, nil
}

// NewRange returns the range the replacement text occupies after the edit
// is applied.
func (e Edit) NewRange() Range {
	return buffer.NewRange(e.Range.Start, e.Range.Start+ByteOffset(len(e.NewText)))
}

// NetChange returns the signed change in buffer length the edit causes.
func (e Edit) NetChange() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// Reversed returns the Edit that, applied immediately after this one,
// restores the prior text exactly.
func (e Edit) Reversed() Edit {
	return Edit{
		Range:   e.NewRange(),
		NewText: e.OldText,
		OldText: e.NewText,
	}
}

// Apply performs the edit against the buffer and returns the resulting
// text. Fails with ErrStaleEdit, before mutating anything, if the buffer is
// shorter than the edit's end offset.
func (e Edit) Apply(buf *buffer.Buffer) (string, error) {
	if err := e.CheckFresh(buf); err != nil {
		return "", err
	}
	return buf.Replace(e.Range.Start, e.Range.End, e.NewText)
}

// CheckFresh verifies the edit's offsets still fit the buffer.
// This is the consistency check the history runs before applying any edit
// drawn from its stacks.
func (e Edit) CheckFresh(buf *buffer.Buffer) error {
	if e.Range.End > buf.Len() {
		return fmt.Errorf("edit range %s against %d bytes: %w", e.Range, buf.Len(), ErrStaleEdit)
	}
	return nil
}

// IsInsert returns true if this edit is a pure insertion.
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && len(e.NewText) > 0
}

// IsDelete returns true if this edit is a pure deletion.
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && len(e.NewText) == 0
}

// IsNoop returns true if this edit makes no change.
func (e Edit) IsNoop() bool {
	return e.Range.IsEmpty() && len(e.NewText) == 0
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.IsInsert() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.IsDelete() {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
}
