package buffer

import (
	"errors"
	"io"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrRangeInvalid = errors.New("invalid range")
)

// Buffer is a mutable text container. It owns the current text and exposes
// range replacement as its sole mutation primitive. It has no notion of
// history, undo, or redo; that state machine lives above it.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       []byte
	revisionID RevisionID
}

// New creates a new empty buffer.
func New() *Buffer {
	return &Buffer{
		revisionID: NewRevisionID(),
	}
}

// NewFromString creates a buffer with initial content.
func NewFromString(s string) *Buffer {
	b := New()
	b.text = []byte(s)
	return b
}

// NewFromReader creates a buffer from an io.Reader.
func NewFromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b := New()
	b.text = data
	return b, nil
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.text)
}

// TextRange returns text in the given byte range.
func (b *Buffer) TextRange(start, end ByteOffset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if start < 0 || start > end || end > ByteOffset(len(b.text)) {
		return "", ErrRangeInvalid
	}
	return string(b.text[start:end]), nil
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text) == 0
}

// Write Operations

// Replace replaces text in the range [start, end) with new text and returns
// the full resulting content. Fails with ErrRangeInvalid before mutating
// anything if the range is outside the current buffer.
func (b *Buffer) Replace(start, end ByteOffset, text string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(b.text)) {
		return "", ErrRangeInvalid
	}

	next := make([]byte, 0, len(b.text)+len(text)-int(end-start))
	next = append(next, b.text[:start]...)
	next = append(next, text...)
	next = append(next, b.text[end:]...)

	b.text = next
	b.revisionID = NewRevisionID()

	return string(b.text), nil
}

// Buffer State

// RevisionID returns the current revision ID.
// Each successful mutation produces a new revision.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}
