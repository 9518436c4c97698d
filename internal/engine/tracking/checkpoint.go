package tracking

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/editcore/internal/engine/buffer"
)

// Errors returned by checkpoint operations.
var (
	ErrCheckpointNotFound = errors.New("checkpoint not found")
)

// CheckpointID uniquely identifies a named checkpoint.
type CheckpointID string

// NewCheckpointID generates a new unique checkpoint ID.
func NewCheckpointID() CheckpointID {
	return CheckpointID(uuid.New().String())
}

// Checkpoint is a named capture of buffer state.
// Checkpoints are immutable and safe to share across goroutines.
type Checkpoint struct {
	// ID uniquely identifies this checkpoint.
	ID CheckpointID

	// Name is the human-readable name, e.g. "before_refactor".
	Name string

	// Timestamp when the checkpoint was created.
	Timestamp time.Time

	// Revision is the buffer revision at capture time.
	Revision buffer.RevisionID

	// text is the full buffer content at capture time.
	text string
}

// Text returns the captured buffer content.
func (c *Checkpoint) Text() string {
	return c.text
}

// Len returns the byte length of the captured content.
func (c *Checkpoint) Len() buffer.ByteOffset {
	return buffer.ByteOffset(len(c.text))
}

// Age returns how long ago the checkpoint was created.
func (c *Checkpoint) Age() time.Duration {
	return time.Since(c.Timestamp)
}

// Store manages named checkpoints.
// All operations are thread-safe.
type Store struct {
	mu          sync.RWMutex
	checkpoints map[CheckpointID]*Checkpoint
	byName      map[string]*Checkpoint
	maxEntries  int
}

// NewStore creates a checkpoint store. maxEntries bounds the number of
// retained checkpoints; non-positive means unbounded.
func NewStore(maxEntries int) *Store {
	return &Store{
		checkpoints: make(map[CheckpointID]*Checkpoint),
		byName:      make(map[string]*Checkpoint),
		maxEntries:  maxEntries,
	}
}

// Create captures a new named checkpoint.
// If a checkpoint with the same non-empty name exists, it is replaced.
func (s *Store) Create(name, text string, revision buffer.RevisionID) *Checkpoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byName[name]; ok && name != "" {
		delete(s.checkpoints, existing.ID)
	}

	cp := &Checkpoint{
		ID:        NewCheckpointID(),
		Name:      name,
		Timestamp: time.Now(),
		Revision:  revision,
		text:      text,
	}

	s.checkpoints[cp.ID] = cp
	if name != "" {
		s.byName[name] = cp
	}

	s.trimLocked()
	return cp
}

// trimLocked drops the oldest checkpoints past the configured bound.
func (s *Store) trimLocked() {
	if s.maxEntries <= 0 || len(s.checkpoints) <= s.maxEntries {
		return
	}

	all := make([]*Checkpoint, 0, len(s.checkpoints))
	for _, cp := range s.checkpoints {
		all = append(all, cp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})

	for _, cp := range all[:len(all)-s.maxEntries] {
		delete(s.checkpoints, cp.ID)
		if named, ok := s.byName[cp.Name]; ok && named.ID == cp.ID {
			delete(s.byName, cp.Name)
		}
	}
}

// Get retrieves a checkpoint by ID.
func (s *Store) Get(id CheckpointID) (*Checkpoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp, ok := s.checkpoints[id]
	return cp, ok
}

// GetByName retrieves a checkpoint by name.
func (s *Store) GetByName(name string) (*Checkpoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp, ok := s.byName[name]
	return cp, ok
}

// List returns all checkpoints, newest first.
func (s *Store) List() []*Checkpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*Checkpoint, 0, len(s.checkpoints))
	for _, cp := range s.checkpoints {
		all = append(all, cp)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	return all
}

// Remove deletes a checkpoint by ID.
func (s *Store) Remove(id CheckpointID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp, ok := s.checkpoints[id]
	if !ok {
		return false
	}

	delete(s.checkpoints, id)
	if named, ok := s.byName[cp.Name]; ok && named.ID == id {
		delete(s.byName, cp.Name)
	}
	return true
}

// Count returns the number of stored checkpoints.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.checkpoints)
}

// Clear removes all checkpoints.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoints = make(map[CheckpointID]*Checkpoint)
	s.byName = make(map[string]*Checkpoint)
}
