package engine

import (
	"errors"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/history"
	"github.com/dshills/editcore/internal/engine/tracking"
)

// Errors returned by engine operations.
var (
	// ErrRangeInvalid indicates offsets outside the valid buffer range.
	ErrRangeInvalid = buffer.ErrRangeInvalid

	// ErrStaleEdit indicates an edit drawn from history whose offsets no
	// longer fit the buffer. Internal consistency failure; not recoverable.
	ErrStaleEdit = history.ErrStaleEdit

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrCheckpointNotFound indicates a checkpoint was not found.
	ErrCheckpointNotFound = tracking.ErrCheckpointNotFound

	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
