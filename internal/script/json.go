package script

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/editcore/internal/engine"
)

var (
	// ErrUnsupportedScript indicates a script file with an unrecognized extension.
	ErrUnsupportedScript = errors.New("unsupported script format")
	// ErrBadScript indicates a JSON script that is malformed or missing the edits list.
	ErrBadScript = errors.New("malformed edit script")
)

// RunJSON applies a JSON edit script. Steps run in order; the first
// failing step aborts the run and earlier steps remain applied.
func (r *Runner) RunJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: invalid JSON", ErrBadScript)
	}
	edits := gjson.GetBytes(data, "edits")
	if !edits.IsArray() {
		return fmt.Errorf("%w: missing edits array", ErrBadScript)
	}

	for i, step := range edits.Array() {
		if err := r.applyStep(step); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// applyStep dispatches one JSON script step.
func (r *Runner) applyStep(step gjson.Result) error {
	op := step.Get("op").String()
	switch op {
	case "perform":
		text := step.Get("text")
		from := step.Get("from")
		to := step.Get("to")
		if !text.Exists() || !from.Exists() || !to.Exists() {
			return fmt.Errorf("%w: perform step requires text, from, to", ErrBadScript)
		}
		_, err := r.eng.Perform(text.String(), engine.ByteOffset(from.Int()), engine.ByteOffset(to.Int()))
		return err
	case "undo":
		_, err := r.eng.Undo()
		return err
	case "redo":
		_, err := r.eng.Redo()
		return err
	case "checkpoint":
		r.eng.CreateCheckpoint(step.Get("name").String())
		return nil
	case "restore":
		if !step.Get("name").Exists() {
			return fmt.Errorf("%w: restore step requires name", ErrBadScript)
		}
		name := step.Get("name").String()
		for _, cp := range r.eng.Checkpoints() {
			if cp.Name == name {
				_, err := r.eng.RestoreCheckpoint(cp.ID)
				return err
			}
		}
		return engine.ErrCheckpointNotFound
	case "":
		return fmt.Errorf("%w: step without op", ErrBadScript)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrBadScript, op)
	}
}

// ext returns the lowercased file extension.
func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
