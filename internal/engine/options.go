package engine

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
	DefaultMaxCheckpoints = 100
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithMaxCheckpoints sets the maximum number of retained checkpoints.
func WithMaxCheckpoints(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxCheckpoints = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Edit operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
