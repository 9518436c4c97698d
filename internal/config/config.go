// Package config provides typed configuration for editcore.
//
// Configuration is read from a single TOML or YAML file chosen by
// extension; a missing file is not an error and leaves defaults in place:
//
//	[history]
//	max_entries = 500
//	max_checkpoints = 50
//
//	[script]
//	timeout = "5s"
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dshills/editcore/internal/config/loader"
)

// Errors returned by config operations.
var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
	DefaultMaxCheckpoints = 100
	DefaultScriptTimeout  = 5 * time.Second
)

// HistoryConfig holds undo/redo settings.
type HistoryConfig struct {
	// MaxEntries is the maximum depth of the undo stack.
	MaxEntries int

	// MaxCheckpoints is the maximum number of retained checkpoints.
	MaxCheckpoints int
}

// ScriptConfig holds edit-script runner settings.
type ScriptConfig struct {
	// Timeout is the execution time budget for a script run.
	Timeout time.Duration
}

// Config is the top-level editcore configuration.
type Config struct {
	History HistoryConfig
	Script  ScriptConfig
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		History: HistoryConfig{
			MaxEntries:     DefaultMaxUndoEntries,
			MaxCheckpoints: DefaultMaxCheckpoints,
		},
		Script: ScriptConfig{
			Timeout: DefaultScriptTimeout,
		},
	}
}

// Load reads configuration from path, merged over defaults.
// The loader is chosen by extension (.toml, .yaml, .yml).
// An empty path or a missing file returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var l loader.FileLoader
	switch filepath.Ext(path) {
	case ".toml":
		l = loader.NewTOMLLoader(path)
	case ".yaml", ".yml":
		l = loader.NewYAMLLoader(path)
	default:
		return cfg, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	raw, err := l.Load()
	if err != nil {
		return cfg, err
	}
	if raw == nil {
		return cfg, nil
	}

	if err := cfg.apply(raw); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// apply copies recognized values from a raw config map.
// Unknown keys are ignored.
func (c *Config) apply(raw map[string]any) error {
	if section, ok := mapValue(raw, "history"); ok {
		if v, ok, err := intValue(section, "max_entries"); err != nil {
			return err
		} else if ok {
			c.History.MaxEntries = v
		}
		if v, ok, err := intValue(section, "max_checkpoints"); err != nil {
			return err
		} else if ok {
			c.History.MaxCheckpoints = v
		}
	}

	if section, ok := mapValue(raw, "script"); ok {
		if v, ok, err := durationValue(section, "timeout"); err != nil {
			return err
		} else if ok {
			c.Script.Timeout = v
		}
	}

	return nil
}

// Validate rejects nonsensical settings.
func (c *Config) Validate() error {
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive, got %d", c.History.MaxEntries)
	}
	if c.History.MaxCheckpoints <= 0 {
		return fmt.Errorf("history.max_checkpoints must be positive, got %d", c.History.MaxCheckpoints)
	}
	if c.Script.Timeout <= 0 {
		return fmt.Errorf("script.timeout must be positive, got %s", c.Script.Timeout)
	}
	return nil
}

// mapValue extracts a nested section map.
func mapValue(raw map[string]any, key string) (map[string]any, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// intValue extracts an integer setting. TOML decodes integers as int64,
// YAML as int; both are accepted.
func intValue(section map[string]any, key string) (int, bool, error) {
	v, ok := section[key]
	if !ok {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case float64:
		return int(n), true, nil
	default:
		return 0, false, fmt.Errorf("%s: expected integer, got %T", key, v)
	}
}

// durationValue extracts a duration setting given as a string like "5s".
func durationValue(section map[string]any, key string) (time.Duration, bool, error) {
	v, ok := section[key]
	if !ok {
		return 0, false, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, false, fmt.Errorf("%s: expected duration string, got %T", key, v)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return d, true, nil
}
