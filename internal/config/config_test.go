package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.History.MaxEntries != DefaultMaxUndoEntries {
		t.Errorf("MaxEntries = %d, want %d", cfg.History.MaxEntries, DefaultMaxUndoEntries)
	}
	if cfg.Script.Timeout != DefaultScriptTimeout {
		t.Errorf("Timeout = %s, want %s", cfg.Script.Timeout, DefaultScriptTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "editcore.toml", `
[history]
max_entries = 500
max_checkpoints = 50

[script]
timeout = "2s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxEntries != 500 {
		t.Errorf("MaxEntries = %d, want 500", cfg.History.MaxEntries)
	}
	if cfg.History.MaxCheckpoints != 50 {
		t.Errorf("MaxCheckpoints = %d, want 50", cfg.History.MaxCheckpoints)
	}
	if cfg.Script.Timeout != 2*time.Second {
		t.Errorf("Timeout = %s, want 2s", cfg.Script.Timeout)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "editcore.yaml", `
history:
  max_entries: 250
script:
  timeout: 750ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.MaxEntries != 250 {
		t.Errorf("MaxEntries = %d, want 250", cfg.History.MaxEntries)
	}
	// Unset values keep their defaults.
	if cfg.History.MaxCheckpoints != DefaultMaxCheckpoints {
		t.Errorf("MaxCheckpoints = %d, want default", cfg.History.MaxCheckpoints)
	}
	if cfg.Script.Timeout != 750*time.Millisecond {
		t.Errorf("Timeout = %s, want 750ms", cfg.Script.Timeout)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load of empty path: %v", err)
	}
	if cfg != Default() {
		t.Error("empty path should yield defaults")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}
	if cfg != Default() {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("editcore.ini")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero entries", "[history]\nmax_entries = 0\n"},
		{"negative checkpoints", "[history]\nmax_checkpoints = -1\n"},
		{"bad duration", "[script]\ntimeout = \"soon\"\n"},
		{"wrong type", "[history]\nmax_entries = \"many\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "editcore.toml", tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load should reject the config")
			}
		})
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeFile(t, "editcore.toml", "not [valid toml")
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed TOML")
	}
}
