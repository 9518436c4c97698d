package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/editcore/internal/engine"
)

const foxText = "The quick brown fox jumped over the lazy dog"

func newTestRunner(content string) (*Runner, *engine.Engine) {
	eng := engine.New(engine.WithContent(content))
	return New(eng), eng
}

func TestRunLua(t *testing.T) {
	r, eng := newTestRunner(foxText)

	err := r.RunLua(`
		editor.perform("fast", 4, 9)
		editor.perform("canine", 40, 43)
	`)
	if err != nil {
		t.Fatalf("RunLua() error = %v", err)
	}

	want := "The fast brown fox jumped over the lazy canine"
	if got := eng.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if eng.UndoCount() != 2 {
		t.Errorf("UndoCount() = %d, want 2", eng.UndoCount())
	}
}

func TestRunLuaUndoRedo(t *testing.T) {
	r, eng := newTestRunner(foxText)

	err := r.RunLua(`
		editor.perform("fast", 4, 9)
		editor.undo()
		if editor.text() ~= "` + foxText + `" then
			error("undo did not restore original text")
		end
		editor.redo()
	`)
	if err != nil {
		t.Fatalf("RunLua() error = %v", err)
	}

	want := "The fast brown fox jumped over the lazy dog"
	if got := eng.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestRunLuaQueries(t *testing.T) {
	r, _ := newTestRunner("hello")

	err := r.RunLua(`
		if editor.len() ~= 5 then error("len") end
		if editor.can_undo() then error("can_undo before edit") end
		editor.perform("H", 0, 1)
		if not editor.can_undo() then error("can_undo after edit") end
		if editor.net_change() ~= 0 then error("net_change") end
		if editor.undo_count() ~= 1 then error("undo_count") end
		if editor.redo_count() ~= 0 then error("redo_count") end
	`)
	if err != nil {
		t.Fatalf("RunLua() error = %v", err)
	}
}

func TestRunLuaCheckpointRestore(t *testing.T) {
	r, eng := newTestRunner("original")

	err := r.RunLua(`
		local id = editor.checkpoint("before")
		editor.perform("mangled", 0, 8)
		editor.restore(id)
	`)
	if err != nil {
		t.Fatalf("RunLua() error = %v", err)
	}
	if got := eng.Text(); got != "original" {
		t.Errorf("Text() = %q, want %q", got, "original")
	}
	// Restore goes through history, so it undoes like any edit.
	if _, err := eng.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if got := eng.Text(); got != "mangled" {
		t.Errorf("Text() after undo = %q, want %q", got, "mangled")
	}
}

func TestRunLuaErrorPropagates(t *testing.T) {
	r, eng := newTestRunner("short")

	err := r.RunLua(`editor.perform("x", 0, 100)`)
	if err == nil {
		t.Fatal("RunLua() error = nil, want range error")
	}
	if got := eng.Text(); got != "short" {
		t.Errorf("Text() after failed script = %q, want %q", got, "short")
	}
}

func TestRunLuaSandbox(t *testing.T) {
	r, _ := newTestRunner("")

	// os and io are not opened; indexing them must fail.
	err := r.RunLua(`os.execute("true")`)
	if err == nil {
		t.Error("RunLua() allowed os.execute")
	}
	err = r.RunLua(`io.open("/etc/passwd")`)
	if err == nil {
		t.Error("RunLua() allowed io.open")
	}
}

func TestRunJSON(t *testing.T) {
	r, eng := newTestRunner(foxText)

	scriptData := `{"edits": [
		{"op": "perform", "text": "fast", "from": 4, "to": 9},
		{"op": "perform", "text": "canine", "from": 40, "to": 43},
		{"op": "undo"},
		{"op": "redo"}
	]}`
	if err := r.RunJSON([]byte(scriptData)); err != nil {
		t.Fatalf("RunJSON() error = %v", err)
	}

	want := "The fast brown fox jumped over the lazy canine"
	if got := eng.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestRunJSONCheckpoint(t *testing.T) {
	r, eng := newTestRunner("original")

	scriptData := `{"edits": [
		{"op": "checkpoint", "name": "safe"},
		{"op": "perform", "text": "changed", "from": 0, "to": 8},
		{"op": "restore", "name": "safe"}
	]}`
	if err := r.RunJSON([]byte(scriptData)); err != nil {
		t.Fatalf("RunJSON() error = %v", err)
	}
	if got := eng.Text(); got != "original" {
		t.Errorf("Text() = %q, want %q", got, "original")
	}
}

func TestRunJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"invalid json", `{edits: [}`, ErrBadScript},
		{"missing edits", `{"steps": []}`, ErrBadScript},
		{"unknown op", `{"edits": [{"op": "rotate"}]}`, ErrBadScript},
		{"missing op", `{"edits": [{"text": "x"}]}`, ErrBadScript},
		{"perform without fields", `{"edits": [{"op": "perform"}]}`, ErrBadScript},
		{"perform without range", `{"edits": [{"op": "perform", "text": "x"}]}`, ErrBadScript},
		{"restore without name", `{"edits": [{"op": "restore"}]}`, ErrBadScript},
		{"unknown checkpoint", `{"edits": [{"op": "restore", "name": "nope"}]}`, engine.ErrCheckpointNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRunner("text")
			err := r.RunJSON([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RunJSON() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunJSONIncompleteStepLeavesHistoryAlone(t *testing.T) {
	r, eng := newTestRunner("text")

	err := r.RunJSON([]byte(`{"edits": [{"op": "perform"}]}`))
	if !errors.Is(err, ErrBadScript) {
		t.Fatalf("RunJSON() error = %v, want %v", err, ErrBadScript)
	}
	if eng.UndoCount() != 0 {
		t.Errorf("UndoCount() = %d, want 0", eng.UndoCount())
	}
}

func TestRunJSONAbortsOnFailure(t *testing.T) {
	r, eng := newTestRunner("abc")

	scriptData := `{"edits": [
		{"op": "perform", "text": "x", "from": 0, "to": 1},
		{"op": "perform", "text": "y", "from": 0, "to": 50},
		{"op": "perform", "text": "z", "from": 0, "to": 1}
	]}`
	err := r.RunJSON([]byte(scriptData))
	if !errors.Is(err, engine.ErrRangeInvalid) {
		t.Fatalf("RunJSON() error = %v, want %v", err, engine.ErrRangeInvalid)
	}
	// First step applied, failing step and later steps did not.
	if got := eng.Text(); got != "xbc" {
		t.Errorf("Text() = %q, want %q", got, "xbc")
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()

	luaPath := filepath.Join(dir, "edit.lua")
	if err := os.WriteFile(luaPath, []byte(`editor.perform("X", 0, 1)`), 0o644); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "edit.json")
	if err := os.WriteFile(jsonPath, []byte(`{"edits":[{"op":"perform","text":"Y","from":1,"to":2}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	r, eng := newTestRunner("abc")
	if err := r.RunFile(luaPath); err != nil {
		t.Fatalf("RunFile(lua) error = %v", err)
	}
	if err := r.RunFile(jsonPath); err != nil {
		t.Fatalf("RunFile(json) error = %v", err)
	}
	if got := eng.Text(); got != "XYc" {
		t.Errorf("Text() = %q, want %q", got, "XYc")
	}

	err := r.RunFile(filepath.Join(dir, "edit.sh"))
	if !errors.Is(err, ErrUnsupportedScript) {
		t.Errorf("RunFile(sh) error = %v, want %v", err, ErrUnsupportedScript)
	}
	if err != nil && !strings.Contains(err.Error(), "edit.sh") {
		t.Errorf("RunFile(sh) error %q does not name the file", err)
	}
}
