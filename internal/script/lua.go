package script

import (
	"context"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/editcore/internal/engine"
)

// DefaultTimeout bounds a single script execution.
const DefaultTimeout = 5 * time.Second

// Runner executes Lua and JSON edit scripts against an engine.
//
// A Runner is not goroutine-safe: gopher-lua states are single-threaded,
// and scripts mutate the engine sequentially anyway.
type Runner struct {
	eng     *engine.Engine
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-execution timeout for Lua scripts.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// New creates a Runner bound to the given engine.
func New(eng *engine.Engine, opts ...Option) *Runner {
	r := &Runner{
		eng:     eng,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunLua executes a Lua script from source.
func (r *Runner) RunLua(code string) error {
	L, cancel := r.newState()
	defer cancel()
	defer L.Close()

	if err := L.DoString(code); err != nil {
		return fmt.Errorf("lua script: %w", err)
	}
	return nil
}

// RunLuaFile executes a Lua script from a file.
func (r *Runner) RunLuaFile(path string) error {
	L, cancel := r.newState()
	defer cancel()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("lua script %s: %w", path, err)
	}
	return nil
}

// newState builds a sandboxed Lua state with the editor module installed.
// The returned cancel func releases the execution deadline.
func (r *Runner) newState() (*lua.LState, context.CancelFunc) {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})

	// Safe libraries only. io, os, debug and package stay closed.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	r.installEditorModule(L)

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	L.SetContext(ctx)
	return L, cancel
}

// installEditorModule registers the editor table and its functions.
func (r *Runner) installEditorModule(L *lua.LState) {
	mod := L.NewTable()

	L.SetField(mod, "perform", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		from := L.CheckInt64(2)
		to := L.CheckInt64(3)
		result, err := r.eng.Perform(text, engine.ByteOffset(from), engine.ByteOffset(to))
		if err != nil {
			L.RaiseError("perform: %s", err.Error())
			return 0
		}
		L.Push(lua.LString(result))
		return 1
	}))

	L.SetField(mod, "undo", L.NewFunction(func(L *lua.LState) int {
		result, err := r.eng.Undo()
		if err != nil {
			L.RaiseError("undo: %s", err.Error())
			return 0
		}
		L.Push(lua.LString(result))
		return 1
	}))

	L.SetField(mod, "redo", L.NewFunction(func(L *lua.LState) int {
		result, err := r.eng.Redo()
		if err != nil {
			L.RaiseError("redo: %s", err.Error())
			return 0
		}
		L.Push(lua.LString(result))
		return 1
	}))

	L.SetField(mod, "text", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(r.eng.Text()))
		return 1
	}))

	L.SetField(mod, "len", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(r.eng.Len()))
		return 1
	}))

	L.SetField(mod, "can_undo", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(r.eng.CanUndo()))
		return 1
	}))

	L.SetField(mod, "can_redo", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(r.eng.CanRedo()))
		return 1
	}))

	L.SetField(mod, "undo_count", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(r.eng.UndoCount()))
		return 1
	}))

	L.SetField(mod, "redo_count", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(r.eng.RedoCount()))
		return 1
	}))

	L.SetField(mod, "net_change", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(r.eng.NetChangeOfLast()))
		return 1
	}))

	L.SetField(mod, "checkpoint", L.NewFunction(func(L *lua.LState) int {
		name := L.OptString(1, "")
		id := r.eng.CreateCheckpoint(name)
		L.Push(lua.LString(string(id)))
		return 1
	}))

	L.SetField(mod, "restore", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		result, err := r.eng.RestoreCheckpoint(engine.CheckpointID(id))
		if err != nil {
			L.RaiseError("restore: %s", err.Error())
			return 0
		}
		L.Push(lua.LString(result))
		return 1
	}))

	L.SetGlobal("editor", mod)
}

// RunFile executes a script file, picking the format by extension.
func (r *Runner) RunFile(path string) error {
	switch ext(path) {
	case ".lua":
		return r.RunLuaFile(path)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("script %s: %w", path, err)
		}
		if err := r.RunJSON(data); err != nil {
			return fmt.Errorf("script %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("script %s: %w", path, ErrUnsupportedScript)
	}
}
