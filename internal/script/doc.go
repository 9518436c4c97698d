// Package script executes edit scripts against an engine.
//
// Two formats are supported. Lua scripts run in a sandboxed interpreter
// with an "editor" module exposing the engine operations:
//
//	editor.perform("fast", 4, 9)
//	editor.undo()
//	editor.redo()
//	local t = editor.text()
//
// JSON scripts are a flat list of steps applied in order:
//
//	{"edits": [
//	  {"op": "perform", "text": "fast", "from": 4, "to": 9},
//	  {"op": "undo"}
//	]}
//
// Lua execution is bounded by a configurable timeout. The io, os, debug
// and package libraries are not available to scripts.
package script
