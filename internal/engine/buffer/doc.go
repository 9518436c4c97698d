// Package buffer provides the mutable text container for the editcore engine.
//
// A Buffer is a plain byte sequence with a single mutation primitive:
//
//	Replace(start, end, text)
//
// which splices the range [start, end) out of the buffer and splices the
// replacement text in, returning the full resulting content. The buffer
// deliberately tracks no edit history; undo/redo lives in the history
// package, which reads and writes the buffer through Replace.
//
// Positions are byte offsets (ByteOffset). Each successful mutation bumps
// the buffer's RevisionID, which higher layers use to tag checkpoints.
package buffer
