// Package snapshot persists windows and words as replayable state scripts.
//
// A snapshot is a sequence of Lua-style statements, one block per entry:
//
//	if cpu == nil then cpu = window.new(16, 4, 8) end
//	cpu:clear()
//	cpu:add({-2, -1, 1, 2})
//	if pattern == nil then pattern = word.new("ad", 4) end
//
// The constructor guard makes replay idempotent: a host that kept the key
// alive skips the rebuild, a fresh host constructs it and refills it from
// the add statement. Restore replays the same statements through the public
// sax API, so a restored window is behaviorally identical to the one that
// was written, including its buffered samples and current word. Standalone
// words keep their letters and cardinality; an attached sample count is not
// part of the script form.
//
// # Format
//
// By default the script is written bare, so state files stay greppable:
//
//	sw, _ := snapshot.NewWriter(file)
//	_ = sw.WriteWindow("cpu", window)
//	_ = sw.Close()
//
// With a codec selected, Close compresses the script and wraps it in a
// small framed archive (magic "STSS") that Restore detects automatically:
//
//	sw, _ := snapshot.NewWriter(file, snapshot.WithCompression(format.CompressionZstd))
//
// Restore also skips blank lines and "--" comments, so hand-annotated state
// files replay cleanly.
package snapshot
