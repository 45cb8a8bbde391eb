package scanner

import "strings"

// DepthTracker follows block nesting across a line stream without building a
// tree. The chunk splitter uses it to keep segment boundaries out of open
// blocks, and the parser uses it to find a block's matching close when
// consulting the parse cache.
//
// Raw blocks (code, md) suppress nested opens: inside them only a bare "]]"
// line is significant, matching parser behavior exactly.
type DepthTracker struct {
	stack []bool // true = raw block
}

// Feed advances the tracker by one line.
func (t *DepthTracker) Feed(text string) {
	trimmed := strings.TrimSpace(text)

	if trimmed == CloseMarker {
		if n := len(t.stack); n > 0 {
			t.stack = t.stack[:n-1]
		}
		return
	}
	if len(t.stack) > 0 && t.stack[len(t.stack)-1] {
		// Inside a raw block everything except the bare close is content.
		return
	}
	if !strings.HasPrefix(trimmed, OpenMarker) {
		return
	}

	inner := trimmed[len(OpenMarker):]
	idx := strings.Index(inner, OpenMarker)
	if idx < 0 {
		return // marker-only or plain, no depth change
	}
	rest := strings.TrimSpace(inner[idx+len(OpenMarker):])
	if rest != "" {
		return // single-line form or degraded line, no depth change
	}
	t.stack = append(t.stack, headerOpensRaw(inner[:idx]))
}

// Depth returns the number of currently open blocks.
func (t *DepthTracker) Depth() int {
	return len(t.stack)
}

// InRaw reports whether the innermost open block is a raw (code/md) block.
func (t *DepthTracker) InRaw() bool {
	return len(t.stack) > 0 && t.stack[len(t.stack)-1]
}

// headerOpensRaw reports whether a block header opens a raw block. The rule
// must match the parser's: any simple keyword equal to "code" or "md".
func headerOpensRaw(header string) bool {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return false
	}
	for _, part := range strings.Split(fields[0], "+") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "code", "md":
			return true
		}
	}
	return false
}
