// Package pipeline partitions large inputs into boundary-safe segments and
// runs them through the parser on a bounded worker pool, merging results in
// document order.
package pipeline

import (
	"strings"

	"github.com/alnah/go-bn2html/internal/scanner"
)

// Parallelization thresholds. Inputs below either threshold are parsed as a
// single segment: the fixed cost of dispatch would dominate small documents.
const (
	ParallelMinLines = 2000
	ParallelMinBytes = 128 << 10
)

// DefaultChunkSize is the default target segment length in lines. It is a
// lower bound: boundaries move forward until block nesting returns to zero.
const DefaultChunkSize = 5000

// MinChunkSize floors adaptive shrinking so segments stay worth dispatching.
const MinChunkSize = 500

// Segment is a contiguous slice of source lines with a stable starting
// offset. The orchestrator owns a segment until it hands it to a worker;
// the worker owns it exclusively until it returns a partial tree.
type Segment struct {
	Index     int
	StartLine int // 1-based offset of Lines[0] in the whole document
	Lines     []string
}

// Split partitions lines into ordered segments of at least target lines
// each. The critical invariant: a boundary never falls inside an open block
// or between two lines of the same paragraph. When the naive line-count
// boundary would, it advances to the next line where the open-block depth
// returns to zero and the paragraph ends, so every segment is independently
// parseable and a merged parse equals a whole-document parse.
func Split(lines []string, target int) []Segment {
	if target <= 0 {
		target = DefaultChunkSize
	}
	if len(lines) == 0 {
		return nil
	}

	var segments []Segment
	var t scanner.DepthTracker
	start := 0

	for i, line := range lines {
		t.Feed(line)
		if i-start+1 < target {
			continue
		}
		if t.Depth() != 0 {
			continue // inside an open block, keep extending
		}
		if i+1 < len(lines) && paragraphLine(line) && paragraphLine(lines[i+1]) {
			continue // mid-paragraph, keep extending
		}
		segments = append(segments, Segment{
			Index:     len(segments),
			StartLine: start + 1,
			Lines:     lines[start : i+1],
		})
		start = i + 1
	}

	if start < len(lines) {
		segments = append(segments, Segment{
			Index:     len(segments),
			StartLine: start + 1,
			Lines:     lines[start:],
		})
	}
	return segments
}

// paragraphLine reports whether a line is non-blank paragraph text. Two
// adjacent paragraph lines belong to the same flow, so a segment boundary
// between them would split one paragraph node into two.
func paragraphLine(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return scanner.ScanLine(text, 0).Kind == scanner.LinePlain
}
