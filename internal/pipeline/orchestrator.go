package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-bn2html/internal/cache"
	"github.com/alnah/go-bn2html/internal/doctree"
	"github.com/alnah/go-bn2html/internal/parser"
)

// DefaultSegmentTimeout bounds one worker's time on one segment.
const DefaultSegmentTimeout = 30 * time.Second

// Config configures an Orchestrator.
type Config struct {
	Workers        int           // worker pool size (<=1 disables parallelism)
	ChunkSize      int           // target segment length in lines (lower bound)
	SegmentTimeout time.Duration // per-segment timeout (0 = DefaultSegmentTimeout)
	Cache          *cache.BlockCache
	Logger         *slog.Logger // nil = discard
}

// Orchestrator coordinates splitting, parallel parsing, and ordered
// merging. Safe for sequential reuse; the embedded tuner carries chunk-size
// and worker adjustments from one run to the next.
type Orchestrator struct {
	cfg   Config
	tuner *tuner
	log   *slog.Logger
}

// NewOrchestrator creates an orchestrator for the given configuration.
func NewOrchestrator(cfg Config) *Orchestrator {
	if cfg.SegmentTimeout <= 0 {
		cfg.SegmentTimeout = DefaultSegmentTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		cfg:   cfg,
		tuner: newTuner(cfg.ChunkSize, cfg.Workers),
		log:   log,
	}
}

// segmentResult is one worker's output, held by index until merge.
type segmentResult struct {
	nodes []*doctree.Node
	diags []doctree.Diagnostic
	err   error
}

// Run parses lines into a document, in parallel when the input is large
// enough. Segment results merge in original document order regardless of
// completion order; the merge itself is single-threaded.
func (o *Orchestrator) Run(ctx context.Context, lines []string) (*doctree.Document, error) {
	workers := o.tuner.workers
	if workers > 1 && !o.shouldParallelize(lines) {
		workers = 1
	}

	if workers <= 1 {
		nodes, diags := parser.ParseSegment(lines, 1, parser.Options{Cache: o.cfg.Cache})
		return &doctree.Document{Children: nodes, Diagnostics: diags}, ctx.Err()
	}

	segments := Split(lines, o.tuner.chunkSize)
	o.log.Debug("parallel parse",
		"lines", len(lines), "segments", len(segments), "workers", workers)

	started := time.Now()
	results := make([]segmentResult, len(segments))

	// Bounded fan-out: the semaphore caps in-flight workers, each segment
	// is owned by exactly one goroutine, results land in a fixed-position
	// slice so no ordering bookkeeping is needed.
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range segments {
		sem <- struct{}{}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = o.parseSegment(ctx, segments[idx])
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Failed segments are retried once, single-threaded, on their original
	// lines. A second failure degrades the segment to an error node.
	doc := &doctree.Document{}
	for i, seg := range segments {
		r := results[i]
		if r.err != nil {
			o.log.Warn("segment failed, retrying single-threaded",
				"segment", seg.Index, "start_line", seg.StartLine, "error", r.err)
			r = o.parseSegment(ctx, seg)
		}
		if r.err != nil {
			o.log.Error("segment failed twice, degrading to error node",
				"segment", seg.Index, "start_line", seg.StartLine, "error", r.err)
			doc.Children = append(doc.Children, &doctree.Node{
				Kind: doctree.KindError,
				Text: strings.Join(seg.Lines, "\n"),
				Line: seg.StartLine,
			})
			doc.Diagnostics = append(doc.Diagnostics, doctree.Diagnostic{
				Line:       seg.StartLine,
				Kind:       doctree.DiagWorkerFailure,
				Message:    fmt.Sprintf("segment %d could not be processed: %v", seg.Index, r.err),
				Suggestion: "the segment content is preserved verbatim",
			})
			continue
		}
		doc.Children = append(doc.Children, r.nodes...)
		doc.Diagnostics = append(doc.Diagnostics, r.diags...)
	}

	o.tune(time.Since(started), len(segments))
	return doc, ctx.Err()
}

// parseSegment runs the parser on one segment under the per-segment
// timeout, converting panics into errors so a bad segment cannot take down
// the whole document.
func (o *Orchestrator) parseSegment(ctx context.Context, seg Segment) segmentResult {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.SegmentTimeout)
	defer cancel()

	done := make(chan segmentResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- segmentResult{err: fmt.Errorf("parser panic: %v", r)}
			}
		}()
		nodes, diags := parser.ParseSegment(seg.Lines, seg.StartLine, parser.Options{Cache: o.cfg.Cache})
		done <- segmentResult{nodes: nodes, diags: diags}
	}()

	select {
	case <-ctx.Done():
		// The goroutine is abandoned; its result is discarded, never
		// half-applied.
		return segmentResult{err: ctx.Err()}
	case r := <-done:
		return r
	}
}

// shouldParallelize applies both size thresholds: line count and byte size
// must exceed their minimums for parallel dispatch to pay off.
func (o *Orchestrator) shouldParallelize(lines []string) bool {
	if len(lines) < ParallelMinLines {
		return false
	}
	total := 0
	for _, l := range lines {
		total += len(l) + 1
		if total >= ParallelMinBytes {
			return true
		}
	}
	return false
}

// tune feeds this run's measurements into the adaptive tuner.
func (o *Orchestrator) tune(elapsed time.Duration, segments int) {
	if segments == 0 {
		return
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	avg := elapsed / time.Duration(segments)
	o.tuner.observe(avg, ms.HeapAlloc)
	o.log.Debug("tuner adjusted",
		"avg_chunk", avg, "heap", ms.HeapAlloc,
		"next_chunk_size", o.tuner.chunkSize, "next_workers", o.tuner.workers)
}
