package bn2html

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-bn2html/internal/cache"
	"github.com/alnah/go-bn2html/internal/doctree"
	"github.com/alnah/go-bn2html/internal/pipeline"
	"github.com/alnah/go-bn2html/internal/render"
)

// documentParser turns source lines into a document tree.
type documentParser interface {
	Run(ctx context.Context, lines []string) (*doctree.Document, error)
}

// Compile-time interface check.
var _ documentParser = (*pipeline.Orchestrator)(nil)

// Converter converts block-notation documents to HTML. A Converter is not
// safe for concurrent use; for parallel batch work use ConverterPool so
// each goroutine owns its converter.
type Converter struct {
	cfg    converterConfig
	cache  *cache.BlockCache
	parser documentParser
	log    *slog.Logger

	mu     sync.Mutex
	closed bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

// New creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithWorkers).
func New(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			timeout:  defaultTimeout,
			cacheTTL: defaultCacheTTL,
		},
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		stop: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.cacheTTL > 0 {
		c.cache = cache.NewBlockCache(c.cfg.cacheTTL)
		c.wg.Add(1)
		go c.janitor()
	}

	// Allow tests to inject a parser.
	if c.parser == nil {
		c.parser = pipeline.NewOrchestrator(pipeline.Config{
			Workers:   ResolvePoolSize(c.cfg.workers),
			ChunkSize: c.cfg.chunkSize,
			Cache:     c.cache,
			Logger:    c.log,
		})
	}

	return c
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// Convert runs the full pipeline and returns the HTML document together
// with any diagnostics. Diagnostics describe recoverable problems in the
// source; they never cause an error. The context is used for cancellation
// on top of the configured timeout.
func (c *Converter) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	doc, err := c.parser.Run(ctx, splitLines(input.Source))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	renderer := render.New(render.Options{
		Title:              input.Title,
		ExtraCSS:           input.CSS,
		TOCTitle:           input.TOCTitle,
		Minify:             input.Minify,
		DiagnosticsSummary: c.cfg.diagnosticsSummary,
		SyntaxStyle:        input.SyntaxStyle,
	})
	html, err := renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Result{
		HTML:        html,
		Diagnostics: toDiagnostics(doc.Diagnostics),
	}, nil
}

// ParseOnly parses the source and returns its diagnostics without
// rendering. Useful for lint-style checks over many files.
func (c *Converter) ParseOnly(ctx context.Context, source string) ([]Diagnostic, error) {
	if source == "" {
		return nil, ErrEmptySource
	}
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	doc, err := c.parser.Run(ctx, splitLines(source))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return toDiagnostics(doc.Diagnostics), nil
}

// CacheLen returns the number of currently cached block parses.
func (c *Converter) CacheLen() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// Close stops the cache janitor. A closed converter rejects further
// conversions.
func (c *Converter) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.stop)
	c.mu.Unlock()

	c.wg.Wait()
	return nil
}

func (c *Converter) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConverterClosed
	}
	return nil
}

// janitor sweeps expired cache entries in the background so long-lived
// converters do not accumulate stale blocks between conversions.
func (c *Converter) janitor() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.cfg.cacheTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if n := c.cache.CleanupExpired(); n > 0 {
				c.log.Debug("cache cleanup", "evicted", n, "remaining", c.cache.Len())
			}
		}
	}
}

// splitLines normalizes line endings and splits the source into lines.
func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	return strings.Split(source, "\n")
}
