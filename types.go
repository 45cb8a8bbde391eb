package bn2html

import (
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/alnah/go-bn2html/internal/doctree"
)

// Defaults for converter configuration.
const (
	// defaultTimeout bounds one whole conversion.
	defaultTimeout = 30 * time.Second

	// defaultCacheTTL is how long a parsed block stays reusable.
	defaultCacheTTL = 10 * time.Minute

	// defaultSyntaxStyle is the chroma style for code blocks.
	defaultSyntaxStyle = "github"
)

// Input contains conversion parameters for one document.
type Input struct {
	Source      string // block-notation content (required)
	Title       string // document title (optional, default "Document")
	CSS         string // custom CSS appended to the embedded stylesheet (optional)
	TOCTitle    string // heading above generated tables of contents (optional)
	SyntaxStyle string // chroma style for code blocks (optional, default "github")
	Minify      bool   // compress inter-tag whitespace in the output
}

// Validate checks that required fields are present and valid.
func (in Input) Validate() error {
	if in.Source == "" {
		return ErrEmptySource
	}
	if in.SyntaxStyle != "" {
		if _, ok := styles.Registry[in.SyntaxStyle]; !ok {
			return ErrInvalidSyntaxStyle
		}
	}
	return nil
}

// Diagnostic is a recoverable problem found during conversion: an unclosed
// block, an unknown keyword, a malformed attribute. Diagnostics accompany a
// successful result; they never make Convert fail.
type Diagnostic struct {
	Line       int    // 1-based line in the source
	Kind       string // stable category name, e.g. "unknown keyword"
	Message    string
	Suggestion string // optional fix hint, may be empty
}

// Result is a completed conversion.
type Result struct {
	HTML        string
	Diagnostics []Diagnostic
}

// toDiagnostics converts internal diagnostics to the public form.
func toDiagnostics(diags []doctree.Diagnostic) []Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic{
			Line:       d.Line,
			Kind:       d.Kind.String(),
			Message:    d.Message,
			Suggestion: d.Suggestion,
		}
	}
	return out
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout            time.Duration
	workers            int
	chunkSize          int
	cacheTTL           time.Duration
	diagnosticsSummary bool
}

// WithTimeout sets the per-conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("bn2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithWorkers sets the parse worker count. Zero means derive the count from
// GOMAXPROCS; one disables parallelism.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("bn2html: WithWorkers count must not be negative")
	}
	return func(c *Converter) {
		c.cfg.workers = n
	}
}

// WithChunkSize sets the target segment length in lines for parallel
// parsing. Zero means use the built-in default.
func WithChunkSize(n int) Option {
	if n < 0 {
		panic("bn2html: WithChunkSize must not be negative")
	}
	return func(c *Converter) {
		c.cfg.chunkSize = n
	}
}

// WithCacheTTL sets how long parsed blocks stay reusable across
// conversions. Zero disables the cache.
func WithCacheTTL(d time.Duration) Option {
	if d < 0 {
		panic("bn2html: WithCacheTTL must not be negative")
	}
	return func(c *Converter) {
		c.cfg.cacheTTL = d
	}
}

// WithDiagnosticsSummary appends a visible summary section to the output
// when the source produced diagnostics.
func WithDiagnosticsSummary() Option {
	return func(c *Converter) {
		c.cfg.diagnosticsSummary = true
	}
}
