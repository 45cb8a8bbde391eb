package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bn2html "github.com/alnah/go-bn2html"
	"github.com/alnah/go-bn2html/internal/assets"
	"github.com/alnah/go-bn2html/internal/config"
)

// Sentinel errors for CLI I/O.
var (
	ErrNoInput         = errors.New("no input files (pass paths or set input.defaultDir in config)")
	ErrReadSource      = errors.New("failed to read source")
	ErrReadCSS         = errors.New("failed to read CSS file")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrInvalidDuration = errors.New("invalid duration")
)

// sourceExt is the conventional block-notation file extension.
const sourceExt = ".bn"

// runParams is everything a conversion run needs, resolved from flags and
// config with flags taking precedence.
type runParams struct {
	inputs      []string
	output      string
	outputDir   string
	title       string
	css         string
	tocTitle    string
	syntaxStyle string
	minify      bool
	opts        []bn2html.Option
	check       bool
	log         *slog.Logger
}

// run executes one CLI invocation after flag parsing.
func run(flags *cliFlags, args []string, log *slog.Logger) error {
	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}

	p, err := resolveParams(flags, args, cfg, log)
	if err != nil {
		return err
	}

	if p.check {
		return runCheck(p)
	}

	if len(p.inputs) == 1 {
		conv := bn2html.New(p.opts...)
		defer conv.Close()
		return convertOne(conv, p, p.inputs[0])
	}
	return convertBatch(p)
}

// loadConfig loads the named config, or defaults when none is given.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(nameOrPath)
}

// resolveParams merges flags over config into a concrete run plan.
func resolveParams(flags *cliFlags, args []string, cfg *config.Config, log *slog.Logger) (*runParams, error) {
	p := &runParams{
		inputs:      args,
		output:      flags.output,
		outputDir:   cfg.Output.DefaultDir,
		title:       firstNonEmpty(flags.title, cfg.Document.Title),
		tocTitle:    firstNonEmpty(flags.tocTitle, cfg.Document.TOCTitle),
		syntaxStyle: firstNonEmpty(flags.syntaxStyle, cfg.Document.SyntaxStyle),
		minify:      flags.minify || cfg.Document.Minify,
		check:       flags.check,
		log:         log,
	}

	if len(p.inputs) == 0 && cfg.Input.DefaultDir != "" {
		matches, err := filepath.Glob(filepath.Join(cfg.Input.DefaultDir, "*"+sourceExt))
		if err != nil {
			return nil, fmt.Errorf("scanning input directory: %w", err)
		}
		p.inputs = matches
	}
	if len(p.inputs) == 0 {
		return nil, ErrNoInput
	}

	if css := firstNonEmpty(flags.cssFile, cfg.Document.CSSFile); css != "" {
		resolved, err := assets.ResolveCSS(css)
		if err != nil {
			if errors.Is(err, assets.ErrThemeNotFound) || errors.Is(err, assets.ErrEmptyThemeName) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrReadCSS, css, err)
		}
		p.css = resolved
	}

	opts, err := buildOptions(flags, cfg, log)
	if err != nil {
		return nil, err
	}
	p.opts = opts
	return p, nil
}

// buildOptions translates flag and config tuning values into converter
// options, validating before the option constructors can panic.
func buildOptions(flags *cliFlags, cfg *config.Config, log *slog.Logger) ([]bn2html.Option, error) {
	opts := []bn2html.Option{bn2html.WithLogger(log)}

	workers := flags.workers
	if workers == 0 {
		workers = cfg.Convert.Workers
	}
	if workers < 0 {
		return nil, fmt.Errorf("%w: %d", bn2html.ErrInvalidWorkers, workers)
	}
	if workers > 0 {
		opts = append(opts, bn2html.WithWorkers(workers))
	}

	chunk := flags.chunkSize
	if chunk == 0 {
		chunk = cfg.Convert.ChunkSize
	}
	if chunk < 0 {
		return nil, fmt.Errorf("%w: %d", bn2html.ErrInvalidChunkSize, chunk)
	}
	if chunk > 0 {
		opts = append(opts, bn2html.WithChunkSize(chunk))
	}

	if raw := firstNonEmpty(flags.timeout, cfg.Convert.Timeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: timeout %q", ErrInvalidDuration, raw)
		}
		opts = append(opts, bn2html.WithTimeout(d))
	}

	if raw := firstNonEmpty(flags.cacheTTL, cfg.Convert.CacheTTL); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: cache TTL %q", ErrInvalidDuration, raw)
		}
		opts = append(opts, bn2html.WithCacheTTL(d))
	}

	if flags.diagnostics || cfg.Document.Diagnostics {
		opts = append(opts, bn2html.WithDiagnosticsSummary())
	}

	return opts, nil
}

// convertOne reads, converts, and writes a single document.
func convertOne(conv *bn2html.Converter, p *runParams, path string) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	started := time.Now()
	result, err := conv.Convert(context.Background(), bn2html.Input{
		Source:      source,
		Title:       titleFor(p, path),
		CSS:         p.css,
		TOCTitle:    p.tocTitle,
		SyntaxStyle: p.syntaxStyle,
		Minify:      p.minify,
	})
	if err != nil {
		return fmt.Errorf("converting %s: %w", displayName(path), err)
	}

	for _, d := range result.Diagnostics {
		p.log.Warn("diagnostic", "file", displayName(path), "line", d.Line, "kind", d.Kind, "message", d.Message)
	}
	p.log.Info("converted",
		"file", displayName(path), "duration", time.Since(started),
		"diagnostics", len(result.Diagnostics))

	return writeOutput(p, path, result.HTML)
}

// convertBatch converts many documents in parallel through a converter
// pool. Each goroutine owns a pooled converter for its file.
func convertBatch(p *runParams) error {
	poolSize := bn2html.ResolvePoolSize(0)
	if poolSize > len(p.inputs) {
		poolSize = len(p.inputs)
	}
	pool := bn2html.NewConverterPool(poolSize, p.opts...)
	defer pool.Close()

	p.log.Info("batch conversion", "files", len(p.inputs), "pool_size", poolSize)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, path := range p.inputs {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			conv := pool.Acquire()
			defer pool.Release(conv)
			if err := convertOne(conv, p, path); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(path)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// runCheck parses every input and prints diagnostics without writing any
// output. A clean run exits zero; findings exit with ExitDiagnostics.
func runCheck(p *runParams) error {
	conv := bn2html.New(p.opts...)
	defer conv.Close()

	found := 0
	for _, path := range p.inputs {
		source, err := readSource(path)
		if err != nil {
			return err
		}
		diags, err := conv.ParseOnly(context.Background(), source)
		if err != nil {
			return fmt.Errorf("checking %s: %w", displayName(path), err)
		}
		for _, d := range diags {
			found++
			if d.Suggestion != "" {
				fmt.Printf("%s:%d: %s: %s (%s)\n", displayName(path), d.Line, d.Kind, d.Message, d.Suggestion)
			} else {
				fmt.Printf("%s:%d: %s: %s\n", displayName(path), d.Line, d.Kind, d.Message)
			}
		}
	}
	if found > 0 {
		return fmt.Errorf("%w: %d", errDiagnosticsFound, found)
	}
	return nil
}

// readSource reads a file, or stdin for "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadSource, err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrReadSource, path, err)
	}
	return string(data), nil
}

// writeOutput writes the HTML to the resolved destination: stdout for
// stdin input without -o, otherwise a file next to the source or under
// the output directory.
func writeOutput(p *runParams, inputPath, html string) error {
	dest := outputPathFor(p, inputPath)
	if dest == "" {
		if _, err := io.WriteString(os.Stdout, html); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, dest, err)
		}
	}
	if err := os.WriteFile(dest, []byte(html), 0o600); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, dest, err)
	}
	p.log.Debug("wrote output", "path", dest)
	return nil
}

// outputPathFor resolves the destination for one input. Empty means
// stdout.
func outputPathFor(p *runParams, inputPath string) string {
	multi := len(p.inputs) > 1
	if p.output != "" {
		if multi {
			return filepath.Join(p.output, htmlName(inputPath))
		}
		return p.output
	}
	if inputPath == "-" {
		return ""
	}
	if p.outputDir != "" {
		return filepath.Join(p.outputDir, htmlName(inputPath))
	}
	return strings.TrimSuffix(inputPath, sourceExt) + ".html"
}

// htmlName maps an input path to its output file name.
func htmlName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, sourceExt) + ".html"
}

// titleFor picks the document title: explicit flag/config wins, then the
// file name.
func titleFor(p *runParams, path string) string {
	if p.title != "" {
		return p.title
	}
	if path == "-" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(path), sourceExt)
}

// displayName keeps stdin readable in messages.
func displayName(path string) string {
	if path == "-" {
		return "(stdin)"
	}
	return path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
