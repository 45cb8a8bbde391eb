package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the bn2html CLI.
type cliFlags struct {
	// I/O
	output     string
	config     string
	initConfig string

	// Pipeline tuning
	workers   int
	chunkSize int
	timeout   string
	cacheTTL  string

	// Rendering
	title       string
	cssFile     string
	tocTitle    string
	syntaxStyle string
	minify      bool
	diagnostics bool

	// Modes
	check   bool
	quiet   bool
	verbose bool
	version bool
}

// parseFlags parses CLI flags and returns the positional arguments
// (input files, or "-" for stdin).
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("bn2html", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file, or directory for multiple inputs")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.initConfig, "init-config", "", "write a default config file to the given path and exit")

	fs.IntVarP(&f.workers, "workers", "w", 0, "parse workers (0 = auto)")
	fs.IntVar(&f.chunkSize, "chunk-size", 0, "target segment size in lines for parallel parsing (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.cacheTTL, "cache-ttl", "", "block cache entry lifetime (e.g., 10m; 0 disables)")

	fs.StringVar(&f.title, "title", "", "document title (default: derived from file name)")
	fs.StringVar(&f.cssFile, "css", "", "extra CSS: a built-in theme name (serif, print, compact) or a file path")
	fs.StringVar(&f.tocTitle, "toc-title", "", "heading above generated tables of contents")
	fs.StringVar(&f.syntaxStyle, "syntax-style", "", "chroma style for code blocks (default: github)")
	fs.BoolVar(&f.minify, "minify", false, "compress whitespace in the output")
	fs.BoolVar(&f.diagnostics, "diagnostics", false, "append a diagnostics summary section to the output")

	fs.BoolVar(&f.check, "check", false, "parse only and report diagnostics, write no output")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printUsage writes the CLI help text.
func printUsage(w *os.File, fs *flag.FlagSet) {
	fmt.Fprintf(w, `bn2html converts block-notation documents to HTML.

Usage:
  bn2html [flags] <file.bn>...
  bn2html [flags] -            read from stdin, write to stdout
  bn2html --check <file.bn>... lint without writing output

Flags:
%s`, fs.FlagUsages())
}
