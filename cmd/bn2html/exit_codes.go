package main

import (
	"errors"
	"os"

	bn2html "github.com/alnah/go-bn2html"
	"github.com/alnah/go-bn2html/internal/assets"
	"github.com/alnah/go-bn2html/internal/config"
)

// Exit codes for the bn2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess     = 0 // Successful conversion
	ExitGeneral     = 1 // General/unexpected error
	ExitUsage       = 2 // Invalid flags, config, or validation
	ExitIO          = 3 // File not found, permission denied
	ExitDiagnostics = 4 // --check found diagnostics
)

// errDiagnosticsFound signals that --check reported problems.
var errDiagnosticsFound = errors.New("diagnostics found")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, errDiagnosticsFound) {
		return ExitDiagnostics
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, assets.ErrThemeNotFound) ||
		errors.Is(err, assets.ErrEmptyThemeName) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, bn2html.ErrEmptySource) ||
		errors.Is(err, bn2html.ErrInvalidSyntaxStyle) ||
		errors.Is(err, bn2html.ErrInvalidWorkers) ||
		errors.Is(err, bn2html.ErrInvalidChunkSize) ||
		errors.Is(err, ErrInvalidDuration) {
		return ExitUsage
	}

	return ExitGeneral
}
