package bn2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource     = errors.New("source content cannot be empty")
	ErrRender          = errors.New("HTML rendering failed")
	ErrConverterClosed = errors.New("converter is closed")

	// Input validation errors.
	ErrInvalidSyntaxStyle = errors.New("unknown syntax highlighting style")

	// Configuration errors surfaced by the CLI layer.
	ErrInvalidWorkers   = errors.New("invalid worker count")
	ErrInvalidChunkSize = errors.New("invalid chunk size")
)
