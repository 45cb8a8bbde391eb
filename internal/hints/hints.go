// Package hints provides actionable hints for common CLI failures.
// Hints are formatted consistently as "\n  hint: <text>" for appending
// to error messages.
package hints

import (
	"context"
	"errors"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	bn2html "github.com/alnah/go-bn2html"
	"github.com/alnah/go-bn2html/internal/assets"
	"github.com/alnah/go-bn2html/internal/config"
)

// ForError returns a hint for the given error, or "" when no hint
// applies.
func ForError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return ForConfigNotFound()
	case errors.Is(err, bn2html.ErrInvalidSyntaxStyle):
		return ForStyleNotFound(styles.Names())
	case errors.Is(err, assets.ErrThemeNotFound):
		return ForThemeNotFound(assets.ListThemes())
	default:
		return ""
	}
}

// ForTimeout returns a hint about increasing the timeout for slow
// conversions.
func ForTimeout() string {
	return format("for large documents, raise --timeout (e.g., --timeout 2m)")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound() string {
	return format("use --config /path/to/file.yaml or run --init-config to create one")
}

// ForStyleNotFound returns a hint listing available chroma styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available styles: " + strings.Join(available, ", "))
}

// ForThemeNotFound returns a hint listing available CSS themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available themes: " + strings.Join(available, ", ") + ", or pass a .css file path")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
