// Package assets provides the CSS themes that can be appended to the
// embedded base stylesheet. A theme is resolved either by name from the
// embedded set or, when the value contains a path separator, by reading
// a CSS file from disk.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/alnah/go-bn2html/internal/fileutil"
)

// Sentinel errors for theme resolution.
var (
	ErrEmptyThemeName = errors.New("theme name cannot be empty")
	ErrThemeNotFound  = errors.New("theme not found")
	ErrCSSTooLarge    = errors.New("CSS file too large")
)

// MaxCSSSize bounds user-supplied CSS files. Variable so tests can
// lower it.
var MaxCSSSize = 1 << 20 // 1MB

//go:embed themes/*.css
var themesFS embed.FS

// ResolveCSS returns the CSS for a theme name or file path. Names are
// looked up in the embedded theme set; anything containing a path
// separator is read from disk.
func ResolveCSS(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", ErrEmptyThemeName
	}
	if fileutil.IsFilePath(nameOrPath) {
		return readCSSFile(nameOrPath)
	}
	return loadTheme(nameOrPath)
}

// ListThemes returns the embedded theme names, sorted.
func ListThemes() []string {
	entries, err := fs.ReadDir(themesFS, "themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}

// loadTheme reads one embedded theme by name.
func loadTheme(name string) (string, error) {
	data, err := themesFS.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q (available: %s)",
			ErrThemeNotFound, name, strings.Join(ListThemes(), ", "))
	}
	return string(data), nil
}

// readCSSFile reads a user CSS file with a size cap.
func readCSSFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading CSS file: %w", err)
	}
	if info.Size() > int64(MaxCSSSize) {
		return "", fmt.Errorf("%w: %s (%d bytes, max %d)", ErrCSSTooLarge, path, info.Size(), MaxCSSSize)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", fmt.Errorf("reading CSS file: %w", err)
	}
	return string(data), nil
}
