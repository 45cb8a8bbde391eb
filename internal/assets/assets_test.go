package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListThemes(t *testing.T) {
	t.Parallel()

	themes := ListThemes()
	want := []string{"compact", "print", "serif"}
	if len(themes) != len(want) {
		t.Fatalf("themes = %v, want %v", themes, want)
	}
	for i := range want {
		if themes[i] != want[i] {
			t.Errorf("themes[%d] = %q, want %q", i, themes[i], want[i])
		}
	}
}

func TestResolveCSSEmbedded(t *testing.T) {
	t.Parallel()

	for _, name := range ListThemes() {
		css, err := ResolveCSS(name)
		if err != nil {
			t.Errorf("ResolveCSS(%q): %v", name, err)
			continue
		}
		if !strings.Contains(css, "body") {
			t.Errorf("theme %q has no body rule", name)
		}
	}
}

func TestResolveCSSUnknownTheme(t *testing.T) {
	t.Parallel()

	_, err := ResolveCSS("neon")
	if !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("err = %v, want ErrThemeNotFound", err)
	}
	if !strings.Contains(err.Error(), "serif") {
		t.Errorf("error must list available themes, got: %v", err)
	}
}

func TestResolveCSSEmptyName(t *testing.T) {
	t.Parallel()

	if _, err := ResolveCSS(""); !errors.Is(err, ErrEmptyThemeName) {
		t.Errorf("err = %v, want ErrEmptyThemeName", err)
	}
}

func TestResolveCSSFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.css")
	if err := os.WriteFile(path, []byte("body { color: red }"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	css, err := ResolveCSS(path)
	if err != nil {
		t.Fatalf("ResolveCSS(path): %v", err)
	}
	if css != "body { color: red }" {
		t.Errorf("css = %q", css)
	}

	if _, err := ResolveCSS(filepath.Join(dir, "absent.css")); err == nil {
		t.Error("missing file must fail")
	}
}

func TestResolveCSSFileTooLarge(t *testing.T) {
	originalMax := MaxCSSSize
	t.Cleanup(func() { MaxCSSSize = originalMax })
	MaxCSSSize = 10

	dir := t.TempDir()
	path := filepath.Join(dir, "big.css")
	if err := os.WriteFile(path, []byte(strings.Repeat("a", 11)), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := ResolveCSS(path); !errors.Is(err, ErrCSSTooLarge) {
		t.Errorf("err = %v, want ErrCSSTooLarge", err)
	}
}
