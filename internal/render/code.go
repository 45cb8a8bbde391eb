package render

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlighter renders code blocks through chroma with CSS classes, so the
// color scheme lives in one stylesheet instead of inline styles on every
// token.
type highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func newHighlighter(styleName string) *highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &highlighter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.TabWidth(4),
		),
	}
}

// render emits one highlighted code block. An unknown or empty language
// falls back to the plain-text lexer; the content is still escaped and
// wrapped in pre/code.
func (h *highlighter) render(w *strings.Builder, code, lang string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenizing code block: %w", err)
	}
	if err := h.formatter.Format(w, h.style, iterator); err != nil {
		return fmt.Errorf("formatting code block: %w", err)
	}
	w.WriteString("\n")
	return nil
}

// stylesheet returns the CSS for the configured chroma style. Only embedded
// when the document actually contains code.
func (h *highlighter) stylesheet() string {
	var b strings.Builder
	b.WriteString("\n")
	if err := h.formatter.WriteCSS(&b, h.style); err != nil {
		return ""
	}
	return b.String()
}
