package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdownIsland converts embedded markdown blocks to HTML fragments using
// goldmark with GFM extensions. The fragment is inserted into the
// surrounding document as-is; no shell is added here.
type markdownIsland struct {
	md goldmark.Markdown
}

func newMarkdownIsland() *markdownIsland {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes local to the island
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &markdownIsland{md: md}
}

// render converts one markdown block to an HTML fragment.
func (c *markdownIsland) render(content string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("converting markdown block: %w", err)
	}
	return buf.String(), nil
}
