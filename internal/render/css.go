package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-bn2html/internal/doctree"
)

// baseCSS is the embedded stylesheet. The output document must be viewable
// without any external stylesheet dependency.
const baseCSS = `
body {
  font-family: -apple-system, "Segoe UI", "Hiragino Sans", "Noto Sans CJK JP", sans-serif;
  line-height: 1.7;
  max-width: 48rem;
  margin: 2rem auto;
  padding: 0 1rem;
  color: #222222;
}
.bn-box {
  border: 1px solid #cccccc;
  border-radius: 4px;
  padding: 0.75rem 1rem;
  margin: 1rem 0;
}
blockquote {
  border-left: 3px solid #cccccc;
  margin-left: 0;
  padding-left: 1rem;
  color: #555555;
}
details {
  border: 1px solid #dddddd;
  border-radius: 4px;
  padding: 0.5rem 1rem;
  margin: 1rem 0;
}
details > summary {
  cursor: pointer;
  font-weight: bold;
}
mark {
  background: #fff3a0;
}
ruby > rt {
  font-size: 0.6em;
}
pre {
  overflow-x: auto;
  padding: 0.75rem 1rem;
  background: #f6f8fa;
  border-radius: 4px;
}
.bn-error {
  background: #ffe0e0;
  color: #a00000;
  border-bottom: 2px dotted #a00000;
  padding: 0 0.2em;
}
.bn-toc {
  border: 1px solid #dddddd;
  border-radius: 4px;
  padding: 0.75rem 1rem;
  margin: 1.5rem 0;
}
.bn-toc .bn-toc-title {
  margin: 0 0 0.5rem 0;
  font-size: 1.1rem;
}
.bn-toc-item a {
  text-decoration: none;
}
.bn-footnotes {
  margin-top: 3rem;
  border-top: 1px solid #cccccc;
  font-size: 0.9rem;
}
.bn-footnote-ref a {
  text-decoration: none;
}
.bn-backlink {
  text-decoration: none;
  margin-left: 0.3em;
}
.bn-diagnostics {
  margin-top: 3rem;
  border: 1px solid #e0b000;
  border-radius: 4px;
  background: #fff8e0;
  padding: 0.5rem 1rem;
  font-size: 0.9rem;
}
`

// namedSizeValues translates the named sizes of the notation into CSS.
var namedSizeValues = map[string]string{
	"small":   "0.85em",
	"normal":  "1em",
	"large":   "1.25em",
	"x-large": "1.5em",
}

// styleAttr builds the inline attribute text for a node: style= from the
// resolved color/size/border values plus id= and title= passthrough.
// Attribute values reaching here are already validated and normalized by
// the scanner, so invalid input can never produce broken CSS -- it was
// dropped with a diagnostic at parse time.
func styleAttr(a doctree.Attributes) string {
	return inlineAttrs(a, true)
}

// inlineAttrs is styleAttr with id= emission controllable: headings get
// their id from the anchor table instead, never from here.
func inlineAttrs(a doctree.Attributes, includeID bool) string {
	var css []string
	if a.Color != nil {
		css = append(css, "color:#"+a.Color.Hex)
	}
	if a.Size != nil {
		if a.Size.Named != "" {
			css = append(css, "font-size:"+namedSizeValues[a.Size.Named])
		} else {
			css = append(css, fmt.Sprintf("font-size:%g%s", a.Size.Value, a.Size.Unit))
		}
	}
	if a.Border != "" {
		css = append(css, "border-style:"+string(a.Border))
	}

	var b strings.Builder
	if includeID && a.ID != "" {
		fmt.Fprintf(&b, ` id="%s"`, html.EscapeString(a.ID))
	}
	if a.Title != "" {
		fmt.Fprintf(&b, ` title="%s"`, html.EscapeString(a.Title))
	}
	if len(css) > 0 {
		fmt.Fprintf(&b, ` style="%s"`, strings.Join(css, ";"))
	}
	return b.String()
}
