package render

import (
	"bytes"
	"fmt"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// preformattedTags is the set of elements whose text must not be touched.
var preformattedTags = map[atom.Atom]bool{
	atom.Pre:      true,
	atom.Code:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Textarea: true,
}

// minifyHTML collapses whitespace-only text nodes and trims runs of blanks
// in text, leaving preformatted content untouched. It re-parses and
// re-serializes the document, so the input must already be well-formed.
func minifyHTML(in string) (string, error) {
	doc, err := xhtml.Parse(strings.NewReader(in))
	if err != nil {
		return "", fmt.Errorf("parsing output for minification: %w", err)
	}

	var walk func(n *xhtml.Node, inPre bool)
	walk = func(n *xhtml.Node, inPre bool) {
		if n.Type == xhtml.ElementNode && preformattedTags[n.DataAtom] {
			inPre = true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xhtml.TextNode && !inPre {
				c.Data = collapseSpace(c.Data)
			}
			walk(c, inPre)
		}
	}
	walk(doc, false)

	var buf bytes.Buffer
	if err := xhtml.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("serializing minified output: %w", err)
	}
	return buf.String(), nil
}

// collapseSpace reduces each run of whitespace to one character, keeping a
// newline when the run contained one so diff-friendly line structure
// survives.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	sawNewline := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			inSpace = true
			if r == '\n' {
				sawNewline = true
			}
		default:
			if inSpace {
				if sawNewline {
					b.WriteByte('\n')
				} else {
					b.WriteByte(' ')
				}
				inSpace = false
				sawNewline = false
			}
			b.WriteRune(r)
		}
	}
	if inSpace {
		if sawNewline {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
