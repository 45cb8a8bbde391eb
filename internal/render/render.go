// Package render walks the merged document tree and emits a complete HTML
// document: doctype, head with embedded CSS, body, footnotes, and an
// optional generated table of contents. Diagnostics render as visible
// inline markers and an optional summary, never silently dropped.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-bn2html/internal/doctree"
)

// Options configures one rendering pass.
type Options struct {
	Title              string // document <title> (default "Document")
	ExtraCSS           string // appended after the embedded base stylesheet
	TOCTitle           string // heading above generated TOCs (default "Contents")
	Minify             bool   // compress inter-tag whitespace
	DiagnosticsSummary bool   // append a summary section when diagnostics exist
	SyntaxStyle        string // chroma style name for code blocks (default "github")
}

// Renderer emits HTML from document trees. Construct once, use for many
// documents; it holds the goldmark instance and chroma formatter.
type Renderer struct {
	opts Options
	md   *markdownIsland
	hl   *highlighter
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.Title == "" {
		opts.Title = "Document"
	}
	if opts.TOCTitle == "" {
		opts.TOCTitle = "Contents"
	}
	if opts.SyntaxStyle == "" {
		opts.SyntaxStyle = "github"
	}
	return &Renderer{
		opts: opts,
		md:   newMarkdownIsland(),
		hl:   newHighlighter(opts.SyntaxStyle),
	}
}

// renderState carries per-document state: footnote numbering, heading
// anchors, and the generated TOC.
type renderState struct {
	footnotes *footnoteTable
	anchors   *anchorTable
	tocHTML   string
	hasCode   bool
}

// Render produces a complete HTML document for the tree. The output is
// always a full document even when diagnostics are present.
func (r *Renderer) Render(doc *doctree.Document) (string, error) {
	st := &renderState{
		footnotes: collectFootnotes(doc.Children),
		anchors:   newAnchorTable(),
	}

	headings := collectHeadings(doc.Children, st.anchors)
	st.tocHTML = generateTOC(headings, r.opts.TOCTitle)

	var body strings.Builder
	for _, n := range doc.Children {
		if err := r.renderNode(&body, n, st); err != nil {
			return "", err
		}
	}

	r.renderFootnoteSection(&body, st)
	if r.opts.DiagnosticsSummary && len(doc.Diagnostics) > 0 {
		renderDiagnosticsSummary(&body, doc.Diagnostics)
	}

	out := r.documentShell(body.String(), st)
	if r.opts.Minify {
		minified, err := minifyHTML(out)
		if err != nil {
			return "", fmt.Errorf("minifying output: %w", err)
		}
		out = minified
	}
	return out, nil
}

// renderNode emits one node and its descendants.
func (r *Renderer) renderNode(w *strings.Builder, n *doctree.Node, st *renderState) error {
	switch n.Kind {
	case doctree.KindText:
		w.WriteString(escapeText(n.Text))

	case doctree.KindParagraph:
		w.WriteString("<p>")
		if err := r.renderChildren(w, n, st); err != nil {
			return err
		}
		w.WriteString("</p>\n")

	case doctree.KindHeading:
		level := n.Level
		if level < 1 || level > 5 {
			level = 1
		}
		id := st.anchors.idFor(n)
		fmt.Fprintf(w, `<h%d id="%s"%s>`, level, html.EscapeString(id), inlineAttrs(n.Attrs, false))
		if err := r.renderChildren(w, n, st); err != nil {
			return err
		}
		fmt.Fprintf(w, "</h%d>\n", level)

	case doctree.KindList:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		fmt.Fprintf(w, "<%s%s>\n", tag, styleAttr(n.Attrs))
		for _, c := range n.Children {
			w.WriteString("<li>")
			if c.Kind == doctree.KindListItem {
				if err := r.renderChildren(w, c, st); err != nil {
					return err
				}
			} else if err := r.renderNode(w, c, st); err != nil {
				return err
			}
			w.WriteString("</li>\n")
		}
		fmt.Fprintf(w, "</%s>\n", tag)

	case doctree.KindStyled:
		if err := r.renderStyled(w, n, st); err != nil {
			return err
		}

	case doctree.KindRuby:
		fmt.Fprintf(w, "<ruby>%s<rt>%s</rt></ruby>",
			html.EscapeString(n.Text), html.EscapeString(n.Ruby))

	case doctree.KindFootnoteRef:
		st.footnotes.renderRef(w, n.Text)

	case doctree.KindFootnoteDef:
		// Collected up front, rendered in the footnote section.

	case doctree.KindTOCMarker:
		w.WriteString(st.tocHTML)

	case doctree.KindCode:
		st.hasCode = true
		if err := r.hl.render(w, n.Text, n.Attrs.Lang); err != nil {
			return err
		}

	case doctree.KindMarkdown:
		fragment, err := r.md.render(n.Text)
		if err != nil {
			return err
		}
		w.WriteString(`<div class="bn-markdown">` + fragment + "</div>\n")

	case doctree.KindError:
		title := "could not be interpreted"
		fmt.Fprintf(w, `<span class="bn-error" title="%s">%s</span>`,
			html.EscapeString(title), escapeText(n.Text))
	}
	return nil
}

func (r *Renderer) renderChildren(w *strings.Builder, n *doctree.Node, st *renderState) error {
	for _, c := range n.Children {
		if err := r.renderNode(w, c, st); err != nil {
			return err
		}
	}
	return nil
}

// styledTags maps inline styles to their fixed HTML elements.
var styledTags = map[doctree.Style]string{
	doctree.StyleBold:      "strong",
	doctree.StyleItalic:    "em",
	doctree.StyleUnderline: "u",
	doctree.StyleHighlight: "mark",
	doctree.StyleQuote:     "blockquote",
}

// renderStyled emits a styled block: fixed tag for inline styles, div (or a
// promoted semantic element) for boxes, details/summary for folds.
func (r *Renderer) renderStyled(w *strings.Builder, n *doctree.Node, st *renderState) error {
	switch n.Style {
	case doctree.StyleBox:
		tag, class := promoteBox(n.Attrs)
		fmt.Fprintf(w, "<%s%s%s>\n", tag, class, styleAttr(n.Attrs))
		if err := r.renderChildren(w, n, st); err != nil {
			return err
		}
		fmt.Fprintf(w, "</%s>\n", tag)

	case doctree.StyleFold:
		summary := n.Attrs.Summary
		if summary == "" {
			summary = "Details"
		}
		fmt.Fprintf(w, "<details%s><summary>%s</summary>\n", styleAttr(n.Attrs), html.EscapeString(summary))
		if err := r.renderChildren(w, n, st); err != nil {
			return err
		}
		w.WriteString("</details>\n")

	default:
		tag, ok := styledTags[n.Style]
		if !ok {
			return r.renderChildren(w, n, st)
		}
		fmt.Fprintf(w, "<%s%s>", tag, styleAttr(n.Attrs))
		if err := r.renderChildren(w, n, st); err != nil {
			return err
		}
		fmt.Fprintf(w, "</%s>", tag)
		if n.Style == doctree.StyleQuote {
			w.WriteString("\n")
		}
	}
	return nil
}

// promoteBox decides semantic promotion: a box whose role attribute
// unambiguously names a document region becomes that element instead of a
// generic div.
func promoteBox(a doctree.Attributes) (tag, classAttr string) {
	switch a.Role {
	case doctree.RoleHeader, doctree.RoleFooter, doctree.RoleNav, doctree.RoleArticle, doctree.RoleSection:
		return string(a.Role), ""
	}
	return "div", ` class="bn-box"`
}

// escapeText escapes a text run and converts embedded line breaks, which
// the parser records as "\n" text, into <br/>.
func escapeText(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br/>")
}

// renderDiagnosticsSummary appends the collected diagnostics as a visible
// list so authors can locate and fix the source.
func renderDiagnosticsSummary(w *strings.Builder, diags []doctree.Diagnostic) {
	w.WriteString("<section class=\"bn-diagnostics\">\n<h2>Conversion notes</h2>\n<ul>\n")
	for _, d := range diags {
		w.WriteString("<li>")
		w.WriteString(html.EscapeString(d.String()))
		w.WriteString("</li>\n")
	}
	w.WriteString("</ul>\n</section>\n")
}

// documentShell wraps the rendered body in a complete HTML5 document with
// the stylesheet embedded; no external dependency is required to view it.
func (r *Renderer) documentShell(body string, st *renderState) string {
	var css strings.Builder
	css.WriteString(baseCSS)
	if st.hasCode {
		css.WriteString(r.hl.stylesheet())
	}
	if r.opts.ExtraCSS != "" {
		css.WriteString("\n")
		css.WriteString(sanitizeCSS(r.opts.ExtraCSS))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s</style>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(r.opts.Title), css.String(), body)
}

// sanitizeCSS escapes sequences that could break out of the <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
