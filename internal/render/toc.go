package render

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/alnah/go-bn2html/internal/doctree"
)

// anchorTable assigns a stable, unique id to every heading. An explicit id
// attribute wins; otherwise the id is a slug of the heading text,
// deduplicated with a numeric suffix.
type anchorTable struct {
	ids  map[*doctree.Node]string
	used map[string]int
}

func newAnchorTable() *anchorTable {
	return &anchorTable{
		ids:  make(map[*doctree.Node]string),
		used: make(map[string]int),
	}
}

// idFor returns the id assigned to a heading, computing it on first use.
func (t *anchorTable) idFor(n *doctree.Node) string {
	if id, ok := t.ids[n]; ok {
		return id
	}
	base := n.Attrs.ID
	if base == "" {
		base = slugify(headingText(n))
	}
	if base == "" {
		base = "section"
	}
	id := base
	t.used[base]++
	if t.used[base] > 1 {
		id = fmt.Sprintf("%s-%d", base, t.used[base])
	}
	t.ids[n] = id
	return id
}

// slugify lowercases and keeps letters, digits, and CJK, joining runs of
// anything else with a single hyphen.
func slugify(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// headingText flattens a heading's inline children to plain text for the
// slug and the TOC entry label.
func headingText(n *doctree.Node) string {
	var b strings.Builder
	var walk func(ns []*doctree.Node)
	walk = func(ns []*doctree.Node) {
		for _, c := range ns {
			switch c.Kind {
			case doctree.KindText:
				b.WriteString(c.Text)
			case doctree.KindRuby:
				b.WriteString(c.Text)
			default:
				walk(c.Children)
			}
		}
	}
	walk(n.Children)
	return strings.TrimSpace(b.String())
}

// tocEntry is one heading as seen by the TOC generator.
type tocEntry struct {
	level int
	text  string
	id    string
}

// collectHeadings gathers headings in document order, assigning anchors as
// it goes so TOC links and rendered ids agree.
func collectHeadings(nodes []*doctree.Node, anchors *anchorTable) []tocEntry {
	var entries []tocEntry
	var walk func(ns []*doctree.Node)
	walk = func(ns []*doctree.Node) {
		for _, n := range ns {
			if n.Kind == doctree.KindHeading {
				level := n.Level
				if level < 1 || level > 5 {
					level = 1
				}
				entries = append(entries, tocEntry{
					level: level,
					text:  headingText(n),
					id:    anchors.idFor(n),
				})
				continue
			}
			walk(n.Children)
		}
	}
	walk(nodes)
	return entries
}

// numberingState tracks hierarchical numbering ("1.", "1.1.", "2.") across
// the heading sequence. Level gaps are normalized: a jump from h1 to h3
// numbers the h3 as a direct child of the h1.
type numberingState struct {
	counters []int
}

func (s *numberingState) next(level int) string {
	if level > len(s.counters)+1 {
		level = len(s.counters) + 1
	}
	if level <= len(s.counters) {
		s.counters = s.counters[:level]
	}
	for len(s.counters) < level {
		s.counters = append(s.counters, 0)
	}
	s.counters[level-1]++
	parts := make([]string, len(s.counters))
	for i, c := range s.counters {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, ".") + "."
}

// generateTOC renders the numbered table of contents. Every toc marker in
// the document receives this same fragment. Returns "" when the document
// has no headings, so a marker in a heading-less document vanishes.
func generateTOC(entries []tocEntry, title string) string {
	if len(entries) == 0 {
		return ""
	}
	minLevel := entries[0].level
	for _, e := range entries {
		if e.level < minLevel {
			minLevel = e.level
		}
	}

	var b strings.Builder
	b.WriteString(`<nav class="bn-toc">` + "\n")
	fmt.Fprintf(&b, `<p class="bn-toc-title">%s</p>`+"\n", html.EscapeString(title))
	b.WriteString("<ul>\n")
	num := &numberingState{}
	for _, e := range entries {
		depth := e.level - minLevel + 1
		number := num.next(depth)
		fmt.Fprintf(&b,
			`<li class="bn-toc-item" style="margin-left:%drem">%s <a href="#%s">%s</a></li>`+"\n",
			depth-1, number, html.EscapeString(e.id), html.EscapeString(e.text))
	}
	b.WriteString("</ul>\n</nav>\n")
	return b.String()
}
