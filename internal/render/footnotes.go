package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-bn2html/internal/doctree"
)

// footnoteTable assigns sequential numbers to footnote references in
// first-reference order and pairs them with their definitions.
type footnoteTable struct {
	numbers  map[string]int           // id -> assigned number
	order    []string                 // ids in first-reference order
	defs     map[string]*doctree.Node // id -> definition node
	defOrder []string                 // definition ids in document order
	refSeen  map[string]int           // id -> reference count (for backlink ids)
}

// collectFootnotes walks the tree once, numbering references as they first
// appear and indexing definitions by id.
func collectFootnotes(nodes []*doctree.Node) *footnoteTable {
	t := &footnoteTable{
		numbers: make(map[string]int),
		defs:    make(map[string]*doctree.Node),
		refSeen: make(map[string]int),
	}
	var walk func(ns []*doctree.Node)
	walk = func(ns []*doctree.Node) {
		for _, n := range ns {
			switch n.Kind {
			case doctree.KindFootnoteRef:
				if _, ok := t.numbers[n.Text]; !ok {
					t.numbers[n.Text] = len(t.order) + 1
					t.order = append(t.order, n.Text)
				}
			case doctree.KindFootnoteDef:
				if n.Attrs.ID != "" {
					if _, ok := t.defs[n.Attrs.ID]; !ok {
						t.defOrder = append(t.defOrder, n.Attrs.ID)
					}
					t.defs[n.Attrs.ID] = n
				}
			}
			walk(n.Children)
		}
	}
	walk(nodes)
	return t
}

// renderRef emits one inline reference marker. A reference without a
// matching definition renders as a visible error marker instead of a dead
// link.
func (t *footnoteTable) renderRef(w *strings.Builder, id string) {
	num, ok := t.numbers[id]
	if !ok || t.defs[id] == nil {
		fmt.Fprintf(w, `<sup class="bn-error" title="no note with id %s">[*%s]</sup>`,
			html.EscapeString(id), html.EscapeString(id))
		return
	}
	t.refSeen[id]++
	refID := fmt.Sprintf("fnref:%d", num)
	if t.refSeen[id] > 1 {
		refID = fmt.Sprintf("fnref:%d.%d", num, t.refSeen[id])
	}
	fmt.Fprintf(w, `<sup class="bn-footnote-ref" id="%s"><a href="#fn:%d">[%d]</a></sup>`,
		refID, num, num)
}

// renderFootnoteSection appends the numbered footnote list with back-links.
// Definitions that were never referenced are appended after the numbered
// ones so no authored content is lost.
func (r *Renderer) renderFootnoteSection(w *strings.Builder, st *renderState) {
	t := st.footnotes
	referenced := 0
	for _, id := range t.order {
		if t.defs[id] != nil {
			referenced++
		}
	}
	var unreferenced []*doctree.Node
	seen := make(map[string]bool)
	for _, id := range t.order {
		seen[id] = true
	}
	for _, id := range t.defOrder {
		if !seen[id] {
			unreferenced = append(unreferenced, t.defs[id])
		}
	}
	if referenced == 0 && len(unreferenced) == 0 {
		return
	}

	w.WriteString("<section class=\"bn-footnotes\">\n<ol>\n")
	for _, id := range t.order {
		def := t.defs[id]
		if def == nil {
			continue
		}
		num := t.numbers[id]
		fmt.Fprintf(w, `<li id="fn:%d">`, num)
		_ = r.renderChildren(w, def, st)
		fmt.Fprintf(w, ` <a href="#fnref:%d" class="bn-backlink">&#8617;</a></li>`+"\n", num)
	}
	for _, def := range unreferenced {
		w.WriteString("<li>")
		_ = r.renderChildren(w, def, st)
		w.WriteString("</li>\n")
	}
	w.WriteString("</ol>\n</section>\n")
}
