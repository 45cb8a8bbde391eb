// Package parser builds the document tree from scanned lines. It maintains
// block-nesting state on an explicit stack so depth and partial-close
// detection stay inspectable, consults the block cache before re-parsing an
// interior, and records diagnostics instead of failing.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-bn2html/internal/cache"
	"github.com/alnah/go-bn2html/internal/doctree"
	"github.com/alnah/go-bn2html/internal/scanner"
)

// Options configures a parse invocation.
type Options struct {
	// Cache memoizes block interiors. Nil disables caching.
	Cache *cache.BlockCache
}

// mode describes how a frame treats its content lines.
type mode int

const (
	modePara   mode = iota // paragraphs separated by blank lines
	modeInline             // inline nodes appended directly (bold, heading, note)
	modeList               // one list item per non-blank line
	modeRaw                // verbatim capture (code, md)
)

// frame is one entry of the open-block stack.
type frame struct {
	kw          scanner.Keyword // zero value for transparent/root frames
	node        *doctree.Node   // outermost node of the chain (nil = transparent)
	target      *doctree.Node   // innermost node, receives children
	mode        mode
	openLine    int
	cacheKey    string // store children under this key on close ("" = no caching)
	rawLines    []string
	para        *doctree.Node // open paragraph (modePara only)
	diagsAtOpen int
}

// Context carries the state of one parse invocation: the open-block stack,
// collected diagnostics, and the cache handle. One Context per segment;
// contexts are never shared between workers.
type Context struct {
	cache     *cache.BlockCache
	diags     []doctree.Diagnostic
	stack     []*frame
	root      []*doctree.Node
	startLine int
}

// Depth returns the current number of open blocks (excluding the root).
func (c *Context) Depth() int { return len(c.stack) - 1 }

// OpenKinds returns the names of the currently open blocks, outermost first.
// Transparent frames (degraded opens) report as "?".
func (c *Context) OpenKinds() []string {
	var kinds []string
	for _, f := range c.stack[1:] {
		if f.kw.Name == "" {
			kinds = append(kinds, "?")
			continue
		}
		kinds = append(kinds, f.kw.Name)
	}
	return kinds
}

// Parse parses a whole document.
func Parse(lines []string, opts Options) *doctree.Document {
	nodes, diags := ParseSegment(lines, 1, opts)
	return &doctree.Document{Children: nodes, Diagnostics: diags}
}

// ParseSegment parses a boundary-safe slice of lines whose first line has
// the given 1-based offset in the original document. Segments produced by
// the chunk splitter always start and end at nesting depth zero, so
// concatenating segment results equals a whole-document parse.
func ParseSegment(lines []string, startLine int, opts Options) ([]*doctree.Node, []doctree.Diagnostic) {
	c := &Context{cache: opts.Cache, startLine: startLine}
	rootFrame := &frame{mode: modePara}
	c.stack = []*frame{rootFrame}

	for i := 0; i < len(lines); i++ {
		number := startLine + i
		top := c.top()

		if top.mode == modeRaw {
			if strings.TrimSpace(lines[i]) == scanner.CloseMarker {
				c.closeFrame()
				continue
			}
			top.rawLines = append(top.rawLines, lines[i])
			continue
		}

		ln := scanner.ScanLine(lines[i], number)
		c.diags = append(c.diags, ln.Diags...)

		switch ln.Kind {
		case scanner.LinePlain:
			c.contentLine(ln.Content, number)

		case scanner.LineBlockClose:
			if len(c.stack) > 1 {
				c.closeFrame()
			}
			// A close with nothing open is a stray marker: dropped, the
			// surrounding content is unaffected.

		case scanner.LineBlockOpen:
			consumed := c.openBlock(ln, lines, i)
			i += consumed

		case scanner.LineSingle, scanner.LineMarkerOnly:
			c.expandSingle(ln)
		}
	}

	// Auto-close anything still open so the tree stays consumable. One
	// diagnostic per open entry, located just past the last line.
	endLine := startLine + len(lines)
	for len(c.stack) > 1 {
		f := c.top()
		name := f.kw.Name
		if name == "" {
			name = "block"
		}
		c.diags = append(c.diags, doctree.Diagnostic{
			Line:       endLine,
			Kind:       doctree.DiagUnclosedBlock,
			Message:    fmt.Sprintf("%s opened on line %d is never closed", name, f.openLine),
			Suggestion: "add a closing ]] line",
		})
		f.cacheKey = "" // degraded parse, never cached
		c.closeFrame()
	}
	c.flushPara(rootFrame)

	return c.root, c.diags
}

func (c *Context) top() *frame { return c.stack[len(c.stack)-1] }

// contentLine routes one plain content line according to the current
// frame's mode.
func (c *Context) contentLine(text string, number int) {
	top := c.top()
	blank := strings.TrimSpace(text) == ""

	switch top.mode {
	case modePara:
		if blank {
			c.flushPara(top)
			return
		}
		if top.para == nil {
			top.para = &doctree.Node{Kind: doctree.KindParagraph, Line: number}
		} else {
			top.para.Children = append(top.para.Children, &doctree.Node{Kind: doctree.KindText, Text: "\n", Line: number})
		}
		top.para.Children = append(top.para.Children, c.parseInline(text, number)...)

	case modeInline:
		if blank {
			return
		}
		if len(top.target.Children) > 0 {
			top.target.Children = append(top.target.Children, &doctree.Node{Kind: doctree.KindText, Text: "\n", Line: number})
		}
		top.target.Children = append(top.target.Children, c.parseInline(text, number)...)

	case modeList:
		if blank {
			return
		}
		item := &doctree.Node{Kind: doctree.KindListItem, Line: number}
		item.Children = c.parseInline(strings.TrimSpace(text), number)
		top.target.Children = append(top.target.Children, item)
	}
}

// flushPara closes the open paragraph of a frame, if any.
func (c *Context) flushPara(f *frame) {
	if f.para == nil {
		return
	}
	p := f.para
	f.para = nil
	c.attach(f, p)
}

// attach appends a finished node to a frame's children (or the root).
func (c *Context) attach(f *frame, n *doctree.Node) {
	if f.target == nil {
		c.root = append(c.root, n)
		return
	}
	f.target.Children = append(f.target.Children, n)
}

// appendBlock appends a block-level node at the current position, closing
// any open paragraph first.
func (c *Context) appendBlock(n *doctree.Node) {
	top := c.top()
	c.flushPara(top)
	c.attach(top, n)
}

// openBlock handles a block-open line. Returns how many extra lines were
// consumed (non-zero only on a cache hit, which skips the interior and the
// closing marker).
func (c *Context) openBlock(ln scanner.Line, lines []string, i int) int {
	if len(ln.Literal) > 0 {
		c.appendBlock(&doctree.Node{
			Kind: doctree.KindError,
			Text: strings.Join(ln.Literal, "+"),
			Line: ln.Number,
		})
	}
	if len(ln.Keywords) == 0 {
		// Nothing valid to open; a transparent frame keeps the later
		// close marker balanced without adding a node.
		c.flushPara(c.top())
		c.stack = append(c.stack, &frame{
			target:   c.frameTarget(),
			mode:     modePara,
			openLine: ln.Number,
		})
		return 0
	}

	outer, inner := buildChain(ln)
	m := modeFor(inner)
	f := &frame{
		kw:          ln.Keywords[0],
		node:        outer,
		target:      inner,
		mode:        m,
		openLine:    ln.Number,
		diagsAtOpen: len(c.diags),
	}
	c.checkBlockAttrs(ln)

	// Cache consultation needs the interior, so locate the matching close
	// first. Raw and unclosed blocks are parsed normally.
	if c.cache != nil && m != modeRaw {
		if closeIdx := findMatchingClose(lines, i); closeIdx > 0 {
			interior := lines[i+1 : closeIdx]
			key := cache.Key(normalizeBlock(interior), c.contextFingerprint(ln))
			if children, ok := c.cache.Get(key); ok {
				inner.Children = children
				c.appendBlock(outer)
				return closeIdx - i
			}
			f.cacheKey = key
		}
	}

	c.flushPara(c.top())
	c.stack = append(c.stack, f)
	return 0
}

// closeFrame pops the innermost frame and attaches its node chain to the
// parent. Clean parses are stored in the block cache.
func (c *Context) closeFrame() {
	f := c.top()
	c.stack = c.stack[:len(c.stack)-1]
	c.flushPara(f)

	if f.mode == modeRaw {
		f.target.Text = strings.Join(f.rawLines, "\n")
	}
	if f.node != nil {
		c.attach(c.top(), f.node)
	}
	if f.cacheKey != "" && len(c.diags) == f.diagsAtOpen {
		c.cache.Put(f.cacheKey, f.target.Children)
	}
}

// frameTarget returns the node new children attach to at the current
// position (nil means the document root).
func (c *Context) frameTarget() *doctree.Node {
	return c.top().target
}

// expandSingle expands single-line and marker-only notation into the same
// tree shape a block form would produce.
func (c *Context) expandSingle(ln scanner.Line) {
	if len(ln.Literal) > 0 {
		c.appendBlock(&doctree.Node{
			Kind: doctree.KindError,
			Text: strings.Join(ln.Literal, "+"),
			Line: ln.Number,
		})
	}
	if len(ln.Keywords) == 0 {
		if ln.Content != "" {
			c.contentLine(ln.Content, ln.Number)
		}
		return
	}

	outer, inner := buildChain(ln)
	c.checkBlockAttrs(ln)

	switch modeFor(inner) {
	case modeRaw:
		inner.Text = ln.Content
	case modeList:
		if ln.Content != "" {
			item := &doctree.Node{Kind: doctree.KindListItem, Line: ln.Number}
			item.Children = c.parseInline(ln.Content, ln.Number)
			inner.Children = append(inner.Children, item)
		}
	case modePara:
		if ln.Content != "" {
			p := &doctree.Node{Kind: doctree.KindParagraph, Line: ln.Number}
			p.Children = c.parseInline(ln.Content, ln.Number)
			inner.Children = append(inner.Children, p)
		}
	default:
		inner.Children = c.parseInline(ln.Content, ln.Number)
	}
	c.appendBlock(outer)
}

// checkBlockAttrs validates attribute requirements that depend on the
// keyword, not the value syntax.
func (c *Context) checkBlockAttrs(ln scanner.Line) {
	for _, kw := range ln.Keywords {
		if kw.Kind == doctree.KindFootnoteDef && ln.Attrs.ID == "" {
			c.diags = append(c.diags, doctree.Diagnostic{
				Line:       ln.Number,
				Kind:       doctree.DiagInvalidAttribute,
				Message:    "note block has no id attribute",
				Suggestion: "add id=<name> so [*<name>] references can resolve",
			})
		}
	}
}

// buildChain turns an ordered keyword list into nested nodes, outermost
// first: bold+highlight becomes styled(bold, [styled(highlight, ...)]).
// The block's attributes live on the outermost node.
func buildChain(ln scanner.Line) (outer, inner *doctree.Node) {
	for _, kw := range ln.Keywords {
		n := &doctree.Node{Kind: kw.Kind, Line: ln.Number}
		switch kw.Kind {
		case doctree.KindStyled:
			n.Style = kw.Style
		case doctree.KindHeading:
			n.Level = kw.Level
		case doctree.KindList:
			n.Ordered = kw.Ordered
		}
		if outer == nil {
			outer = n
			n.Attrs = ln.Attrs
		} else {
			inner.Children = append(inner.Children, n)
		}
		inner = n
	}
	return outer, inner
}

// modeFor decides content handling from the innermost node of a chain.
func modeFor(inner *doctree.Node) mode {
	switch inner.Kind {
	case doctree.KindCode, doctree.KindMarkdown:
		return modeRaw
	case doctree.KindList:
		return modeList
	case doctree.KindStyled:
		switch inner.Style {
		case doctree.StyleBox, doctree.StyleFold, doctree.StyleQuote:
			return modePara
		}
		return modeInline
	case doctree.KindHeading, doctree.KindFootnoteDef, doctree.KindTOCMarker:
		return modeInline
	}
	return modePara
}

// findMatchingClose returns the index of the line that closes the block
// opened at lines[openIdx], or -1 when the block runs to end-of-input.
func findMatchingClose(lines []string, openIdx int) int {
	var t scanner.DepthTracker
	t.Feed(lines[openIdx])
	for i := openIdx + 1; i < len(lines); i++ {
		t.Feed(lines[i])
		if t.Depth() == 0 {
			return i
		}
	}
	return -1
}

// normalizeBlock produces the canonical text of a block interior for cache
// keying: trailing whitespace stripped, lines joined by \n.
func normalizeBlock(lines []string) string {
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimRight(l, " \t")
	}
	return strings.Join(trimmed, "\n")
}

// contextFingerprint serializes the enclosing block context plus the
// opening line's own header, so identical interiors under different
// contexts cache separately.
func (c *Context) contextFingerprint(ln scanner.Line) string {
	var b strings.Builder
	for _, f := range c.stack[1:] {
		b.WriteString(f.kw.Name)
		if f.node != nil {
			b.WriteString(attrsFingerprint(f.node.Attrs))
		}
		b.WriteByte('>')
	}
	for i, kw := range ln.Keywords {
		if i > 0 {
			b.WriteByte('+')
		}
		b.WriteString(kw.Name)
	}
	b.WriteString(attrsFingerprint(ln.Attrs))
	return b.String()
}

// attrsFingerprint renders attributes deterministically for cache keys.
func attrsFingerprint(a doctree.Attributes) string {
	if a.IsZero() {
		return "{}"
	}
	var parts []string
	if a.Color != nil {
		parts = append(parts, "color="+a.Color.Hex)
	}
	if a.Size != nil {
		if a.Size.Named != "" {
			parts = append(parts, "size="+a.Size.Named)
		} else {
			parts = append(parts, fmt.Sprintf("size=%g%s", a.Size.Value, a.Size.Unit))
		}
	}
	if a.Border != "" {
		parts = append(parts, "style="+string(a.Border))
	}
	if a.ID != "" {
		parts = append(parts, "id="+a.ID)
	}
	if a.Role != "" {
		parts = append(parts, "role="+string(a.Role))
	}
	if a.Summary != "" {
		parts = append(parts, "summary="+a.Summary)
	}
	if a.Lang != "" {
		parts = append(parts, "lang="+a.Lang)
	}
	if a.Title != "" {
		parts = append(parts, "title="+a.Title)
	}
	if len(a.Unrecognized) > 0 {
		keys := make([]string, 0, len(a.Unrecognized))
		for k := range a.Unrecognized {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, k+"="+a.Unrecognized[k])
		}
	}
	return "{" + strings.Join(parts, ";") + "}"
}
