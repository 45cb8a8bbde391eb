package render

import (
	"strings"
	"testing"

	xhtml "golang.org/x/net/html"

	"github.com/alnah/go-bn2html/internal/doctree"
	"github.com/alnah/go-bn2html/internal/parser"
)

func renderSource(t *testing.T, source string, opts Options) string {
	t.Helper()
	doc := parser.Parse(strings.Split(source, "\n"), parser.Options{})
	out, err := New(opts).Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

// assertWellFormed parses the output with the HTML5 parser; structural
// breakage (unbalanced tags, stray markup) would distort the tree.
func assertWellFormed(t *testing.T, out string) {
	t.Helper()
	if _, err := xhtml.Parse(strings.NewReader(out)); err != nil {
		t.Fatalf("output is not parseable HTML: %v", err)
	}
}

func TestRenderDocumentShell(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "hello", Options{Title: "My <Doc>"})
	assertWellFormed(t, out)

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<meta charset="utf-8">`,
		"<title>My &lt;Doc&gt;</title>",
		"<style>",
		"<p>hello</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderStyledInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"bold", "[[bold[[ hello ]]", "<strong>hello</strong>"},
		{"italic", "[[italic[[ x ]]", "<em>x</em>"},
		{"underline", "[[underline[[ x ]]", "<u>x</u>"},
		{"highlight", "[[highlight[[ x ]]", "<mark>x</mark>"},
		{"compound nests in order", "[[bold+italic[[ x ]]", "<strong><em>x</em></strong>"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := renderSource(t, tt.source, Options{})
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRenderBoxAndPromotion(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "[[box[[\ncontent\n]]", Options{})
	if !strings.Contains(out, `<div class="bn-box">`) {
		t.Errorf("plain box must render a div.bn-box:\n%s", out)
	}

	nav := renderSource(t, "[[box role=nav[[\nlinks\n]]", Options{})
	if !strings.Contains(nav, "<nav>") || !strings.Contains(nav, "</nav>") {
		t.Errorf("role=nav must promote the box to <nav>:\n%s", nav)
	}
	if strings.Contains(nav, `class="bn-box"`) {
		t.Error("promoted boxes must not keep the generic class")
	}
}

func TestRenderFold(t *testing.T) {
	t.Parallel()

	out := renderSource(t, `[[fold summary="More"[[`+"\nhidden\n]]", Options{})
	if !strings.Contains(out, "<details>") && !strings.Contains(out, "<details ") {
		t.Errorf("fold must render details:\n%s", out)
	}
	if !strings.Contains(out, "<summary>More</summary>") {
		t.Errorf("summary attribute must become the summary element:\n%s", out)
	}

	plain := renderSource(t, "[[fold[[\nx\n]]", Options{})
	if !strings.Contains(plain, "<summary>Details</summary>") {
		t.Errorf("missing default summary:\n%s", plain)
	}
}

func TestRenderInlineStyleAttrs(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "[[bold color=red size=large[[ x ]]", Options{})
	if !strings.Contains(out, `style="color:#ff0000;font-size:1.25em"`) {
		t.Errorf("validated attributes must become inline CSS:\n%s", out)
	}
}

func TestRenderHeadingAnchors(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "[[h1[[ First Steps ]]\n\n[[h1[[ First Steps ]]", Options{})
	if !strings.Contains(out, `<h1 id="first-steps">`) {
		t.Errorf("heading slug missing:\n%s", out)
	}
	if !strings.Contains(out, `<h1 id="first-steps-2">`) {
		t.Errorf("duplicate headings must deduplicate ids:\n%s", out)
	}

	explicit := renderSource(t, "[[h2 id=custom[[ Title ]]", Options{})
	if !strings.Contains(explicit, `<h2 id="custom">`) {
		t.Errorf("explicit id must win:\n%s", explicit)
	}
}

func TestRenderLists(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "[[list[[\na\nb\n]]", Options{})
	if !strings.Contains(out, "<ul>") || strings.Count(out, "<li>") != 2 {
		t.Errorf("list rendering wrong:\n%s", out)
	}

	ordered := renderSource(t, "[[numlist[[\na\n]]", Options{})
	if !strings.Contains(ordered, "<ol>") {
		t.Errorf("numlist must render ol:\n%s", ordered)
	}
}

func TestRenderRuby(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "漢字《かんじ》", Options{})
	if !strings.Contains(out, "<ruby>漢字<rt>かんじ</rt></ruby>") {
		t.Errorf("ruby markup missing:\n%s", out)
	}
}

func TestRenderFootnotes(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"second-defined note first [*b], then [*a], then [*b] again.",
		"",
		"[[note id=a[[ note a ]]",
		"[[note id=b[[ note b ]]",
	}, "\n")
	out := renderSource(t, source, Options{})
	assertWellFormed(t, out)

	// Numbering follows first-reference order: b is 1, a is 2.
	if !strings.Contains(out, `<a href="#fn:1">[1]</a>`) || !strings.Contains(out, `<a href="#fn:2">[2]</a>`) {
		t.Errorf("reference markers missing:\n%s", out)
	}
	bIdx := strings.Index(out, `<li id="fn:1">`)
	if bIdx < 0 || !strings.Contains(out[bIdx:], "note b") {
		t.Errorf("footnote 1 must be note b:\n%s", out)
	}
	if !strings.Contains(out, `class="bn-backlink"`) {
		t.Error("backlinks missing")
	}
	// Repeated references get distinct ids.
	if !strings.Contains(out, `id="fnref:1"`) || !strings.Contains(out, `id="fnref:1.2"`) {
		t.Errorf("repeated reference ids missing:\n%s", out)
	}
}

func TestRenderUnreferencedNotesKeepDocumentOrder(t *testing.T) {
	t.Parallel()

	// No references anywhere: the notes still render, in the order they
	// were written, identically on every run.
	ids := []string{"epsilon", "alpha", "delta", "beta", "gamma"}
	var srcLines []string
	for _, id := range ids {
		srcLines = append(srcLines, "[[note id="+id+"[[ body of "+id+" ]]")
	}
	source := strings.Join(srcLines, "\n")

	out := renderSource(t, source, Options{})
	assertWellFormed(t, out)

	last := -1
	for _, id := range ids {
		idx := strings.Index(out, "body of "+id)
		if idx < 0 {
			t.Fatalf("note %q missing:\n%s", id, out)
		}
		if idx < last {
			t.Errorf("note %q out of document order:\n%s", id, out)
		}
		last = idx
	}

	if again := renderSource(t, source, Options{}); again != out {
		t.Error("repeated renders of the same document must be identical")
	}
}

func TestRenderFootnoteRefWithoutDef(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "dangling [*nope]", Options{})
	if !strings.Contains(out, `<sup class="bn-error"`) {
		t.Errorf("unresolved ref must render an error marker:\n%s", out)
	}
	if strings.Contains(out, `<section class="bn-footnotes">`) {
		t.Error("no footnote section without any definitions")
	}
}

func TestRenderTOC(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"[[toc]]",
		"",
		"[[h1[[ Alpha ]]",
		"[[h2[[ Beta ]]",
		"[[h2[[ Gamma ]]",
		"[[h1[[ Delta ]]",
	}, "\n")
	out := renderSource(t, source, Options{TOCTitle: "Outline"})
	assertWellFormed(t, out)

	if !strings.Contains(out, `<nav class="bn-toc">`) {
		t.Fatalf("toc nav missing:\n%s", out)
	}
	if !strings.Contains(out, `class="bn-toc-title">Outline<`) {
		t.Errorf("toc title missing:\n%s", out)
	}
	for _, want := range []string{
		`1. <a href="#alpha">Alpha</a>`,
		`1.1. <a href="#beta">Beta</a>`,
		`1.2. <a href="#gamma">Gamma</a>`,
		`2. <a href="#delta">Delta</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("toc entry missing %q:\n%s", want, out)
		}
	}
}

func TestNumberingState(t *testing.T) {
	t.Parallel()

	num := &numberingState{}
	steps := []struct {
		level int
		want  string
	}{
		{1, "1."},
		{2, "1.1."},
		{2, "1.2."}, // sibling keeps counting
		{3, "1.2.1."},
		{3, "1.2.2."},
		{2, "1.3."}, // ascent resumes, deeper counters reset
		{1, "2."},
		{3, "2.1."}, // level gap normalized to one step
		{2, "2.2."},
	}
	for i, s := range steps {
		if got := num.next(s.level); got != s.want {
			t.Errorf("step %d: next(%d) = %q, want %q", i, s.level, got, s.want)
		}
	}
}

func TestRenderTOCWithoutHeadings(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "[[toc]]\n\njust text", Options{})
	if strings.Contains(out, `<nav class="bn-toc">`) {
		t.Errorf("toc marker without headings must vanish:\n%s", out)
	}
}

func TestRenderCodeBlock(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "[[code lang=go[[\nfunc main() {}\n]]", Options{})
	assertWellFormed(t, out)
	if !strings.Contains(out, "chroma") {
		t.Errorf("code must go through the highlighter:\n%s", out)
	}
	if !strings.Contains(out, "func") {
		t.Errorf("code content lost:\n%s", out)
	}

	// The stylesheet is only embedded when code exists.
	plain := renderSource(t, "no code here", Options{})
	if strings.Contains(plain, "/* Background */") {
		t.Error("chroma stylesheet must not appear without code")
	}
}

func TestRenderMarkdownIsland(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "[[md[[\n# Inside\n\n*emphasis*\n]]", Options{})
	if !strings.Contains(out, `<div class="bn-markdown">`) {
		t.Errorf("markdown wrapper missing:\n%s", out)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<em>emphasis</em>") {
		t.Errorf("markdown content not converted:\n%s", out)
	}
}

func TestRenderErrorNode(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "[[sparkle[[ x ]]", Options{})
	if !strings.Contains(out, `<span class="bn-error"`) {
		t.Errorf("unknown keyword must render a visible marker:\n%s", out)
	}
	if !strings.Contains(out, "sparkle") {
		t.Errorf("the unrecognized text must stay visible:\n%s", out)
	}
}

func TestRenderEscapesContent(t *testing.T) {
	t.Parallel()

	out := renderSource(t, "tags like <script> stay inert", Options{})
	if strings.Contains(out, "<script>") {
		t.Errorf("content must be escaped:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("escaped form missing:\n%s", out)
	}
}

func TestRenderDiagnosticsSummary(t *testing.T) {
	t.Parallel()

	src := "[[box[[\nunclosed"
	withSummary := renderSource(t, src, Options{DiagnosticsSummary: true})
	if !strings.Contains(withSummary, `class="bn-diagnostics"`) {
		t.Errorf("summary section missing:\n%s", withSummary)
	}
	if !strings.Contains(withSummary, "missing closing marker") {
		t.Errorf("diagnostic text missing:\n%s", withSummary)
	}

	without := renderSource(t, src, Options{})
	if strings.Contains(without, `<section class="bn-diagnostics">`) {
		t.Error("summary must be opt-in")
	}
}

func TestRenderOutputNotReinterpretable(t *testing.T) {
	t.Parallel()

	// No output line may itself look like block notation, so feeding the
	// HTML back through the converter cannot invent structure.
	source := strings.Join([]string{
		"[[box[[",
		"text with ]] inside and [[bold[[ nested ]]",
		"",
		"multi",
		"line",
		"]]",
		"[[code[[",
		"[[box[[",
		"]]",
	}, "\n")
	out := renderSource(t, source, Options{})

	for i, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "]]" {
			t.Errorf("line %d of output is a bare close marker", i+1)
		}
		if strings.HasPrefix(trimmed, "[[") {
			t.Errorf("line %d of output starts with an open marker: %q", i+1, trimmed)
		}
	}
}

func TestRenderMinify(t *testing.T) {
	t.Parallel()

	source := "[[code[[\n  indented\n\n  code\n]]\n\npara   text"
	out := renderSource(t, source, Options{Minify: true})
	assertWellFormed(t, out)

	if !strings.Contains(out, "  indented") {
		t.Errorf("minify must not touch preformatted content:\n%s", out)
	}
	if strings.Contains(out, "para   text") {
		t.Errorf("minify must collapse runs of spaces in prose:\n%s", out)
	}
	if !strings.Contains(out, "para text") {
		t.Errorf("collapsed prose missing:\n%s", out)
	}
}

func TestRenderExtraCSSSanitized(t *testing.T) {
	t.Parallel()

	doc := &doctree.Document{Children: []*doctree.Node{
		{Kind: doctree.KindParagraph, Children: []*doctree.Node{{Kind: doctree.KindText, Text: "x"}}},
	}}
	out, err := New(Options{ExtraCSS: "body{}</style><script>alert(1)</script>"}).Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "</style><script>") {
		t.Errorf("extra CSS must not escape the style block:\n%s", out)
	}
}
