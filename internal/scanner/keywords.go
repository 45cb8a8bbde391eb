package scanner

import (
	"fmt"
	"strings"

	"github.com/alnah/go-bn2html/internal/doctree"
)

// Keyword describes one entry of the keyword registry: the node it produces
// and how the renderer will treat it.
type Keyword struct {
	Name    string
	Kind    doctree.Kind
	Style   doctree.Style // for KindStyled
	Level   int           // for KindHeading
	Ordered bool          // for KindList
}

// registry is the closed set of keywords the notation accepts.
var registry = map[string]Keyword{
	"bold":      {Name: "bold", Kind: doctree.KindStyled, Style: doctree.StyleBold},
	"italic":    {Name: "italic", Kind: doctree.KindStyled, Style: doctree.StyleItalic},
	"underline": {Name: "underline", Kind: doctree.KindStyled, Style: doctree.StyleUnderline},
	"highlight": {Name: "highlight", Kind: doctree.KindStyled, Style: doctree.StyleHighlight},
	"box":       {Name: "box", Kind: doctree.KindStyled, Style: doctree.StyleBox},
	"fold":      {Name: "fold", Kind: doctree.KindStyled, Style: doctree.StyleFold},
	"quote":     {Name: "quote", Kind: doctree.KindStyled, Style: doctree.StyleQuote},
	"h1":        {Name: "h1", Kind: doctree.KindHeading, Level: 1},
	"h2":        {Name: "h2", Kind: doctree.KindHeading, Level: 2},
	"h3":        {Name: "h3", Kind: doctree.KindHeading, Level: 3},
	"h4":        {Name: "h4", Kind: doctree.KindHeading, Level: 4},
	"h5":        {Name: "h5", Kind: doctree.KindHeading, Level: 5},
	"list":      {Name: "list", Kind: doctree.KindList},
	"numlist":   {Name: "numlist", Kind: doctree.KindList, Ordered: true},
	"note":      {Name: "note", Kind: doctree.KindFootnoteDef},
	"code":      {Name: "code", Kind: doctree.KindCode},
	"md":        {Name: "md", Kind: doctree.KindMarkdown},
	"toc":       {Name: "toc", Kind: doctree.KindTOCMarker},
}

// LookupKeyword returns the registry entry for name (case-insensitive).
func LookupKeyword(name string) (Keyword, bool) {
	kw, ok := registry[strings.ToLower(name)]
	return kw, ok
}

// ParseKeywords splits a compound keyword expression ("bold+highlight") into
// ordered registry entries. Empty compound sides and duplicates are dropped
// with a diagnostic; unknown keywords are dropped with a diagnostic and
// reported in literal so the caller can degrade them to plain content.
// A single bad keyword never fails the whole expression.
func ParseKeywords(expr string, line int) (kws []Keyword, literal []string, diags []doctree.Diagnostic) {
	seen := make(map[string]bool)
	for _, part := range strings.Split(expr, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			diags = append(diags, doctree.Diagnostic{
				Line:       line,
				Kind:       doctree.DiagMalformedCompound,
				Message:    fmt.Sprintf("empty segment in compound keyword %q", expr),
				Suggestion: "remove the trailing or doubled '+'",
			})
			continue
		}
		name := strings.ToLower(part)
		if seen[name] {
			diags = append(diags, doctree.Diagnostic{
				Line:    line,
				Kind:    doctree.DiagDuplicateKeyword,
				Message: fmt.Sprintf("keyword %q appears more than once", part),
			})
			continue
		}
		kw, ok := registry[name]
		if !ok {
			diags = append(diags, doctree.Diagnostic{
				Line:       line,
				Kind:       doctree.DiagUnknownKeyword,
				Message:    fmt.Sprintf("keyword %q is not recognized", part),
				Suggestion: "see the keyword table in the README",
			})
			literal = append(literal, part)
			continue
		}
		seen[name] = true
		kws = append(kws, kw)
	}
	return kws, literal, diags
}
