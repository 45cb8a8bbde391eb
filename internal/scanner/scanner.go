// Package scanner recognizes the block-notation wire format line by line:
// block open/close markers, single-line notation, compound keywords,
// inline attributes, and ruby annotations. It has no dependency on the
// parser; the parser consumes its output to build the document tree.
package scanner

import (
	"strconv"
	"strings"

	"github.com/alnah/go-bn2html/internal/doctree"
)

// Marker constants for the notation.
const (
	OpenMarker  = "[["
	CloseMarker = "]]"
)

// LineKind classifies one source line.
type LineKind int

const (
	// LinePlain is ordinary content (or a degraded marker line).
	LinePlain LineKind = iota
	// LineBlockOpen opens a block: "[[keyword attr=value[[".
	LineBlockOpen
	// LineBlockClose is a bare "]]" line. Always a close, regardless of
	// nesting context.
	LineBlockClose
	// LineSingle is open+content+close on one line: "[[bold[[ hi ]]".
	LineSingle
	// LineMarkerOnly is "[[keyword]]" with no content (used by toc).
	LineMarkerOnly
)

// Line is the scanner's classification of one source line.
type Line struct {
	Number   int
	Kind     LineKind
	Keywords []Keyword // validated keywords, outermost first
	Literal  []string  // unknown keyword text, degraded to plain content
	Attrs    doctree.Attributes
	Content  string // single-line body, or the raw text for LinePlain
	Diags    []doctree.Diagnostic
}

// ScanLine classifies a single source line. number is the 1-based line
// offset in the whole document (segment offsets are added by the caller).
func ScanLine(text string, number int) Line {
	trimmed := strings.TrimSpace(text)

	if trimmed == CloseMarker {
		return Line{Number: number, Kind: LineBlockClose}
	}
	if !strings.HasPrefix(trimmed, OpenMarker) {
		return Line{Number: number, Kind: LinePlain, Content: text}
	}

	inner := trimmed[len(OpenMarker):]

	// "[[header[[" or "[[header[[ content ]]"
	if idx := strings.Index(inner, OpenMarker); idx >= 0 {
		header := inner[:idx]
		rest := strings.TrimSpace(inner[idx+len(OpenMarker):])
		ln := Line{Number: number}
		ln.Keywords, ln.Literal, ln.Attrs, ln.Diags = parseHeader(header, number)

		switch {
		case rest == "":
			ln.Kind = LineBlockOpen
		case strings.HasSuffix(rest, CloseMarker):
			ln.Kind = LineSingle
			ln.Content = strings.TrimSpace(strings.TrimSuffix(rest, CloseMarker))
		default:
			// Open marker with trailing garbage: not valid notation,
			// keep the whole line as content.
			return Line{Number: number, Kind: LinePlain, Content: text}
		}
		return ln
	}

	// "[[keyword]]" marker-only form.
	if strings.HasSuffix(inner, CloseMarker) {
		name := strings.TrimSpace(strings.TrimSuffix(inner, CloseMarker))
		if kw, ok := LookupKeyword(name); ok && !strings.ContainsAny(name, " \t") {
			return Line{Number: number, Kind: LineMarkerOnly, Keywords: []Keyword{kw}}
		}
		return Line{
			Number:  number,
			Kind:    LinePlain,
			Content: text,
			Diags: []doctree.Diagnostic{{
				Line:       number,
				Kind:       doctree.DiagUnknownKeyword,
				Message:    "marker line with unrecognized keyword " + strconv.Quote(name),
				Suggestion: "only registered keywords may appear in [[keyword]] form",
			}},
		}
	}

	return Line{Number: number, Kind: LinePlain, Content: text}
}

// parseHeader splits a block header into its compound keyword expression and
// attribute tokens.
func parseHeader(header string, number int) ([]Keyword, []string, doctree.Attributes, []doctree.Diagnostic) {
	fields := splitQuoted(strings.TrimSpace(header))
	if len(fields) == 0 {
		return nil, nil, doctree.Attributes{}, []doctree.Diagnostic{{
			Line:    number,
			Kind:    doctree.DiagUnknownKeyword,
			Message: "block marker with empty keyword",
		}}
	}

	kws, literal, diags := ParseKeywords(fields[0], number)
	attrs, attrDiags := ParseAttributes(fields[1:], number)
	diags = append(diags, attrDiags...)
	return kws, literal, attrs, diags
}

// splitQuoted splits on spaces while keeping double-quoted spans intact, so
// summary="click here" parses as one token.
func splitQuoted(s string) []string {
	var fields []string
	var cur strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuote:
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}
