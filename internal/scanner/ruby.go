package scanner

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/alnah/go-bn2html/internal/doctree"
)

// Ruby annotation forms:
//
//	base《reading》      reading in double angle brackets, base inferred
//	base(reading)       ASCII parentheses, only when base is CJK script
//	|base《reading》     explicit base start marker
//	|base(reading)      explicit base start marker, ASCII parentheses
//
// The ASCII-parenthesis form requires a CJK base so parenthetical English
// text ("see below (figure 3)") is never misparsed as ruby.
var (
	explicitRuby = regexp.MustCompile(`\|([^|《》()\s]+)(?:《([^《》]*)》|\(([^()]*)\))`)
	implicitRuby = regexp.MustCompile(`([\p{Han}\p{Hiragana}\p{Katakana}ー々]+)(?:《([^《》]*)》|\(([^()]*)\))`)
	orphanReading = regexp.MustCompile(`《[^《》]*》`)
)

// RubySegment is one slice of an inline text run: either plain text or a
// base/reading pair.
type RubySegment struct {
	Text    string // plain text (IsRuby false)
	Base    string
	Reading string
	IsRuby  bool
}

// SplitRuby slices a text run into plain and ruby segments. Readings left
// without a base (an orphan 《reading》) degrade to plain text with a
// diagnostic.
func SplitRuby(text string, line int) ([]RubySegment, []doctree.Diagnostic) {
	var segs []RubySegment
	var diags []doctree.Diagnostic

	rest := text
	for rest != "" {
		expl := explicitRuby.FindStringSubmatchIndex(rest)
		impl := implicitRuby.FindStringSubmatchIndex(rest)

		// Pick the earlier match; explicit wins a tie since it starts on
		// the '|' that precedes the base.
		loc, m := expl, explicitRuby
		if loc == nil || (impl != nil && impl[0] < loc[0]) {
			loc, m = impl, implicitRuby
		}
		if loc == nil {
			break
		}

		if loc[0] > 0 {
			segs = append(segs, RubySegment{Text: rest[:loc[0]]})
		}
		groups := m.FindStringSubmatch(rest[loc[0]:loc[1]])
		base := groups[1]
		reading := groups[2]
		if reading == "" {
			reading = groups[3]
		}
		if reading == "" {
			diags = append(diags, doctree.Diagnostic{
				Line:       line,
				Kind:       doctree.DiagMalformedRuby,
				Message:    "ruby annotation has an empty reading",
				Suggestion: "write base《reading》 with a non-empty reading",
			})
			segs = append(segs, RubySegment{Text: base})
		} else {
			segs = append(segs, RubySegment{Base: base, Reading: reading, IsRuby: true})
		}
		rest = rest[loc[1]:]
	}

	if rest != "" {
		// Orphan readings with no inferable base degrade to plain text.
		if loc := orphanReading.FindStringIndex(rest); loc != nil {
			diags = append(diags, doctree.Diagnostic{
				Line:       line,
				Kind:       doctree.DiagMalformedRuby,
				Message:    "ruby reading without a base",
				Suggestion: "put the base text directly before 《reading》 or mark it with |",
			})
		}
		segs = append(segs, RubySegment{Text: rest})
	}
	return segs, diags
}

// hasCJK reports whether s contains at least one Han, Hiragana, or Katakana
// rune. Used by tests and by the parser to shortcut inline processing.
func hasCJK(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}

// ContainsRubyCandidate reports whether a line could hold ruby notation at
// all, letting the parser skip regex work on plain ASCII prose.
func ContainsRubyCandidate(s string) bool {
	return strings.ContainsAny(s, "《|") || hasCJK(s)
}
