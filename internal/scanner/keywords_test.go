package scanner

import (
	"testing"

	"github.com/alnah/go-bn2html/internal/doctree"
)

func TestParseKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		expr        string
		wantNames   []string
		wantLiteral []string
		wantDiags   []doctree.DiagnosticKind
	}{
		{
			name:      "single keyword",
			expr:      "bold",
			wantNames: []string{"bold"},
		},
		{
			name:      "compound preserves order",
			expr:      "box+bold+highlight",
			wantNames: []string{"box", "bold", "highlight"},
		},
		{
			name:      "case insensitive",
			expr:      "BOLD+Italic",
			wantNames: []string{"bold", "italic"},
		},
		{
			name:        "unknown keyword dropped",
			expr:        "bold+sparkle",
			wantNames:   []string{"bold"},
			wantLiteral: []string{"sparkle"},
			wantDiags:   []doctree.DiagnosticKind{doctree.DiagUnknownKeyword},
		},
		{
			name:      "duplicate dropped",
			expr:      "bold+bold",
			wantNames: []string{"bold"},
			wantDiags: []doctree.DiagnosticKind{doctree.DiagDuplicateKeyword},
		},
		{
			name:      "trailing plus",
			expr:      "bold+",
			wantNames: []string{"bold"},
			wantDiags: []doctree.DiagnosticKind{doctree.DiagMalformedCompound},
		},
		{
			name:        "all unknown",
			expr:        "foo+bar",
			wantLiteral: []string{"foo", "bar"},
			wantDiags: []doctree.DiagnosticKind{
				doctree.DiagUnknownKeyword,
				doctree.DiagUnknownKeyword,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kws, literal, diags := ParseKeywords(tt.expr, 1)

			if len(kws) != len(tt.wantNames) {
				t.Fatalf("got %d keywords, want %d", len(kws), len(tt.wantNames))
			}
			for i, name := range tt.wantNames {
				if kws[i].Name != name {
					t.Errorf("keyword[%d] = %q, want %q", i, kws[i].Name, name)
				}
			}

			if len(literal) != len(tt.wantLiteral) {
				t.Fatalf("got literal %v, want %v", literal, tt.wantLiteral)
			}
			for i, lit := range tt.wantLiteral {
				if literal[i] != lit {
					t.Errorf("literal[%d] = %q, want %q", i, literal[i], lit)
				}
			}

			if len(diags) != len(tt.wantDiags) {
				t.Fatalf("got %d diagnostics (%v), want %d", len(diags), diags, len(tt.wantDiags))
			}
			for i, kind := range tt.wantDiags {
				if diags[i].Kind != kind {
					t.Errorf("diag[%d].Kind = %v, want %v", i, diags[i].Kind, kind)
				}
			}
		})
	}
}

func TestLookupKeywordRegistry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    doctree.Kind
		level   int
		ordered bool
	}{
		{"bold", doctree.KindStyled, 0, false},
		{"h1", doctree.KindHeading, 1, false},
		{"h5", doctree.KindHeading, 5, false},
		{"list", doctree.KindList, 0, false},
		{"numlist", doctree.KindList, 0, true},
		{"note", doctree.KindFootnoteDef, 0, false},
		{"code", doctree.KindCode, 0, false},
		{"md", doctree.KindMarkdown, 0, false},
		{"toc", doctree.KindTOCMarker, 0, false},
	}

	for _, tt := range tests {
		tt := tt
		kw, ok := LookupKeyword(tt.name)
		if !ok {
			t.Errorf("LookupKeyword(%q) not found", tt.name)
			continue
		}
		if kw.Kind != tt.kind || kw.Level != tt.level || kw.Ordered != tt.ordered {
			t.Errorf("LookupKeyword(%q) = %+v, want kind=%v level=%d ordered=%v",
				tt.name, kw, tt.kind, tt.level, tt.ordered)
		}
	}

	if _, ok := LookupKeyword("h6"); ok {
		t.Error("h6 should not be registered")
	}
}
