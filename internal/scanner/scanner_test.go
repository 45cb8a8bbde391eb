package scanner

import (
	"testing"

	"github.com/alnah/go-bn2html/internal/doctree"
)

func TestScanLineClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want LineKind
	}{
		{"plain prose", "just some text", LinePlain},
		{"empty line", "", LinePlain},
		{"block open", "[[bold[[", LineBlockOpen},
		{"block open with attrs", "[[box color=red[[", LineBlockOpen},
		{"block close", "]]", LineBlockClose},
		{"block close with indent", "  ]]  ", LineBlockClose},
		{"single line", "[[bold[[ hi ]]", LineSingle},
		{"marker only", "[[toc]]", LineMarkerOnly},
		{"open with trailing garbage", "[[bold[[ unterminated", LinePlain},
		{"double bracket mid-line", "an [[aside]] mention", LinePlain},
		{"close marker with content", "]] trailing", LinePlain},
		{"indented block open", "   [[quote[[", LineBlockOpen},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ScanLine(tt.text, 1)
			if got.Kind != tt.want {
				t.Errorf("ScanLine(%q).Kind = %v, want %v", tt.text, got.Kind, tt.want)
			}
		})
	}
}

func TestScanLineBlockOpen(t *testing.T) {
	t.Parallel()

	ln := ScanLine("[[bold+highlight color=red size=large[[", 7)
	if ln.Kind != LineBlockOpen {
		t.Fatalf("Kind = %v, want LineBlockOpen", ln.Kind)
	}
	if len(ln.Keywords) != 2 {
		t.Fatalf("len(Keywords) = %d, want 2", len(ln.Keywords))
	}
	if ln.Keywords[0].Name != "bold" || ln.Keywords[1].Name != "highlight" {
		t.Errorf("Keywords = %v, want bold then highlight", ln.Keywords)
	}
	if ln.Attrs.Color == nil || ln.Attrs.Color.Hex != "ff0000" {
		t.Errorf("Attrs.Color = %v, want ff0000", ln.Attrs.Color)
	}
	if ln.Attrs.Size == nil || ln.Attrs.Size.Named != "large" {
		t.Errorf("Attrs.Size = %v, want named large", ln.Attrs.Size)
	}
	if ln.Number != 7 {
		t.Errorf("Number = %d, want 7", ln.Number)
	}
}

func TestScanLineSingle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		text        string
		wantContent string
		wantKeyword string
	}{
		{"simple", "[[bold[[ hello ]]", "hello", "bold"},
		{"no padding", "[[italic[[text]]", "text", "italic"},
		{"heading", "[[h2[[ Overview ]]", "Overview", "h2"},
		{"empty content", "[[bold[[ ]]", "", "bold"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ln := ScanLine(tt.text, 1)
			if ln.Kind != LineSingle {
				t.Fatalf("Kind = %v, want LineSingle", ln.Kind)
			}
			if ln.Content != tt.wantContent {
				t.Errorf("Content = %q, want %q", ln.Content, tt.wantContent)
			}
			if len(ln.Keywords) != 1 || ln.Keywords[0].Name != tt.wantKeyword {
				t.Errorf("Keywords = %v, want single %q", ln.Keywords, tt.wantKeyword)
			}
		})
	}
}

func TestScanLineMarkerOnly(t *testing.T) {
	t.Parallel()

	ln := ScanLine("[[toc]]", 3)
	if ln.Kind != LineMarkerOnly {
		t.Fatalf("Kind = %v, want LineMarkerOnly", ln.Kind)
	}
	if len(ln.Keywords) != 1 || ln.Keywords[0].Kind != doctree.KindTOCMarker {
		t.Errorf("Keywords = %v, want toc marker", ln.Keywords)
	}

	// Unknown keyword in marker form degrades to plain with a diagnostic.
	bad := ScanLine("[[whatever]]", 3)
	if bad.Kind != LinePlain {
		t.Fatalf("Kind = %v, want LinePlain", bad.Kind)
	}
	if len(bad.Diags) != 1 || bad.Diags[0].Kind != doctree.DiagUnknownKeyword {
		t.Errorf("Diags = %v, want one unknown-keyword diagnostic", bad.Diags)
	}
	if bad.Content != "[[whatever]]" {
		t.Errorf("Content = %q, want original text preserved", bad.Content)
	}
}

func TestScanLineEmptyHeader(t *testing.T) {
	t.Parallel()

	ln := ScanLine("[[[[", 1)
	if ln.Kind != LineBlockOpen {
		t.Fatalf("Kind = %v, want LineBlockOpen", ln.Kind)
	}
	if len(ln.Keywords) != 0 {
		t.Errorf("Keywords = %v, want none", ln.Keywords)
	}
	if len(ln.Diags) == 0 {
		t.Error("want a diagnostic for the empty keyword")
	}
}

func TestScanLineQuotedAttribute(t *testing.T) {
	t.Parallel()

	ln := ScanLine(`[[fold summary="click to expand"[[`, 1)
	if ln.Kind != LineBlockOpen {
		t.Fatalf("Kind = %v, want LineBlockOpen", ln.Kind)
	}
	if ln.Attrs.Summary != "click to expand" {
		t.Errorf("Summary = %q, want %q", ln.Attrs.Summary, "click to expand")
	}
}
