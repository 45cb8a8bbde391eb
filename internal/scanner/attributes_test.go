package scanner

import (
	"testing"

	"github.com/alnah/go-bn2html/internal/doctree"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		wantHex string
		wantOK  bool
	}{
		{"red", "ff0000", true},
		{"RED", "ff0000", true},
		{"#ff0000", "ff0000", true},
		{"ff0000", "ff0000", true},
		{"#F0A", "ff00aa", true},
		{"f0a", "ff00aa", true},
		{"#FFAA00", "ffaa00", true},
		{"chartreuse", "", false},
		{"#ff00", "", false},
		{"#gggggg", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			c, ok := ParseColor(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if ok && c.Hex != tt.wantHex {
				t.Errorf("ParseColor(%q).Hex = %q, want %q", tt.value, c.Hex, tt.wantHex)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value     string
		wantValue float64
		wantUnit  string
		wantNamed string
		wantOK    bool
	}{
		{"12px", 12, "px", "", true},
		{"1.5em", 1.5, "em", "", true},
		{"10pt", 10, "pt", "", true},
		{"2rem", 2, "rem", "", true},
		{"large", 0, "", "large", true},
		{"X-LARGE", 0, "", "x-large", true},
		{"12", 0, "", "", false},
		{"12vw", 0, "", "", false},
		{"0px", 0, "", "", false},
		{"-3px", 0, "", "", false},
		{"huge", 0, "", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			s, ok := ParseSize(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("ParseSize(%q) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if s.Value != tt.wantValue || s.Unit != tt.wantUnit || s.Named != tt.wantNamed {
				t.Errorf("ParseSize(%q) = %+v, want value=%g unit=%q named=%q",
					tt.value, s, tt.wantValue, tt.wantUnit, tt.wantNamed)
			}
		})
	}
}

func TestParseAttributes(t *testing.T) {
	t.Parallel()

	t.Run("known attributes", func(t *testing.T) {
		t.Parallel()
		attrs, diags := ParseAttributes(
			[]string{"color=blue", "size=12px", "style=dashed", "role=nav", "id=intro", "lang=Go", "title=hint"}, 1)
		if len(diags) != 0 {
			t.Fatalf("unexpected diagnostics: %v", diags)
		}
		if attrs.Color == nil || attrs.Color.Hex != "0000ff" {
			t.Errorf("Color = %v, want 0000ff", attrs.Color)
		}
		if attrs.Size == nil || attrs.Size.Value != 12 || attrs.Size.Unit != "px" {
			t.Errorf("Size = %v, want 12px", attrs.Size)
		}
		if attrs.Border != doctree.BorderDashed {
			t.Errorf("Border = %q, want dashed", attrs.Border)
		}
		if attrs.Role != doctree.RoleNav {
			t.Errorf("Role = %q, want nav", attrs.Role)
		}
		if attrs.ID != "intro" {
			t.Errorf("ID = %q, want intro", attrs.ID)
		}
		if attrs.Lang != "go" {
			t.Errorf("Lang = %q, want go (lowercased)", attrs.Lang)
		}
		if attrs.Title != "hint" {
			t.Errorf("Title = %q, want hint", attrs.Title)
		}
	})

	t.Run("invalid value drops attribute with diagnostic", func(t *testing.T) {
		t.Parallel()
		attrs, diags := ParseAttributes([]string{"color=notacolor", "size=huge"}, 5)
		if attrs.Color != nil || attrs.Size != nil {
			t.Errorf("invalid values must not set attributes: %+v", attrs)
		}
		if len(diags) != 2 {
			t.Fatalf("got %d diagnostics, want 2", len(diags))
		}
		for _, d := range diags {
			if d.Kind != doctree.DiagInvalidAttribute {
				t.Errorf("Kind = %v, want DiagInvalidAttribute", d.Kind)
			}
			if d.Line != 5 {
				t.Errorf("Line = %d, want 5", d.Line)
			}
		}
	})

	t.Run("unknown attribute preserved", func(t *testing.T) {
		t.Parallel()
		attrs, diags := ParseAttributes([]string{"data-x=42"}, 1)
		if len(diags) != 0 {
			t.Fatalf("unexpected diagnostics: %v", diags)
		}
		if attrs.Unrecognized["data-x"] != "42" {
			t.Errorf("Unrecognized = %v, want data-x=42", attrs.Unrecognized)
		}
	})

	t.Run("token without equals", func(t *testing.T) {
		t.Parallel()
		_, diags := ParseAttributes([]string{"loose"}, 1)
		if len(diags) != 1 {
			t.Fatalf("got %d diagnostics, want 1", len(diags))
		}
	})

	t.Run("quoted value", func(t *testing.T) {
		t.Parallel()
		attrs, _ := ParseAttributes([]string{`summary="more detail"`}, 1)
		if attrs.Summary != "more detail" {
			t.Errorf("Summary = %q, want unquoted", attrs.Summary)
		}
	})
}
