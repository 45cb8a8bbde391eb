package scanner

import (
	"testing"

	"github.com/alnah/go-bn2html/internal/doctree"
)

func TestSplitRuby(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		want      []RubySegment
		wantDiags int
	}{
		{
			name: "angle bracket reading",
			text: "漢字《かんじ》を書く",
			want: []RubySegment{
				{Base: "漢字", Reading: "かんじ", IsRuby: true},
				{Text: "を書く"},
			},
		},
		{
			name: "parenthesis reading with CJK base",
			text: "漢字(かんじ)",
			want: []RubySegment{
				{Base: "漢字", Reading: "かんじ", IsRuby: true},
			},
		},
		{
			name: "ascii parentheses stay plain",
			text: "see below (figure 3)",
			want: []RubySegment{
				{Text: "see below (figure 3)"},
			},
		},
		{
			name: "explicit base marker",
			text: "|ascii《reading》 rest",
			want: []RubySegment{
				{Base: "ascii", Reading: "reading", IsRuby: true},
				{Text: " rest"},
			},
		},
		{
			name: "explicit base with parentheses",
			text: "|base(reading)",
			want: []RubySegment{
				{Base: "base", Reading: "reading", IsRuby: true},
			},
		},
		{
			name: "multiple annotations",
			text: "東京《とうきょう》と大阪《おおさか》",
			want: []RubySegment{
				{Base: "東京", Reading: "とうきょう", IsRuby: true},
				{Text: "と"},
				{Base: "大阪", Reading: "おおさか", IsRuby: true},
			},
		},
		{
			name: "orphan reading degrades",
			text: "... 《かんじ》",
			want: []RubySegment{
				{Text: "... 《かんじ》"},
			},
			wantDiags: 1,
		},
		{
			name: "empty reading degrades",
			text: "漢字《》",
			want: []RubySegment{
				{Text: "漢字"},
			},
			wantDiags: 1,
		},
		{
			name: "no ruby at all",
			text: "plain text",
			want: []RubySegment{
				{Text: "plain text"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			segs, diags := SplitRuby(tt.text, 1)

			if len(segs) != len(tt.want) {
				t.Fatalf("got %d segments (%+v), want %d", len(segs), segs, len(tt.want))
			}
			for i, want := range tt.want {
				if segs[i] != want {
					t.Errorf("segment[%d] = %+v, want %+v", i, segs[i], want)
				}
			}
			if len(diags) != tt.wantDiags {
				t.Errorf("got %d diagnostics (%v), want %d", len(diags), diags, tt.wantDiags)
			}
			for _, d := range diags {
				if d.Kind != doctree.DiagMalformedRuby {
					t.Errorf("diagnostic kind = %v, want DiagMalformedRuby", d.Kind)
				}
			}
		})
	}
}

func TestContainsRubyCandidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"plain ascii", false},
		{"has 漢字 inside", true},
		{"pipe | marker", true},
		{"reading《here》", true},
		{"ひらがな", true},
	}

	for _, tt := range tests {
		tt := tt
		if got := ContainsRubyCandidate(tt.text); got != tt.want {
			t.Errorf("ContainsRubyCandidate(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
