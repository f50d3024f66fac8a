package placeholder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []Segment
		slots    int
	}{
		{
			name:     "plain text",
			template: "hello",
			want:     []Segment{{Kind: Literal, Text: "hello"}},
			slots:    0,
		},
		{
			name:     "empty",
			template: "",
			want:     nil,
			slots:    0,
		},
		{
			name:     "all simple markers",
			template: "a..0..b.c0c..i0i..s0s.",
			want: []Segment{
				{Kind: Literal, Text: "a"},
				{Kind: Text, Text: "..0.."},
				{Kind: Literal, Text: "b"},
				{Kind: Color, Text: ".c0c."},
				{Kind: Integer, Text: ".i0i."},
				{Kind: Symbol, Text: ".s0s."},
			},
			slots: 4,
		},
		{
			name:     "select group",
			template: "Score: ..0.. pts .select:Bonus=.i0i.,Crit=.s0s.",
			want: []Segment{
				{Kind: Literal, Text: "Score: "},
				{Kind: Text, Text: "..0.."},
				{Kind: Literal, Text: " pts "},
				{Kind: Select, Text: ".select:Bonus=.i0i.,Crit=.s0s.", Options: []Option{
					{Label: "Bonus", Inner: Integer},
					{Label: "Crit", Inner: Symbol},
				}},
			},
			slots: 3,
		},
		{
			name:     "select options without equals take no slot",
			template: ".select:row=.i0i.,junk,col=",
			want: []Segment{
				{Kind: Select, Text: ".select:row=.i0i.,junk,col=", Options: []Option{
					{Label: "row", Inner: Integer},
					{Label: "col", Inner: Text},
				}},
			},
			slots: 2,
		},
		{
			name:     "select swallows the rest of the template",
			template: ".select:a=x ..0.. tail",
			want: []Segment{
				{Kind: Select, Text: ".select:a=x ..0.. tail", Options: []Option{
					{Label: "a", Inner: Text},
				}},
			},
			slots: 1,
		},
		{
			name:     "bare select prefix stays literal",
			template: "x .select:",
			want:     []Segment{{Kind: Literal, Text: "x .select:"}},
			slots:    0,
		},
		{
			name:     "double comma ends the select",
			template: ".select:a=1,,rest",
			want: []Segment{
				{Kind: Select, Text: ".select:a=1", Options: []Option{{Label: "a", Inner: Text}}},
				{Kind: Literal, Text: ",,rest"},
			},
			slots: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.template)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
			}
			if n := SlotCount(got); n != tt.slots {
				t.Errorf("SlotCount = %d, want %d", n, tt.slots)
			}
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	templates := []string{
		"Score: ..0.. pts .select:Bonus=.i0i.,Crit=.s0s.",
		".c0c..c0c.....0....",
		"no markers at all",
	}
	for _, tmpl := range templates {
		first := Tokenize(tmpl)
		second := Tokenize(tmpl)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Tokenize(%q) not deterministic:\n%s", tmpl, diff)
		}
		if SlotCount(first) != SlotCount(second) {
			t.Errorf("SlotCount(%q) differs between runs", tmpl)
		}
	}
}
