// Package placeholder splits box templates into literal text and typed
// placeholder segments, and encodes the values those placeholders hold.
//
// Recognized markers:
//
//	..0..                     free text
//	.c0c.                     color (#RRGGBB)
//	.i0i.                     integer
//	.s0s.                     symbols only
//	.select:a=tmpl,b=tmpl     one toggle+payload slot per option
//
// A select marker runs to the end of the comma-separated option list, which
// in practice means the rest of the template.
package placeholder

import (
	"regexp"
	"strings"
)

// Marker spellings
const (
	TextMarker    = "..0.."
	ColorMarker   = ".c0c."
	IntegerMarker = ".i0i."
	SymbolMarker  = ".s0s."
	SelectPrefix  = ".select:"
)

// Kind identifies the type of a segment or of a select option's payload
type Kind int

const (
	Literal Kind = iota
	Text
	Color
	Integer
	Symbol
	Select
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Text:
		return "text"
	case Color:
		return "color"
	case Integer:
		return "integer"
	case Symbol:
		return "symbol"
	case Select:
		return "select"
	default:
		return "unknown"
	}
}

// Option is one labeled entry of a select group
type Option struct {
	Label string
	// Inner is Integer or Symbol when the option template names one of
	// those markers, otherwise Text.
	Inner Kind
}

// Segment is one piece of a tokenized template
type Segment struct {
	Kind    Kind
	Text    string   // literal text, or the raw marker for placeholders
	Options []Option // select groups only
}

// Slots returns how many value slots the segment occupies
func (s Segment) Slots() int {
	switch s.Kind {
	case Literal:
		return 0
	case Select:
		return len(s.Options)
	default:
		return 1
	}
}

var markerPattern = regexp.MustCompile(`\.\.0\.\.|\.c0c\.|\.i0i\.|\.s0s\.|\.select:[^,]+(?:,[^,]+)*`)

// Tokenize splits a template into ordered segments. Empty literals are
// dropped. The result depends only on the template text.
func Tokenize(template string) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range markerPattern.FindAllStringIndex(template, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Kind: Literal, Text: template[last:loc[0]]})
		}
		segments = append(segments, markerSegment(template[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(template) {
		segments = append(segments, Segment{Kind: Literal, Text: template[last:]})
	}
	return segments
}

// SlotCount returns the total number of value slots across segments
func SlotCount(segments []Segment) int {
	n := 0
	for _, s := range segments {
		n += s.Slots()
	}
	return n
}

func markerSegment(marker string) Segment {
	switch marker {
	case TextMarker:
		return Segment{Kind: Text, Text: marker}
	case ColorMarker:
		return Segment{Kind: Color, Text: marker}
	case IntegerMarker:
		return Segment{Kind: Integer, Text: marker}
	case SymbolMarker:
		return Segment{Kind: Symbol, Text: marker}
	}
	return Segment{Kind: Select, Text: marker, Options: parseOptions(strings.TrimPrefix(marker, SelectPrefix))}
}

// parseOptions reads "label=tmpl" pairs. Pairs without '=' take no slot.
func parseOptions(body string) []Option {
	options := []Option{}
	for _, part := range strings.Split(body, ",") {
		label, tmpl, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		options = append(options, Option{Label: label, Inner: innerKind(tmpl)})
	}
	return options
}

func innerKind(tmpl string) Kind {
	switch tmpl {
	case IntegerMarker:
		return Integer
	case SymbolMarker:
		return Symbol
	default:
		return Text
	}
}
