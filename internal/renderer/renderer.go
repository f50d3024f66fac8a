package renderer

import (
	"strings"

	"github.com/dpshade/boxgrid/internal/models"
	"github.com/dpshade/boxgrid/internal/placeholder"
)

// Renderer resolves one placed cell, either into editable fields or into
// export text. Both paths go through walk so they advance slot indexes
// identically.
type Renderer struct {
	cell     *models.Cell
	segments []placeholder.Segment
}

// NewRenderer creates a renderer for a cell
func NewRenderer(cell *models.Cell) *Renderer {
	return &Renderer{
		cell:     cell,
		segments: placeholder.Tokenize(cell.Content),
	}
}

// SlotCount returns the number of value slots in the cell's template
func (r *Renderer) SlotCount() int {
	return placeholder.SlotCount(r.segments)
}

// slot is a single value position reached by walk
type slot struct {
	index  int
	kind   placeholder.Kind
	option *placeholder.Option
}

// walk visits segments in order, handing literals to literal and each value
// slot to visit with a running index. Select groups yield one slot per option.
func (r *Renderer) walk(literal func(string), visit func(slot)) int {
	index := 0
	for _, seg := range r.segments {
		switch seg.Kind {
		case placeholder.Literal:
			literal(seg.Text)
		case placeholder.Select:
			for i := range seg.Options {
				visit(slot{index: index, kind: placeholder.Select, option: &seg.Options[i]})
				index++
			}
		default:
			visit(slot{index: index, kind: seg.Kind})
			index++
		}
	}
	return index
}

// RenderText resolves the cell into export text. Missing values are empty
// and only enabled select options contribute, as "label=payload ".
func (r *Renderer) RenderText() string {
	var b strings.Builder
	values := r.cell.Values
	r.walk(
		func(text string) { b.WriteString(text) },
		func(s slot) {
			if s.kind != placeholder.Select {
				b.WriteString(values.GetOr(s.index, ""))
				return
			}
			opt := placeholder.DecodeOption(values.GetOr(s.index, placeholder.DefaultOption))
			if opt.Enabled {
				b.WriteString(s.option.Label)
				b.WriteString("=")
				b.WriteString(opt.Payload)
				b.WriteString(" ")
			}
		},
	)
	return b.String()
}

// Bind builds the interactive form of the cell. Every accepted edit on a
// returned field is passed to onChange with the field's slot index.
func (r *Renderer) Bind(onChange ChangeFunc) []Part {
	var parts []Part
	values := r.cell.Values
	r.walk(
		func(text string) { parts = append(parts, Part{Literal: text}) },
		func(s slot) {
			f := &Field{Index: s.index, Kind: s.kind, onChange: onChange}
			if s.kind == placeholder.Select {
				f.Label = s.option.Label
				f.Inner = s.option.Inner
				f.option = placeholder.DecodeOption(values.GetOr(s.index, placeholder.DefaultOption))
			} else {
				f.value = values.GetOr(s.index, "")
			}
			parts = append(parts, Part{Field: f})
		},
	)
	return parts
}

// Fields returns only the field parts of a binding, in slot order
func Fields(parts []Part) []*Field {
	var fields []*Field
	for _, p := range parts {
		if p.Field != nil {
			fields = append(fields, p.Field)
		}
	}
	return fields
}
