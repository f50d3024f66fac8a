package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/boxgrid/internal/placeholder"
	"github.com/dpshade/boxgrid/internal/renderer"
)

// editorStop is one focusable position in the cell editor. Select options
// have two: the on/off toggle and the payload input.
type editorStop struct {
	field  *renderer.Field
	toggle bool
	input  textinput.Model
}

// CellEditor edits the slots of one bound cell. Every accepted keystroke is
// written through to the cell; a keystroke that would make the value invalid
// is undone.
type CellEditor struct {
	row, col int
	parts    []renderer.Part
	stops    []*editorStop
	focused  int
	err      error
}

// NewCellEditor creates an editor over parts, focused on the first stop
func NewCellEditor(row, col int, parts []renderer.Part) *CellEditor {
	e := &CellEditor{row: row, col: col, parts: parts}

	for _, f := range renderer.Fields(parts) {
		if f.IsOption() {
			e.stops = append(e.stops, &editorStop{field: f, toggle: true})
			e.stops = append(e.stops, &editorStop{field: f, input: newSlotInput(f.Payload(), f.Inner)})
			continue
		}
		e.stops = append(e.stops, &editorStop{field: f, input: newSlotInput(f.Raw(), f.Kind)})
	}

	if len(e.stops) > 0 {
		e.focus(0)
	}
	return e
}

func newSlotInput(value string, kind placeholder.Kind) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(value)
	switch kind {
	case placeholder.Integer:
		ti.Placeholder = "0"
		ti.Width = 8
	case placeholder.Symbol:
		ti.Placeholder = "#"
		ti.Width = 4
	case placeholder.Color:
		ti.Placeholder = placeholder.DefaultColor
		ti.CharLimit = 7
		ti.Width = 8
	default:
		ti.Placeholder = "text"
		ti.Width = 16
	}
	return ti
}

// SlotCount returns the number of bound fields
func (e *CellEditor) SlotCount() int {
	return len(renderer.Fields(e.parts))
}

// Err returns the last write-through error, if any
func (e *CellEditor) Err() error {
	return e.err
}

func (e *CellEditor) focus(i int) {
	if e.focused < len(e.stops) {
		e.stops[e.focused].input.Blur()
	}
	e.focused = i
	if s := e.stops[i]; !s.toggle {
		s.input.Focus()
	}
}

// reachable reports whether a stop can take focus. Payloads of disabled
// options cannot.
func (s *editorStop) reachable() bool {
	return s.toggle || !s.field.IsOption() || s.field.PayloadEditable()
}

func (e *CellEditor) move(delta int) {
	n := len(e.stops)
	if n == 0 {
		return
	}
	i := e.focused
	for range e.stops {
		i = (i + delta + n) % n
		if e.stops[i].reachable() {
			e.focus(i)
			return
		}
	}
}

// Update handles a key press
func (e *CellEditor) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(e.stops) == 0 {
		return nil
	}
	e.err = nil

	switch keyMsg.String() {
	case "tab", "down":
		e.move(1)
		return nil
	case "shift+tab", "up":
		e.move(-1)
		return nil
	}

	stop := e.stops[e.focused]
	if stop.toggle {
		switch keyMsg.String() {
		case " ", "enter":
			e.err = stop.field.SetEnabled(!stop.field.Enabled())
		}
		return nil
	}

	old := stop.input.Value()
	pos := stop.input.Position()

	var cmd tea.Cmd
	stop.input, cmd = stop.input.Update(msg)

	if v := stop.input.Value(); v != old {
		accepted, err := stop.field.Set(v)
		e.err = err
		if !accepted {
			stop.input.SetValue(old)
			stop.input.SetCursor(pos)
		}
	}
	return cmd
}

// View renders the cell inline: literal text with the slot widgets in place
func (e *CellEditor) View() string {
	var focusedField *renderer.Field
	var focusedToggle bool
	if len(e.stops) > 0 {
		focusedField = e.stops[e.focused].field
		focusedToggle = e.stops[e.focused].toggle
	}

	stopsByField := make(map[*renderer.Field][]*editorStop)
	for _, s := range e.stops {
		stopsByField[s.field] = append(stopsByField[s.field], s)
	}

	var b strings.Builder
	for _, p := range e.parts {
		if p.Field == nil {
			b.WriteString(StyleText.Render(p.Literal))
			continue
		}
		f := p.Field
		stops := stopsByField[f]
		if f.IsOption() {
			box := "[ ]"
			if f.Enabled() {
				box = "[x]"
			}
			if f == focusedField && focusedToggle {
				box = StyleFocused.Render(box)
			}
			b.WriteString(box + " " + StyleFormLabel.Render(f.Label+"="))
			if f.Enabled() {
				b.WriteString(slotView(stops[1], f == focusedField && !focusedToggle))
			}
			b.WriteString(" ")
			continue
		}
		b.WriteString(slotView(stops[0], f == focusedField))
		if f.Kind == placeholder.Color {
			b.WriteString(" " + Swatch(f.Value()))
		}
	}
	return b.String()
}

func slotView(s *editorStop, focused bool) string {
	style := lipgloss.NewStyle().Underline(true)
	if focused {
		style = style.Foreground(ColorAccent)
	}
	return style.Render(s.input.View())
}
