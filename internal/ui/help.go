package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const helpMarkdown = `# boxgrid

Place template boxes on a grid, fill in their slots, and export the result
as text, one line per row.

## Grid

| Key | Action |
|-----|--------|
| ↑ ↓ ← → / h j k l | move the cursor |
| enter | edit the cell, or open the palette on an empty cell |
| p | open the palette to place a box (replaces the cell) |
| x | export preview |
| c | copy the export to the clipboard |
| s | save the workspace as a project file |
| i | import a project file |
| ? | toggle this help |
| q | quit |

## Palette

| Key | Action |
|-----|--------|
| tab / shift+tab | switch category |
| / | filter boxes |
| enter | place the box at the cursor |
| n | new category |
| r | rename the category |
| a | add a box to the category |
| esc | back to the grid |

## Cell editor

| Key | Action |
|-----|--------|
| tab / ↓ | next slot |
| shift+tab / ↑ | previous slot |
| space | toggle an option |
| esc | back to the grid |

Edits are saved as you type. Keys that would make a value invalid are ignored.

## Template markers

- ` + "`..0..`" + ` text
- ` + "`.c0c.`" + ` color
- ` + "`.i0i.`" + ` integer: digits with an optional leading ` + "`-`" + `
- ` + "`.s0s.`" + ` symbol: no letters or digits
- ` + "`.select:Label=.i0i.,Other=..0..`" + ` options; each enabled option exports as ` + "`Label=value `" + `

The first box placed on a row adds a row to the grid. Any box placed in
column 0 adds a column.
`

// createGlamourRenderer creates a glamour renderer for the configured style,
// detecting the terminal background when none is set.
func createGlamourRenderer(style string, wordWrap int) (*glamour.TermRenderer, error) {
	if style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	var styleOption glamour.TermRendererOption
	switch profile {
	case termenv.TrueColor, termenv.ANSI256:
		if lipgloss.HasDarkBackground() {
			styleOption = glamour.WithStandardStyle("dark")
		} else {
			styleOption = glamour.WithStandardStyle("light")
		}
	default:
		styleOption = glamour.WithAutoStyle()
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// renderHelp renders the help markdown, falling back to the raw text
func renderHelp(r *glamour.TermRenderer) string {
	if r == nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
