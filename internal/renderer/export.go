package renderer

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/dpshade/boxgrid/internal/models"
)

// Lines resolves the grid row by row. Each line is the concatenation of the
// occupied cells of that row, left to right, with trailing whitespace
// removed. Unoccupied rows produce empty lines.
func Lines(ws models.Workspace, rows, cols int) []string {
	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		var b strings.Builder
		for col := 0; col < cols; col++ {
			cell, ok := ws.Get(models.CellKey{Row: row, Col: col})
			if !ok || cell == nil {
				continue
			}
			b.WriteString(NewRenderer(cell).RenderText())
		}
		lines = append(lines, strings.TrimRightFunc(b.String(), unicode.IsSpace))
	}
	return lines
}

// Text joins the exported lines with newlines
func Text(ws models.Workspace, rows, cols int) string {
	return strings.Join(Lines(ws, rows, cols), "\n")
}

// Line is one exported row in structured form
type Line struct {
	Row  int    `json:"row"`
	Text string `json:"text"`
}

// RenderJSON renders the exported lines as a JSON array
func RenderJSON(ws models.Workspace, rows, cols int) (string, error) {
	lines := Lines(ws, rows, cols)
	out := make([]Line, len(lines))
	for i, text := range lines {
		out[i] = Line{Row: i, Text: text}
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(jsonBytes), nil
}
