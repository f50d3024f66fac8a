// Package grid tracks the visible extents of the workspace and applies the
// expansion rules when boxes are dropped.
package grid

import (
	"fmt"

	"github.com/dpshade/boxgrid/internal/models"
)

const (
	// MinSize is the smallest row and column count a grid may have
	MinSize = 10
	// TrailingRows is how many empty rows are kept below the last used row at load time
	TrailingRows = 10
)

// Grid holds the visible row and column counts
type Grid struct {
	MaxRows int
	MaxCols int
}

// Placement describes what a drop changed
type Placement struct {
	Key       models.CellKey
	RowsAdded int
	ColsAdded int
}

// Rebuild reports whether the whole grid needs re-rendering. When false only
// the placed cell changed.
func (p Placement) Rebuild() bool {
	return p.RowsAdded > 0 || p.ColsAdded > 0
}

// Scan computes extents from the existing cell keys. Rows leave TrailingRows
// spare rows below the highest used row; columns cover the highest used
// column. Neither drops below the given minimums, which are clamped to MinSize.
// Malformed and out-of-range keys are skipped.
func Scan(ws models.Workspace, minRows, minCols int) *Grid {
	minRows = max(minRows, MinSize)
	minCols = max(minCols, MinSize)

	maxRow, maxCol := -1, -1
	for _, k := range ws.Keys() {
		maxRow = max(maxRow, k.Row)
		maxCol = max(maxCol, k.Col)
	}

	return &Grid{
		MaxRows: max(minRows, maxRow+1+TrailingRows),
		MaxCols: max(minCols, maxCol+1),
	}
}

// Contains reports whether a position is inside the visible grid
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.MaxRows && col < g.MaxCols
}

// Place writes a fresh cell for box at (row, col), replacing any existing
// cell, and grows the grid:
//   - the first box on a row adds one row
//   - any drop on column 0 adds one column to the whole grid
func (g *Grid) Place(ws models.Workspace, row, col int, box models.Box) (Placement, error) {
	if !g.Contains(row, col) || row >= models.MaxCoord || col >= models.MaxCoord {
		return Placement{}, fmt.Errorf("position %d,%d outside %dx%d grid", row, col, g.MaxRows, g.MaxCols)
	}

	rowAlreadyUsed := ws.RowUsed(row)

	key := models.CellKey{Row: row, Col: col}
	ws[key.String()] = models.NewCell(box)

	p := Placement{Key: key}
	if !rowAlreadyUsed {
		g.MaxRows++
		p.RowsAdded = 1
	}
	// Column growth is global: the grid stays rectangular.
	if col == 0 {
		g.MaxCols++
		p.ColsAdded = 1
	}
	return p, nil
}
