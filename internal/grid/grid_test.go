package grid

import (
	"testing"

	"github.com/dpshade/boxgrid/internal/models"
)

var box = models.Box{Content: "..0..", Color: "#ffffff"}

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		min      int
		wantRows int
		wantCols int
	}{
		{"empty", nil, 10, 10, 10},
		{"low cells", []string{"0_0", "2_3"}, 10, 13, 10},
		{"far cells", []string{"20_14"}, 10, 31, 15},
		{"malformed keys skipped", []string{"x_1", "3", "40_a"}, 10, 10, 10},
		{"oversized keys skipped", []string{"9223372036854775807_0", "0_100000", "2_1"}, 10, 13, 10},
		{"minimum clamped", nil, 2, 10, 10},
		{"larger minimum", []string{"0_0"}, 16, 16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := models.Workspace{}
			for _, k := range tt.keys {
				ws[k] = models.NewCell(box)
			}
			g := Scan(ws, tt.min, tt.min)
			if g.MaxRows != tt.wantRows || g.MaxCols != tt.wantCols {
				t.Errorf("Scan = %dx%d, want %dx%d", g.MaxRows, g.MaxCols, tt.wantRows, tt.wantCols)
			}
		})
	}
}

func TestPlaceRefusesOversizedPosition(t *testing.T) {
	ws := models.Workspace{}
	g := &Grid{MaxRows: models.MaxCoord + 5, MaxCols: MinSize}

	if _, err := g.Place(ws, models.MaxCoord, 0, box); err == nil {
		t.Error("expected an error for a row at the coordinate limit")
	}
	if len(ws) != 0 || g.MaxRows != models.MaxCoord+5 {
		t.Errorf("refused placement changed state: %d cells, %d rows", len(ws), g.MaxRows)
	}
}

func TestPlaceExpansion(t *testing.T) {
	ws := models.Workspace{}
	g := Scan(ws, MinSize, MinSize)

	p, err := g.Place(ws, 0, 0, box)
	if err != nil {
		t.Fatal(err)
	}
	if g.MaxRows != 11 || g.MaxCols != 11 {
		t.Errorf("after (0,0): %dx%d, want 11x11", g.MaxRows, g.MaxCols)
	}
	if !p.Rebuild() {
		t.Error("first drop should request a rebuild")
	}

	p, err = g.Place(ws, 0, 5, box)
	if err != nil {
		t.Fatal(err)
	}
	if p.Rebuild() || g.MaxRows != 11 || g.MaxCols != 11 {
		t.Errorf("(0,5) expanded grid: %+v, %dx%d", p, g.MaxRows, g.MaxCols)
	}

	p, _ = g.Place(ws, 3, 0, box)
	if p.RowsAdded != 1 || p.ColsAdded != 1 {
		t.Errorf("(3,0) placement = %+v, want one row and one column", p)
	}

	// A second drop on an already used column 0 still grows columns.
	p, _ = g.Place(ws, 3, 0, box)
	if p.RowsAdded != 0 || p.ColsAdded != 1 {
		t.Errorf("repeat (3,0) placement = %+v", p)
	}
	if g.MaxCols != 13 {
		t.Errorf("MaxCols = %d, want 13", g.MaxCols)
	}
}

func TestPlaceReplacesCell(t *testing.T) {
	ws := models.Workspace{}
	g := Scan(ws, MinSize, MinSize)

	if _, err := g.Place(ws, 1, 1, box); err != nil {
		t.Fatal(err)
	}
	ws["1_1"].Values.Set(0, "old")

	other := models.Box{Content: "new", Color: "#000000"}
	if _, err := g.Place(ws, 1, 1, other); err != nil {
		t.Fatal(err)
	}
	cell := ws["1_1"]
	if cell.Content != "new" || len(cell.Values) != 0 {
		t.Errorf("cell not replaced: %+v", cell)
	}
}

func TestPlaceOutsideGrid(t *testing.T) {
	ws := models.Workspace{}
	g := Scan(ws, MinSize, MinSize)

	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if _, err := g.Place(ws, pos[0], pos[1], box); err == nil {
			t.Errorf("Place(%d,%d) should fail", pos[0], pos[1])
		}
	}
	if len(ws) != 0 {
		t.Errorf("failed placements wrote cells: %v", ws)
	}
}

func TestOccupiedCellsStayInBounds(t *testing.T) {
	ws := models.Workspace{}
	g := Scan(ws, MinSize, MinSize)

	for i := 0; i < 30; i++ {
		row, col := g.MaxRows-1, (i*7)%g.MaxCols
		if _, err := g.Place(ws, row, col, box); err != nil {
			t.Fatal(err)
		}
		for _, k := range ws.Keys() {
			if !g.Contains(k.Row, k.Col) {
				t.Fatalf("cell %v outside %dx%d", k, g.MaxRows, g.MaxCols)
			}
		}
	}
}
