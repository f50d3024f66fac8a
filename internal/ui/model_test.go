package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/dpshade/boxgrid/internal/config"
	"github.com/dpshade/boxgrid/internal/models"
	"github.com/dpshade/boxgrid/internal/service"
)

func containsPlain(view, want string) bool {
	return strings.Contains(ansi.Strip(view), want)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(newTestService(t))
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return update(t, *m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func TestCursorMovementIsClamped(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursorRow != 0 || m.cursorCol != 0 {
		t.Errorf("Cursor should stay at 0,0, got %d,%d", m.cursorRow, m.cursorCol)
	}

	for i := 0; i < 20; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m = update(t, m, runes("l"))
	}
	if m.cursorRow != 9 || m.cursorCol != 9 {
		t.Errorf("Cursor should stop at 9,9 on an empty grid, got %d,%d", m.cursorRow, m.cursorCol)
	}
}

func TestPlaceFromPalette(t *testing.T) {
	m := newTestModel(t)
	if _, err := m.service.CreateCategory(); err != nil {
		t.Fatal(err)
	}
	if _, err := m.service.AddBox(0, "Hi ..0..", "#336699"); err != nil {
		t.Fatal(err)
	}

	m = update(t, m, runes("p"))
	if m.viewMode != ViewPalette {
		t.Fatalf("Expected palette view, got %v", m.viewMode)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.viewMode != ViewGrid {
		t.Fatalf("Expected grid view after placing, got %v", m.viewMode)
	}

	cell, ok := m.service.Cell(0, 0)
	if !ok || cell.Content != "Hi ..0.." || cell.Color != "#336699" {
		t.Fatalf("Unexpected cell after placing: %+v", cell)
	}
	rows, cols := m.service.Size()
	if rows != 11 || cols != 11 {
		t.Errorf("Expected 11x11 grid, got %dx%d", rows, cols)
	}
	if !strings.Contains(m.statusMsg, "Placed box at 0_0") {
		t.Errorf("Unexpected status %q", m.statusMsg)
	}

	// Enter on an occupied cell opens the editor
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.viewMode != ViewEditor || m.editor == nil {
		t.Fatalf("Expected editor view, got %v", m.viewMode)
	}
	m = update(t, m, runes("Bo"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.viewMode != ViewGrid {
		t.Errorf("Expected grid after esc, got %v", m.viewMode)
	}
	if lines := m.service.ExportLines(); lines[0] != "Hi Bo" {
		t.Errorf("Expected export %q, got %q", "Hi Bo", lines[0])
	}
}

func TestPaletteAddsCategoryAndBox(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, runes("p"))
	m = update(t, m, runes("n"))
	if m.prompt == nil || m.prompt.purpose != promptRenameCategory {
		t.Fatal("Expected rename prompt after creating a category")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(t, m, runes("a"))
	m = update(t, m, runes("Total .i0i."))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompt == nil || m.prompt.purpose != promptBoxColor {
		t.Fatal("Expected color prompt after content")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	boxes, err := m.service.Boxes(0)
	if err != nil {
		t.Fatal(err)
	}
	want := models.Box{Content: "Total .i0i.", Color: models.DefaultBoxColor}
	if len(boxes) != 1 || boxes[0] != want {
		t.Errorf("Unexpected boxes %+v", boxes)
	}
	if m.service.Categories()[0].Name != "New Category" {
		t.Errorf("Unexpected category name %q", m.service.Categories()[0].Name)
	}
}

func TestImportFailureKeepsWorkspace(t *testing.T) {
	m := newTestModel(t)
	if _, err := m.service.PlaceBox(2, 2, models.Box{Content: "stay"}); err != nil {
		t.Fatal(err)
	}

	m = update(t, m, runes("i"))
	m = update(t, m, runes("/does/not/exist.json"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.statusType != "error" {
		t.Errorf("Expected error status, got %q (%s)", m.statusType, m.statusMsg)
	}
	if _, ok := m.service.Cell(2, 2); !ok {
		t.Error("Workspace should be unchanged after failed import")
	}
}

func TestImportReportsHiddenKeys(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "project.json")
	content := `{"1_1": {"content": "a"}, "notes": {"content": "b"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m = update(t, m, runes("i"))
	m = update(t, m, runes(path))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.statusType != "success" || m.statusMsg != "Imported 2 cells (1 not shown)" {
		t.Errorf("Unexpected status %q (%s)", m.statusMsg, m.statusType)
	}
}

func TestCorruptStoreShownInStatus(t *testing.T) {
	cfg := config.DefaultConfig(t.TempDir())
	cfg.GlamourStyle = "dark"
	if err := os.WriteFile(filepath.Join(cfg.DataDir, cfg.DataFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	svc, err := service.NewService(cfg)
	if err != nil {
		t.Fatal(err)
	}

	m, err := NewModel(svc)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if m.statusType != "error" || !strings.Contains(m.statusMsg, "data file could not be loaded") {
		t.Errorf("Expected load error in status, got %q (%s)", m.statusMsg, m.statusType)
	}
}

func TestViewsRender(t *testing.T) {
	m := newTestModel(t)
	if _, err := m.service.PlaceBox(0, 0, models.Box{Content: "Hello", Color: "#FFEE00"}); err != nil {
		t.Fatal(err)
	}

	if view := m.View(); !containsPlain(view, "boxgrid") || !containsPlain(view, "Hello") {
		t.Errorf("Grid view missing content:\n%s", view)
	}

	m = update(t, m, runes("x"))
	if m.viewMode != ViewExport || !containsPlain(m.View(), "Export preview") {
		t.Errorf("Expected export preview")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m = update(t, m, runes("?"))
	if !m.showHelpModal {
		t.Fatal("Expected help modal")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelpModal {
		t.Error("Expected help modal closed")
	}
}
