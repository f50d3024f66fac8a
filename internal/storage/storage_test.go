package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dpshade/boxgrid/internal/models"
	"github.com/google/go-cmp/cmp"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	return s
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStorage(t)

	data, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(models.NewAppData(), data); diff != "" {
		t.Errorf("expected empty state (-want +got):\n%s", diff)
	}
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	s := newTestStorage(t)
	if err := os.WriteFile(s.DataPath(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := s.Load()
	if err == nil {
		t.Error("expected an error describing the corrupt file")
	}
	if data == nil || len(data.Categories) != 0 || len(data.Workspace) != 0 {
		t.Errorf("expected empty fallback state, got %+v", data)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	want := &models.AppData{
		Categories: []models.Category{{Name: "Moves", Boxes: []models.Box{{Content: "go ..0..", Color: "#00ff00"}}}},
		Workspace: models.Workspace{
			"0_0": {Content: "go ..0..", Color: "#00ff00", Values: models.ValueList{"north"}},
		},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	entries, _ := os.ReadDir(filepath.Dir(s.DataPath()))
	if len(entries) != 1 {
		t.Errorf("expected only the data file, found %d entries", len(entries))
	}
}

func TestLoadNormalizes(t *testing.T) {
	s := newTestStorage(t)
	raw := `{"categories": [{"name": "x"}], "workspace": {"0_0": null, "0_1": {"content": "a", "color": "#fff"}}}`
	if err := os.WriteFile(s.DataPath(), []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if data.Categories[0].Boxes == nil {
		t.Error("nil boxes should become empty")
	}
	if _, ok := data.Workspace["0_0"]; ok {
		t.Error("null cell should be dropped")
	}
	if data.Workspace["0_1"].Values == nil {
		t.Error("nil values should become empty")
	}
}

func TestProjectFiles(t *testing.T) {
	dir := t.TempDir()

	exportPath := filepath.Join(dir, "out.txt")
	if err := WriteLines(exportPath, []string{"", "b", ""}); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(exportPath)
	if string(got) != "\nb\n" {
		t.Errorf("export content = %q", got)
	}

	projectPath := filepath.Join(dir, "project.json")
	ws := models.Workspace{"1_2": {Content: "c", Color: "#000", Values: models.ValueList{"1|x"}}}
	if err := WriteWorkspace(projectPath, ws); err != nil {
		t.Fatal(err)
	}
	raw, err := ReadProject(projectPath)
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(string(raw), "{\n  \"1_2\": {\n    \"content\": \"c\",\n    \"color\": \"#000\",\n    \"values\": [\n      \"1|x\"\n    ]\n  }\n}") {
		t.Errorf("unexpected project file:\n%s", raw)
	}

	if _, err := ReadProject(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing project file")
	}
}
