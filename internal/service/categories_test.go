package service

import (
	"testing"

	"github.com/dpshade/boxgrid/internal/errors"
	"github.com/dpshade/boxgrid/internal/models"
)

func TestCategoryLifecycle(t *testing.T) {
	svc, cfg := newTestService(t)

	idx, err := svc.CreateCategory()
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if idx != 0 || svc.Categories()[0].Name != "New Category" {
		t.Fatalf("Unexpected category: %d %+v", idx, svc.Categories())
	}

	// Empty names are ignored
	if err := svc.RenameCategory(0, ""); err != nil {
		t.Fatalf("RenameCategory failed: %v", err)
	}
	if svc.Categories()[0].Name != "New Category" {
		t.Error("Empty rename should be ignored")
	}
	if err := svc.RenameCategory(0, "Forms"); err != nil {
		t.Fatalf("RenameCategory failed: %v", err)
	}
	if err := svc.RenameCategory(3, "Nope"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}

	if _, err := svc.AddBox(0, "", ""); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("Expected VALIDATION_ERROR for empty content, got %v", err)
	}
	box, err := svc.AddBox(0, "Age: .i0i.", "")
	if err != nil {
		t.Fatalf("AddBox failed: %v", err)
	}
	if box.Color != models.DefaultBoxColor {
		t.Errorf("Expected default color, got %q", box.Color)
	}

	reloaded, err := NewService(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reloaded.Box(0, 0)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	if got != box || reloaded.Categories()[0].Name != "Forms" {
		t.Errorf("Reloaded state mismatch: %+v %+v", got, reloaded.Categories())
	}
}

func TestSearchBoxes(t *testing.T) {
	svc, _ := newTestService(t)
	svc.CreateCategory()
	svc.RenameCategory(0, "Forms")
	svc.AddBox(0, "Name: ..0..", "")
	svc.AddBox(0, "Age: .i0i.", "")
	svc.CreateCategory()
	svc.RenameCategory(1, "Colors")
	svc.AddBox(1, "Paint .c0c.", "#FF0000")

	if got := svc.SearchBoxes(""); len(got) != 3 {
		t.Errorf("Expected all 3 boxes for empty query, got %d", len(got))
	}

	results := svc.SearchBoxes("paint")
	if len(results) == 0 {
		t.Fatal("Expected a match for 'paint'")
	}
	if results[0].Category != 1 || results[0].Index != 0 {
		t.Errorf("Expected Colors/0 first, got %+v", results[0])
	}

	results = svc.SearchBoxes("Forms")
	if len(results) != 2 {
		t.Errorf("Expected category name to match both Forms boxes, got %d", len(results))
	}
}
