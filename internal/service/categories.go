package service

import (
	"fmt"
	"strings"

	"github.com/dpshade/boxgrid/internal/errors"
	"github.com/dpshade/boxgrid/internal/models"
	"github.com/sahilm/fuzzy"
)

// BoxRef locates a box definition inside its category
type BoxRef struct {
	Category     int
	CategoryName string
	Index        int
	Box          models.Box
}

// Categories returns the category list
func (s *Service) Categories() []models.Category {
	return s.data.Categories
}

// CreateCategory appends an empty category and returns its index
func (s *Service) CreateCategory() (int, error) {
	s.data.Categories = append(s.data.Categories, models.NewCategory())
	return len(s.data.Categories) - 1, s.persist()
}

// RenameCategory renames a category. An empty name is ignored.
func (s *Service) RenameCategory(index int, name string) error {
	if err := s.checkCategory(index); err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	s.data.Categories[index].Name = name
	return s.persist()
}

// AddBox adds a box definition to a category. Content is required and the
// color defaults to white.
func (s *Service) AddBox(category int, content, color string) (models.Box, error) {
	if err := s.checkCategory(category); err != nil {
		return models.Box{}, err
	}
	if content == "" {
		return models.Box{}, errors.ValidationError("box content is required")
	}
	if color == "" {
		color = models.DefaultBoxColor
	}

	box := models.Box{Content: content, Color: color}
	s.data.Categories[category].Boxes = append(s.data.Categories[category].Boxes, box)
	return box, s.persist()
}

// Boxes returns the boxes of one category
func (s *Service) Boxes(category int) ([]models.Box, error) {
	if err := s.checkCategory(category); err != nil {
		return nil, err
	}
	return s.data.Categories[category].Boxes, nil
}

// Box returns one box definition
func (s *Service) Box(category, index int) (models.Box, error) {
	boxes, err := s.Boxes(category)
	if err != nil {
		return models.Box{}, err
	}
	if index < 0 || index >= len(boxes) {
		return models.Box{}, errors.NotFoundError(fmt.Sprintf("box %d in category %d", index, category))
	}
	return boxes[index], nil
}

// AllBoxes returns every box across categories, in category order
func (s *Service) AllBoxes() []BoxRef {
	var refs []BoxRef
	for ci, c := range s.data.Categories {
		for bi, b := range c.Boxes {
			refs = append(refs, BoxRef{Category: ci, CategoryName: c.Name, Index: bi, Box: b})
		}
	}
	return refs
}

// SearchBoxes fuzzy-matches boxes by content and category name. An empty
// query returns every box.
func (s *Service) SearchBoxes(query string) []BoxRef {
	refs := s.AllBoxes()
	if strings.TrimSpace(query) == "" {
		return refs
	}

	searchStrings := make([]string, len(refs))
	for i, r := range refs {
		searchStrings[i] = fmt.Sprintf("%s %s", r.Box.Content, r.CategoryName)
	}

	matches := fuzzy.Find(query, searchStrings)
	results := make([]BoxRef, 0, len(matches))
	for _, match := range matches {
		results = append(results, refs[match.Index])
	}
	return results
}

func (s *Service) checkCategory(index int) error {
	if index < 0 || index >= len(s.data.Categories) {
		return errors.NotFoundError(fmt.Sprintf("category %d", index))
	}
	return nil
}
