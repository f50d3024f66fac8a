package models

import "strings"

// DefaultBoxColor is the background used when a box is created without a color
const DefaultBoxColor = "#FFFFFF"

// Box is a reusable template definition offered in the palette
type Box struct {
	Content string `json:"content" yaml:"content"`
	Color   string `json:"color" yaml:"color"`
}

// FilterValue returns the value used for filtering in lists
func (b Box) FilterValue() string {
	return b.Content
}

// Title is the single-line label shown for a box
func (b Box) Title() string {
	return strings.Join(strings.Fields(b.Content), " ")
}

// Category groups boxes under a user-chosen name
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Boxes []Box  `json:"boxes" yaml:"boxes"`
}

// NewCategory creates an empty category with the default name
func NewCategory() Category {
	return Category{
		Name:  "New Category",
		Boxes: []Box{},
	}
}
