package models

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MaxCoord bounds row and column indexes: both must be below it
const MaxCoord = 100000

// ErrCoordRange is returned for a well-formed coordinate at or above MaxCoord
var ErrCoordRange = errors.New("coordinate out of range")

// CellKey identifies a grid position
type CellKey struct {
	Row int
	Col int
}

// String renders the key in its stored "row_col" form
func (k CellKey) String() string {
	return fmt.Sprintf("%d_%d", k.Row, k.Col)
}

// ParseCellKey parses a "row_col" key. Both parts must be non-negative
// decimal integers below MaxCoord separated by a single underscore. Digit
// strings that are too large wrap ErrCoordRange.
func ParseCellKey(s string) (CellKey, error) {
	rowStr, colStr, ok := strings.Cut(s, "_")
	if !ok {
		return CellKey{}, fmt.Errorf("cell key %q: missing separator", s)
	}
	row, err := parseCoord(rowStr)
	if err != nil {
		return CellKey{}, fmt.Errorf("cell key %q: row: %w", s, err)
	}
	col, err := parseCoord(colStr)
	if err != nil {
		return CellKey{}, fmt.Errorf("cell key %q: column: %w", s, err)
	}
	return CellKey{Row: row, Col: col}, nil
}

func parseCoord(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty coordinate")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid coordinate %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n >= MaxCoord {
		return 0, fmt.Errorf("%w: %s", ErrCoordRange, s)
	}
	return n, nil
}

// ValueList holds the raw encoded slot values of a cell, index-aligned with
// the template's slot sequence. It may be shorter than the slot count.
type ValueList []string

// Get returns the value at index i and whether it was present
func (v ValueList) Get(i int) (string, bool) {
	if i < 0 || i >= len(v) {
		return "", false
	}
	return v[i], true
}

// GetOr returns the value at index i, or def when the list is too short
func (v ValueList) GetOr(i int, def string) string {
	if s, ok := v.Get(i); ok {
		return s
	}
	return def
}

// Set writes value at index i, padding with empty strings as needed
func (v *ValueList) Set(i int, value string) {
	if i < 0 {
		return
	}
	for len(*v) <= i {
		*v = append(*v, "")
	}
	(*v)[i] = value
}

// Cell is a placed box instance
type Cell struct {
	Content string    `json:"content"`
	Color   string    `json:"color"`
	Values  ValueList `json:"values"`
}

// NewCell creates a cell from a box definition with an empty value list
func NewCell(box Box) *Cell {
	return &Cell{
		Content: box.Content,
		Color:   box.Color,
		Values:  ValueList{},
	}
}

// Workspace maps stored cell keys to placed cells. Keys that do not parse
// are kept but never rendered.
type Workspace map[string]*Cell

// Get returns the cell at key, if any
func (w Workspace) Get(key CellKey) (*Cell, bool) {
	c, ok := w[key.String()]
	return c, ok
}

// Keys returns every well-formed key in row-major order
func (w Workspace) Keys() []CellKey {
	keys := make([]CellKey, 0, len(w))
	for raw := range w {
		k, err := ParseCellKey(raw)
		if err != nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Row != keys[j].Row {
			return keys[i].Row < keys[j].Row
		}
		return keys[i].Col < keys[j].Col
	})
	return keys
}

// RowUsed reports whether any well-formed key sits on row
func (w Workspace) RowUsed(row int) bool {
	for raw := range w {
		if k, err := ParseCellKey(raw); err == nil && k.Row == row {
			return true
		}
	}
	return false
}

// AppData is the whole document held by the backing store
type AppData struct {
	Categories []Category `json:"categories"`
	Workspace  Workspace  `json:"workspace"`
}

// NewAppData returns the empty initial state
func NewAppData() *AppData {
	return &AppData{
		Categories: []Category{},
		Workspace:  Workspace{},
	}
}
