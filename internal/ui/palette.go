package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/boxgrid/internal/models"
	"github.com/dpshade/boxgrid/internal/service"
)

// boxItem adapts a box definition to the list.Item interface
type boxItem struct {
	ref service.BoxRef
}

func (i boxItem) FilterValue() string {
	return i.ref.Box.FilterValue()
}

func (i boxItem) Title() string {
	return i.ref.Box.Title()
}

func (i boxItem) Description() string {
	return fmt.Sprintf("%s  %s", Swatch(i.ref.Box.Color), i.ref.Box.Color)
}

// Palette lists the boxes of one category at a time
type Palette struct {
	list     list.Model
	category int
	names    []string
}

// NewPalette creates an empty palette
func NewPalette(width, height int) *Palette {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	keyMap := list.DefaultKeyMap()
	keyMap.Filter = key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	)
	keyMap.Quit = key.NewBinding(key.WithDisabled())
	l.KeyMap = keyMap

	return &Palette{list: l}
}

// Load refreshes the palette from the category list, keeping the current
// category when it still exists.
func (p *Palette) Load(categories []models.Category) {
	p.names = p.names[:0]
	for _, c := range categories {
		p.names = append(p.names, c.Name)
	}
	if p.category >= len(categories) {
		p.category = len(categories) - 1
	}
	if p.category < 0 {
		p.category = 0
	}

	var items []list.Item
	if p.category < len(categories) {
		for i, b := range categories[p.category].Boxes {
			items = append(items, boxItem{ref: service.BoxRef{
				Category:     p.category,
				CategoryName: categories[p.category].Name,
				Index:        i,
				Box:          b,
			}})
		}
	}
	p.list.ResetFilter()
	p.list.SetItems(items)
}

// Category returns the index of the shown category, or -1 when there are none
func (p *Palette) Category() int {
	if len(p.names) == 0 {
		return -1
	}
	return p.category
}

// Cycle switches to the next or previous category
func (p *Palette) Cycle(delta int, categories []models.Category) {
	if len(categories) == 0 {
		return
	}
	p.category = (p.category + delta + len(categories)) % len(categories)
	p.Load(categories)
}

// Select shows category i
func (p *Palette) Select(i int, categories []models.Category) {
	p.category = i
	p.Load(categories)
}

// Selected returns the highlighted box
func (p *Palette) Selected() (service.BoxRef, bool) {
	item, ok := p.list.SelectedItem().(boxItem)
	if !ok {
		return service.BoxRef{}, false
	}
	return item.ref, true
}

// Filtering reports whether the filter input has focus
func (p *Palette) Filtering() bool {
	return p.list.FilterState() == list.Filtering
}

// SetSize resizes the list
func (p *Palette) SetSize(width, height int) {
	p.list.SetSize(width, height)
}

// View renders the category tabs above the box list
func (p *Palette) View() string {
	if len(p.names) == 0 {
		return StyleTextMuted.Render("No categories yet. Press n to create one.")
	}

	tabs := make([]string, len(p.names))
	for i, name := range p.names {
		if i == p.category {
			tabs[i] = StyleActiveTab.Render(name)
		} else {
			tabs[i] = StyleTab.Render(name)
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	body := p.list.View()
	if len(p.list.Items()) == 0 {
		body = StyleTextMuted.Render(strings.Join([]string{
			"This category has no boxes.",
			"Press a to add one.",
		}, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}
