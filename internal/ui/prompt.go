package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type promptPurpose int

const (
	promptRenameCategory promptPurpose = iota
	promptBoxContent
	promptBoxColor
	promptSaveProject
	promptImportProject
	promptWriteExport
)

// inputPrompt is a one-line modal input
type inputPrompt struct {
	purpose promptPurpose
	title   string
	input   textinput.Model

	// carried from an earlier step, e.g. the content while asking for color
	pending string
}

func newInputPrompt(purpose promptPurpose, title, value, placeholder string) *inputPrompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 500
	ti.Width = 50
	ti.Focus()
	return &inputPrompt{purpose: purpose, title: title, input: ti}
}

func (p *inputPrompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *inputPrompt) Value() string {
	return p.input.Value()
}

func (p *inputPrompt) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		StyleSubtitle.Render(p.title),
		"",
		p.input.View(),
		"",
		CreateHelp("enter confirm • esc cancel"),
	)
	return StyleModal.Render(content)
}
