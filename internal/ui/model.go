package ui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/boxgrid/internal/clipboard"
	"github.com/dpshade/boxgrid/internal/errors"
	"github.com/dpshade/boxgrid/internal/models"
	"github.com/dpshade/boxgrid/internal/service"
)

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewPalette
	ViewEditor
	ViewExport
)

const (
	cellWidth      = 14
	rowHeaderWidth = 4

	// title, column header, detail line, status, help and margins
	gridReservedHeight = 7
)

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	viewMode ViewMode

	// UI components
	palette      *Palette
	editor       *CellEditor
	prompt       *inputPrompt
	viewport     viewport.Model
	helpViewport viewport.Model
	help         help.Model
	keys         KeyMap

	glamourRenderer *glamour.TermRenderer
	glamourStyle    string
	clip            *clipboard.Clipboard
	errHandler      *errors.TUIErrorHandler

	// Grid cursor and scroll position
	cursorRow int
	cursorCol int
	rowOffset int
	colOffset int

	// Window dimensions
	width  int
	height int

	showHelpModal bool

	// Status messages
	statusMsg     string
	statusType    string
	statusTimeout int
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service) (*Model, error) {
	cfg := svc.Config()
	initializeColors(cfg.GlamourStyle)

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	helpVp := viewport.New(70, 23)
	helpVp.Style = lipgloss.NewStyle()

	renderer, err := createGlamourRenderer(cfg.GlamourStyle, 66)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	m := &Model{
		service:         svc,
		viewMode:        ViewGrid,
		palette:         NewPalette(80, 20),
		viewport:        vp,
		helpViewport:    helpVp,
		help:            help.New(),
		keys:            keys,
		glamourRenderer: renderer,
		glamourStyle:    cfg.GlamourStyle,
		clip:            clipboard.New(),
		errHandler:      errors.NewTUIErrorHandler(cfg.LogDir(), cfg.Verbose),
		width:           80,
		height:          24,
	}
	m.palette.Load(svc.Categories())
	if err := svc.LoadError(); err != nil {
		m.statusMsg = m.errHandler.FormatError(err)
		m.statusType = "error"
	}
	return m, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

// clearStatusCmd returns a command that clears the status message after a delay
func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) setStatus(text, statusType string) tea.Cmd {
	m.statusMsg = text
	m.statusType = statusType
	m.statusTimeout = 3
	return clearStatusCmd()
}

// reportError logs err and shows it in the status bar
func (m *Model) reportError(err error) tea.Cmd {
	handled := m.errHandler.HandleError(err)
	icon, _ := m.errHandler.GetErrorStyle(handled)
	return m.setStatus(icon+" "+m.errHandler.FormatError(handled), "error")
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.prompt != nil {
			return m.updatePrompt(msg)
		}
		if m.showHelpModal {
			return m.updateHelp(msg)
		}

		switch m.viewMode {
		case ViewPalette:
			return m.updatePalette(msg)
		case ViewEditor:
			return m.updateEditor(msg)
		case ViewExport:
			return m.updateExport(msg)
		default:
			return m.updateGrid(msg)
		}
	}

	// Filter results arrive asynchronously
	if m.viewMode == ViewPalette {
		var cmd tea.Cmd
		m.palette.list, cmd = m.palette.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	available := height - 8
	if available < 5 {
		available = 5
	}

	m.palette.SetSize(width-4, available)

	viewportWidth := width - 8
	if viewportWidth < 20 {
		viewportWidth = 20
	}
	m.viewport.Width = viewportWidth
	m.viewport.Height = available

	helpWidth := min(76, width-4)
	helpHeight := min(30, height-4)
	m.helpViewport.Width = helpWidth - 6
	m.helpViewport.Height = helpHeight - 4
	if renderer, err := createGlamourRenderer(m.glamourStyle, m.helpViewport.Width); err == nil {
		m.glamourRenderer = renderer
	}
	if m.showHelpModal {
		m.helpViewport.SetContent(renderHelp(m.glamourRenderer))
	}

	m.ensureVisible()
}

// gridViewport returns how many rows and columns of cells fit on screen
func (m *Model) gridViewport() (rows, cols int) {
	rows = m.height - gridReservedHeight
	if rows < 1 {
		rows = 1
	}
	cols = (m.width - 2 - rowHeaderWidth) / (cellWidth + 1)
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

// ensureVisible clamps the cursor to the grid and scrolls it into view
func (m *Model) ensureVisible() {
	maxRows, maxCols := m.service.Size()
	m.cursorRow = clamp(m.cursorRow, 0, maxRows-1)
	m.cursorCol = clamp(m.cursorCol, 0, maxCols-1)

	visibleRows, visibleCols := m.gridViewport()
	if m.cursorRow < m.rowOffset {
		m.rowOffset = m.cursorRow
	} else if m.cursorRow >= m.rowOffset+visibleRows {
		m.rowOffset = m.cursorRow - visibleRows + 1
	}
	if m.cursorCol < m.colOffset {
		m.colOffset = m.cursorCol
	} else if m.cursorCol >= m.colOffset+visibleCols {
		m.colOffset = m.cursorCol - visibleCols + 1
	}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursorRow--
	case key.Matches(msg, m.keys.Down):
		m.cursorRow++
	case key.Matches(msg, m.keys.Left):
		m.cursorCol--
	case key.Matches(msg, m.keys.Right):
		m.cursorCol++
	case key.Matches(msg, m.keys.Enter):
		if _, ok := m.service.Cell(m.cursorRow, m.cursorCol); ok {
			cmd := m.openEditor()
			return m, cmd
		}
		m.openPalette()
	case key.Matches(msg, m.keys.Palette):
		m.openPalette()
	case key.Matches(msg, m.keys.Export):
		m.viewport.SetContent(m.service.ExportText())
		m.viewport.GotoTop()
		m.viewMode = ViewExport
	case key.Matches(msg, m.keys.Copy):
		cmd := m.copyExport()
		return m, cmd
	case key.Matches(msg, m.keys.Save):
		m.prompt = newInputPrompt(promptSaveProject, "Save project to",
			m.defaultPath("project.json"), "path/to/project.json")
	case key.Matches(msg, m.keys.Import):
		m.prompt = newInputPrompt(promptImportProject, "Import project from", "", "path/to/project.json")
	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = true
		m.helpViewport.SetContent(renderHelp(m.glamourRenderer))
		m.helpViewport.GotoTop()
	}

	m.ensureVisible()
	return m, nil
}

func (m *Model) defaultPath(name string) string {
	return filepath.Join(m.service.Config().DataDir, "exports", name)
}

func (m *Model) openEditor() tea.Cmd {
	parts, err := m.service.Bind(m.cursorRow, m.cursorCol)
	if err != nil {
		return m.reportError(err)
	}
	m.editor = NewCellEditor(m.cursorRow, m.cursorCol, parts)
	m.viewMode = ViewEditor
	if m.editor.SlotCount() == 0 {
		return m.setStatus("This cell has no slots", "info")
	}
	return nil
}

func (m *Model) openPalette() {
	m.palette.Load(m.service.Categories())
	m.viewMode = ViewPalette
}

func (m *Model) copyExport() tea.Cmd {
	statusMsg, err := m.clip.CopyWithFallback(m.service.ExportText())
	if err != nil {
		return m.setStatus(fmt.Sprintf("Warning: %v", err), "warning")
	}
	return m.setStatus(statusMsg, "success")
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.editor = nil
		m.viewMode = ViewGrid
		return m, nil
	}

	cmd := m.editor.Update(msg)
	if err := m.editor.Err(); err != nil {
		cmd = tea.Batch(cmd, m.reportError(err))
	}
	return m, cmd
}

func (m Model) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.palette.Filtering() {
		var cmd tea.Cmd
		m.palette.list, cmd = m.palette.list.Update(msg)
		return m, cmd
	}

	categories := m.service.Categories()
	category := m.palette.Category()

	switch msg.String() {
	case "esc":
		if m.palette.list.FilterState() == list.FilterApplied {
			m.palette.list.ResetFilter()
			return m, nil
		}
		m.viewMode = ViewGrid
		return m, nil
	case "enter":
		cmd := m.placeSelected()
		return m, cmd
	case "tab":
		m.palette.Cycle(1, categories)
		return m, nil
	case "shift+tab":
		m.palette.Cycle(-1, categories)
		return m, nil
	case "n":
		idx, err := m.service.CreateCategory()
		if err != nil {
			cmd := m.reportError(err)
			return m, cmd
		}
		m.palette.Select(idx, m.service.Categories())
		m.prompt = newInputPrompt(promptRenameCategory, "Name the new category",
			m.service.Categories()[idx].Name, "")
		return m, nil
	case "r":
		if category < 0 {
			return m, nil
		}
		m.prompt = newInputPrompt(promptRenameCategory, "Rename category",
			categories[category].Name, "")
		return m, nil
	case "a":
		if category < 0 {
			cmd := m.setStatus("Create a category first (n)", "info")
			return m, cmd
		}
		m.prompt = newInputPrompt(promptBoxContent, "Box template", "", "Score: .i0i. pts")
		return m, nil
	}

	var cmd tea.Cmd
	m.palette.list, cmd = m.palette.list.Update(msg)
	return m, cmd
}

// placeSelected drops the highlighted palette box at the cursor
func (m *Model) placeSelected() tea.Cmd {
	ref, ok := m.palette.Selected()
	if !ok {
		return nil
	}

	p, err := m.service.PlaceBox(m.cursorRow, m.cursorCol, ref.Box)
	if err != nil {
		return m.reportError(err)
	}
	m.viewMode = ViewGrid
	m.ensureVisible()

	text := fmt.Sprintf("Placed box at %s", p.Key)
	if p.Rebuild() {
		rows, cols := m.service.Size()
		text += fmt.Sprintf(" • grid now %d×%d", rows, cols)
	}
	return m.setStatus(text, "success")
}

func (m Model) updateExport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.viewMode = ViewGrid
		return m, nil
	case "c":
		cmd := m.copyExport()
		return m, cmd
	case "w":
		m.prompt = newInputPrompt(promptWriteExport, "Write export to",
			m.defaultPath("export.txt"), "path/to/export.txt")
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q":
		m.showHelpModal = false
		return m, nil
	}
	var cmd tea.Cmd
	m.helpViewport, cmd = m.helpViewport.Update(msg)
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = nil
		return m, nil
	case "enter":
		p := m.prompt
		m.prompt = nil
		cmd := m.submitPrompt(p)
		return m, cmd
	}
	return m, m.prompt.Update(msg)
}

func (m *Model) submitPrompt(p *inputPrompt) tea.Cmd {
	value := strings.TrimSpace(p.Value())
	category := m.palette.Category()

	switch p.purpose {
	case promptRenameCategory:
		if err := m.service.RenameCategory(category, value); err != nil {
			return m.reportError(err)
		}
		m.palette.Load(m.service.Categories())
		return nil

	case promptBoxContent:
		if p.Value() == "" {
			return m.setStatus("Box content is required", "warning")
		}
		next := newInputPrompt(promptBoxColor, "Box color", models.DefaultBoxColor, models.DefaultBoxColor)
		next.pending = p.Value()
		m.prompt = next
		return nil

	case promptBoxColor:
		if _, err := m.service.AddBox(category, p.pending, value); err != nil {
			return m.reportError(err)
		}
		m.palette.Load(m.service.Categories())
		return m.setStatus("Box added", "success")

	case promptSaveProject:
		if value == "" {
			return nil
		}
		if err := m.service.SaveProject(value); err != nil {
			return m.reportError(err)
		}
		return m.setStatus("Saved project to "+value, "success")

	case promptImportProject:
		if value == "" {
			return nil
		}
		result, err := m.service.ImportProject(value)
		if err != nil {
			return m.reportError(err)
		}
		m.ensureVisible()
		text := fmt.Sprintf("Imported %d cells", len(m.service.Workspace()))
		if n := len(result.Warnings); n > 0 {
			text += fmt.Sprintf(" (%d not shown)", n)
		}
		return m.setStatus(text, "success")

	case promptWriteExport:
		if value == "" {
			return nil
		}
		if err := m.service.WriteExport(value); err != nil {
			return m.reportError(err)
		}
		return m.setStatus("Exported to "+value, "success")
	}
	return nil
}

// View renders the current view
func (m Model) View() string {
	if m.showHelpModal {
		return CenterModal(StyleModal.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.helpViewport.View(),
			CreateHelp("↑/↓ scroll • esc or ? close"),
		)), m.width, m.height)
	}
	if m.prompt != nil {
		return CenterModal(m.prompt.View(), m.width, m.height)
	}

	var mainView string
	switch m.viewMode {
	case ViewPalette:
		mainView = m.renderPaletteView()
	case ViewEditor:
		mainView = m.renderEditorView()
	case ViewExport:
		mainView = m.renderExportView()
	default:
		mainView = m.renderGridView()
	}

	if m.statusMsg != "" {
		return AddMainPadding(lipgloss.JoinVertical(lipgloss.Left, mainView, CreateStatus(m.statusMsg, m.statusType)))
	}
	return AddMainPadding(mainView)
}

func (m Model) renderGridView() string {
	maxRows, maxCols := m.service.Size()
	visibleRows, visibleCols := m.gridViewport()
	ws := m.service.Workspace()

	title := CreateMainHeader("boxgrid") + StyleTextMuted.Render(
		fmt.Sprintf("%d×%d • %d cells • cursor %d,%d", maxRows, maxCols, len(ws), m.cursorRow, m.cursorCol))

	lastCol := min(m.colOffset+visibleCols, maxCols)
	lastRow := min(m.rowOffset+visibleRows, maxRows)

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", rowHeaderWidth))
	for c := m.colOffset; c < lastCol; c++ {
		label := strconv.Itoa(c)
		if c == m.cursorCol {
			label = StyleCursorMark.Render(label)
		}
		header.WriteString(StyleHeader.Width(cellWidth).Render(label) + " ")
	}

	lines := []string{title, header.String()}
	for r := m.rowOffset; r < lastRow; r++ {
		var line strings.Builder
		rowLabel := strconv.Itoa(r)
		if r == m.cursorRow {
			rowLabel = StyleCursorMark.Render(rowLabel)
		}
		line.WriteString(StyleHeader.Width(rowHeaderWidth).Render(rowLabel))
		for c := m.colOffset; c < lastCol; c++ {
			line.WriteString(m.renderCell(ws, r, c) + " ")
		}
		lines = append(lines, line.String())
	}

	lines = append(lines, m.renderCellDetail(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderCell(ws models.Workspace, row, col int) string {
	focused := row == m.cursorRow && col == m.cursorCol
	cell, ok := ws.Get(models.CellKey{Row: row, Col: col})
	if !ok || cell == nil {
		return EmptyCellStyle(cellWidth, focused).Render(Fit("·", cellWidth))
	}

	text, _ := m.service.ResolveCell(row, col)
	if strings.TrimSpace(text) == "" {
		text = cell.Content
	}
	return CellStyle(cell.Color, cellWidth, focused).Render(Fit(text, cellWidth))
}

func (m Model) renderCellDetail() string {
	cell, ok := m.service.Cell(m.cursorRow, m.cursorCol)
	if !ok {
		return StyleTextDim.Render("empty • enter or p to place a box")
	}
	resolved, _ := m.service.ResolveCell(m.cursorRow, m.cursorCol)
	return StyleTextMuted.Render(Fit(fmt.Sprintf("%s → %s", cell.Content, resolved), max(20, m.width-6)))
}

func (m Model) renderPaletteView() string {
	title := CreateMainHeader("Box palette") + StyleTextMuted.Render(
		fmt.Sprintf("placing at %d,%d", m.cursorRow, m.cursorCol))
	help := CreateGuaranteedHelp("enter place • tab category • / filter • n new category • r rename • a add box • esc back", m.width)
	return lipgloss.JoinVertical(lipgloss.Left, title, m.palette.View(), help)
}

func (m Model) renderEditorView() string {
	title := CreateMainHeader(fmt.Sprintf("Edit cell %d,%d", m.editor.row, m.editor.col))
	resolved, _ := m.service.ResolveCell(m.editor.row, m.editor.col)
	help := CreateGuaranteedHelp("tab/↓ next • shift+tab/↑ previous • space toggle option • esc done", m.width)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		StyleContentContainer.Render(m.editor.View()),
		StyleFormLabel.Render("Export:"),
		StyleTextMuted.Render(resolved),
		"",
		help,
	)
}

func (m Model) renderExportView() string {
	title := CreateMainHeader("Export preview")
	help := CreateGuaranteedHelp("c copy • w write to file • ↑/↓ scroll • esc back", m.width)
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		StyleContentContainer.Render(m.viewport.View()),
		help,
	)
}
