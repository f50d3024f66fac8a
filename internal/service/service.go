package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/dpshade/boxgrid/internal/config"
	"github.com/dpshade/boxgrid/internal/errors"
	"github.com/dpshade/boxgrid/internal/grid"
	"github.com/dpshade/boxgrid/internal/models"
	"github.com/dpshade/boxgrid/internal/renderer"
	"github.com/dpshade/boxgrid/internal/storage"
	"github.com/dpshade/boxgrid/internal/validation"
)

// Service owns the loaded document and the grid extents. Every mutation is
// flushed to the backing store as a whole-document write before returning.
type Service struct {
	cfg   *config.Config
	store *storage.Storage
	data  *models.AppData
	grid  *grid.Grid

	loadErr *errors.AppError
}

// NewService loads the backing store described by cfg. An unreadable store
// is reported on stderr as FILE_CORRUPTED and replaced by the empty state.
func NewService(cfg *config.Config) (*Service, error) {
	store, err := storage.NewStorage(cfg.DataDir, cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	svc := &Service{cfg: cfg, store: store}

	data, err := store.Load()
	if err != nil {
		svc.loadErr = errors.Wrap(err, errors.ErrCodeFileCorrupted, "data file could not be loaded").
			WithContext("path", store.DataPath())
		fmt.Fprintf(os.Stderr, "Warning: %v; starting with an empty workspace\n", err)
	}

	svc.data = data
	svc.grid = grid.Scan(data.Workspace, cfg.MinRows, cfg.MinCols)
	return svc, nil
}

// LoadError returns the FILE_CORRUPTED error recorded when the backing store
// could not be read at startup, or nil.
func (s *Service) LoadError() error {
	if s.loadErr == nil {
		return nil
	}
	return s.loadErr
}

// InitLibrary creates the data directory layout and an initial data file
func (s *Service) InitLibrary() error {
	if err := s.store.InitLibrary(); err != nil {
		return errors.StorageError("init library", err)
	}
	return s.persist()
}

// DataPath returns the backing store file
func (s *Service) DataPath() string {
	return s.store.DataPath()
}

// Config returns the active configuration
func (s *Service) Config() *config.Config {
	return s.cfg
}

func (s *Service) persist() error {
	if err := s.store.Save(s.data); err != nil {
		return errors.StorageError("save workspace", err)
	}
	return nil
}

// Size returns the visible row and column counts
func (s *Service) Size() (rows, cols int) {
	return s.grid.MaxRows, s.grid.MaxCols
}

// Workspace returns the live workspace map
func (s *Service) Workspace() models.Workspace {
	return s.data.Workspace
}

// Cell returns the cell at a position, if occupied
func (s *Service) Cell(row, col int) (*models.Cell, bool) {
	cell, ok := s.data.Workspace.Get(models.CellKey{Row: row, Col: col})
	return cell, ok && cell != nil
}

// PlaceBox drops a box onto the grid, replacing any cell there with a fresh
// one, and applies the grid expansion rules.
func (s *Service) PlaceBox(row, col int, box models.Box) (grid.Placement, error) {
	p, err := s.grid.Place(s.data.Workspace, row, col, box)
	if err != nil {
		return grid.Placement{}, errors.InvalidInputError(err.Error()).
			WithContext("row", row).
			WithContext("col", col)
	}
	return p, s.persist()
}

// Bind returns the editable form of the cell at (row, col). Accepted edits
// are written into the cell's value list and flushed immediately.
func (s *Service) Bind(row, col int) ([]renderer.Part, error) {
	cell, ok := s.Cell(row, col)
	if !ok {
		return nil, errors.NotFoundError(fmt.Sprintf("cell %d,%d", row, col))
	}

	onChange := func(index int, raw string) error {
		cell.Values.Set(index, raw)
		return s.persist()
	}
	return renderer.NewRenderer(cell).Bind(onChange), nil
}

// SetValue writes one encoded slot value, as typed on the command line.
// Values that fail the slot's validation are rejected with INVALID_INPUT.
func (s *Service) SetValue(row, col, index int, raw string) error {
	parts, err := s.Bind(row, col)
	if err != nil {
		return err
	}

	fields := renderer.Fields(parts)
	if index < 0 || index >= len(fields) {
		return errors.InvalidInputError(fmt.Sprintf("slot %d out of range: cell has %d slots", index, len(fields)))
	}

	f := fields[index]
	ok, err := f.SetRaw(raw)
	if err != nil {
		return err
	}
	if !ok {
		kind := f.Kind.String()
		if f.IsOption() {
			kind = fmt.Sprintf("option %q (%s)", f.Label, f.Inner)
		}
		return errors.InvalidInputError(fmt.Sprintf("value %q rejected by %s slot", raw, kind))
	}
	return nil
}

// ResolveCell returns the export text of a single cell
func (s *Service) ResolveCell(row, col int) (string, error) {
	cell, ok := s.Cell(row, col)
	if !ok {
		return "", errors.NotFoundError(fmt.Sprintf("cell %d,%d", row, col))
	}
	return renderer.NewRenderer(cell).RenderText(), nil
}

// ExportLines resolves the whole grid, one line per row
func (s *Service) ExportLines() []string {
	return renderer.Lines(s.data.Workspace, s.grid.MaxRows, s.grid.MaxCols)
}

// ExportText resolves the whole grid as newline-joined text
func (s *Service) ExportText() string {
	return strings.Join(s.ExportLines(), "\n")
}

// ExportJSON resolves the whole grid as a JSON array of rows
func (s *Service) ExportJSON() (string, error) {
	return renderer.RenderJSON(s.data.Workspace, s.grid.MaxRows, s.grid.MaxCols)
}

// WriteExport writes the resolved grid to path
func (s *Service) WriteExport(path string) error {
	if err := storage.WriteLines(path, s.ExportLines()); err != nil {
		return errors.StorageError("export", err).WithContext("path", path)
	}
	return nil
}

// SaveProject writes the unresolved workspace to path for later import
func (s *Service) SaveProject(path string) error {
	if err := storage.WriteWorkspace(path, s.data.Workspace); err != nil {
		return errors.StorageError("save project", err).WithContext("path", path)
	}
	return nil
}

// ImportProject reads a project file and replaces the workspace with it. On
// any failure the current workspace is left untouched.
func (s *Service) ImportProject(path string) (*validation.WorkspaceResult, error) {
	raw, err := storage.ReadProject(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFileNotFound, "could not read project file").
			WithContext("path", path)
	}
	return s.ImportData(raw)
}

// ImportData replaces the workspace with a validated mapping and recomputes
// the grid extents.
func (s *Service) ImportData(raw []byte) (*validation.WorkspaceResult, error) {
	result := validation.ParseWorkspace(raw)
	if !result.Valid {
		return result, result.ToAppError()
	}

	s.data.Workspace = result.Workspace
	s.grid = grid.Scan(s.data.Workspace, s.cfg.MinRows, s.cfg.MinCols)
	return result, s.persist()
}
