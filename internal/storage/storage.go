package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dpshade/boxgrid/internal/models"
)

// DefaultDataFile is the backing store file name inside the root directory
const DefaultDataFile = "app_data.json"

// Storage is the backing store for categories and the workspace. Every save
// rewrites the whole document.
type Storage struct {
	rootPath string
	dataFile string
}

// NewStorage creates a new storage instance. An empty rootPath means
// ~/.boxgrid and an empty dataFile means app_data.json.
func NewStorage(rootPath, dataFile string) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".boxgrid")
	}
	if dataFile == "" {
		dataFile = DefaultDataFile
	}

	return &Storage{
		rootPath: rootPath,
		dataFile: dataFile,
	}, nil
}

// InitLibrary creates the directory structure
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "exports"),
		filepath.Join(s.rootPath, "logs"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// DataPath returns the full path of the backing store file
func (s *Storage) DataPath() string {
	if filepath.IsAbs(s.dataFile) {
		return s.dataFile
	}
	return filepath.Join(s.rootPath, s.dataFile)
}

// Load reads the backing store. A missing file yields the empty state. An
// unreadable or corrupt file also yields the empty state, together with the
// error so the caller can warn about it.
func (s *Storage) Load() (*models.AppData, error) {
	raw, err := os.ReadFile(s.DataPath())
	if os.IsNotExist(err) {
		return models.NewAppData(), nil
	}
	if err != nil {
		return models.NewAppData(), fmt.Errorf("failed to read data file: %w", err)
	}

	var data models.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.NewAppData(), fmt.Errorf("failed to parse data file: %w", err)
	}

	normalize(&data)
	return &data, nil
}

// Save writes the whole document, replacing the previous file atomically
func (s *Storage) Save(data *models.AppData) error {
	jsonData, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := writeFileAtomic(s.DataPath(), jsonData); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	return nil
}

// normalize fills nil collections so the document always marshals with
// empty arrays and objects, and drops null cells.
func normalize(data *models.AppData) {
	if data.Categories == nil {
		data.Categories = []models.Category{}
	}
	for i := range data.Categories {
		if data.Categories[i].Boxes == nil {
			data.Categories[i].Boxes = []models.Box{}
		}
	}
	if data.Workspace == nil {
		data.Workspace = models.Workspace{}
	}
	for key, cell := range data.Workspace {
		if cell == nil {
			delete(data.Workspace, key)
			continue
		}
		if cell.Values == nil {
			cell.Values = models.ValueList{}
		}
	}
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it over the destination.
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
