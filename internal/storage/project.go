package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dpshade/boxgrid/internal/models"
)

// WriteLines writes exported lines joined by newlines, as UTF-8
func WriteLines(path string, lines []string) error {
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// WriteWorkspace writes the unresolved workspace mapping as JSON
func WriteWorkspace(path string, ws models.Workspace) error {
	jsonData, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workspace: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// ReadProject reads a project file for import
func ReadProject(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return data, nil
}
