package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dpshade/boxgrid/internal/models"
)

// Error codes reported by ParseWorkspace
const (
	CodeInvalidJSON    = "INVALID_JSON"
	CodeRootNotObject  = "ROOT_NOT_OBJECT"
	CodeCellNotObject  = "CELL_NOT_OBJECT"
	CodeMissingContent = "MISSING_CONTENT"
	CodeInvalidType    = "INVALID_TYPE"
	CodeInvalidValue   = "INVALID_VALUE"
	CodeInvalidCellKey = "INVALID_CELL_KEY"
)

// WorkspaceResult is the outcome of checking an imported workspace. Workspace
// is set only when Valid is true.
type WorkspaceResult struct {
	ValidationResult
	Workspace models.Workspace `json:"-"`
}

// ParseWorkspace checks that data is a JSON object mapping cell keys to
// cells. Each cell needs a string "content"; "color" must be a string when
// present and defaults to white; "values" must be an array of strings when
// present. Keys that are not "row_col" are kept with a warning but never
// shown or exported; "row_col" keys at or beyond models.MaxCoord are errors.
func ParseWorkspace(data []byte) *WorkspaceResult {
	result := &WorkspaceResult{ValidationResult: newResult()}

	var root interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		result.addError("root", CodeInvalidJSON, fmt.Sprintf("not valid JSON: %v", err), nil)
		return result
	}

	cells, ok := root.(map[string]interface{})
	if !ok {
		result.addError("root", CodeRootNotObject,
			fmt.Sprintf("expected an object of cells, got %s", jsonType(root)), nil)
		return result
	}

	keys := make([]string, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ws := make(models.Workspace, len(cells))
	for _, key := range keys {
		if _, err := models.ParseCellKey(key); err != nil {
			if errors.Is(err, models.ErrCoordRange) {
				result.addError(key, CodeInvalidCellKey,
					fmt.Sprintf("cell position %q is beyond the %dx%d limit", key, models.MaxCoord, models.MaxCoord), key)
				continue
			}
			result.addWarning(key, "key is not row_col; kept but not shown", key)
		}
		if cell := parseCell(key, cells[key], &result.ValidationResult); cell != nil {
			ws[key] = cell
		}
	}

	if result.Valid {
		result.Workspace = ws
	}
	return result
}

func parseCell(key string, raw interface{}, result *ValidationResult) *models.Cell {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		result.addError(key, CodeCellNotObject, fmt.Sprintf("cell must be an object, got %s", jsonType(raw)), nil)
		return nil
	}

	cell := &models.Cell{Color: models.DefaultBoxColor, Values: models.ValueList{}}
	valid := true

	switch content := obj["content"].(type) {
	case string:
		cell.Content = content
	case nil:
		result.addError(key+".content", CodeMissingContent, "cell has no content", nil)
		valid = false
	default:
		result.addError(key+".content", CodeInvalidType, fmt.Sprintf("content must be a string, got %s", jsonType(content)), content)
		valid = false
	}

	if raw, exists := obj["color"]; exists {
		color, ok := raw.(string)
		if !ok {
			result.addError(key+".color", CodeInvalidType, fmt.Sprintf("color must be a string, got %s", jsonType(raw)), raw)
			valid = false
		}
		cell.Color = color
	}

	if raw, exists := obj["values"]; exists && raw != nil {
		items, ok := raw.([]interface{})
		if !ok {
			result.addError(key+".values", CodeInvalidType, fmt.Sprintf("values must be an array, got %s", jsonType(raw)), nil)
			return nil
		}
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				result.addError(fmt.Sprintf("%s.values[%d]", key, i), CodeInvalidValue,
					fmt.Sprintf("value must be a string, got %s", jsonType(item)), item)
				valid = false
				continue
			}
			cell.Values = append(cell.Values, s)
		}
	}

	if !valid {
		return nil
	}
	return cell
}

func jsonType(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
