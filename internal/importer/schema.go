package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a timesheet import file. Hours
// are given in hours, not decihours.
type ImportSchema struct {
	Employee int          `json:"employee" yaml:"employee"`
	Weeks    []WeekImport `json:"weeks" yaml:"weeks"`
}

// WeekImport is one timesheet. WeekEnding may be any day of the week; it
// is moved to the Friday that ends it.
type WeekImport struct {
	WeekEnding string      `json:"weekEnding" yaml:"weekEnding"`
	Overtime   *float64    `json:"overtime,omitempty" yaml:"overtime,omitempty"`
	Flextime   *float64    `json:"flextime,omitempty" yaml:"flextime,omitempty"`
	Rows       []RowImport `json:"rows" yaml:"rows"`
}

// RowImport charges one project and work package, Saturday first.
type RowImport struct {
	ProjectID     int       `json:"projectId" yaml:"projectId"`
	WorkPackageID string    `json:"workPackageId" yaml:"workPackageId"`
	Hours         []float64 `json:"hours" yaml:"hours"`
	Notes         string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// LoadImportSchema reads an import file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

func ParseJSON(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

func ParseYAML(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
