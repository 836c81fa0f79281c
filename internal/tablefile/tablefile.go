// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tablefile reads and writes tables as files. The format is chosen by
// extension: .xlsx spreadsheet, .arrow Arrow IPC file, .db SQLite database,
// .csv comma-separated text. Column names and order are preserved in every
// format; typed formats (arrow, db) also keep column kinds.
package tablefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/corpus-builder/pkg/types"
)

// tableName is the SQL table holding a table written to a database file.
const tableName = "data"

// FormatFor returns the format implied by the extension of path.
func FormatFor(path string) (types.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return types.FormatXLSX, nil
	case ".arrow", ".feather", ".ipc":
		return types.FormatArrow, nil
	case ".db", ".sqlite", ".sqlite3":
		return types.FormatSQLite, nil
	case ".csv":
		return types.FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported table file %s: use .xlsx, .arrow, .db or .csv", path)
	}
}

// Read loads the table stored at path.
func Read(path string) (types.Frame, error) {
	format, err := FormatFor(path)
	if err != nil {
		return types.Frame{}, err
	}
	var f types.Frame
	switch format {
	case types.FormatXLSX:
		f, err = readXLSX(path)
	case types.FormatArrow:
		f, err = readArrow(path)
	case types.FormatSQLite:
		f, err = readSQLite(path)
	case types.FormatCSV:
		f, err = readCSV(path)
	}
	if err != nil {
		return types.Frame{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return f, nil
}

// Write stores f at path, replacing any existing file. Parent directories are
// created as needed.
func Write(path string, f types.Frame) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	switch format {
	case types.FormatXLSX:
		err = writeXLSX(path, f)
	case types.FormatArrow:
		err = writeArrow(path, f)
	case types.FormatSQLite:
		err = writeSQLite(path, f)
	case types.FormatCSV:
		err = writeCSV(path, f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteAll writes f once per format to base plus the format extension and
// returns the written paths in format order.
func WriteAll(base string, formats []types.Format, f types.Frame) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + string(format)
		if err := Write(path, f); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Summary is the manifest written next to a stage's output tables.
type Summary struct {
	Stage     string         `yaml:"stage"`
	Inputs    []string       `yaml:"inputs"`
	Config    map[string]any `yaml:"config,omitempty"`
	Counts    map[string]int `yaml:"counts"`
	Columns   []string       `yaml:"columns"`
	Outputs   []string       `yaml:"outputs"`
	Timestamp time.Time      `yaml:"timestamp"`
}

// SummaryPath returns the manifest path for an output base path.
func SummaryPath(base string) string {
	return base + ".summary.yaml"
}

// WriteSummary saves s as YAML at SummaryPath(base).
func WriteSummary(base string, s Summary) error {
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(SummaryPath(base), data, 0o644)
}

// ReadSummary loads a manifest written by WriteSummary.
func ReadSummary(base string) (*Summary, error) {
	data, err := os.ReadFile(SummaryPath(base))
	if err != nil {
		return nil, fmt.Errorf("reading summary: %w", err)
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing summary: %w", err)
	}
	return &s, nil
}

// untypedSchema builds a schema of string columns from header names.
func untypedSchema(header []string) types.Schema {
	s := make(types.Schema, len(header))
	for i, h := range header {
		s[i] = types.Column{Name: h, Kind: types.KindString}
	}
	return s
}

// cleanCell trims whitespace and a leading byte order mark.
func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}
