package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"huispedia-scraper/models"
)

// JSONWriter writes all property records as a single JSON array.
type JSONWriter struct {
	path  string
	props []*models.Property
}

// NewJSONWriter creates a writer targeting the given path. The file is
// written on Close so partial runs never leave a truncated array behind.
func NewJSONWriter(path string) (*JSONWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("json: mkdir: %w", err)
	}
	return &JSONWriter{path: path}, nil
}

// Write buffers records for the final dump.
func (w *JSONWriter) Write(props []*models.Property) error {
	w.props = append(w.props, props...)
	return nil
}

// Close serializes the buffered records to disk.
func (w *JSONWriter) Close() error {
	data, err := json.MarshalIndent(w.props, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal: %w", err)
	}
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return fmt.Errorf("json: write %s: %w", w.path, err)
	}
	return nil
}
