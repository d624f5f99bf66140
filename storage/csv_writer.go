package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"huispedia-scraper/models"
)

// CSVWriter writes property records to a CSV file, one column per flat
// field. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created
// automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: mkdir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create %s: %w", path, err)
	}

	w := &CSVWriter{
		file:   file,
		writer: csv.NewWriter(file),
	}
	if err := w.writer.Write(models.FieldNames()); err != nil {
		file.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.writer.Flush()

	return w, nil
}

// Write appends all records to the file.
func (w *CSVWriter) Write(props []*models.Property) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	fields := models.FieldNames()
	for _, prop := range props {
		m := prop.ToMap()
		row := make([]string, 0, len(fields))
		for _, name := range fields {
			row = append(row, formatValue(m[name]))
		}
		if err := w.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.writer.Flush()
	return w.writer.Error()
}

// Close flushes and closes the underlying file.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// formatValue renders a flat-map value as a CSV cell; absent values
// become empty cells.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
