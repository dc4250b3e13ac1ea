package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the dataset and writes it under dir, creating the
// directory when needed. The file is always written, even with zero rows, so
// downstream consumers see a fresh (possibly empty) export per run.
func (e *CSVExporter) WriteFile(dir, filename string, data Dataset) (string, error) {
	payload, err := e.Render(data)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, SafeFilename(filename))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write csv file: %w", err)
	}
	return path, nil
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^\w\s.-]+`)
	filenameWhitespace  = regexp.MustCompile(`\s+`)
)

// SafeFilename replaces characters that cannot appear in filenames.
func SafeFilename(name string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(name, " - ")
	cleaned = filenameWhitespace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimRight(strings.TrimSpace(cleaned), " .")
	return strings.ReplaceAll(cleaned, " ", "_")
}
