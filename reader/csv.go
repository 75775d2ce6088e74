package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ledgerstat/ledgerstat/dataset"
)

// CSVReader reads delimited text into rows, inferring a Go type for every
// cell. A header row is required; its fields become the column names.
type CSVReader struct {
	r *csv.Reader
}

// NewCSVReader creates a CSVReader over an io.Reader with comma as the
// delimiter.
func NewCSVReader(r io.Reader) *CSVReader {
	return &CSVReader{r: csv.NewReader(r)}
}

// SetComma changes the field delimiter (e.g. ';' or '\t').
func (c *CSVReader) SetComma(comma rune) {
	c.r.Comma = comma
}

// ReadAll reads the header and all data rows. Cells are inferred per value:
// int64, then float64, then bool, otherwise string. Empty cells become nil.
// A row with the wrong number of fields surfaces the csv package's error.
func (c *CSVReader) ReadAll() ([]dataset.Row, error) {
	header, err := c.r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("failed to read CSV header: file is empty")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	rows := make([]dataset.Row, 0)
	for {
		record, err := c.r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		row := make(dataset.Row, len(columns))
		for i, cell := range record {
			row[columns[i]] = inferValue(cell)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// readCSVFile reads a whole CSV file in one call.
func readCSVFile(path string) ([]dataset.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	rows, err := NewCSVReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

// inferValue converts a CSV cell to the narrowest matching Go type.
func inferValue(cell string) interface{} {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	switch trimmed {
	case "true", "TRUE", "True":
		return true
	case "false", "FALSE", "False":
		return false
	}

	return trimmed
}
