// Package reader loads tabular data files into datasets.
//
// It reads delimited text (CSV, with per-cell type inference) and Apache
// Parquet files (via github.com/parquet-go/parquet-go) and returns rows as
// maps for flexible data access. Load dispatches on the file extension and
// accepts glob patterns covering multiple files.
package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerstat/ledgerstat/dataset"
)

// maxFiles caps how many files a glob pattern may match, to prevent
// resource exhaustion.
const maxFiles = 1000

// maxConcurrentReads bounds the fan-out when reading multiple files.
const maxConcurrentReads = 8

// Load reads one or more data files into rows.
//
// The path may be a single file or a glob pattern:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// Files are dispatched on extension: .csv is read as delimited text, and
// .parquet as parquet. When a pattern matches more than one file, every row
// is tagged with a "_file" column naming its source, files are read
// concurrently, and rows keep glob order across files.
func Load(pattern string) ([]dataset.Row, error) {
	if !strings.ContainsAny(pattern, "*?[]") {
		return loadFile(pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	if len(matches) == 1 {
		// Single match: no _file tagging, same shape as a direct read
		return loadFile(matches[0])
	}

	perFile := make([][]dataset.Row, len(matches))

	var g errgroup.Group
	g.SetLimit(maxConcurrentReads)
	for i, path := range matches {
		i, path := i, path
		g.Go(func() error {
			rows, err := loadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			// Tag each row with the source file (only for multi-file reads)
			for j := range rows {
				rows[j]["_file"] = path
			}
			perFile[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var allRows []dataset.Row
	for _, rows := range perFile {
		allRows = append(allRows, rows...)
	}
	return allRows, nil
}

// loadFile reads a single file, dispatching on its extension.
func loadFile(path string) ([]dataset.Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVFile(path)
	case ".parquet":
		return readParquetFile(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv or .parquet)", filepath.Ext(path))
	}
}
