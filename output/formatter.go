// Package output provides formatters for writing query results in various
// output formats.
//
// Currently supported formats:
//   - JSON Lines: One JSON object per line
//   - CSV: Comma-separated values with header row
//   - Table: aligned text table
//
// Example usage:
//
//	formatter := output.NewTableFormatter(os.Stdout)
//	if err := formatter.Format(rows); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/ledgerstat/ledgerstat/dataset"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows []dataset.Row) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}
