package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/ledgerstat/ledgerstat/dataset"
)

// TableFormatter outputs rows as an aligned text table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders rows as a table with a header. Columns are sorted by name,
// matching the CSV formatter. Empty input renders nothing.
func (t *TableFormatter) Format(rows []dataset.Row) error {
	if len(rows) == 0 {
		return nil
	}

	columns := columnOrder(rows)

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatValue(row[col], false)
		}
		table.Append(record)
	}

	table.Render()
	return nil
}
