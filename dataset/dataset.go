// Package dataset implements an in-memory tabular dataset with filtering,
// computed columns, sorting, and group-by aggregation.
//
// Rows are maps from column name to value. Every operation derives a new
// Dataset; the rows of the source are never mutated. Queries are built
// programmatically from value expressions (Col, Lit, Sub, Mul, ...) and
// predicates (Compare, And, Or, Not).
//
// Example usage:
//
//	ds := dataset.New(rows)
//	filtered, err := ds.Filter(dataset.Compare{
//	    Left:  dataset.Col("amount"),
//	    Op:    dataset.Le,
//	    Right: dataset.Lit(1000.0),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	grouped, err := filtered.GroupBy("country")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	totals, err := grouped.Aggregate(dataset.Sum(dataset.Col("amount"), "total"))
package dataset

import "fmt"

// Row is a single data row keyed by column name.
type Row = map[string]interface{}

// Dataset is an immutable ordered collection of rows.
type Dataset struct {
	rows []Row
}

// New creates a Dataset from a slice of rows. The slice is used as-is;
// callers must not mutate it afterwards.
func New(rows []Row) Dataset {
	return Dataset{rows: rows}
}

// Rows returns the underlying rows. The returned slice and its row maps are
// shared with the Dataset and must be treated as read-only.
func (d Dataset) Rows() []Row {
	return d.rows
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.rows)
}

// Columns returns all unique column names in first-seen order.
func (d Dataset) Columns() []string {
	seen := make(map[string]bool)
	columns := make([]string, 0)

	for _, row := range d.rows {
		for col := range row {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	return columns
}

// Filter returns a new Dataset containing the rows for which the predicate
// holds. Row order is preserved.
func (d Dataset) Filter(pred Predicate) (Dataset, error) {
	if pred == nil {
		return d, nil
	}

	filtered := make([]Row, 0)
	for _, row := range d.rows {
		match, err := pred.Evaluate(row)
		if err != nil {
			return Dataset{}, err
		}
		if match {
			filtered = append(filtered, row)
		}
	}

	return Dataset{rows: filtered}, nil
}

// Assign returns a new Dataset with an additional column computed from the
// given expression. Existing rows are copied, not mutated; an existing
// column of the same name is replaced in the copies.
func (d Dataset) Assign(name string, expr Value) (Dataset, error) {
	if name == "" {
		return Dataset{}, fmt.Errorf("assign: column name must not be empty")
	}

	assigned := make([]Row, len(d.rows))
	for i, row := range d.rows {
		value, err := expr.Eval(row)
		if err != nil {
			return Dataset{}, fmt.Errorf("assign %q: %w", name, err)
		}

		newRow := make(Row, len(row)+1)
		for col, val := range row {
			newRow[col] = val
		}
		newRow[name] = value
		assigned[i] = newRow
	}

	return Dataset{rows: assigned}, nil
}

// Select returns a new Dataset keeping only the named columns. A named
// column missing from a row is an error.
func (d Dataset) Select(columns ...string) (Dataset, error) {
	projected := make([]Row, len(d.rows))
	for i, row := range d.rows {
		newRow := make(Row, len(columns))
		for _, col := range columns {
			value, exists := row[col]
			if !exists {
				return Dataset{}, fmt.Errorf("column %q not found", col)
			}
			newRow[col] = value
		}
		projected[i] = newRow
	}

	return Dataset{rows: projected}, nil
}

// SortBy returns a new Dataset sorted by the given column. Missing values
// sort first ascending, last descending. The sort is stable.
func (d Dataset) SortBy(column string, desc bool) Dataset {
	sorted := make([]Row, len(d.rows))
	copy(sorted, d.rows)

	stableSortRows(sorted, column, desc)

	return Dataset{rows: sorted}
}

// Head returns a new Dataset with at most n rows. n <= 0 yields an empty
// Dataset.
func (d Dataset) Head(n int) Dataset {
	if n <= 0 {
		return Dataset{rows: []Row{}}
	}
	if n >= len(d.rows) {
		return d
	}
	return Dataset{rows: d.rows[:n]}
}
