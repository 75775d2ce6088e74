package dataset

import "sort"

// stableSortRows sorts rows in place by a single column using compareValues.
// Rows missing the column are treated as NULL, which sorts first (or last
// when descending).
func stableSortRows(rows []Row, column string, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		valI, existsI := rows[i][column]
		valJ, existsJ := rows[j][column]

		if !existsI && !existsJ {
			return false
		}
		if !existsI {
			return !desc
		}
		if !existsJ {
			return desc
		}

		cmp := compareValues(valI, valJ)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}
