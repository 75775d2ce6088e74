package reader

import (
	"fmt"
	"sort"

	"github.com/ledgerstat/ledgerstat/dataset"
)

// ColumnInfo describes a column as observed across a set of rows.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// InspectColumns reports the observed type of every column across the given
// rows. A column whose non-null values disagree on type is reported as
// "mixed"; a column with only nulls as "null". Columns are sorted by name.
func InspectColumns(rows []dataset.Row) []ColumnInfo {
	types := make(map[string]string)
	nullable := make(map[string]bool)

	for _, row := range rows {
		for col := range row {
			if _, seen := types[col]; !seen {
				types[col] = ""
			}
		}
	}

	for _, row := range rows {
		for col := range types {
			value, exists := row[col]
			// A column absent from some rows, or holding nil, is nullable
			if !exists || value == nil {
				nullable[col] = true
				continue
			}

			t := typeName(value)
			switch prev := types[col]; {
			case prev == "":
				types[col] = t
			case prev != t:
				types[col] = "mixed"
			}
		}
	}

	infos := make([]ColumnInfo, 0, len(types))
	for col, t := range types {
		if t == "" {
			t = "null"
		}
		infos = append(infos, ColumnInfo{Name: col, Type: t, Nullable: nullable[col]})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// typeName maps a cell value to a stable type label.
func typeName(v interface{}) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case float32, float64:
		return "float"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	default:
		return fmt.Sprintf("%T", v)
	}
}
