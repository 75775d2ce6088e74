package reader

import (
	"testing"

	"github.com/ledgerstat/ledgerstat/dataset"
)

func TestInspectColumns(t *testing.T) {
	rows := []dataset.Row{
		{"country": "USA", "amount": int64(100), "discount": 10.5, "vip": true},
		{"country": "UK", "amount": int64(50), "discount": nil, "vip": false},
	}

	infos := InspectColumns(rows)

	want := map[string]ColumnInfo{
		"country":  {Name: "country", Type: "string"},
		"amount":   {Name: "amount", Type: "int"},
		"discount": {Name: "discount", Type: "float", Nullable: true},
		"vip":      {Name: "vip", Type: "bool"},
	}

	if len(infos) != len(want) {
		t.Fatalf("got %d columns, want %d: %v", len(infos), len(want), infos)
	}
	for _, info := range infos {
		if info != want[info.Name] {
			t.Errorf("column %s = %+v, want %+v", info.Name, info, want[info.Name])
		}
	}
}

func TestInspectColumnsSorted(t *testing.T) {
	rows := []dataset.Row{
		{"zeta": 1.0, "alpha": "x", "mid": int64(2)},
	}

	infos := InspectColumns(rows)
	wantOrder := []string{"alpha", "mid", "zeta"}
	for i, info := range infos {
		if info.Name != wantOrder[i] {
			t.Errorf("column %d = %s, want %s", i, info.Name, wantOrder[i])
		}
	}
}

func TestInspectColumnsMixedAndNull(t *testing.T) {
	rows := []dataset.Row{
		{"a": int64(1), "b": nil},
		{"a": "oops", "b": nil},
	}

	infos := InspectColumns(rows)
	byName := make(map[string]ColumnInfo)
	for _, info := range infos {
		byName[info.Name] = info
	}

	if byName["a"].Type != "mixed" {
		t.Errorf("column a type = %s, want mixed", byName["a"].Type)
	}
	if byName["b"].Type != "null" || !byName["b"].Nullable {
		t.Errorf("column b = %+v, want null/nullable", byName["b"])
	}
}

func TestInspectColumnsMissingColumnIsNullable(t *testing.T) {
	rows := []dataset.Row{
		{"a": int64(1), "b": "x"},
		{"a": int64(2)},
	}

	infos := InspectColumns(rows)
	for _, info := range infos {
		if info.Name == "b" && !info.Nullable {
			t.Error("column b absent from one row should be nullable")
		}
	}
}
