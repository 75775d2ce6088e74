package reader

import (
	"strings"
	"testing"
)

func TestCSVReadAll(t *testing.T) {
	input := "country,amount,discount\nUSA,2000,10.5\nCanada,120,0\n"

	rows, err := NewCSVReader(strings.NewReader(input)).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first["country"] != "USA" {
		t.Errorf("country = %v, want USA", first["country"])
	}
	if first["amount"] != int64(2000) {
		t.Errorf("amount = %v (%T), want int64(2000)", first["amount"], first["amount"])
	}
	if first["discount"] != 10.5 {
		t.Errorf("discount = %v (%T), want 10.5", first["discount"], first["discount"])
	}
}

func TestCSVTypeInference(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want interface{}
	}{
		{name: "integer", cell: "42", want: int64(42)},
		{name: "negative integer", cell: "-7", want: int64(-7)},
		{name: "float", cell: "3.14", want: 3.14},
		{name: "scientific notation", cell: "1e3", want: 1000.0},
		{name: "bool true", cell: "true", want: true},
		{name: "bool upper", cell: "TRUE", want: true},
		{name: "bool false", cell: "False", want: false},
		{name: "string", cell: "USA", want: "USA"},
		{name: "padded string", cell: "  UK  ", want: "UK"},
		{name: "empty is nil", cell: "", want: nil},
		{name: "whitespace is nil", cell: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferValue(tt.cell); got != tt.want {
				t.Errorf("inferValue(%q) = %v (%T), want %v (%T)", tt.cell, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty file", input: ""},
		{name: "ragged row", input: "a,b\n1,2,3\n"},
		{name: "bare quote", input: "a,b\n\"1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCSVReader(strings.NewReader(tt.input)).ReadAll(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestCSVCustomDelimiter(t *testing.T) {
	input := "country;amount\nUSA;100\n"

	r := NewCSVReader(strings.NewReader(input))
	r.SetComma(';')

	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["amount"] != int64(100) {
		t.Errorf("amount = %v, want 100", rows[0]["amount"])
	}
}

func TestCSVHeaderOnly(t *testing.T) {
	rows, err := NewCSVReader(strings.NewReader("country,amount\n")).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}
