package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ledgerstat/ledgerstat/dataset"
)

func TestTableFormat(t *testing.T) {
	rows := []dataset.Row{
		{"country": "USA", "total": 5475.0},
		{"country": "Canada", "total": 270.0},
	}

	var buf bytes.Buffer
	if err := NewTableFormatter(&buf).Format(rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"country", "total", "USA", "Canada", "5475", "270"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter(&buf).Format(nil); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty input produced output: %q", buf.String())
	}
}

func TestTableFormatDoesNotSanitize(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter(&buf).Format([]dataset.Row{{"v": "-5"}}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(buf.String(), "'-5") {
		t.Error("table output must not apply CSV formula sanitizing")
	}
}
