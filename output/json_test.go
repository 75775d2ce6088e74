package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ledgerstat/ledgerstat/dataset"
)

func TestJSONFormat(t *testing.T) {
	rows := []dataset.Row{
		{"country": "USA", "total": 5475.0},
		{"country": "Canada", "total": 270.0},
	}

	var buf bytes.Buffer
	if err := NewJSONFormatter(&buf).Format(rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if decoded["country"] != "USA" {
		t.Errorf("country = %v, want USA", decoded["country"])
	}
	if decoded["total"] != 5475.0 {
		t.Errorf("total = %v, want 5475", decoded["total"])
	}
}

func TestJSONFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter(&buf).Format(nil); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty input produced output: %q", buf.String())
	}
}

func TestJSONFormatNilValues(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter(&buf).Format([]dataset.Row{{"total": nil}}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != `{"total":null}` {
		t.Errorf("got %q, want %q", strings.TrimSpace(buf.String()), `{"total":null}`)
	}
}
