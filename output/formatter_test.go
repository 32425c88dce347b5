package output

import (
	"bytes"
	"strings"
	"testing"
)

var sampleColumns = []string{"name", "age"}

var sampleRows = []map[string]interface{}{
	{"name": "alice", "age": int64(30)},
	{"name": "bob", "age": int64(25)},
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVFormatter(&buf).Format(sampleColumns, sampleRows); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "name,age" {
		t.Errorf("header = %q, want %q", lines[0], "name,age")
	}
	if lines[1] != "alice,30" {
		t.Errorf("first row = %q, want %q", lines[1], "alice,30")
	}
}

func TestCSVFormatterMissingCells(t *testing.T) {
	var buf bytes.Buffer
	rows := []map[string]interface{}{{"name": "carol"}}
	if err := NewCSVFormatter(&buf).Format(sampleColumns, rows); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[1] != "carol," {
		t.Errorf("row = %q, want %q", lines[1], "carol,")
	}
}

func TestCSVFormatterNeutralizesFormulas(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1+1", "'+1+1"},
		{"@cmd", "'@cmd"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := cellString(tt.in); got != tt.want {
			t.Errorf("cellString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJSONLinesFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONLinesFormatter(&buf).Format(sampleColumns, sampleRows); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"name":"alice"`) {
		t.Errorf("first line missing alice: %q", lines[0])
	}
}

func TestJSONFormatterEmptyRows(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter(&buf).Format(sampleColumns, nil); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("output = %q, want []", buf.String())
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter(&buf).Format(sampleColumns, sampleRows); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"name", "age", "alice", "bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestNewUnknownFormat(t *testing.T) {
	if _, err := New("yaml", &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewKnownFormats(t *testing.T) {
	for _, format := range []string{"json", "jsonl", "csv", "table"} {
		if _, err := New(format, &bytes.Buffer{}); err != nil {
			t.Errorf("New(%q) error: %v", format, err)
		}
	}
}
