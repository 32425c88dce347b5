package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type userRow struct {
	ID     int64   `parquet:"id"`
	Name   string  `parquet:"name"`
	Age    int64   `parquet:"age"`
	Active bool    `parquet:"active"`
	Score  float64 `parquet:"score"`
}

// createUserFile writes a parquet file with userRow structure and returns
// its path.
func createUserFile(t *testing.T, rows []userRow) string {
	t.Helper()
	testFile := filepath.Join(t.TempDir(), "users.parquet")

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	defer func() { _ = f.Close() }()

	writer := parquet.NewGenericWriter[userRow](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	return testFile
}

func defaultUsers() []userRow {
	return []userRow{
		{ID: 1, Name: "alice", Age: 30, Active: true, Score: 95.5},
		{ID: 2, Name: "bob", Age: 25, Active: false, Score: 82.3},
		{ID: 3, Name: "charlie", Age: 35, Active: true, Score: 88.7},
	}
}

func TestNewReader_NonExistentFile(t *testing.T) {
	_, err := NewReader("/nonexistent/path/data.parquet")
	if err == nil {
		t.Fatal("NewReader() error = nil, want error for missing file")
	}
}

func TestNewReader_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.parquet")
	if err := os.WriteFile(path, []byte("this is not parquet"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := NewReader(path); err == nil {
		t.Fatal("NewReader() error = nil, want error for invalid file")
	}
}

func TestReadAll(t *testing.T) {
	path := createUserFile(t, defaultUsers())

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if rows[0]["name"] != "alice" {
		t.Errorf("rows[0][name] = %v, want alice", rows[0]["name"])
	}
}

func TestColumns(t *testing.T) {
	path := createUserFile(t, defaultUsers())

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	columns := r.Columns()
	if len(columns) != 5 {
		t.Fatalf("len(columns) = %d, want 5: %v", len(columns), columns)
	}
	seen := make(map[string]bool)
	for _, col := range columns {
		seen[col] = true
	}
	for _, want := range []string{"id", "name", "age", "active", "score"} {
		if !seen[want] {
			t.Errorf("column %q missing from %v", want, columns)
		}
	}
}

func TestNumRows(t *testing.T) {
	path := createUserFile(t, defaultUsers())

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	if n := r.NumRows(); n != 3 {
		t.Errorf("NumRows() = %d, want 3", n)
	}
}

func TestClose_Idempotent(t *testing.T) {
	path := createUserFile(t, defaultUsers())

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	// Second close must not panic; the error is not interesting.
	_ = r.Close()
}

func TestDescribeFile(t *testing.T) {
	path := createUserFile(t, defaultUsers())

	infos, err := DescribeFile(path)
	if err != nil {
		t.Fatalf("DescribeFile() error = %v", err)
	}
	if len(infos) != 5 {
		t.Fatalf("len(infos) = %d, want 5", len(infos))
	}

	types := make(map[string]string)
	for _, info := range infos {
		types[info.Name] = info.Type
	}
	if types["name"] != "STRING" {
		t.Errorf("name type = %q, want STRING", types["name"])
	}
	if types["id"] != "INT64" {
		t.Errorf("id type = %q, want INT64", types["id"])
	}
	if types["active"] != "BOOLEAN" {
		t.Errorf("active type = %q, want BOOLEAN", types["active"])
	}
	if types["score"] != "DOUBLE" {
		t.Errorf("score type = %q, want DOUBLE", types["score"])
	}
}
