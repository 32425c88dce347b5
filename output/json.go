package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes all rows as one indented JSON array.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a JSON array formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Format writes rows as a JSON array. Column order is not preserved;
// encoding/json sorts object keys.
func (j *JSONFormatter) Format(columns []string, rows []map[string]interface{}) error {
	if rows == nil {
		rows = []map[string]interface{}{}
	}
	encoder := json.NewEncoder(j.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

// JSONLinesFormatter writes one JSON object per line.
type JSONLinesFormatter struct {
	writer io.Writer
}

// NewJSONLinesFormatter creates a JSON Lines formatter.
func NewJSONLinesFormatter(w io.Writer) *JSONLinesFormatter {
	return &JSONLinesFormatter{writer: w}
}

// Format writes one line per row.
func (j *JSONLinesFormatter) Format(columns []string, rows []map[string]interface{}) error {
	encoder := json.NewEncoder(j.writer)
	for _, row := range rows {
		if err := encoder.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
