// Package output renders query results in text formats for the CLI.
//
// Formatters receive an explicit column order so output matches the
// projection of the query that produced the rows.
package output

import (
	"fmt"
	"io"
)

// Formatter writes rows using a fixed column order.
type Formatter interface {
	Format(columns []string, rows []map[string]interface{}) error
}

// New returns the formatter for a format name: "json", "jsonl", "csv"
// or "table".
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "json":
		return NewJSONFormatter(w), nil
	case "jsonl":
		return NewJSONLinesFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
