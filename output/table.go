package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter writes rows as an ASCII table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// Format renders a table with columns as the header.
func (t *TableFormatter) Format(columns []string, rows []map[string]interface{}) error {
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = cellString(row[col])
		}
		table.Append(record)
	}

	table.Render()
	return nil
}
