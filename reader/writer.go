package reader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// WriteFile writes rows to a parquet file at path, creating parent
// directories as needed.
//
// The schema is inferred from the first non-nil value of each column:
// bool maps to BOOLEAN, integers to INT64, floats to DOUBLE, and anything
// else to a UTF8 string column. Columns whose values are all nil default to
// string. Every column is optional, so rows may omit keys.
//
// Returns the number of rows written.
func WriteFile(path string, columns []string, rows []map[string]interface{}) (int, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("columns cannot be empty")
	}

	schema, err := inferSchema(columns, rows)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		record := make(map[string]interface{}, len(columns))
		for _, col := range columns {
			value, ok := row[col]
			if !ok || value == nil {
				continue
			}
			coerced, err := coerceValue(schemaKind(schema, col), value)
			if err != nil {
				return 0, fmt.Errorf("row %d, column %s: %w", i, col, err)
			}
			record[col] = coerced
		}
		records[i] = record
	}

	writer := parquet.NewGenericWriter[map[string]interface{}](f, schema)
	if _, err := writer.Write(records); err != nil {
		return 0, fmt.Errorf("failed to write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to close writer: %w", err)
	}

	return len(records), nil
}

// inferSchema builds a parquet schema covering columns, typing each column
// from the first non-nil value found for it.
func inferSchema(columns []string, rows []map[string]interface{}) (*parquet.Schema, error) {
	group := parquet.Group{}
	for _, col := range columns {
		group[col] = parquet.Optional(inferNode(col, rows))
	}
	return parquet.NewSchema("root", group), nil
}

func inferNode(col string, rows []map[string]interface{}) parquet.Node {
	for _, row := range rows {
		value, ok := row[col]
		if !ok || value == nil {
			continue
		}
		switch value.(type) {
		case bool:
			return parquet.Leaf(parquet.BooleanType)
		case int, int32, int64:
			return parquet.Int(64)
		case float32, float64:
			return parquet.Leaf(parquet.DoubleType)
		default:
			return parquet.String()
		}
	}
	return parquet.String()
}

func schemaKind(schema *parquet.Schema, col string) parquet.Kind {
	for _, field := range schema.Fields() {
		if field.Name() == col {
			return field.Type().Kind()
		}
	}
	return parquet.ByteArray
}

// coerceValue converts value to the Go representation matching the column's
// parquet kind. Numeric cross-conversions are allowed; everything else is
// stringified for string columns and rejected otherwise.
func coerceValue(kind parquet.Kind, value interface{}) (interface{}, error) {
	switch kind {
	case parquet.Boolean:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("cannot convert %T to boolean", value)
		}
		return b, nil
	case parquet.Int64:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			return int64(v), nil
		case float32:
			return int64(v), nil
		default:
			return nil, fmt.Errorf("cannot convert %T to int64", value)
		}
	case parquet.Double:
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int32:
			return float64(v), nil
		case int64:
			return float64(v), nil
		default:
			return nil, fmt.Errorf("cannot convert %T to double", value)
		}
	default:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return fmt.Sprintf("%v", value), nil
	}
}
