package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// ColumnInfo describes a single top-level column in a parquet file.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional"`
}

// DescribeFile returns column metadata for the parquet file at path.
func DescribeFile(path string) ([]ColumnInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	fields := r.Schema().Fields()
	infos := make([]ColumnInfo, 0, len(fields))
	for _, field := range fields {
		infos = append(infos, ColumnInfo{
			Name:     field.Name(),
			Type:     friendlyType(field),
			Optional: field.Optional(),
		})
	}
	return infos, nil
}

// friendlyType maps a field's physical/logical type to a short display name.
func friendlyType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	if lt := field.Type().LogicalType(); lt != nil {
		if lt.UTF8 != nil {
			return "STRING"
		}
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "STRING"
	case parquet.FixedLenByteArray:
		return "BYTES"
	default:
		return "UNKNOWN"
	}
}
