// Package parquet implements the parquet read/write/info tool operations.
//
// Reads go through the whitelisting query builder, so callers can filter,
// group, order, and paginate without ever supplying SQL text. All expected
// failures come back as error results; nothing here panics on bad input.
package parquet

import (
	"os"
	"strings"

	"github.com/vegasq/agenttools/engine"
	"github.com/vegasq/agenttools/internal/workspace"
	"github.com/vegasq/agenttools/query"
	"github.com/vegasq/agenttools/reader"
	"github.com/vegasq/agenttools/tools"
)

// tableExpr names the staged source inside the engine session.
const tableExpr = "src"

// ReadOptions carries the structured query parameters for Read.
type ReadOptions struct {
	Limit      *int
	Offset     int
	Columns    []string
	Filters    []query.Filter
	GroupBy    []string
	OrderBy    []query.OrderSpec
	Aggregates []query.Aggregate
}

// Read reads a parquet file and returns its contents.
//
// Supports filters, grouping, ordering, and pagination via structured
// options. total_rows always reflects the unfiltered source so callers can
// tell rows returned apart from rows available.
func Read(path, workspaceID, agentID, sessionID string, opts ReadOptions) tools.Result {
	if opts.Offset < 0 || (opts.Limit != nil && *opts.Limit < 0) {
		return tools.Errorf("offset and limit must be non-negative")
	}
	if !hasParquetExtension(path) {
		return tools.Errorf("File must have .parquet extension")
	}

	securePath, err := workspace.Resolve(path, workspaceID, agentID, sessionID)
	if err != nil {
		return tools.Errorf("Failed to read parquet: %v", err)
	}
	if _, err := os.Stat(securePath); err != nil {
		return tools.Errorf("File not found: %s", path)
	}

	built, err := query.Build(query.Spec{
		TableExpr:  tableExpr,
		Columns:    opts.Columns,
		Filters:    opts.Filters,
		GroupBy:    opts.GroupBy,
		OrderBy:    opts.OrderBy,
		Aggregates: opts.Aggregates,
		Limit:      opts.Limit,
		Offset:     opts.Offset,
	})
	if err != nil {
		return tools.Errorf("%v", err)
	}

	eng, err := engine.Open(securePath, tableExpr)
	if err != nil {
		return tools.Errorf("Failed to read parquet: %v", err)
	}
	defer func() { _ = eng.Close() }()

	result, err := eng.Query(built)
	if err != nil {
		return tools.Errorf("Failed to read parquet: %v", err)
	}
	totalRows, err := eng.TotalRows()
	if err != nil {
		return tools.Errorf("Failed to read parquet: %v", err)
	}

	var limit interface{}
	if opts.Limit != nil {
		limit = *opts.Limit
	}
	return tools.Success(map[string]interface{}{
		"path":         path,
		"columns":      result.Columns,
		"column_count": len(result.Columns),
		"rows":         result.Rows,
		"row_count":    len(result.Rows),
		"total_rows":   totalRows,
		"offset":       opts.Offset,
		"limit":        limit,
	})
}

// Write writes columns and rows to a parquet file inside the sandbox.
func Write(path, workspaceID, agentID, sessionID string, columns []string, rows []map[string]interface{}) tools.Result {
	if !hasParquetExtension(path) {
		return tools.Errorf("File must have .parquet extension")
	}
	if len(columns) == 0 {
		return tools.Errorf("columns cannot be empty")
	}

	securePath, err := workspace.Resolve(path, workspaceID, agentID, sessionID)
	if err != nil {
		return tools.Errorf("Failed to write parquet: %v", err)
	}

	written, err := reader.WriteFile(securePath, columns, rows)
	if err != nil {
		return tools.Errorf("Failed to write parquet: %v", err)
	}

	return tools.Success(map[string]interface{}{
		"path":         path,
		"columns":      columns,
		"column_count": len(columns),
		"rows_written": written,
	})
}

// Info returns metadata about a parquet file: column names, row count, and
// file size.
func Info(path, workspaceID, agentID, sessionID string) tools.Result {
	if !hasParquetExtension(path) {
		return tools.Errorf("File must have .parquet extension")
	}

	securePath, err := workspace.Resolve(path, workspaceID, agentID, sessionID)
	if err != nil {
		return tools.Errorf("Failed to read parquet info: %v", err)
	}
	stat, err := os.Stat(securePath)
	if err != nil {
		return tools.Errorf("File not found: %s", path)
	}

	r, err := reader.NewReader(securePath)
	if err != nil {
		return tools.Errorf("Failed to read parquet info: %v", err)
	}
	defer func() { _ = r.Close() }()

	columns := r.Columns()
	return tools.Success(map[string]interface{}{
		"path":         path,
		"columns":      columns,
		"column_count": len(columns),
		"total_rows":   r.NumRows(),
		"file_size":    stat.Size(),
	})
}

// hasParquetExtension checks the file extension before any path resolution
// or I/O happens.
func hasParquetExtension(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".parquet")
}
