// Package engine executes built queries against a single parquet-backed
// source using an in-process SQLite session.
//
// Each Engine stages one parquet file into an in-memory table and is
// discarded after use; no state is shared between engines, so concurrent
// callers each open their own. Statement parameters bind positionally to
// the ? placeholders in left-to-right order.
package engine

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vegasq/agenttools/query"
	"github.com/vegasq/agenttools/reader"
)

// Engine holds an in-memory SQLite session with one staged parquet source.
type Engine struct {
	db      *sql.DB
	table   string
	columns []string
}

// Result is a normalized query result.
type Result struct {
	Columns []string
	Rows    []map[string]interface{}
}

// Open reads the parquet file at path and stages its rows into an
// in-memory table with the given name. The table name must satisfy the
// identifier whitelist since it appears verbatim in DDL.
func Open(path, table string) (*Engine, error) {
	if !query.ValidIdentifier(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}

	r, err := reader.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	columns := r.Columns()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite session: %w", err)
	}

	e := &Engine{db: db, table: table, columns: columns}
	if err := e.stage(rows); err != nil {
		_ = db.Close()
		return nil, err
	}
	return e, nil
}

// stage creates the staging table and bulk-inserts all rows. Column and
// table identifiers were validated before interpolation; values go through
// placeholders.
func (e *Engine) stage(rows []map[string]interface{}) error {
	if len(e.columns) == 0 {
		return fmt.Errorf("parquet source has no columns")
	}
	for _, col := range e.columns {
		if !query.ValidIdentifier(col) {
			return fmt.Errorf("unsupported column name in source: %s", col)
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", e.table, strings.Join(e.columns, ", "))
	if _, err := e.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create staging table: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(e.columns)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		e.table, strings.Join(e.columns, ", "), placeholders)

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin staging transaction: %w", err)
	}
	stmt, err := tx.Prepare(insert)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		args := make([]interface{}, len(e.columns))
		for i, col := range e.columns {
			args[i] = bindValue(row[col])
		}
		if _, err := stmt.Exec(args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to stage row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit staging transaction: %w", err)
	}
	return nil
}

// Query executes a built query and normalizes the result set.
func (e *Engine) Query(built *query.BuiltQuery) (*Result, error) {
	rows, err := e.db.Query(built.SQL, built.Params...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: columns, Rows: make([]map[string]interface{}, 0)}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		record := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
			} else {
				record[col] = values[i]
			}
		}
		result.Rows = append(result.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// TotalRows counts all rows in the staged source, independent of any
// filters a query applied.
func (e *Engine) TotalRows() (int64, error) {
	var total int64
	err := e.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", e.table)).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Columns returns the staged source's column names in schema order.
func (e *Engine) Columns() []string {
	return e.columns
}

// Close releases the SQLite session.
func (e *Engine) Close() error {
	return e.db.Close()
}

// bindValue converts a decoded parquet value into a type the SQLite driver
// accepts directly.
func bindValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil, bool, int64, float64, string, []byte:
		return val
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case float32:
		return float64(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
