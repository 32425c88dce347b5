// Package query builds parametrized SQL statements from structured query
// specifications for execution against a single parquet-backed table.
//
// Unlike a general SQL builder, the package accepts no expressions: every
// column, alias, aggregate function, operator, and order direction is checked
// against a whitelist before it can ever appear in statement text. Values are
// never interpolated; they travel as positional parameters alongside the
// statement so the engine binds them itself.
//
// Example usage:
//
//	built, err := query.Build(query.Spec{
//	    TableExpr: "src",
//	    Filters:   []query.Filter{{Column: "age", Op: ">", Value: 30}},
//	    Limit:     query.Int(10),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rows, err := db.Query(built.SQL, built.Params...)
package query
