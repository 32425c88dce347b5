package query

import (
	"fmt"
	"strings"
)

// Build assembles a Spec into a BuiltQuery in a single pass.
//
// Clause order is fixed: projection, WHERE, GROUP BY, ORDER BY, LIMIT,
// OFFSET. Parameters are appended in lockstep with their placeholders, so
// positional binding at the engine stays aligned: filter values first in
// input order, then the limit, then the offset. Any validation failure
// aborts immediately and no partial statement is returned.
//
// Build holds no state between calls and is safe for concurrent use.
func Build(spec Spec) (*BuiltQuery, error) {
	if spec.TableExpr == "" {
		return nil, fmt.Errorf("table expression is required")
	}

	var params []interface{}

	for _, col := range spec.Columns {
		if !ValidIdentifier(col) {
			return nil, &InvalidIdentifierError{Name: col}
		}
	}
	for _, col := range spec.GroupBy {
		if !ValidIdentifier(col) {
			return nil, &InvalidIdentifierError{Name: col}
		}
	}

	selectParts, err := buildProjection(spec)
	if err != nil {
		return nil, err
	}

	whereParts, whereParams, err := buildFilters(spec.Filters)
	if err != nil {
		return nil, err
	}
	params = append(params, whereParams...)

	orderParts, err := buildOrderBy(spec.OrderBy)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(selectParts, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(spec.TableExpr)

	if len(whereParts) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(whereParts, " AND "))
	}
	if len(spec.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(spec.GroupBy, ", "))
	}
	if len(orderParts) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(orderParts, ", "))
	}
	if spec.Limit != nil {
		sb.WriteString(" LIMIT ?")
		params = append(params, *spec.Limit)
	} else if spec.Offset != 0 {
		// SQLite only accepts OFFSET after LIMIT; LIMIT -1 means no
		// limit and keeps the placeholder count unchanged.
		sb.WriteString(" LIMIT -1")
	}
	// A zero offset is never rendered: it cannot be told apart from an
	// absent offset, and rendering it would shift parameter positions.
	if spec.Offset != 0 {
		sb.WriteString(" OFFSET ?")
		params = append(params, spec.Offset)
	}

	return &BuiltQuery{SQL: sb.String(), Params: params}, nil
}

// buildProjection renders the SELECT list. Group-by columns win over
// selected columns; aggregates are appended after the group keys. With
// neither grouping nor selected columns the projection is the wildcard.
func buildProjection(spec Spec) ([]string, error) {
	if len(spec.GroupBy) > 0 {
		parts := append([]string{}, spec.GroupBy...)
		for _, agg := range spec.Aggregates {
			expr, err := buildAggregate(agg)
			if err != nil {
				return nil, err
			}
			parts = append(parts, expr)
		}
		return parts, nil
	}
	if len(spec.Columns) > 0 {
		return spec.Columns, nil
	}
	return []string{"*"}, nil
}

func buildAggregate(agg Aggregate) (string, error) {
	if !ValidIdentifier(agg.Column) {
		return "", &InvalidIdentifierError{Name: agg.Column}
	}
	fn := strings.ToLower(agg.Op)
	if !validAggregate(fn) {
		return "", &UnsupportedOperationError{Kind: "aggregate", Value: agg.Op}
	}
	expr := fmt.Sprintf("%s(%s)", fn, agg.Column)
	if agg.Alias != "" {
		if !ValidIdentifier(agg.Alias) {
			return "", &InvalidIdentifierError{Name: agg.Alias}
		}
		expr = expr + " AS " + agg.Alias
	}
	return expr, nil
}

// buildFilters renders WHERE conditions and their parameters in input order.
func buildFilters(filters []Filter) ([]string, []interface{}, error) {
	var parts []string
	var params []interface{}

	for _, f := range filters {
		if !ValidIdentifier(f.Column) {
			return nil, nil, &InvalidIdentifierError{Name: f.Column}
		}
		op := strings.ToLower(f.Op)
		if !validOperator(op) {
			return nil, nil, &UnsupportedOperationError{Kind: "operator", Value: f.Op}
		}

		if op == "in" {
			values, ok := f.Value.([]interface{})
			if !ok || len(values) == 0 {
				return nil, nil, &InvalidFilterValueError{
					Reason: "IN operator requires a non-empty list value",
				}
			}
			placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
			parts = append(parts, fmt.Sprintf("%s IN (%s)", f.Column, placeholders))
			params = append(params, values...)
			continue
		}

		parts = append(parts, fmt.Sprintf("%s %s ?", f.Column, op))
		params = append(params, f.Value)
	}

	return parts, params, nil
}

func buildOrderBy(orderBy []OrderSpec) ([]string, error) {
	var parts []string
	for _, o := range orderBy {
		if !ValidIdentifier(o.Column) {
			return nil, &InvalidIdentifierError{Name: o.Column}
		}
		dir := o.Direction
		if dir == "" {
			dir = "asc"
		}
		if !validDirection(dir) {
			return nil, &UnsupportedOperationError{Kind: "direction", Value: o.Direction}
		}
		parts = append(parts, o.Column+" "+strings.ToUpper(dir))
	}
	return parts, nil
}
