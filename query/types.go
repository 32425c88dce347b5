package query

// Filter represents a single WHERE condition.
//
// Value holds a scalar for comparison operators. For the "in" operator it
// must be a non-empty []interface{}; each element becomes one placeholder.
type Filter struct {
	Column string
	Op     string
	Value  interface{}
}

// Aggregate represents an aggregate expression in the projection, rendered
// as func(column) with an optional alias.
type Aggregate struct {
	Column string
	Op     string
	Alias  string
}

// OrderSpec represents a single ORDER BY entry.
type OrderSpec struct {
	Column    string
	Direction string
}

// Spec is a complete structured query specification.
//
// TableExpr names the source the statement selects from. It is supplied by
// the caller, not by user input, and is rendered verbatim.
type Spec struct {
	TableExpr  string
	Columns    []string
	Filters    []Filter
	GroupBy    []string
	OrderBy    []OrderSpec
	Aggregates []Aggregate

	// Limit is rendered as a placeholder when non-nil. Offset is rendered
	// only when nonzero; a zero offset is indistinguishable from no offset.
	// Offset without a limit renders a literal LIMIT -1 so the OFFSET
	// clause stays valid SQLite.
	Limit  *int
	Offset int
}

// BuiltQuery pairs statement text with its positional parameters. The number
// of ? placeholders in SQL always equals len(Params), in the same order.
type BuiltQuery struct {
	SQL    string
	Params []interface{}
}

// Int returns a pointer to v, for setting Spec.Limit inline.
func Int(v int) *int {
	return &v
}
