package query

import (
	"fmt"
	"regexp"
	"strings"
)

// Whitelists for everything that ends up in statement text. Identifiers and
// these fixed sets are the sole injection gate; values never reach the text.
var (
	identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

	allowedOperators = map[string]bool{
		"=": true, "!=": true, ">": true, "<": true,
		">=": true, "<=": true, "in": true, "like": true,
	}

	allowedAggregates = map[string]bool{
		"count": true, "sum": true, "avg": true, "min": true, "max": true,
	}

	allowedDirections = map[string]bool{
		"asc": true, "desc": true,
	}
)

// InvalidIdentifierError reports a column or alias name that failed the
// identifier whitelist. Name is user input and is treated as opaque text.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid column name: %s", e.Name)
}

// UnsupportedOperationError reports an operator, aggregate function, or order
// direction outside the fixed whitelists.
type UnsupportedOperationError struct {
	Kind  string // "operator", "aggregate", or "direction"
	Value string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported %s: %s", e.Kind, e.Value)
}

// InvalidFilterValueError reports a filter value incompatible with its
// operator, e.g. "in" without a non-empty list.
type InvalidFilterValueError struct {
	Reason string
}

func (e *InvalidFilterValueError) Error() string {
	return e.Reason
}

// ValidIdentifier reports whether name is a safe column or alias name.
// The match is anchored: the whole string must satisfy the pattern.
func ValidIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

func validOperator(op string) bool {
	return allowedOperators[strings.ToLower(op)]
}

func validAggregate(fn string) bool {
	return allowedAggregates[strings.ToLower(fn)]
}

func validDirection(dir string) bool {
	return allowedDirections[strings.ToLower(dir)]
}
