package main

import (
	"github.com/vegasq/agenttools/query"
)

// Argument values arrive JSON-decoded, so numbers are float64 and lists
// are []interface{}. These helpers normalize them; wrong types decode to
// zero values and required-field errors surface from the tool itself.

func argString(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func argInt(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func argIntPtr(args map[string]interface{}, key string) *int {
	if _, present := args[key]; !present {
		return nil
	}
	if args[key] == nil {
		return nil
	}
	n := argInt(args, key)
	return &n
}

func argStringList(args map[string]interface{}, key string) []string {
	list, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func decodeFilters(value interface{}) ([]query.Filter, bool) {
	if value == nil {
		return nil, true
	}
	list, ok := value.([]interface{})
	if !ok {
		return nil, false
	}
	filters := make([]query.Filter, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		op, _ := entry["op"].(string)
		column, _ := entry["column"].(string)
		filters = append(filters, query.Filter{
			Column: column,
			Op:     op,
			Value:  entry["value"],
		})
	}
	return filters, true
}

func decodeOrderBy(value interface{}) ([]query.OrderSpec, bool) {
	if value == nil {
		return nil, true
	}
	list, ok := value.([]interface{})
	if !ok {
		return nil, false
	}
	specs := make([]query.OrderSpec, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		column, _ := entry["column"].(string)
		direction, _ := entry["direction"].(string)
		specs = append(specs, query.OrderSpec{Column: column, Direction: direction})
	}
	return specs, true
}

func decodeAggregates(value interface{}) ([]query.Aggregate, bool) {
	if value == nil {
		return nil, true
	}
	list, ok := value.([]interface{})
	if !ok {
		return nil, false
	}
	aggs := make([]query.Aggregate, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		column, _ := entry["column"].(string)
		op, _ := entry["op"].(string)
		alias, _ := entry["alias"].(string)
		aggs = append(aggs, query.Aggregate{Column: column, Op: op, Alias: alias})
	}
	return aggs, true
}

func decodeRows(value interface{}) ([]map[string]interface{}, bool) {
	if value == nil {
		return nil, true
	}
	list, ok := value.([]interface{})
	if !ok {
		return nil, false
	}
	rows := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		rows = append(rows, entry)
	}
	return rows, true
}
