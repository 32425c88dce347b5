package query

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestBuild_Defaults(t *testing.T) {
	built, err := Build(Spec{TableExpr: "src"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if built.SQL != "SELECT * FROM src" {
		t.Errorf("SQL = %q, want %q", built.SQL, "SELECT * FROM src")
	}
	if len(built.Params) != 0 {
		t.Errorf("Params = %v, want empty", built.Params)
	}
}

func TestBuild_SelectedColumns(t *testing.T) {
	built, err := Build(Spec{
		TableExpr: "src",
		Columns:   []string{"id", "name"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if built.SQL != "SELECT id, name FROM src" {
		t.Errorf("SQL = %q", built.SQL)
	}
}

func TestBuild_Filters(t *testing.T) {
	tests := []struct {
		name       string
		filters    []Filter
		wantSQL    string
		wantParams []interface{}
	}{
		{
			name:       "single comparison",
			filters:    []Filter{{Column: "age", Op: ">", Value: 30}},
			wantSQL:    "SELECT * FROM src WHERE age > ?",
			wantParams: []interface{}{30},
		},
		{
			name: "multiple joined with AND",
			filters: []Filter{
				{Column: "age", Op: ">=", Value: 18},
				{Column: "name", Op: "like", Value: "a%"},
			},
			wantSQL:    "SELECT * FROM src WHERE age >= ? AND name like ?",
			wantParams: []interface{}{18, "a%"},
		},
		{
			name: "in expands one placeholder per element",
			filters: []Filter{
				{Column: "id", Op: "in", Value: []interface{}{1, 2, 3}},
			},
			wantSQL:    "SELECT * FROM src WHERE id IN (?, ?, ?)",
			wantParams: []interface{}{1, 2, 3},
		},
		{
			name: "operator case is normalized",
			filters: []Filter{
				{Column: "name", Op: "LIKE", Value: "%b%"},
			},
			wantSQL:    "SELECT * FROM src WHERE name like ?",
			wantParams: []interface{}{"%b%"},
		},
		{
			name: "in preserves element order around other filters",
			filters: []Filter{
				{Column: "age", Op: "<", Value: 65},
				{Column: "name", Op: "in", Value: []interface{}{"bob", "eve"}},
				{Column: "active", Op: "=", Value: true},
			},
			wantSQL:    "SELECT * FROM src WHERE age < ? AND name IN (?, ?) AND active = ?",
			wantParams: []interface{}{65, "bob", "eve", true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, err := Build(Spec{TableExpr: "src", Filters: tt.filters})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if built.SQL != tt.wantSQL {
				t.Errorf("SQL = %q, want %q", built.SQL, tt.wantSQL)
			}
			if !reflect.DeepEqual(built.Params, tt.wantParams) {
				t.Errorf("Params = %v, want %v", built.Params, tt.wantParams)
			}
		})
	}
}

func TestBuild_GroupByAndAggregates(t *testing.T) {
	built, err := Build(Spec{
		TableExpr: "src",
		GroupBy:   []string{"age"},
		Aggregates: []Aggregate{
			{Column: "id", Op: "count", Alias: "count_id"},
			{Column: "score", Op: "AVG"},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "SELECT age, count(id) AS count_id, avg(score) FROM src GROUP BY age"
	if built.SQL != want {
		t.Errorf("SQL = %q, want %q", built.SQL, want)
	}
}

func TestBuild_GroupByWithoutAggregates(t *testing.T) {
	// No implicit wildcard: the projection is exactly the group keys.
	built, err := Build(Spec{TableExpr: "src", GroupBy: []string{"age", "active"}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "SELECT age, active FROM src GROUP BY age, active"
	if built.SQL != want {
		t.Errorf("SQL = %q, want %q", built.SQL, want)
	}
}

func TestBuild_GroupByOverridesSelectedColumns(t *testing.T) {
	built, err := Build(Spec{
		TableExpr: "src",
		Columns:   []string{"name"},
		GroupBy:   []string{"age"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if built.SQL != "SELECT age FROM src GROUP BY age" {
		t.Errorf("SQL = %q", built.SQL)
	}
}

func TestBuild_OrderBy(t *testing.T) {
	built, err := Build(Spec{
		TableExpr: "src",
		OrderBy: []OrderSpec{
			{Column: "age", Direction: "desc"},
			{Column: "name", Direction: "ASC"},
			{Column: "id"},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "SELECT * FROM src ORDER BY age DESC, name ASC, id ASC"
	if built.SQL != want {
		t.Errorf("SQL = %q, want %q", built.SQL, want)
	}
}

func TestBuild_LimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		limit      *int
		offset     int
		wantSuffix string
		wantParams []interface{}
	}{
		{"limit only", Int(10), 0, " LIMIT ?", []interface{}{10}},
		{"limit and offset", Int(10), 5, " LIMIT ? OFFSET ?", []interface{}{10, 5}},
		{"offset only", nil, 7, " LIMIT -1 OFFSET ?", []interface{}{7}},
		{"zero limit still renders", Int(0), 0, " LIMIT ?", []interface{}{0}},
		{"zero offset never renders", nil, 0, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, err := Build(Spec{TableExpr: "src", Limit: tt.limit, Offset: tt.offset})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			want := "SELECT * FROM src" + tt.wantSuffix
			if built.SQL != want {
				t.Errorf("SQL = %q, want %q", built.SQL, want)
			}
			if !reflect.DeepEqual(built.Params, tt.wantParams) {
				t.Errorf("Params = %v, want %v", built.Params, tt.wantParams)
			}
		})
	}
}

func TestBuild_PlaceholderCountMatchesParams(t *testing.T) {
	built, err := Build(Spec{
		TableExpr: "src",
		Filters: []Filter{
			{Column: "age", Op: ">", Value: 21},
			{Column: "id", Op: "in", Value: []interface{}{1, 2, 3, 4}},
			{Column: "name", Op: "!=", Value: "bob"},
		},
		Limit:  Int(50),
		Offset: 10,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	placeholders := strings.Count(built.SQL, "?")
	if placeholders != len(built.Params) {
		t.Errorf("placeholders = %d, params = %d", placeholders, len(built.Params))
	}
	// 2 scalar filters + 4 in-elements + limit + offset
	if placeholders != 8 {
		t.Errorf("placeholders = %d, want 8", placeholders)
	}
	want := []interface{}{21, 1, 2, 3, 4, "bob", 50, 10}
	if !reflect.DeepEqual(built.Params, want) {
		t.Errorf("Params = %v, want %v", built.Params, want)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"bad selected column", Spec{TableExpr: "src", Columns: []string{"age; DROP TABLE x"}}},
		{"bad group by column", Spec{TableExpr: "src", GroupBy: []string{"1bad"}}},
		{"bad filter column", Spec{TableExpr: "src", Filters: []Filter{{Column: "a b", Op: "=", Value: 1}}}},
		{"bad order column", Spec{TableExpr: "src", OrderBy: []OrderSpec{{Column: "x;", Direction: "asc"}}}},
		{"bad aggregate column", Spec{TableExpr: "src", GroupBy: []string{"age"},
			Aggregates: []Aggregate{{Column: "id'", Op: "count"}}}},
		{"bad aggregate alias", Spec{TableExpr: "src", GroupBy: []string{"age"},
			Aggregates: []Aggregate{{Column: "id", Op: "count", Alias: "a b"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, err := Build(tt.spec)
			if err == nil {
				t.Fatal("Build() error = nil, want InvalidIdentifierError")
			}
			if built != nil {
				t.Errorf("Build() returned %v alongside error", built)
			}
			var idErr *InvalidIdentifierError
			if !errors.As(err, &idErr) {
				t.Errorf("error = %v, want *InvalidIdentifierError", err)
			}
		})
	}
}

func TestBuild_InjectionNeverReachesStatement(t *testing.T) {
	hostile := "age; DROP TABLE x"
	specs := []Spec{
		{TableExpr: "src", Columns: []string{hostile}},
		{TableExpr: "src", Filters: []Filter{{Column: hostile, Op: "=", Value: 1}}},
		{TableExpr: "src", GroupBy: []string{hostile}},
		{TableExpr: "src", OrderBy: []OrderSpec{{Column: hostile, Direction: "asc"}}},
	}
	for _, spec := range specs {
		built, err := Build(spec)
		if err == nil {
			t.Fatalf("Build(%+v) accepted hostile identifier", spec)
		}
		if built != nil && strings.Contains(built.SQL, "DROP") {
			t.Fatalf("hostile fragment reached statement: %q", built.SQL)
		}
	}
}

func TestBuild_UnsupportedOperations(t *testing.T) {
	tests := []struct {
		name     string
		spec     Spec
		wantKind string
	}{
		{"operator", Spec{TableExpr: "src",
			Filters: []Filter{{Column: "age", Op: "between", Value: 1}}}, "operator"},
		{"aggregate", Spec{TableExpr: "src", GroupBy: []string{"age"},
			Aggregates: []Aggregate{{Column: "id", Op: "median"}}}, "aggregate"},
		{"direction", Spec{TableExpr: "src",
			OrderBy: []OrderSpec{{Column: "age", Direction: "sideways"}}}, "direction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.spec)
			var opErr *UnsupportedOperationError
			if !errors.As(err, &opErr) {
				t.Fatalf("error = %v, want *UnsupportedOperationError", err)
			}
			if opErr.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", opErr.Kind, tt.wantKind)
			}
		})
	}
}

func TestBuild_InFilterValues(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{"empty list", []interface{}{}},
		{"scalar", 42},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(Spec{
				TableExpr: "src",
				Filters:   []Filter{{Column: "id", Op: "in", Value: tt.value}},
			})
			var valErr *InvalidFilterValueError
			if !errors.As(err, &valErr) {
				t.Fatalf("error = %v, want *InvalidFilterValueError", err)
			}
		})
	}
}

func TestBuild_MissingTableExpr(t *testing.T) {
	if _, err := Build(Spec{}); err == nil {
		t.Fatal("Build() error = nil, want error for missing table expression")
	}
}
