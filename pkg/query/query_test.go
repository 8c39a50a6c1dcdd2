package query_test

import (
	"testing"

	"github.com/veridian-labs/regent/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "tasks", "t").
		Project("id", "ID").
		Project("task_type", "Type").
		Project("due_date", "DueDate")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	p := testProjection()
	if got := p.From(); got != "public.tasks t" {
		t.Errorf("From() = %q, want %q", got, "public.tasks t")
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	want := "t.id, t.task_type, t.due_date"
	if got := p.Columns(); got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"mapped field", "Type", "t.task_type"},
		{"unmapped passes through", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.field); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "Type", []query.SortField{{Field: "Type"}}},
		{"descending prefix", "-DueDate", []query.SortField{{Field: "DueDate", Descending: true}}},
		{
			"mixed with whitespace",
			"Type, -DueDate",
			[]query.SortField{{Field: "Type"}, {Field: "DueDate", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()

	want := "SELECT t.id, t.task_type, t.due_date FROM public.tasks t"
	if sql != want {
		t.Errorf("Build() sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("Build() args = %v, want none", args)
	}
}

func TestBuilderWhereEquals(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("Type", ptr("dep_oversight")).
		Build()

	want := "SELECT t.id, t.task_type, t.due_date FROM public.tasks t WHERE t.task_type = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Fatalf("args = %v, want one", args)
	}
}

func TestBuilderWhereEqualsNilSkipped(t *testing.T) {
	var missing *string
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("Type", missing).
		Build()

	if sql != "SELECT t.id, t.task_type, t.due_date FROM public.tasks t" {
		t.Errorf("nil condition altered sql: %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuilderParameterNumbering(t *testing.T) {
	search := "review"
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("Type", ptr("quarterly_review")).
		WhereSearch(&search, "Type", "ID").
		Build()

	want := "SELECT t.id, t.task_type, t.due_date FROM public.tasks t " +
		"WHERE t.task_type = $1 AND (t.task_type ILIKE $2 OR t.id ILIKE $3)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Errorf("args = %v, want three", args)
	}
}

func TestBuilderDefaultSort(t *testing.T) {
	sql, _ := query.NewBuilder(
		testProjection(),
		query.SortField{Field: "DueDate"},
	).Build()

	want := "SELECT t.id, t.task_type, t.due_date FROM public.tasks t ORDER BY t.due_date ASC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuilderOrderByOverridesDefault(t *testing.T) {
	sql, _ := query.NewBuilder(
		testProjection(),
		query.SortField{Field: "DueDate"},
	).OrderByFields([]query.SortField{{Field: "Type", Descending: true}}).Build()

	want := "SELECT t.id, t.task_type, t.due_date FROM public.tasks t ORDER BY t.task_type DESC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection()).
		WhereEquals("Type", ptr("fria_assessment")).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.tasks t WHERE t.task_type = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	sql, _ := query.NewBuilder(
		testProjection(),
		query.SortField{Field: "DueDate"},
	).BuildPage(3, 20)

	want := "SELECT t.id, t.task_type, t.due_date FROM public.tasks t" +
		" ORDER BY t.due_date ASC LIMIT 20 OFFSET 40"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc")

	want := "SELECT t.id, t.task_type, t.due_date FROM public.tasks t WHERE t.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v, want [abc]", args)
	}
}

func TestBuilderWhereNullable(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereNullable("Type", nil).
		Build()

	want := "SELECT t.id, t.task_type, t.due_date FROM public.tasks t WHERE t.task_type IS NULL"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}
