// Package query compiles caller-supplied filter criteria into parameterized
// SQL. Compilation is pure: it never touches a connection, and every
// structural error (unknown column, empty membership list) is raised before
// any query could execute.
//
// Values are always bound through placeholders. Column names cannot be bind
// parameters, so each identifier is validated against the employees schema
// allow-list before being embedded into the template.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rkowalik/tabload/internal/db"
	"github.com/rkowalik/tabload/pkg/tabload"
)

// clause is one compiled predicate. Exactly one of the two shapes applies:
// an equality over a single value or a membership over a non-empty list.
type clause struct {
	column string
	values []any
	in     bool
}

// Builder compiles Criteria and SortSpec pairs for one target table.
type Builder struct {
	table string
}

// NewBuilder creates a Builder for the given table name.
func NewBuilder(table string) *Builder {
	return &Builder{table: table}
}

// Compile turns criteria plus an optional sort into a CompiledQuery
// selecting all schema columns.
//
// Criteria entries become predicates joined with AND: scalar values compile
// to `column = $n`, slice values to `column IN ($n, ...)` with one
// placeholder per element. Empty criteria mean no WHERE clause at all.
// Clauses are emitted in sorted column order so the same criteria always
// produce the same SQL.
//
// Errors: tabload.ErrUnknownColumn for any column (criteria or sort) outside
// the schema, tabload.ErrEmptyCriteriaValue for a membership entry with no
// elements. A nil sort leaves result order backend-defined.
func (b *Builder) Compile(criteria tabload.Criteria, sortSpec *tabload.SortSpec) (*tabload.CompiledQuery, error) {
	clauses, err := normalize(criteria)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(tabload.Columns(), ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(db.QuoteIdentifier(b.table))

	var args []any
	if len(clauses) > 0 {
		conditions := make([]string, 0, len(clauses))
		for _, c := range clauses {
			conditions = append(conditions, renderClause(c, &args))
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	if sortSpec != nil {
		if !tabload.IsColumn(sortSpec.Column) {
			return nil, tabload.UnknownColumnf("compile sort", sortSpec.Column)
		}
		dir := "ASC"
		if sortSpec.Direction == tabload.SortDescending {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", sortSpec.Column, dir)
	}

	return &tabload.CompiledQuery{SQL: sb.String(), Args: args}, nil
}

// normalize validates the criteria map and flattens it into clauses in
// sorted column order.
func normalize(criteria tabload.Criteria) ([]clause, error) {
	columns := make([]string, 0, len(criteria))
	for col := range criteria {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	clauses := make([]clause, 0, len(columns))
	for _, col := range columns {
		if !tabload.IsColumn(col) {
			return nil, tabload.UnknownColumnf("compile criteria", col)
		}

		values, in, err := clauseValues(col, criteria[col])
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause{column: col, values: values, in: in})
	}
	return clauses, nil
}

// clauseValues classifies a criteria value as equality or membership.
func clauseValues(col string, value any) (values []any, in bool, err error) {
	switch v := value.(type) {
	case []any:
		values, in = v, true
	case []string:
		values, in = make([]any, len(v)), true
		for i, s := range v {
			values[i] = s
		}
	case []int:
		values, in = make([]any, len(v)), true
		for i, n := range v {
			values[i] = n
		}
	case []float64:
		values, in = make([]any, len(v)), true
		for i, f := range v {
			values[i] = f
		}
	default:
		return []any{value}, false, nil
	}

	if len(values) == 0 {
		return nil, false, fmt.Errorf("compile criteria: %w: column %q", tabload.ErrEmptyCriteriaValue, col)
	}
	return values, true, nil
}

// renderClause appends the clause's values to args and returns its SQL
// fragment with $n placeholders.
func renderClause(c clause, args *[]any) string {
	if !c.in {
		*args = append(*args, c.values[0])
		return fmt.Sprintf("%s = $%d", c.column, len(*args))
	}

	placeholders := make([]string, len(c.values))
	for i, v := range c.values {
		*args = append(*args, v)
		placeholders[i] = fmt.Sprintf("$%d", len(*args))
	}
	return fmt.Sprintf("%s IN (%s)", c.column, strings.Join(placeholders, ", "))
}
