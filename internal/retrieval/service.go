// Package retrieval answers ad-hoc lookups over the employees table by
// composing the criteria compiler with a live database handle.
package retrieval

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rkowalik/tabload/internal/db"
	"github.com/rkowalik/tabload/internal/query"
	"github.com/rkowalik/tabload/pkg/tabload"
)

// Service executes compiled criteria queries and materializes the results.
type Service struct {
	handle  *sql.DB
	builder *query.Builder
	table   string
	logger  tabload.Logger
}

// New creates a Service over an already-open handle. The Service does not
// own the handle and never closes it.
func New(handle *sql.DB, table string, logger tabload.Logger) *Service {
	return &Service{
		handle:  handle,
		builder: query.NewBuilder(table),
		table:   table,
		logger:  logger,
	}
}

// Query compiles criteria plus an optional sort and returns every matching
// row. Compilation errors (unknown column, empty membership list) surface
// before anything reaches the backend.
func (s *Service) Query(ctx context.Context, criteria tabload.Criteria, sortSpec *tabload.SortSpec) (tabload.RowSet, error) {
	compiled, err := s.builder.Compile(criteria, sortSpec)
	if err != nil {
		return nil, err
	}

	s.logger.Verbose("query %s: %s %v", s.table, compiled.SQL, compiled.Args)
	return s.run(ctx, compiled.SQL, compiled.Args...)
}

// AboveSalary returns employees earning strictly more than threshold,
// highest salary first.
func (s *Service) AboveSalary(ctx context.Context, threshold float64) (tabload.RowSet, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE salary > $1 ORDER BY salary DESC",
		strings.Join(tabload.Columns(), ", "), db.QuoteIdentifier(s.table))
	return s.run(ctx, stmt, threshold)
}

// ByCities returns employees from the given cities, ordered by city and
// then salary descending. An empty city list is rejected the same way the
// general criteria path rejects empty membership.
func (s *Service) ByCities(ctx context.Context, cities []string) (tabload.RowSet, error) {
	if len(cities) == 0 {
		return nil, fmt.Errorf("query by city: %w: column %q", tabload.ErrEmptyCriteriaValue, tabload.ColCity)
	}

	placeholders := make([]string, len(cities))
	args := make([]any, len(cities))
	for i, city := range cities {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = city
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE city IN (%s) ORDER BY city, salary DESC",
		strings.Join(tabload.Columns(), ", "), db.QuoteIdentifier(s.table), strings.Join(placeholders, ", "))
	return s.run(ctx, stmt, args...)
}

// run executes a statement and scans every row into a RowSet.
func (s *Service) run(ctx context.Context, stmt string, args ...any) (tabload.RowSet, error) {
	rows, err := s.handle.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out tabload.RowSet
	for rows.Next() {
		var r tabload.Record
		if err := rows.Scan(&r.Id, &r.Name, &r.Age, &r.City,
			&r.Department, &r.Level, &r.Occupation, &r.Salary); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", s.table, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", s.table, err)
	}
	return out, nil
}
