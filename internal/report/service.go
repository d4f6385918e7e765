// Package report runs the fixed aggregate summaries over the employees
// table: per-department, per-level, department-by-level, salary bands,
// and per-occupation statistics.
package report

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rkowalik/tabload/internal/db"
	"github.com/rkowalik/tabload/pkg/tabload"
)

// Salary band labels. The bands are closed-open intervals: a salary of
// exactly 80000 lands in the Medium band, 120000 in Very High.
const (
	BandEntry    = "Entry (Below 80k)"
	BandMedium   = "Medium (80k-100k)"
	BandHigh     = "High (100k-120k)"
	BandVeryHigh = "Very High (120k+)"
)

// DepartmentMetrics summarizes one department.
type DepartmentMetrics struct {
	Department    string
	EmployeeCount int64
	AvgSalary     float64
	MinSalary     float64
	MaxSalary     float64
	TotalPayroll  float64
}

// LevelMetrics summarizes one seniority level.
type LevelMetrics struct {
	Level         string
	EmployeeCount int64
	AvgSalary     float64
	MinSalary     float64
	MaxSalary     float64
}

// DepartmentLevelMetrics summarizes one (department, level) pair.
type DepartmentLevelMetrics struct {
	Department    string
	Level         string
	EmployeeCount int64
	AvgSalary     float64
}

// BandMetrics summarizes one salary band. Bands with no employees do not
// appear in the result.
type BandMetrics struct {
	Band          string
	EmployeeCount int64
	AvgSalary     float64
	MinSalary     float64
	MaxSalary     float64
}

// OccupationMetrics summarizes one occupation.
type OccupationMetrics struct {
	Occupation    string
	EmployeeCount int64
	AvgSalary     float64
	MinSalary     float64
	MaxSalary     float64
}

// Service runs the aggregate report queries against an open handle.
type Service struct {
	handle *sql.DB
	table  string
	logger tabload.Logger
}

// New creates a Service over an already-open handle. The Service does not
// own the handle and never closes it.
func New(handle *sql.DB, table string, logger tabload.Logger) *Service {
	return &Service{handle: handle, table: table, logger: logger}
}

// ByDepartment reports per-department headcount and salary statistics,
// biggest payroll first.
func (s *Service) ByDepartment(ctx context.Context) ([]DepartmentMetrics, error) {
	stmt := fmt.Sprintf(`SELECT
    department,
    COUNT(*) AS employee_count,
    AVG(salary) AS avg_salary,
    MIN(salary) AS min_salary,
    MAX(salary) AS max_salary,
    SUM(salary) AS total_payroll
FROM %s
GROUP BY department
ORDER BY total_payroll DESC`, db.QuoteIdentifier(s.table))

	rows, err := s.query(ctx, "department", stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentMetrics
	for rows.Next() {
		var m DepartmentMetrics
		if err := rows.Scan(&m.Department, &m.EmployeeCount,
			&m.AvgSalary, &m.MinSalary, &m.MaxSalary, &m.TotalPayroll); err != nil {
			return nil, fmt.Errorf("scan department metrics: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ByLevel reports per-level headcount and salary statistics, highest
// average salary first.
func (s *Service) ByLevel(ctx context.Context) ([]LevelMetrics, error) {
	stmt := fmt.Sprintf(`SELECT
    level,
    COUNT(*) AS employee_count,
    AVG(salary) AS avg_salary,
    MIN(salary) AS min_salary,
    MAX(salary) AS max_salary
FROM %s
GROUP BY level
ORDER BY avg_salary DESC`, db.QuoteIdentifier(s.table))

	rows, err := s.query(ctx, "level", stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LevelMetrics
	for rows.Next() {
		var m LevelMetrics
		if err := rows.Scan(&m.Level, &m.EmployeeCount,
			&m.AvgSalary, &m.MinSalary, &m.MaxSalary); err != nil {
			return nil, fmt.Errorf("scan level metrics: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ByDepartmentLevel reports headcount and average salary for every
// (department, level) pair, grouped by department and highest average
// salary first within each department.
func (s *Service) ByDepartmentLevel(ctx context.Context) ([]DepartmentLevelMetrics, error) {
	stmt := fmt.Sprintf(`SELECT
    department,
    level,
    COUNT(*) AS employee_count,
    AVG(salary) AS avg_salary
FROM %s
GROUP BY department, level
ORDER BY department, avg_salary DESC`, db.QuoteIdentifier(s.table))

	rows, err := s.query(ctx, "department/level", stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentLevelMetrics
	for rows.Next() {
		var m DepartmentLevelMetrics
		if err := rows.Scan(&m.Department, &m.Level,
			&m.EmployeeCount, &m.AvgSalary); err != nil {
			return nil, fmt.Errorf("scan department/level metrics: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SalaryBands buckets employees into the four fixed bands and reports
// headcount and salary statistics per band, lowest band first. Every
// employee falls into exactly one band.
func (s *Service) SalaryBands(ctx context.Context) ([]BandMetrics, error) {
	stmt := fmt.Sprintf(`SELECT
    CASE
        WHEN salary >= 120000 THEN '%s'
        WHEN salary >= 100000 THEN '%s'
        WHEN salary >= 80000 THEN '%s'
        ELSE '%s'
    END AS salary_range,
    COUNT(*) AS employee_count,
    AVG(salary) AS avg_salary,
    MIN(salary) AS min_salary,
    MAX(salary) AS max_salary
FROM %s
GROUP BY salary_range
ORDER BY min_salary`,
		BandVeryHigh, BandHigh, BandMedium, BandEntry, db.QuoteIdentifier(s.table))

	rows, err := s.query(ctx, "salary band", stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BandMetrics
	for rows.Next() {
		var m BandMetrics
		if err := rows.Scan(&m.Band, &m.EmployeeCount,
			&m.AvgSalary, &m.MinSalary, &m.MaxSalary); err != nil {
			return nil, fmt.Errorf("scan salary band metrics: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ByOccupation reports per-occupation headcount and salary statistics,
// highest average salary first.
func (s *Service) ByOccupation(ctx context.Context) ([]OccupationMetrics, error) {
	stmt := fmt.Sprintf(`SELECT
    occupation,
    COUNT(*) AS employee_count,
    AVG(salary) AS avg_salary,
    MIN(salary) AS min_salary,
    MAX(salary) AS max_salary
FROM %s
GROUP BY occupation
ORDER BY avg_salary DESC`, db.QuoteIdentifier(s.table))

	rows, err := s.query(ctx, "occupation", stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OccupationMetrics
	for rows.Next() {
		var m OccupationMetrics
		if err := rows.Scan(&m.Occupation, &m.EmployeeCount,
			&m.AvgSalary, &m.MinSalary, &m.MaxSalary); err != nil {
			return nil, fmt.Errorf("scan occupation metrics: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Service) query(ctx context.Context, kind, stmt string) (*sql.Rows, error) {
	s.logger.Verbose("report %s on %s", kind, s.table)
	rows, err := s.handle.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("report %s on %s: %w", kind, s.table, err)
	}
	return rows, nil
}
