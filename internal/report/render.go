package report

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func count(v int64) string {
	return strconv.FormatInt(v, 10)
}

func renderTable(title string, headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	return titleStyle.Render(title) + "\n" + t.Render() + "\n"
}

// RenderDepartments formats the per-department report for terminal output.
func RenderDepartments(metrics []DepartmentMetrics) string {
	rows := make([][]string, len(metrics))
	for i, m := range metrics {
		rows[i] = []string{m.Department, count(m.EmployeeCount),
			money(m.AvgSalary), money(m.MinSalary), money(m.MaxSalary), money(m.TotalPayroll)}
	}
	return renderTable("Salary by department",
		[]string{"Department", "Employees", "Avg", "Min", "Max", "Total payroll"}, rows)
}

// RenderLevels formats the per-level report for terminal output.
func RenderLevels(metrics []LevelMetrics) string {
	rows := make([][]string, len(metrics))
	for i, m := range metrics {
		rows[i] = []string{m.Level, count(m.EmployeeCount),
			money(m.AvgSalary), money(m.MinSalary), money(m.MaxSalary)}
	}
	return renderTable("Salary by level",
		[]string{"Level", "Employees", "Avg", "Min", "Max"}, rows)
}

// RenderDepartmentLevels formats the department-by-level report for
// terminal output.
func RenderDepartmentLevels(metrics []DepartmentLevelMetrics) string {
	rows := make([][]string, len(metrics))
	for i, m := range metrics {
		rows[i] = []string{m.Department, m.Level, count(m.EmployeeCount), money(m.AvgSalary)}
	}
	return renderTable("Salary by department and level",
		[]string{"Department", "Level", "Employees", "Avg"}, rows)
}

// RenderBands formats the salary-band report for terminal output.
func RenderBands(metrics []BandMetrics) string {
	rows := make([][]string, len(metrics))
	for i, m := range metrics {
		rows[i] = []string{m.Band, count(m.EmployeeCount),
			money(m.AvgSalary), money(m.MinSalary), money(m.MaxSalary)}
	}
	return renderTable("Salary bands",
		[]string{"Band", "Employees", "Avg", "Min", "Max"}, rows)
}

// RenderOccupations formats the per-occupation report for terminal output.
func RenderOccupations(metrics []OccupationMetrics) string {
	rows := make([][]string, len(metrics))
	for i, m := range metrics {
		rows[i] = []string{m.Occupation, count(m.EmployeeCount),
			money(m.AvgSalary), money(m.MinSalary), money(m.MaxSalary)}
	}
	return renderTable("Salary by occupation",
		[]string{"Occupation", "Employees", "Avg", "Min", "Max"}, rows)
}
