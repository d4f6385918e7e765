// Package gen produces synthetic employee datasets for load and
// performance exercises.
package gen

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rkowalik/tabload/pkg/tabload"
)

var departments = []string{
	"Engineering", "Sales", "Marketing", "HR", "Finance",
	"Product", "Operations", "Data Science", "Design", "Legal",
}

var levels = []string{"Junior", "Mid-Level", "Senior", "Lead", "Principal", "Director"}

var cities = []string{
	"New York", "San Francisco", "Chicago", "Los Angeles", "Boston",
	"Seattle", "Austin", "Denver", "Miami", "Portland", "Atlanta",
	"Dallas", "Houston", "Phoenix", "Minneapolis", "Detroit",
}

var occupationsByDepartment = map[string][]string{
	"Engineering":  {"Software Engineer", "DevOps Engineer", "System Architect"},
	"Sales":        {"Sales Representative", "Account Manager", "Sales Director"},
	"Marketing":    {"Marketing Specialist", "Content Manager", "Brand Manager"},
	"HR":           {"HR Specialist", "Recruiter", "HR Manager"},
	"Finance":      {"Financial Analyst", "Accountant", "Controller"},
	"Product":      {"Product Manager", "Product Owner", "Product Director"},
	"Operations":   {"Operations Manager", "Business Analyst", "Project Manager"},
	"Data Science": {"Data Scientist", "ML Engineer", "Data Analyst"},
	"Design":       {"UX Designer", "UI Designer", "Product Designer"},
	"Legal":        {"Legal Counsel", "Compliance Officer", "Contract Manager"},
}

// Employees generates count synthetic records. The same seed always yields
// the same dataset. Salaries follow a normal distribution around 90000
// with a 20000 standard deviation, and occupations match the department
// they belong to.
func Employees(count int, seed int64) tabload.RowSet {
	rng := rand.New(rand.NewSource(seed))

	rows := make(tabload.RowSet, count)
	for i := range rows {
		dept := departments[rng.Intn(len(departments))]
		pool := occupationsByDepartment[dept]

		rows[i] = tabload.Record{
			Id:         int64(i + 1),
			Name:       fmt.Sprintf("Employee_%d", i),
			Age:        22 + rng.Intn(43),
			City:       cities[rng.Intn(len(cities))],
			Department: dept,
			Level:      levels[rng.Intn(len(levels))],
			Occupation: pool[rng.Intn(len(pool))],
			Salary:     float64(int(rng.NormFloat64()*20000 + 90000)),
		}
	}
	return rows
}

// WriteCSV writes rows as a comma-delimited file with a header row,
// creating parent directories as needed.
func WriteCSV(path string, rows tabload.RowSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tabload.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.Id, 10),
			r.Name,
			strconv.Itoa(r.Age),
			r.City,
			r.Department,
			r.Level,
			r.Occupation,
			strconv.FormatFloat(r.Salary, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", r.Id, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
