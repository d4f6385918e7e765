// Package source reads a delimited text file into an in-memory RowSet with
// typed columns. The whole file is materialized at once: peak memory is
// proportional to file size, which is an accepted limit of the pipeline.
package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rkowalik/tabload/pkg/tabload"
)

// Reader parses delimited files against the employees schema.
type Reader struct {
	delimiter rune
	header    bool
}

// NewReader creates a Reader. delimiter is the field separator; header
// controls whether the first row names the columns. Without a header the
// columns are taken in canonical schema order.
func NewReader(delimiter rune, header bool) *Reader {
	return &Reader{delimiter: delimiter, header: header}
}

// Read parses the file at path into a RowSet. All failures (missing file,
// malformed rows, type mismatches, header/schema mismatch) wrap
// tabload.ErrSourceRead and carry the file path and line number.
func (r *Reader) Read(path string) (tabload.RowSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", path, tabload.ErrSourceRead, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = r.delimiter
	cr.FieldsPerRecord = len(tabload.Columns())

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w: %v", path, tabload.ErrSourceRead, err)
	}
	if len(records) == 0 {
		if r.header {
			return nil, fmt.Errorf("parse %s: %w: file is empty", path, tabload.ErrSourceRead)
		}
		return tabload.RowSet{}, nil
	}

	colIndex, dataStart, err := r.columnIndex(path, records[0])
	if err != nil {
		return nil, err
	}

	rows := make(tabload.RowSet, 0, len(records)-dataStart)
	for i, rec := range records[dataStart:] {
		line := i + dataStart + 1
		row, err := parseRecord(rec, colIndex)
		if err != nil {
			return nil, fmt.Errorf("parse %s line %d: %w: %v", path, line, tabload.ErrSourceRead, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columnIndex maps each schema column to its field position. With a header
// the positions come from the header row, which must name every schema
// column exactly once; without one, canonical order applies.
func (r *Reader) columnIndex(path string, first []string) (map[string]int, int, error) {
	cols := tabload.Columns()
	index := make(map[string]int, len(cols))

	if !r.header {
		for i, col := range cols {
			index[col] = i
		}
		return index, 0, nil
	}

	for i, name := range first {
		name = strings.TrimSpace(name)
		if !tabload.IsColumn(name) {
			return nil, 0, fmt.Errorf("parse %s: %w: header column %q is not in the employees schema",
				path, tabload.ErrSourceRead, name)
		}
		if _, dup := index[name]; dup {
			return nil, 0, fmt.Errorf("parse %s: %w: duplicate header column %q",
				path, tabload.ErrSourceRead, name)
		}
		index[name] = i
	}
	if len(index) != len(cols) {
		return nil, 0, fmt.Errorf("parse %s: %w: header has %d schema columns, want %d",
			path, tabload.ErrSourceRead, len(index), len(cols))
	}
	return index, 1, nil
}

func parseRecord(rec []string, index map[string]int) (tabload.Record, error) {
	var row tabload.Record
	var err error

	field := func(col string) string {
		return strings.TrimSpace(rec[index[col]])
	}

	if row.Id, err = strconv.ParseInt(field(tabload.ColID), 10, 64); err != nil {
		return row, fmt.Errorf("column id: %q is not an integer", field(tabload.ColID))
	}
	if row.Age, err = strconv.Atoi(field(tabload.ColAge)); err != nil {
		return row, fmt.Errorf("column age: %q is not an integer", field(tabload.ColAge))
	}
	if row.Salary, err = strconv.ParseFloat(field(tabload.ColSalary), 64); err != nil {
		return row, fmt.Errorf("column salary: %q is not numeric", field(tabload.ColSalary))
	}

	row.Name = field(tabload.ColName)
	row.City = field(tabload.ColCity)
	row.Department = field(tabload.ColDepartment)
	row.Level = field(tabload.ColLevel)
	row.Occupation = field(tabload.ColOccupation)
	return row, nil
}
