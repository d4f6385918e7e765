package tabload

// The employees schema is declared explicitly rather than inferred from the
// source file. The column set doubles as the identifier allow-list consulted
// by the query compiler and the sink: identifiers cannot be bind parameters,
// so any column name embedded into SQL must first pass IsColumn.

// Column names in canonical (source file) order.
const (
	ColID         = "id"
	ColName       = "name"
	ColAge        = "age"
	ColCity       = "city"
	ColDepartment = "department"
	ColLevel      = "level"
	ColOccupation = "occupation"
	ColSalary     = "salary"
)

var schemaColumns = []string{
	ColID, ColName, ColAge, ColCity, ColDepartment, ColLevel, ColOccupation, ColSalary,
}

// columnTypes maps each column to its declared SQL type. The types are the
// common subset understood by both supported backends.
var columnTypes = map[string]string{
	ColID:         "BIGINT",
	ColName:       "VARCHAR",
	ColAge:        "INTEGER",
	ColCity:       "VARCHAR",
	ColDepartment: "VARCHAR",
	ColLevel:      "VARCHAR",
	ColOccupation: "VARCHAR",
	ColSalary:     "DOUBLE PRECISION",
}

// Columns returns the schema's column names in canonical order.
// The returned slice is a copy; callers may mutate it freely.
func Columns() []string {
	out := make([]string, len(schemaColumns))
	copy(out, schemaColumns)
	return out
}

// IsColumn reports whether name is a known employees column. This is the
// allow-list check applied before any identifier is embedded into SQL.
func IsColumn(name string) bool {
	_, ok := columnTypes[name]
	return ok
}

// ColumnType returns the declared SQL type for a known column and ok=false
// for anything else.
func ColumnType(name string) (string, bool) {
	typ, ok := columnTypes[name]
	return typ, ok
}
