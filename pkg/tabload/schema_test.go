package tabload_test

import (
	"testing"

	"github.com/rkowalik/tabload/pkg/tabload"
)

func TestColumns_CanonicalOrder(t *testing.T) {
	want := []string{"id", "name", "age", "city", "department", "level", "occupation", "salary"}
	got := tabload.Columns()

	if len(got) != len(want) {
		t.Fatalf("Columns() returned %d columns, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestColumns_ReturnsCopy(t *testing.T) {
	first := tabload.Columns()
	first[0] = "mutated"

	if tabload.Columns()[0] != "id" {
		t.Error("mutating the returned slice changed the schema")
	}
}

func TestIsColumn(t *testing.T) {
	for _, col := range tabload.Columns() {
		if !tabload.IsColumn(col) {
			t.Errorf("IsColumn(%q) = false, want true", col)
		}
	}

	for _, col := range []string{"", "Department", "salary; DROP TABLE employees", "payroll"} {
		if tabload.IsColumn(col) {
			t.Errorf("IsColumn(%q) = true, want false", col)
		}
	}
}

func TestColumnType(t *testing.T) {
	typ, ok := tabload.ColumnType("salary")
	if !ok || typ != "DOUBLE PRECISION" {
		t.Errorf("ColumnType(salary) = %q, %v", typ, ok)
	}

	if _, ok := tabload.ColumnType("payroll"); ok {
		t.Error("ColumnType(payroll) reported ok for unknown column")
	}
}
