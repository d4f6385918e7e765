package sink

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkowalik/tabload/internal/logging"
	"github.com/rkowalik/tabload/pkg/tabload"
)

func openDuckDB(t *testing.T) *sql.DB {
	t.Helper()
	handle, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { handle.Close() })
	return handle
}

func embeddedTarget(mode tabload.LoadMode, batchSize int) *tabload.TargetDescriptor {
	return &tabload.TargetDescriptor{
		Kind:      tabload.BackendDuckDB,
		Table:     "employees",
		Mode:      mode,
		BatchSize: batchSize,
	}
}

func sampleRows(n int) tabload.RowSet {
	rows := make(tabload.RowSet, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, tabload.Record{
			Id: int64(i + 1), Name: "Emp", Age: 30, City: "Boston",
			Department: "Engineering", Level: "Senior",
			Occupation: "Software Engineer", Salary: 90000,
		})
	}
	return rows
}

// readIDs returns the ids currently persisted, in insertion order.
func readIDs(t *testing.T, handle *sql.DB) []int64 {
	t.Helper()
	rows, err := handle.QueryContext(context.Background(), "SELECT id FROM employees")
	require.NoError(t, err)
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	return ids
}

func TestLoad_AppendIntoEmptyTable(t *testing.T) {
	handle := openDuckDB(t)
	s := New(handle, logging.NewNullLogger())

	rows := sampleRows(5)
	require.NoError(t, s.Load(context.Background(), rows, embeddedTarget(tabload.ModeAppend, 0)))

	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5}, readIDs(t, handle))
}

func TestLoad_AppendPreservesPriorRows(t *testing.T) {
	handle := openDuckDB(t)
	s := New(handle, logging.NewNullLogger())
	ctx := context.Background()

	require.NoError(t, s.Load(ctx, sampleRows(3), embeddedTarget(tabload.ModeAppend, 0)))
	require.NoError(t, s.Load(ctx, sampleRows(3), embeddedTarget(tabload.ModeAppend, 0)))

	ids := readIDs(t, handle)
	assert.Len(t, ids, 6)
}

func TestLoad_ReplaceDiscardsPriorRows(t *testing.T) {
	handle := openDuckDB(t)
	s := New(handle, logging.NewNullLogger())
	ctx := context.Background()

	require.NoError(t, s.Load(ctx, sampleRows(5), embeddedTarget(tabload.ModeAppend, 0)))

	replacement := tabload.RowSet{
		{Id: 100, Name: "Only", Age: 40, City: "Denver",
			Department: "Sales", Level: "Lead", Occupation: "Account Manager", Salary: 70000},
	}
	require.NoError(t, s.Load(ctx, replacement, embeddedTarget(tabload.ModeReplace, 0)))

	assert.Equal(t, []int64{100}, readIDs(t, handle))
}

func TestLoad_BatchSizeNeverChangesResult(t *testing.T) {
	rows := sampleRows(7)

	for _, batchSize := range []int{1, 2, 3, 7, 100} {
		handle := openDuckDB(t)
		s := New(handle, logging.NewNullLogger())

		require.NoError(t, s.Load(context.Background(), rows, embeddedTarget(tabload.ModeReplace, batchSize)))

		ids := readIDs(t, handle)
		sorted := append([]int64(nil), ids...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, sorted, "batch size %d", batchSize)
	}
}

func TestLoad_PreservesInputOrder(t *testing.T) {
	handle := openDuckDB(t)
	s := New(handle, logging.NewNullLogger())

	rows := tabload.RowSet{
		{Id: 9, Name: "C", Age: 1, City: "X", Department: "D", Level: "L", Occupation: "O", Salary: 1},
		{Id: 4, Name: "A", Age: 1, City: "X", Department: "D", Level: "L", Occupation: "O", Salary: 1},
		{Id: 7, Name: "B", Age: 1, City: "X", Department: "D", Level: "L", Occupation: "O", Salary: 1},
	}
	require.NoError(t, s.Load(context.Background(), rows, embeddedTarget(tabload.ModeAppend, 2)))

	assert.Equal(t, []int64{9, 4, 7}, readIDs(t, handle))
}

func TestLoad_RejectsUnsupportedMode(t *testing.T) {
	handle := openDuckDB(t)
	s := New(handle, logging.NewNullLogger())

	for _, mode := range []tabload.LoadMode{"overwrite", "upsert", "", "APPEND"} {
		err := s.Load(context.Background(), sampleRows(1), embeddedTarget(mode, 0))
		require.Error(t, err, "mode %q", mode)
		assert.True(t, errors.Is(err, tabload.ErrUnsupportedMode), "mode %q: %v", mode, err)
	}

	// Nothing may have been written.
	var count int
	err := handle.QueryRow("SELECT count(*) FROM employees").Scan(&count)
	assert.Error(t, err, "table must not exist after rejected modes")
}

func TestLoad_IdempotentIndexProvisioning(t *testing.T) {
	handle := openDuckDB(t)
	s := New(handle, logging.NewNullLogger())
	ctx := context.Background()

	// Two loads in a row must not fail on index collision.
	require.NoError(t, s.Load(ctx, sampleRows(2), embeddedTarget(tabload.ModeAppend, 0)))
	require.NoError(t, s.Load(ctx, sampleRows(2), embeddedTarget(tabload.ModeAppend, 0)))

	var indexCount int
	require.NoError(t, handle.QueryRow(
		"SELECT count(*) FROM duckdb_indexes() WHERE table_name = 'employees'").Scan(&indexCount))
	assert.Equal(t, len(tabload.IndexColumns), indexCount)
}

func TestLoad_EmptyRowSet(t *testing.T) {
	handle := openDuckDB(t)
	s := New(handle, logging.NewNullLogger())

	require.NoError(t, s.Load(context.Background(), tabload.RowSet{}, embeddedTarget(tabload.ModeReplace, 0)))
	assert.Empty(t, readIDs(t, handle))
}

func TestLoad_SurfacesBackendRejection(t *testing.T) {
	handle := openDuckDB(t)
	s := New(handle, logging.NewNullLogger())
	handle.Close()

	err := s.Load(context.Background(), sampleRows(1), embeddedTarget(tabload.ModeAppend, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrSinkWrite), "got: %v", err)
}
