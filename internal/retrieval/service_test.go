package retrieval

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkowalik/tabload/internal/logging"
	"github.com/rkowalik/tabload/internal/sink"
	"github.com/rkowalik/tabload/pkg/tabload"
)

var fixture = tabload.RowSet{
	{Id: 1, Name: "Ada", Age: 34, City: "Boston", Department: "Engineering", Level: "Senior", Occupation: "Software Engineer", Salary: 120000},
	{Id: 2, Name: "Ben", Age: 28, City: "Denver", Department: "Engineering", Level: "Junior", Occupation: "DevOps Engineer", Salary: 90000},
	{Id: 3, Name: "Cara", Age: 45, City: "Boston", Department: "Sales", Level: "Lead", Occupation: "Sales Director", Salary: 95000},
	{Id: 4, Name: "Dan", Age: 39, City: "Austin", Department: "Sales", Level: "Senior", Occupation: "Account Manager", Salary: 80000},
	{Id: 5, Name: "Eve", Age: 31, City: "Denver", Department: "Engineering", Level: "Senior", Occupation: "System Architect", Salary: 110000},
}

func newService(t *testing.T) *Service {
	t.Helper()

	handle, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { handle.Close() })

	target := &tabload.TargetDescriptor{
		Kind: tabload.BackendDuckDB, Table: "employees", Mode: tabload.ModeReplace,
	}
	require.NoError(t, sink.New(handle, logging.NewNullLogger()).Load(context.Background(), fixture, target))

	return New(handle, "employees", logging.NewNullLogger())
}

func ids(rows tabload.RowSet) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.Id
	}
	return out
}

func TestQuery_NoCriteriaReturnsEverything(t *testing.T) {
	svc := newService(t)

	rows, err := svc.Query(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5}, ids(rows))
}

func TestQuery_EqualityCriteria(t *testing.T) {
	svc := newService(t)

	rows, err := svc.Query(context.Background(), tabload.Criteria{"department": "Engineering"}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 5}, ids(rows))

	// Exactness: no row outside the criteria sneaks in.
	for _, r := range rows {
		assert.Equal(t, "Engineering", r.Department)
	}
}

func TestQuery_MultipleEqualityCriteriaAreConjunctive(t *testing.T) {
	svc := newService(t)

	rows, err := svc.Query(context.Background(),
		tabload.Criteria{"department": "Engineering", "level": "Senior"}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 5}, ids(rows))
}

func TestQuery_MembershipCompleteness(t *testing.T) {
	svc := newService(t)

	cities := []string{"Boston", "Austin", "Nowhere"}
	rows, err := svc.Query(context.Background(), tabload.Criteria{"city": cities}, nil)
	require.NoError(t, err)

	// Every returned city is in the requested set, and every requested city
	// present in the table is represented.
	seen := map[string]bool{}
	for _, r := range rows {
		assert.Contains(t, cities, r.City)
		seen[r.City] = true
	}
	assert.True(t, seen["Boston"])
	assert.True(t, seen["Austin"])
	assert.False(t, seen["Nowhere"])
}

func TestQuery_SortByDepartmentThenSalaryScenario(t *testing.T) {
	svc := newService(t)

	rows, err := svc.Query(context.Background(),
		tabload.Criteria{"department": "Engineering"},
		&tabload.SortSpec{Column: "salary", Direction: tabload.SortDescending})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 5, 2}, ids(rows))
}

func TestQuery_AscendingAndDescendingAreReverses(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	asc, err := svc.Query(ctx, nil, &tabload.SortSpec{Column: "salary", Direction: tabload.SortAscending})
	require.NoError(t, err)
	desc, err := svc.Query(ctx, nil, &tabload.SortSpec{Column: "salary", Direction: tabload.SortDescending})
	require.NoError(t, err)

	require.Len(t, asc, len(fixture))
	require.Len(t, desc, len(fixture))
	for i := range asc {
		assert.Equal(t, asc[i].Id, desc[len(desc)-1-i].Id)
	}
}

func TestQuery_UnknownColumnFailsBeforeExecution(t *testing.T) {
	svc := newService(t)

	_, err := svc.Query(context.Background(), tabload.Criteria{"payroll": 1}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrUnknownColumn))

	_, err = svc.Query(context.Background(), nil, &tabload.SortSpec{Column: "payroll"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrUnknownColumn))
}

func TestAboveSalary_StrictThreshold(t *testing.T) {
	svc := newService(t)

	rows, err := svc.AboveSalary(context.Background(), 95000)
	require.NoError(t, err)

	// 95000 itself is excluded: the comparison is strictly greater.
	assert.Equal(t, []int64{1, 5}, ids(rows))
}

func TestAboveSalary_ConsistentWithGeneralPath(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	convenience, err := svc.AboveSalary(ctx, 0)
	require.NoError(t, err)
	general, err := svc.Query(ctx, nil, &tabload.SortSpec{Column: "salary", Direction: tabload.SortDescending})
	require.NoError(t, err)

	assert.Equal(t, ids(general), ids(convenience))
}

func TestByCities(t *testing.T) {
	svc := newService(t)

	rows, err := svc.ByCities(context.Background(), []string{"Denver", "Boston"})
	require.NoError(t, err)

	// Ordered by city, then salary descending within the city.
	assert.Equal(t, []int64{1, 3, 5, 2}, ids(rows))
}

func TestByCities_ConsistentWithGeneralPath(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	convenience, err := svc.ByCities(ctx, []string{"Denver"})
	require.NoError(t, err)
	general, err := svc.Query(ctx, tabload.Criteria{"city": []string{"Denver"}}, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, ids(general), ids(convenience))
}

func TestByCities_EmptyListRejected(t *testing.T) {
	svc := newService(t)

	_, err := svc.ByCities(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabload.ErrEmptyCriteriaValue))
}
