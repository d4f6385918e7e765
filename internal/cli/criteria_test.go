package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkowalik/tabload/pkg/tabload"
)

func TestParseCriteria_Equality(t *testing.T) {
	criteria, err := parseCriteria([]string{"department=Engineering", "level=Senior"}, nil)
	require.NoError(t, err)

	assert.Equal(t, tabload.Criteria{
		"department": "Engineering",
		"level":      "Senior",
	}, criteria)
}

func TestParseCriteria_NumericCoercion(t *testing.T) {
	criteria, err := parseCriteria([]string{"age=30", "salary=95000.50", "id=7"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 30, criteria["age"])
	assert.Equal(t, 95000.50, criteria["salary"])
	assert.Equal(t, int64(7), criteria["id"])
}

func TestParseCriteria_Membership(t *testing.T) {
	criteria, err := parseCriteria(nil, []string{"city=Boston,Denver"})
	require.NoError(t, err)

	assert.Equal(t, []any{"Boston", "Denver"}, criteria["city"])
}

func TestParseCriteria_MembershipCoercion(t *testing.T) {
	criteria, err := parseCriteria(nil, []string{"age=25,30,35"})
	require.NoError(t, err)

	assert.Equal(t, []any{25, 30, 35}, criteria["age"])
}

func TestParseCriteria_ValueMayContainEquals(t *testing.T) {
	criteria, err := parseCriteria([]string{"name=a=b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a=b", criteria["name"])
}

func TestParseCriteria_Malformed(t *testing.T) {
	_, err := parseCriteria([]string{"department"}, nil)
	assert.Error(t, err)

	_, err = parseCriteria([]string{"=Engineering"}, nil)
	assert.Error(t, err)

	_, err = parseCriteria(nil, []string{"city"})
	assert.Error(t, err)

	_, err = parseCriteria([]string{"age=bananas"}, nil)
	assert.Error(t, err)
}

func TestParseCriteria_Empty(t *testing.T) {
	criteria, err := parseCriteria(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, criteria)
}

func TestMembershipFlagKeepsCommaList(t *testing.T) {
	// The documented invocation passes the whole list as one flag value.
	// It must reach parseCriteria intact; the comma split is parseCriteria's.
	queryFlags = queryFlagValues{}
	require.NoError(t, queryCmd.ParseFlags([]string{
		"--in", "city=Boston,Denver",
		"--where", "name=Smith, Jane",
	}))

	require.Equal(t, []string{"city=Boston,Denver"}, queryFlags.in)
	require.Equal(t, []string{"name=Smith, Jane"}, queryFlags.where)

	criteria, err := parseCriteria(queryFlags.where, queryFlags.in)
	require.NoError(t, err)
	assert.Equal(t, []any{"Boston", "Denver"}, criteria["city"])
	assert.Equal(t, "Smith, Jane", criteria["name"])

	queryFlags = queryFlagValues{}
}

func TestSortSpecFromFlags(t *testing.T) {
	queryFlags.sort = ""
	assert.Nil(t, sortSpecFromFlags())

	queryFlags.sort = "salary"
	queryFlags.desc = false
	spec := sortSpecFromFlags()
	require.NotNil(t, spec)
	assert.Equal(t, "salary", spec.Column)
	assert.Equal(t, tabload.SortAscending, spec.Direction)

	queryFlags.desc = true
	spec = sortSpecFromFlags()
	assert.Equal(t, tabload.SortDescending, spec.Direction)

	queryFlags.sort = ""
	queryFlags.desc = false
}
