package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rkowalik/tabload/internal/retrieval"
	"github.com/rkowalik/tabload/pkg/tabload"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a criteria query against the loaded table",
	Long: `Query looks up rows in the target table by column conditions.

Conditions combine with AND. Column names are validated against the fixed
schema before anything reaches the backend; values are always bound as
parameters, never spliced into the statement.

Examples:
  # Everyone in Engineering, highest salary first
  tabload query --where department=Engineering --sort salary --desc

  # Senior people in two cities
  tabload query --where level=Senior --in city=Boston,Denver

  # Convenience lookups
  tabload query --above-salary 100000
  tabload query --cities Boston,Denver`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

type queryFlagValues struct {
	where       []string
	in          []string
	sort        string
	desc        bool
	aboveSalary float64
	cities      []string
}

var queryFlags queryFlagValues

func init() {
	rootCmd.AddCommand(queryCmd)

	// StringArray, not StringSlice: slice flags split their value on
	// commas, which would break "--in city=Boston,Denver" apart before
	// parseCriteria ever sees it. The comma split belongs to parseCriteria.
	queryCmd.Flags().StringArrayVar(&queryFlags.where, "where", nil,
		"Equality condition as column=value (can be specified multiple times)")
	queryCmd.Flags().StringArrayVar(&queryFlags.in, "in", nil,
		"Membership condition as column=v1,v2 (can be specified multiple times)")
	queryCmd.Flags().StringVar(&queryFlags.sort, "sort", "",
		"Column to order the result by")
	queryCmd.Flags().BoolVar(&queryFlags.desc, "desc", false,
		"Sort descending (only meaningful with --sort)")
	queryCmd.Flags().Float64Var(&queryFlags.aboveSalary, "above-salary", 0,
		"Return employees earning strictly more than this amount, highest first")
	queryCmd.Flags().StringSliceVar(&queryFlags.cities, "cities", nil,
		"Return employees from these cities, grouped by city, highest salary first")

	queryCmd.MarkFlagsMutuallyExclusive("above-salary", "where")
	queryCmd.MarkFlagsMutuallyExclusive("above-salary", "in")
	queryCmd.MarkFlagsMutuallyExclusive("above-salary", "sort")
	queryCmd.MarkFlagsMutuallyExclusive("cities", "where")
	queryCmd.MarkFlagsMutuallyExclusive("cities", "in")
	queryCmd.MarkFlagsMutuallyExclusive("cities", "sort")
	queryCmd.MarkFlagsMutuallyExclusive("above-salary", "cities")
}

func runQuery(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cmd)
	ctx, stop := signalContext()
	defer stop()

	_, target, err := loadProject(getConfigFlag(cmd), logger)
	if err != nil {
		return err
	}

	handle, err := openTarget(ctx, target, logger)
	if err != nil {
		return err
	}
	defer handle.Close()

	svc := retrieval.New(handle, target.Table, logger)

	var rows tabload.RowSet
	switch {
	case cmd.Flags().Changed("above-salary"):
		rows, err = svc.AboveSalary(ctx, queryFlags.aboveSalary)
	case len(queryFlags.cities) > 0:
		rows, err = svc.ByCities(ctx, queryFlags.cities)
	default:
		criteria, parseErr := parseCriteria(queryFlags.where, queryFlags.in)
		if parseErr != nil {
			return parseErr
		}
		rows, err = svc.Query(ctx, criteria, sortSpecFromFlags())
	}
	if err != nil {
		return err
	}

	fmt.Print(renderRows(rows))
	printRowCount(len(rows))
	return nil
}

func sortSpecFromFlags() *tabload.SortSpec {
	if queryFlags.sort == "" {
		return nil
	}
	direction := tabload.SortAscending
	if queryFlags.desc {
		direction = tabload.SortDescending
	}
	return &tabload.SortSpec{Column: queryFlags.sort, Direction: direction}
}

var (
	rowHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	rowCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderRows(rows tabload.RowSet) string {
	if len(rows) == 0 {
		return ""
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			strconv.FormatInt(r.Id, 10), r.Name, strconv.Itoa(r.Age),
			r.City, r.Department, r.Level, r.Occupation,
			fmt.Sprintf("%.2f", r.Salary),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return rowHeaderStyle
			}
			return rowCellStyle
		}).
		Headers("ID", "Name", "Age", "City", "Department", "Level", "Occupation", "Salary").
		Rows(data...)

	return t.Render() + "\n"
}
