package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkowalik/tabload/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print an aggregate salary report",
	Long: `Report runs one of the fixed aggregate summaries over the target table
and prints it as a table.

Kinds:
  department        - headcount and salary stats per department, biggest payroll first
  level             - headcount and salary stats per level, highest average first
  department-level  - headcount and average per (department, level) pair
  bands             - the four fixed salary bands, lowest first
  occupation        - headcount and salary stats per occupation, highest average first

Examples:
  tabload report --kind department
  tabload report --kind bands --config etl/prod.yaml`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var reportKind string

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportKind, "kind", "k", "department",
		"Report to run: department|level|department-level|bands|occupation")
}

func runReport(cmd *cobra.Command, _ []string) error {
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

	svc := report.New(handle, target.Table, logger)

	var out string
	switch reportKind {
	case "department":
		metrics, reportErr := svc.ByDepartment(ctx)
		if reportErr != nil {
			return reportErr
		}
		out = report.RenderDepartments(metrics)
	case "level":
		metrics, reportErr := svc.ByLevel(ctx)
		if reportErr != nil {
			return reportErr
		}
		out = report.RenderLevels(metrics)
	case "department-level":
		metrics, reportErr := svc.ByDepartmentLevel(ctx)
		if reportErr != nil {
			return reportErr
		}
		out = report.RenderDepartmentLevels(metrics)
	case "bands":
		metrics, reportErr := svc.SalaryBands(ctx)
		if reportErr != nil {
			return reportErr
		}
		out = report.RenderBands(metrics)
	case "occupation":
		metrics, reportErr := svc.ByOccupation(ctx)
		if reportErr != nil {
			return reportErr
		}
		out = report.RenderOccupations(metrics)
	default:
		return fmt.Errorf("unknown report kind %q (expected department|level|department-level|bands|occupation)", reportKind)
	}

	fmt.Print(out)
	return nil
}
