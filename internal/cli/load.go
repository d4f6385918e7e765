package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkowalik/tabload/internal/perf"
	"github.com/rkowalik/tabload/internal/sink"
	"github.com/rkowalik/tabload/internal/source"
	"github.com/rkowalik/tabload/internal/ui"
	"github.com/rkowalik/tabload/pkg/tabload"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the configured source file into the target table",
	Long: `Load reads the delimited source file named in the configuration and
writes every row into the target table.

The load mode comes from the configuration:
  append   - add rows to whatever the table already holds
  replace  - drop the table first, then load from scratch

Rows are written in batches (batch_size in the configuration, default
10000). On the embedded backend, indexes on department, level and salary
are (re)created after a successful load.

A replace load asks for confirmation before dropping the table. Use
--force in pipelines to replace the prompt with a short countdown.

Examples:
  # Load using ./tabload.yaml
  tabload load

  # Replace without an interactive prompt
  tabload load --force

  # Load a different project
  tabload load --config etl/prod.yaml -v`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

var loadForce bool

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().BoolVar(&loadForce, "force", false,
		"Skip the interactive confirmation before a replace load")
}

func runLoad(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cmd)
	ctx, stop := signalContext()
	defer stop()

	cfg, target, err := loadProject(getConfigFlag(cmd), logger)
	if err != nil {
		return err
	}

	var rows tabload.RowSet
	err = perf.Measure(logger, "read "+cfg.Source.FilePath, func() error {
		var readErr error
		rows, readErr = source.NewReader(cfg.Delimiter(), cfg.Source.Header).Read(cfg.Source.FilePath)
		return readErr
	})
	if err != nil {
		return err
	}
	logger.Info("read %d row(s) from %s", len(rows), cfg.Source.FilePath)

	if target.Mode == tabload.ModeReplace {
		approver := ui.NewInteractiveApprover()
		if loadForce {
			approver = ui.NewForcedApprover()
		}
		approved, approveErr := approver.RequestApproval(ctx, target.Table)
		if approveErr != nil {
			return approveErr
		}
		if !approved {
			return fmt.Errorf("replace load of %q declined", target.Table)
		}
	}

	handle, err := openTarget(ctx, target, logger)
	if err != nil {
		return err
	}
	defer handle.Close()

	err = perf.Measure(logger, fmt.Sprintf("load %d row(s) into %s", len(rows), target.Table), func() error {
		return sink.New(handle, logger).Load(ctx, rows, target)
	})
	if err != nil {
		return err
	}

	fmt.Printf("loaded %d row(s) into %s (%s)\n", len(rows), target.Table, target.Mode)
	return nil
}
