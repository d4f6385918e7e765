package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rkowalik/tabload/internal/config"
	"github.com/rkowalik/tabload/internal/db"
	"github.com/rkowalik/tabload/pkg/tabload"
)

// signalContext returns a context cancelled by Ctrl+C or SIGTERM so a long
// load or query stops instead of leaving the process hanging.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadProject reads the configuration file named by --config, validates it,
// and resolves the target descriptor. A .env file next to the working
// directory is honored so DB_USER and DB_PASSWORD can live outside the
// shell profile.
func loadProject(path string, logger tabload.Logger) (*config.ProjectConfig, *tabload.TargetDescriptor, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	target := cfg.Descriptor()
	logger.Verbose("configuration %s: backend=%s table=%s mode=%s", path, target.Kind, target.Table, target.Mode)
	return cfg, target, nil
}

// openTarget opens a handle to the configured backend. Open logs the
// redacted connection URL itself, so credentials are resolved exactly once.
func openTarget(ctx context.Context, target *tabload.TargetDescriptor, logger tabload.Logger) (*sql.DB, error) {
	return db.Open(ctx, target, logger)
}

func printRowCount(n int) {
	fmt.Printf("%d row(s)\n", n)
}
