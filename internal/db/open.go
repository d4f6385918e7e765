package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"      // networked backend driver
	_ "github.com/marcboeker/go-duckdb/v2" // embedded backend driver

	"github.com/rkowalik/tabload/pkg/tabload"
)

// Open establishes a database handle for the target and verifies it with a
// ping, so connection problems surface here rather than on the first query.
//
// One Open per logical operation is the intended usage: the CLI opens a
// handle, runs a load or a set of queries, and closes it. The handle is not
// shared across concurrent callers; callers needing concurrent writes to the
// same table must serialize them externally.
func Open(ctx context.Context, target *tabload.TargetDescriptor, logger tabload.Logger) (*sql.DB, error) {
	var (
		handle *sql.DB
		err    error
	)

	if target.Embedded() {
		logger.Verbose("connecting to %s", BuildURL(target, nil))
		handle, err = sql.Open("duckdb", target.Path)
	} else {
		// Credentials are resolved exactly once per open; for aws_iam
		// targets resolution mints an RDS IAM token, so no code path may
		// resolve a second time just for logging.
		var creds *Credentials
		creds, err = ResolveCredentials(ctx, target)
		if err != nil {
			return nil, err
		}
		logger.Verbose("connecting to %s", Redacted(target, creds))
		handle, err = sql.Open("pgx", BuildURL(target, creds))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w: %v", target.Kind, tabload.ErrConnectionFailed, err)
	}

	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("ping %s backend: %w: %v", target.Kind, tabload.ErrConnectionFailed, err)
	}
	return handle, nil
}

// QuoteIdentifier wraps an identifier in double quotes, doubling any
// embedded quotes. The table name comes from configuration rather than the
// schema allow-list, so it must always be quoted before entering SQL.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
