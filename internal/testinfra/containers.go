// Package testinfra starts throwaway Postgres containers for integration
// tests and skips gracefully when Docker is not available.
package testinfra

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rkowalik/tabload/internal/db"
	"github.com/rkowalik/tabload/pkg/tabload"
)

const (
	PostgresImage    = "postgres:17-alpine"
	PostgresUser     = "postgres"
	PostgresPassword = "postgres"
	PostgresDB       = "postgres"
)

type PostgresContainer struct {
	*postgres.PostgresContainer
	Host string
	Port int
}

// StartPostgres runs a disposable Postgres container and resolves the
// mapped host and port. The caller owns termination.
func StartPostgres(ctx context.Context) (pc *PostgresContainer, err error) {
	// testcontainers panics (rather than returning an error) when no Docker
	// host can be found; convert that into an error so callers can skip.
	defer func() {
		if r := recover(); r != nil {
			pc = nil
			err = fmt.Errorf("start postgres: %v", r)
		}
	}()

	ctr, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("resolve container host: %w", err)
	}
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("resolve container port: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, Host: host, Port: port.Int()}, nil
}

var (
	containerOnce sync.Once
	containerHost string
	containerPort int
	containerErr  error
)

func getOrStartContainer() (string, int, error) {
	containerOnce.Do(func() {
		ctr, err := StartPostgres(context.Background())
		if err != nil {
			containerErr = err
			return
		}
		containerHost = ctr.Host
		containerPort = ctr.Port
	})
	return containerHost, containerPort, containerErr
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequirePostgres returns a networked target descriptor backed by a real
// Postgres, with DB_USER and DB_PASSWORD set for the test's duration.
// Priority: TABLOAD_TEST_HOST/TABLOAD_TEST_PORT env vars > auto-started
// container > skip test.
func RequirePostgres(t *testing.T, table string) *tabload.TargetDescriptor {
	t.Helper()
	SkipIfShort(t)

	host := os.Getenv("TABLOAD_TEST_HOST")
	port := 0
	if host != "" {
		port, _ = strconv.Atoi(os.Getenv("TABLOAD_TEST_PORT"))
		if port == 0 {
			port = tabload.DefaultPostgresPort
		}
	} else {
		var err error
		host, port, err = getOrStartContainer()
		if err != nil {
			t.Skipf("TABLOAD_TEST_HOST not set and Docker unavailable: %v", err)
		}
	}

	t.Setenv(db.EnvDBUser, PostgresUser)
	t.Setenv(db.EnvDBPassword, PostgresPassword)

	return &tabload.TargetDescriptor{
		Kind:     tabload.BackendPostgres,
		Table:    table,
		Mode:     tabload.ModeReplace,
		Host:     host,
		Port:     port,
		Database: PostgresDB,
		Auth:     tabload.AuthPassword,
	}
}
