// Package sink persists a RowSet into the relational target.
//
// Writes are mode-aware (append vs. replace), batched, and followed by
// idempotent index provisioning on the embedded backend. The load is NOT
// transactionally atomic across batches: a failure mid-load leaves whatever
// the backend kept, and a crash between the last insert and index creation
// leaves indexes missing with data intact. Both are accepted, documented
// limits rather than silent behavior.
package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rkowalik/tabload/internal/db"
	"github.com/rkowalik/tabload/pkg/tabload"
)

// Sink writes RowSets through an open database handle.
type Sink struct {
	handle *sql.DB
	logger tabload.Logger
}

// New creates a Sink over an already-open handle. The Sink does not own the
// handle and never closes it.
func New(handle *sql.DB, logger tabload.Logger) *Sink {
	return &Sink{handle: handle, logger: logger}
}

// Load persists rows into the target table.
//
// Mode semantics: replace makes the table content equal exactly to rows
// (the table is dropped and recreated first); append leaves prior rows
// intact. Any other mode is rejected with tabload.ErrUnsupportedMode before
// anything is written.
//
// Rows are inserted in sequential batches of target.BatchSize. Each batch is
// one transaction around a prepared single-row insert, so the full RowSet is
// persisted exactly once, in input order, whatever the batch size. Backend
// rejections wrap tabload.ErrSinkWrite with the backend's diagnostic.
func (s *Sink) Load(ctx context.Context, rows tabload.RowSet, target *tabload.TargetDescriptor) error {
	switch target.Mode {
	case tabload.ModeAppend, tabload.ModeReplace:
	default:
		return fmt.Errorf("load %s: %w: %q", target.Table, tabload.ErrUnsupportedMode, target.Mode)
	}

	batchSize := target.BatchSize
	if batchSize <= 0 {
		batchSize = tabload.DefaultBatchSize
	}

	runID := uuid.NewString()
	s.logger.Info("load run %s: %d rows into %s.%s (mode=%s, batch_size=%d)",
		runID, len(rows), target.Kind, target.Table, target.Mode, batchSize)

	if err := s.provisionTable(ctx, target); err != nil {
		return err
	}

	for offset := 0; offset < len(rows); offset += batchSize {
		end := offset + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := s.insertBatch(ctx, target.Table, rows[offset:end]); err != nil {
			return fmt.Errorf("load %s rows %d-%d: %w", target.Table, offset, end-1, err)
		}
		s.logger.Verbose("load run %s: inserted rows %d-%d", runID, offset, end-1)
	}

	if target.Embedded() {
		if err := s.provisionIndexes(ctx, target.Table); err != nil {
			return err
		}
	}

	s.logger.Info("load run %s: done, %d rows persisted", runID, len(rows))
	return nil
}

// provisionTable creates the target table from the declared schema.
// Replace mode drops it first so post-load content equals the loaded rows.
func (s *Sink) provisionTable(ctx context.Context, target *tabload.TargetDescriptor) error {
	table := db.QuoteIdentifier(target.Table)

	if target.Mode == tabload.ModeReplace {
		if _, err := s.handle.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w: %v", target.Table, tabload.ErrSinkWrite, err)
		}
	}

	defs := make([]string, 0, len(tabload.Columns()))
	for _, col := range tabload.Columns() {
		typ, _ := tabload.ColumnType(col)
		defs = append(defs, col+" "+typ)
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))

	if _, err := s.handle.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s: %w: %v", target.Table, tabload.ErrSinkWrite, err)
	}
	return nil
}

// insertBatch writes one batch inside a transaction with a prepared
// statement. Per-row binds keep the statement size independent of batch
// size, so driver parameter limits never constrain the batch knob.
func (s *Sink) insertBatch(ctx context.Context, table string, batch tabload.RowSet) error {
	tx, err := s.handle.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", tabload.ErrSinkWrite, err)
	}
	defer tx.Rollback() // No-op once committed.

	cols := tabload.Columns()
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		db.QuoteIdentifier(table), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %v", tabload.ErrSinkWrite, err)
	}
	defer stmt.Close()

	for i, row := range batch {
		if _, err := stmt.ExecContext(ctx,
			row.Id, row.Name, row.Age, row.City,
			row.Department, row.Level, row.Occupation, row.Salary,
		); err != nil {
			return fmt.Errorf("%w: insert row %d (id=%d): %v", tabload.ErrSinkWrite, i, row.Id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", tabload.ErrSinkWrite, err)
	}
	return nil
}

// provisionIndexes creates the standard lookup indexes on the embedded
// backend. CREATE INDEX IF NOT EXISTS keeps repeated loads from failing on
// index collision. Networked backends are index-managed externally.
func (s *Sink) provisionIndexes(ctx context.Context, table string) error {
	for _, col := range tabload.IndexColumns {
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			db.QuoteIdentifier("idx_"+table+"_"+col), db.QuoteIdentifier(table), col)
		if _, err := s.handle.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("index %s.%s: %w: %v", table, col, tabload.ErrSinkWrite, err)
		}
	}
	return nil
}
