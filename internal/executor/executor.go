// Package executor applies a plan against a live database connection
// inside one all-or-nothing transaction.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlview/internal/catalog"
	"github.com/leapstack-labs/sqlview/internal/plan"
)

// StepRecord is one executed step, reported in the order actually applied.
type StepRecord struct {
	Op   plan.Op
	Name string
	Kind catalog.Kind
}

// Executor runs plans. It holds exactly one open transaction at a time
// and never opens a second session concurrently.
type Executor struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an executor over an already-authenticated connection.
// If logger is nil, a discard logger is used.
func New(db *sql.DB, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{db: db, logger: logger}
}

// Apply executes every step of the plan, in order, inside a single
// transaction. The first failing step aborts and rolls back everything;
// on success the transaction commits once. Either the whole plan's effect
// is visible afterwards or the schema is unchanged. The returned records
// cover the steps that ran inside the committed transaction; on error the
// records reflect steps attempted before the rollback.
func (e *Executor) Apply(ctx context.Context, p *plan.Plan) ([]StepRecord, error) {
	if len(p.Steps) == 0 {
		return nil, nil
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	records := make([]StepRecord, 0, len(p.Steps))
	for i, step := range p.Steps {
		stmt := step.SQL()
		e.logger.Info("executing step",
			"op", step.Op.String(),
			"name", step.Def.Name,
			"kind", step.Def.Kind.String())
		e.logger.Debug("statement", "sql", stmt)

		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return records, &ExecutionError{
				Name:       step.Def.Name,
				Kind:       step.Def.Kind,
				Op:         step.Op,
				StepIndex:  i,
				SourceFile: step.Def.SourceFile,
				Span:       step.Def.Span,
				Statement:  stmt,
				Err:        err,
			}
		}
		records = append(records, StepRecord{
			Op:   step.Op,
			Name: step.Def.Name,
			Kind: step.Def.Kind,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit plan: %w", err)
	}
	return records, nil
}
