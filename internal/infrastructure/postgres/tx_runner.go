package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/portal-api/internal/application/hr"
	"github.com/jhoicas/portal-api/internal/domain/repository"
)

var _ hr.StaffingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunStaffing abre una transacción, entrega repos de contratos y asignaciones atados a ella
// y hace Commit si fn no falla. El bloqueo FOR UPDATE del contrato dura hasta el Commit.
func (r *TxRunner) RunStaffing(ctx context.Context, fn func(
	contracts repository.ContractRepository,
	assignments repository.AssignmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewContractRepository(tx), NewAssignmentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
