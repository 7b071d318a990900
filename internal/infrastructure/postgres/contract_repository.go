package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implementación de ContractRepository sobre PostgreSQL (usable con pool o tx).
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador de contratos. Pasar pool o tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

const contractColumns = `id, user_id, start_date, end_date, status, contract_type, file_url, created_at, updated_at`

func scanContract(row pgx.Row) (*entity.Contract, error) {
	var c entity.Contract
	err := row.Scan(
		&c.ID, &c.UserID, &c.StartDate, &c.EndDate, &c.Status, &c.ContractType, &c.FileURL,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un contrato.
func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.UserID, c.StartDate, c.EndDate, c.Status, c.ContractType, c.FileURL, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return translate("insert contract", err)
	}
	return nil
}

// GetByID obtiene un contrato por ID.
func (r *ContractRepo) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	return r.findOne(ctx, "get contract", `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el contrato y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene efecto dentro de una transacción (TxRunner.RunStaffing).
func (r *ContractRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Contract, error) {
	return r.findOne(ctx, "get contract for update",
		`SELECT `+contractColumns+` FROM contracts WHERE id = $1 FOR UPDATE`, id)
}

func (r *ContractRepo) findOne(ctx context.Context, op, query string, args ...any) (*entity.Contract, error) {
	c, err := scanContract(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// List devuelve todos los contratos, los más recientes primero.
func (r *ContractRepo) List(ctx context.Context) ([]*entity.Contract, error) {
	return r.list(ctx, `SELECT `+contractColumns+` FROM contracts ORDER BY created_at DESC`)
}

// ListByUser devuelve los contratos de un usuario.
func (r *ContractRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Contract, error) {
	return r.list(ctx, `SELECT `+contractColumns+` FROM contracts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *ContractRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Contract, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza fechas, estado, tipo y archivo.
func (r *ContractRepo) Update(ctx context.Context, c *entity.Contract) error {
	query := `
		UPDATE contracts SET start_date = $2, end_date = $3, status = $4, contract_type = $5,
			file_url = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.StartDate, c.EndDate, c.Status, c.ContractType, c.FileURL, c.UpdatedAt,
	)
	if err != nil {
		return translate("update contract", err)
	}
	return nil
}

// Delete elimina el contrato y, por FK, sus asignaciones.
func (r *ContractRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	return nil
}
