package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
	"github.com/jhoicas/portal-api/pkg/textnorm"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo implementación de PositionRepository sobre PostgreSQL.
// title_key guarda textnorm.Key(title) y lleva el índice único.
type PositionRepo struct {
	q Querier
}

// NewPositionRepository construye el adaptador de cargos.
func NewPositionRepository(q Querier) *PositionRepo {
	return &PositionRepo{q: q}
}

const positionColumns = `id, title, description, parent_position_id, "order", is_aggregate, x, y,
	is_active, created_at, updated_at`

func scanPosition(row pgx.Row) (*entity.Position, error) {
	var p entity.Position
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.ParentPositionID, &p.Order, &p.IsAggregate, &p.X, &p.Y,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un cargo.
func (r *PositionRepo) Create(ctx context.Context, p *entity.Position) error {
	query := `
		INSERT INTO positions (id, title, title_key, description, parent_position_id, "order",
			is_aggregate, x, y, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Title, textnorm.Key(p.Title), p.Description, p.ParentPositionID, p.Order,
		p.IsAggregate, p.X, p.Y, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return translate("insert position", err)
	}
	return nil
}

// GetByID obtiene un cargo por ID.
func (r *PositionRepo) GetByID(ctx context.Context, id string) (*entity.Position, error) {
	return r.findOne(ctx, "get position by id", `SELECT `+positionColumns+` FROM positions WHERE id = $1`, id)
}

// GetByTitle busca por la clave normalizada del título.
func (r *PositionRepo) GetByTitle(ctx context.Context, title string) (*entity.Position, error) {
	return r.findOne(ctx, "get position by title",
		`SELECT `+positionColumns+` FROM positions WHERE title_key = $1`, textnorm.Key(title))
}

func (r *PositionRepo) findOne(ctx context.Context, op, query string, args ...any) (*entity.Position, error) {
	p, err := scanPosition(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// List devuelve todos los cargos ordenados por order, title.
func (r *PositionRepo) List(ctx context.Context) ([]*entity.Position, error) {
	return r.list(ctx, `SELECT `+positionColumns+` FROM positions ORDER BY "order", title`)
}

// ListActive devuelve los cargos activos ordenados por order.
func (r *PositionRepo) ListActive(ctx context.Context) ([]*entity.Position, error) {
	return r.list(ctx, `SELECT `+positionColumns+` FROM positions WHERE is_active ORDER BY "order", title`)
}

func (r *PositionRepo) list(ctx context.Context, query string) ([]*entity.Position, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza todos los campos editables del cargo.
func (r *PositionRepo) Update(ctx context.Context, p *entity.Position) error {
	query := `
		UPDATE positions SET title = $2, title_key = $3, description = $4, parent_position_id = $5,
			"order" = $6, is_aggregate = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Title, textnorm.Key(p.Title), p.Description, p.ParentPositionID,
		p.Order, p.IsAggregate, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return translate("update position", err)
	}
	return nil
}

// UpdateParent cambia solo el padre (drag & drop del organigrama).
func (r *PositionRepo) UpdateParent(ctx context.Context, id string, parentID *string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE positions SET parent_position_id = $2, updated_at = now() WHERE id = $1`, id, parentID)
	if err != nil {
		return translate("update position parent", err)
	}
	return nil
}

// UpdateCoordinates persiste x/y; false si el cargo no existe.
func (r *PositionRepo) UpdateCoordinates(ctx context.Context, id string, x, y *float64) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE positions SET x = $2, y = $3, updated_at = now() WHERE id = $1`, id, x, y)
	if err != nil {
		return false, fmt.Errorf("update position coordinates: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete elimina el cargo; sus hijos quedan como raíces y sus asignaciones se borran (FK).
func (r *PositionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	return nil
}
