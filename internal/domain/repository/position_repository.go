package repository

import (
	"context"

	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// PositionRepository define el puerto de persistencia para Position.
type PositionRepository interface {
	Create(ctx context.Context, position *entity.Position) error
	GetByID(ctx context.Context, id string) (*entity.Position, error)
	// GetByTitle busca por título normalizado (textnorm.Key).
	GetByTitle(ctx context.Context, title string) (*entity.Position, error)
	// List devuelve todos los cargos ordenados por order, title.
	List(ctx context.Context) ([]*entity.Position, error)
	// ListActive devuelve solo los cargos activos ordenados por order.
	ListActive(ctx context.Context) ([]*entity.Position, error)
	Update(ctx context.Context, position *entity.Position) error
	UpdateParent(ctx context.Context, id string, parentID *string) error
	// UpdateCoordinates devuelve false si el cargo no existe.
	UpdateCoordinates(ctx context.Context, id string, x, y *float64) (bool, error)
	Delete(ctx context.Context, id string) error
}
