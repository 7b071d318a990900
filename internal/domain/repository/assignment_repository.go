package repository

import (
	"context"

	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// AssignmentRepository define el puerto de persistencia para Assignment.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	GetByID(ctx context.Context, id string) (*entity.Assignment, error)
	List(ctx context.Context) ([]*entity.Assignment, error)
	ListByContract(ctx context.Context, contractID string) ([]*entity.Assignment, error)
	Update(ctx context.Context, assignment *entity.Assignment) error
	Delete(ctx context.Context, id string) error

	// ListOccupancies devuelve todas las asignaciones con contrato y usuario (organigrama).
	ListOccupancies(ctx context.Context) ([]entity.Occupancy, error)
	ListOccupanciesByPosition(ctx context.Context, positionID string) ([]entity.Occupancy, error)
}
