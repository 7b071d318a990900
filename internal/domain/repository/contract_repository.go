package repository

import (
	"context"

	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// ContractRepository define el puerto de persistencia para Contract.
type ContractRepository interface {
	Create(ctx context.Context, contract *entity.Contract) error
	GetByID(ctx context.Context, id string) (*entity.Contract, error)
	// GetByIDForUpdate bloquea la fila del contrato hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Contract, error)
	List(ctx context.Context) ([]*entity.Contract, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Contract, error)
	Update(ctx context.Context, contract *entity.Contract) error
	Delete(ctx context.Context, id string) error
}
