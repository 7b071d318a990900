package repository

import (
	"context"
	"time"

	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByUsernameOrEmployeeID devuelve el primer usuario que coincida con cualquiera de los dos.
	GetByUsernameOrEmployeeID(ctx context.Context, username, employeeID string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	ListSubordinates(ctx context.Context, managerID string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdatePassword(ctx context.Context, id, hash string, at time.Time) error
	ExistsWithRole(ctx context.Context, role string) (bool, error)
	Delete(ctx context.Context, id string) error
}
