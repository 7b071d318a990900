package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/orgchart"
	"github.com/jhoicas/portal-api/internal/domain/repository"
	"github.com/jhoicas/portal-api/pkg/logger"
	"github.com/jhoicas/portal-api/pkg/textnorm"
)

// UserUseCase administración de usuarios (solo ADMIN).
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// Create da de alta un usuario. Username o employee_id repetidos -> ErrDuplicate.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := textnorm.Username(in.Username)
	employeeID := strings.TrimSpace(in.EmployeeID)
	if username == "" || employeeID == "" {
		return nil, fmt.Errorf("%w: username y employeeId son requeridos", domain.ErrInvalidInput)
	}
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	existing, err := uc.repo.GetByUsernameOrEmployeeID(ctx, username, employeeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el nombre de usuario o el código de personal ya existe", domain.ErrDuplicate)
	}
	managerID, err := OptionalID("managerId", in.ManagerID)
	if err != nil {
		return nil, err
	}
	var manager *entity.User
	if managerID != nil {
		if manager, err = uc.mustGet(ctx, *managerID, "jefe"); err != nil {
			return nil, err
		}
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:              uuid.New().String(),
		EmployeeID:      employeeID,
		Username:        username,
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		PasswordHash:    hash,
		ManagerID:       managerID,
		Role:            in.Role,
		IsActive:        true,
		ProfileImageURL: trimmedOrNil(in.ProfileImageURL),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("usuario creado")
	out := ToUserResponse(user)
	out.Manager = ToUserSummary(manager)
	return out, nil
}

// List devuelve todos los usuarios (más recientes primero) con su jefe directo.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		r := ToUserResponse(u)
		if u.ManagerID != nil {
			r.Manager = ToUserSummary(byID[*u.ManagerID])
		}
		out = append(out, *r)
	}
	return out, nil
}

// Get devuelve el usuario con jefe y subordinados.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.mustGet(ctx, id, "usuario")
	if err != nil {
		return nil, err
	}
	return uc.withRelations(ctx, user)
}

// Update aplica una actualización parcial.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.mustGet(ctx, id, "usuario")
	if err != nil {
		return nil, err
	}
	if in.Username != nil {
		username := textnorm.Username(*in.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username no puede quedar vacío", domain.ErrInvalidInput)
		}
		if username != user.Username {
			other, err := uc.repo.GetByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, fmt.Errorf("%w: el nombre de usuario ya existe", domain.ErrDuplicate)
			}
			user.Username = username
		}
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.ProfileImageURL != nil {
		user.ProfileImageURL = trimmedOrNil(in.ProfileImageURL)
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, *in.Role)
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.ManagerID != nil {
		managerID, err := OptionalID("managerId", in.ManagerID)
		if err != nil {
			return nil, err
		}
		if err := uc.checkManager(ctx, user.ID, managerID); err != nil {
			return nil, err
		}
		user.ManagerID = managerID
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.withRelations(ctx, user)
}

// Delete elimina el usuario; sus contratos caen en cascada y sus subordinados quedan sin jefe.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.mustGet(ctx, id, "usuario"); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Msg("usuario eliminado")
	return nil
}

// checkManager rechaza que el usuario sea su propio jefe o quede bajo uno de sus subordinados.
func (uc *UserUseCase) checkManager(ctx context.Context, userID string, managerID *string) error {
	if managerID == nil {
		return nil
	}
	if *managerID == userID {
		return fmt.Errorf("%w: un usuario no puede ser su propio jefe", domain.ErrInvalidInput)
	}
	if _, err := uc.mustGet(ctx, *managerID, "jefe"); err != nil {
		return err
	}
	users, err := uc.repo.List(ctx)
	if err != nil {
		return err
	}
	parents := make(orgchart.ParentMap, len(users))
	for _, u := range users {
		if u.ManagerID != nil {
			parents[u.ID] = *u.ManagerID
		}
	}
	if parents.WouldCycle(userID, *managerID) {
		return fmt.Errorf("%w: el jefe no puede ser un subordinado del usuario", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *UserUseCase) withRelations(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	out := ToUserResponse(user)
	if user.ManagerID != nil {
		manager, err := uc.repo.GetByID(ctx, *user.ManagerID)
		if err != nil {
			return nil, err
		}
		out.Manager = ToUserSummary(manager)
	}
	subs, err := uc.repo.ListSubordinates(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	out.Subordinates = toSummaries(subs)
	return out, nil
}

func (uc *UserUseCase) mustGet(ctx context.Context, id, what string) (*entity.User, error) {
	if err := RequireID("id", id); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s no encontrado", domain.ErrNotFound, what)
	}
	return user, nil
}
