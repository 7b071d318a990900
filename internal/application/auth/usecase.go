package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/usecase"
	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
	"github.com/jhoicas/portal-api/pkg/jwt"
	"github.com/jhoicas/portal-api/pkg/textnorm"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, perfil y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/password, registra el último acceso y retorna token + usuario.
// Usuario inexistente o contraseña incorrecta -> ErrUnauthorized; cuenta inactiva -> ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, textnorm.Username(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !usecase.CheckPassword(user.PasswordHash, in.Password) {
		return nil, fmt.Errorf("%w: usuario o contraseña incorrectos", domain.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: la cuenta está desactivada", domain.ErrForbidden)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
	})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now
	return &dto.LoginResponse{
		AccessToken: token,
		User:        *usecase.ToUserResponse(user),
	}, nil
}

// GetProfile devuelve el usuario autenticado con su jefe y subordinados.
func (uc *AuthUseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := usecase.ToUserResponse(user)
	if user.ManagerID != nil {
		manager, err := uc.userRepo.GetByID(ctx, *user.ManagerID)
		if err != nil {
			return nil, err
		}
		out.Manager = usecase.ToUserSummary(manager)
	}
	subs, err := uc.userRepo.ListSubordinates(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	out.Subordinates = make([]dto.UserSummary, 0, len(subs))
	for _, s := range subs {
		out.Subordinates = append(out.Subordinates, *usecase.ToUserSummary(s))
	}
	return out, nil
}

// ChangePassword exige la contraseña actual y guarda el nuevo hash.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.get(ctx, userID)
	if err != nil {
		return err
	}
	if !usecase.CheckPassword(user.PasswordHash, in.CurrentPassword) {
		return fmt.Errorf("%w: la contraseña actual es incorrecta", domain.ErrInvalidInput)
	}
	hash, err := usecase.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, user.ID, hash, time.Now())
}

func (uc *AuthUseCase) get(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
