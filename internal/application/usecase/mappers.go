package usecase

import (
	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// ToUserResponse convierte la entidad en su salida HTTP (sin password_hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:              u.ID,
		EmployeeID:      u.EmployeeID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		IsActive:        u.IsActive,
		PositionID:      u.PositionID,
		ManagerID:       u.ManagerID,
		ProfileImageURL: u.ProfileImageURL,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// ToUserSummary referencia corta de un usuario.
func ToUserSummary(u *entity.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:              u.ID,
		EmployeeID:      u.EmployeeID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// ToPositionFlat fila plana de un cargo.
func ToPositionFlat(p *entity.Position) *dto.PositionFlat {
	if p == nil {
		return nil
	}
	return &dto.PositionFlat{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		ParentPositionID: p.ParentPositionID,
		Order:            p.Order,
		IsActive:         p.IsActive,
	}
}

func toSummaries(users []*entity.User) []dto.UserSummary {
	out := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserSummary(u))
	}
	return out
}
