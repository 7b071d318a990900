package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// ChangePasswordRequest cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// CreateUserRequest alta de usuario por el administrador (password en texto, se hashea en use case).
type CreateUserRequest struct {
	EmployeeID      string  `json:"employeeId" validate:"required,max=50"`
	Username        string  `json:"username" validate:"required,max=100"`
	FirstName       string  `json:"firstName" validate:"required,max=100"`
	LastName        string  `json:"lastName" validate:"required,max=100"`
	Password        string  `json:"password" validate:"required,min=6"`
	Role            string  `json:"role" validate:"required,oneof=EMPLOYEE MANAGER HR ADMIN"`
	ManagerID       *string `json:"managerId"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// UpdateUserRequest actualización parcial; los campos nil no se tocan.
type UpdateUserRequest struct {
	Username        *string `json:"username" validate:"omitempty,max=100"`
	FirstName       *string `json:"firstName" validate:"omitempty,max=100"`
	LastName        *string `json:"lastName" validate:"omitempty,max=100"`
	ProfileImageURL *string `json:"profileImageUrl"`
	ManagerID       *string `json:"managerId"`
	Role            *string `json:"role" validate:"omitempty,oneof=EMPLOYEE MANAGER HR ADMIN"`
	IsActive        *bool   `json:"isActive"`
}

// UserSummary referencia corta a otro usuario (jefe, subordinados, ocupantes).
type UserSummary struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employeeId"`
	Username        string  `json:"username"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Role            string  `json:"role"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID              string        `json:"id"`
	EmployeeID      string        `json:"employeeId"`
	Username        string        `json:"username"`
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	Role            string        `json:"role"`
	IsActive        bool          `json:"isActive"`
	PositionID      *string       `json:"positionId,omitempty"`
	ManagerID       *string       `json:"managerId,omitempty"`
	Manager         *UserSummary  `json:"manager,omitempty"`
	Subordinates    []UserSummary `json:"subordinates,omitempty"`
	ProfileImageURL *string       `json:"profileImageUrl,omitempty"`
	LastLoginAt     *time.Time    `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// UploadResponse resultado de subir una imagen de perfil.
type UploadResponse struct {
	Message  string `json:"message"`
	FileURL  string `json:"fileUrl"`
	Filename string `json:"filename"`
}
