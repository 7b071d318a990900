package entity

import "time"

// Roles válidos para User.
const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleHR       = "HR"
	RoleAdmin    = "ADMIN"
)

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// User representa un empleado con acceso al portal.
type User struct {
	ID              string
	EmployeeID      string // código de personal, único
	Username        string
	FirstName       string
	LastName        string
	PasswordHash    string // bcrypt
	PositionID      *string
	ManagerID       *string // jefe directo (árbol de usuarios)
	Role            string
	IsActive        bool
	LastLoginAt     *time.Time
	ProfileImageURL *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
