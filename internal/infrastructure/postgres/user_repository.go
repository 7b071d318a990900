package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, employee_id, username, first_name, last_name, password_hash, position_id,
	manager_id, role, is_active, last_login_at, profile_image_url, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.EmployeeID, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.PositionID,
		&u.ManagerID, &u.Role, &u.IsActive, &u.LastLoginAt, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.EmployeeID, u.Username, u.FirstName, u.LastName, u.PasswordHash, u.PositionID,
		u.ManagerID, u.Role, u.IsActive, u.LastLoginAt, u.ProfileImageURL, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return translate("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "get user by id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "get user by username", `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetByUsernameOrEmployeeID busca colisiones de cualquiera de las dos claves únicas.
func (r *UserRepo) GetByUsernameOrEmployeeID(ctx context.Context, username, employeeID string) (*entity.User, error) {
	return r.findOne(ctx, "get user by username or employee_id",
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR employee_id = $2 LIMIT 1`,
		username, employeeID)
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// List devuelve todos los usuarios, los más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return r.list(ctx, "list users", `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
}

// ListSubordinates devuelve los reportes directos de managerID.
func (r *UserRepo) ListSubordinates(ctx context.Context, managerID string) ([]*entity.User, error) {
	return r.list(ctx, "list subordinates",
		`SELECT `+userColumns+` FROM users WHERE manager_id = $1 ORDER BY first_name, last_name`, managerID)
}

func (r *UserRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables (no la contraseña ni el último login).
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET employee_id = $2, username = $3, first_name = $4, last_name = $5,
			position_id = $6, manager_id = $7, role = $8, is_active = $9, profile_image_url = $10,
			updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.EmployeeID, u.Username, u.FirstName, u.LastName,
		u.PositionID, u.ManagerID, u.Role, u.IsActive, u.ProfileImageURL, u.UpdatedAt,
	)
	if err != nil {
		return translate("update user", err)
	}
	return nil
}

// UpdateLastLogin registra el instante del último login exitoso.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// UpdatePassword reemplaza el hash bcrypt.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, id, hash, at); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ExistsWithRole indica si hay al menos un usuario con el rol dado (seed del admin).
func (r *UserRepo) ExistsWithRole(ctx context.Context, role string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`, role).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists with role: %w", err)
	}
	return exists, nil
}

// Delete elimina un usuario; las FK limpian manager_id de subordinados y borran sus contratos.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
