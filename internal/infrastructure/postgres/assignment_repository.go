package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación de AssignmentRepository sobre PostgreSQL (usable con pool o tx).
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador de asignaciones. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

const assignmentColumns = `id, contract_id, position_id, start_date, end_date, workload_percentage,
	is_primary, custom_job_description, created_at, updated_at`

func scanAssignment(row pgx.Row) (*entity.Assignment, error) {
	var a entity.Assignment
	err := row.Scan(
		&a.ID, &a.ContractID, &a.PositionID, &a.StartDate, &a.EndDate, &a.WorkloadPercentage,
		&a.IsPrimary, &a.CustomJobDescription, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una asignación.
func (r *AssignmentRepo) Create(ctx context.Context, a *entity.Assignment) error {
	query := `
		INSERT INTO assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ContractID, a.PositionID, a.StartDate, a.EndDate, a.WorkloadPercentage,
		a.IsPrimary, a.CustomJobDescription, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return translate("insert assignment", err)
	}
	return nil
}

// GetByID obtiene una asignación por ID.
func (r *AssignmentRepo) GetByID(ctx context.Context, id string) (*entity.Assignment, error) {
	a, err := scanAssignment(r.q.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

// List devuelve todas las asignaciones en orden de creación.
func (r *AssignmentRepo) List(ctx context.Context) ([]*entity.Assignment, error) {
	return r.list(ctx, `SELECT `+assignmentColumns+` FROM assignments ORDER BY created_at`)
}

// ListByContract devuelve las asignaciones de un contrato (base de la suma de dedicación).
func (r *AssignmentRepo) ListByContract(ctx context.Context, contractID string) ([]*entity.Assignment, error) {
	return r.list(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE contract_id = $1 ORDER BY created_at`, contractID)
}

func (r *AssignmentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Assignment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update actualiza la asignación.
func (r *AssignmentRepo) Update(ctx context.Context, a *entity.Assignment) error {
	query := `
		UPDATE assignments SET position_id = $2, start_date = $3, end_date = $4, workload_percentage = $5,
			is_primary = $6, custom_job_description = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.PositionID, a.StartDate, a.EndDate, a.WorkloadPercentage,
		a.IsPrimary, a.CustomJobDescription, a.UpdatedAt,
	)
	if err != nil {
		return translate("update assignment", err)
	}
	return nil
}

// Delete elimina una asignación.
func (r *AssignmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// occupancyQuery une asignación, contrato y usuario. LEFT JOIN de users: un contrato
// huérfano se devuelve sin UserID y Occupancy.Occupying lo descarta.
const occupancyQuery = `
	SELECT a.id, a.position_id, c.id, c.status, a.end_date, a.workload_percentage, a.is_primary,
	       COALESCE(u.id::TEXT, ''), COALESCE(u.employee_id, ''), COALESCE(u.first_name, ''),
	       COALESCE(u.last_name, ''), COALESCE(u.role, ''), u.profile_image_url
	FROM assignments a
	JOIN contracts c ON c.id = a.contract_id
	LEFT JOIN users u ON u.id = c.user_id`

// ListOccupancies devuelve todas las ocupaciones (organigrama).
func (r *AssignmentRepo) ListOccupancies(ctx context.Context) ([]entity.Occupancy, error) {
	return r.occupancies(ctx, occupancyQuery+` ORDER BY a.is_primary DESC, u.first_name, u.last_name`)
}

// ListOccupanciesByPosition devuelve las ocupaciones de un cargo (regla de ocupante único).
func (r *AssignmentRepo) ListOccupanciesByPosition(ctx context.Context, positionID string) ([]entity.Occupancy, error) {
	return r.occupancies(ctx, occupancyQuery+` WHERE a.position_id = $1 ORDER BY a.created_at`, positionID)
}

func (r *AssignmentRepo) occupancies(ctx context.Context, query string, args ...any) ([]entity.Occupancy, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list occupancies: %w", err)
	}
	defer rows.Close()
	var list []entity.Occupancy
	for rows.Next() {
		var o entity.Occupancy
		if err := rows.Scan(
			&o.AssignmentID, &o.PositionID, &o.ContractID, &o.ContractStatus, &o.EndDate,
			&o.WorkloadPercentage, &o.IsPrimary,
			&o.UserID, &o.EmployeeID, &o.FirstName, &o.LastName, &o.Role, &o.ProfileImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan occupancy: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
