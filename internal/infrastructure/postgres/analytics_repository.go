package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/portal-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountUsers total de usuarios y cuántos están activos.
func (r *AnalyticsRepo) CountUsers(ctx context.Context) (total, active int, err error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM users`
	if err = r.pool.QueryRow(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("analytics.CountUsers: %w", err)
	}
	return total, active, nil
}

// CountPositions cargos activos y, de ellos, los vacantes.
// Vacante: ninguna asignación con contrato ACTIVE, vigente y con usuario.
func (r *AnalyticsRepo) CountPositions(ctx context.Context) (total, vacant int, err error) {
	const query = `
	SELECT
	    COUNT(*)                                       AS total,
	    COUNT(*) FILTER (WHERE NOT EXISTS (
	        SELECT 1
	        FROM assignments a
	        JOIN contracts   c ON c.id = a.contract_id
	        JOIN users       u ON u.id = c.user_id
	        WHERE a.position_id = p.id
	          AND c.status      = 'ACTIVE'
	          AND (a.end_date IS NULL OR a.end_date > now())
	    ))                                             AS vacant
	FROM positions p
	WHERE p.is_active`
	if err = r.pool.QueryRow(ctx, query).Scan(&total, &vacant); err != nil {
		return 0, 0, fmt.Errorf("analytics.CountPositions: %w", err)
	}
	return total, vacant, nil
}

// CountContractsByStatus agrupa contratos por estado (solo estados con filas).
func (r *AnalyticsRepo) CountContractsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM contracts GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountContractsByStatus: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("analytics.CountContractsByStatus scan: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// CountActiveSurveys encuestas activas.
func (r *AnalyticsRepo) CountActiveSurveys(ctx context.Context) (int, error) {
	return r.count(ctx, "CountActiveSurveys", `SELECT COUNT(*) FROM surveys WHERE is_active`)
}

// CountSubmissions envíos distintos (no respuestas individuales).
func (r *AnalyticsRepo) CountSubmissions(ctx context.Context) (int, error) {
	return r.count(ctx, "CountSubmissions", `SELECT COUNT(DISTINCT submission_id) FROM responses`)
}

// CountComments total del buzón.
func (r *AnalyticsRepo) CountComments(ctx context.Context) (int, error) {
	return r.count(ctx, "CountComments", `SELECT COUNT(*) FROM comments`)
}

func (r *AnalyticsRepo) count(ctx context.Context, op, query string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.%s: %w", op, err)
	}
	return n, nil
}
