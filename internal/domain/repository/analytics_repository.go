package repository

import "context"

// AnalyticsRepository consultas read-only agregadas para el dashboard.
type AnalyticsRepository interface {
	CountUsers(ctx context.Context) (total, active int, err error)
	// CountPositions devuelve cargos activos y, de ellos, los que no tienen ocupante vigente.
	CountPositions(ctx context.Context) (total, vacant int, err error)
	CountContractsByStatus(ctx context.Context) (map[string]int, error)
	CountActiveSurveys(ctx context.Context) (int, error)
	CountSubmissions(ctx context.Context) (int, error)
	CountComments(ctx context.Context) (int, error)
}
