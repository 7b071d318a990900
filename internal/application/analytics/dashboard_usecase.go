// Package analytics contiene el resumen del dashboard de RR. HH.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del portal.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Seis consultas en paralelo:
//  1. CountUsers             → TotalUsers + ActiveUsers
//  2. CountPositions         → TotalPositions + VacantPositions
//  3. CountContractsByStatus → ContractsByStatus (todos los estados, 0 si no hay)
//  4. CountActiveSurveys     → ActiveSurveys
//  5. CountSubmissions       → TotalSubmissions
//  6. CountComments          → TotalComments
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type pairResult struct {
		a, b int
		err  error
	}
	type countResult struct {
		n   int
		err error
	}
	type statusResult struct {
		byStatus map[string]int
		err      error
	}

	usersCh := make(chan pairResult, 1)
	positionsCh := make(chan pairResult, 1)
	contractsCh := make(chan statusResult, 1)
	surveysCh := make(chan countResult, 1)
	submissionsCh := make(chan countResult, 1)
	commentsCh := make(chan countResult, 1)

	go func() {
		total, active, err := uc.analyticsRepo.CountUsers(ctx)
		usersCh <- pairResult{total, active, err}
	}()
	go func() {
		total, vacant, err := uc.analyticsRepo.CountPositions(ctx)
		positionsCh <- pairResult{total, vacant, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.CountContractsByStatus(ctx)
		contractsCh <- statusResult{m, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountActiveSurveys(ctx)
		surveysCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountSubmissions(ctx)
		submissionsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountComments(ctx)
		commentsCh <- countResult{n, err}
	}()

	users := <-usersCh
	positions := <-positionsCh
	contracts := <-contractsCh
	surveys := <-surveysCh
	submissions := <-submissionsCh
	comments := <-commentsCh

	if users.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios: %w", users.err)
	}
	if positions.err != nil {
		return nil, fmt.Errorf("dashboard: cargos: %w", positions.err)
	}
	if contracts.err != nil {
		return nil, fmt.Errorf("dashboard: contratos: %w", contracts.err)
	}
	if surveys.err != nil {
		return nil, fmt.Errorf("dashboard: encuestas: %w", surveys.err)
	}
	if submissions.err != nil {
		return nil, fmt.Errorf("dashboard: envíos: %w", submissions.err)
	}
	if comments.err != nil {
		return nil, fmt.Errorf("dashboard: comentarios: %w", comments.err)
	}

	byStatus := make(map[string]int, len(entity.ContractStatuses))
	for _, st := range entity.ContractStatuses {
		byStatus[st] = contracts.byStatus[st]
	}

	return &dto.DashboardSummaryDTO{
		TotalUsers:        users.a,
		ActiveUsers:       users.b,
		TotalPositions:    positions.a,
		VacantPositions:   positions.b,
		ContractsByStatus: byStatus,
		ActiveSurveys:     surveys.n,
		TotalSubmissions:  submissions.n,
		TotalComments:     comments.n,
	}, nil
}
