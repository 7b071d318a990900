package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-api/internal/application/analytics"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/testutil/memstore"
)

func TestGetSummary_CuentaTodo(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	active := &entity.User{ID: uuid.NewString(), EmployeeID: "E1", Username: "a", IsActive: true}
	inactive := &entity.User{ID: uuid.NewString(), EmployeeID: "E2", Username: "b"}
	require.NoError(t, s.Users().Create(ctx, active))
	require.NoError(t, s.Users().Create(ctx, inactive))

	filled := &entity.Position{ID: uuid.NewString(), Title: "Gerente", IsActive: true}
	vacant := &entity.Position{ID: uuid.NewString(), Title: "Analista", IsActive: true}
	require.NoError(t, s.Positions().Create(ctx, filled))
	require.NoError(t, s.Positions().Create(ctx, vacant))

	c := &entity.Contract{ID: uuid.NewString(), UserID: active.ID, Status: entity.ContractActive, StartDate: time.Now()}
	require.NoError(t, s.Contracts().Create(ctx, c))
	require.NoError(t, s.Assignments().Create(ctx, &entity.Assignment{
		ID: uuid.NewString(), ContractID: c.ID, PositionID: filled.ID, WorkloadPercentage: decimal.NewFromInt(100),
	}))
	require.NoError(t, s.Comments().Create(ctx, &entity.Comment{ID: uuid.NewString(), Message: "hola"}))

	out, err := analytics.NewDashboardUseCase(s.Analytics()).GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, out.TotalUsers)
	assert.Equal(t, 1, out.ActiveUsers)
	assert.Equal(t, 2, out.TotalPositions)
	assert.Equal(t, 1, out.VacantPositions)
	assert.Equal(t, 1, out.ContractsByStatus[entity.ContractActive])
	assert.Contains(t, out.ContractsByStatus, entity.ContractDraft, "todos los estados aparecen aunque estén en cero")
	assert.Equal(t, 1, out.TotalComments)
}

type failingRepo struct{ *memstore.AnalyticsRepo }

func (failingRepo) CountSubmissions(context.Context) (int, error) {
	return 0, errors.New("conexión perdida")
}

func TestGetSummary_PropagaErrores(t *testing.T) {
	repo := failingRepo{memstore.New().Analytics()}
	_, err := analytics.NewDashboardUseCase(repo).GetSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "envíos")
}
