package staffing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/staffing"
)

func assignment(id string, workload float64) *entity.Assignment {
	return &entity.Assignment{ID: id, WorkloadPercentage: decimal.NewFromFloat(workload)}
}

func TestCheckWorkload_HastaCien(t *testing.T) {
	existing := []*entity.Assignment{assignment("a", 60), assignment("b", 30)}

	assert.NoError(t, staffing.CheckWorkload(existing, "", decimal.NewFromInt(10)), "exactamente 100 es válido")

	err := staffing.CheckWorkload(existing, "", decimal.NewFromFloat(10.5))
	require.ErrorIs(t, err, domain.ErrWorkloadExceeded)
	assert.Contains(t, err.Error(), "Current: 90%, Requested: 10.5%")
}

func TestCheckWorkload_ExcluyeLaAsignacionActualizada(t *testing.T) {
	existing := []*entity.Assignment{assignment("a", 60), assignment("b", 40)}

	// subir "b" de 40 a 40 no debe contar su propio valor dos veces
	assert.NoError(t, staffing.CheckWorkload(existing, "b", decimal.NewFromInt(40)))

	err := staffing.CheckWorkload(existing, "b", decimal.NewFromInt(41))
	require.ErrorIs(t, err, domain.ErrWorkloadExceeded)
	assert.Contains(t, err.Error(), "Current (excluding this): 60%")
}

func TestCheckWorkload_DecimalSinErroresDeRedondeo(t *testing.T) {
	// 0.1 * 10 en float64 no suma exactamente 1; con decimal sí
	var existing []*entity.Assignment
	for i := 0; i < 9; i++ {
		existing = append(existing, assignment(string(rune('a'+i)), 11.1))
	}
	assert.NoError(t, staffing.CheckWorkload(existing, "", decimal.NewFromFloat(0.1)))
}

func TestValidateWorkload(t *testing.T) {
	assert.NoError(t, staffing.ValidateWorkload(decimal.Zero))
	assert.NoError(t, staffing.ValidateWorkload(decimal.NewFromInt(100)))
	assert.ErrorIs(t, staffing.ValidateWorkload(decimal.NewFromInt(-1)), domain.ErrInvalidInput)
	assert.ErrorIs(t, staffing.ValidateWorkload(decimal.NewFromFloat(100.01)), domain.ErrInvalidInput)
}

func TestCheckOccupancy(t *testing.T) {
	now := time.Now()
	single := &entity.Position{ID: "p", Title: "Gerente"}
	aggregate := &entity.Position{ID: "p", Title: "Analista", IsAggregate: true}
	taken := []entity.Occupancy{{
		ContractID: "c1", PositionID: "p", ContractStatus: entity.ContractActive,
		UserID: "u1", FirstName: "Sara", LastName: "Ahmadi",
	}}

	assert.ErrorIs(t, staffing.CheckOccupancy(single, taken, "c2", now), domain.ErrPositionOccupied)
	assert.NoError(t, staffing.CheckOccupancy(single, taken, "c1", now), "el mismo contrato no compite consigo")
	assert.NoError(t, staffing.CheckOccupancy(aggregate, taken, "c2", now))

	taken[0].ContractStatus = entity.ContractTerminated
	assert.NoError(t, staffing.CheckOccupancy(single, taken, "c2", now), "un contrato terminado libera el cargo")
}

func TestValidateDates(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, 0, -1)
	after := start.AddDate(1, 0, 0)

	assert.NoError(t, staffing.ValidateDates(start, nil))
	assert.NoError(t, staffing.ValidateDates(start, &after))
	assert.ErrorIs(t, staffing.ValidateDates(start, &before), domain.ErrInvalidInput)
}
