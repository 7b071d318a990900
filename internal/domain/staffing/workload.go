// Package staffing contiene las reglas de asignación de contratos a cargos.
package staffing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// MaxWorkload tope de dedicación de un contrato (100%).
var MaxWorkload = decimal.NewFromInt(100)

// ValidateWorkload verifica que el porcentaje esté en [0, 100].
func ValidateWorkload(w decimal.Decimal) error {
	if w.IsNegative() || w.GreaterThan(MaxWorkload) {
		return fmt.Errorf("%w: workloadPercentage debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	return nil
}

// CurrentWorkload suma la dedicación de las asignaciones del contrato, excluyendo excludeID
// (la asignación que se está actualizando; vacío al crear).
func CurrentWorkload(assignments []*entity.Assignment, excludeID string) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assignments {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		total = total.Add(a.WorkloadPercentage)
	}
	return total
}

// CheckWorkload devuelve ErrWorkloadExceeded si current + requested supera 100.
func CheckWorkload(assignments []*entity.Assignment, excludeID string, requested decimal.Decimal) error {
	current := CurrentWorkload(assignments, excludeID)
	if current.Add(requested).GreaterThan(MaxWorkload) {
		label := "Current"
		if excludeID != "" {
			label = "Current (excluding this)"
		}
		return fmt.Errorf("%w. %s: %s%%, Requested: %s%%",
			domain.ErrWorkloadExceeded, label, current.String(), requested.String())
	}
	return nil
}

// CheckOccupancy aplica la regla de cargo no agregado: un único ocupante vigente.
// Las ocupaciones del mismo contrato no cuentan (un contrato puede reasignarse al mismo cargo).
func CheckOccupancy(position *entity.Position, occupancies []entity.Occupancy, contractID string, now time.Time) error {
	if position.IsAggregate {
		return nil
	}
	for i := range occupancies {
		o := &occupancies[i]
		if o.ContractID == contractID || !o.Occupying(now) {
			continue
		}
		return fmt.Errorf("%w: %q ocupado por %s %s", domain.ErrPositionOccupied,
			position.Title, o.FirstName, o.LastName)
	}
	return nil
}

// ValidateDates verifica que end no sea anterior a start.
func ValidateDates(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return fmt.Errorf("%w: endDate no puede ser anterior a startDate", domain.ErrInvalidInput)
	}
	return nil
}
