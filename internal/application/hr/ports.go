// Package hr contiene los casos de uso de contratos y asignaciones de personal.
package hr

import (
	"context"

	"github.com/jhoicas/portal-api/internal/domain/repository"
)

// StaffingTxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
// La regla de dedicación (suma ≤ 100%) se verifica y se escribe en la misma transacción,
// con la fila del contrato bloqueada.
type StaffingTxRunner interface {
	RunStaffing(ctx context.Context, fn func(
		contracts repository.ContractRepository,
		assignments repository.AssignmentRepository,
	) error) error
}
