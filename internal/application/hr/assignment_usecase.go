package hr

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/usecase"
	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
	"github.com/jhoicas/portal-api/internal/domain/staffing"
	"github.com/jhoicas/portal-api/pkg/logger"
)

// AssignmentUseCase asignación de contratos a cargos.
//
// Create y Update corren dentro de StaffingTxRunner: la fila del contrato queda bloqueada
// (SELECT ... FOR UPDATE) mientras se suma la dedicación y se escribe, así dos altas
// concurrentes sobre el mismo contrato no pueden superar juntas el 100%.
type AssignmentUseCase struct {
	tx          StaffingTxRunner
	assignments repository.AssignmentRepository
	contracts   repository.ContractRepository
	positions   repository.PositionRepository
	users       repository.UserRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(
	tx StaffingTxRunner,
	assignments repository.AssignmentRepository,
	contracts repository.ContractRepository,
	positions repository.PositionRepository,
	users repository.UserRepository,
	log *logger.Logger,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		tx:          tx,
		assignments: assignments,
		contracts:   contracts,
		positions:   positions,
		users:       users,
		log:         log,
		now:         time.Now,
	}
}

// Create vincula un contrato ACTIVE con un cargo.
//
// Reglas, en orden: contrato existente (404) y ACTIVE (400); cargo existente (404);
// dedicación en [0,100] y suma del contrato ≤ 100 (400); cargo no agregado sin otro
// ocupante vigente (409).
func (uc *AssignmentUseCase) Create(ctx context.Context, in dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if err := usecase.RequireID("contractId", in.ContractID); err != nil {
		return nil, err
	}
	if err := usecase.RequireID("positionId", in.PositionID); err != nil {
		return nil, err
	}
	workload := staffing.MaxWorkload
	if in.WorkloadPercentage != nil {
		workload = *in.WorkloadPercentage
	}
	if err := staffing.ValidateWorkload(workload); err != nil {
		return nil, err
	}
	if in.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate es requerido", domain.ErrInvalidInput)
	}
	endDate := in.EndDate.Ptr()
	if err := staffing.ValidateDates(in.StartDate.Time, endDate); err != nil {
		return nil, err
	}

	now := uc.now()
	a := &entity.Assignment{
		ID:                   uuid.New().String(),
		ContractID:           in.ContractID,
		PositionID:           in.PositionID,
		StartDate:            in.StartDate.Time,
		EndDate:              endDate,
		WorkloadPercentage:   workload,
		IsPrimary:            in.IsPrimary,
		CustomJobDescription: in.CustomJobDescription,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	var position *entity.Position
	err := uc.tx.RunStaffing(ctx, func(contracts repository.ContractRepository, assignments repository.AssignmentRepository) error {
		contract, err := contracts.GetByIDForUpdate(ctx, in.ContractID)
		if err != nil {
			return err
		}
		if contract == nil {
			return fmt.Errorf("%w: contrato no encontrado", domain.ErrNotFound)
		}
		if contract.Status != entity.ContractActive {
			return fmt.Errorf("%w: no se puede asignar un contrato en estado %s", domain.ErrContractNotActive, contract.Status)
		}
		position, err = uc.positions.GetByID(ctx, in.PositionID)
		if err != nil {
			return err
		}
		if position == nil {
			return fmt.Errorf("%w: cargo no encontrado", domain.ErrNotFound)
		}
		existing, err := assignments.ListByContract(ctx, contract.ID)
		if err != nil {
			return err
		}
		if err := staffing.CheckWorkload(existing, "", workload); err != nil {
			return err
		}
		occupancies, err := assignments.ListOccupanciesByPosition(ctx, position.ID)
		if err != nil {
			return err
		}
		if err := staffing.CheckOccupancy(position, occupancies, contract.ID, now); err != nil {
			return err
		}
		return assignments.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("assignment_id", a.ID).
		Str("contract_id", a.ContractID).
		Str("position_id", a.PositionID).
		Str("workload", a.WorkloadPercentage.String()).
		Msg("asignación creada")
	return toAssignmentResponse(a, position), nil
}

// List devuelve todas las asignaciones con su cargo.
func (uc *AssignmentUseCase) List(ctx context.Context) ([]dto.AssignmentResponse, error) {
	list, err := uc.assignments.List(ctx)
	if err != nil {
		return nil, err
	}
	positions, err := uc.positions.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Position, len(positions))
	for _, p := range positions {
		byID[p.ID] = p
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAssignmentResponse(a, byID[a.PositionID]))
	}
	return out, nil
}

// Get devuelve la asignación con contrato, usuario y cargo.
func (uc *AssignmentUseCase) Get(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	a, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, a)
}

// Update aplica una actualización parcial bajo el bloqueo de la fila del contrato.
// Si cambia la dedicación, la suma excluye la propia asignación; si cambia la fecha fin
// y la asignación sigue vigente, se vuelve a aplicar la regla de ocupante único.
func (uc *AssignmentUseCase) Update(ctx context.Context, id string, in dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if err := usecase.RequireID("id", id); err != nil {
		return nil, err
	}
	if in.WorkloadPercentage != nil {
		if err := staffing.ValidateWorkload(*in.WorkloadPercentage); err != nil {
			return nil, err
		}
	}
	var updated *entity.Assignment
	err := uc.tx.RunStaffing(ctx, func(contracts repository.ContractRepository, assignments repository.AssignmentRepository) error {
		peek, err := assignments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if peek == nil {
			return fmt.Errorf("%w: asignación no encontrada", domain.ErrNotFound)
		}
		contract, err := contracts.GetByIDForUpdate(ctx, peek.ContractID)
		if err != nil {
			return err
		}
		// releer con el contrato bloqueado: otra actualización pudo escribir entre ambas lecturas
		a, err := assignments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("%w: asignación no encontrada", domain.ErrNotFound)
		}
		if in.WorkloadPercentage != nil {
			if contract != nil {
				existing, err := assignments.ListByContract(ctx, contract.ID)
				if err != nil {
					return err
				}
				if err := staffing.CheckWorkload(existing, a.ID, *in.WorkloadPercentage); err != nil {
					return err
				}
			}
			a.WorkloadPercentage = *in.WorkloadPercentage
		}
		if in.StartDate != nil && !in.StartDate.IsZero() {
			a.StartDate = in.StartDate.Time
		}
		if in.EndDate != nil {
			a.EndDate = in.EndDate.Ptr()
		}
		if in.IsPrimary != nil {
			a.IsPrimary = *in.IsPrimary
		}
		if in.CustomJobDescription != nil {
			a.CustomJobDescription = in.CustomJobDescription
		}
		if err := staffing.ValidateDates(a.StartDate, a.EndDate); err != nil {
			return err
		}
		now := uc.now()
		if in.EndDate != nil && contract != nil && contract.Status == entity.ContractActive && a.ActiveAt(now) {
			position, err := uc.positions.GetByID(ctx, a.PositionID)
			if err != nil {
				return err
			}
			if position != nil {
				occupancies, err := assignments.ListOccupanciesByPosition(ctx, position.ID)
				if err != nil {
					return err
				}
				if err := staffing.CheckOccupancy(position, occupancies, contract.ID, now); err != nil {
					return err
				}
			}
		}
		a.UpdatedAt = now
		updated = a
		return assignments.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, updated)
}

// Delete elimina la asignación.
func (uc *AssignmentUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return err
	}
	if err := uc.assignments.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("assignment_id", id).Msg("asignación eliminada")
	return nil
}

func (uc *AssignmentUseCase) detail(ctx context.Context, a *entity.Assignment) (*dto.AssignmentResponse, error) {
	position, err := uc.positions.GetByID(ctx, a.PositionID)
	if err != nil {
		return nil, err
	}
	out := toAssignmentResponse(a, position)
	contract, err := uc.contracts.GetByID(ctx, a.ContractID)
	if err != nil {
		return nil, err
	}
	if contract != nil {
		user, err := uc.users.GetByID(ctx, contract.UserID)
		if err != nil {
			return nil, err
		}
		out.Contract = toContractResponse(contract, user, nil, nil)
	}
	return out, nil
}

func (uc *AssignmentUseCase) mustGet(ctx context.Context, id string) (*entity.Assignment, error) {
	if err := usecase.RequireID("id", id); err != nil {
		return nil, err
	}
	a, err := uc.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: asignación no encontrada", domain.ErrNotFound)
	}
	return a, nil
}
