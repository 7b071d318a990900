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

// ContractUseCase contratos laborales.
type ContractUseCase struct {
	tx          StaffingTxRunner
	contracts   repository.ContractRepository
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	positions   repository.PositionRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(
	tx StaffingTxRunner,
	contracts repository.ContractRepository,
	assignments repository.AssignmentRepository,
	users repository.UserRepository,
	positions repository.PositionRepository,
	log *logger.Logger,
) *ContractUseCase {
	return &ContractUseCase{
		tx:          tx,
		contracts:   contracts,
		assignments: assignments,
		users:       users,
		positions:   positions,
		log:         log,
		now:         time.Now,
	}
}

// Create da de alta un contrato en estado DRAFT.
func (uc *ContractUseCase) Create(ctx context.Context, in dto.CreateContractRequest) (*dto.ContractResponse, error) {
	if err := usecase.RequireID("userId", in.UserID); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	if in.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate es requerido", domain.ErrInvalidInput)
	}
	contractType := in.ContractType
	if contractType == "" {
		contractType = entity.ContractFullTime
	}
	if !entity.ValidContractType(contractType) {
		return nil, fmt.Errorf("%w: tipo de contrato desconocido %q", domain.ErrInvalidInput, contractType)
	}
	endDate := in.EndDate.Ptr()
	if err := staffing.ValidateDates(in.StartDate.Time, endDate); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Contract{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		StartDate:    in.StartDate.Time,
		EndDate:      endDate,
		Status:       entity.ContractDraft,
		ContractType: contractType,
		FileURL:      in.FileURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.contracts.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("contract_id", c.ID).Str("user_id", c.UserID).Str("type", c.ContractType).Msg("contrato creado")
	out := toContractResponse(c, user, nil, nil)
	return out, nil
}

// List devuelve los contratos con su usuario y asignaciones; con userID solo los de ese usuario.
func (uc *ContractUseCase) List(ctx context.Context, userID string) ([]dto.ContractResponse, error) {
	var (
		contracts []*entity.Contract
		err       error
	)
	if userID != "" {
		if err := usecase.RequireID("userId", userID); err != nil {
			return nil, err
		}
		contracts, err = uc.contracts.ListByUser(ctx, userID)
	} else {
		contracts, err = uc.contracts.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := uc.assignments.List(ctx)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}
	byContract := make(map[string][]*entity.Assignment)
	for _, a := range assignments {
		byContract[a.ContractID] = append(byContract[a.ContractID], a)
	}
	out := make([]dto.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, *toContractResponse(c, usersByID[c.UserID], byContract[c.ID], nil))
	}
	return out, nil
}

// Get devuelve el contrato con usuario, asignaciones y sus cargos.
func (uc *ContractUseCase) Get(ctx context.Context, id string) (*dto.ContractResponse, error) {
	c, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, c)
}

// UpdateStatus cambia el estado del contrato.
//
// Reactivar un contrato vuelve a poner en juego sus asignaciones vigentes: cada cargo
// no agregado que ocupen debe seguir libre (409). La verificación y la escritura
// corren en la misma transacción, con la fila del contrato bloqueada.
func (uc *ContractUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateContractStatusRequest) (*dto.ContractResponse, error) {
	if !entity.ValidContractStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Status)
	}
	if err := usecase.RequireID("id", id); err != nil {
		return nil, err
	}
	var (
		c    *entity.Contract
		prev string
	)
	err := uc.tx.RunStaffing(ctx, func(contracts repository.ContractRepository, assignments repository.AssignmentRepository) error {
		var err error
		c, err = contracts.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: contrato no encontrado", domain.ErrNotFound)
		}
		prev = c.Status
		now := uc.now()
		if in.Status == entity.ContractActive && prev != entity.ContractActive {
			if err := uc.checkReactivation(ctx, assignments, c, now); err != nil {
				return err
			}
		}
		c.Status = in.Status
		c.UpdatedAt = now
		return contracts.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("contract_id", c.ID).Str("from", prev).Str("to", c.Status).Msg("estado de contrato actualizado")
	return uc.detail(ctx, c)
}

func (uc *ContractUseCase) checkReactivation(ctx context.Context, assignments repository.AssignmentRepository, c *entity.Contract, now time.Time) error {
	list, err := assignments.ListByContract(ctx, c.ID)
	if err != nil {
		return err
	}
	for _, a := range list {
		if !a.ActiveAt(now) {
			continue
		}
		position, err := uc.positions.GetByID(ctx, a.PositionID)
		if err != nil {
			return err
		}
		if position == nil {
			continue
		}
		occupancies, err := assignments.ListOccupanciesByPosition(ctx, position.ID)
		if err != nil {
			return err
		}
		if err := staffing.CheckOccupancy(position, occupancies, c.ID, now); err != nil {
			return err
		}
	}
	return nil
}

// Update modifica fechas, tipo y archivo del contrato.
func (uc *ContractUseCase) Update(ctx context.Context, id string, in dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	c, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.StartDate != nil && !in.StartDate.IsZero() {
		c.StartDate = in.StartDate.Time
	}
	if in.EndDate != nil {
		c.EndDate = in.EndDate.Ptr()
	}
	if in.ContractType != nil {
		if !entity.ValidContractType(*in.ContractType) {
			return nil, fmt.Errorf("%w: tipo de contrato desconocido %q", domain.ErrInvalidInput, *in.ContractType)
		}
		c.ContractType = *in.ContractType
	}
	if in.FileURL != nil {
		c.FileURL = in.FileURL
		if *in.FileURL == "" {
			c.FileURL = nil
		}
	}
	if err := staffing.ValidateDates(c.StartDate, c.EndDate); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()
	if err := uc.contracts.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.detail(ctx, c)
}

// Delete elimina el contrato y, en cascada, sus asignaciones.
func (uc *ContractUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return err
	}
	if err := uc.contracts.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("contract_id", id).Msg("contrato eliminado")
	return nil
}

func (uc *ContractUseCase) detail(ctx context.Context, c *entity.Contract) (*dto.ContractResponse, error) {
	user, err := uc.users.GetByID(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	assignments, err := uc.assignments.ListByContract(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	positions := make(map[string]*entity.Position, len(assignments))
	for _, a := range assignments {
		if _, ok := positions[a.PositionID]; ok {
			continue
		}
		p, err := uc.positions.GetByID(ctx, a.PositionID)
		if err != nil {
			return nil, err
		}
		positions[a.PositionID] = p
	}
	return toContractResponse(c, user, assignments, positions), nil
}

func (uc *ContractUseCase) mustGet(ctx context.Context, id string) (*entity.Contract, error) {
	if err := usecase.RequireID("id", id); err != nil {
		return nil, err
	}
	c, err := uc.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: contrato no encontrado", domain.ErrNotFound)
	}
	return c, nil
}

func toContractResponse(c *entity.Contract, user *entity.User, assignments []*entity.Assignment, positions map[string]*entity.Position) *dto.ContractResponse {
	out := &dto.ContractResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		User:         usecase.ToUserSummary(user),
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Status:       c.Status,
		ContractType: c.ContractType,
		FileURL:      c.FileURL,
		Assignments:  make([]dto.AssignmentResponse, 0, len(assignments)),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for _, a := range assignments {
		out.Assignments = append(out.Assignments, *toAssignmentResponse(a, positions[a.PositionID]))
	}
	return out
}

func toAssignmentResponse(a *entity.Assignment, position *entity.Position) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:                   a.ID,
		ContractID:           a.ContractID,
		PositionID:           a.PositionID,
		Position:             usecase.ToPositionFlat(position),
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		WorkloadPercentage:   a.WorkloadPercentage,
		IsPrimary:            a.IsPrimary,
		CustomJobDescription: a.CustomJobDescription,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}
