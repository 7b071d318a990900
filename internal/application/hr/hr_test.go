package hr_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/hr"
	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/testutil/memstore"
	"github.com/jhoicas/portal-api/pkg/logger"
)

type fixture struct {
	store       *memstore.Store
	contracts   *hr.ContractUseCase
	assignments *hr.AssignmentUseCase
}

func newFixture() *fixture {
	s := memstore.New()
	log := logger.Nop()
	return &fixture{
		store:       s,
		contracts:   hr.NewContractUseCase(s, s.Contracts(), s.Assignments(), s.Users(), s.Positions(), log),
		assignments: hr.NewAssignmentUseCase(s, s.Assignments(), s.Contracts(), s.Positions(), s.Users(), log),
	}
}

func (f *fixture) user(t *testing.T, name string) *entity.User {
	t.Helper()
	u := &entity.User{
		ID: uuid.NewString(), EmployeeID: "EMP-" + name, Username: name,
		FirstName: name, LastName: "Test", Role: entity.RoleEmployee, IsActive: true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) position(t *testing.T, title string, aggregate bool) *entity.Position {
	t.Helper()
	p := &entity.Position{ID: uuid.NewString(), Title: title, IsAggregate: aggregate, IsActive: true}
	require.NoError(t, f.store.Positions().Create(context.Background(), p))
	return p
}

func (f *fixture) activeContract(t *testing.T, u *entity.User) string {
	t.Helper()
	ctx := context.Background()
	c, err := f.contracts.Create(ctx, dto.CreateContractRequest{
		UserID:    u.ID,
		StartDate: dto.Date{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ContractDraft, c.Status, "los contratos nacen en DRAFT")
	assert.Equal(t, entity.ContractFullTime, c.ContractType)
	_, err = f.contracts.UpdateStatus(ctx, c.ID, dto.UpdateContractStatusRequest{Status: entity.ContractActive})
	require.NoError(t, err)
	return c.ID
}

func pct(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func assign(contractID, positionID string, workload *decimal.Decimal) dto.CreateAssignmentRequest {
	return dto.CreateAssignmentRequest{
		ContractID:         contractID,
		PositionID:         positionID,
		StartDate:          dto.Date{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		WorkloadPercentage: workload,
	}
}

func TestContract_CreateUsuarioInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.contracts.Create(context.Background(), dto.CreateContractRequest{
		UserID:    uuid.NewString(),
		StartDate: dto.Date{Time: time.Now()},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContract_FechasInvertidas(t *testing.T) {
	f := newFixture()
	u := f.user(t, "ali")
	end := dto.Date{Time: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
	_, err := f.contracts.Create(context.Background(), dto.CreateContractRequest{
		UserID:    u.ID,
		StartDate: dto.Date{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		EndDate:   &end,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContract_EstadoDesconocido(t *testing.T) {
	f := newFixture()
	id := f.activeContract(t, f.user(t, "sara"))
	_, err := f.contracts.UpdateStatus(context.Background(), id, dto.UpdateContractStatusRequest{Status: "PAUSED"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContract_GetIncluyeAsignacionesYCargo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.user(t, "reza")
	p := f.position(t, "Contador", false)
	cid := f.activeContract(t, u)
	_, err := f.assignments.Create(ctx, assign(cid, p.ID, pct(40)))
	require.NoError(t, err)

	out, err := f.contracts.Get(ctx, cid)
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.Equal(t, u.Username, out.User.Username)
	require.Len(t, out.Assignments, 1)
	require.NotNil(t, out.Assignments[0].Position)
	assert.Equal(t, "Contador", out.Assignments[0].Position.Title)
}

func TestContract_DeleteEliminaAsignaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cid := f.activeContract(t, f.user(t, "nima"))
	a, err := f.assignments.Create(ctx, assign(cid, f.position(t, "Analista", true).ID, nil))
	require.NoError(t, err)

	require.NoError(t, f.contracts.Delete(ctx, cid))
	_, err = f.assignments.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignment_WorkloadPorDefecto100(t *testing.T) {
	f := newFixture()
	cid := f.activeContract(t, f.user(t, "mina"))
	out, err := f.assignments.Create(context.Background(), assign(cid, f.position(t, "Gerente", false).ID, nil))
	require.NoError(t, err)
	assert.True(t, out.WorkloadPercentage.Equal(decimal.NewFromInt(100)))
}

func TestAssignment_ContratoNoActivo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c, err := f.contracts.Create(ctx, dto.CreateContractRequest{UserID: f.user(t, "omid").ID, StartDate: dto.Date{Time: time.Now()}})
	require.NoError(t, err)

	_, err = f.assignments.Create(ctx, assign(c.ID, f.position(t, "Auxiliar", true).ID, pct(50)))
	assert.ErrorIs(t, err, domain.ErrContractNotActive)
}

func TestAssignment_CargoInexistente(t *testing.T) {
	f := newFixture()
	cid := f.activeContract(t, f.user(t, "leila"))
	_, err := f.assignments.Create(context.Background(), assign(cid, uuid.NewString(), pct(50)))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignment_SumaSupera100(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cid := f.activeContract(t, f.user(t, "hamed"))
	_, err := f.assignments.Create(ctx, assign(cid, f.position(t, "Soporte", true).ID, pct(60)))
	require.NoError(t, err)
	_, err = f.assignments.Create(ctx, assign(cid, f.position(t, "Ventas", true).ID, pct(30)))
	require.NoError(t, err)

	_, err = f.assignments.Create(ctx, assign(cid, f.position(t, "Compras", true).ID, pct(20)))
	require.ErrorIs(t, err, domain.ErrWorkloadExceeded)
	assert.Contains(t, err.Error(), "Current: 90%, Requested: 20%")

	_, err = f.assignments.Create(ctx, assign(cid, f.position(t, "Archivo", true).ID, pct(10)))
	assert.NoError(t, err, "90 + 10 = 100 es válido")
}

func TestAssignment_UpdateExcluyeLaPropia(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cid := f.activeContract(t, f.user(t, "parisa"))
	a, err := f.assignments.Create(ctx, assign(cid, f.position(t, "Diseño", true).ID, pct(60)))
	require.NoError(t, err)
	_, err = f.assignments.Create(ctx, assign(cid, f.position(t, "Calidad", true).ID, pct(30)))
	require.NoError(t, err)

	out, err := f.assignments.Update(ctx, a.ID, dto.UpdateAssignmentRequest{WorkloadPercentage: pct(70)})
	require.NoError(t, err)
	assert.True(t, out.WorkloadPercentage.Equal(decimal.NewFromInt(70)))
	require.NotNil(t, out.Contract)
	require.NotNil(t, out.Contract.User)

	_, err = f.assignments.Update(ctx, a.ID, dto.UpdateAssignmentRequest{WorkloadPercentage: pct(71)})
	require.ErrorIs(t, err, domain.ErrWorkloadExceeded)
	assert.Contains(t, err.Error(), "Current (excluding this): 30%")
}

func TestAssignment_WorkloadFueraDeRango(t *testing.T) {
	f := newFixture()
	cid := f.activeContract(t, f.user(t, "kian"))
	_, err := f.assignments.Create(context.Background(), assign(cid, f.position(t, "Jurídica", true).ID, pct(120)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssignment_CargoNoAgregadoOcupado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ceo := f.position(t, "Director general", false)
	first := f.activeContract(t, f.user(t, "arash"))
	second := f.activeContract(t, f.user(t, "bahar"))

	_, err := f.assignments.Create(ctx, assign(first, ceo.ID, pct(100)))
	require.NoError(t, err)
	_, err = f.assignments.Create(ctx, assign(second, ceo.ID, pct(50)))
	assert.ErrorIs(t, err, domain.ErrPositionOccupied)

	team := f.position(t, "Equipo de ventas", true)
	_, err = f.assignments.Create(ctx, assign(second, team.ID, pct(50)))
	assert.NoError(t, err, "un cargo agregado admite varios ocupantes")
}

func TestAssignment_CreateConcurrenteNoSupera100(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cid := f.activeContract(t, f.user(t, "dara"))
	team := f.position(t, "Operaciones", true)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.assignments.Create(ctx, assign(cid, team.ID, pct(40)))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrWorkloadExceeded)
		}
	}
	assert.Equal(t, 2, ok, "solo dos asignaciones de 40% caben en el contrato")
}

func TestContract_ReactivarConCargoOcupado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	gerencia := f.position(t, "Gerencia", false)
	first := f.activeContract(t, f.user(t, "navid"))
	_, err := f.assignments.Create(ctx, assign(first, gerencia.ID, pct(100)))
	require.NoError(t, err)
	_, err = f.contracts.UpdateStatus(ctx, first, dto.UpdateContractStatusRequest{Status: entity.ContractExpired})
	require.NoError(t, err)

	second := f.activeContract(t, f.user(t, "yasmin"))
	_, err = f.assignments.Create(ctx, assign(second, gerencia.ID, pct(100)))
	require.NoError(t, err, "un contrato vencido libera el cargo")

	_, err = f.contracts.UpdateStatus(ctx, first, dto.UpdateContractStatusRequest{Status: entity.ContractActive})
	require.ErrorIs(t, err, domain.ErrPositionOccupied)

	out, err := f.contracts.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, entity.ContractExpired, out.Status, "el estado no cambia si la regla falla")
}

func TestContract_ReactivarConAsignacionFinalizada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	gerencia := f.position(t, "Tesorería", false)
	first := f.activeContract(t, f.user(t, "elham"))
	req := assign(first, gerencia.ID, pct(100))
	req.EndDate = &dto.Date{Time: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)}
	_, err := f.assignments.Create(ctx, req)
	require.NoError(t, err)
	_, err = f.contracts.UpdateStatus(ctx, first, dto.UpdateContractStatusRequest{Status: entity.ContractTerminated})
	require.NoError(t, err)

	second := f.activeContract(t, f.user(t, "farid"))
	_, err = f.assignments.Create(ctx, assign(second, gerencia.ID, pct(100)))
	require.NoError(t, err)

	_, err = f.contracts.UpdateStatus(ctx, first, dto.UpdateContractStatusRequest{Status: entity.ContractActive})
	assert.NoError(t, err, "una asignación ya finalizada no compite por el cargo")
}

func TestAssignment_ExtenderFechaFinSobreOtroOcupante(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	auditoria := f.position(t, "Auditoría", false)
	first := f.activeContract(t, f.user(t, "shirin"))
	req := assign(first, auditoria.ID, pct(100))
	req.EndDate = &dto.Date{Time: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)}
	old, err := f.assignments.Create(ctx, req)
	require.NoError(t, err)

	second := f.activeContract(t, f.user(t, "kaveh"))
	_, err = f.assignments.Create(ctx, assign(second, auditoria.ID, pct(100)))
	require.NoError(t, err, "la asignación anterior ya terminó")

	_, err = f.assignments.Update(ctx, old.ID, dto.UpdateAssignmentRequest{
		EndDate: &dto.Date{Time: time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)},
	})
	require.ErrorIs(t, err, domain.ErrPositionOccupied)

	got, err := f.assignments.Get(ctx, old.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, 2024, got.EndDate.Year(), "la fecha fin no se modifica")

	_, err = f.assignments.Update(ctx, old.ID, dto.UpdateAssignmentRequest{
		EndDate: &dto.Date{Time: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
	})
	assert.NoError(t, err, "acortar una asignación finalizada no ocupa el cargo")
}

func TestAssignment_UpdateConcurrenteNoSupera100(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cid := f.activeContract(t, f.user(t, "roya"))
	team := f.position(t, "Logística", true)
	a, err := f.assignments.Create(ctx, assign(cid, team.ID, pct(30)))
	require.NoError(t, err)
	b, err := f.assignments.Create(ctx, assign(cid, team.ID, pct(30)))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = f.assignments.Update(ctx, id, dto.UpdateAssignmentRequest{WorkloadPercentage: pct(60)})
		}(id)
	}
	wg.Wait()

	out, err := f.contracts.Get(ctx, cid)
	require.NoError(t, err)
	total := decimal.Zero
	for _, x := range out.Assignments {
		total = total.Add(x.WorkloadPercentage)
	}
	assert.True(t, total.LessThanOrEqual(decimal.NewFromInt(100)), "total %s", total)
}

func TestContract_ListFiltraPorUsuario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ali := f.user(t, "alireza")
	f.activeContract(t, ali)
	f.activeContract(t, ali)
	f.activeContract(t, f.user(t, "zahra"))

	all, err := f.contracts.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := f.contracts.List(ctx, ali.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, c := range mine {
		assert.Equal(t, ali.ID, c.UserID)
	}

	_, err = f.contracts.List(ctx, "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
