package usecase_test

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/usecase"
	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/testutil/memstore"
	"github.com/jhoicas/portal-api/pkg/logger"
)

func strptr(s string) *string { return &s }

// ── Usuarios ────────────────────────────────────────────────────────────────

func newUser(t *testing.T, uc *usecase.UserUseCase, username string, managerID *string) *dto.UserResponse {
	t.Helper()
	u, err := uc.Create(context.Background(), dto.CreateUserRequest{
		EmployeeID: "EMP-" + username,
		Username:   username,
		FirstName:  "Nombre",
		LastName:   "Apellido",
		Password:   "secreto1",
		Role:       entity.RoleEmployee,
		ManagerID:  managerID,
	})
	require.NoError(t, err)
	return u
}

func TestUserCreate_NormalizaYDetectaDuplicados(t *testing.T) {
	uc := usecase.NewUserUseCase(memstore.New().Users(), logger.Nop())
	u := newUser(t, uc, "  Laura ", strptr(""))

	assert.Equal(t, "laura", u.Username)
	assert.Nil(t, u.ManagerID, "managerId vacío se guarda como NULL")

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		EmployeeID: "OTRO", Username: "LAURA", FirstName: "x", LastName: "y", Password: "secreto1", Role: entity.RoleHR,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserCreate_JefeInexistente(t *testing.T) {
	uc := usecase.NewUserUseCase(memstore.New().Users(), logger.Nop())
	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		EmployeeID: "E1", Username: "x", FirstName: "x", LastName: "y", Password: "secreto1",
		Role: entity.RoleEmployee, ManagerID: strptr(uuid.New().String()),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUpdate_JefeNoPuedeSerSubordinado(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(memstore.New().Users(), logger.Nop())
	jefe := newUser(t, uc, "jefe", nil)
	sub := newUser(t, uc, "sub", &jefe.ID)
	nieto := newUser(t, uc, "nieto", &sub.ID)

	_, err := uc.Update(ctx, jefe.ID, dto.UpdateUserRequest{ManagerID: &nieto.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, jefe.ID, dto.UpdateUserRequest{ManagerID: &jefe.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.Get(ctx, jefe.ID)
	require.NoError(t, err)
	require.Len(t, got.Subordinates, 1)
	assert.Equal(t, sub.ID, got.Subordinates[0].ID)
}

func TestUserUpdate_UsernameOcupado(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(memstore.New().Users(), logger.Nop())
	newUser(t, uc, "ana", nil)
	beto := newUser(t, uc, "beto", nil)

	_, err := uc.Update(ctx, beto.ID, dto.UpdateUserRequest{Username: strptr("ANA")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserDelete_Inexistente(t *testing.T) {
	uc := usecase.NewUserUseCase(memstore.New().Users(), logger.Nop())
	assert.ErrorIs(t, uc.Delete(context.Background(), uuid.New().String()), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), "no-uuid"), domain.ErrInvalidInput)
}

// ── Cargos ──────────────────────────────────────────────────────────────────

func newPositions() *usecase.PositionUseCase {
	s := memstore.New()
	return usecase.NewPositionUseCase(s.Positions(), s.Assignments(), nil, logger.Nop())
}

func mkPosition(t *testing.T, uc *usecase.PositionUseCase, title string, parent *string) *dto.PositionResponse {
	t.Helper()
	p, err := uc.Create(context.Background(), dto.CreatePositionRequest{Title: title, ParentPositionID: parent})
	require.NoError(t, err)
	return p
}

func TestPositionCreate_TituloUnicoNormalizado(t *testing.T) {
	uc := newPositions()
	mkPosition(t, uc, "Gerente General", nil)

	_, err := uc.Create(context.Background(), dto.CreatePositionRequest{Title: "  gerente   GENERAL "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), dto.CreatePositionRequest{Title: "Otro", ParentPositionID: strptr(uuid.New().String())})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPositionReparent_RechazaCiclos(t *testing.T) {
	ctx := context.Background()
	uc := newPositions()
	ceo := mkPosition(t, uc, "CEO", nil)
	cto := mkPosition(t, uc, "CTO", &ceo.ID)
	dev := mkPosition(t, uc, "Dev", &cto.ID)

	_, err := uc.Reparent(ctx, ceo.ID, &dev.ID)
	assert.ErrorIs(t, err, domain.ErrPositionCycle)

	_, err = uc.Reparent(ctx, cto.ID, &cto.ID)
	assert.ErrorIs(t, err, domain.ErrPositionCycle)

	_, err = uc.Reparent(ctx, cto.ID, strptr("no-uuid"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Reparent(ctx, cto.ID, strptr(uuid.New().String()))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	moved, err := uc.Reparent(ctx, dev.ID, &ceo.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.ParentPositionID)
	assert.Equal(t, ceo.ID, *moved.ParentPositionID)

	root, err := uc.Reparent(ctx, dev.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, root.ParentPositionID)
}

func TestPositionDelete_HijosQuedanComoRaiz(t *testing.T) {
	ctx := context.Background()
	uc := newPositions()
	ceo := mkPosition(t, uc, "CEO", nil)
	cto := mkPosition(t, uc, "CTO", &ceo.ID)

	require.NoError(t, uc.Delete(ctx, ceo.ID))

	chart, err := uc.OrgChart(ctx)
	require.NoError(t, err)
	require.Len(t, chart, 1)
	assert.Equal(t, cto.ID, chart[0].ID)
	assert.Nil(t, chart[0].ParentPositionID)
}

func TestPositionCoordinates(t *testing.T) {
	ctx := context.Background()
	uc := newPositions()
	p := mkPosition(t, uc, "CEO", nil)
	x, y := 120.5, 40.0

	require.NoError(t, uc.UpdateCoordinates(ctx, p.ID, dto.CoordinatesRequest{X: &x, Y: &y}))
	got, err := uc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.X)
	assert.Equal(t, x, *got.X)

	err = uc.UpdateCoordinates(ctx, uuid.New().String(), dto.CoordinatesRequest{X: &x})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Comentarios ─────────────────────────────────────────────────────────────

func TestComment_NombreEnBlancoYLimites(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCommentUseCase(memstore.New().Comments())

	c, err := uc.Create(ctx, dto.CreateCommentRequest{Name: strptr("   "), Message: " hola "})
	require.NoError(t, err)
	assert.Nil(t, c.Name)
	assert.Equal(t, "hola", c.Message)

	_, err = uc.Create(ctx, dto.CreateCommentRequest{Message: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateCommentRequest{Message: strings.Repeat("a", usecase.MaxCommentLength+1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, dto.CreateCommentRequest{Message: "m"})
		require.NoError(t, err)
	}
	list, err := uc.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	list, err = uc.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	n, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n.Count)
}

// ── Subida de imágenes ──────────────────────────────────────────────────────

type storageMock struct{ mock.Mock }

func (m *storageMock) Save(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, folder, name, r, size, contentType)
	return args.String(0), args.Error(1)
}

func TestUpload_ValidaExtensionYTamano(t *testing.T) {
	st := &storageMock{}
	uc := usecase.NewUploadUseCase(st)
	ctx := context.Background()

	_, err := uc.UploadProfileImage(ctx, "virus.exe", 10, bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadProfileImage(ctx, "grande.png", usecase.MaxProfileImageSize+1, bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	st.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_GuardaConNombreGenerado(t *testing.T) {
	st := &storageMock{}
	nameRe := regexp.MustCompile(`^profile-\d+-\d+\.jpg$`)
	st.On("Save", mock.Anything, usecase.ProfileFolder, mock.MatchedBy(nameRe.MatchString), mock.Anything, int64(3), "image/jpeg").
		Return("/uploads/profiles/x.jpg", nil).Once()

	out, err := usecase.NewUploadUseCase(st).UploadProfileImage(context.Background(), "Foto.JPG", 3, bytes.NewReader([]byte("abc")))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profiles/x.jpg", out.FileURL)
	assert.Regexp(t, nameRe, out.Filename)
	st.AssertExpectations(t)
}
