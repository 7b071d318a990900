package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/portal-api/internal/application/analytics"
	"github.com/jhoicas/portal-api/internal/application/auth"
	"github.com/jhoicas/portal-api/internal/application/hr"
	"github.com/jhoicas/portal-api/internal/application/survey"
	"github.com/jhoicas/portal-api/internal/application/usecase"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/infrastructure/pdf"
	"github.com/jhoicas/portal-api/internal/infrastructure/storage"
	"github.com/jhoicas/portal-api/internal/infrastructure/xmlexport"
	apphttp "github.com/jhoicas/portal-api/internal/interfaces/http"
	"github.com/jhoicas/portal-api/internal/testutil/memstore"
	"github.com/jhoicas/portal-api/pkg/logger"
)

const adminPassword = "admin123"

// buildPortal arma la API completa sobre el store en memoria con un ADMIN sembrado.
func buildPortal(t *testing.T) (*fiber.App, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	log := logger.Nop()

	hash, err := usecase.HashPassword(adminPassword)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: uuid.New().String(), EmployeeID: "ADM-1", Username: "admin",
		FirstName: "Ada", LastName: "Root", PasswordHash: hash,
		Role: entity.RoleAdmin, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))

	files, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:     usecase.NewUserUseCase(store.Users(), log),
		PositionUC: usecase.NewPositionUseCase(store.Positions(), store.Assignments(), xmlexport.NewOrgChartExporter(), log),
		CommentUC:  usecase.NewCommentUseCase(store.Comments()),
		UploadUC:   usecase.NewUploadUseCase(files),
		ContractUC: hr.NewContractUseCase(store, store.Contracts(), store.Assignments(), store.Users(), store.Positions(), log),
		AssignmentUC: hr.NewAssignmentUseCase(store, store.Assignments(), store.Contracts(),
			store.Positions(), store.Users(), log),
		SurveyUC:    survey.NewUseCase(store.Surveys(), store.Responses(), pdf.NewSurveyReportGenerator("Portal"), log),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Analytics()),
		JWTSecret:   testJWTSecret,
	})
	return app, store
}

// call ejecuta la petición con cuerpo JSON opcional y devuelve status y cuerpo crudo.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": username, "password": password})
	require.Equal(t, http.StatusOK, status, string(raw))
	tok, _ := decode(t, raw)["access_token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func createUser(t *testing.T, app *fiber.App, token, username, role string) string {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, "/api/auth/admin/users", token, fiber.Map{
		"employeeId": "EMP-" + username, "username": username, "firstName": "Nombre", "lastName": "Apellido",
		"password": "secreto1", "role": role,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode(t, raw)["id"].(string)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	app, _ := buildPortal(t)

	status, raw := call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "admin", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(raw), "UNAUTHORIZED")

	// una contraseña corta tampoco revela nada: mismo 401 que cualquier otra
	status, raw = call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "admin", "password": "abc"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(raw), "UNAUTHORIZED")

	status, raw = call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "VALIDATION")
}

func TestProfile_DevuelveUsuarioDelToken(t *testing.T) {
	app, _ := buildPortal(t)
	tok := login(t, app, "admin", adminPassword)

	status, raw := call(t, app, http.MethodGet, "/api/auth/profile", tok, nil)
	require.Equal(t, http.StatusOK, status)
	body := decode(t, raw)
	assert.Equal(t, "admin", body["username"])
	assert.NotContains(t, string(raw), "password")
}

func TestUsers_DuplicadoYPermisos(t *testing.T) {
	app, _ := buildPortal(t)
	admin := login(t, app, "admin", adminPassword)

	createUser(t, app, admin, "empleado", entity.RoleEmployee)
	status, _ := call(t, app, http.MethodPost, "/api/auth/admin/users", admin, fiber.Map{
		"employeeId": "OTRO", "username": "empleado", "firstName": "X", "lastName": "Y",
		"password": "secreto1", "role": entity.RoleEmployee,
	})
	assert.Equal(t, http.StatusConflict, status)

	emp := login(t, app, "empleado", "secreto1")
	status, _ = call(t, app, http.MethodGet, "/api/auth/admin/users", emp, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodGet, "/api/hr/contracts", emp, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = call(t, app, http.MethodGet, "/api/auth/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAssignments_CargaSuperiorAl100(t *testing.T) {
	app, _ := buildPortal(t)
	admin := login(t, app, "admin", adminPassword)
	userID := createUser(t, app, admin, "ana", entity.RoleEmployee)

	status, raw := call(t, app, http.MethodPost, "/api/hr/contracts", admin, fiber.Map{
		"userId": userID, "startDate": "2024-01-01", "contractType": entity.ContractFullTime,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	contract := decode(t, raw)
	assert.Equal(t, entity.ContractDraft, contract["status"])
	contractID := contract["id"].(string)

	status, raw = call(t, app, http.MethodPost, "/api/auth/admin/positions", admin, fiber.Map{"title": "Analista", "isAggregate": true})
	require.Equal(t, http.StatusCreated, status, string(raw))
	positionID := decode(t, raw)["id"].(string)

	assignment := fiber.Map{"contractId": contractID, "positionId": positionID, "startDate": "2024-01-01", "workloadPercentage": "60"}

	status, raw = call(t, app, http.MethodPost, "/api/hr/assignments", admin, assignment)
	assert.Equal(t, http.StatusBadRequest, status, "contrato en DRAFT")
	assert.Contains(t, string(raw), "CONTRACT_NOT_ACTIVE")

	status, _ = call(t, app, http.MethodPatch, "/api/hr/contracts/"+contractID+"/status", admin, fiber.Map{"status": entity.ContractActive})
	require.Equal(t, http.StatusOK, status)

	status, raw = call(t, app, http.MethodPost, "/api/hr/assignments", admin, assignment)
	require.Equal(t, http.StatusCreated, status, string(raw))

	assignment["workloadPercentage"] = "50"
	status, raw = call(t, app, http.MethodPost, "/api/hr/assignments", admin, assignment)
	assert.Equal(t, http.StatusBadRequest, status)
	body := decode(t, raw)
	assert.Equal(t, "WORKLOAD_EXCEEDED", body["code"])
	assert.Contains(t, body["message"], "Total workload exceeds 100%")
}

func TestOrgChartExport_ETag(t *testing.T) {
	app, _ := buildPortal(t)
	admin := login(t, app, "admin", adminPassword)

	status, _ := call(t, app, http.MethodPost, "/api/auth/admin/positions", admin, fiber.Map{"title": "Gerencia"})
	require.Equal(t, http.StatusCreated, status)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/admin/org-chart/export", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "xml")
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	doc, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(doc), "Gerencia")

	req = httptest.NewRequest(http.MethodGet, "/api/auth/admin/org-chart/export", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	req.Header.Set("If-None-Match", etag)
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
}

func TestSurveys_EnvioAnonimoYResultados(t *testing.T) {
	app, _ := buildPortal(t)
	admin := login(t, app, "admin", adminPassword)

	status, raw := call(t, app, http.MethodPost, "/api/surveys", admin, fiber.Map{
		"title": "Clima laboral",
		"questions": []fiber.Map{
			{"question": "¿Qué mejorarías?", "type": "text", "isRequired": true},
			{"question": "¿Recomendarías la empresa?", "type": "radio", "options": `["Sí","No"]`},
		},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	sv := decode(t, raw)
	surveyID := sv["id"].(string)
	questions := sv["questions"].([]any)
	require.Len(t, questions, 2)
	textQ := questions[0].(map[string]any)["id"].(string)
	radioQ := questions[1].(map[string]any)["id"].(string)

	status, raw = call(t, app, http.MethodGet, "/api/surveys/active", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), surveyID)

	status, _ = call(t, app, http.MethodPost, "/api/surveys/"+surveyID+"/submit", "", fiber.Map{
		"responses": []fiber.Map{{"questionId": radioQ, "answer": "Sí"}},
	})
	assert.Equal(t, http.StatusBadRequest, status, "falta la pregunta obligatoria")

	status, _ = call(t, app, http.MethodPost, "/api/surveys/"+surveyID+"/submit", "", fiber.Map{
		"responses": []fiber.Map{{"questionId": textQ, "answer": "Más pausas"}, {"questionId": radioQ, "answer": "Tal vez"}},
	})
	assert.Equal(t, http.StatusBadRequest, status, "opción fuera de la lista")

	status, raw = call(t, app, http.MethodPost, "/api/surveys/"+surveyID+"/submit", "", fiber.Map{
		"responses": []fiber.Map{{"questionId": textQ, "answer": "Más pausas"}, {"questionId": radioQ, "answer": "Sí"}},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = call(t, app, http.MethodGet, "/api/surveys/"+surveyID+"/results?includeUsers=true", admin, nil)
	require.Equal(t, http.StatusOK, status)
	results := decode(t, raw)
	assert.EqualValues(t, 1, results["totalSubmissions"])
	assert.NotContains(t, string(raw), `"userId"`, "respuesta anónima sin identidad")

	req := httptest.NewRequest(http.MethodGet, "/api/surveys/"+surveyID+"/results/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestComments_PublicoYConteo(t *testing.T) {
	app, _ := buildPortal(t)
	admin := login(t, app, "admin", adminPassword)

	status, raw := call(t, app, http.MethodPost, "/api/comments", "", fiber.Map{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, status, string(raw))

	status, raw = call(t, app, http.MethodPost, "/api/comments", "", fiber.Map{"name": "  ", "message": "Buen ambiente"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Nil(t, decode(t, raw)["name"], "nombre en blanco queda anónimo")

	status, raw = call(t, app, http.MethodGet, "/api/comments/count", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, decode(t, raw)["count"])

	status, _ = call(t, app, http.MethodGet, "/api/comments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestComments_RateLimit(t *testing.T) {
	app, _ := buildPortal(t)
	var last int
	for i := 0; i < 21; i++ {
		last, _ = call(t, app, http.MethodPost, "/api/comments", "", fiber.Map{"message": "hola"})
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestDashboard_Resumen(t *testing.T) {
	app, _ := buildPortal(t)
	admin := login(t, app, "admin", adminPassword)
	createUser(t, app, admin, "beto", entity.RoleHR)

	hrTok := login(t, app, "beto", "secreto1")
	status, raw := call(t, app, http.MethodGet, "/api/dashboard/summary", hrTok, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	body := decode(t, raw)
	assert.EqualValues(t, 2, body["totalUsers"])
	assert.Contains(t, body["contractsByStatus"], entity.ContractActive)
}

func TestUploadProfileImage(t *testing.T) {
	app, _ := buildPortal(t)
	admin := login(t, app, "admin", adminPassword)

	upload := func(filename string, content []byte) (int, []byte) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, _ = part.Write(content)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/upload/profile-image", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+admin)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, raw
	}

	status, raw := upload("foto.PNG", []byte("\x89PNG fake"))
	require.Equal(t, http.StatusCreated, status, string(raw))
	url, _ := decode(t, raw)["fileUrl"].(string)
	assert.True(t, strings.HasPrefix(url, "/uploads/profiles/profile-"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	status, _ = upload("script.exe", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, status)
}
