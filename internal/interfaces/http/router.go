package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	appanalytics "github.com/jhoicas/portal-api/internal/application/analytics"
	"github.com/jhoicas/portal-api/internal/application/auth"
	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/hr"
	"github.com/jhoicas/portal-api/internal/application/survey"
	"github.com/jhoicas/portal-api/internal/application/usecase"
	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	PositionUC   *usecase.PositionUseCase
	CommentUC    *usecase.CommentUseCase
	UploadUC     *usecase.UploadUseCase
	ContractUC   *hr.ContractUseCase
	AssignmentUC *hr.AssignmentUseCase
	SurveyUC     *survey.UseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string

	// Límites por IP y minuto; 0 usa el valor por defecto.
	LoginRateLimit   int
	CommentRateLimit int
}

const (
	defaultLoginRateLimit   = 10
	defaultCommentRateLimit = 20
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authRequired := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	hrStaff := RequireRole(entity.RoleAdmin, entity.RoleHR)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UploadUC)
	authGroup.Post("/login", rateLimit(deps.LoginRateLimit, defaultLoginRateLimit), authHandler.Login)
	authGroup.Get("/profile", authRequired, authHandler.Profile)
	authGroup.Put("/change-password", authRequired, authHandler.ChangePassword)
	authGroup.Post("/upload/profile-image", authRequired, authHandler.UploadProfileImage)

	// Administración (solo ADMIN)
	admin := authGroup.Group("/admin", authRequired, adminOnly)

	userHandler := NewUserHandler(deps.UserUC)
	admin.Post("/users", userHandler.Create)
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.Get)
	admin.Put("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.Delete)

	positionHandler := NewPositionHandler(deps.PositionUC)
	admin.Post("/positions", positionHandler.Create)
	admin.Get("/positions", positionHandler.List)
	admin.Get("/positions/flat", positionHandler.ListFlat)
	admin.Get("/positions/:id", positionHandler.Get)
	admin.Put("/positions/:id", positionHandler.Update)
	admin.Delete("/positions/:id", positionHandler.Delete)
	admin.Put("/positions/:id/parent", positionHandler.Reparent)
	admin.Put("/positions/:id/coordinates", positionHandler.UpdateCoordinates)
	admin.Get("/org-chart", positionHandler.OrgChart)
	admin.Get("/org-chart/export", positionHandler.ExportOrgChart)

	// RRHH (ADMIN, HR)
	hrGroup := api.Group("/hr", authRequired, hrStaff)

	contractHandler := NewContractHandler(deps.ContractUC)
	hrGroup.Post("/contracts", contractHandler.Create)
	hrGroup.Get("/contracts", contractHandler.List)
	hrGroup.Get("/contracts/:id", contractHandler.Get)
	hrGroup.Put("/contracts/:id", contractHandler.Update)
	hrGroup.Patch("/contracts/:id/status", contractHandler.UpdateStatus)
	hrGroup.Delete("/contracts/:id", contractHandler.Delete)

	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	hrGroup.Post("/assignments", assignmentHandler.Create)
	hrGroup.Get("/assignments", assignmentHandler.List)
	hrGroup.Get("/assignments/:id", assignmentHandler.Get)
	hrGroup.Put("/assignments/:id", assignmentHandler.Update)
	hrGroup.Delete("/assignments/:id", assignmentHandler.Delete)

	// Encuestas: /active antes de /:id
	surveys := api.Group("/surveys")
	surveyHandler := NewSurveyHandler(deps.SurveyUC)
	surveys.Get("/active", surveyHandler.ListActive)
	surveys.Post("/", authRequired, hrStaff, surveyHandler.Create)
	surveys.Get("/", authRequired, hrStaff, surveyHandler.ListAll)
	surveys.Get("/:id", surveyHandler.Get)
	surveys.Post("/:id/submit", OptionalAuth(deps.JWTSecret), surveyHandler.Submit)
	surveys.Get("/:id/results", authRequired,
		RequireRole(entity.RoleAdmin, entity.RoleHR, entity.RoleManager), surveyHandler.Results)
	surveys.Get("/:id/results/pdf", authRequired,
		RequireRole(entity.RoleAdmin, entity.RoleHR, entity.RoleManager), surveyHandler.ResultsPDF)
	surveys.Delete("/:id", authRequired, adminOnly, surveyHandler.Delete)

	// Buzón de comentarios
	comments := api.Group("/comments")
	commentHandler := NewCommentHandler(deps.CommentUC)
	comments.Post("/", rateLimit(deps.CommentRateLimit, defaultCommentRateLimit), commentHandler.Create)
	comments.Get("/", authRequired, hrStaff, commentHandler.List)
	comments.Get("/count", authRequired, hrStaff, commentHandler.Count)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", authRequired, hrStaff, dashboardHandler.GetSummary)
}

// rateLimit limita peticiones por IP en ventanas de un minuto.
func rateLimit(max, def int) fiber.Handler {
	if max <= 0 {
		max = def
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas solicitudes, intente más tarde",
			})
		},
	})
}
