// seed crea el usuario administrador inicial y, opcionalmente, una encuesta de ejemplo.
//
// Uso: go run ./cmd/seed [--sample-survey]
// Lee ADMIN_USERNAME y ADMIN_PASSWORD; no hace nada si ya existe un usuario ADMIN.
package main

import (
	"context"
	"os"
	"slices"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/survey"
	"github.com/jhoicas/portal-api/internal/application/usecase"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/portal-api/internal/infrastructure/pdf"
	"github.com/jhoicas/portal-api/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-api/pkg/config"
	"github.com/jhoicas/portal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "-seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	exists, err := userRepo.ExistsWithRole(ctx, entity.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar administrador")
	}
	if exists {
		log.Info().Msg("ya existe un usuario ADMIN, no se crea otro")
	} else {
		if cfg.Admin.Password == "" {
			log.Fatal().Msg("ADMIN_PASSWORD es requerido para crear el administrador")
		}
		admin, err := usecase.NewUserUseCase(userRepo, log).Create(ctx, dto.CreateUserRequest{
			EmployeeID: "ADMIN-001",
			Username:   cfg.Admin.Username,
			FirstName:  "Administrador",
			LastName:   "Portal",
			Password:   cfg.Admin.Password,
			Role:       entity.RoleAdmin,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador")
		}
		log.Info().Str("user_id", admin.ID).Str("username", admin.Username).Msg("administrador creado")
	}

	if !slices.Contains(os.Args[1:], "--sample-survey") {
		return
	}
	surveyUC := survey.NewUseCase(
		postgres.NewSurveyRepository(pool),
		postgres.NewResponseRepository(pool),
		infrapdf.NewSurveyReportGenerator(cfg.App.Name),
		log,
	)
	existing, err := surveyUC.ListAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar encuestas")
	}
	if len(existing) > 0 {
		log.Info().Int("surveys", len(existing)).Msg("ya hay encuestas, se omite la de ejemplo")
		return
	}
	options := `["Muy satisfecho","Satisfecho","Neutral","Insatisfecho"]`
	topics := `["Comunicación","Herramientas","Capacitación","Bienestar"]`
	sv, err := surveyUC.Create(ctx, dto.CreateSurveyRequest{
		Title:       "Encuesta de clima laboral",
		Description: "Queremos conocer tu opinión sobre el ambiente de trabajo.",
		Questions: []dto.CreateQuestionRequest{
			{Question: "¿Qué tan satisfecho estás con tu equipo?", Type: "radio", Options: &options, IsRequired: true},
			{Question: "¿Qué temas deberíamos mejorar?", Type: "checkbox", Options: &topics},
			{Question: "Comentarios adicionales", Type: "text"},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear encuesta de ejemplo")
	}
	log.Info().Str("survey_id", sv.ID).Msg("encuesta de ejemplo creada")
}
