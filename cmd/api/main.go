package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/portal-api/docs"
	appanalytics "github.com/jhoicas/portal-api/internal/application/analytics"
	"github.com/jhoicas/portal-api/internal/application/auth"
	"github.com/jhoicas/portal-api/internal/application/hr"
	"github.com/jhoicas/portal-api/internal/application/ports"
	"github.com/jhoicas/portal-api/internal/application/survey"
	"github.com/jhoicas/portal-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/portal-api/internal/infrastructure/pdf"
	"github.com/jhoicas/portal-api/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-api/internal/infrastructure/storage"
	"github.com/jhoicas/portal-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/portal-api/internal/interfaces/http"
	"github.com/jhoicas/portal-api/pkg/config"
	"github.com/jhoicas/portal-api/pkg/logger"
)

// @title                       Company Portal API
// @version                     1.0
// @description                 Portal interno: usuarios, organigrama, contratos, encuestas y buzón de comentarios.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	// Almacenamiento de imágenes de perfil: disco local servido en /uploads o MinIO.
	var files ports.FileStorage
	switch cfg.Storage.Driver {
	case "minio":
		files, err = storage.NewMinioStorage(ctx, storage.MinioConfig{
			Endpoint:  cfg.Storage.MinioEndpoint,
			AccessKey: cfg.Storage.MinioAccessKey,
			SecretKey: cfg.Storage.MinioSecretKey,
			Bucket:    cfg.Storage.MinioBucket,
			UseSSL:    cfg.Storage.MinioUseSSL,
			PublicURL: cfg.Storage.MinioPublicURL,
		}, log)
	default:
		files, err = storage.NewLocalStorage(cfg.Storage.UploadDir, "/uploads")
	}
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("almacenamiento de archivos")
	}

	userRepo := postgres.NewUserRepository(pool)
	positionRepo := postgres.NewPositionRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	surveyRepo := postgres.NewSurveyRepository(pool)
	responseRepo := postgres.NewResponseRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, log)
	positionUC := usecase.NewPositionUseCase(positionRepo, assignmentRepo, xmlexport.NewOrgChartExporter(), log)
	commentUC := usecase.NewCommentUseCase(commentRepo)
	uploadUC := usecase.NewUploadUseCase(files)
	contractUC := hr.NewContractUseCase(txRunner, contractRepo, assignmentRepo, userRepo, positionRepo, log)
	assignmentUC := hr.NewAssignmentUseCase(txRunner, assignmentRepo, contractRepo, positionRepo, userRepo, log)
	surveyUC := survey.NewUseCase(surveyRepo, responseRepo, infrapdf.NewSurveyReportGenerator(cfg.App.Name), log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	metrics := httpRouter.NewMetrics()

	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(cfg.HTTP.AllowedOrigins(), ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, If-None-Match",
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		ExposeHeaders: "ETag, Content-Disposition",
	}))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Company Portal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())
	if cfg.Storage.Driver == "local" {
		app.Static("/uploads", cfg.Storage.UploadDir, fiber.Static{MaxAge: 3600})
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		PositionUC:   positionUC,
		CommentUC:    commentUC,
		UploadUC:     uploadUC,
		ContractUC:   contractUC,
		AssignmentUC: assignmentUC,
		SurveyUC:     surveyUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
