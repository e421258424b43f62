package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"formora/docs"
	"formora/internal/config"
	"formora/internal/database"
	"formora/internal/database/migration"
	"formora/internal/formora"
	handlers "formora/internal/http/handler"
	"formora/internal/http/middleware"
	"formora/internal/logger"
	appotel "formora/internal/otel"
	"formora/internal/repository/postgres"
	"formora/internal/service"
	"formora/internal/storage"
)

// @title Formora Sync API
// @version 1.0
// @description Imports Formora survey submissions and serves per-question statistics.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, tzErr := time.LoadLocation(cfg.Timezone)
	if tzErr != nil {
		loc = time.UTC
	}
	log := logger.New(appotel.DefaultServiceName, cfg.LogLevel, loc)
	if tzErr != nil {
		log.WithError(tzErr).WithField("timezone", cfg.Timezone).Warn("unknown timezone, using UTC")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := appotel.Init(ctx, log, formora.TokenParam)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	client, err := formora.NewClient(cfg.Formora)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize formora client")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}
	importMetrics, err := service.NewImportMetrics(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register import metrics")
	}

	importOpts := []service.ImportOption{service.WithImportMetrics(importMetrics)}
	if cfg.MinIO.Enabled() {
		// Snapshot archive of every fetched payload
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize object storage")
		}
		importOpts = append(importOpts, service.WithSnapshotStore(objStore))
	} else {
		log.Info("object storage not configured, snapshot archive disabled")
	}

	// Initialize repositories and services
	templateRepo := postgres.NewTemplatePostgres(db)
	questionRepo := postgres.NewQuestionPostgres(db)
	importSvc := service.NewImportService(client, templateRepo, questionRepo, log, importOpts...)
	templateSvc := service.NewTemplateService(templateRepo, questionRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// An import waits on the Formora call, which may take up to its own timeout.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Formora.Timeout() + 15*time.Second,
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, importSvc, templateSvc, cfg.DefaultOperator)

	// Swagger UI with dynamic host and scheme, APP_HOST when the request has none
	app.Get("/swagger/*", handlers.Swagger(docs.SwaggerInfo, cfg.AppHost))

	addr := ":" + cfg.Port
	go func() {
		log.WithField("addr", addr).Info("server_starting")
		if err := app.Listen(addr); err != nil {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	shutdown(app, shutdownTracing, log)
}

func shutdown(app *fiber.App, shutdownTracing func(context.Context) error, log *logrus.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
	if err := shutdownTracing(ctx); err != nil {
		log.WithError(err).Error("tracing shutdown failed")
	}
	log.Info("server_stopped")
}
