package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"formora/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// defaultOperator is recorded as template owner when a request carries no X-Operator header.
func RegisterRoutes(app *fiber.App, db *sql.DB, importSvc service.ImportService, templateSvc service.TemplateService, defaultOperator string) {
	validate := NewValidator()

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/imports", ImportData(importSvc, validate, defaultOperator))

	app.Get("/templates", ListTemplates(templateSvc))
	app.Get("/templates/:id", GetTemplate(templateSvc))
	app.Get("/templates/:id/questions", ListQuestions(templateSvc))
}

// HealthCheck godoc
// @Summary Readiness probe
// @Description Pings the database.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
