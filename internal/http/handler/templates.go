package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"formora/internal/service"
)

// ListTemplates godoc
// @Summary List templates
// @Tags templates
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.TemplateListResult
// @Failure 400 {object} errorPayload
// @Router /templates [get]
func ListTemplates(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetTemplate godoc
// @Summary Get a template with its question statistics
// @Tags templates
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} model.Template
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /templates/{id} [get]
func GetTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		tpl, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeTemplateError(c, err)
		}
		return c.JSON(tpl)
	}
}

// ListQuestions godoc
// @Summary List a template's questions
// @Tags templates
// @Produce json
// @Param id path int true "Template ID"
// @Param table_only query bool false "Only questions shown in tables"
// @Success 200 {array} model.Question
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /templates/{id}/questions [get]
func ListQuestions(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		qs, err := svc.Questions(c.UserContext(), id, c.QueryBool("table_only", false))
		if err != nil {
			return writeTemplateError(c, err)
		}
		return c.JSON(qs)
	}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeTemplateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "template not found")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
