package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"formora/internal/formora"
	"formora/internal/service"
)

// OperatorHeader names the user on whose behalf an import runs.
const OperatorHeader = "X-Operator"

const importSuccessMessage = "Data imported successfully"

type importBody struct {
	APIToken   string `json:"api_token" validate:"required"`
	TemplateID int64  `json:"template_id" validate:"omitempty,gt=0"`
}

type importResponse struct {
	Message string `json:"message"`
	*service.ImportResult
}

// ImportData godoc
// @Summary Import Formora submissions
// @Description Fetches submissions for the token and stores per-question statistics.
// @Tags imports
// @Accept json
// @Produce json
// @Param body body importBody true "Import request"
// @Param X-Operator header string false "Operator recorded as template owner"
// @Success 200 {object} importResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /imports [post]
func ImportData(svc service.ImportService, validate *validator.Validate, defaultOperator string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body importBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		body.APIToken = strings.TrimSpace(body.APIToken)
		if err := validate.Struct(body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		}

		operator := strings.TrimSpace(c.Get(OperatorHeader))
		if operator == "" {
			operator = defaultOperator
		}

		res, err := svc.Import(c.UserContext(), service.ImportRequest{
			APIToken:   body.APIToken,
			TemplateID: body.TemplateID,
			Operator:   operator,
		})
		if err != nil {
			return writeImportError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(importResponse{Message: importSuccessMessage, ImportResult: res})
	}
}

func writeImportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTokenRequired), errors.Is(err, service.ErrInvalidTemplateID):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrNoData):
		return writeError(c, fiber.StatusNotFound, "NO_DATA", "No data found for the specified criteria")
	case errors.Is(err, formora.ErrAPIUnavailable):
		cause := strings.TrimPrefix(err.Error(), formora.ErrAPIUnavailable.Error()+": ")
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Failed to fetch data from Formora API: "+cause)
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
