package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
)

// Swagger serves the Swagger UI with info's host and scheme taken from the request.
// fallbackHost is used when the request carries no Host header.
func Swagger(info *swag.Spec, fallbackHost string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		info.Host = swaggerHost(c.Get(fiber.HeaderHost), fallbackHost)
		info.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}

func swaggerHost(requestHost, fallback string) string {
	if requestHost != "" {
		return requestHost
	}
	return fallback
}
