package serverutils

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

const MaintenanceKeyHeader = "X-Maintenance-Key"

// MaintenanceKeyMiddleware guards internal-only endpoints. An empty key
// disables the endpoint entirely.
func MaintenanceKeyMiddleware(key string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if key == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, "Maintenance trigger is disabled"))
		}

		given := ctx.Get(MaintenanceKeyHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid maintenance key"))
		}
		return ctx.Next()
	}
}
