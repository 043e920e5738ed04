// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"strings"

	"keep-notes-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIdKey = "user_id"

func NewJwtMiddleware(tokens *token.Manager) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		userId, err := tokens.Parse(authHeader[7:])
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		ctx.Locals(userIdKey, userId)
		return ctx.Next()
	}
}

// GetUserId returns the caller attached by the JWT middleware.
func GetUserId(ctx *fiber.Ctx) (uuid.UUID, bool) {
	userId, ok := ctx.Locals(userIdKey).(uuid.UUID)
	return userId, ok
}
