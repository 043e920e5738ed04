package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"keep-notes-be/internal/pkg/apperror"
	"keep-notes-be/internal/pkg/logger"
	"keep-notes-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, app *fiber.App, method, path string, headers map[string]string) (int, BaseResponse[any]) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/app", func(c *fiber.Ctx) error { return apperror.NotFound("Note not found") })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusMethodNotAllowed, "nope") })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("db exploded") })

	tests := []struct {
		path    string
		code    int
		message string
	}{
		{"/app", 404, "Note not found"},
		{"/fiber", 405, "nope"},
		{"/plain", 500, "Internal server error"},
		{"/missing", 404, "Cannot GET /missing"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := decode(t, app, "GET", tt.path, nil)
			assert.Equal(t, tt.code, code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestJwtMiddleware(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour)
	userId := uuid.New()
	valid, err := tokens.Generate(userId, "Ada", "ada@example.com")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", NewJwtMiddleware(tokens), func(c *fiber.Ctx) error {
		id, ok := GetUserId(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(SuccessResponse("ok", id.String()))
	})

	t.Run("missing header", func(t *testing.T) {
		code, body := decode(t, app, "GET", "/me", nil)
		assert.Equal(t, 401, code)
		assert.Equal(t, "Missing token", body.Message)
	})

	t.Run("garbage token", func(t *testing.T) {
		code, body := decode(t, app, "GET", "/me", map[string]string{"Authorization": "Bearer abc"})
		assert.Equal(t, 401, code)
		assert.Equal(t, "Invalid token", body.Message)
	})

	t.Run("valid token", func(t *testing.T) {
		code, body := decode(t, app, "GET", "/me", map[string]string{"Authorization": "Bearer " + valid})
		assert.Equal(t, 200, code)
		assert.Equal(t, userId.String(), body.Data)
	})
}

func TestMaintenanceKeyMiddleware(t *testing.T) {
	handler := func(c *fiber.Ctx) error { return c.JSON(SuccessResponse[any]("swept", nil)) }

	disabled := fiber.New()
	disabled.Delete("/sweep", MaintenanceKeyMiddleware(""), handler)
	code, _ := decode(t, disabled, "DELETE", "/sweep", map[string]string{MaintenanceKeyHeader: ""})
	assert.Equal(t, 403, code)

	enabled := fiber.New()
	enabled.Delete("/sweep", MaintenanceKeyMiddleware("k3y"), handler)

	code, _ = decode(t, enabled, "DELETE", "/sweep", nil)
	assert.Equal(t, 401, code)

	code, _ = decode(t, enabled, "DELETE", "/sweep", map[string]string{MaintenanceKeyHeader: "wrong"})
	assert.Equal(t, 401, code)

	code, body := decode(t, enabled, "DELETE", "/sweep", map[string]string{MaintenanceKeyHeader: "k3y"})
	assert.Equal(t, 200, code)
	assert.Equal(t, "swept", body.Message)
}

type registerRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     registerRequest
		message string
	}{
		{"ok", registerRequest{"Ada", "ada@example.com", "secret1"}, ""},
		{"missing", registerRequest{"", "ada@example.com", "secret1"}, "Missing required fields"},
		{"email", registerRequest{"Ada", "ada", "secret1"}, "Invalid email address"},
		{"short password", registerRequest{"Ada", "ada@example.com", "abc"}, "Password must be at least 6 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}
