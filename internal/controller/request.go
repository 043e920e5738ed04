package controller

import (
	"bytes"
	"encoding/json"

	"keep-notes-be/internal/pkg/apperror"
	"keep-notes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// decodeBody reads a JSON object body into req. It reports false when the
// body is absent, null or an empty object.
func decodeBody(ctx *fiber.Ctx, req interface{}) (bool, error) {
	body := bytes.TrimSpace(ctx.Body())
	if len(body) == 0 {
		return false, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false, apperror.Validation("Invalid JSON body")
	}
	if len(fields) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(body, req); err != nil {
		return false, apperror.Validation("Invalid JSON body")
	}
	return true, nil
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := serverutils.GetUserId(ctx)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("Invalid token")
	}
	return userId, nil
}

// noteIdParam treats a malformed id like an unknown one.
func noteIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound("Note not found")
	}
	return id, nil
}
