package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("who"), http.StatusUnauthorized},
		{"forbidden", Forbidden("no"), http.StatusForbidden},
		{"not found", NotFound("gone"), http.StatusNotFound},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"zero kind", &Error{Message: "?"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestIs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("show note: %w", NotFound("Note not found"))

	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindConflict))
	assert.False(t, Is(errors.New("plain"), KindNotFound))
}

func TestError_MessageIncludesCause(t *testing.T) {
	err := &Error{Kind: KindValidation, Message: "Invalid request body", Err: errors.New("unexpected EOF")}
	assert.Equal(t, "Invalid request body: unexpected EOF", err.Error())
	assert.Equal(t, "unexpected EOF", errors.Unwrap(err).Error())
}
