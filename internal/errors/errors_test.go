package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"invalid token", ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"permission denied", ErrPermissionDenied, http.StatusForbidden, "PERMISSION_DENIED"},
		{"not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"validation", NewValidationError("password", "Passwords do not match"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrapped sentinel", fmt.Errorf("login: %w", ErrInvalidCredentials), http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"unknown error masked", fmt.Errorf("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestValidationErrorFieldsSurface(t *testing.T) {
	err := NewValidationError("username", "A user with that username already exists")
	httpErr := MapErrorToHTTP(err)
	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "A user with that username already exists", resp.Fields["username"])
}
