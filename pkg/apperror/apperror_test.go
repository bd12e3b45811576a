package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPCode(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, Validation("invalid", nil).HTTPCode())
	assert.Equal(t, http.StatusUnprocessableEntity, Conflict("Profile already exists").HTTPCode())
	assert.Equal(t, http.StatusNotFound, NotFound("Reel not found").HTTPCode())
	assert.Equal(t, http.StatusForbidden, Forbidden("Forbidden").HTTPCode())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("Unauthorized").HTTPCode())
	assert.Equal(t, http.StatusInternalServerError, Internal("boom", nil).HTTPCode())
}

func TestAs_Wrapped(t *testing.T) {
	err := fmt.Errorf("usecase: %w", NotFound("Profile not found"))

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "Profile not found", appErr.Message)
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindForbidden))

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternal_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("Failed to store avatar", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to store avatar: disk full", err.Error())
}

func TestField(t *testing.T) {
	err := Field("status", "The status may only move forward one step.")
	assert.Equal(t, map[string][]string{"status": {"The status may only move forward one step."}}, err.Fields)
}
