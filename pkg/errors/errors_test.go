package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorCodesAreHTTPStatuses(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("Doctor").StatusCode())
	assert.Equal(t, http.StatusConflict, Conflict("dup").StatusCode())
	assert.Equal(t, http.StatusBadRequest, Validation("bad", nil).StatusCode())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("no").StatusCode())
	assert.Equal(t, http.StatusForbidden, Forbidden("no").StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Internal("boom", nil).StatusCode())
	assert.Equal(t, http.StatusRequestEntityTooLarge, TooLarge(1024).StatusCode())
	assert.Equal(t, "Request body exceeds 1024 bytes", TooLarge(1024).Message)
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Hospital not found", NotFound("Hospital").Message)
}

func TestInternalWrapsCause(t *testing.T) {
	cause := fmt.Errorf("socket closed")
	err := Internal("Error fetching doctors", cause)

	assert.Equal(t, "Error fetching doctors: socket closed", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", Conflict("Patient with this phone number already exists"))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrConflict, appErr.Code)
	assert.True(t, Is(wrapped, ErrConflict))
	assert.False(t, Is(fmt.Errorf("plain"), ErrConflict))
}

func TestWithField(t *testing.T) {
	err := Validation("Cannot delete hospital", nil).WithField("doctorsCount", 2)
	assert.Equal(t, 2, err.Fields["doctorsCount"])
}
