package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetocure/admin-api/internal/repository"
	apperrors "github.com/meetocure/admin-api/pkg/errors"
)

func TestParseIDMalformedIsInternal(t *testing.T) {
	_, err := ParseID("nope", "Error fetching doctor")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
	assert.Equal(t, "Error fetching doctor", appErr.Message)
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "Doctor", "failed"))

	appErr, ok := apperrors.As(Wrap(repository.ErrNotFound, "Doctor", "failed"))
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode())
	assert.Equal(t, "Doctor not found", appErr.Message)

	conflict := apperrors.Conflict("taken")
	assert.Same(t, conflict, Wrap(conflict, "Doctor", "failed"))

	appErr, ok = apperrors.As(Wrap(errors.New("socket closed"), "Doctor", "failed"))
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
	assert.Equal(t, "failed", appErr.Message)
}
