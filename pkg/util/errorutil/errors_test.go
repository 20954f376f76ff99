package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithKeepsSentinelIdentity(t *testing.T) {
	err := ErrValidationFailed.With(map[string]any{"email": "email"})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Nil(t, ErrValidationFailed.Details)
	assert.Equal(t, "email", err.Details["email"])
}

func TestSharedCodesDoNotCollapseKinds(t *testing.T) {
	assert.NotErrorIs(t, ErrTokenExpired, ErrInvalidToken)
	assert.NotErrorIs(t, ErrOwnershipViolation, ErrForbidden)
	assert.Equal(t, ErrTokenExpired.Message, ErrInvalidToken.Message)
}

func TestToDomainError(t *testing.T) {
	wrapped := fmt.Errorf("create course: %w", ErrCompanyNotFound)
	assert.Same(t, ErrCompanyNotFound, ToDomainError(wrapped))

	cause := errors.New("pool exhausted")
	internal := ToDomainError(fmt.Errorf("list: %w", cause))
	require.NotNil(t, internal)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.Equal(t, "INTERNAL_ERROR", internal.Code)
	assert.ErrorIs(t, internal, cause)
	assert.NotContains(t, internal.Message, "pool")

	routeErr := ToDomainError(fiber.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, routeErr.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", routeErr.Code)

	assert.Nil(t, ToDomainError(nil))
}

func TestNewNotFoundMatchesSentinel(t *testing.T) {
	err := NewNotFound("course", map[string]any{"course_id": "c1"})
	assert.ErrorIs(t, err, ErrNotFound)
	domainErr := ToDomainError(err)
	assert.Equal(t, "course not found", domainErr.Message)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "c1", domainErr.Details["course_id"])
}
