package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enrollment-service/internal/domain"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

func TestAuthenticateStudent(t *testing.T) {
	env := newTestEnv(t)
	registered := env.student(t, "ana")
	ctx := context.Background()

	student, token, exp, err := env.auth.AuthenticateStudent(ctx, "ana", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, student.ID)
	assert.False(t, exp.IsZero())

	claims, err := env.tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, claims.Role)
	assert.Equal(t, registered.ID, claims.SubjectID())

	_, _, _, err = env.auth.AuthenticateStudent(ctx, "ana", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, _, err = env.auth.AuthenticateStudent(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, apperrors.ErrInvalidCredentials.Message, apperrors.ToDomainError(err).Message)
}

func TestAuthenticateCompany(t *testing.T) {
	env := newTestEnv(t)
	registered := env.company(t, "techco", "12345678000190")
	ctx := context.Background()

	_, token, _, err := env.auth.AuthenticateCompany(ctx, "techco", "password123")
	require.NoError(t, err)
	claims, err := env.tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCompany, claims.Role)
	assert.Equal(t, registered.ID, claims.SubjectID())

	_, _, _, err = env.auth.AuthenticateCompany(ctx, "techco", "nope-nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestStudentCredentialsDoNotAuthenticateCompany(t *testing.T) {
	env := newTestEnv(t)
	env.student(t, "ana")

	_, _, _, err := env.auth.AuthenticateCompany(context.Background(), "ana", "password123")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLoginNotFoundDoesNotMutateSentinel(t *testing.T) {
	err := loginNotFound()
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "resource not found", apperrors.ErrNotFound.Message)
}

func TestLoginTrimsUsernameLikeRegistration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.register.RegisterStudent(ctx, StudentRegistration{
		Name: "Ana", Username: " ana ", Email: "ana@x.com", Phone: "1", Password: "password123",
	})
	require.NoError(t, err)
	env.company(t, "techco", "12345678000190")

	student, _, _, err := env.auth.AuthenticateStudent(ctx, " ana ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "ana", student.Username)

	_, _, _, err = env.auth.AuthenticateCompany(ctx, "techco\t", "password123")
	assert.NoError(t, err)
}
