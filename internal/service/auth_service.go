package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/enrollment-service/internal/auth"
	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/repository"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

// TokenIssuer is the part of the token service the auth flows depend on.
type TokenIssuer interface {
	Issue(subjectID string, role domain.Role) (string, time.Time, error)
}

// AuthService verifies credentials and issues role-scoped tokens.
type AuthService struct {
	store  repository.Store
	hasher auth.Hasher
	tokens TokenIssuer
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Store  repository.Store
	Hasher auth.Hasher
	Tokens TokenIssuer
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		store:  deps.Store,
		hasher: deps.Hasher,
		tokens: deps.Tokens,
	}
}

// AuthenticateStudent checks a student's credentials. An unknown username
// fails with ErrNotFound and a wrong password with ErrInvalidCredentials.
func (s *AuthService) AuthenticateStudent(ctx context.Context, username, password string) (*domain.Student, string, time.Time, error) {
	student, err := s.store.Repositories().Students.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, loginNotFound()
		}
		return nil, "", time.Time{}, fmt.Errorf("lookup student: %w", err)
	}
	if !s.hasher.Verify(password, student.PasswordHash) {
		return nil, "", time.Time{}, apperrors.ErrInvalidCredentials
	}
	token, exp, err := s.tokens.Issue(student.ID, domain.RoleStudent)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return student, token, exp, nil
}

// AuthenticateCompany mirrors AuthenticateStudent for company accounts.
func (s *AuthService) AuthenticateCompany(ctx context.Context, username, password string) (*domain.Company, string, time.Time, error) {
	company, err := s.store.Repositories().Companies.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, loginNotFound()
		}
		return nil, "", time.Time{}, fmt.Errorf("lookup company: %w", err)
	}
	if !s.hasher.Verify(password, company.PasswordHash) {
		return nil, "", time.Time{}, apperrors.ErrInvalidCredentials
	}
	token, exp, err := s.tokens.Issue(company.ID, domain.RoleCompany)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return company, token, exp, nil
}

// loginNotFound keeps the not-found kind but renders like a bad password.
func loginNotFound() error {
	err := *apperrors.ErrNotFound
	err.Message = apperrors.ErrInvalidCredentials.Message
	return &err
}
