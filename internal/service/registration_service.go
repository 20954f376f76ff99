package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/enrollment-service/internal/auth"
	"github.com/spec-kit/enrollment-service/internal/config"
	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/events"
	"github.com/spec-kit/enrollment-service/internal/repository"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

const (
	cnpjDigits = 14

	// bcrypt refuses longer inputs.
	maxPasswordBytes = 72
)

// RegistrationService validates and creates student and company accounts.
type RegistrationService struct {
	store          repository.Store
	hasher         auth.Hasher
	dispatcher     events.Dispatcher
	minPasswordLen int
}

// RegistrationDependencies bundles collaborators for the registration service.
type RegistrationDependencies struct {
	Store      repository.Store
	Hasher     auth.Hasher
	Dispatcher events.Dispatcher
}

// StudentRegistration describes a student sign-up.
type StudentRegistration struct {
	Name     string `validate:"required"`
	Username string `validate:"required,max=64"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required"`
	Password string `validate:"required"`
}

// CompanyRegistration describes a company sign-up.
type CompanyRegistration struct {
	CNPJ     string `validate:"required"`
	Username string `validate:"required,max=64"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required"`
	Password string `validate:"required"`
}

// NewRegistrationService builds the service.
func NewRegistrationService(cfg config.AuthConfig, deps RegistrationDependencies) *RegistrationService {
	minLen := cfg.MinPasswordLength
	if minLen < 1 {
		minLen = 1
	}
	return &RegistrationService{
		store:          deps.Store,
		hasher:         deps.Hasher,
		dispatcher:     deps.Dispatcher,
		minPasswordLen: minLen,
	}
}

// RegisterStudent creates a student account. Username and email must be unused
// by any other student.
func (s *RegistrationService) RegisterStudent(ctx context.Context, input StudentRegistration) (*domain.Student, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Username = normalizeUsername(input.Username)
	input.Email = normalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.checkPassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	student := &domain.Student{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
	}

	err = s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Students.GetByUsername(ctx, student.Username); err == nil {
			return apperrors.ErrDuplicateUsername
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("lookup student username: %w", err)
		}
		if _, err := repos.Students.GetByEmail(ctx, student.Email); err == nil {
			return apperrors.ErrDuplicateEmail
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("lookup student email: %w", err)
		}
		if err := repos.Students.Create(ctx, student); err != nil {
			return translateConstraint(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventAccountRegistered,
		Actor:   actor(domain.RoleStudent, student.ID),
		Payload: events.AccountRegisteredPayload{Username: student.Username, Email: student.Email},
	})
	return student, nil
}

// RegisterCompany creates a company account. CNPJ, username and email must be
// unused by any other company.
func (s *RegistrationService) RegisterCompany(ctx context.Context, input CompanyRegistration) (*domain.Company, error) {
	input.Username = normalizeUsername(input.Username)
	input.Email = normalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	cnpj, ok := NormalizeCNPJ(input.CNPJ)
	if !ok {
		return nil, apperrors.ErrValidationFailed.With(map[string]any{"cnpj": "format"})
	}
	if err := s.checkPassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	company := &domain.Company{
		CNPJ:         cnpj,
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
	}

	err = s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Companies.GetByCNPJ(ctx, company.CNPJ); err == nil {
			return apperrors.ErrDuplicateTaxID
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("lookup company cnpj: %w", err)
		}
		if _, err := repos.Companies.GetByUsername(ctx, company.Username); err == nil {
			return apperrors.ErrDuplicateUsername
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("lookup company username: %w", err)
		}
		if _, err := repos.Companies.GetByEmail(ctx, company.Email); err == nil {
			return apperrors.ErrDuplicateEmail
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("lookup company email: %w", err)
		}
		if err := repos.Companies.Create(ctx, company); err != nil {
			return translateConstraint(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventAccountRegistered,
		Actor:   actor(domain.RoleCompany, company.ID),
		Payload: events.AccountRegisteredPayload{Username: company.Username, Email: company.Email},
	})
	return company, nil
}

// ListStudents returns every registered student.
func (s *RegistrationService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	students, err := s.store.Repositories().Students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *RegistrationService) checkPassword(password string) error {
	if utf8.RuneCountInString(password) < s.minPasswordLen {
		return apperrors.ErrValidationFailed.With(map[string]any{
			"password": fmt.Sprintf("min=%d", s.minPasswordLen),
		})
	}
	if len(password) > maxPasswordBytes {
		return apperrors.ErrValidationFailed.With(map[string]any{
			"password": fmt.Sprintf("max=%d", maxPasswordBytes),
		})
	}
	return nil
}

// NormalizeCNPJ strips punctuation and reports whether exactly 14 digits remain.
func NormalizeCNPJ(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '/' || r == '-' || r == ' ':
		default:
			return "", false
		}
	}
	digits := b.String()
	return digits, len(digits) == cnpjDigits
}

// normalizeUsername is applied on registration and login alike. Usernames stay
// case-sensitive.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
