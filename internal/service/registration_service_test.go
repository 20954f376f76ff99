package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enrollment-service/internal/config"
	"github.com/spec-kit/enrollment-service/internal/events"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

func TestRegisterStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student, err := env.register.RegisterStudent(ctx, StudentRegistration{
		Name:     "Ana",
		Username: "ana",
		Email:    " Ana@X.com ",
		Phone:    "11999990000",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, "ana@x.com", student.Email)
	assert.NotEqual(t, "secret123", student.PasswordHash)
	assert.False(t, student.CreatedAt.IsZero())
	assert.Equal(t, []events.EventType{events.EventAccountRegistered}, env.dispatcher.types())

	t.Run("duplicate username", func(t *testing.T) {
		_, err := env.register.RegisterStudent(ctx, StudentRegistration{
			Name: "Other", Username: "ana", Email: "other@x.com", Phone: "1", Password: "secret123",
		})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)
	})

	t.Run("duplicate email is case insensitive", func(t *testing.T) {
		_, err := env.register.RegisterStudent(ctx, StudentRegistration{
			Name: "Other", Username: "ana2", Email: "ANA@x.com", Phone: "1", Password: "secret123",
		})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	})

	students, err := env.register.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestRegisterStudentValidation(t *testing.T) {
	env := newTestEnv(t)
	valid := StudentRegistration{Name: "Ana", Username: "ana", Email: "ana@x.com", Phone: "1", Password: "secret123"}

	tests := map[string]func(*StudentRegistration){
		"missing name":   func(in *StudentRegistration) { in.Name = "  " },
		"bad email":      func(in *StudentRegistration) { in.Email = "not-an-email" },
		"missing phone":  func(in *StudentRegistration) { in.Phone = "" },
		"short password": func(in *StudentRegistration) { in.Password = "short" },
		"password over bcrypt limit": func(in *StudentRegistration) {
			in.Password = strings.Repeat("a", 80)
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			input := valid
			mutate(&input)
			_, err := env.register.RegisterStudent(context.Background(), input)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.NotEmpty(t, apperrors.ToDomainError(err).Details)
		})
	}

	students, err := env.register.ListStudents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestRegisterStudentConcurrentSameUsername(t *testing.T) {
	env := newTestEnv(t)
	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.register.RegisterStudent(context.Background(), StudentRegistration{
				Name:     "Racer",
				Username: "racer",
				Email:    "racer" + string(rune('a'+i)) + "@x.com",
				Phone:    "1",
				Password: "secret123",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)
	}
	assert.Equal(t, 1, succeeded)
}

func TestRegisterCompany(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company, err := env.register.RegisterCompany(ctx, CompanyRegistration{
		CNPJ:     "12.345.678/0001-90",
		Username: "techco",
		Email:    "contact@techco.com",
		Phone:    "1133334444",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "12345678000190", company.CNPJ)

	_, err = env.register.RegisterCompany(ctx, CompanyRegistration{
		CNPJ: "12345678000190", Username: "other", Email: "other@techco.com", Phone: "1", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateTaxID)

	_, err = env.register.RegisterCompany(ctx, CompanyRegistration{
		CNPJ: "98765432000110", Username: "techco", Email: "other@techco.com", Phone: "1", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)

	_, err = env.register.RegisterCompany(ctx, CompanyRegistration{
		CNPJ: "98765432000110", Username: "other", Email: "CONTACT@techco.com", Phone: "1", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	_, err = env.register.RegisterCompany(ctx, CompanyRegistration{
		CNPJ: "1234", Username: "short", Email: "short@techco.com", Phone: "1", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAccountNamespacesAreSeparate(t *testing.T) {
	env := newTestEnv(t)
	env.student(t, "shared")
	env.company(t, "shared", "11222333000181")
}

func TestRegistrationMinPasswordLengthFromConfig(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRegistrationService(config.AuthConfig{MinPasswordLength: 12}, RegistrationDependencies{
		Store:  env.store,
		Hasher: env.register.hasher,
	})
	_, err := svc.RegisterStudent(context.Background(), StudentRegistration{
		Name: "Ana", Username: "ana", Email: "ana@x.com", Phone: "1", Password: "elevenchars",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestNormalizeCNPJ(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.345.678/0001-90", "12345678000190", true},
		{"12345678000190", "12345678000190", true},
		{"1234567800019", "", false},
		{"12.345.678/0001-9X", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeCNPJ(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestListStudentsStoreFailure(t *testing.T) {
	store := failingStore{err: errDatabaseDown}
	svc := NewRegistrationService(config.AuthConfig{}, RegistrationDependencies{Store: store})

	_, err := svc.ListStudents(context.Background())
	require.ErrorIs(t, err, errDatabaseDown)
	assert.Equal(t, 500, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRegisterPasswordByteLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.register.RegisterCompany(ctx, CompanyRegistration{
		CNPJ: "12345678000190", Username: "techco", Email: "hi@techco.com", Phone: "1",
		Password: strings.Repeat("é", 40),
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "max=72", domainErr.Details["password"])

	_, err = env.register.RegisterStudent(ctx, StudentRegistration{
		Name: "Ana", Username: "ana", Email: "ana@x.com", Phone: "1",
		Password: strings.Repeat("a", 72),
	})
	assert.NoError(t, err)
}
