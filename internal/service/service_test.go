package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/enrollment-service/internal/auth"
	"github.com/spec-kit/enrollment-service/internal/config"
	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/events"
	"github.com/spec-kit/enrollment-service/internal/repository"
	"github.com/spec-kit/enrollment-service/internal/repository/memstore"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	store       *memstore.Store
	tokens      *auth.TokenManager
	dispatcher  *recordingDispatcher
	register    *RegistrationService
	auth        *AuthService
	courses     *CourseService
	enrollments *EnrollmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewTokenManager("service-test-secret", time.Hour)
	dispatcher := &recordingDispatcher{}

	return &testEnv{
		store:      store,
		tokens:     tokens,
		dispatcher: dispatcher,
		register: NewRegistrationService(config.AuthConfig{MinPasswordLength: 8}, RegistrationDependencies{
			Store:      store,
			Hasher:     hasher,
			Dispatcher: dispatcher,
		}),
		auth:        NewAuthService(AuthDependencies{Store: store, Hasher: hasher, Tokens: tokens}),
		courses:     NewCourseService(CourseDependencies{Store: store, Dispatcher: dispatcher}),
		enrollments: NewEnrollmentService(EnrollmentDependencies{Store: store, Dispatcher: dispatcher}),
	}
}

func (e *testEnv) student(t *testing.T, username string) *domain.Student {
	t.Helper()
	s, err := e.register.RegisterStudent(context.Background(), StudentRegistration{
		Name:     "Student " + username,
		Username: username,
		Email:    username + "@x.com",
		Phone:    "11987654321",
		Password: "password123",
	})
	require.NoError(t, err)
	return s
}

func (e *testEnv) company(t *testing.T, username, cnpj string) *domain.Company {
	t.Helper()
	c, err := e.register.RegisterCompany(context.Background(), CompanyRegistration{
		CNPJ:     cnpj,
		Username: username,
		Email:    username + "@corp.com",
		Phone:    "1133334444",
		Password: "password123",
	})
	require.NoError(t, err)
	return c
}

func (e *testEnv) course(t *testing.T, companyID, name string) *domain.Course {
	t.Helper()
	c, err := e.courses.CreateCourse(context.Background(), companyID, CourseInput{
		Name:        name,
		Description: name + " description",
		VideoLink:   "https://www.youtube.com/watch?v=abc123",
	})
	require.NoError(t, err)
	return c
}

// failingStore simulates an unexpected persistence failure.
type failingStore struct {
	err error
}

func (f failingStore) Repositories() repository.Repositories {
	return repository.Repositories{Students: failingStudents{err: f.err}}
}

func (f failingStore) WithinTx(context.Context, func(repository.Repositories) error) error {
	return f.err
}

type failingStudents struct {
	repository.StudentRepository
	err error
}

func (f failingStudents) GetByUsername(context.Context, string) (*domain.Student, error) {
	return nil, f.err
}

func (f failingStudents) List(context.Context) ([]domain.Student, error) {
	return nil, f.err
}

var errDatabaseDown = errors.New("connection refused")
