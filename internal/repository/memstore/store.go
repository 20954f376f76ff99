// Package memstore is an in-memory repository.Store. It enforces the same
// unique and foreign key constraints as the Postgres schema and serializes
// transactions behind a single lock.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/repository"
)

type state struct {
	students    []domain.Student
	companies   []domain.Company
	courses     []domain.Course
	enrollments []domain.Enrollment
}

func (s *state) clone() *state {
	return &state{
		students:    append([]domain.Student(nil), s.students...),
		companies:   append([]domain.Company(nil), s.companies...),
		courses:     append([]domain.Course(nil), s.courses...),
		enrollments: append([]domain.Enrollment(nil), s.enrollments...),
	}
}

// Store keeps every record in process memory.
type Store struct {
	mu    sync.Mutex
	data  *state
	clock func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{data: &state{}, clock: time.Now}
}

// Repositories returns repositories where every call is its own transaction.
func (s *Store) Repositories() repository.Repositories {
	return repos(&autoTx{store: s})
}

// WithinTx runs fn against a snapshot and publishes it only when fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txState{data: s.data.clone(), clock: s.clock}
	if err := fn(repos(tx)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

// session is what the repositories run against: either an open transaction
// or the store itself in autocommit mode.
type session interface {
	run(ctx context.Context, write bool, fn func(data *state, now time.Time) error) error
}

type txState struct {
	data  *state
	clock func() time.Time
}

func (t *txState) run(ctx context.Context, _ bool, fn func(data *state, now time.Time) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.data, t.clock())
}

type autoTx struct {
	store *Store
}

func (a *autoTx) run(ctx context.Context, write bool, fn func(data *state, now time.Time) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	if !write {
		return fn(a.store.data, a.store.clock())
	}
	data := a.store.data.clone()
	if err := fn(data, a.store.clock()); err != nil {
		return err
	}
	a.store.data = data
	return nil
}

func repos(sess session) repository.Repositories {
	return repository.Repositories{
		Students:    &studentRepository{sess: sess},
		Companies:   &companyRepository{sess: sess},
		Courses:     &courseRepository{sess: sess},
		Enrollments: &enrollmentRepository{sess: sess},
	}
}

func newID() string {
	return uuid.NewString()
}
