// Package postgres implements the repository interfaces on a pgx pool.
package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/enrollment-service/internal/repository"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the Postgres-backed repository.Store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps a connected pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Repositories returns repositories bound to the pool, outside any transaction.
func (s *Store) Repositories() repository.Repositories {
	return newRepositories(s.pool)
}

// WithinTx runs fn inside a transaction. pgx rolls back on error or panic and
// commits otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(newRepositories(tx))
	})
}

func newRepositories(db DBTX) repository.Repositories {
	return repository.Repositories{
		Students:    &studentRepository{db: db},
		Companies:   &companyRepository{db: db},
		Courses:     &courseRepository{db: db},
		Enrollments: &enrollmentRepository{db: db},
	}
}

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// mapError translates driver errors into repository errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateUniqueViolation:
			return &repository.UniqueViolationError{Constraint: pgErr.ConstraintName, Err: err}
		case sqlStateForeignKeyViolation:
			return &repository.ForeignKeyViolationError{Constraint: pgErr.ConstraintName, Err: err}
		}
	}
	return err
}

// validID reports whether id can match a UUID primary key. Lookups with
// malformed ids resolve to ErrNotFound instead of a driver cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
