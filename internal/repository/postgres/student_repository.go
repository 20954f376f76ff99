package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/repository"
)

const studentColumns = `id, name, username, email, phone, password_hash, created_at`

type studentRepository struct {
	db DBTX
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (name, username, email, phone, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		student.Name,
		student.Username,
		student.Email,
		student.Phone,
		student.PasswordHash,
	).Scan(&student.ID, &student.CreatedAt)
	return mapError(err)
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE id=$1`, id)
}

func (r *studentRepository) GetByUsername(ctx context.Context, username string) (*domain.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE username=$1`, username)
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE email=$1`, email)
}

func (r *studentRepository) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := r.db.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY created_at, id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, mapError(err)
		}
		result = append(result, *student)
	}
	return result, mapError(rows.Err())
}

func (r *studentRepository) getOne(ctx context.Context, query string, arg any) (*domain.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err)
	}
	return student, nil
}

func scanStudent(row pgx.Row) (*domain.Student, error) {
	var student domain.Student
	if err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Username,
		&student.Email,
		&student.Phone,
		&student.PasswordHash,
		&student.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}
