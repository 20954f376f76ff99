package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/repository"
)

const courseColumns = `c.id, c.name, c.description, c.video_link, c.company_id, c.created_at`

type courseRepository struct {
	db DBTX
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	const query = `
        INSERT INTO courses (name, description, video_link, company_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	if !validID(course.CompanyID) {
		return &repository.ForeignKeyViolationError{Constraint: repository.ConstraintCourseCompany}
	}
	err := r.db.QueryRow(ctx, query,
		course.Name,
		course.Description,
		course.VideoLink,
		course.CompanyID,
	).Scan(&course.ID, &course.CreatedAt)
	return mapError(err)
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	course, err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses c WHERE c.id=$1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return course, nil
}

func (r *courseRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Course, error) {
	if !validID(companyID) {
		return []domain.Course{}, nil
	}
	const query = `SELECT ` + courseColumns + ` FROM courses c WHERE c.company_id=$1 ORDER BY c.created_at, c.id`
	return r.list(ctx, query, companyID)
}

func (r *courseRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []domain.Course{}, nil
	}
	const query = `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = ANY($1::uuid[]) ORDER BY c.created_at, c.id`
	return r.list(ctx, query, valid)
}

func (r *courseRepository) ListWithCompany(ctx context.Context) ([]domain.CourseListing, error) {
	const query = `
        SELECT ` + courseColumns + `, co.username
        FROM courses c
        JOIN companies co ON co.id = c.company_id
        ORDER BY c.created_at, c.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.CourseListing{}
	for rows.Next() {
		var listing domain.CourseListing
		if err := rows.Scan(
			&listing.ID,
			&listing.Name,
			&listing.Description,
			&listing.VideoLink,
			&listing.CompanyID,
			&listing.CreatedAt,
			&listing.CompanyName,
		); err != nil {
			return nil, mapError(err)
		}
		result = append(result, listing)
	}
	return result, mapError(rows.Err())
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *courseRepository) list(ctx context.Context, query string, args ...any) ([]domain.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, mapError(err)
		}
		result = append(result, *course)
	}
	return result, mapError(rows.Err())
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var course domain.Course
	if err := row.Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.VideoLink,
		&course.CompanyID,
		&course.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &course, nil
}
