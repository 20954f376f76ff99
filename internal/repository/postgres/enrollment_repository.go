package postgres

import (
	"context"

	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/repository"
)

type enrollmentRepository struct {
	db DBTX
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	const query = `
        INSERT INTO enrollments (student_id, course_id)
        VALUES ($1, $2)
        RETURNING id, created_at`

	if !validID(enrollment.StudentID) {
		return &repository.ForeignKeyViolationError{Constraint: repository.ConstraintEnrollmentStudent}
	}
	if !validID(enrollment.CourseID) {
		return &repository.ForeignKeyViolationError{Constraint: repository.ConstraintEnrollmentCourse}
	}
	err := r.db.QueryRow(ctx, query, enrollment.StudentID, enrollment.CourseID).
		Scan(&enrollment.ID, &enrollment.CreatedAt)
	return mapError(err)
}

func (r *enrollmentRepository) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	if !validID(studentID) || !validID(courseID) {
		return false, nil
	}
	const query = `SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_id=$1 AND course_id=$2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (r *enrollmentRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	if !validID(courseID) {
		return 0, nil
	}
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments WHERE course_id=$1`, courseID).Scan(&count); err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error) {
	if !validID(studentID) {
		return []domain.Enrollment{}, nil
	}
	const query = `
        SELECT id, student_id, course_id, created_at
        FROM enrollments WHERE student_id=$1
        ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	result := []domain.Enrollment{}
	for rows.Next() {
		var enrollment domain.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.CreatedAt,
		); err != nil {
			return nil, mapError(err)
		}
		result = append(result, enrollment)
	}
	return result, mapError(rows.Err())
}

func (r *enrollmentRepository) Delete(ctx context.Context, studentID, courseID string) error {
	if !validID(studentID) || !validID(courseID) {
		return repository.ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE student_id=$1 AND course_id=$2`, studentID, courseID)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
