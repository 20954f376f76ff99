package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/events"
	"github.com/spec-kit/enrollment-service/internal/repository"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

// EnrollmentService links students to courses.
type EnrollmentService struct {
	store      repository.Store
	dispatcher events.Dispatcher
}

// EnrollmentDependencies bundles collaborators for the enrollment service.
type EnrollmentDependencies struct {
	Store      repository.Store
	Dispatcher events.Dispatcher
}

// NewEnrollmentService constructs the service.
func NewEnrollmentService(deps EnrollmentDependencies) *EnrollmentService {
	return &EnrollmentService{store: deps.Store, dispatcher: deps.Dispatcher}
}

// Enroll records that studentID takes courseID. Checks run in a fixed order
// and the first failure wins: course exists, student exists, not yet enrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID string) (*domain.Enrollment, error) {
	enrollment := &domain.Enrollment{StudentID: studentID, CourseID: courseID}
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Courses.GetByID(ctx, courseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrCourseNotFound
			}
			return fmt.Errorf("lookup course: %w", err)
		}
		if _, err := repos.Students.GetByID(ctx, studentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrStudentNotFound
			}
			return fmt.Errorf("lookup student: %w", err)
		}
		exists, err := repos.Enrollments.Exists(ctx, studentID, courseID)
		if err != nil {
			return fmt.Errorf("check enrollment: %w", err)
		}
		if exists {
			return apperrors.ErrAlreadyEnrolled
		}
		if err := repos.Enrollments.Create(ctx, enrollment); err != nil {
			return translateConstraint(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventStudentEnrolled,
		Actor:   actor(domain.RoleStudent, studentID),
		Payload: events.StudentEnrolledPayload{EnrollmentID: enrollment.ID, CourseID: courseID},
	})
	return enrollment, nil
}

// ListEnrolledCourses returns the courses a student is enrolled in, in
// enrollment order. No enrollments yields an empty slice.
func (s *EnrollmentService) ListEnrolledCourses(ctx context.Context, studentID string) ([]domain.Course, error) {
	result := []domain.Course{}
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		enrollments, err := repos.Enrollments.ListByStudent(ctx, studentID)
		if err != nil {
			return fmt.Errorf("list enrollments: %w", err)
		}
		if len(enrollments) == 0 {
			return nil
		}

		ids := make([]string, 0, len(enrollments))
		for _, e := range enrollments {
			ids = append(ids, e.CourseID)
		}
		courses, err := repos.Courses.ListByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("list enrolled courses: %w", err)
		}
		byID := make(map[string]domain.Course, len(courses))
		for _, c := range courses {
			byID[c.ID] = c
		}
		for _, id := range ids {
			if c, ok := byID[id]; ok {
				result = append(result, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveEnrollment deletes one enrollment. It is the administrative cleanup
// path and has no public route.
func (s *EnrollmentService) RemoveEnrollment(ctx context.Context, studentID, courseID string) error {
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		return repos.Enrollments.Delete(ctx, studentID, courseID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("enrollment", map[string]any{"student_id": studentID, "course_id": courseID})
	}
	if err != nil {
		return fmt.Errorf("remove enrollment: %w", err)
	}
	return nil
}
