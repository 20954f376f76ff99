package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/events"
	"github.com/spec-kit/enrollment-service/internal/repository"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

// ListingCache caches the public course listing. Implementations treat their
// own failures as misses. Listings reports a generation on a miss; StoreListings
// must drop the listing if Invalidate ran after that generation was read.
type ListingCache interface {
	Listings(ctx context.Context) ([]domain.CourseListing, int64, bool)
	StoreListings(ctx context.Context, generation int64, listings []domain.CourseListing)
	Invalidate(ctx context.Context)
}

// CourseService manages the company-owned course catalog.
type CourseService struct {
	store      repository.Store
	cache      ListingCache
	dispatcher events.Dispatcher
}

// CourseDependencies bundles collaborators for the course service.
type CourseDependencies struct {
	Store      repository.Store
	Cache      ListingCache
	Dispatcher events.Dispatcher
}

// CourseInput describes a new course.
type CourseInput struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	VideoLink   string `validate:"required,url"`
}

// NewCourseService constructs the service.
func NewCourseService(deps CourseDependencies) *CourseService {
	return &CourseService{
		store:      deps.Store,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// CreateCourse publishes a course owned by companyID.
func (s *CourseService) CreateCourse(ctx context.Context, companyID string, input CourseInput) (*domain.Course, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.VideoLink = strings.TrimSpace(input.VideoLink)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	course := &domain.Course{
		Name:        input.Name,
		Description: input.Description,
		VideoLink:   input.VideoLink,
		CompanyID:   companyID,
	}
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Companies.GetByID(ctx, companyID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrCompanyNotFound
			}
			return fmt.Errorf("lookup company: %w", err)
		}
		if err := repos.Courses.Create(ctx, course); err != nil {
			return translateConstraint(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventCourseCreated,
		Actor:   actor(domain.RoleCompany, companyID),
		Payload: events.CoursePayload{CourseID: course.ID, CompanyID: companyID, Name: course.Name},
	})
	return course, nil
}

// ListCoursesByCompany returns the company's courses. An empty result is not an error.
func (s *CourseService) ListCoursesByCompany(ctx context.Context, companyID string) ([]domain.Course, error) {
	courses, err := s.store.Repositories().Courses.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company courses: %w", err)
	}
	return courses, nil
}

// ListAllCourses returns every course with its owner's name, in insertion order.
func (s *CourseService) ListAllCourses(ctx context.Context) ([]domain.CourseListing, error) {
	if s.cache == nil {
		return s.loadListings(ctx)
	}
	cached, generation, ok := s.cache.Listings(ctx)
	if ok {
		return cached, nil
	}
	listings, err := s.loadListings(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.StoreListings(ctx, generation, listings)
	return listings, nil
}

func (s *CourseService) loadListings(ctx context.Context) ([]domain.CourseListing, error) {
	listings, err := s.store.Repositories().Courses.ListWithCompany(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return listings, nil
}

// GetCourse fetches a single course.
func (s *CourseService) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	course, err := s.store.Repositories().Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("course", map[string]any{"course_id": id})
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return course, nil
}

// DeleteCourse removes a course owned by callerCompanyID. It is refused while
// any enrollment references the course.
func (s *CourseService) DeleteCourse(ctx context.Context, id, callerCompanyID string) error {
	var deleted domain.Course
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		course, err := repos.Courses.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewNotFound("course", map[string]any{"course_id": id})
			}
			return fmt.Errorf("get course: %w", err)
		}
		if course.CompanyID != callerCompanyID {
			return apperrors.ErrOwnershipViolation
		}
		count, err := repos.Enrollments.CountByCourse(ctx, id)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		if count > 0 {
			return apperrors.ErrHasDependents.With(map[string]any{"enrollments": count})
		}
		if err := repos.Courses.Delete(ctx, id); err != nil {
			if _, ok := repository.ForeignKeyConstraint(err); ok {
				return apperrors.ErrHasDependents
			}
			return fmt.Errorf("delete course: %w", err)
		}
		deleted = *course
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventCourseDeleted,
		Actor:   actor(domain.RoleCompany, callerCompanyID),
		Payload: events.CoursePayload{CourseID: deleted.ID, CompanyID: deleted.CompanyID, Name: deleted.Name},
	})
	return nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
