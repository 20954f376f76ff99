package repository

import (
	"context"

	"github.com/spec-kit/enrollment-service/internal/domain"
)

// StudentRepository defines persistence access for student accounts.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	GetByUsername(ctx context.Context, username string) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
}

// CompanyRepository defines persistence access for company accounts.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByUsername(ctx context.Context, username string) (*domain.Company, error)
	GetByEmail(ctx context.Context, email string) (*domain.Company, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*domain.Company, error)
}

// CourseRepository handles company-owned course records.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Course, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Course, error)
	ListWithCompany(ctx context.Context) ([]domain.CourseListing, error)
	Delete(ctx context.Context, id string) error
}

// EnrollmentRepository links students to courses.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	Exists(ctx context.Context, studentID, courseID string) (bool, error)
	CountByCourse(ctx context.Context, courseID string) (int, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error)
	Delete(ctx context.Context, studentID, courseID string) error
}

// Repositories bundles the repositories bound to one connection or transaction.
type Repositories struct {
	Students    StudentRepository
	Companies   CompanyRepository
	Courses     CourseRepository
	Enrollments EnrollmentRepository
}

// Store scopes repository access. WithinTx runs fn in a single transaction that
// commits when fn returns nil and rolls back on any error or panic.
type Store interface {
	Repositories() Repositories
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
