package memstore

import (
	"context"
	"time"

	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/repository"
)

type studentRepository struct {
	sess session
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	return r.sess.run(ctx, true, func(data *state, now time.Time) error {
		for _, existing := range data.students {
			if existing.Username == student.Username {
				return &repository.UniqueViolationError{Constraint: repository.ConstraintStudentUsername}
			}
			if existing.Email == student.Email {
				return &repository.UniqueViolationError{Constraint: repository.ConstraintStudentEmail}
			}
		}
		student.ID = newID()
		student.CreatedAt = now
		data.students = append(data.students, *student)
		return nil
	})
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	return r.find(ctx, func(s *domain.Student) bool { return s.ID == id })
}

func (r *studentRepository) GetByUsername(ctx context.Context, username string) (*domain.Student, error) {
	return r.find(ctx, func(s *domain.Student) bool { return s.Username == username })
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return r.find(ctx, func(s *domain.Student) bool { return s.Email == email })
}

func (r *studentRepository) List(ctx context.Context) ([]domain.Student, error) {
	var result []domain.Student
	err := r.sess.run(ctx, false, func(data *state, _ time.Time) error {
		result = append([]domain.Student{}, data.students...)
		return nil
	})
	return result, err
}

func (r *studentRepository) find(ctx context.Context, match func(*domain.Student) bool) (*domain.Student, error) {
	var found *domain.Student
	err := r.sess.run(ctx, false, func(data *state, _ time.Time) error {
		for i := range data.students {
			if match(&data.students[i]) {
				student := data.students[i]
				found = &student
				return nil
			}
		}
		return repository.ErrNotFound
	})
	return found, err
}

type companyRepository struct {
	sess session
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.sess.run(ctx, true, func(data *state, now time.Time) error {
		for _, existing := range data.companies {
			switch {
			case existing.CNPJ == company.CNPJ:
				return &repository.UniqueViolationError{Constraint: repository.ConstraintCompanyCNPJ}
			case existing.Username == company.Username:
				return &repository.UniqueViolationError{Constraint: repository.ConstraintCompanyUsername}
			case existing.Email == company.Email:
				return &repository.UniqueViolationError{Constraint: repository.ConstraintCompanyEmail}
			}
		}
		company.ID = newID()
		company.CreatedAt = now
		data.companies = append(data.companies, *company)
		return nil
	})
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return r.find(ctx, func(c *domain.Company) bool { return c.ID == id })
}

func (r *companyRepository) GetByUsername(ctx context.Context, username string) (*domain.Company, error) {
	return r.find(ctx, func(c *domain.Company) bool { return c.Username == username })
}

func (r *companyRepository) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	return r.find(ctx, func(c *domain.Company) bool { return c.Email == email })
}

func (r *companyRepository) GetByCNPJ(ctx context.Context, cnpj string) (*domain.Company, error) {
	return r.find(ctx, func(c *domain.Company) bool { return c.CNPJ == cnpj })
}

func (r *companyRepository) find(ctx context.Context, match func(*domain.Company) bool) (*domain.Company, error) {
	var found *domain.Company
	err := r.sess.run(ctx, false, func(data *state, _ time.Time) error {
		company := findCompany(data, match)
		if company == nil {
			return repository.ErrNotFound
		}
		found = company
		return nil
	})
	return found, err
}

func findCompany(data *state, match func(*domain.Company) bool) *domain.Company {
	for i := range data.companies {
		if match(&data.companies[i]) {
			company := data.companies[i]
			return &company
		}
	}
	return nil
}

type courseRepository struct {
	sess session
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	return r.sess.run(ctx, true, func(data *state, now time.Time) error {
		if findCompany(data, func(c *domain.Company) bool { return c.ID == course.CompanyID }) == nil {
			return &repository.ForeignKeyViolationError{Constraint: repository.ConstraintCourseCompany}
		}
		course.ID = newID()
		course.CreatedAt = now
		data.courses = append(data.courses, *course)
		return nil
	})
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	var found *domain.Course
	err := r.sess.run(ctx, false, func(data *state, _ time.Time) error {
		found = findCourse(data, id)
		if found == nil {
			return repository.ErrNotFound
		}
		return nil
	})
	return found, err
}

func (r *courseRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Course, error) {
	return r.filter(ctx, func(c *domain.Course) bool { return c.CompanyID == companyID })
}

func (r *courseRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.filter(ctx, func(c *domain.Course) bool {
		_, ok := wanted[c.ID]
		return ok
	})
}

func (r *courseRepository) ListWithCompany(ctx context.Context) ([]domain.CourseListing, error) {
	result := []domain.CourseListing{}
	err := r.sess.run(ctx, false, func(data *state, _ time.Time) error {
		for _, course := range data.courses {
			owner := findCompany(data, func(c *domain.Company) bool { return c.ID == course.CompanyID })
			if owner == nil {
				continue
			}
			result = append(result, domain.CourseListing{Course: course, CompanyName: owner.Username})
		}
		return nil
	})
	return result, err
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	return r.sess.run(ctx, true, func(data *state, _ time.Time) error {
		for _, enrollment := range data.enrollments {
			if enrollment.CourseID == id {
				return &repository.ForeignKeyViolationError{Constraint: repository.ConstraintEnrollmentCourse}
			}
		}
		for i := range data.courses {
			if data.courses[i].ID == id {
				data.courses = append(data.courses[:i:i], data.courses[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (r *courseRepository) filter(ctx context.Context, match func(*domain.Course) bool) ([]domain.Course, error) {
	result := []domain.Course{}
	err := r.sess.run(ctx, false, func(data *state, _ time.Time) error {
		for i := range data.courses {
			if match(&data.courses[i]) {
				result = append(result, data.courses[i])
			}
		}
		return nil
	})
	return result, err
}

func findCourse(data *state, id string) *domain.Course {
	for i := range data.courses {
		if data.courses[i].ID == id {
			course := data.courses[i]
			return &course
		}
	}
	return nil
}

type enrollmentRepository struct {
	sess session
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	return r.sess.run(ctx, true, func(data *state, now time.Time) error {
		studentFound := false
		for _, s := range data.students {
			if s.ID == enrollment.StudentID {
				studentFound = true
				break
			}
		}
		if !studentFound {
			return &repository.ForeignKeyViolationError{Constraint: repository.ConstraintEnrollmentStudent}
		}
		if findCourse(data, enrollment.CourseID) == nil {
			return &repository.ForeignKeyViolationError{Constraint: repository.ConstraintEnrollmentCourse}
		}
		for _, existing := range data.enrollments {
			if existing.StudentID == enrollment.StudentID && existing.CourseID == enrollment.CourseID {
				return &repository.UniqueViolationError{Constraint: repository.ConstraintEnrollmentPair}
			}
		}
		enrollment.ID = newID()
		enrollment.CreatedAt = now
		data.enrollments = append(data.enrollments, *enrollment)
		return nil
	})
}

func (r *enrollmentRepository) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	exists := false
	err := r.sess.run(ctx, false, func(data *state, _ time.Time) error {
		for _, e := range data.enrollments {
			if e.StudentID == studentID && e.CourseID == courseID {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}

func (r *enrollmentRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	count := 0
	err := r.sess.run(ctx, false, func(data *state, _ time.Time) error {
		for _, e := range data.enrollments {
			if e.CourseID == courseID {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Enrollment, error) {
	result := []domain.Enrollment{}
	err := r.sess.run(ctx, false, func(data *state, _ time.Time) error {
		for _, e := range data.enrollments {
			if e.StudentID == studentID {
				result = append(result, e)
			}
		}
		return nil
	})
	return result, err
}

func (r *enrollmentRepository) Delete(ctx context.Context, studentID, courseID string) error {
	return r.sess.run(ctx, true, func(data *state, _ time.Time) error {
		for i, e := range data.enrollments {
			if e.StudentID == studentID && e.CourseID == courseID {
				data.enrollments = append(data.enrollments[:i:i], data.enrollments[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}
