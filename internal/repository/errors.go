package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Named schema constraints. Stores report violations using these names so that
// services can translate them into domain errors.
const (
	ConstraintStudentUsername   = "students_username_key"
	ConstraintStudentEmail      = "students_email_key"
	ConstraintCompanyUsername   = "companies_username_key"
	ConstraintCompanyEmail      = "companies_email_key"
	ConstraintCompanyCNPJ       = "companies_cnpj_key"
	ConstraintCourseCompany     = "courses_company_id_fkey"
	ConstraintEnrollmentPair    = "enrollments_student_course_key"
	ConstraintEnrollmentStudent = "enrollments_student_id_fkey"
	ConstraintEnrollmentCourse  = "enrollments_course_id_fkey"
)

// UniqueViolationError reports a rejected insert on a unique constraint.
type UniqueViolationError struct {
	Constraint string
	Err        error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique violation on %s", e.Constraint)
}

func (e *UniqueViolationError) Unwrap() error {
	return e.Err
}

// ForeignKeyViolationError reports a write that would break a reference.
type ForeignKeyViolationError struct {
	Constraint string
	Err        error
}

func (e *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("foreign key violation on %s", e.Constraint)
}

func (e *ForeignKeyViolationError) Unwrap() error {
	return e.Err
}

// UniqueConstraint returns the violated unique constraint name, if err is one.
func UniqueConstraint(err error) (string, bool) {
	var uv *UniqueViolationError
	if errors.As(err, &uv) {
		return uv.Constraint, true
	}
	return "", false
}

// ForeignKeyConstraint returns the violated foreign key name, if err is one.
func ForeignKeyConstraint(err error) (string, bool) {
	var fk *ForeignKeyViolationError
	if errors.As(err, &fk) {
		return fk.Constraint, true
	}
	return "", false
}
