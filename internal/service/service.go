package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/events"
	"github.com/spec-kit/enrollment-service/internal/repository"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct tag validation and reports failures as
// ErrValidationFailed with one detail entry per offending field.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[toSnake(fe.Field())] = fe.Tag()
	}
	return apperrors.ErrValidationFailed.With(details)
}

func toSnake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// uniqueErrors maps schema constraint names onto conflict errors.
var uniqueErrors = map[string]error{
	repository.ConstraintStudentUsername: apperrors.ErrDuplicateUsername,
	repository.ConstraintStudentEmail:    apperrors.ErrDuplicateEmail,
	repository.ConstraintCompanyUsername: apperrors.ErrDuplicateUsername,
	repository.ConstraintCompanyEmail:    apperrors.ErrDuplicateEmail,
	repository.ConstraintCompanyCNPJ:     apperrors.ErrDuplicateTaxID,
	repository.ConstraintEnrollmentPair:  apperrors.ErrAlreadyEnrolled,
}

// foreignKeyErrors maps reference constraints onto the missing side.
var foreignKeyErrors = map[string]error{
	repository.ConstraintCourseCompany:     apperrors.ErrCompanyNotFound,
	repository.ConstraintEnrollmentStudent: apperrors.ErrStudentNotFound,
	repository.ConstraintEnrollmentCourse:  apperrors.ErrCourseNotFound,
}

// translateConstraint converts a constraint violation into its domain error.
// Errors that are not known violations are returned unchanged.
func translateConstraint(err error) error {
	if constraint, ok := repository.UniqueConstraint(err); ok {
		if mapped, found := uniqueErrors[constraint]; found {
			return mapped
		}
	}
	if constraint, ok := repository.ForeignKeyConstraint(err); ok {
		if mapped, found := foreignKeyErrors[constraint]; found {
			return mapped
		}
	}
	return err
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, event)
}

func actor(role domain.Role, id string) events.Actor {
	return events.Actor{Role: role, ID: id}
}
