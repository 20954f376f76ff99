package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Kind identifies a domain failure independently of how it is rendered.
type Kind string

const (
	KindValidation         Kind = "validation_failed"
	KindDuplicateUsername  Kind = "duplicate_username"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindDuplicateTaxID     Kind = "duplicate_tax_id"
	KindNotFound           Kind = "not_found"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindInvalidToken       Kind = "invalid_token"
	KindTokenExpired       Kind = "token_expired"
	KindForbidden          Kind = "forbidden"
	KindCompanyNotFound    Kind = "company_not_found"
	KindOwnershipViolation Kind = "ownership_violation"
	KindHasDependents      Kind = "has_dependents"
	KindCourseNotFound     Kind = "course_not_found"
	KindStudentNotFound    Kind = "student_not_found"
	KindAlreadyEnrolled    Kind = "already_enrolled"
	KindRequest            Kind = "request"
	KindInternal           Kind = "internal"
)

const (
	messageBadLogin     = "invalid username or password"
	messageBadToken     = "invalid or expired token"
	messageAccessDenied = "access denied"
)

// Sentinels for each domain failure. Compare with errors.Is; constructors below
// return fresh values carrying details but matching the same sentinel.
var (
	ErrValidationFailed   = NewDomainError(KindValidation, "VALIDATION_FAILED", "validation failed", http.StatusBadRequest, nil)
	ErrDuplicateUsername  = NewDomainError(KindDuplicateUsername, "DUPLICATE_USERNAME", "username already registered", http.StatusBadRequest, nil)
	ErrDuplicateEmail     = NewDomainError(KindDuplicateEmail, "DUPLICATE_EMAIL", "email already registered", http.StatusBadRequest, nil)
	ErrDuplicateTaxID     = NewDomainError(KindDuplicateTaxID, "DUPLICATE_TAX_ID", "cnpj already registered", http.StatusBadRequest, nil)
	ErrNotFound           = NewDomainError(KindNotFound, "NOT_FOUND", "resource not found", http.StatusNotFound, nil)
	ErrInvalidCredentials = NewDomainError(KindInvalidCredentials, "INVALID_CREDENTIALS", messageBadLogin, http.StatusBadRequest, nil)
	ErrInvalidToken       = NewDomainError(KindInvalidToken, "UNAUTHORIZED", messageBadToken, http.StatusUnauthorized, nil)
	ErrTokenExpired       = NewDomainError(KindTokenExpired, "UNAUTHORIZED", messageBadToken, http.StatusUnauthorized, nil)
	ErrForbidden          = NewDomainError(KindForbidden, "FORBIDDEN", messageAccessDenied, http.StatusForbidden, nil)
	ErrCompanyNotFound    = NewDomainError(KindCompanyNotFound, "NOT_FOUND", "company not found", http.StatusNotFound, nil)
	ErrOwnershipViolation = NewDomainError(KindOwnershipViolation, "FORBIDDEN", messageAccessDenied, http.StatusForbidden, nil)
	ErrHasDependents      = NewDomainError(KindHasDependents, "HAS_DEPENDENTS", "course has active enrollments", http.StatusConflict, nil)
	ErrCourseNotFound     = NewDomainError(KindCourseNotFound, "NOT_FOUND", "course not found", http.StatusNotFound, nil)
	ErrStudentNotFound    = NewDomainError(KindStudentNotFound, "NOT_FOUND", "student not found", http.StatusNotFound, nil)
	ErrAlreadyEnrolled    = NewDomainError(KindAlreadyEnrolled, "ALREADY_ENROLLED", "student already enrolled in course", http.StatusConflict, nil)
)

// DomainError standardizes application errors.
type DomainError struct {
	Kind       Kind
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Kind so that detailed copies still satisfy errors.Is against the sentinels.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// With returns a copy of the error carrying the given details.
func (e *DomainError) With(details map[string]any) *DomainError {
	cp := *e
	cp.Details = details
	return &cp
}

// NewDomainError constructs a DomainError.
func NewDomainError(kind Kind, code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(KindValidation, "VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Kind:       KindNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:       KindInternal,
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Router errors keep
// their status; anything else is an unexpected failure and becomes a generic 500.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < http.StatusInternalServerError {
		return &DomainError{
			Kind:       KindRequest,
			Code:       strings.ToUpper(strings.ReplaceAll(http.StatusText(fiberErr.Code), " ", "_")),
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
			Err:        err,
		}
	}
	return NewInternalError(err).(*DomainError)
}
