package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enrollment-service/internal/api/dto"
	"github.com/spec-kit/enrollment-service/internal/auth"
	"github.com/spec-kit/enrollment-service/internal/service"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

// EnrollmentsHandler lets an authenticated student enroll in a course.
type EnrollmentsHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentsHandler constructs handler.
func NewEnrollmentsHandler(enrollments *service.EnrollmentService) *EnrollmentsHandler {
	return &EnrollmentsHandler{enrollments: enrollments}
}

// Create POST /enrollments. The student is always the token's subject.
func (h *EnrollmentsHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.ErrInvalidToken
	}
	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	courseID := strings.TrimSpace(req.CourseID)
	if courseID == "" {
		return apperrors.ErrValidationFailed.With(map[string]any{"course_id": "required"})
	}

	enrollment, err := h.enrollments.Enroll(c.UserContext(), claims.SubjectID(), courseID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEnrollmentResponse(enrollment)})
}
