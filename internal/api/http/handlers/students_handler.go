package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enrollment-service/internal/api/dto"
	"github.com/spec-kit/enrollment-service/internal/auth"
	"github.com/spec-kit/enrollment-service/internal/service"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

// StudentsHandler exposes student sign-up, login and the student's own views.
type StudentsHandler struct {
	registration *service.RegistrationService
	auth         *service.AuthService
	enrollments  *service.EnrollmentService
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(registration *service.RegistrationService, authService *service.AuthService, enrollments *service.EnrollmentService) *StudentsHandler {
	return &StudentsHandler{registration: registration, auth: authService, enrollments: enrollments}
}

// Register handles POST /auth/students/register.
func (h *StudentsHandler) Register(c *fiber.Ctx) error {
	var req dto.StudentRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	student, err := h.registration.RegisterStudent(c.UserContext(), service.StudentRegistration{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStudentResponse(student)})
}

// Login handles POST /auth/students/login.
func (h *StudentsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	student, token, exp, err := h.auth.AuthenticateStudent(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"student": dto.NewStudentResponse(student),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// List handles GET /students. The directory carries contact data, so the
// route is limited to company callers.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	students, err := h.registration.ListStudents(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStudentList(students)})
}

// MyCourses handles GET /students/me/courses.
func (h *StudentsHandler) MyCourses(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.ErrInvalidToken
	}
	courses, err := h.enrollments.ListEnrolledCourses(c.UserContext(), claims.SubjectID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCourseList(courses)})
}
