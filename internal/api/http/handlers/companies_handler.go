package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enrollment-service/internal/api/dto"
	"github.com/spec-kit/enrollment-service/internal/service"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

// CompaniesHandler exposes company sign-up and login.
type CompaniesHandler struct {
	registration *service.RegistrationService
	auth         *service.AuthService
	courses      *service.CourseService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(registration *service.RegistrationService, authService *service.AuthService, courses *service.CourseService) *CompaniesHandler {
	return &CompaniesHandler{registration: registration, auth: authService, courses: courses}
}

// Register handles POST /auth/companies/register.
func (h *CompaniesHandler) Register(c *fiber.Ctx) error {
	var req dto.CompanyRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	company, err := h.registration.RegisterCompany(c.UserContext(), service.CompanyRegistration{
		CNPJ:     req.CNPJ,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}

// Login handles POST /auth/companies/login.
func (h *CompaniesHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	company, token, exp, err := h.auth.AuthenticateCompany(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"company": dto.NewCompanyResponse(company),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Courses handles GET /companies/:id/courses.
func (h *CompaniesHandler) Courses(c *fiber.Ctx) error {
	courses, err := h.courses.ListCoursesByCompany(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCourseList(courses)})
}
