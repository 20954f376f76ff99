package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enrollment-service/internal/api/dto"
	"github.com/spec-kit/enrollment-service/internal/auth"
	"github.com/spec-kit/enrollment-service/internal/service"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

// CoursesHandler manages the public catalog and company-owned courses.
type CoursesHandler struct {
	courses *service.CourseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courses *service.CourseService) *CoursesHandler {
	return &CoursesHandler{courses: courses}
}

// Create POST /courses.
func (h *CoursesHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.ErrInvalidToken
	}
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	course, err := h.courses.CreateCourse(c.UserContext(), claims.SubjectID(), service.CourseInput{
		Name:        req.Name,
		Description: req.Description,
		VideoLink:   req.VideoLink,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCourseResponse(course)})
}

// List GET /courses.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	listings, err := h.courses.ListAllCourses(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewListingList(listings)})
}

// Get GET /courses/:id.
func (h *CoursesHandler) Get(c *fiber.Ctx) error {
	course, err := h.courses.GetCourse(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCourseResponse(course)})
}

// Delete DELETE /courses/:id.
func (h *CoursesHandler) Delete(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.ErrInvalidToken
	}
	if err := h.courses.DeleteCourse(c.UserContext(), c.Params("id"), claims.SubjectID()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
