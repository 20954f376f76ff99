package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enrollment-service/internal/api/http/handlers"
	"github.com/spec-kit/enrollment-service/internal/auth"
	"github.com/spec-kit/enrollment-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Students       *handlers.StudentsHandler
	Companies      *handlers.CompaniesHandler
	Courses        *handlers.CoursesHandler
	Enrollments    *handlers.EnrollmentsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	studentOnly := cfg.AuthMiddleware.RequireRole(domain.RoleStudent)
	companyOnly := cfg.AuthMiddleware.RequireRole(domain.RoleCompany)

	authGroup := app.Group("/auth")
	authGroup.Post("/students/register", cfg.Students.Register)
	authGroup.Post("/students/login", cfg.Students.Login)
	authGroup.Post("/companies/register", cfg.Companies.Register)
	authGroup.Post("/companies/login", cfg.Companies.Login)

	app.Get("/students", companyOnly, cfg.Students.List)
	app.Get("/students/me/courses", studentOnly, cfg.Students.MyCourses)
	app.Post("/enrollments", studentOnly, cfg.Enrollments.Create)

	app.Get("/courses", cfg.Courses.List)
	app.Get("/courses/:id", cfg.Courses.Get)
	app.Post("/courses", companyOnly, cfg.Courses.Create)
	app.Delete("/courses/:id", companyOnly, cfg.Courses.Delete)

	app.Get("/companies/:id/courses", cfg.Companies.Courses)
}
