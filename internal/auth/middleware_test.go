package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enrollment-service/internal/domain"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

func newGuardedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	mw := NewMiddleware(NewGuard(tm))
	app.Get("/company", mw.RequireRole(domain.RoleCompany), func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(claims.SubjectID())
	})
	return app
}

func TestMiddleware_RequireRole(t *testing.T) {
	tm := NewTokenManager("mw-secret", time.Hour)
	app := newGuardedApp(tm)

	companyToken, _, err := tm.Issue("company-7", domain.RoleCompany)
	require.NoError(t, err)
	studentToken, _, err := tm.Issue("student-7", domain.RoleStudent)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + companyToken, status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + studentToken, status: http.StatusForbidden},
		{name: "ok", header: "bearer " + companyToken, status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/company", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
