package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enrollment-service/internal/domain"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

const claimsKey = "auth_claims"

// Middleware adapts the Guard to fiber routes.
type Middleware struct {
	guard *Guard
}

// NewMiddleware constructs middleware.
func NewMiddleware(guard *Guard) *Middleware {
	return &Middleware{guard: guard}
}

// RequireRole enforces a bearer token issued for role and stores its claims.
func (m *Middleware) RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		claims, err := m.guard.RequireRole(token, role)
		if err != nil {
			return err
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromContext retrieves the authenticated caller's claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrInvalidToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.ErrInvalidToken
	}
	return strings.TrimSpace(parts[1]), nil
}
