package auth

import (
	"github.com/spec-kit/enrollment-service/internal/domain"
	apperrors "github.com/spec-kit/enrollment-service/pkg/util/errorutil"
)

// TokenValidator is the part of the token service the guard depends on.
type TokenValidator interface {
	Validate(tokenStr string) (*Claims, error)
}

// Guard is the single place where presented tokens are checked for a role.
type Guard struct {
	tokens TokenValidator
}

// NewGuard constructs a guard over the given validator.
func NewGuard(tokens TokenValidator) *Guard {
	return &Guard{tokens: tokens}
}

// RequireRole validates the token and checks it was issued for expectedRole.
func (g *Guard) RequireRole(tokenStr string, expectedRole domain.Role) (*Claims, error) {
	claims, err := g.tokens.Validate(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Role != expectedRole {
		return nil, apperrors.ErrForbidden
	}
	return claims, nil
}
