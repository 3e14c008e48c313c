package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dealer-service/internal/domain"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// RequireRole ensures the caller holds one of the allowed roles. There is
// no role hierarchy; authorization is exact membership.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
