package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/givehub/marketplace-api/internal/domain"
	apperrors "github.com/givehub/marketplace-api/pkg/util/errorutil"
)

// RequireRole gates a route on the claims already attached by Authenticate.
// It performs no verification of its own; running it first is an ordering
// bug and rejects with 403.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewForbidden("access denied")
		}
		if claims.Role != role {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
