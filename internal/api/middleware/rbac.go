package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/9rib/marketplace-api/internal/core/domain"
)

// RequireRole lets a request through when its token carries one of roles.
// Missing claims fail as unauthenticated, other roles as forbidden; both are
// rendered by the API error handler.
//
// The token role can be stale after a promotion or demotion, so services
// that act on behalf of an admin still load the caller's stored profile.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, _ := c.Get(ContextUserID).(string); id == "" {
				return domain.ErrUnauthenticated
			}
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
