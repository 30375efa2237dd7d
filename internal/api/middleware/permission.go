package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/peanutblog/blog-api/internal/core/domain"
)

// Permit gates a route behind an allow-list of role names. The admin identity
// resolver must run first. A super admin passes every allow-list, including
// an empty one; other admins pass only when their role name is listed, so
// Permit() with no arguments yields a super-only route. Routes open to any
// authenticated admin should omit the gate entirely.
//
// Denials reveal nothing about which roles would have been accepted.
func Permit(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, ok := CurrentAdmin(c)
			if !ok {
				return domain.NewError(http.StatusUnauthorized, "Authorization header must be provided", nil)
			}

			if admin.IsAdmin {
				return next(c)
			}
			if _, ok := allowed[admin.RoleName]; ok {
				return next(c)
			}

			return domain.NewError(http.StatusForbidden, "Access Denied", nil)
		}
	}
}
