package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/peanutblog/blog-api/internal/api/metrics"
	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/token"
)

// Context keys under which the resolved principal is stored.
const (
	CtxUserKey  = "currentUser"
	CtxAdminKey = "currentAdmin"
)

// Lookup loads the principal identified by a validated token claim. It must
// return domain.ErrUserNotFound / domain.ErrAdminNotFound when the principal
// no longer exists; any other error is treated as a storage failure.
type Lookup[P any] func(ctx context.Context, id string) (P, error)

// Identity returns the per-variant identity resolver: it extracts the bearer
// token, validates it against the variant's issuer, re-checks that the
// principal still exists, and attaches it to the request context under
// ctxKey. One generic implementation serves both principal classes; only the
// issuer, lookup and noun ("user"/"admin") differ between instantiations.
//
// Every failure terminates the request with 401 before the downstream
// handler runs. A storage failure during lookup surfaces as-is (500 at the
// boundary) and is never retried.
func Identity[P any](issuer *token.Issuer, lookup Lookup[P], ctxKey, noun string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return domain.NewError(http.StatusUnauthorized, "Authorization header must be provided", nil)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return domain.NewError(http.StatusUnauthorized, "Authorization token must be 'Bearer [token]'", nil)
			}

			claims, err := issuer.Validate(parts[1])
			if err != nil {
				metrics.TokenValidationFailuresTotal.WithLabelValues(noun, "invalid_token").Inc()
				return domain.NewError(http.StatusUnauthorized, "Invalid/Expired token", nil)
			}

			principal, err := lookup(c.Request().Context(), claims.ID)
			switch {
			case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrAdminNotFound):
				// Valid signature, but the principal vanished since issuance.
				metrics.TokenValidationFailuresTotal.WithLabelValues(noun, "principal_gone").Inc()
				return domain.NewError(http.StatusUnauthorized, "No such "+noun, nil)
			case err != nil:
				return err
			}

			c.Set(ctxKey, principal)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by the user identity resolver.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(CtxUserKey).(*domain.User)
	return user, ok
}

// CurrentAdmin returns the admin attached by the admin identity resolver.
func CurrentAdmin(c echo.Context) (*domain.Admin, bool) {
	admin, ok := c.Get(CtxAdminKey).(*domain.Admin)
	return admin, ok
}
