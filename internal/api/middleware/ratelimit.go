package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/peanutblog/blog-api/internal/api/metrics"
	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/ratelimit"
)

// Tier is one independently configured rate-limiting policy.
type Tier struct {
	// Name keys the counters and the rejection metric ("general", "auth",
	// "strict").
	Name string
	// Window is the fixed interval over which Ceiling applies.
	Window time.Duration
	// Ceiling is the number of counted requests allowed per window.
	Ceiling int
	// CountFailuresOnly defers counting until the response status is known
	// and records only statuses outside 200-299. Successful requests never
	// consume budget, which is what keeps legitimate logins unthrottled
	// while credential-guessing bursts are cut off.
	CountFailuresOnly bool
	// Message is the envelope message sent with a 429.
	Message string
}

// RateLimit returns middleware enforcing the given tier against the injected
// counter store, keyed by client address. Responses carry the standard
// RateLimit-* headers (legacy X-RateLimit-* headers are never emitted).
// When disabled is true (test environment) the middleware is a pass-through.
//
// A store failure is logged and the request is allowed: the limiter protects
// against abuse, it must not become the outage.
func RateLimit(store ratelimit.Store, tier Tier, disabled bool, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if disabled {
				return next(c)
			}

			ctx := c.Request().Context()
			key := tier.Name + ":" + c.RealIP()

			if tier.CountFailuresOnly {
				count, reset, err := store.Peek(ctx, key)
				if err != nil {
					log.Warn().Err(err).Str("tier", tier.Name).Msg("rate limit store unavailable")
					return next(c)
				}
				setRateLimitHeaders(c, tier, count, reset)
				if count > tier.Ceiling {
					return reject(tier)
				}

				handlerErr := next(c)

				if status := responseStatus(c, handlerErr); status < 200 || status > 299 {
					count, reset, err = store.Incr(ctx, key, tier.Window)
					if err != nil {
						log.Warn().Err(err).Str("tier", tier.Name).Msg("rate limit store unavailable")
						return handlerErr
					}
					setRateLimitHeaders(c, tier, count, reset)
					if count > tier.Ceiling {
						// The failure that crossed the ceiling is itself
						// answered 429.
						return reject(tier)
					}
				}
				return handlerErr
			}

			count, reset, err := store.Incr(ctx, key, tier.Window)
			if err != nil {
				log.Warn().Err(err).Str("tier", tier.Name).Msg("rate limit store unavailable")
				return next(c)
			}
			setRateLimitHeaders(c, tier, count, reset)
			if count > tier.Ceiling {
				return reject(tier)
			}
			return next(c)
		}
	}
}

func reject(tier Tier) error {
	metrics.RateLimitRejectionsTotal.WithLabelValues(tier.Name).Inc()
	return domain.NewError(http.StatusTooManyRequests, tier.Message, nil)
}

func setRateLimitHeaders(c echo.Context, tier Tier, count int, reset time.Time) {
	remaining := tier.Ceiling - count
	if remaining < 0 {
		remaining = 0
	}

	resetSeconds := int(tier.Window.Seconds())
	if !reset.IsZero() {
		if until := time.Until(reset); until > 0 {
			resetSeconds = int(until.Seconds())
		} else {
			resetSeconds = 0
		}
	}

	h := c.Response().Header()
	h.Set("RateLimit-Limit", fmt.Sprintf("%d", tier.Ceiling))
	h.Set("RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	h.Set("RateLimit-Reset", fmt.Sprintf("%d", resetSeconds))
}

// responseStatus derives the status the client will receive, whether the
// handler wrote a response or returned an error still to be rendered by the
// boundary handler.
func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return de.Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
