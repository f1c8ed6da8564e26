// Package middleware holds the echo middleware applied to the
// versioned REST group.
package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/snipframe-cloud/snipframe/internal/metrics"
	"github.com/snipframe-cloud/snipframe/pkg/apperr"
	"github.com/snipframe-cloud/snipframe/pkg/ratelimit"
)

// RateLimit denies requests from clients that exhausted their window.
// Denials carry a Retry-After header with the configured hint.
func RateLimit(limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := limiter.Check(c.RealIP()); err != nil {
				metrics.RateLimited()

				var appErr *apperr.Error
				if errors.As(err, &appErr) {
					seconds := int(appErr.RetryAfter.Seconds())
					c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
					return echo.NewHTTPError(http.StatusTooManyRequests, map[string]interface{}{
						"error":               appErr.Message,
						"retry_after_seconds": seconds,
					})
				}
				return echo.ErrTooManyRequests.SetInternal(err)
			}
			return next(c)
		}
	}
}
