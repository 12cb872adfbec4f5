package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Limiter admits or rejects one request for a key.
type Limiter interface {
	Allow(key string) bool
}

// RateLimit rejects requests with 429 once the client IP runs out of tokens.
func RateLimit(lim Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if lim != nil && !lim.Allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"status":  http.StatusTooManyRequests,
					"message": http.StatusText(http.StatusTooManyRequests),
				})
			}
			return next(c)
		}
	}
}
