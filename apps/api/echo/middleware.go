package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"
)

// simulatedLatencyMiddleware delays every request by a fixed amount. Enabled
// in DEV mode so the frontend sees response times comparable to a remote
// backend.
func simulatedLatencyMiddleware(delay time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			select {
			case <-time.After(delay):
			case <-ctx.Request().Context().Done():
				return ctx.Request().Context().Err()
			}
			return next(ctx)
		}
	}
}
