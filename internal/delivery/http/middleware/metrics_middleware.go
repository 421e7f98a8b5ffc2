package middleware

import (
	"time"

	"shelf/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// unmatchedRoute labels requests that hit no registered route.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records per-route request counts and latency.
type MetricsMiddleware struct {
	recorder service.MetricsRecorder
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(recorder service.MetricsRecorder) *MetricsMiddleware {
	return &MetricsMiddleware{recorder: recorder}
}

// Handle must wrap LoggerMiddleware so the response status is final when recorded.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		// Route templates keep label cardinality bounded.
		route := c.Path()
		if route == "" {
			route = unmatchedRoute
		}
		m.recorder.RecordHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))

		return err
	}
}
