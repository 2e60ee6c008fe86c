package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/service-chain/internal/server"
)

// MetricsMiddleware feeds the Prometheus request collectors.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Instrument records in-flight requests, totals by status and latency.
// Requests that matched no route are grouped under "unmatched" to keep
// label cardinality bounded.
func (m *MetricsMiddleware) Instrument() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.server.Metrics.RequestStarted()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			m.server.Metrics.RequestFinished(
				c.Request().Method,
				path,
				errorStatus(err, c.Response().Status),
				time.Since(start),
			)

			return err
		}
	}
}
