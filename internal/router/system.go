package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/service-chain/internal/config"
	"github.com/deppfellow/service-chain/internal/handler"
	"github.com/deppfellow/service-chain/internal/server"
)

// registerSystemRoutes registers endpoints that are not business logic:
// the health probe and the Prometheus scrape endpoint.
//
// The time service answers health on "/" and the others on "/health",
// which is where existing deployments probe them.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	healthPath := "/health"
	if s.Config.Primary.Service == config.KindTime {
		healthPath = "/"
	}
	r.GET(healthPath, h.Health.Check)

	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
}
