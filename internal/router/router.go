// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps each service kind's paths to their
// handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/service-chain/internal/config"
	"github.com/deppfellow/service-chain/internal/handler"
	"github.com/deppfellow/service-chain/internal/middleware"
	"github.com/deppfellow/service-chain/internal/server"
)

// NewRouter builds the echo instance for s.Config.Primary.Service.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.JSONSerializer = JSONSerializer{}
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id must exist before the logger is built,
	// and the transaction before trace ids are attached to it.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.Instrument(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, s, h)

	switch s.Config.Primary.Service {
	case config.KindData:
		registerDataRoutes(router, h)
	case config.KindEdge:
		registerEdgeRoutes(router, h)
	case config.KindTime:
		registerTimeRoutes(router, h)
	}

	return router
}
