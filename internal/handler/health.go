package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/service-chain/internal/middleware"
	"github.com/deppfellow/service-chain/internal/model"
	"github.com/deppfellow/service-chain/internal/server"
)

// HealthHandler answers liveness probes. It never checks dependencies: a
// running process is a healthy one.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Check always returns 200 {"status":"Healthy"}.
func (h *HealthHandler) Check(c echo.Context) error {
	middleware.GetLogger(c).Debug().
		Str("operation", "health_check").
		Msg("health check passed")

	return c.JSON(http.StatusOK, model.Healthy())
}
