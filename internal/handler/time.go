package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/service-chain/internal/middleware"
	"github.com/deppfellow/service-chain/internal/model"
	"github.com/deppfellow/service-chain/internal/server"
	"github.com/deppfellow/service-chain/internal/service"
)

// TimeHandler serves the current time.
type TimeHandler struct {
	Handler
	time *service.TimeService
}

func NewTimeHandler(s *server.Server, time *service.TimeService) *TimeHandler {
	return &TimeHandler{
		Handler: NewHandler(s),
		time:    time,
	}
}

// Now answers GET /time.
func (h *TimeHandler) Now(c echo.Context, _ *EmptyRequest) (model.TimePayload, error) {
	payload := h.time.Now()
	middleware.GetLogger(c).Info().Time("key_time", payload.KeyTime).Msg("(Request)")
	return payload, nil
}
