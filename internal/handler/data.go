package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/service-chain/internal/middleware"
	"github.com/deppfellow/service-chain/internal/model"
	"github.com/deppfellow/service-chain/internal/server"
	"github.com/deppfellow/service-chain/internal/service"
)

// DataHandler serves the data service's route.
type DataHandler struct {
	Handler
	data *service.DataService
}

func NewDataHandler(s *server.Server, data *service.DataService) *DataHandler {
	return &DataHandler{
		Handler: NewHandler(s),
		data:    data,
	}
}

// Route answers GET /route?p=.
func (h *DataHandler) Route(c echo.Context, req *PrefixRequest) (model.DataPayload, error) {
	middleware.GetLogger(c).Info().Msg("(Request)=" + req.Prefix)
	return h.data.Route(req.Prefix), nil
}
