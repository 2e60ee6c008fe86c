package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/service-chain/internal/handler"
)

func registerDataRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/route", handler.Handle(
		h.Data.Handler,
		h.Data.Route,
		http.StatusOK,
		handler.NewPrefixRequest,
	))
}

func registerEdgeRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", handler.Handle(
		h.Edge.Handler,
		h.Edge.Aggregate,
		http.StatusOK,
		handler.NewNameRequest,
	))
}

func registerTimeRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/time", handler.Handle(
		h.Time.Handler,
		h.Time.Now,
		http.StatusOK,
		handler.NewEmptyRequest,
	))
}
