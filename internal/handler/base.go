package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/service-chain/internal/middleware"
	"github.com/deppfellow/service-chain/internal/model"
	"github.com/deppfellow/service-chain/internal/server"
)

// Handler is embedded by concrete handlers to reach the shared container.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// HandlerFunc is a typed endpoint receiving a bound request.
// Req is a pointer type.
type HandlerFunc[Req Request, Res any] func(c echo.Context, req Req) (Res, error)

// handleRequest binds the query into req, runs handler and writes the JSON
// result with status, logging timings and adding New Relic attributes.
func handleRequest[Req Request, Res any](
	c echo.Context,
	req Req,
	handler HandlerFunc[Req, Res],
	status int,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	req.BindQuery(model.ParseQuery(c.Request().URL.RawQuery))

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return c.JSON(status, result)
}

// Handle adapts a typed handler into an echo.HandlerFunc writing JSON with
// status on success.
//
// newReq is called once per request so concurrent requests never share a
// request value.
//
//	router.GET("/", handler.Handle(h.Handler, h.Aggregate, http.StatusOK, NewNameRequest))
func Handle[Req Request, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq(), handler, status)
	}
}
