package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/service-chain/internal/errs"
	"github.com/deppfellow/service-chain/internal/model"
	"github.com/deppfellow/service-chain/internal/server"
	"github.com/deppfellow/service-chain/internal/service"
	"github.com/deppfellow/service-chain/internal/upstream"
)

// EdgeHandler serves the aggregated response.
type EdgeHandler struct {
	Handler
	edge *service.EdgeService
}

func NewEdgeHandler(s *server.Server, edge *service.EdgeService) *EdgeHandler {
	return &EdgeHandler{
		Handler: NewHandler(s),
		edge:    edge,
	}
}

// Aggregate answers GET /?name= with the merged data and time payloads.
func (h *EdgeHandler) Aggregate(c echo.Context, req *NameRequest) (model.Merged, error) {
	merged, err := h.edge.Aggregate(c.Request().Context(), req.Name)
	if err != nil {
		return model.Merged{}, upstreamError(err)
	}
	return merged, nil
}

// upstreamError maps a failed dependency call onto the status the client
// sees. All three are bodyless:
//
//	unreachable         -> 502
//	rejected, malformed -> 400
func upstreamError(err error) error {
	var fe *upstream.FetchError
	if !errors.As(err, &fe) {
		return errs.NewUpstreamError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).WithCause(err)
	}

	switch fe.Kind {
	case upstream.KindUnreachable:
		return errs.NewUpstreamError(http.StatusBadGateway, "internal/transport error").WithCause(err)
	case upstream.KindRejected, upstream.KindMalformed:
		return errs.NewUpstreamError(http.StatusBadRequest, "bad upstream response").WithCause(err)
	}
	return errs.NewUpstreamError(http.StatusInternalServerError, "unclassified upstream failure").WithCause(err)
}
