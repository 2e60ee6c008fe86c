package handler

import (
	"github.com/deppfellow/service-chain/internal/server"
	"github.com/deppfellow/service-chain/internal/service"
)

// Handlers groups every HTTP handler of a process. Business handlers are
// nil unless the matching service exists.
type Handlers struct {
	Health *HealthHandler
	Data   *DataHandler
	Edge   *EdgeHandler
	Time   *TimeHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	h := &Handlers{
		Health: NewHealthHandler(s),
	}
	if services.Data != nil {
		h.Data = NewDataHandler(s, services.Data)
	}
	if services.Edge != nil {
		h.Edge = NewEdgeHandler(s, services.Edge)
	}
	if services.Time != nil {
		h.Time = NewTimeHandler(s, services.Time)
	}
	return h
}
