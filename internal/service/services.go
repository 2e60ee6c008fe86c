package service

import (
	"github.com/deppfellow/service-chain/internal/config"
	"github.com/deppfellow/service-chain/internal/server"
	"github.com/deppfellow/service-chain/internal/upstream"
)

// Services groups the services of one process. Only the fields belonging
// to the configured service kind are set.
type Services struct {
	Data *DataService
	Edge *EdgeService
	Time *TimeService
}

// NewServices builds the services for s.Config.Primary.Service.
func NewServices(s *server.Server) (*Services, error) {
	services := &Services{}

	switch s.Config.Primary.Service {
	case config.KindData:
		services.Data = NewDataService()
	case config.KindTime:
		services.Time = NewTimeService(nil)
	case config.KindEdge:
		dataClient := upstream.NewClient("data", s.Config.Upstream.DataURL, upstream.WithMetrics(s.Metrics))
		timeClient := upstream.NewClient("time", s.Config.Upstream.TimeURL, upstream.WithMetrics(s.Metrics))
		services.Edge = NewEdgeService(dataClient, timeClient)
	}

	return services, nil
}
