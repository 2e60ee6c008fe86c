package service

import (
	"github.com/deppfellow/service-chain/internal/model"
)

// DataService produces the data service's payload.
type DataService struct{}

func NewDataService() *DataService {
	return &DataService{}
}

// Route formats the payload for prefix.
func (s *DataService) Route(prefix string) model.DataPayload {
	return model.NewDataPayload(prefix)
}
