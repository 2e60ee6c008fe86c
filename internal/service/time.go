package service

import (
	"time"

	"github.com/deppfellow/service-chain/internal/model"
)

// TimeService reports the current time in UTC.
type TimeService struct {
	now func() time.Time
}

// NewTimeService uses clock to read the time, or time.Now when clock is nil.
func NewTimeService(clock func() time.Time) *TimeService {
	if clock == nil {
		clock = time.Now
	}
	return &TimeService{now: clock}
}

// Now returns the current time payload.
func (s *TimeService) Now() model.TimePayload {
	return model.TimePayload{KeyTime: s.now().UTC()}
}
