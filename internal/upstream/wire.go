package upstream

import (
	"time"

	"github.com/deppfellow/service-chain/internal/model"
)

// Wire is implemented by the structs a response body is decoded into.
//
// Wire structs use pointer fields tagged `validate:"required"` so a missing
// (or null) field fails decoding while an empty string is still accepted.
type Wire[T any] interface {
	Payload() T
}

// DataWire is the data service's body as it appears on the wire.
type DataWire struct {
	KeyOne *string `json:"key_one" validate:"required"`
	KeyTwo *string `json:"key_two" validate:"required"`
}

// Payload converts a validated DataWire.
func (w DataWire) Payload() model.DataPayload {
	return model.DataPayload{
		KeyOne: *w.KeyOne,
		KeyTwo: *w.KeyTwo,
	}
}

// TimeWire is the time service's body as it appears on the wire.
type TimeWire struct {
	KeyTime *time.Time `json:"key_time" validate:"required"`
}

// Payload converts a validated TimeWire. Any offset is normalized to UTC.
func (w TimeWire) Payload() model.TimePayload {
	return model.TimePayload{KeyTime: w.KeyTime.UTC()}
}
