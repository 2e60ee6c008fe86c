package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/deppfellow/service-chain/internal/model"
	"github.com/deppfellow/service-chain/internal/upstream"
)

const (
	// DataPath and DataParam address the data service's business route.
	DataPath  = "/route"
	DataParam = "p"

	// TimePath is the time service's business route.
	TimePath = "/time"
)

// Stage names the dependency an aggregation failed on.
type Stage int

const (
	StageData Stage = iota + 1
	StageTime
)

func (s Stage) String() string {
	switch s {
	case StageData:
		return "data"
	case StageTime:
		return "time"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// StageError reports which dependency failed and how.
type StageError struct {
	Stage Stage
	Cause *upstream.FetchError
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// EdgeService merges the data and time dependencies into one response.
type EdgeService struct {
	data *upstream.Client
	time *upstream.Client
}

// NewEdgeService creates an EdgeService calling data and time.
func NewEdgeService(data, time *upstream.Client) *EdgeService {
	return &EdgeService{data: data, time: time}
}

// Aggregate fetches the data payload for name, then the time payload, and
// merges them.
//
// The calls are sequential and the first failure ends the request: when the
// data call fails the time service is never contacted. Errors are always
// *StageError.
func (s *EdgeService) Aggregate(ctx context.Context, name string) (model.Merged, error) {
	data, err := upstream.Fetch[model.DataPayload, upstream.DataWire](ctx, s.data, DataPath, url.Values{DataParam: {name}})
	if err != nil {
		return model.Merged{}, stageError(StageData, err)
	}

	t, err := upstream.Fetch[model.TimePayload, upstream.TimeWire](ctx, s.time, TimePath, nil)
	if err != nil {
		return model.Merged{}, stageError(StageTime, err)
	}

	return model.Merge(data, t), nil
}

func stageError(stage Stage, err error) error {
	fe, ok := err.(*upstream.FetchError)
	if !ok {
		// Fetch only returns *FetchError; anything else is a transport problem.
		fe = &upstream.FetchError{Kind: upstream.KindUnreachable, Err: err}
	}
	return &StageError{Stage: stage, Cause: fe}
}
