package handler

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/service-chain/internal/errs"
	"github.com/deppfellow/service-chain/internal/model"
	"github.com/deppfellow/service-chain/internal/service"
	"github.com/deppfellow/service-chain/internal/upstream"
)

func TestUpstreamError(t *testing.T) {
	tests := []struct {
		name   string
		stage  service.Stage
		kind   upstream.Kind
		status int
	}{
		{"data unreachable", service.StageData, upstream.KindUnreachable, http.StatusBadGateway},
		{"data rejected", service.StageData, upstream.KindRejected, http.StatusBadRequest},
		{"data malformed", service.StageData, upstream.KindMalformed, http.StatusBadRequest},
		{"time unreachable", service.StageTime, upstream.KindUnreachable, http.StatusBadGateway},
		{"time rejected", service.StageTime, upstream.KindRejected, http.StatusBadRequest},
		{"time malformed", service.StageTime, upstream.KindMalformed, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause := &service.StageError{
				Stage: tt.stage,
				Cause: &upstream.FetchError{Kind: tt.kind, Dependency: tt.stage.String()},
			}

			var httpErr *errs.HTTPError
			require.ErrorAs(t, upstreamError(cause), &httpErr)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.True(t, httpErr.NoBody)

			var stageErr *service.StageError
			assert.ErrorAs(t, httpErr, &stageErr)
		})
	}
}

func TestUpstreamError_UnclassifiedIs500(t *testing.T) {
	var httpErr *errs.HTTPError
	require.ErrorAs(t, upstreamError(errors.New("boom")), &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.True(t, httpErr.NoBody)
}

func TestRequestBinding(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"", "Unknown"},
		{"name=Ann", "Ann"},
		{"name=", ""},
		{"name=a&name=b", "a"},
		{"name=a;b", "a;b"},
		{"name=50%", "50%"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			values := model.ParseQuery(tt.query)

			req := NewNameRequest()
			req.BindQuery(values)
			assert.Equal(t, tt.want, req.Name)

			prefix := NewPrefixRequest()
			renamed := url.Values{}
			if v, ok := values["name"]; ok {
				renamed["p"] = v
			}
			prefix.BindQuery(renamed)
			assert.Equal(t, tt.want, prefix.Prefix)
		})
	}
}

func TestNewRequestsAreDistinct(t *testing.T) {
	assert.NotSame(t, NewNameRequest(), NewNameRequest())
}
