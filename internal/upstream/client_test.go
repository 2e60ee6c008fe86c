package upstream

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/service-chain/internal/metrics"
	"github.com/deppfellow/service-chain/internal/model"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func requireKind(t *testing.T, err error, kind Kind) *FetchError {
	t.Helper()
	var fe *FetchError
	require.True(t, errors.As(err, &fe), "expected *FetchError, got %T", err)
	require.Equal(t, kind, fe.Kind)
	return fe
}

func TestBuildURL(t *testing.T) {
	c := NewClient("data", "http://data:8080")

	assert.Equal(t, "http://data:8080/time", c.BuildURL("/time", nil))
	assert.Equal(t, "http://data:8080/time", c.BuildURL("/time", url.Values{}))
	assert.Equal(t, "http://data:8080/route?p=a+b%26c", c.BuildURL("/route", url.Values{"p": {"a b&c"}}))
	assert.Equal(t, "http://data:8080/route?p=", c.BuildURL("/route", url.Values{"p": {""}}))
}

func TestFetch_DataSuccess(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/route", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"key_one":"(x y)Field 1","key_two":"(x y)Field 2","extra":true}`))
	}))
	defer srv.Close()

	c := NewClient("data", srv.URL)
	got, err := Fetch[model.DataPayload, DataWire](context.Background(), c, "/route", url.Values{"p": {"x y"}})
	require.NoError(t, err)

	assert.Equal(t, "x y", gotQuery.Get("p"))
	assert.Equal(t, model.DataPayload{KeyOne: "(x y)Field 1", KeyTwo: "(x y)Field 2"}, got)
}

func TestFetch_EmptyStringsAreAccepted(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"key_one":"","key_two":""}`)

	got, err := Fetch[model.DataPayload, DataWire](context.Background(), NewClient("data", srv.URL), "/route", nil)
	require.NoError(t, err)
	assert.Equal(t, model.DataPayload{}, got)
}

func TestFetch_TimeSuccess(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"key_time":"2024-05-06T07:08:09.123456789Z"}`)

	got, err := Fetch[model.TimePayload, TimeWire](context.Background(), NewClient("time", srv.URL), "/time", nil)
	require.NoError(t, err)

	want := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)
	assert.True(t, want.Equal(got.KeyTime))
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := Fetch[model.TimePayload, TimeWire](context.Background(), NewClient("time", base), "/time", nil)

	fe := requireKind(t, err, KindUnreachable)
	assert.Equal(t, "time", fe.Dependency)
	assert.Equal(t, base+"/time", fe.URL)
	assert.Error(t, fe.Err)
}

func TestFetch_CancelledContextIsUnreachable(t *testing.T) {
	srv, calls := newServer(t, http.StatusOK, `{"key_time":"2024-05-06T07:08:09Z"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Fetch[model.TimePayload, TimeWire](ctx, NewClient("time", srv.URL), "/time", nil)
	requireKind(t, err, KindUnreachable)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFetch_Rejected(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			// A rejected exchange wins over a body that would decode fine.
			srv, _ := newServer(t, status, `{"key_time":"2024-05-06T07:08:09Z"}`)

			_, err := Fetch[model.TimePayload, TimeWire](context.Background(), NewClient("time", srv.URL), "/time", nil)

			fe := requireKind(t, err, KindRejected)
			assert.Equal(t, status, fe.Status)
			assert.Nil(t, fe.Err)
		})
	}
}

func TestFetch_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "empty body", body: ``},
		{name: "missing field", body: `{"key_one":"a"}`},
		{name: "null field", body: `{"key_one":"a","key_two":null}`},
		{name: "wrong type", body: `{"key_one":1,"key_two":"b"}`},
		{name: "array", body: `[]`},
		{name: "null document", body: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, tt.body)

			_, err := Fetch[model.DataPayload, DataWire](context.Background(), NewClient("data", srv.URL), "/route", nil)

			fe := requireKind(t, err, KindMalformed)
			assert.Error(t, fe.Err)
		})
	}
}

func TestFetch_TimeOffsetIsNormalizedToUTC(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"key_time":"2024-05-06T09:08:09+02:00"}`)

	got, err := Fetch[model.TimePayload, TimeWire](context.Background(), NewClient("time", srv.URL), "/time", nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.KeyTime.Location())
	assert.True(t, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC).Equal(got.KeyTime))
}

func TestFetch_ClientTimeoutIsUnreachable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewClient("data", srv.URL, WithHTTPClient(NewHTTPClient().SetTimeout(50*time.Millisecond)))

	_, err := Fetch[model.DataPayload, DataWire](context.Background(), c, "/route", nil)
	fe := requireKind(t, err, KindUnreachable)
	assert.Error(t, fe.Err)
}

func TestFetch_BadTimestampIsMalformed(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"key_time":"yesterday"}`)

	_, err := Fetch[model.TimePayload, TimeWire](context.Background(), NewClient("time", srv.URL), "/time", nil)
	requireKind(t, err, KindMalformed)
}

func TestFetch_LogsURLAndRecordsMetrics(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"key_time":"2024-05-06T07:08:09Z"}`)

	m, err := metrics.New("edge")
	require.NoError(t, err)

	var buf bytes.Buffer
	log := zerolog.New(&buf)
	ctx := log.WithContext(context.Background())

	_, err = Fetch[model.TimePayload, TimeWire](ctx, NewClient("time", srv.URL, WithMetrics(m)), "/time", nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"url":"`+srv.URL+`/time"`)
	assert.Contains(t, buf.String(), `"dependency":"time"`)

	count, err := testutil.GatherAndCount(m.Registry(), "upstream_fetch_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unreachable", KindUnreachable.String())
	assert.Equal(t, "rejected", KindRejected.String())
	assert.Equal(t, "malformed", KindMalformed.String())
	assert.Equal(t, "kind(0)", Kind(0).String())
}
