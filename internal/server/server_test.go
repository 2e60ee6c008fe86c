package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/service-chain/internal/config"
	loggerPkg "github.com/deppfellow/service-chain/internal/logger"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func newTestServer(t *testing.T, addr string) *Server {
	t.Helper()
	cfg := &config.Config{
		Primary:       config.Primary{Env: "test", Service: config.KindTime},
		Server:        config.ServerConfig{BindAddress: addr},
		Observability: config.DefaultObservabilityConfig(),
	}
	logger := zerolog.Nop()
	s, err := New(cfg, &logger, &loggerPkg.LoggerService{})
	require.NoError(t, err)
	return s
}

func TestStartWithoutSetup(t *testing.T) {
	s := newTestServer(t, "127.0.0.1:0")
	assert.EqualError(t, s.Start(), "HTTP server not initialized")
}

func TestStartAndShutdown(t *testing.T) {
	addr := freeAddr(t)
	s := newTestServer(t, addr)
	s.SetupHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusTeapot
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	err := <-errCh
	assert.True(t, errors.Is(err, http.ErrServerClosed))
}
