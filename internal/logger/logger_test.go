package logger

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/service-chain/internal/config"
)

func TestNewLoggerService_DisabledWithoutLicense(t *testing.T) {
	ls := NewLoggerService(config.DefaultObservabilityConfig())

	assert.Nil(t, ls.GetApplication())
	assert.NotPanics(t, ls.Shutdown)

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
}

func TestNewLogger_JSONFieldsAndLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.ServiceName = "service-chain-edge"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(cfg, &LoggerService{}, &buf)

	log.Info().Msg("dropped")
	log.Warn().Str("url", "http://data/route?p=x").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "service-chain-edge", entry["service"])
	assert.Equal(t, "http://data/route?p=x", entry["url"])
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.DefaultObservabilityConfig(), nil, &buf)

	got := WithTraceContext(log, nil)
	got.Info().Msg("hello")

	assert.NotContains(t, buf.String(), "trace.id")
}
