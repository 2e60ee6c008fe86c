// Package config loads the runtime configuration of the chain services.
//
// Values come from the process environment (a `.env` file is loaded first
// when present), are mapped into structs with koanf and are validated with
// go-playground/validator so a service refuses to start on bad or missing
// settings.
//
// Two naming schemes are accepted:
//   - prefixed keys, CHAIN_<SECTION>__<FIELD>, where a double underscore
//     separates nesting levels: CHAIN_SERVER__BIND_ADDRESS -> server.bind_address
//   - the plain legacy names older deployment manifests still set:
//     PORT, BIND_ADDRESS, SERVICE_A_URL and SERVICE_C_URL
//
// Prefixed keys win when both are set. Empty variables count as unset.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	// Loads `.env` into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CHAIN_"

// ServiceKind selects which of the three services a process runs.
type ServiceKind string

const (
	// KindData is the leaf service answering GET /route?p=.
	KindData ServiceKind = "data"

	// KindEdge is the aggregating service answering GET /?name=.
	KindEdge ServiceKind = "edge"

	// KindTime is the leaf service answering GET /time.
	KindTime ServiceKind = "time"
)

// Valid reports whether k names one of the known services.
func (k ServiceKind) Valid() bool {
	switch k {
	case KindData, KindEdge, KindTime:
		return true
	}
	return false
}

// Config is the root configuration object.
//
// Observability is a pointer because the whole block is optional; defaults
// are injected before the environment is applied.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Upstream      UpstreamConfig       `koanf:"upstream"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env     string      `koanf:"env" validate:"required"`
	Service ServiceKind `koanf:"-"`
}

// ServerConfig groups settings for the HTTP listener.
//
// Timeouts are durations ("5s", "1m"). Zero means no limit, which is also
// what the legacy deployments ran with.
type ServerConfig struct {
	BindAddress        string        `koanf:"bind_address" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"min=0s"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"min=0s"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"min=0s"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"min=0s"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
}

// UpstreamConfig holds the base URLs of the edge service's dependencies.
// Both are required for KindEdge and ignored otherwise.
type UpstreamConfig struct {
	DataURL string `koanf:"data_url" validate:"omitempty,url"`
	TimeURL string `koanf:"time_url" validate:"omitempty,url"`
}

// legacyKeys maps the unprefixed variable names to koanf keys.
var legacyKeys = map[string]string{
	"BIND_ADDRESS":  "server.bind_address",
	"SERVICE_A_URL": "upstream.data_url",
	"SERVICE_C_URL": "upstream.time_url",
}

// defaults returns the configuration every environment starts from.
func defaults(kind ServiceKind) *Config {
	return &Config{
		Primary: Primary{
			Env:     "development",
			Service: kind,
		},
		Server: ServerConfig{
			ShutdownTimeout:    10 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig builds the configuration of the given service from the
// environment, validates it and returns it.
//
// Any returned error is meant to be fatal: callers log it and exit before
// binding a listener.
func LoadConfig(kind ServiceKind) (*Config, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown service kind %q", kind)
	}

	k := koanf.New(".")

	// PORT alone means "listen on every interface".
	if err := k.Load(env.ProviderWithValue("PORT", ".", func(key, value string) (string, interface{}) {
		if key != "PORT" || value == "" {
			return "", nil
		}
		return "server.bind_address", "0.0.0.0:" + value
	}), nil); err != nil {
		return nil, fmt.Errorf("could not load PORT: %w", err)
	}

	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return legacyKeys[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "__", "."), value
	}), nil); err != nil {
		return nil, fmt.Errorf("could not load %s env variables: %w", envPrefix, err)
	}

	mainConfig := defaults(kind)

	err := k.UnmarshalWithConf("", mainConfig, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           mainConfig,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if kind == KindEdge {
		if err := mainConfig.Upstream.validateForEdge(validate); err != nil {
			return nil, err
		}
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = "service-chain-" + string(kind)
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (u UpstreamConfig) validateForEdge(validate *validator.Validate) error {
	if err := validate.Var(u.DataURL, "required,url"); err != nil {
		return fmt.Errorf("upstream data_url (SERVICE_A_URL) is required: %w", err)
	}
	if err := validate.Var(u.TimeURL, "required,url"); err != nil {
		return fmt.Errorf("upstream time_url (SERVICE_C_URL) is required: %w", err)
	}
	return nil
}
