// Package config loads and validates the application configuration
// from a YAML file, environment variables, and defaults, in that
// order of precedence (env over file over defaults).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/talentmatch/talentmatch/internal/domain"
)

// Config is the full application configuration tree.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Oracle   OracleConfig   `mapstructure:"oracle" validate:"required"`
	Matching MatchingConfig `mapstructure:"matching" validate:"required"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `mapstructure:"addr" validate:"required"`

	// ReadTimeout bounds request header and body reads.
	ReadTimeout time.Duration `mapstructure:"read_timeout" validate:"min=0"`

	// WriteTimeout bounds response writes. Oracle-backed endpoints can
	// run for minutes on large pools, so this defaults generously.
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"min=0"`

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

// OracleConfig configures the LLM transport behind the oracles.
type OracleConfig struct {
	// Provider selects the LLM backend: openai, anthropic, or google.
	Provider string `mapstructure:"provider" validate:"required,oneof=openai anthropic google"`

	// Model overrides the provider's default model.
	Model string `mapstructure:"model"`

	// APIKey authenticates against the provider. Usually supplied via
	// the TALENTMATCH_ORACLE_API_KEY environment variable.
	APIKey string `mapstructure:"api_key"`

	// Temperature for oracle calls.
	Temperature float64 `mapstructure:"temperature" validate:"min=0,max=2"`

	// MaxTokens bounds each completion.
	MaxTokens int `mapstructure:"max_tokens" validate:"min=0"`

	// RequestTimeout bounds one oracle call.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"min=0"`

	// RequestsPerSecond paces oracle calls; zero disables rate
	// limiting.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"min=0"`

	// MaxRetries enables transport-level retries on transient provider
	// failures. Zero, the default, keeps the fail-fast behavior.
	MaxRetries int `mapstructure:"max_retries" validate:"min=0,max=10"`
}

// MatchingConfig configures the orchestration pipeline.
type MatchingConfig struct {
	// BatchSize is the number of candidates per oracle request.
	BatchSize int `mapstructure:"batch_size" validate:"min=1"`

	// PageSize is the default result page size for queries.
	PageSize int `mapstructure:"page_size" validate:"min=1"`

	// Weights is the default scoring weight configuration applied when
	// a request does not carry its own.
	Weights domain.WeightConfig `mapstructure:"weights"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Debug enables debug-level output.
	Debug bool `mapstructure:"debug"`

	// JSON switches from console to JSON encoding.
	JSON bool `mapstructure:"json"`
}

const envPrefix = "TALENTMATCH"

// Load reads configuration from the given file path (empty means
// defaults plus environment only), applies TALENTMATCH_* environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Matching.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("oracle.provider", "openai")
	// Empty defaults keep these keys visible to AutomaticEnv.
	v.SetDefault("oracle.model", "")
	v.SetDefault("oracle.api_key", "")
	v.SetDefault("oracle.temperature", 0.1)
	v.SetDefault("oracle.max_tokens", 4096)
	v.SetDefault("oracle.request_timeout", 2*time.Minute)
	v.SetDefault("oracle.requests_per_second", 2.0)
	v.SetDefault("oracle.max_retries", 0)

	v.SetDefault("matching.batch_size", 5)
	v.SetDefault("matching.page_size", 10)
	defaults := domain.DefaultWeights()
	v.SetDefault("matching.weights.technical_skills", defaults.TechnicalSkills)
	v.SetDefault("matching.weights.experience", defaults.Experience)
	v.SetDefault("matching.weights.training", defaults.Training)
	v.SetDefault("matching.weights.context", defaults.Context)

	v.SetDefault("logging.debug", false)
	v.SetDefault("logging.json", false)
}
