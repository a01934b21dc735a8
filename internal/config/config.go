// Package config loads and validates application configuration from YAML
// files and RELEVANCER_* environment variables.
package config

import (
	stderrors "errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"relevancer/internal/engine"
	"relevancer/internal/errors"
	"relevancer/internal/types"
)

// Config is the root application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Engine        EngineConfig        `mapstructure:"engine"`
	AI            AIConfig            `mapstructure:"ai"`
	Server        ServerConfig        `mapstructure:"server"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AppConfig holds application-wide settings
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// BandConfig is one simulation score band in percentage points
type BandConfig struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// SimulationConfig toggles the simulation strategy and overrides its bands
type SimulationConfig struct {
	Enabled bool                  `mapstructure:"enabled"`
	Bands   map[string]BandConfig `mapstructure:"bands"`
}

// WeightsConfig overrides the base dimension weights
type WeightsConfig struct {
	Skills     float64 `mapstructure:"skills"`
	Experience float64 `mapstructure:"experience"`
	Education  float64 `mapstructure:"education"`
	Semantic   float64 `mapstructure:"semantic"`
}

// EngineConfig holds scoring engine settings
type EngineConfig struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Weights    WeightsConfig    `mapstructure:"weights"`
}

// CircuitBreakerConfig tunes the breaker around the embedding provider
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"maxRequests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failureThreshold"`
}

// AIConfig holds embedding provider settings
type AIConfig struct {
	Enabled        bool                 `mapstructure:"enabled"`
	Provider       string               `mapstructure:"provider"`
	Model          string               `mapstructure:"model"`
	APIKey         string               `mapstructure:"apiKey"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	MaxRetries     int                  `mapstructure:"maxRetries"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// RateLimitConfig tunes HTTP token-bucket rate limiting
type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerMinute int           `mapstructure:"requestsPerMinute"`
	BurstCapacity     int           `mapstructure:"burstCapacity"`
	ByAPIKey          bool          `mapstructure:"byAPIKey"`
	CleanupInterval   time.Duration `mapstructure:"cleanupInterval"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string          `mapstructure:"host"`
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration   `mapstructure:"writeTimeout"`
	IdleTimeout     time.Duration   `mapstructure:"idleTimeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdownTimeout"`
	MaxRequestSize  int64           `mapstructure:"maxRequestSize"`
	APIKeys         []string        `mapstructure:"apiKeys"`
	RateLimit       RateLimitConfig `mapstructure:"rateLimit"`
}

// PrometheusConfig holds the metrics scrape endpoint settings
type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

// TracingConfig holds tracing exporter settings
type TracingConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	ConsoleExport bool `mapstructure:"consoleExport"`
}

// OTLPConfig holds settings for pushing telemetry to an OTLP collector
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// ObservabilityConfig holds telemetry settings
type ObservabilityConfig struct {
	Enabled     bool             `mapstructure:"enabled"`
	ServiceName string           `mapstructure:"serviceName"`
	Prometheus  PrometheusConfig `mapstructure:"prometheus"`
	Tracing     TracingConfig    `mapstructure:"tracing"`
	OTLP        OTLPConfig       `mapstructure:"otlp"`
}

// LoadConfig reads configuration from the given file, the standard search
// paths and the environment, in ascending priority.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.relevancer")
		v.AddConfigPath("/etc/relevancer")
	}

	v.SetEnvPrefix("RELEVANCER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "failed to read config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10*1024*1024)

	v.SetDefault("engine.simulation.enabled", false)
	v.SetDefault("engine.weights.skills", 0.45)
	v.SetDefault("engine.weights.experience", 0.25)
	v.SetDefault("engine.weights.education", 0.15)
	v.SetDefault("engine.weights.semantic", 0.15)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-embedding-001")
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("ai.maxRetries", 2)
	v.SetDefault("ai.circuitBreaker.enabled", true)
	v.SetDefault("ai.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.circuitBreaker.interval", "60s")
	v.SetDefault("ai.circuitBreaker.timeout", "30s")
	v.SetDefault("ai.circuitBreaker.failureThreshold", 5)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "30s")
	v.SetDefault("server.writeTimeout", "60s")
	v.SetDefault("server.idleTimeout", "120s")
	v.SetDefault("server.shutdownTimeout", "10s")
	v.SetDefault("server.maxRequestSize", 1024*1024)
	v.SetDefault("server.rateLimit.enabled", true)
	v.SetDefault("server.rateLimit.requestsPerMinute", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byAPIKey", true)
	v.SetDefault("server.rateLimit.cleanupInterval", "10m")

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "relevancer")
	v.SetDefault("observability.prometheus.enabled", false)
	v.SetDefault("observability.prometheus.host", "0.0.0.0")
	v.SetDefault("observability.prometheus.port", 9090)
	v.SetDefault("observability.prometheus.path", "/metrics")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.consoleExport", false)
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", false)
}

// Validate checks invariants the rest of the application depends on.
func (c *Config) Validate() error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, c.App.LogLevel) {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("invalid log level %q, must be one of %v", c.App.LogLevel, validLevels), nil)
	}
	if !slices.Contains(c.App.SupportedFormats, c.App.DefaultFormat) {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("default format %q is not among supported formats %v", c.App.DefaultFormat, c.App.SupportedFormats), nil)
	}

	if c.AI.Enabled && c.AI.APIKey == "" {
		return errors.NewConfigError(errors.ErrCodeMissingAPIKey,
			"ai.apiKey is required when the embedding provider is enabled (set RELEVANCER_AI_APIKEY)", nil)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("invalid server port %d", c.Server.Port), nil)
	}

	w := c.Engine.Weights
	if w.Skills < 0 || w.Experience < 0 || w.Education < 0 || w.Semantic < 0 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig, "engine weights must be non-negative", nil)
	}
	if w.Skills+w.Experience+w.Education+w.Semantic <= 0 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig, "engine weights must sum to a positive value", nil)
	}

	if c.Observability.OTLP.Enabled && c.Observability.OTLP.Endpoint == "" {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"observability.otlp.endpoint is required when OTLP export is enabled", nil)
	}

	for name, band := range c.Engine.Simulation.Bands {
		if band.Min < 0 || band.Max > 100 || band.Min > band.Max {
			return errors.NewConfigError(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("simulation band %q has invalid range [%v, %v]", name, band.Min, band.Max), nil)
		}
	}

	return nil
}

// EngineSettings converts the engine portion of the configuration into the
// engine's own Config type. Configured bands are ordered best to worst.
func (c *Config) EngineSettings() engine.Config {
	cfg := engine.Config{
		BaseWeights: types.Weights{
			Skills:     c.Engine.Weights.Skills,
			Experience: c.Engine.Weights.Experience,
			Education:  c.Engine.Weights.Education,
			Semantic:   c.Engine.Weights.Semantic,
		},
		Simulation: c.Engine.Simulation.Enabled,
		ScoreBands: engine.DefaultScoreBands(),
	}

	if len(c.Engine.Simulation.Bands) > 0 {
		bands := make([]engine.ScoreBand, 0, len(c.Engine.Simulation.Bands))
		for name, b := range c.Engine.Simulation.Bands {
			bands = append(bands, engine.ScoreBand{Name: name, Min: b.Min, Max: b.Max})
		}
		sort.Slice(bands, func(i, j int) bool { return bands[i].Min > bands[j].Min })
		cfg.ScoreBands = bands
	}

	return cfg
}
