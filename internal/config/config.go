// Package config loads application configuration and sets up logging.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/localscope/localscope-cli/internal/resilience"
	"github.com/localscope/localscope-cli/internal/viability"
)

// Config holds the full application configuration.
type Config struct {
	Google       GoogleConfig       `yaml:"google" mapstructure:"google"`
	Neighborhood NeighborhoodConfig `yaml:"neighborhood" mapstructure:"neighborhood"`
	Scoring      ScoringConfig      `yaml:"scoring" mapstructure:"scoring"`
	Retry        RetryConfig        `yaml:"retry" mapstructure:"retry"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Batch        BatchConfig        `yaml:"batch" mapstructure:"batch"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// GoogleConfig configures the Geocoding and Places APIs.
type GoogleConfig struct {
	APIKey       string  `yaml:"api_key" mapstructure:"api_key"`
	GeocodeURL   string  `yaml:"geocode_url" mapstructure:"geocode_url"`
	PlacesURL    string  `yaml:"places_url" mapstructure:"places_url"`
	RegionSuffix string  `yaml:"region_suffix" mapstructure:"region_suffix"`
	Language     string  `yaml:"language" mapstructure:"language"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the per-request timeout.
func (g GoogleConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// NeighborhoodConfig configures the reference table and neighborhood resolution.
type NeighborhoodConfig struct {
	// DataPath replaces the built-in table with a YAML file.
	DataPath string `yaml:"data_path" mapstructure:"data_path"`
	// BoundariesPath enables local point-in-polygon lookup (GeoJSON or shapefile).
	BoundariesPath string `yaml:"boundaries_path" mapstructure:"boundaries_path"`
	NameField      string `yaml:"name_field" mapstructure:"name_field"`
	// ResolverURL is the open-data point query endpoint. Empty disables it.
	ResolverURL  string `yaml:"resolver_url" mapstructure:"resolver_url"`
	FallbackName string `yaml:"fallback_name" mapstructure:"fallback_name"`
}

// ScoringConfig configures the viability engine.
type ScoringConfig struct {
	Weights       viability.Weights `yaml:"weights" mapstructure:"weights"`
	Locale        string            `yaml:"locale" mapstructure:"locale"`
	DefaultRadius int               `yaml:"default_radius" mapstructure:"default_radius"`
	MinRadius     int               `yaml:"min_radius" mapstructure:"min_radius"`
	MaxRadius     int               `yaml:"max_radius" mapstructure:"max_radius"`
}

// LocaleTag parses Locale, defaulting to English.
func (s ScoringConfig) LocaleTag() language.Tag {
	tag, err := language.Parse(s.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// RetryConfig configures retries of upstream calls.
type RetryConfig struct {
	MaxAttempts      int `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
}

// Policy converts the settings to a retry policy. Unset values keep the
// resilience defaults.
func (r RetryConfig) Policy() resilience.Policy {
	p := resilience.DefaultPolicy()
	if r.MaxAttempts > 0 {
		p.MaxAttempts = r.MaxAttempts
	}
	if r.InitialBackoffMs > 0 {
		p.InitialBackoff = time.Duration(r.InitialBackoffMs) * time.Millisecond
	}
	if r.MaxBackoffMs > 0 {
		p.MaxBackoff = time.Duration(r.MaxBackoffMs) * time.Millisecond
	}
	return p
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port               int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins     []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RequestTimeoutSecs int      `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
}

// BatchConfig configures batch analysis.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LOCALSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	w := viability.DefaultWeights()
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.geocode_url", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("google.places_url", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("google.region_suffix", ", Buenos Aires, Argentina")
	v.SetDefault("google.language", "es")
	v.SetDefault("google.rate_limit_rps", 10)
	v.SetDefault("google.timeout_secs", 10)
	v.SetDefault("neighborhood.data_path", "")
	v.SetDefault("neighborhood.boundaries_path", "")
	v.SetDefault("neighborhood.name_field", "")
	v.SetDefault("neighborhood.resolver_url", "https://datosabiertos-apis.buenosaires.gob.ar/datasets/barrios/consultar_punto")
	v.SetDefault("neighborhood.fallback_name", "Palermo")
	v.SetDefault("scoring.weights.competition", w.Competition)
	v.SetDefault("scoring.weights.transit", w.Transit)
	v.SetDefault("scoring.weights.rent", w.Rent)
	v.SetDefault("scoring.weights.demographic", w.Demographic)
	v.SetDefault("scoring.locale", "en")
	v.SetDefault("scoring.default_radius", 500)
	v.SetDefault("scoring.min_radius", 200)
	v.SetDefault("scoring.max_radius", 1500)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_ms", 300)
	v.SetDefault("retry.max_backoff_ms", 5000)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.request_timeout_secs", 30)
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command needs. mode is the command name;
// modes that call Google require an API key.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "analyze", "batch", "serve":
		if c.Google.APIKey == "" {
			errs = append(errs, "google.api_key is required (set LOCALSCOPE_GOOGLE_API_KEY)")
		}
	case "evaluate", "neighborhoods", "categories":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}
	if mode == "serve" && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if mode == "batch" && c.Batch.Concurrency <= 0 {
		errs = append(errs, "batch.concurrency must be positive")
	}

	if err := c.Scoring.Weights.Validate(); err != nil {
		errs = append(errs, "scoring.weights: "+err.Error())
	}
	s := c.Scoring
	if s.MinRadius <= 0 || s.MinRadius > s.MaxRadius {
		errs = append(errs, fmt.Sprintf("scoring radius bounds invalid: min %d, max %d", s.MinRadius, s.MaxRadius))
	} else if s.DefaultRadius < s.MinRadius || s.DefaultRadius > s.MaxRadius {
		errs = append(errs, fmt.Sprintf("scoring.default_radius %d outside [%d, %d]", s.DefaultRadius, s.MinRadius, s.MaxRadius))
	}
	if _, err := language.Parse(s.Locale); err != nil {
		errs = append(errs, fmt.Sprintf("scoring.locale %q is not a valid language tag", s.Locale))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
