// Package config loads server settings from defaults, an optional YAML file
// and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	PredictorKeyword = "keyword"
	PredictorRemote  = "remote"
)

type Config struct {
	Port       int             `yaml:"port"`
	StaticPath string          `yaml:"static_path"`
	DB         DBConfig        `yaml:"db"`
	Auth       AuthConfig      `yaml:"auth"`
	Log        LogConfig       `yaml:"log"`
	Predictor  PredictorConfig `yaml:"predictor"`
	Metrics    MetricsConfig   `yaml:"metrics"`
}

type DBConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
}

// AuthConfig turns on bearer-token authentication when JWTSecret is set.
// Required makes a missing secret a startup error.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	Required  bool          `yaml:"required"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PredictorConfig selects the category predictor. The remote mode consults
// the ML service at URL and falls back to keywords below Threshold.
type PredictorConfig struct {
	Mode      string        `yaml:"mode"`
	URL       string        `yaml:"url"`
	Timeout   time.Duration `yaml:"timeout"`
	Threshold float64       `yaml:"threshold"`
}

// MetricsConfig sets where Prometheus metrics are served. An empty path
// disables the endpoint.
type MetricsConfig struct {
	Path string `yaml:"path"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port: 8080,
		DB: DBConfig{
			Driver: DriverSQLite,
			Path:   "./data/sotien.db",
		},
		Auth: AuthConfig{TokenTTL: 24 * time.Hour},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Predictor: PredictorConfig{
			Mode:      PredictorKeyword,
			Timeout:   3 * time.Second,
			Threshold: 0.6,
		},
		Metrics: MetricsConfig{Path: "/metrics"},
	}
}

// Load builds the configuration. The YAML file named by SOTIEN_CONFIG, if
// any, overrides the defaults; environment variables override both.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("SOTIEN_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	parse := func(key string, fn func(string) error) {
		if v := os.Getenv(key); v != "" {
			if err := fn(v); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err))
			}
		}
	}

	parse("PORT", func(v string) (err error) {
		c.Port, err = strconv.Atoi(v)
		return err
	})
	setString("STATIC_PATH", &c.StaticPath)
	setString("DB_DRIVER", &c.DB.Driver)
	setString("DB_PATH", &c.DB.Path)
	setString("DATABASE_URL", &c.DB.URL)
	setString("JWT_SECRET", &c.Auth.JWTSecret)
	parse("AUTH_REQUIRED", func(v string) (err error) {
		c.Auth.Required, err = strconv.ParseBool(v)
		return err
	})
	parse("TOKEN_TTL", func(v string) (err error) {
		c.Auth.TokenTTL, err = time.ParseDuration(v)
		return err
	})
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)
	setString("PREDICTOR_MODE", &c.Predictor.Mode)
	setString("PREDICTOR_URL", &c.Predictor.URL)
	parse("PREDICTOR_TIMEOUT", func(v string) (err error) {
		c.Predictor.Timeout, err = time.ParseDuration(v)
		return err
	})
	parse("PREDICTOR_THRESHOLD", func(v string) (err error) {
		c.Predictor.Threshold, err = strconv.ParseFloat(v, 64)
		return err
	})
	setString("METRICS_PATH", &c.Metrics.Path)

	return errors.Join(errs...)
}

// Validate reports every inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Port <= 0 || c.Port > 65535 {
		bad("port %d out of range", c.Port)
	}

	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			bad("db.path required for sqlite")
		}
	case DriverPostgres:
		if c.DB.URL == "" {
			bad("db.url required for postgres")
		}
	default:
		bad("unknown db.driver %q", c.DB.Driver)
	}

	if c.Auth.Required && c.Auth.JWTSecret == "" {
		bad("auth.required set without auth.jwt_secret")
	}
	if c.Auth.TokenTTL <= 0 {
		bad("auth.token_ttl must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		bad("unknown log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		bad("unknown log.format %q", c.Log.Format)
	}

	switch c.Predictor.Mode {
	case PredictorKeyword:
	case PredictorRemote:
		if c.Predictor.URL == "" {
			bad("predictor.url required for remote mode")
		}
	default:
		bad("unknown predictor.mode %q", c.Predictor.Mode)
	}
	if c.Predictor.Timeout <= 0 {
		bad("predictor.timeout must be positive")
	}
	if c.Predictor.Threshold < 0 || c.Predictor.Threshold > 1 {
		bad("predictor.threshold %v outside [0,1]", c.Predictor.Threshold)
	}

	if c.Metrics.Path != "" && !strings.HasPrefix(c.Metrics.Path, "/") {
		bad("metrics.path must start with /")
	}

	return errors.Join(errs...)
}
