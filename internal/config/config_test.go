package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sotien.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SOTIEN_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 || cfg.DB.Driver != DriverSQLite || cfg.Predictor.Mode != PredictorKeyword {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Predictor.Timeout != 3*time.Second || cfg.Predictor.Threshold != 0.6 {
		t.Errorf("predictor defaults = %+v", cfg.Predictor)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
port: 9000
db:
  driver: postgres
  url: postgres://localhost/sotien
auth:
  jwt_secret: from-file
predictor:
  mode: remote
  url: http://ml:8000
  timeout: 500ms
  threshold: 0.7
log:
  format: json
`)
	t.Setenv("SOTIEN_CONFIG", path)
	t.Setenv("PORT", "9100")
	t.Setenv("PREDICTOR_THRESHOLD", "0.8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9100 {
		t.Errorf("port = %d, env should win", cfg.Port)
	}
	if cfg.DB.Driver != DriverPostgres || cfg.DB.URL != "postgres://localhost/sotien" {
		t.Errorf("db = %+v", cfg.DB)
	}
	if cfg.Auth.JWTSecret != "from-file" || cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.Predictor.Timeout != 500*time.Millisecond || cfg.Predictor.Threshold != 0.8 {
		t.Errorf("predictor = %+v", cfg.Predictor)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{"malformed yaml", "port: [", nil},
		{"bad env number", "", map[string]string{"PORT": "eighty"}},
		{"bad env duration", "", map[string]string{"PREDICTOR_TIMEOUT": "soon"}},
		{"invalid value", "", map[string]string{"DB_DRIVER": "mysql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.file != "" {
				t.Setenv("SOTIEN_CONFIG", writeConfig(t, tt.file))
			} else {
				t.Setenv("SOTIEN_CONFIG", "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.DB.Driver = "mysql" }, "db.driver"},
		{"postgres without url", func(c *Config) { c.DB.Driver = DriverPostgres }, "db.url"},
		{"unknown predictor", func(c *Config) { c.Predictor.Mode = "llm" }, "predictor.mode"},
		{"remote without url", func(c *Config) { c.Predictor.Mode = PredictorRemote }, "predictor.url"},
		{"zero timeout", func(c *Config) { c.Predictor.Timeout = 0 }, "predictor.timeout"},
		{"threshold above one", func(c *Config) { c.Predictor.Threshold = 1.5 }, "predictor.threshold"},
		{"negative threshold", func(c *Config) { c.Predictor.Threshold = -0.1 }, "predictor.threshold"},
		{"auth required without secret", func(c *Config) { c.Auth.Required = true }, "auth.jwt_secret"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad port", func(c *Config) { c.Port = 0 }, "port"},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "metrics.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
