package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"github.com/germanamz/e2echat/pkg/e2e"
)

// fileConfig mirrors .e2echat/config.yaml. Environment variables referenced
// as ${VAR} or $VAR in the YAML are expanded before parsing, so the API key
// can be kept in a .env file rather than committed in the config.
type fileConfig struct {
	EndpointURL    string   `yaml:"endpoint_url"`
	APIKey         string   `yaml:"api_key"` //nolint:gosec // configuration field, not a hardcoded secret
	Model          string   `yaml:"model"`
	Temperature    float64  `yaml:"temperature"`
	MaxTokens      int      `yaml:"max_tokens"`
	TopP           float64  `yaml:"top_p"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Stop           []string `yaml:"stop,omitempty"`
}

// envOverrides are applied on top of the file config. The credential
// variables are also understood by pkg/e2e as a construction-time fallback;
// the rest exist so the model and sampling defaults can be tuned without a
// config file.
type envOverrides struct {
	EndpointURL string  `env:"E2E_ENDPOINT_URL"`
	APIKey      string  `env:"E2E_API_KEY"`
	Model       string  `env:"E2E_MODEL"`
	Temperature float64 `env:"E2E_TEMPERATURE"`
	MaxTokens   int     `env:"E2E_MAX_TOKENS"`
	TopP        float64 `env:"E2E_TOP_P"`
	Timeout     int     `env:"E2E_TIMEOUT_SECONDS"`
}

// loadConfig reads the YAML config (a missing file yields a zero config, so
// env and flags can carry everything) and applies environment overrides.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file is fine.
	case err != nil:
		return fileConfig{}, fmt.Errorf("load config: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return fileConfig{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fileConfig{}, fmt.Errorf("parse env overrides: %w", err)
	}

	if ov.EndpointURL != "" {
		cfg.EndpointURL = ov.EndpointURL
	}
	if ov.APIKey != "" {
		cfg.APIKey = ov.APIKey
	}
	if ov.Model != "" {
		cfg.Model = ov.Model
	}
	if ov.Temperature != 0 {
		cfg.Temperature = ov.Temperature
	}
	if ov.MaxTokens != 0 {
		cfg.MaxTokens = ov.MaxTokens
	}
	if ov.TopP != 0 {
		cfg.TopP = ov.TopP
	}
	if ov.Timeout != 0 {
		cfg.TimeoutSeconds = ov.Timeout
	}

	return cfg, nil
}

// clientConfig converts the file config into the e2e client configuration.
// Credential validation happens in e2e.New, not here.
func (c fileConfig) clientConfig() e2e.Config {
	return e2e.Config{
		EndpointURL: c.EndpointURL,
		APIKey:      c.APIKey,
		Model:       c.Model,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		TopP:        c.TopP,
		Timeout:     time.Duration(c.TimeoutSeconds) * time.Second,
		Stop:        c.Stop,
	}
}
