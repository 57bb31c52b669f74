package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when the config file omits a field or is absent
// entirely. The provider credential never lives in the file; it is read
// from the TOGETHER_API_KEY environment variable at startup.
const (
	DefaultServerAddress         = ":5000"
	DefaultBackendBaseURL        = "https://api.together.xyz"
	DefaultBackendModel          = "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free"
	DefaultRequestTimeoutSeconds = 60
	DefaultStreamTimeoutSeconds  = 120
)

// Config represents runtime configuration for the service.
type Config struct {
	ServerAddress string        `json:"server_address"`
	Backend       BackendConfig `json:"backend"`
}

// BackendConfig points at the completion backend.
type BackendConfig struct {
	BaseURL               string `json:"base_url"`
	Model                 string `json:"model"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	StreamTimeoutSeconds  int    `json:"stream_timeout_seconds"`
}

// Load reads configuration from the provided path (defaults to
// config.json). A missing file yields the defaults; a present but
// unreadable file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	cfg := &Config{}
	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ServerAddress == "" {
		c.ServerAddress = DefaultServerAddress
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = DefaultBackendBaseURL
	}
	if c.Backend.Model == "" {
		c.Backend.Model = DefaultBackendModel
	}
	if c.Backend.RequestTimeoutSeconds <= 0 {
		c.Backend.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if c.Backend.StreamTimeoutSeconds <= 0 {
		c.Backend.StreamTimeoutSeconds = DefaultStreamTimeoutSeconds
	}
}
