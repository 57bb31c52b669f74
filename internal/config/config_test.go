package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != DefaultServerAddress {
		t.Fatalf("unexpected server address: %s", cfg.ServerAddress)
	}
	if cfg.Backend.BaseURL != DefaultBackendBaseURL || cfg.Backend.Model != DefaultBackendModel {
		t.Fatalf("unexpected backend defaults: %+v", cfg.Backend)
	}
	if cfg.Backend.RequestTimeoutSeconds != DefaultRequestTimeoutSeconds ||
		cfg.Backend.StreamTimeoutSeconds != DefaultStreamTimeoutSeconds {
		t.Fatalf("unexpected timeout defaults: %+v", cfg.Backend)
	}
}

func TestLoadAppliesFileAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"server_address":":9000","backend":{"model":"llama-test"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerAddress != ":9000" {
		t.Fatalf("file value not applied: %s", cfg.ServerAddress)
	}
	if cfg.Backend.Model != "llama-test" {
		t.Fatalf("file value not applied: %s", cfg.Backend.Model)
	}
	if cfg.Backend.BaseURL != DefaultBackendBaseURL {
		t.Fatalf("missing field not defaulted: %s", cfg.Backend.BaseURL)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
