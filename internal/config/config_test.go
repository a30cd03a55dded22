package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	if cfg.Gateway.BaseURL != "http://localhost:8000/api" {
		t.Errorf("expected default gateway url http://localhost:8000/api, got %s", cfg.Gateway.BaseURL)
	}
	if cfg.NATS.Port != 4222 {
		t.Errorf("expected nats port 4222, got %d", cfg.NATS.Port)
	}
	if cfg.Mock.DriftRate != 0.2 {
		t.Errorf("expected drift rate 0.2, got %v", cfg.Mock.DriftRate)
	}
	if cfg.Mock.MaxDecisions != 50 {
		t.Errorf("expected max decisions 50, got %d", cfg.Mock.MaxDecisions)
	}
	if cfg.Notify.TTL != 8*time.Second {
		t.Errorf("expected notify ttl 8s, got %v", cfg.Notify.TTL)
	}
	if cfg.Backend.StorePath != "data/swarmdeck.db" {
		t.Errorf("expected store path data/swarmdeck.db, got %s", cfg.Backend.StorePath)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	// Point config to a non-existent file so we use defaults
	t.Setenv("SWARMDECK_CONFIG", "/nonexistent/config.yaml")
	t.Setenv("SWARMDECK_GATEWAY_URL", "http://api.example.test/api")
	t.Setenv("SWARMDECK_BACKEND_PORT", "9000")
	t.Setenv("SWARMDECK_MOCK_FAILURE_RATE", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Gateway.BaseURL != "http://api.example.test/api" {
		t.Errorf("expected overridden gateway url, got %s", cfg.Gateway.BaseURL)
	}
	if cfg.Backend.Port != 9000 {
		t.Errorf("expected backend port 9000, got %d", cfg.Backend.Port)
	}
	if cfg.Mock.FailureRate != 0.5 {
		t.Errorf("expected failure rate 0.5, got %v", cfg.Mock.FailureRate)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swarmdeck.yaml")
	data := `
gateway:
  base_url: http://backend:8000/api
mock:
  drift_rate: 0
  max_decisions: 10
backend:
  port: 8100
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SWARMDECK_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Gateway.BaseURL != "http://backend:8000/api" {
		t.Errorf("expected file gateway url, got %s", cfg.Gateway.BaseURL)
	}
	if cfg.Mock.DriftRate != 0 {
		t.Errorf("expected drift rate 0, got %v", cfg.Mock.DriftRate)
	}
	if cfg.Mock.MaxDecisions != 10 {
		t.Errorf("expected max decisions 10, got %d", cfg.Mock.MaxDecisions)
	}
	if cfg.Backend.Port != 8100 {
		t.Errorf("expected backend port 8100, got %d", cfg.Backend.Port)
	}
	// Untouched keys keep defaults
	if cfg.NATS.Port != 4222 {
		t.Errorf("expected default nats port, got %d", cfg.NATS.Port)
	}
}
