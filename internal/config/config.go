package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	NATS    NATSConfig    `yaml:"nats"`
	Mock    MockConfig    `yaml:"mock"`
	Notify  NotifyConfig  `yaml:"notify"`
	Poll    PollConfig    `yaml:"poll"`
	Backend BackendConfig `yaml:"backend"`
}

type GatewayConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type NATSConfig struct {
	Port    int    `yaml:"port"`
	DataDir string `yaml:"data_dir"`
}

// MockConfig tunes the in-memory backend stand-in.
type MockConfig struct {
	// FailureRate is the probability [0,1] that a mock operation fails.
	FailureRate float64 `yaml:"failure_rate"`
	// DriftRate is the probability [0,1] that a generator tick synthesizes
	// a new decision.
	DriftRate     float64       `yaml:"drift_rate"`
	DriftInterval time.Duration `yaml:"drift_interval"`
	MaxDecisions  int           `yaml:"max_decisions"`
	// LatencyScale multiplies the built-in artificial delays; 0 disables them.
	LatencyScale float64 `yaml:"latency_scale"`
	// RealHistograms computes the confidence histogram from the actual
	// decision set instead of the fixed demo buckets.
	RealHistograms bool `yaml:"real_histograms"`
	// TrainingTick is the interval between simulated training progress
	// updates; zero keeps the built-in pace.
	TrainingTick time.Duration `yaml:"training_tick"`
	// ArtifactReadyDelay is how long an uploaded artifact stays in the
	// processing state; zero keeps the built-in delay.
	ArtifactReadyDelay time.Duration `yaml:"artifact_ready_delay"`
}

type NotifyConfig struct {
	// TTL is how long a notification stays queued before auto-dismissal.
	// Zero keeps notifications until they are removed explicitly.
	TTL time.Duration `yaml:"ttl"`
}

type PollConfig struct {
	Dashboard    time.Duration `yaml:"dashboard"`
	Decisions    time.Duration `yaml:"decisions"`
	TrainingData time.Duration `yaml:"training_data"`
}

type BackendConfig struct {
	Port      int    `yaml:"port"`
	StorePath string `yaml:"store_path"`
}

func defaults() Config {
	return Config{
		Gateway: GatewayConfig{
			BaseURL: "http://localhost:8000/api",
			Timeout: 30 * time.Second,
		},
		NATS: NATSConfig{
			Port:    4222,
			DataDir: "data/nats",
		},
		Mock: MockConfig{
			DriftRate:     0.2,
			DriftInterval: 10 * time.Second,
			MaxDecisions:  50,
			LatencyScale:  1,
		},
		Notify: NotifyConfig{
			TTL: 8 * time.Second,
		},
		Poll: PollConfig{
			Dashboard:    30 * time.Second,
			Decisions:    10 * time.Second,
			TrainingData: 30 * time.Second,
		},
		Backend: BackendConfig{
			Port:      8000,
			StorePath: "data/swarmdeck.db",
		},
	}
}

func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("SWARMDECK_CONFIG")
	if path == "" {
		path = "config/swarmdeck.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults + env
	} else {
		// Expand environment variables in YAML
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SWARMDECK_GATEWAY_URL"); v != "" {
		cfg.Gateway.BaseURL = v
	}
	if v := os.Getenv("SWARMDECK_NATS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.NATS.Port = port
		}
	}
	if v := os.Getenv("SWARMDECK_BACKEND_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Backend.Port = port
		}
	}
	if v := os.Getenv("SWARMDECK_STORE_PATH"); v != "" {
		cfg.Backend.StorePath = v
	}
	if v := os.Getenv("SWARMDECK_MOCK_FAILURE_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Mock.FailureRate = rate
		}
	}
}
