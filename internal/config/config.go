// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// GridPath is the terrain grid CSV the engine loads at startup.
	GridPath string

	// Simulation defaults for the live loop and API-triggered runs.
	CycleInterval time.Duration
	MaxCycles     int
	RiskThreshold float64
	StormHours    float64
	SimSeed       uint64

	// Kafka alert publishing (feature-flagged via ALERTS_ENABLED).
	AlertsEnabled   bool
	KafkaBrokers    []string
	KafkaAlertTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cycleInterval, err := parseDuration("CYCLE_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}
	maxCycles, err := parseInt("MAX_CYCLES", 5)
	if err != nil {
		return nil, err
	}
	riskThreshold, err := parseFloat("RISK_THRESHOLD", 0.75)
	if err != nil {
		return nil, err
	}
	stormHours, err := parseFloat("STORM_HOURS", 6)
	if err != nil {
		return nil, err
	}
	seed, err := parseInt("SIM_SEED", 1)
	if err != nil {
		return nil, err
	}
	if seed < 0 {
		return nil, errors.New("SIM_SEED must be non-negative")
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GridPath: os.Getenv("GRID_PATH"),

		CycleInterval: cycleInterval,
		MaxCycles:     maxCycles,
		RiskThreshold: riskThreshold,
		StormHours:    stormHours,
		SimSeed:       uint64(seed),

		AlertsEnabled:   os.Getenv("ALERTS_ENABLED") == "true",
		KafkaBrokers:    parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAlertTopic: envOrDefault("KAFKA_ALERT_TOPIC", "landslide-alerts"),
	}

	if cfg.RiskThreshold <= 0 || cfg.RiskThreshold >= 1 {
		return nil, errors.New("RISK_THRESHOLD must be in (0, 1)")
	}
	if cfg.StormHours <= 0 {
		return nil, errors.New("STORM_HOURS must be positive")
	}
	if cfg.AlertsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("ALERTS_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.AlertsEnabled && cfg.KafkaAlertTopic == "" {
		return nil, errors.New("ALERTS_ENABLED is true but KAFKA_ALERT_TOPIC is empty")
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDuration(key, def string) (time.Duration, error) {
	v := envOrDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}
