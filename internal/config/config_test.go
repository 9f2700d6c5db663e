package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-lews/risk-engine/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Second, cfg.CycleInterval)
	assert.Equal(t, 5, cfg.MaxCycles)
	assert.Equal(t, 0.75, cfg.RiskThreshold)
	assert.Equal(t, 6.0, cfg.StormHours)
	assert.Equal(t, uint64(1), cfg.SimSeed)
	assert.False(t, cfg.AlertsEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "landslide-alerts", cfg.KafkaAlertTopic)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("CYCLE_INTERVAL", "250ms")
	t.Setenv("RISK_THRESHOLD", "0.9")
	t.Setenv("STORM_HOURS", "12")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("ALERTS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.CycleInterval)
	assert.Equal(t, 0.9, cfg.RiskThreshold)
	assert.Equal(t, 12.0, cfg.StormHours)
	assert.Equal(t, uint64(42), cfg.SimSeed)
	assert.True(t, cfg.AlertsEnabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]struct {
		key, value string
	}{
		"bad interval":         {"CYCLE_INTERVAL", "soon"},
		"negative seed":        {"SIM_SEED", "-1"},
		"threshold too high":   {"RISK_THRESHOLD", "1.5"},
		"threshold zero":       {"RISK_THRESHOLD", "0"},
		"storm hours negative": {"STORM_HOURS", "-6"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_AlertsRequireBrokers(t *testing.T) {
	t.Setenv("ALERTS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
