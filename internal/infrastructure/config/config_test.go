package config_test

import (
	"testing"
	"time"

	"github.com/iho/amlguard/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "" {
		t.Fatalf("expected database URL default to be empty, got %q", cfg.DatabaseURL)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.LaneCount != 4 {
		t.Fatalf("expected default lane count 4, got %d", cfg.LaneCount)
	}

	if cfg.HistoryCapacity != 100 {
		t.Fatalf("expected default history capacity 100, got %d", cfg.HistoryCapacity)
	}

	if cfg.AlertThreshold != 0.8 {
		t.Fatalf("expected default alert threshold 0.8, got %v", cfg.AlertThreshold)
	}

	if cfg.FanInThreshold != 5 {
		t.Fatalf("expected default fan-in threshold 5, got %d", cfg.FanInThreshold)
	}

	if cfg.StateTTL != 24*time.Hour {
		t.Fatalf("expected default state TTL 24h, got %s", cfg.StateTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LANE_COUNT", "8")
	t.Setenv("ALERT_THRESHOLD", "0.9")
	t.Setenv("STATE_TTL", "1h")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.LaneCount != 8 {
		t.Fatalf("expected lane count override, got %d", cfg.LaneCount)
	}

	if cfg.AlertThreshold != 0.9 {
		t.Fatalf("expected alert threshold override, got %v", cfg.AlertThreshold)
	}

	if cfg.StateTTL != time.Hour {
		t.Fatalf("expected state TTL override, got %s", cfg.StateTTL)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
