// Package config loads application configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Database (optional - leave empty to disable the durable alert sink)
	DatabaseURL      string `env:"DATABASE_URL"       envDefault:""`
	DatabaseMaxConns int    `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	DatabaseMinConns int    `env:"DATABASE_MIN_CONNS" envDefault:"2"`
	MigrationsPath   string `env:"MIGRATIONS_PATH"    envDefault:"migrations"`

	// Redis (optional - leave empty to disable state persistence)
	RedisURL string        `env:"REDIS_URL" envDefault:""`
	StateTTL time.Duration `env:"STATE_TTL" envDefault:"24h"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Pipeline
	LaneCount       int     `env:"LANE_COUNT"       envDefault:"4"`
	HistoryCapacity int     `env:"HISTORY_CAPACITY" envDefault:"100"`
	AlertThreshold  float64 `env:"ALERT_THRESHOLD"  envDefault:"0.8"`

	// Anomaly model (optional - leave empty to run with the neutral score)
	ModelPath string `env:"MODEL_PATH" envDefault:""`

	// Alert file sink (optional - leave empty to disable)
	AlertFilePath string `env:"ALERT_FILE_PATH" envDefault:""`

	// Graph reasoning
	FanInThreshold  int     `env:"FAN_IN_THRESHOLD"  envDefault:"5"`
	FanInScore      float64 `env:"FAN_IN_SCORE"      envDefault:"0.2"`
	CycleScore      float64 `env:"CYCLE_SCORE"       envDefault:"0.5"`
	MaxCycleDepth   int     `env:"MAX_CYCLE_DEPTH"   envDefault:"8"`
	CycleStepBudget int     `env:"CYCLE_STEP_BUDGET" envDefault:"10000"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
