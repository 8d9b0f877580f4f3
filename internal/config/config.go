// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults; Load layers file and env
//     values on top.
//   - Scoring thresholds live here so deployments and tests can tune the
//     engine without patching package state.
package config

import "runtime"

// Storage driver names accepted by the repository factory.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory evaluation queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the evaluation-request idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the in-memory store.
	ShardCount int `koanf:"shard_count"`

	// MaxProspectsLimit caps GET /prospects?limit.
	MaxProspectsLimit int `koanf:"max_prospects_limit"`

	// StorageDriver selects the store backend: memory or postgres.
	StorageDriver string `koanf:"storage_driver"`

	// PostgresURL is the connection string when StorageDriver is postgres.
	PostgresURL string `koanf:"postgres_url"`

	// ScoreGreen and ScoreYellow are the normalized score thresholds for
	// the green and yellow verdicts.
	ScoreGreen  int `koanf:"score_green"`
	ScoreYellow int `koanf:"score_yellow"`

	// MinutesTarget is the full verified-minutes benchmark; MinutesPartial
	// is the lower bar that still opens the yellow gate.
	MinutesTarget  int `koanf:"minutes_target"`
	MinutesPartial int `koanf:"minutes_partial"`

	// CapsTarget is the senior-cap count the verdict works toward.
	CapsTarget int `koanf:"caps_target"`

	// GBEGreenPoints is the raw points total for an automatic GBE pass;
	// GBEYellowPoints opens the ESC route.
	GBEGreenPoints  int `koanf:"gbe_green_points"`
	GBEYellowPoints int `koanf:"gbe_yellow_points"`

	// MaxRecommendations caps the merged recommendation list.
	MaxRecommendations int `koanf:"max_recommendations"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		QueueSize:          50_000,
		WorkerCount:        runtime.NumCPU() * 4,
		DedupeSize:         200_000,
		ShardCount:         8,
		MaxProspectsLimit:  100,
		StorageDriver:      StorageMemory,
		ScoreGreen:         60,
		ScoreYellow:        35,
		MinutesTarget:      800,
		MinutesPartial:     600,
		CapsTarget:         5,
		GBEGreenPoints:     15,
		GBEYellowPoints:    10,
		MaxRecommendations: 5,
	}
}
