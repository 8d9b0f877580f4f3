// Package repository defines the eligibility store interfaces and errors.
package repository

import (
	"context"
	"time"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
)

// Snapshot is a persisted eligibility evaluation for a player.
type Snapshot struct {
	PlayerID     string         `json:"player_id"`
	EvaluationID string         `json:"evaluation_id"`
	Result       scoring.Result `json:"result"`
	ComputedAt   time.Time      `json:"computed_at"`
}

// ProspectEntry is a row of the prospects ranking.
type ProspectEntry struct {
	Rank          int            `json:"rank"`
	PlayerID      string         `json:"player_id"`
	FullName      string         `json:"full_name"`
	BestScore     int            `json:"best_score"`
	BestVisa      scoring.Visa   `json:"best_visa"`
	OverallStatus scoring.Status `json:"overall_status"`
}

// BundleStore provides access to player bundles.
type BundleStore interface {
	// PutBundle stores or replaces the bundle for a player.
	PutBundle(ctx context.Context, b model.Bundle) error

	// Bundle returns the bundle for a player.
	// Returns ErrNotFound if the player is unknown.
	Bundle(ctx context.Context, playerID string) (model.Bundle, error)

	// Count returns the number of players tracked.
	Count(ctx context.Context) int
}

// SnapshotStore provides access to eligibility snapshots.
type SnapshotStore interface {
	// PutSnapshot stores or replaces the latest snapshot for a player.
	PutSnapshot(ctx context.Context, snap Snapshot) error

	// Snapshot returns the latest snapshot for a player.
	// Returns ErrNotFound if no evaluation was stored.
	Snapshot(ctx context.Context, playerID string) (Snapshot, error)

	// TopN returns the top-N prospects ordered by best visa score desc.
	TopN(ctx context.Context, n int) ([]ProspectEntry, error)

	// SnapshotCount returns the number of snapshots stored.
	SnapshotCount(ctx context.Context) int
}

// Store combines bundle and snapshot access.
type Store interface {
	BundleStore
	SnapshotStore
}
