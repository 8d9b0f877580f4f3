package postgres

import "context"

// Bundles and snapshots are stored as JSONB documents; the ranking
// columns on snapshots are denormalized so TopN stays a plain index scan.
const schema = `
CREATE TABLE IF NOT EXISTS player_bundles (
    player_id  TEXT PRIMARY KEY,
    bundle     JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS eligibility_snapshots (
    player_id      TEXT PRIMARY KEY,
    evaluation_id  TEXT NOT NULL,
    result         JSONB NOT NULL,
    best_score     INT NOT NULL,
    best_visa      TEXT NOT NULL,
    overall_status TEXT NOT NULL,
    computed_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS eligibility_snapshots_best_score_idx
    ON eligibility_snapshots (best_score DESC, player_id ASC);
`

// Migrate creates the schema if it does not exist.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, schema)
	return err
}
