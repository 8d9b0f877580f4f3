package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/repository"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
)

// Store implements repository.Store on top of postgres.
type Store struct {
	db *DB
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps db as a repository store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) PutBundle(ctx context.Context, b model.Bundle) error {
	doc, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO player_bundles (player_id, bundle, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (player_id) DO UPDATE SET bundle = $2, updated_at = now()
	`, b.Player.ID, doc)
	return err
}

func (s *Store) Bundle(ctx context.Context, playerID string) (model.Bundle, error) {
	var doc []byte
	err := s.db.Pool.QueryRow(ctx, `
		SELECT bundle FROM player_bundles WHERE player_id = $1
	`, playerID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bundle{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Bundle{}, err
	}
	var b model.Bundle
	if err := json.Unmarshal(doc, &b); err != nil {
		return model.Bundle{}, fmt.Errorf("unmarshal bundle: %w", err)
	}
	return b, nil
}

func (s *Store) Count(ctx context.Context) int {
	var count int
	if err := s.db.Pool.QueryRow(ctx, `SELECT count(*) FROM player_bundles`).Scan(&count); err != nil {
		return 0
	}
	return count
}

func (s *Store) PutSnapshot(ctx context.Context, snap repository.Snapshot) error {
	doc, err := json.Marshal(snap.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	best, visa := bestOf(snap.Result)
	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO eligibility_snapshots
			(player_id, evaluation_id, result, best_score, best_visa, overall_status, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (player_id) DO UPDATE SET
			evaluation_id = $2, result = $3, best_score = $4,
			best_visa = $5, overall_status = $6, computed_at = $7
	`, snap.PlayerID, snap.EvaluationID, doc, best, string(visa),
		string(snap.Result.OverallStatus), snap.ComputedAt)
	return err
}

func (s *Store) Snapshot(ctx context.Context, playerID string) (repository.Snapshot, error) {
	var (
		snap repository.Snapshot
		doc  []byte
	)
	err := s.db.Pool.QueryRow(ctx, `
		SELECT player_id, evaluation_id, result, computed_at
		FROM eligibility_snapshots WHERE player_id = $1
	`, playerID).Scan(&snap.PlayerID, &snap.EvaluationID, &doc, &snap.ComputedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.Snapshot{}, repository.ErrNotFound
	}
	if err != nil {
		return repository.Snapshot{}, err
	}
	if err := json.Unmarshal(doc, &snap.Result); err != nil {
		return repository.Snapshot{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return snap, nil
}

func (s *Store) TopN(ctx context.Context, n int) ([]repository.ProspectEntry, error) {
	if n <= 0 {
		return nil, repository.ErrInvalidLimit
	}
	rows, err := s.db.Pool.Query(ctx, `
		SELECT s.player_id,
		       COALESCE(b.bundle->'player'->>'full_name', ''),
		       s.best_score, s.best_visa, s.overall_status
		FROM eligibility_snapshots s
		LEFT JOIN player_bundles b ON b.player_id = s.player_id
		ORDER BY s.best_score DESC, s.player_id ASC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []repository.ProspectEntry
	for rows.Next() {
		var (
			e      repository.ProspectEntry
			visa   string
			status string
		)
		if err := rows.Scan(&e.PlayerID, &e.FullName, &e.BestScore, &visa, &status); err != nil {
			return nil, err
		}
		e.BestVisa = scoring.Visa(visa)
		e.OverallStatus = scoring.Status(status)
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) SnapshotCount(ctx context.Context) int {
	var count int
	if err := s.db.Pool.QueryRow(ctx, `SELECT count(*) FROM eligibility_snapshots`).Scan(&count); err != nil {
		return 0
	}
	return count
}

// bestOf picks the highest-scoring visa of a result. Ties keep the
// earlier category in evaluation order.
func bestOf(r scoring.Result) (int, scoring.Visa) {
	best := -1
	visa := scoring.VisaSchengen
	for _, v := range scoring.Visas() {
		if vs, ok := r.ByVisa(v); ok && vs.Score > best {
			best = vs.Score
			visa = v
		}
	}
	return best, visa
}
