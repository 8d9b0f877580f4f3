package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
	"github.com/sportsreelstechnical/sports-reels-sub001/pkg/metrics"
)

const defaultShardCount = 8

// shard holds a slice of the player state behind its own lock.
type shard struct {
	mu        sync.RWMutex
	bundles   map[string]model.Bundle
	snapshots map[string]Snapshot
}

// MemStore is a sharded in-memory Store. Player IDs are hashed to a
// shard so concurrent writers for different players rarely contend.
type MemStore struct {
	shardCount int
	shards     []*shard
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		shardCount: defaultShardCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{
			bundles:   make(map[string]model.Bundle),
			snapshots: make(map[string]Snapshot),
		}
	}
	return s
}

func (s *MemStore) shardFor(playerID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(playerID))
	return s.shards[int(h.Sum32())%s.shardCount]
}

func (s *MemStore) PutBundle(ctx context.Context, b model.Bundle) error {
	sh := s.shardFor(b.Player.ID)
	sh.mu.Lock()
	sh.bundles[b.Player.ID] = b
	sh.mu.Unlock()
	metrics.UpdateTrackedPlayers(s.Count(ctx))
	return nil
}

func (s *MemStore) Bundle(_ context.Context, playerID string) (model.Bundle, error) {
	sh := s.shardFor(playerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	b, ok := sh.bundles[playerID]
	if !ok {
		return model.Bundle{}, ErrNotFound
	}
	return b, nil
}

func (s *MemStore) Count(_ context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.bundles)
		sh.mu.RUnlock()
	}
	return total
}

func (s *MemStore) PutSnapshot(ctx context.Context, snap Snapshot) error {
	sh := s.shardFor(snap.PlayerID)
	sh.mu.Lock()
	sh.snapshots[snap.PlayerID] = snap
	sh.mu.Unlock()
	metrics.UpdateSnapshotCount(s.SnapshotCount(ctx))
	return nil
}

func (s *MemStore) Snapshot(_ context.Context, playerID string) (Snapshot, error) {
	sh := s.shardFor(playerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	snap, ok := sh.snapshots[playerID]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

func (s *MemStore) TopN(_ context.Context, n int) ([]ProspectEntry, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	entries := make([]ProspectEntry, 0, n)
	for _, sh := range s.shards {
		sh.mu.RLock()
		for playerID, snap := range sh.snapshots {
			best, visa := bestOf(snap)
			name := ""
			if b, ok := sh.bundles[playerID]; ok {
				name = b.Player.FullName
			}
			entries = append(entries, ProspectEntry{
				PlayerID:      playerID,
				FullName:      name,
				BestScore:     best,
				BestVisa:      visa,
				OverallStatus: snap.Result.OverallStatus,
			})
		}
		sh.mu.RUnlock()
	}

	// Score desc, player ID asc for a stable order across calls.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].BestScore != entries[j].BestScore {
			return entries[i].BestScore > entries[j].BestScore
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (s *MemStore) SnapshotCount(_ context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.snapshots)
		sh.mu.RUnlock()
	}
	return total
}

// bestOf picks the highest-scoring visa of a snapshot. Ties keep the
// earlier category in evaluation order.
func bestOf(snap Snapshot) (int, scoring.Visa) {
	best := -1
	visa := scoring.VisaSchengen
	for _, v := range scoring.Visas() {
		if vs, ok := snap.Result.ByVisa(v); ok && vs.Score > best {
			best = vs.Score
			visa = v
		}
	}
	return best, visa
}
