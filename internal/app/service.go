// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"

	evalqueue "github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/mq/queue"
	workerpool "github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/mq/worker"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/repository"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/dedupe"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
	"github.com/sportsreelstechnical/sports-reels-sub001/pkg/logger"
	"github.com/sportsreelstechnical/sports-reels-sub001/pkg/metrics"
)

// Service implements the API dependencies for the eligibility system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	deduper dedupe.Deduper
	queue   evalqueue.Queue
	engine  *scoring.Engine
	pool    *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	shardCount  int

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the evaluation queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the shard count of the in-memory store.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithStore injects a store implementation, e.g. the postgres adapter.
// When unset, Start builds a sharded in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine injects a scoring engine configured with non-default
// thresholds.
func WithEngine(engine *scoring.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   50_000,
		dedupeSize:  50_000,
		shardCount:  8,
		stopCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting eligibility service...")

	if s.store == nil {
		s.store = repository.NewMemStore(repository.WithShardCount(s.shardCount))
		s.logger.Info(ctx, "using in-memory store", logger.Int("shards", s.shardCount))
	}
	if s.engine == nil {
		s.engine = scoring.NewEngine()
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = evalqueue.NewInMemoryQueue(
		evalqueue.WithCapacity(s.queueSize),
		evalqueue.WithBufferSize(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.store, s.engine, s.store)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "eligibility service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping eligibility service...")

	// Shutdown closes the queue first, then drains the workers.
	if s.pool != nil {
		_ = s.pool.Shutdown(ctx)
	}

	if closer, ok := s.store.(interface{ Close() }); ok {
		closer.Close()
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "eligibility service stopped")
}

// SeenAndRecord atomically checks if a request id was seen and records
// it if not. Returns true if the request was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	return s.deduper.SeenAndRecord(ctx, id)
}

// Unrecord removes a request ID from the seen set, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// RegisterPlayer stores or replaces a player bundle.
func (s *Service) RegisterPlayer(ctx context.Context, b model.Bundle) error {
	if err := s.store.PutBundle(ctx, b); err != nil {
		return err
	}
	s.logger.Debug(ctx, "player registered",
		logger.String("playerID", b.Player.ID),
		logger.Int("leagueBand", b.LeagueBand),
	)
	return nil
}

// Eligibility computes a fresh eligibility result for a player.
func (s *Service) Eligibility(ctx context.Context, playerID string) (scoring.Result, error) {
	b, err := s.store.Bundle(ctx, playerID)
	if err != nil {
		return scoring.Result{}, err
	}
	result := s.engine.Evaluate(b)
	metrics.RecordEvaluationComputed()
	metrics.RecordOverallStatus(string(result.OverallStatus))
	return result, nil
}

// Report returns the latest stored snapshot for a player.
func (s *Service) Report(ctx context.Context, playerID string) (repository.Snapshot, error) {
	return s.store.Snapshot(ctx, playerID)
}

// EnqueueEvaluation submits a request for asynchronous processing.
func (s *Service) EnqueueEvaluation(ctx context.Context, r model.EvaluationRequest) bool {
	if s.queue.IsClosed() {
		return false
	}
	ok := s.queue.Enqueue(ctx, r)
	if ok {
		s.logger.Debug(ctx, "evaluation request enqueued",
			logger.String("requestID", r.RequestID),
			logger.String("playerID", r.PlayerID),
		)
	}
	return ok
}

// TopProspects returns the top N prospects ranking.
func (s *Service) TopProspects(ctx context.Context, n int) ([]repository.ProspectEntry, error) {
	return s.store.TopN(ctx, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		trackedPlayers := s.store.Count(ctx)
		snapshots := s.store.SnapshotCount(ctx)

		stats["queueLength"] = queueLen
		stats["trackedPlayers"] = trackedPlayers
		stats["snapshots"] = snapshots

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTrackedPlayers(trackedPlayers)
		metrics.UpdateSnapshotCount(snapshots)
	}

	return stats
}
