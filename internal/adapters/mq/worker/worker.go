// Package worker defines worker contracts for asynchronous eligibility
// evaluation.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/repository"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
	"github.com/sportsreelstechnical/sports-reels-sub001/pkg/logger"
	"github.com/sportsreelstechnical/sports-reels-sub001/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Request abstracts what workers read off the queue.
type Request = model.EvaluationRequest

// BundleSource loads the player bundle an evaluation runs against.
type BundleSource interface {
	Bundle(ctx context.Context, playerID string) (model.Bundle, error)
}

// Evaluator computes the eligibility result for a bundle.
type Evaluator interface {
	Evaluate(b model.Bundle) scoring.Result
}

// SnapshotSink persists computed evaluations.
type SnapshotSink interface {
	PutSnapshot(ctx context.Context, snap repository.Snapshot) error
}

// Queue defines how workers receive requests.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Request
}

// Worker processes evaluation requests and persists snapshots.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker. Any request already being
	// processed completes before the worker stops.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing evaluation requests.
type InMemoryWorker struct {
	queue     Queue
	bundles   BundleSource
	evaluator Evaluator
	sink      SnapshotSink
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker.
func NewInMemoryWorker(queue Queue, bundles BundleSource, evaluator Evaluator, sink SnapshotSink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		bundles:   bundles,
		evaluator: evaluator,
		sink:      sink,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	requests := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case r, ok := <-requests:
			if !ok {
				return
			}
			if err := w.process(ctx, r); err != nil {
				w.logger.Error(ctx, "error processing evaluation request", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process handles a single evaluation request.
func (w *InMemoryWorker) process(ctx context.Context, r Request) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	bundle, err := w.bundles.Bundle(ctx, r.PlayerID)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "bundle_lookup")
		w.logger.Error(ctx, "bundle lookup failed",
			logger.String("requestID", r.RequestID),
			logger.String("playerID", r.PlayerID),
			logger.Error(err),
		)
		return fmt.Errorf("bundle lookup for request %s: %w", r.RequestID, err)
	}

	evalStart := time.Now()
	result := w.evaluator.Evaluate(bundle)
	metrics.RecordEvaluationLatency(float64(time.Since(evalStart).Milliseconds()))
	metrics.RecordEvaluationComputed()
	metrics.RecordOverallStatus(string(result.OverallStatus))
	for _, v := range scoring.Visas() {
		if vs, ok := result.ByVisa(v); ok {
			metrics.RecordVisaScore(string(v), float64(vs.Score))
		}
	}

	snap := repository.Snapshot{
		PlayerID:     r.PlayerID,
		EvaluationID: r.RequestID,
		Result:       result,
		ComputedAt:   time.Now().UTC(),
	}
	if err := w.sink.PutSnapshot(ctx, snap); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "snapshot_store")
		w.logger.Error(ctx, "snapshot store failed",
			logger.String("requestID", r.RequestID),
			logger.String("playerID", r.PlayerID),
			logger.Error(err),
		)
		return fmt.Errorf("snapshot store for request %s: %w", r.RequestID, err)
	}
	metrics.RecordSnapshotStored()

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, bundles BundleSource, evaluator Evaluator, sink SnapshotSink) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			bundles,
			evaluator,
			sink,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue and drains all workers.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so no new requests arrive.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateWorkerCount(0)

	return nil
}
