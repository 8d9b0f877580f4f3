package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/mq/worker"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/repository"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
	logging "github.com/sportsreelstechnical/sports-reels-sub001/pkg/logger"
)

// Mock implementations for testing.

type mockQueue struct {
	requestChan chan worker.Request
	closeOnce   sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		requestChan: make(chan worker.Request, 10),
	}
}

func (mq *mockQueue) Dequeue(_ context.Context) <-chan worker.Request {
	return mq.requestChan
}

func (mq *mockQueue) Close() error {
	mq.closeOnce.Do(func() { close(mq.requestChan) })
	return nil
}

func (mq *mockQueue) addRequest(r worker.Request) {
	mq.requestChan <- r
}

type mockBundleSource struct {
	mu      sync.RWMutex
	bundles map[string]model.Bundle
	errs    map[string]error
}

func newMockBundleSource() *mockBundleSource {
	return &mockBundleSource{
		bundles: make(map[string]model.Bundle),
		errs:    make(map[string]error),
	}
}

func (ms *mockBundleSource) Bundle(_ context.Context, playerID string) (model.Bundle, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if err, ok := ms.errs[playerID]; ok {
		return model.Bundle{}, err
	}
	if b, ok := ms.bundles[playerID]; ok {
		return b, nil
	}
	return model.Bundle{}, repository.ErrNotFound
}

func (ms *mockBundleSource) setBundle(playerID string, b model.Bundle) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.bundles[playerID] = b
}

func (ms *mockBundleSource) setError(playerID string, err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.errs[playerID] = err
}

type mockSink struct {
	mu        sync.RWMutex
	snapshots map[string]repository.Snapshot
	err       error
}

func newMockSink() *mockSink {
	return &mockSink{snapshots: make(map[string]repository.Snapshot)}
}

func (ms *mockSink) PutSnapshot(_ context.Context, snap repository.Snapshot) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.err != nil {
		return ms.err
	}
	ms.snapshots[snap.PlayerID] = snap
	return nil
}

func (ms *mockSink) snapshot(playerID string) (repository.Snapshot, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	snap, ok := ms.snapshots[playerID]
	return snap, ok
}

func (ms *mockSink) count() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.snapshots)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func strongTestBundle(playerID string) model.Bundle {
	return model.Bundle{
		Player: model.Player{
			ID:                playerID,
			FullName:          "Test Player",
			ClubMinutesSeason: 1200,
			IntlMinutesSeason: 400,
			ContinentalGames:  10,
			MarketValueEUR:    2_000_000,
			AgentName:         "Agency One",
		},
		International: []model.InternationalRecord{
			{TeamName: "National A", TeamLevel: model.SeniorLevel, Caps: 20},
		},
		LeagueBand: 1,
	}
}

func TestWorkerProcessing(t *testing.T) {
	convey.Convey("Given a worker over a mock queue", t, func() {
		if err := logging.Init(); err != nil {
			t.Fatalf("logger init: %v", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		mq := newMockQueue()
		bundles := newMockBundleSource()
		sink := newMockSink()
		engine := scoring.NewEngine()

		w := worker.NewInMemoryWorker(mq, bundles, engine, sink, worker.WithName("test-worker"))
		go w.Run(ctx)

		convey.Convey("When a request for a known player arrives", func() {
			bundles.setBundle("p1", strongTestBundle("p1"))
			mq.addRequest(worker.Request{RequestID: "req-1", PlayerID: "p1", RequestedAt: time.Now()})

			convey.Convey("Then a snapshot is stored with the evaluation", func() {
				ok := waitFor(func() bool { _, found := sink.snapshot("p1"); return found })
				convey.So(ok, convey.ShouldBeTrue)

				snap, _ := sink.snapshot("p1")
				convey.So(snap.EvaluationID, convey.ShouldEqual, "req-1")
				convey.So(snap.Result.UKGBE.Status, convey.ShouldEqual, scoring.StatusGreen)
				convey.So(snap.ComputedAt.IsZero(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the bundle lookup fails", func() {
			bundles.setError("p2", errors.New("backend down"))
			mq.addRequest(worker.Request{RequestID: "req-2", PlayerID: "p2", RequestedAt: time.Now()})

			convey.Convey("Then no snapshot is stored and the worker keeps running", func() {
				bundles.setBundle("p3", strongTestBundle("p3"))
				mq.addRequest(worker.Request{RequestID: "req-3", PlayerID: "p3", RequestedAt: time.Now()})

				ok := waitFor(func() bool { _, found := sink.snapshot("p3"); return found })
				convey.So(ok, convey.ShouldBeTrue)
				_, found := sink.snapshot("p2")
				convey.So(found, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the worker is shut down", func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
			defer shutdownCancel()

			convey.Convey("Then shutdown completes before the deadline", func() {
				convey.So(w.Shutdown(shutdownCtx), convey.ShouldBeNil)
			})
		})
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a pool of workers", t, func() {
		if err := logging.Init(); err != nil {
			t.Fatalf("logger init: %v", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		mq := newMockQueue()
		bundles := newMockBundleSource()
		sink := newMockSink()
		engine := scoring.NewEngine()

		pool := worker.NewPool(4, mq, bundles, engine, sink)
		convey.So(pool.Size(), convey.ShouldEqual, 4)
		pool.Start(ctx)

		convey.Convey("When many requests arrive", func() {
			for i := 0; i < 10; i++ {
				id := fmt.Sprintf("p%d", i)
				bundles.setBundle(id, strongTestBundle(id))
				mq.addRequest(worker.Request{
					RequestID:   "req-" + id,
					PlayerID:    id,
					RequestedAt: time.Now(),
				})
			}

			convey.Convey("Then every request produces a snapshot", func() {
				ok := waitFor(func() bool { return sink.count() == 10 })
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the pool shuts down", func() {
			convey.Convey("Then shutdown closes the queue and returns", func() {
				convey.So(pool.Shutdown(context.Background()), convey.ShouldBeNil)
			})
		})
	})
}
