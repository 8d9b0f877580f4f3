package queue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

func testRequest(id string) Request {
	return model.EvaluationRequest{
		RequestID:   id,
		PlayerID:    "player-" + id,
		RequestedAt: time.Now(),
	}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, testRequest("r1")) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	ch := q.Dequeue(ctx)
	r := <-ch
	if r.RequestID != "r1" {
		t.Errorf("expected r1, got %v", r.RequestID)
	}
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_CapacityLimit(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(3), WithBufferSize(3))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !q.Enqueue(ctx, testRequest(fmt.Sprintf("r%d", i))) {
			t.Fatalf("expected enqueue %d to succeed", i)
		}
	}
	if q.Enqueue(ctx, testRequest("overflow")) {
		t.Error("expected enqueue beyond capacity to fail")
	}
	if l := q.Len(ctx); l != 3 {
		t.Errorf("expected length 3, got %d", l)
	}
}

func TestInMemoryQueue_Ordering(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		q.Enqueue(ctx, testRequest(fmt.Sprintf("r%d", i)))
	}

	ch := q.Dequeue(ctx)
	for i := 0; i < 5; i++ {
		r := <-ch
		want := fmt.Sprintf("r%d", i)
		if r.RequestID != want {
			t.Errorf("expected %s, got %s", want, r.RequestID)
		}
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	q.Enqueue(ctx, testRequest("r1"))
	q.Enqueue(ctx, testRequest("r2"))

	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}
	if q.Enqueue(ctx, testRequest("r3")) {
		t.Error("expected enqueue on closed queue to fail")
	}
	// Close is idempotent.
	if err := q.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}

	// Buffered requests drain, then the channel closes.
	ch := q.Dequeue(ctx)
	var got []string
	for r := range ch {
		got = append(got, r.RequestID)
	}
	if len(got) != 2 || got[0] != "r1" || got[1] != "r2" {
		t.Errorf("expected buffered requests to drain in order, got %v", got)
	}
}

func TestInMemoryQueue_DequeueContextCancel(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx, cancel := context.WithCancel(context.Background())

	ch := q.Dequeue(ctx)
	cancel()
	q.Enqueue(context.Background(), testRequest("r1"))

	select {
	case _, ok := <-ch:
		if ok {
			// The request slipped through before cancellation was
			// observed; the channel must close next.
			if _, ok := <-ch; ok {
				t.Error("expected channel to close after cancellation")
			}
		}
	case <-time.After(time.Second):
		t.Fatal("dequeue channel did not close after cancellation")
	}
}
