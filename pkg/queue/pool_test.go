package queue

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllTasks(t *testing.T) {
	pool := NewPool(4, 8)
	ctx := context.Background()
	pool.Start(ctx)

	var ran int64
	go func() {
		for i := 0; i < 20; i++ {
			id := fmt.Sprintf("task-%d", i)
			if err := pool.Submit(ctx, id, func(context.Context) error {
				atomic.AddInt64(&ran, 1)
				return nil
			}); err != nil {
				t.Errorf("submit %s: %v", id, err)
			}
		}
		pool.CloseAndWait()
	}()

	var got int
	for range pool.Results() {
		got++
	}
	if got != 20 {
		t.Fatalf("expected 20 results, got %d", got)
	}
	if atomic.LoadInt64(&ran) != 20 {
		t.Fatalf("expected 20 executions, got %d", ran)
	}
}

func TestPoolReportsErrors(t *testing.T) {
	pool := NewPool(2, 4)
	ctx := context.Background()
	pool.Start(ctx)

	boom := errors.New("boom")
	go func() {
		_ = pool.Submit(ctx, "ok", func(context.Context) error { return nil })
		_ = pool.Submit(ctx, "bad", func(context.Context) error { return boom })
		pool.CloseAndWait()
	}()

	outcomes := map[string]error{}
	for res := range pool.Results() {
		outcomes[res.ID] = res.Err
	}
	if outcomes["ok"] != nil {
		t.Fatalf("ok task errored: %v", outcomes["ok"])
	}
	if !errors.Is(outcomes["bad"], boom) {
		t.Fatalf("bad task error lost: %v", outcomes["bad"])
	}
}

func TestPoolSubmitHonorsCancel(t *testing.T) {
	pool := NewPool(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// workers never started and buffer is size 1: first submit fills the
	// buffer, the second must bail out on the cancelled context
	_ = pool.Submit(context.Background(), "fill", func(context.Context) error { return nil })
	if err := pool.Submit(ctx, "late", func(context.Context) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
