package shardqueue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	interrors "github.com/brokerdesk/reminders/internal/errors"
)

func TestShardExecutor_RetryRecoverable(t *testing.T) {
	cfg := Config{Shards: 1, QueueSize: 10, MaxAttempts: 3, BaseBackoff: 10 * time.Millisecond}
	ex := NewShardExecutor(cfg)
	defer ex.Stop()

	var attempts int32
	job := JobFunc(func(ctx context.Context) error {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return interrors.NewHTTPError(500, "", "send quality alert")
		}
		return nil
	})

	if err := ex.Submit(context.Background(), "rem-1", job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// wait for executor to drain
	time.Sleep(200 * time.Millisecond)

	if atomic.LoadInt32(&attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestShardExecutor_IrrecoverableFailsFast(t *testing.T) {
	var handled int32
	cfg := Config{Shards: 1, QueueSize: 10, MaxAttempts: 5, BaseBackoff: 10 * time.Millisecond}
	cfg.ErrorHandler = func(error) { atomic.AddInt32(&handled, 1) }
	ex := NewShardExecutor(cfg)
	defer ex.Stop()

	var attempts int32
	job := JobFunc(func(ctx context.Context) error {
		atomic.AddInt32(&attempts, 1)
		return interrors.NewHTTPError(401, "", "complete reminder")
	})

	if err := ex.Submit(context.Background(), "rem-1", job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("expected exactly 1 attempt for 401, got %d", got)
	}
	if got := atomic.LoadInt32(&handled); got != 1 {
		t.Fatalf("expected error handler call, got %d", got)
	}
}
