package shardqueue

import (
	"errors"
	"fmt"
)

// ErrExecutorClosed is returned by Submit after Stop has been called.
var ErrExecutorClosed = errors.New("shardqueue: executor closed")

// ErrQueueFull is the sentinel wrapped by QueueFullError.
var ErrQueueFull = errors.New("shardqueue: queue full")

// QueueFullError reports that a shard's buffer stayed full past the
// enqueue timeout.
type QueueFullError struct {
	Shard    int
	Length   int
	Capacity int
}

// Error implements the error interface.
func (e *QueueFullError) Error() string {
	return fmt.Sprintf("shardqueue: shard %d full (%d/%d)", e.Shard, e.Length, e.Capacity)
}

// Unwrap lets errors.Is(err, ErrQueueFull) work on wrapped values.
func (e *QueueFullError) Unwrap() error { return ErrQueueFull }
