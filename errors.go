package reminders

import (
	"errors"

	"github.com/brokerdesk/reminders/internal/shardqueue"
	"github.com/brokerdesk/reminders/internal/types"
)

// ErrBackPressure is returned when the internal shard queue is full.
var ErrBackPressure = shardqueue.ErrQueueFull

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// ErrNotActive is returned by presenter actions that reference a
// reminder no longer (or never) in the active list.
var ErrNotActive = errors.New("reminder is not active")

// Re-export the shared SDK error so callers compare against one symbol.
var ErrEmptyResponse = types.ErrEmptyResponse
