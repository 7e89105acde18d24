package reminders

import (
	"context"

	"github.com/brokerdesk/reminders/internal/shardqueue"
)

// executor abstracts the internal async job runner used for best-effort
// side effects (quality alerts, local-record promotion, repeat sync).
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Stop()
}
