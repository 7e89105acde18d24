package shardqueue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config tunes the executor. Zero values fall back to the defaults
// applied in NewShardExecutor.
type Config struct {
	Shards         int           `envconfig:"SHARDS"`
	QueueSize      int           `envconfig:"QUEUE_SIZE"`
	EnqueueTimeout time.Duration `envconfig:"ENQUEUE_TIMEOUT"`
	MaxAttempts    int           `envconfig:"MAX_ATTEMPTS"`
	BaseBackoff    time.Duration `envconfig:"BASE_BACKOFF"`
	MaxInterval    time.Duration `envconfig:"MAX_INTERVAL"`

	// ErrorHandler receives errors from jobs that exhausted their
	// retries or were classified irrecoverable. Optional.
	ErrorHandler func(error) `ignored:"true"`
}

// LoadConfig reads executor settings from SQ_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("sq", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
