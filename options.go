package reminders

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/brokerdesk/reminders/internal/storage"
)

// Option customises Service construction. Options are applied in order
// after environment configuration is loaded, so they win over REMINDER_*
// variables.
type Option func(*Service) error

// WithConfig replaces the environment-derived configuration wholesale.
// Later options still override individual fields.
func WithConfig(cfg Config) Option {
	return func(s *Service) error {
		s.cfg = cfg
		return nil
	}
}

// WithHTTPClient supplies a custom HTTP client. The default client has a
// 30s timeout and a debug-dump transport when BROKERDESK_DEBUG is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		s.httpClient = hc
		return nil
	}
}

// WithHTTPTimeout sets the timeout on the default HTTP client. Ignored
// when WithHTTPClient is also given.
func WithHTTPTimeout(d time.Duration) Option {
	return func(s *Service) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be positive, got %v", d)
		}
		s.httpTimeout = d
		return nil
	}
}

// WithDebugLogging forces the request/response dump transport onto the
// default HTTP client regardless of environment variables.
func WithDebugLogging() Option {
	return func(s *Service) error {
		s.debugWire = true
		return nil
	}
}

// WithPollInterval overrides how often the loop queries for due reminders.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) error {
		if d <= 0 {
			return fmt.Errorf("poll interval must be positive, got %v", d)
		}
		s.cfg.PollInterval = d
		return nil
	}
}

// WithDueWindow overrides how late a reminder may be observed and still
// fire. Anything older is dropped unfired.
func WithDueWindow(d time.Duration) Option {
	return func(s *Service) error {
		if d <= 0 {
			return fmt.Errorf("due window must be positive, got %v", d)
		}
		s.cfg.DueWindow = d
		return nil
	}
}

// WithLedgerRetention caps how many delivered ids the dedup ledger keeps.
func WithLedgerRetention(n int) Option {
	return func(s *Service) error {
		if n <= 0 {
			return fmt.Errorf("ledger retention must be positive, got %d", n)
		}
		s.cfg.LedgerRetention = n
		return nil
	}
}

// WithStorageEngine selects the persistence engine ("json", "sqlite" or
// "memory") and the file path for the file-backed engines.
func WithStorageEngine(engine, path string) Option {
	return func(s *Service) error {
		s.cfg.StorageEngine = engine
		s.cfg.StoragePath = path
		return nil
	}
}

// WithMemoryStorage keeps the ledger and local reminders in memory only.
// Delivered-id state will not survive a restart; mostly for tests.
func WithMemoryStorage() Option {
	return func(s *Service) error {
		s.cfg.StorageEngine = storage.EngineMemory
		return nil
	}
}

// WithLogger replaces the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) error {
		s.logger = l
		return nil
	}
}

// WithAutoDeliveryDisabled constructs the service administratively
// disabled: poll cycles are no-ops until SetAutoDelivery(true).
func WithAutoDeliveryDisabled() Option {
	return func(s *Service) error {
		s.cfg.Disabled = true
		return nil
	}
}
