package reminders

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries the engine's tunables. LoadConfig reads them from
// REMINDER_* environment variables; functional options override them.
type Config struct {
	// PollInterval is deliberately short: near-real-time delivery at
	// the cost of polling overhead, acceptable for a client-local,
	// low-volume loop. The interval doubles as the retry policy.
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`

	// DueWindow bounds lateness: a reminder first observed more than
	// this long after its scheduled time is dropped unfired rather than
	// delivered arbitrarily late.
	DueWindow time.Duration `envconfig:"DUE_WINDOW" default:"10m"`

	// LedgerRetention caps the delivered-id set at the most recent N.
	LedgerRetention int `envconfig:"LEDGER_RETENTION" default:"500"`

	// StorageEngine selects the persistence engine: json, sqlite, or
	// memory.
	StorageEngine string `envconfig:"STORAGE_ENGINE" default:"json"`

	// StoragePath is the file the json/sqlite engines persist to.
	StoragePath string `envconfig:"STORAGE_PATH" default:"brokerdesk-reminders.json"`

	// Disabled administratively turns off automatic delivery; poll
	// cycles become no-ops until re-enabled.
	Disabled bool `envconfig:"DISABLED"`
}

// LoadConfig reads engine settings from REMINDER_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("reminder", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
