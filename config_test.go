package reminders

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want 1s", cfg.PollInterval)
	}
	if cfg.DueWindow != 10*time.Minute {
		t.Errorf("DueWindow = %v, want 10m", cfg.DueWindow)
	}
	if cfg.LedgerRetention != 500 {
		t.Errorf("LedgerRetention = %d, want 500", cfg.LedgerRetention)
	}
	if cfg.StorageEngine != "json" {
		t.Errorf("StorageEngine = %q, want json", cfg.StorageEngine)
	}
	if cfg.Disabled {
		t.Errorf("Disabled = true, want false")
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("REMINDER_POLL_INTERVAL", "250ms")
	t.Setenv("REMINDER_DUE_WINDOW", "5m")
	t.Setenv("REMINDER_LEDGER_RETENTION", "42")
	t.Setenv("REMINDER_STORAGE_ENGINE", "sqlite")
	t.Setenv("REMINDER_STORAGE_PATH", "/tmp/rem.db")
	t.Setenv("REMINDER_DISABLED", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.DueWindow != 5*time.Minute {
		t.Errorf("DueWindow = %v", cfg.DueWindow)
	}
	if cfg.LedgerRetention != 42 {
		t.Errorf("LedgerRetention = %d", cfg.LedgerRetention)
	}
	if cfg.StorageEngine != "sqlite" || cfg.StoragePath != "/tmp/rem.db" {
		t.Errorf("storage = %q %q", cfg.StorageEngine, cfg.StoragePath)
	}
	if !cfg.Disabled {
		t.Errorf("Disabled = false, want true")
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("REMINDER_POLL_INTERVAL", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error for bad duration")
	}
}
