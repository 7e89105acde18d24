package reminders

import (
	"net/http"
	"testing"
	"time"
)

func TestOptionsApplied(t *testing.T) {
	hc := &http.Client{Timeout: 5 * time.Second}
	s, err := New("http://localhost:9", StaticCredentials{},
		WithMemoryStorage(),
		WithHTTPClient(hc),
		WithPollInterval(2*time.Second),
		WithDueWindow(time.Minute),
		WithLedgerRetention(50),
		WithAutoDeliveryDisabled(),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = s.Close() }()

	if s.httpClient != hc {
		t.Fatalf("custom http client not used")
	}
	st := s.Status()
	if st.PollInterval != 2*time.Second || st.DueWindow != time.Minute || !st.Disabled {
		t.Fatalf("status = %+v", st)
	}
	if s.cfg.LedgerRetention != 50 {
		t.Fatalf("LedgerRetention = %d, want 50", s.cfg.LedgerRetention)
	}
}

func TestOptionValidation(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		opt  Option
	}{
		{"nil http client", WithHTTPClient(nil)},
		{"zero poll interval", WithPollInterval(0)},
		{"negative due window", WithDueWindow(-time.Second)},
		{"zero retention", WithLedgerRetention(0)},
		{"zero http timeout", WithHTTPTimeout(0)},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New("http://localhost:9", StaticCredentials{}, WithMemoryStorage(), tc.opt); err == nil {
				t.Fatalf("expected option error")
			}
		})
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	s, err := New("http://localhost:9/", StaticCredentials{}, WithMemoryStorage())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = s.Close() }()
	if s.baseURL != "http://localhost:9" {
		t.Fatalf("baseURL = %q", s.baseURL)
	}
}
