// Package reminders is a client-side reminder delivery engine for the
// BrokerDesk CRM. It polls the backend for due reminders, merges in
// locally created ones, suppresses anything already delivered via a
// persisted ledger, and hands each surviving reminder to a callback
// exactly once per arming.
package reminders

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/brokerdesk/reminders/internal/api"
	"github.com/brokerdesk/reminders/internal/job"
	"github.com/brokerdesk/reminders/internal/ledger"
	"github.com/brokerdesk/reminders/internal/localstore"
	"github.com/brokerdesk/reminders/internal/normalize"
	"github.com/brokerdesk/reminders/internal/shardqueue"
	"github.com/brokerdesk/reminders/internal/storage"
	"github.com/brokerdesk/reminders/internal/types"
)

// Callback receives each reminder judged due and not yet delivered.
// It runs on the poll goroutine; a panicking callback is recovered and
// logged, and the reminder is NOT redelivered (its id is already in the
// ledger by then).
type Callback func(types.Reminder)

// defaultHTTPTimeout bounds every backend call issued by the engine.
const defaultHTTPTimeout = 30 * time.Second

// Service is the reminder engine. Construct it once per process with
// New; the poll loop is a singleton per Service and Start is idempotent.
type Service struct {
	baseURL string
	creds   CredentialProvider
	cfg     Config

	httpClient  *http.Client
	httpTimeout time.Duration
	debugWire   bool

	exec      executor
	store     storage.Store
	delivered *ledger.Ledger
	locals    *localstore.Store
	logger    zerolog.Logger

	notifyCh chan struct{}
	wg       sync.WaitGroup

	mu       sync.Mutex
	callback Callback
	token    string
	running  bool
	stopCh   chan struct{}
	closed   bool
}

// ServiceStatus is a diagnostic snapshot of the engine.
type ServiceStatus struct {
	Running        bool
	HasToken       bool
	Disabled       bool
	PollInterval   time.Duration
	DueWindow      time.Duration
	StorageEngine  string
	DeliveredCount int
	LocalCount     int
}

// New builds a Service for the backend at baseURL. Credentials are read
// from creds on every cycle, so token rotation needs no restart.
// Configuration comes from REMINDER_* environment variables, then opts.
func New(baseURL string, creds CredentialProvider, opts ...Option) (*Service, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("baseURL must not be empty")
	}
	if creds == nil {
		return nil, fmt.Errorf("credential provider must not be nil")
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	s := &Service{
		baseURL:     strings.TrimRight(baseURL, "/"),
		creds:       creds,
		cfg:         cfg,
		httpTimeout: defaultHTTPTimeout,
		logger:      zlog.With().Str("component", "reminders").Logger(),
		notifyCh:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.httpClient == nil {
		var transport http.RoundTripper = http.DefaultTransport
		if s.debugWire || debugLoggingRequested() {
			transport = &debugTransport{base: transport}
		}
		s.httpClient = &http.Client{Timeout: s.httpTimeout, Transport: transport}
	}

	if s.store == nil {
		st, err := storage.NewByEngine(s.cfg.StorageEngine, s.cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		s.store = st
	}
	s.delivered, err = ledger.Load(s.store, s.cfg.LedgerRetention)
	if err != nil {
		return nil, err
	}
	s.locals, err = localstore.Load(s.store)
	if err != nil {
		return nil, err
	}

	if s.exec == nil {
		sqCfg, err := shardqueue.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("load executor config: %w", err)
		}
		logger := s.logger
		sqCfg.ErrorHandler = func(err error) {
			logger.Warn().Err(err).Msg("background job failed")
		}
		s.exec = shardqueue.NewShardExecutor(sqCfg)
	}

	return s, nil
}

// SetCallback registers the delivery callback. Until one is set, poll
// cycles are skipped entirely so nothing is consumed from the ledger.
func (s *Service) SetCallback(cb Callback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callback = cb
}

// Start launches the poll loop. A non-empty token overrides whatever the
// credential provider returns until Stop. Calling Start while running
// only refreshes the token; a second loop is never launched.
func (s *Service) Start(token string) {
	s.mu.Lock()
	if token != "" {
		s.token = token
	}
	if s.running || s.closed {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(stopCh)
	s.logger.Info().Dur("interval", s.cfg.PollInterval).Msg("reminder polling started")
}

// Stop halts the poll loop and waits for the in-flight cycle to finish.
// Idempotent; the Service can be started again afterwards.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info().Msg("reminder polling stopped")
}

// Close stops the loop, drains the background executor and releases the
// persistence handle. The Service is unusable afterwards.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.Stop()
	s.exec.Stop()
	return s.store.Close()
}

// ForceCheck requests an immediate poll cycle. While the loop is running
// the request is coalesced onto it (repeated calls before the loop wakes
// collapse into one cycle); when the loop is stopped the cycle runs
// inline on the caller's goroutine.
func (s *Service) ForceCheck(ctx context.Context) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	if !running {
		s.checkCycle(ctx)
		return
	}
	select {
	case s.notifyCh <- struct{}{}:
	default: // a check is already pending
	}
}

// SetAutoDelivery toggles automatic delivery at runtime. While disabled,
// poll cycles are no-ops; nothing is pruned or delivered.
func (s *Service) SetAutoDelivery(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Disabled = !enabled
}

// AddLocalReminder persists rec locally and returns the stored record
// with its synthesized id. A background promotion attempt pushes it to
// the backend; on success the local copy is removed, on failure it stays
// local and keeps firing from the local store.
func (s *Service) AddLocalReminder(rec types.LocalRecord) (types.LocalRecord, error) {
	stored, err := s.locals.Add(rec)
	if err != nil {
		return types.LocalRecord{}, err
	}

	promote := job.New(func(ctx context.Context) error {
		creds, err := s.resolveCredentials(ctx)
		if err != nil || creds.Token == "" {
			return nil // not signed in; record stays local
		}
		req := createRequestFromLocal(stored)
		if _, err := api.CreateReminder(ctx, s.httpClient, s.baseURL, creds.Token, req); err != nil {
			return err
		}
		return s.locals.Remove(stored.ID)
	})
	if err := s.exec.Submit(context.Background(), stored.ID, promote); err != nil {
		s.logger.Warn().Err(err).Str("reminder_id", stored.ID).Msg("promotion not scheduled, record stays local")
	}
	return stored, nil
}

// CreateForLead creates a follow-up reminder for a CRM lead. It tries the
// backend first; when that fails (offline, not signed in) it degrades to
// a local reminder so the follow-up is never silently lost.
func (s *Service) CreateForLead(ctx context.Context, lead types.LeadContext, scheduledTime time.Time, note string) (types.Reminder, error) {
	if scheduledTime.IsZero() {
		return types.Reminder{}, fmt.Errorf("scheduledTime must be set")
	}
	title := "Follow up with " + lead.ClientName
	req := types.CreateReminderRequest{
		Title:         title,
		Note:          note,
		ClientName:    lead.ClientName,
		Phone:         lead.Phone,
		Email:         lead.Email,
		Location:      lead.Location,
		CaseStatus:    lead.CaseStatus,
		ProductType:   lead.ProductType,
		ScheduledTime: scheduledTime,
	}

	creds, err := s.resolveCredentials(ctx)
	if err == nil && creds.Token != "" {
		raw, err := api.CreateReminder(ctx, s.httpClient, s.baseURL, creds.Token, req)
		if err == nil {
			return normalize.FromBackend(*raw), nil
		}
		s.logger.Warn().Err(err).Str("client", lead.ClientName).Msg("backend create failed, storing locally")
	}

	stored, err := s.AddLocalReminder(types.LocalRecord{
		Title:         title,
		Note:          note,
		ClientName:    lead.ClientName,
		Phone:         lead.Phone,
		Email:         lead.Email,
		Location:      lead.Location,
		CaseStatus:    lead.CaseStatus,
		ProductType:   lead.ProductType,
		ScheduledTime: scheduledTime,
	})
	if err != nil {
		return types.Reminder{}, err
	}
	return normalize.FromLocal(stored), nil
}

// DismissReminder durably suppresses id: it is recorded in the ledger so
// it never fires again on this client, even across restarts.
func (s *Service) DismissReminder(id string) error {
	if err := types.ValidateIDPresent(id, "reminderId"); err != nil {
		return err
	}
	return s.delivered.Add(id)
}

// ResetDelivered empties the dedup ledger so everything currently due
// fires again on the next cycle. Debug/testing affordance.
func (s *Service) ResetDelivered() error {
	return s.delivered.Reset()
}

// Status returns a diagnostic snapshot.
func (s *Service) Status() ServiceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ServiceStatus{
		Running:        s.running,
		HasToken:       s.token != "",
		Disabled:       s.cfg.Disabled,
		PollInterval:   s.cfg.PollInterval,
		DueWindow:      s.cfg.DueWindow,
		StorageEngine:  s.cfg.StorageEngine,
		DeliveredCount: s.delivered.Len(),
		LocalCount:     s.locals.Len(),
	}
}

// clearDelivered re-arms id: the next time it is observed due it will be
// delivered again. Used by the presenter after snooze and repeat.
func (s *Service) clearDelivered(id string) error {
	return s.delivered.Remove(id)
}

// snoozeLocal reschedules a local-origin reminder. There is no backend
// copy to reschedule, so the record is written back to the local store
// with its new fire time and the ledger entry is cleared so it can
// deliver again. Placeholder field values are stripped so they are not
// persisted as real data.
func (s *Service) snoozeLocal(rem types.Reminder, delay time.Duration) error {
	rec := types.LocalRecord{
		ID:            rem.ID,
		Title:         rem.Title,
		Note:          rem.Note,
		ClientName:    stripPlaceholder(rem.ClientName),
		Phone:         stripPlaceholder(rem.Phone),
		Email:         stripPlaceholder(rem.Email),
		Location:      stripPlaceholder(rem.Location),
		CaseStatus:    stripPlaceholder(rem.CaseStatus),
		ProductType:   stripPlaceholder(rem.ProductType),
		ScheduledTime: time.Now().Add(delay),
		IsRepeating:   rem.IsRepeating,
		RepeatType:    rem.RepeatType,
	}
	if _, err := s.locals.Add(rec); err != nil {
		return err
	}
	return s.delivered.Remove(rem.ID)
}

func stripPlaceholder(v string) string {
	if v == normalize.NotSpecified {
		return ""
	}
	return v
}

// ------------------------- poll loop -------------------------

func (s *Service) loop(stopCh chan struct{}) {
	defer s.wg.Done()

	s.checkCycle(context.Background())

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.checkCycle(context.Background())
		case <-s.notifyCh:
			s.checkCycle(context.Background())
		}
	}
}

// checkCycle runs one poll cycle: prune/deliver local reminders, then
// query the role-appropriate backend feed. Backend failures are logged
// and swallowed; the next tick retries.
func (s *Service) checkCycle(ctx context.Context) {
	s.mu.Lock()
	cb := s.callback
	disabled := s.cfg.Disabled
	s.mu.Unlock()

	if disabled || cb == nil {
		return
	}
	pollCyclesTotal.Inc()

	now := time.Now()
	s.checkLocals(cb, now)

	creds, err := s.resolveCredentials(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("credential lookup failed, skipping backend poll")
		return
	}
	if creds.Token == "" {
		return // not signed in yet; locals still fired above
	}

	if creds.Role == RoleAdmin {
		s.checkAdminFeed(ctx, cb, creds.Token)
	} else {
		s.checkPendingFeed(ctx, cb, creds.Token, now)
	}
}

// checkLocals fires due local reminders and prunes ones the due window
// has passed by. Future-dated records are left alone. A record leaves
// the store as soon as its id is in the ledger: the ledger alone
// suppresses redelivery, and keeping the record around would later count
// it as expired even though it fired.
func (s *Service) checkLocals(cb Callback, now time.Time) {
	for _, rec := range s.locals.List() {
		elapsed := now.Sub(rec.ScheduledTime)
		if elapsed < 0 {
			continue
		}
		if elapsed > s.cfg.DueWindow {
			if err := s.locals.Remove(rec.ID); err != nil {
				s.logger.Error().Err(err).Str("reminder_id", rec.ID).Msg("prune expired local reminder")
			}
			expiredTotal.WithLabelValues("local").Inc()
			continue
		}
		s.deliver(cb, normalize.FromLocal(rec))
		if s.delivered.Contains(rec.ID) {
			if err := s.locals.Remove(rec.ID); err != nil {
				s.logger.Error().Err(err).Str("reminder_id", rec.ID).Msg("remove delivered local reminder")
			}
		}
	}
}

// checkPendingFeed polls the caller's own pending list. The endpoint does
// not filter by time, so the due-window test happens here.
func (s *Service) checkPendingFeed(ctx context.Context, cb Callback, token string, now time.Time) {
	raws, err := api.FetchPending(ctx, s.httpClient, s.baseURL, token)
	if err != nil {
		pollFailuresTotal.WithLabelValues("pending").Inc()
		s.logger.Warn().Err(err).Msg("pending poll failed")
		return
	}
	for _, raw := range raws {
		rem := normalize.FromBackend(raw)
		if rem.Status != types.StatusPending || rem.ScheduledTime.IsZero() {
			continue
		}
		elapsed := now.Sub(rem.ScheduledTime)
		if elapsed < 0 {
			continue
		}
		if elapsed > s.cfg.DueWindow {
			expiredTotal.WithLabelValues("backend").Inc()
			continue
		}
		s.deliver(cb, rem)
	}
}

// checkAdminFeed polls the admin due feed. The server has already applied
// the due-window test, so results are delivered as-is.
func (s *Service) checkAdminFeed(ctx context.Context, cb Callback, token string) {
	staff, err := api.FetchDueForStaff(ctx, s.httpClient, s.baseURL, token)
	if err != nil {
		pollFailuresTotal.WithLabelValues("due").Inc()
		s.logger.Warn().Err(err).Msg("admin due poll failed")
		return
	}
	for _, sd := range staff {
		for _, raw := range sd.Reminders {
			rem := normalize.FromBackend(raw)
			if rem.Status != types.StatusPending {
				continue
			}
			s.deliver(cb, rem)
		}
	}
}

// deliver hands rem to the callback unless its id is already in the
// ledger. The id is recorded BEFORE the callback runs: a crash mid-call
// loses the reminder rather than duplicating it.
func (s *Service) deliver(cb Callback, rem types.Reminder) {
	if rem.ID == "" {
		return
	}
	if s.delivered.Contains(rem.ID) {
		duplicatesSuppressedTotal.Inc()
		return
	}
	if err := s.delivered.Add(rem.ID); err != nil {
		// Can't guarantee at-most-once without the record; hold the
		// reminder back and let a later cycle retry the persist.
		s.logger.Error().Err(err).Str("reminder_id", rem.ID).Msg("persist delivered id failed, delivery deferred")
		return
	}

	rem.TriggerCount++
	func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().Interface("panic", r).Str("reminder_id", rem.ID).Msg("delivery callback panic")
			}
		}()
		cb(rem)
	}()
	deliveredTotal.WithLabelValues(string(rem.Origin)).Inc()
}

// resolveCredentials merges the provider's credentials with the token
// given to Start, which wins when present.
func (s *Service) resolveCredentials(ctx context.Context) (Credentials, error) {
	creds, err := s.creds.Credentials(ctx)
	if err != nil {
		return Credentials{}, err
	}
	s.mu.Lock()
	if s.token != "" {
		creds.Token = s.token
	}
	s.mu.Unlock()
	if creds.Role == "" {
		creds.Role = RoleEmployee
	}
	return creds, nil
}

func createRequestFromLocal(rec types.LocalRecord) types.CreateReminderRequest {
	return types.CreateReminderRequest{
		Title:         rec.Title,
		Note:          rec.Note,
		ClientName:    rec.ClientName,
		Phone:         rec.Phone,
		Email:         rec.Email,
		Location:      rec.Location,
		CaseStatus:    rec.CaseStatus,
		ProductType:   rec.ProductType,
		ScheduledTime: rec.ScheduledTime,
		IsRepeating:   rec.IsRepeating,
		RepeatType:    rec.RepeatType,
	}
}
