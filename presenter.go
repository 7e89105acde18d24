package reminders

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/brokerdesk/reminders/internal/api"
	"github.com/brokerdesk/reminders/internal/job"
	"github.com/brokerdesk/reminders/internal/types"
)

// Presenter tracks the reminders currently shown to the user and maps
// their actions (complete, snooze, dismiss, set-repeat) onto backend
// calls and ledger updates. It registers itself as the Service callback.
//
// Every action removes the popup once its durable part succeeded, even
// when the backend sync part fails: the user acted, so the popup goes.
type Presenter struct {
	svc    *Service
	logger zerolog.Logger

	mu     sync.Mutex
	active []types.Reminder // arrival order, unique by id
}

// NewPresenter builds a Presenter wired to svc's delivery callback.
func NewPresenter(svc *Service) *Presenter {
	p := &Presenter{
		svc:    svc,
		logger: svc.logger.With().Str("component", "presenter").Logger(),
	}
	svc.SetCallback(p.Handle)
	return p
}

// Handle receives a delivered reminder. Duplicate ids are ignored, so an
// already-open popup is never stacked.
func (p *Presenter) Handle(rem types.Reminder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range p.active {
		if a.ID == rem.ID {
			return
		}
	}
	p.active = append(p.active, rem)
}

// Active returns a snapshot of the open popups in arrival order.
func (p *Presenter) Active() []types.Reminder {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]types.Reminder, len(p.active))
	copy(out, p.active)
	return out
}

// Complete closes the reminder with the user's response. An empty or
// whitespace-only response is rejected locally (ErrEmptyResponse) and the
// popup stays open. A valid response always closes the popup; the backend
// mutation error, if any, is returned for the caller to surface.
//
// Responses under the quality threshold additionally queue an oversight
// alert, regardless of whether the completion itself succeeded. Repeating
// reminders are re-armed at their next occurrence in the background.
func (p *Presenter) Complete(ctx context.Context, id, response string) error {
	rem, ok := p.lookup(id)
	if !ok {
		return ErrNotActive
	}
	if err := types.ValidateResponseText(response); err != nil {
		return err // nothing sent, popup stays
	}

	words := WordCount(response)
	quality := BucketResponse(words)

	creds, err := p.svc.resolveCredentials(ctx)
	if err != nil {
		creds = Credentials{}
	}
	mutErr := api.CompleteReminder(ctx, p.svc.httpClient, p.svc.baseURL, creds.Token, id, types.CompleteRequest{
		Response:  response,
		WordCount: words,
		Quality:   string(quality),
	})

	if words < QualityAlertThreshold {
		p.enqueueQualityAlert(id, response, words)
	}
	if rem.IsRepeating && rem.RepeatType != types.RepeatNone {
		p.rearm(rem)
	}

	p.remove(id)
	return mutErr
}

// Snooze reschedules the reminder by minutes. On success (or even on a
// backend failure after validation) the popup closes and the ledger entry
// is cleared, so the rescheduled occurrence is delivered again.
//
// Backend reminders are rescheduled by the backend; local ones have no
// backend copy, so the local record itself is moved to the new fire time.
func (p *Presenter) Snooze(ctx context.Context, id string, minutes int) error {
	rem, ok := p.lookup(id)
	if !ok {
		return ErrNotActive
	}
	if err := types.ValidateSnoozeMinutes(minutes); err != nil {
		return err
	}

	if rem.Origin == types.OriginLocal {
		err := p.svc.snoozeLocal(rem, time.Duration(minutes)*time.Minute)
		if err != nil {
			p.logger.Error().Err(err).Str("reminder_id", id).Msg("reschedule local reminder")
		}
		p.remove(id)
		return err
	}

	creds, err := p.svc.resolveCredentials(ctx)
	if err != nil {
		creds = Credentials{}
	}
	mutErr := api.SnoozeReminder(ctx, p.svc.httpClient, p.svc.baseURL, creds.Token, id, minutes)

	if err := p.svc.clearDelivered(id); err != nil {
		p.logger.Error().Err(err).Str("reminder_id", id).Msg("clear delivered id after snooze")
	}
	p.remove(id)
	return mutErr
}

// Dismiss suppresses the reminder durably on this client and closes the
// popup. The backend is informed in the background; a failed sync leaves
// the reminder dismissed locally, which is the intended precedence.
func (p *Presenter) Dismiss(ctx context.Context, id string) error {
	if _, ok := p.lookup(id); !ok {
		return ErrNotActive
	}
	if err := p.svc.DismissReminder(id); err != nil {
		return err // could not persist suppression; keep popup
	}
	p.remove(id)

	notify := job.New(func(ctx context.Context) error {
		creds, err := p.svc.resolveCredentials(ctx)
		if err != nil || creds.Token == "" {
			return nil
		}
		return api.DismissReminder(ctx, p.svc.httpClient, p.svc.baseURL, creds.Token, id)
	})
	if err := p.svc.exec.Submit(context.Background(), id, notify); err != nil {
		p.logger.Warn().Err(err).Str("reminder_id", id).Msg("backend dismiss not scheduled")
	}
	return nil
}

// SetRepeat changes the reminder's repeat configuration. The open popup
// is updated optimistically; the backend sync runs in the background and
// a failure only logs, it never reverts the local view.
func (p *Presenter) SetRepeat(ctx context.Context, id string, rt types.RepeatType) error {
	if err := types.ValidateRepeatType(rt); err != nil {
		return err
	}

	p.mu.Lock()
	found := false
	for i := range p.active {
		if p.active[i].ID == id {
			p.active[i].RepeatType = rt
			p.active[i].IsRepeating = rt != types.RepeatNone
			found = true
			break
		}
	}
	p.mu.Unlock()
	if !found {
		return ErrNotActive
	}

	req := types.UpdateRepeatRequest{IsRepeating: rt != types.RepeatNone, RepeatType: rt}
	update := job.New(func(ctx context.Context) error {
		creds, err := p.svc.resolveCredentials(ctx)
		if err != nil || creds.Token == "" {
			return nil
		}
		return api.UpdateRepeat(ctx, p.svc.httpClient, p.svc.baseURL, creds.Token, id, req)
	})
	if err := p.svc.exec.Submit(context.Background(), id, update); err != nil {
		p.logger.Warn().Err(err).Str("reminder_id", id).Msg("repeat sync not scheduled")
	}
	return nil
}

// CloseAll dismisses every open popup. Errors are joined; reminders whose
// suppression could not be persisted stay open.
func (p *Presenter) CloseAll(ctx context.Context) error {
	var errs []error
	for _, rem := range p.Active() {
		if err := p.Dismiss(ctx, rem.ID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ------------------------- internals -------------------------

// enqueueQualityAlert queues the oversight notification for an
// under-length response. Best-effort: a full queue only logs.
func (p *Presenter) enqueueQualityAlert(id, response string, words int) {
	req := types.QualityAlertRequest{ReminderID: id, Response: response, WordCount: words}
	alert := job.New(func(ctx context.Context) error {
		creds, err := p.svc.resolveCredentials(ctx)
		if err != nil || creds.Token == "" {
			return nil
		}
		return api.SendQualityAlert(ctx, p.svc.httpClient, p.svc.baseURL, creds.Token, req)
	})
	if err := p.svc.exec.Submit(context.Background(), id, alert); err != nil {
		p.logger.Warn().Err(err).Str("reminder_id", id).Msg("quality alert not scheduled")
		return
	}
	qualityAlertsEnqueuedTotal.Inc()
}

// rearm schedules the next occurrence of a repeating reminder and clears
// its ledger entry so the new occurrence can fire.
func (p *Presenter) rearm(rem types.Reminder) {
	next := nextOccurrence(rem.ScheduledTime, rem.RepeatType, time.Now())
	if next.IsZero() {
		return
	}
	req := types.CreateReminderRequest{
		Title:         rem.Title,
		Note:          rem.Note,
		ClientName:    rem.ClientName,
		Phone:         rem.Phone,
		Email:         rem.Email,
		Location:      rem.Location,
		CaseStatus:    rem.CaseStatus,
		ProductType:   rem.ProductType,
		ScheduledTime: next,
		IsRepeating:   true,
		RepeatType:    rem.RepeatType,
	}
	create := job.New(func(ctx context.Context) error {
		creds, err := p.svc.resolveCredentials(ctx)
		if err != nil || creds.Token == "" {
			return nil
		}
		if _, err := api.CreateReminder(ctx, p.svc.httpClient, p.svc.baseURL, creds.Token, req); err != nil {
			return err
		}
		return p.svc.clearDelivered(rem.ID)
	})
	if err := p.svc.exec.Submit(context.Background(), rem.ID, create); err != nil {
		p.logger.Warn().Err(err).Str("reminder_id", rem.ID).Msg("repeat re-arm not scheduled")
	}
}

func (p *Presenter) lookup(id string) (types.Reminder, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range p.active {
		if a.ID == id {
			return a, true
		}
	}
	return types.Reminder{}, false
}

func (p *Presenter) remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, a := range p.active {
		if a.ID == id {
			p.active = append(p.active[:i], p.active[i+1:]...)
			return
		}
	}
}
