// Package normalize maps the backend's inconsistent reminder payloads
// and locally-created records onto one canonical shape, so presentation
// code never branches on origin.
//
// The resolution order of each display field is a contract: downstream
// code assumes these fallbacks already happened. Do not reorder them.
package normalize

import (
	"strings"

	"github.com/brokerdesk/reminders/internal/types"
)

// NotSpecified is the placeholder for optional subject-context fields
// the payload did not carry.
const NotSpecified = "Not specified"

// titlePrefixes are leading verb phrases stripped when deriving a client
// name from the reminder title.
var titlePrefixes = []string{
	"follow up with ",
	"follow-up with ",
	"call back ",
	"call ",
	"meet ",
	"visit ",
}

// FromBackend resolves a raw backend reminder into the canonical shape.
func FromBackend(raw types.RawReminder) types.Reminder {
	rem := types.Reminder{
		ID:          firstNonEmpty(raw.ID, raw.LegacyID),
		Note:        firstNonEmpty(raw.Note, raw.Instructions),
		Phone:       firstNonEmpty(raw.Phone, raw.Mobile, NotSpecified),
		Location:    firstNonEmpty(raw.Location, raw.Address, NotSpecified),
		CaseStatus:  firstNonEmpty(raw.CaseStatus, NotSpecified),
		ProductType: firstNonEmpty(raw.ProductType, NotSpecified),
		Status:      raw.Status,
		IsRepeating: raw.IsRepeating,
		RepeatType:  raw.RepeatType,
		SnoozeCount: raw.SnoozeCount,
		TriggerCount: raw.TriggerCount,
		Origin:      types.OriginBackend,
	}

	if raw.ScheduledTime != nil {
		rem.ScheduledTime = *raw.ScheduledTime
	} else if raw.ReminderDate != nil {
		rem.ScheduledTime = *raw.ReminderDate
	}

	if rem.Status == "" {
		rem.Status = types.StatusPending
	}
	if rem.RepeatType == "" {
		rem.RepeatType = types.RepeatNone
	}

	// Email: explicit field, then the nested assignee.
	rem.Email = raw.Email
	if rem.Email == "" && raw.Assignment != nil {
		rem.Email = raw.Assignment.UserID.Email
	}

	rem.ClientName = resolveClientName(raw, rem.Email)
	rem.Title = firstNonEmpty(raw.Title, titleFromNote(rem.Note), "Reminder")

	if rem.Email == "" {
		rem.Email = NotSpecified
	}

	if raw.Response != "" && raw.CompletedAt != nil {
		rem.Completion = &types.CompletionRecord{
			Response:    raw.Response,
			CompletedAt: *raw.CompletedAt,
			WordCount:   len(strings.Fields(raw.Response)),
		}
	}

	return rem
}

// FromLocal resolves a local record into the canonical shape.
func FromLocal(rec types.LocalRecord) types.Reminder {
	rem := types.Reminder{
		ID:            rec.ID,
		Title:         firstNonEmpty(rec.Title, titleFromNote(rec.Note), "Reminder"),
		Note:          rec.Note,
		ClientName:    firstNonEmpty(rec.ClientName, emailLocalPart(rec.Email), rec.Phone, NotSpecified),
		Phone:         firstNonEmpty(rec.Phone, NotSpecified),
		Email:         firstNonEmpty(rec.Email, NotSpecified),
		Location:      firstNonEmpty(rec.Location, NotSpecified),
		CaseStatus:    firstNonEmpty(rec.CaseStatus, NotSpecified),
		ProductType:   firstNonEmpty(rec.ProductType, NotSpecified),
		ScheduledTime: rec.ScheduledTime,
		Status:        types.StatusPending,
		IsRepeating:   rec.IsRepeating,
		RepeatType:    rec.RepeatType,
		Origin:        types.OriginLocal,
	}
	if rem.RepeatType == "" {
		rem.RepeatType = types.RepeatNone
	}
	return rem
}

// resolveClientName applies the fixed fallback chain for the client
// name: clientName → name → assignment user name → derived from title →
// email local part → phone → "Not specified".
func resolveClientName(raw types.RawReminder, email string) string {
	if v := strings.TrimSpace(raw.ClientName); v != "" {
		return v
	}
	if v := strings.TrimSpace(raw.Name); v != "" {
		return v
	}
	if raw.Assignment != nil {
		if v := strings.TrimSpace(raw.Assignment.UserID.FullName); v != "" {
			return v
		}
	}
	if v := nameFromTitle(raw.Title); v != "" {
		return v
	}
	if v := emailLocalPart(email); v != "" {
		return v
	}
	if v := firstNonEmpty(raw.Phone, raw.Mobile); v != "" {
		return v
	}
	return NotSpecified
}

// nameFromTitle strips a known leading verb phrase from the title and
// treats the remainder as the client name.
func nameFromTitle(title string) string {
	t := strings.TrimSpace(title)
	lower := strings.ToLower(t)
	for _, prefix := range titlePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(t[len(prefix):])
		}
	}
	return ""
}

// emailLocalPart returns the part before '@', or "" when email is empty
// or malformed.
func emailLocalPart(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return ""
	}
	return email[:at]
}

// titleFromNote derives a short title from the first few words of a note.
func titleFromNote(note string) string {
	words := strings.Fields(note)
	if len(words) == 0 {
		return ""
	}
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
