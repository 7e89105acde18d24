package reminders

import "github.com/brokerdesk/reminders/internal/types"

// Aliases so callers work entirely in terms of this package.
type (
	Reminder         = types.Reminder
	CompletionRecord = types.CompletionRecord
	LocalRecord      = types.LocalRecord
	LeadContext      = types.LeadContext
	StaffDue         = types.StaffDue
	Status           = types.Status
	RepeatType       = types.RepeatType
	Origin           = types.Origin
)

const (
	StatusPending   = types.StatusPending
	StatusCompleted = types.StatusCompleted
	StatusDismissed = types.StatusDismissed

	RepeatNone    = types.RepeatNone
	RepeatDaily   = types.RepeatDaily
	RepeatWeekly  = types.RepeatWeekly
	RepeatMonthly = types.RepeatMonthly

	OriginBackend = types.OriginBackend
	OriginLocal   = types.OriginLocal
)
