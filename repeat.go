package reminders

import (
	"time"

	"github.com/brokerdesk/reminders/internal/types"
)

// nextOccurrence returns the first occurrence of a repeating schedule
// strictly after now. Monthly steps use calendar months, so Jan 31
// advances to Mar 3 the way time.AddDate normalises short months.
func nextOccurrence(scheduled time.Time, rt types.RepeatType, now time.Time) time.Time {
	next := scheduled
	for !next.After(now) {
		switch rt {
		case types.RepeatDaily:
			next = next.AddDate(0, 0, 1)
		case types.RepeatWeekly:
			next = next.AddDate(0, 0, 7)
		case types.RepeatMonthly:
			next = next.AddDate(0, 1, 0)
		default:
			return time.Time{}
		}
	}
	return next
}
