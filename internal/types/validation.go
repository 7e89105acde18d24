package types

import (
	"errors"
	"fmt"
	"strings"
)

// ------------------------------
// Shared Errors
// ------------------------------

// ErrEmptyResponse is returned when a completion is attempted with an
// empty or whitespace-only response. It is rejected before any HTTP call.
var ErrEmptyResponse = errors.New("completion response must not be empty")

// ------------------------------
// Validation
// ------------------------------

// ValidateIDPresent rejects empty identifiers before they reach the wire.
func ValidateIDPresent(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	return nil
}

// ValidateResponseText enforces the non-empty completion rule.
func ValidateResponseText(response string) error {
	if strings.TrimSpace(response) == "" {
		return ErrEmptyResponse
	}
	return nil
}

// ValidateSnoozeMinutes rejects non-positive snooze delays.
func ValidateSnoozeMinutes(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("snooze minutes must be positive, got %d", minutes)
	}
	return nil
}

// ValidateRepeatType rejects repeat types outside the fixed set.
func ValidateRepeatType(rt RepeatType) error {
	switch rt {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return nil
	default:
		return fmt.Errorf("unknown repeat type %q", rt)
	}
}
