package types

import "time"

// ------------------------------
// Request Types
// ------------------------------

// CompleteRequest closes a reminder with the user's response. Word count
// and quality are derived client-side so the backend stores them as-is.
type CompleteRequest struct {
	Response  string `json:"response"`
	WordCount int    `json:"wordCount"`
	Quality   string `json:"quality"`
}

// SnoozeRequest reschedules a reminder by the given number of minutes.
type SnoozeRequest struct {
	Minutes int `json:"minutes"`
}

// UpdateRepeatRequest changes a reminder's repeat configuration.
type UpdateRepeatRequest struct {
	IsRepeating bool       `json:"isRepeating"`
	RepeatType  RepeatType `json:"repeatType"`
}

// CreateReminderRequest holds parameters for a new reminder. It is used
// both for explicit creation and for promoting local records.
type CreateReminderRequest struct {
	Title         string     `json:"title"`
	Note          string     `json:"note,omitempty"`
	ClientName    string     `json:"clientName,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	Location      string     `json:"location,omitempty"`
	CaseStatus    string     `json:"caseStatus,omitempty"`
	ProductType   string     `json:"productType,omitempty"`
	ScheduledTime time.Time  `json:"scheduledTime"`
	IsRepeating   bool       `json:"isRepeating,omitempty"`
	RepeatType    RepeatType `json:"repeatType,omitempty"`
}

// QualityAlertRequest notifies the oversight channel about an
// under-length completion response.
type QualityAlertRequest struct {
	ReminderID string `json:"reminderId"`
	Response   string `json:"response"`
	WordCount  int    `json:"wordCount"`
}
