package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Status is the lifecycle state of a reminder.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusDismissed Status = "dismissed"
)

// RepeatType describes how a repeating reminder re-arms itself.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
)

// Origin tags where a reminder record came from.
type Origin string

const (
	OriginBackend Origin = "backend"
	OriginLocal   Origin = "local"
)

// Reminder is the canonical, normalized reminder shape delivered to the
// presenter. All display fields have already been resolved through the
// normalizer's fallback chains; consumers never branch on origin.
type Reminder struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Note          string     `json:"note"`
	ClientName    string     `json:"clientName"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	Location      string     `json:"location"`
	CaseStatus    string     `json:"caseStatus"`
	ProductType   string     `json:"productType"`
	ScheduledTime time.Time  `json:"scheduledTime"`
	Status        Status     `json:"status"`
	IsRepeating   bool       `json:"isRepeating"`
	RepeatType    RepeatType `json:"repeatType"`
	SnoozeCount   int        `json:"snoozeCount"`
	TriggerCount  int        `json:"triggerCount"`
	Origin        Origin     `json:"origin"`

	Completion *CompletionRecord `json:"completion,omitempty"`
}

// CompletionRecord captures the outcome of a completed reminder.
type CompletionRecord struct {
	Response    string    `json:"response"`
	CompletedAt time.Time `json:"completedAt"`
	WordCount   int       `json:"wordCount"`
	Quality     string    `json:"quality"`
}

// LocalRecord is a client-originated reminder the backend has not yet
// confirmed. It is owned exclusively by the local store.
type LocalRecord struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Note          string     `json:"note"`
	ClientName    string     `json:"clientName,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	Location      string     `json:"location,omitempty"`
	CaseStatus    string     `json:"caseStatus,omitempty"`
	ProductType   string     `json:"productType,omitempty"`
	ScheduledTime time.Time  `json:"scheduledTime"`
	RepeatType    RepeatType `json:"repeatType,omitempty"`
	IsRepeating   bool       `json:"isRepeating,omitempty"`
	IsLocal       bool       `json:"isLocalReminder"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// RawReminder is a backend reminder before normalization. Field names on
// the wire are inconsistent across endpoints, so every plausible alias is
// decoded and resolved later by the normalizer.
type RawReminder struct {
	ID           string `json:"id"`
	LegacyID     string `json:"_id"`
	Title        string `json:"title"`
	Note         string `json:"note"`
	Instructions string `json:"instructions"`

	ClientName string         `json:"clientName"`
	Name       string         `json:"name"`
	Assignment *RawAssignment `json:"assignment"`
	Phone      string         `json:"phone"`
	Mobile     string         `json:"mobile"`
	Email      string         `json:"email"`
	Location   string         `json:"location"`
	Address    string         `json:"address"`

	CaseStatus  string `json:"caseStatus"`
	ProductType string `json:"productType"`

	ScheduledTime *time.Time `json:"scheduledTime"`
	ReminderDate  *time.Time `json:"reminderDate"`

	Status       Status     `json:"status"`
	IsRepeating  bool       `json:"isRepeating"`
	RepeatType   RepeatType `json:"repeatType"`
	SnoozeCount  int        `json:"snoozeCount"`
	TriggerCount int        `json:"triggerCount"`

	Response    string     `json:"response,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// RawAssignment is the nested staff assignment some endpoints attach to a
// reminder instead of a flat client name.
type RawAssignment struct {
	UserID RawAssignee `json:"userId"`
}

// RawAssignee identifies the person a reminder is assigned to.
type RawAssignee struct {
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
}

// StaffDue is one element of the admin due feed: an employee plus the
// reminders the server already judged due for them.
type StaffDue struct {
	Employee  string        `json:"employee"`
	Reminders []RawReminder `json:"reminders"`
}

// LeadContext carries the client/lead fields a reminder is created from.
type LeadContext struct {
	ClientName  string `json:"clientName"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Location    string `json:"location,omitempty"`
	CaseStatus  string `json:"caseStatus,omitempty"`
	ProductType string `json:"productType,omitempty"`
}
