package types

// ------------------------------
// Response Types
// ------------------------------

// PendingResponse wraps the "list my pending reminders" endpoint.
type PendingResponse struct {
	Reminders []RawReminder `json:"reminders"`
	Count     int           `json:"count"`
}

// StaffDueResponse wraps the admin due feed.
type StaffDueResponse struct {
	Staff []StaffDue `json:"staff"`
	Count int        `json:"count"`
}

// CreateReminderResponse echoes the created reminder with its server id.
type CreateReminderResponse struct {
	Reminder RawReminder `json:"reminder"`
}
