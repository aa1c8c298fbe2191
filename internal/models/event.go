package models

import "time"

const (
	EventLogin                = "LOGIN"
	EventLogout               = "LOGOUT"
	EventSOS                  = "SOS"
	EventConstableDispatch    = "CONSTABLE_DISPATCH"
	EventFeedbackHighPriority = "FEEDBACK_HIGH_PRIORITY"
)

// Event is a single audit log entry.
type Event struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Username    string    `json:"username,omitempty"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
