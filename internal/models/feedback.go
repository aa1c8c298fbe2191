package models

import "time"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	FeedbackActive = "active"
	FeedbackHidden = "hidden"
)

// Feedback is a community report about a station.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    int       `json:"-"`
	User      string    `json:"user"`
	Station   string    `json:"station"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	Priority  string    `json:"priority"` // low | medium | high
	Status    string    `json:"status"`   // active | hidden
}

// QuickFeedback is the lightweight reaction posted to the public /feedback service.
type QuickFeedback struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // thumbs_up | thumbs_down | alert | star
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"-"`
}

type FeedbackStats struct {
	TotalActive  int `json:"total_active"`
	HighPriority int `json:"high_priority"`
}
