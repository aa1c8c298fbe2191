package service

import (
	"io"
	"time"

	"saferail/internal/models"
)

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "LOGIN", "LOGOUT", "SOS", "CONSTABLE_DISPATCH", "FEEDBACK_HIGH_PRIORITY"
}

type SignInResult struct {
	Token   string         `json:"token"`
	Session models.Session `json:"session"`
}

type SignUpInput struct {
	FullName           string
	Username           string
	PhoneNumber        string
	Email              string
	Password           string
	ConfirmPassword    string
	VerificationTicket string
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Email       *string
	PhoneNumber *string
}

type FeedbackInput struct {
	Station  string
	Category string
	Message  string
}

type SOSRequest struct {
	Lat     string
	Lon     string
	Station string
}

type SOSResult struct {
	Status   string `json:"status"`
	AlertID  string `json:"alert_id"`
	Notified int    `json:"notified"`
	Failed   int    `json:"failed"`
}

// CompartmentUpload is one photo of a compartment plus where it was taken.
type CompartmentUpload struct {
	Image       io.Reader
	Filename    string
	Train       string
	Compartment string
	Lat         string
	Lon         string
	Username    string
}

type AnalyzeResult struct {
	PeopleCount int    `json:"people_count"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	AlertID     string `json:"alert_id"`
}
