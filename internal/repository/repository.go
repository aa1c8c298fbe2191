package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"saferail/internal/models"
)

// ErrDuplicate reports a unique constraint violation.
var ErrDuplicate = errors.New("duplicate record")

type Authorization interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateContact(ctx context.Context, id int, email, phone string) error
	TouchLogin(ctx context.Context, id int, at time.Time) error
}

type FeedbackFilter struct {
	Station  string
	Priority string
}

type FeedbackRepo interface {
	Create(ctx context.Context, f models.Feedback) error
	Get(ctx context.Context, id string) (*models.Feedback, error)
	ListActive(ctx context.Context, f FeedbackFilter) ([]models.Feedback, error)
	ListSince(ctx context.Context, since time.Time) ([]models.Feedback, error)
	Vote(ctx context.Context, id string, up bool, hideAt int) error
	Stats(ctx context.Context) (models.FeedbackStats, error)
	Count(ctx context.Context) (int, error)
}

type QuickFeedbackRepo interface {
	Create(ctx context.Context, f models.QuickFeedback) error
	List(ctx context.Context) ([]models.QuickFeedback, error)
	Get(ctx context.Context, id string) (*models.QuickFeedback, error)
	Delete(ctx context.Context, id string) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error)
}

type AlertRepo interface {
	Create(ctx context.Context, a models.Alert) error
	ListRecent(ctx context.Context, limit int) ([]models.Alert, error)
	ListSince(ctx context.Context, since time.Time) ([]models.Alert, error)
}

type EmergencyContactRepo interface {
	Add(ctx context.Context, c models.EmergencyContact) (int, error)
	List(ctx context.Context, userID int) ([]models.EmergencyContact, error)
	Delete(ctx context.Context, userID, id int) (bool, error)
}

type ContactMessageRepo interface {
	Create(ctx context.Context, m models.ContactMessage) (int, error)
}

type StationRepo interface {
	ReplaceAll(ctx context.Context, readings []models.StationReading) error
	Names(ctx context.Context) ([]string, error)
	ByStation(ctx context.Context, name string) ([]models.StationReading, error)
}

type Repository struct {
	Auth              Authorization
	Feedback          FeedbackRepo
	QuickFeedback     QuickFeedbackRepo
	EventRepo         EventRepo
	Alerts            AlertRepo
	EmergencyContacts EmergencyContactRepo
	ContactMessages   ContactMessageRepo
	Stations          StationRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:              NewUserRepository(db),
		Feedback:          NewFeedbackSQLite(db),
		QuickFeedback:     NewQuickFeedbackSQLite(db),
		EventRepo:         NewEventSQLite(db),
		Alerts:            NewAlertSQLite(db),
		EmergencyContacts: NewEmergencyContactSQLite(db),
		ContactMessages:   NewContactMessageSQLite(db),
		Stations:          NewStationSQLite(db),
	}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
