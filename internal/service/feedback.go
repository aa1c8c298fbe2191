package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"saferail/internal/logger"
	"saferail/internal/models"
	"saferail/internal/repository"
	"saferail/internal/validation"

	"github.com/google/uuid"
)

// HideAtDownvotes is the downvote count at which an item leaves the portal.
const HideAtDownvotes = 5

const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Categories accepted by the portal form.
var Categories = []string{
	"Safety Concern",
	"Harassment",
	"Poor Lighting",
	"Facility Issue",
	"Staff Behavior",
	"Positive Feedback",
	"Emergency",
}

var ist = time.FixedZone("IST", 5*3600+30*60)

// demoFeedback is inserted on an empty database.
var demoFeedback = []models.Feedback{
	{
		User:      "Priya S.",
		Station:   "Dadar",
		Category:  "Safety Concern",
		Message:   "Poor lighting near platform 3 after 11 PM. Very unsafe for women traveling alone. Request immediate attention.",
		CreatedAt: time.Date(2024, 1, 15, 23, 30, 0, 0, ist),
		Upvotes:   15,
		Downvotes: 2,
		Priority:  models.PriorityHigh,
	},
	{
		User:      "Anita M.",
		Station:   "Bandra",
		Category:  "Positive",
		Message:   "Excellent security arrangements during late hours. Female constable was very helpful and approachable.",
		CreatedAt: time.Date(2024, 1, 15, 22, 45, 0, 0, ist),
		Upvotes:   8,
		Downvotes: 0,
		Priority:  models.PriorityLow,
	},
	{
		User:      "Meera K.",
		Station:   "Andheri",
		Category:  "Harassment",
		Message:   "Experienced inappropriate behavior from a group near the ticket counter. Station staff should be more vigilant.",
		CreatedAt: time.Date(2024, 1, 14, 21, 15, 0, 0, ist),
		Upvotes:   12,
		Downvotes: 1,
		Priority:  models.PriorityHigh,
	},
	{
		User:      "Kavya P.",
		Station:   "Churchgate",
		Category:  "Facility",
		Message:   "Ladies waiting room is well-maintained and feels safe. Good job by the authorities!",
		CreatedAt: time.Date(2024, 1, 14, 20, 30, 0, 0, ist),
		Upvotes:   6,
		Downvotes: 0,
		Priority:  models.PriorityLow,
	},
}

// PriorityFor maps a category to the priority a new item gets.
func PriorityFor(category string) string {
	switch category {
	case "Emergency", "Harassment":
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}

type FeedbackService struct {
	repo     repository.FeedbackRepo
	users    repository.Authorization
	stations Stations
	events   EventLog
	alerts   Alerts
	log      *logger.Logger
	now      func() time.Time
}

func NewFeedbackService(repo repository.FeedbackRepo, users repository.Authorization, stations Stations,
	events EventLog, alerts Alerts, log *logger.Logger) *FeedbackService {
	if log == nil {
		log = logger.Nop()
	}
	return &FeedbackService{
		repo:     repo,
		users:    users,
		stations: stations,
		events:   events,
		alerts:   alerts,
		log:      log.Named("feedback"),
		now:      time.Now,
	}
}

func (s *FeedbackService) CreateFeedback(ctx context.Context, userID int, in FeedbackInput) (models.Feedback, error) {
	station := strings.TrimSpace(in.Station)
	category := strings.TrimSpace(in.Category)
	message := strings.TrimSpace(in.Message)

	fields := validation.Fields{}
	switch {
	case station == "":
		fields["station"] = "Station is required"
	case !s.stations.IsKnownStation(station):
		fields["station"] = "Unknown station"
	}
	switch {
	case category == "":
		fields["category"] = "Category is required"
	case !isCategory(category):
		fields["category"] = "Unknown category"
	}
	if message == "" {
		fields["message"] = "Message is required"
	}
	if err := fields.Err(); err != nil {
		return models.Feedback{}, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Feedback{}, err
	}
	if u == nil {
		return models.Feedback{}, ErrUserNotFound
	}

	f := models.Feedback{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		User:      u.DisplayName(),
		Station:   canonicalStation(s.stations, station),
		Category:  category,
		Message:   message,
		CreatedAt: s.now().UTC(),
		Priority:  PriorityFor(category),
		Status:    models.FeedbackActive,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return models.Feedback{}, err
	}

	if f.Priority == models.PriorityHigh {
		s.flagForPolice(ctx, u.Username, f)
	}
	return f, nil
}

// flagForPolice logs the event and pushes an alert; failures do not undo
// the stored feedback.
func (s *FeedbackService) flagForPolice(ctx context.Context, username string, f models.Feedback) {
	_ = s.events.Record(ctx, models.Event{
		Username:    username,
		Type:        models.EventFeedbackHighPriority,
		Description: "High priority feedback flagged for police review",
		Metadata:    map[string]any{"feedback_id": f.ID, "station": f.Station, "category": f.Category},
	})
	_, err := s.alerts.Publish(ctx, models.Alert{
		Source:   models.AlertSourceFeedback,
		Username: username,
		Station:  f.Station,
		Status:   models.AlertUnsafe,
		Message:  fmt.Sprintf("%s reported at %s", f.Category, f.Station),
	})
	if err != nil {
		s.log.Errorw("feedback_alert_failed", "feedback_id", f.ID, "err", err)
	}
}

func (s *FeedbackService) ListFeedback(ctx context.Context, f repository.FeedbackFilter) ([]models.Feedback, error) {
	return s.repo.ListActive(ctx, f)
}

// Vote applies one vote and returns the updated item. Hidden items take no votes.
func (s *FeedbackService) Vote(ctx context.Context, id, direction string) (models.Feedback, error) {
	var up bool
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case VoteUp:
		up = true
	case VoteDown:
	default:
		return models.Feedback{}, ErrInvalidDirection
	}

	if err := s.repo.Vote(ctx, id, up, HideAtDownvotes); err != nil {
		if !repository.IsNotFound(err) {
			s.log.Errorw("feedback_vote_failed", "feedback_id", id, "err", err)
			return models.Feedback{}, err
		}
		// nothing active matched: unknown id or already hidden
		cur, gerr := s.repo.Get(ctx, id)
		if gerr != nil {
			return models.Feedback{}, gerr
		}
		if cur == nil {
			return models.Feedback{}, ErrFeedbackNotFound
		}
		return models.Feedback{}, ErrFeedbackHidden
	}

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Feedback{}, err
	}
	if updated == nil {
		return models.Feedback{}, ErrFeedbackNotFound
	}
	if !up && updated.Status == models.FeedbackHidden && updated.Downvotes == HideAtDownvotes {
		s.log.Infow("feedback_hidden", "feedback_id", id, "downvotes", updated.Downvotes)
	}
	return *updated, nil
}

func (s *FeedbackService) FeedbackStats(ctx context.Context) (models.FeedbackStats, error) {
	return s.repo.Stats(ctx)
}

// SeedFeedback inserts the demo items when the table is empty.
func (s *FeedbackService) SeedFeedback(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, f := range demoFeedback {
		f.ID = uuid.NewString()
		f.Status = models.FeedbackActive
		if err := s.repo.Create(ctx, f); err != nil {
			return fmt.Errorf("seed feedback: %w", err)
		}
	}
	s.log.Infow("feedback_seeded", "count", len(demoFeedback))
	return nil
}

func isCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// canonicalStation returns the index spelling of a known station name.
func canonicalStation(stations Stations, name string) string {
	for _, st := range stations.Index() {
		if strings.EqualFold(st.Name, name) {
			return st.Name
		}
	}
	return name
}
