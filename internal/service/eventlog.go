package service

import (
	"context"
	"strings"
	"time"

	"saferail/internal/logger"
	"saferail/internal/models"
	"saferail/internal/repository"

	"github.com/google/uuid"
)

// EventSink receives a copy of every recorded event (the MongoDB mirror).
type EventSink interface {
	Append(ctx context.Context, e models.Event) error
}

type EventLogService struct {
	eventRepo repository.EventRepo
	mirror    EventSink
	log       *logger.Logger
}

func NewEventLogService(eventRepo repository.EventRepo, mirror EventSink, log *logger.Logger) *EventLogService {
	if log == nil {
		log = logger.Nop()
	}
	return &EventLogService{eventRepo: eventRepo, mirror: mirror, log: log.Named("eventlog")}
}

// Record stores e and mirrors it. A mirror failure is logged, never returned.
func (s *EventLogService) Record(ctx context.Context, e models.Event) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	e.Type = normalizeEventType(e.Type)

	if err := s.eventRepo.Append(ctx, e); err != nil {
		s.log.Errorw("event_append_failed", "type", e.Type, "username", e.Username, "err", err)
		return err
	}
	if s.mirror != nil {
		if err := s.mirror.Append(ctx, e); err != nil {
			s.log.Warnw("event_mirror_failed", "type", e.Type, "err", err)
		}
	}
	return nil
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.Event, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}
