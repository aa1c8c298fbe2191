package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"saferail/internal/logger"
	"saferail/internal/models"
	"saferail/internal/notify"
	"saferail/internal/repository"
	"saferail/internal/validation"
)

var helplines = []models.Helpline{
	{Title: "Women Helpline", Number: "1091", Description: "24x7 national helpline for women in distress"},
	{Title: "Railway Police", Number: "182", Description: "Railway Protection Force security helpline"},
	{Title: "Police", Number: "100", Description: "Police emergency"},
	{Title: "Medical Emergency", Number: "108", Description: "Ambulance and medical emergency"},
	{Title: "Women Helpline Mumbai", Number: "103", Description: "Mumbai police helpline for women"},
}

type SafetyService struct {
	contacts repository.EmergencyContactRepo
	users    repository.Authorization
	notifier notify.Notifier
	events   EventLog
	alerts   Alerts
	log      *logger.Logger
}

func NewSafetyService(contacts repository.EmergencyContactRepo, users repository.Authorization, n notify.Notifier,
	events EventLog, alerts Alerts, log *logger.Logger) *SafetyService {
	if log == nil {
		log = logger.Nop()
	}
	if n == nil {
		n = notify.NewLog(log)
	}
	return &SafetyService{
		contacts: contacts,
		users:    users,
		notifier: n,
		events:   events,
		alerts:   alerts,
		log:      log.Named("safety"),
	}
}

func (s *SafetyService) Contacts(ctx context.Context, userID int) ([]models.EmergencyContact, error) {
	return s.contacts.List(ctx, userID)
}

func (s *SafetyService) AddContact(ctx context.Context, userID int, name, number string) (models.EmergencyContact, error) {
	name = strings.TrimSpace(validation.SanitizeInput(name))
	fields := validation.Fields{}
	if name == "" {
		fields["name"] = "Name is required"
	}
	fields.Check("number", validation.Phone(number))
	if err := fields.Err(); err != nil {
		return models.EmergencyContact{}, err
	}

	c := models.EmergencyContact{
		UserID:    userID,
		Name:      name,
		Number:    validation.FormatPhone(number),
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.contacts.Add(ctx, c)
	if err != nil {
		return models.EmergencyContact{}, err
	}
	c.ID = id
	return c, nil
}

func (s *SafetyService) DeleteContact(ctx context.Context, userID, id int) error {
	ok, err := s.contacts.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrContactNotFound
	}
	return nil
}

// SOS records the emergency, raises an alert and texts every contact.
// Notification failures are counted, not returned.
func (s *SafetyService) SOS(ctx context.Context, userID int, in SOSRequest) (SOSResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return SOSResult{}, err
	}
	if u == nil {
		return SOSResult{}, ErrUserNotFound
	}
	contacts, err := s.contacts.List(ctx, userID)
	if err != nil {
		return SOSResult{}, err
	}

	_ = s.events.Record(ctx, models.Event{
		Username:    u.Username,
		Type:        models.EventSOS,
		Description: "SOS alert raised",
		Metadata:    map[string]any{"station": in.Station, "lat": in.Lat, "lon": in.Lon, "contacts": len(contacts)},
	})

	alert, err := s.alerts.Publish(ctx, models.Alert{
		Source:   models.AlertSourceSOS,
		Username: u.Username,
		Station:  in.Station,
		Lat:      in.Lat,
		Lon:      in.Lon,
		Status:   models.AlertSent,
		Message:  fmt.Sprintf("SOS from %s", u.DisplayName()),
	})
	if err != nil {
		return SOSResult{}, err
	}

	body := sosMessage(u, in)
	res := SOSResult{Status: models.AlertSent, AlertID: alert.ID}
	for _, c := range contacts {
		if err := s.notifier.Send(ctx, validation.CleanPhone(c.Number), body); err != nil {
			res.Failed++
			s.log.Warnw("sos_notify_failed", "contact_id", c.ID, "err", err)
			continue
		}
		res.Notified++
	}
	s.log.Infow("sos_sent", "username", u.Username, "notified", res.Notified, "failed", res.Failed)
	return res, nil
}

func (s *SafetyService) Helplines() []models.Helpline {
	out := make([]models.Helpline, len(helplines))
	copy(out, helplines)
	return out
}

func sosMessage(u *models.User, in SOSRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SOS: %s needs help.", u.FullName)
	if in.Station != "" {
		fmt.Fprintf(&b, " Near %s station.", in.Station)
	}
	if in.Lat != "" && in.Lon != "" {
		fmt.Fprintf(&b, " Location: https://maps.google.com/?q=%s,%s", in.Lat, in.Lon)
	}
	b.WriteString(" Railway police: 182.")
	return b.String()
}
