package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"saferail/internal/logger"
	"saferail/internal/models"
)

// Thresholds of the compartment decision.
const (
	minSafePeople = 5
	maxSafePeople = 10
)

// CrowdCounter counts the people visible in a stored compartment photo.
type CrowdCounter interface {
	Count(ctx context.Context, imagePath string) (int, error)
}

// SimulatedCounter returns a pseudo-random head count in [0, Max].
type SimulatedCounter struct {
	mu  sync.Mutex
	rnd *rand.Rand
	Max int
}

func NewSimulatedCounter(seed int64) *SimulatedCounter {
	return &SimulatedCounter{rnd: rand.New(rand.NewSource(seed)), Max: 15}
}

func (c *SimulatedCounter) Count(ctx context.Context, _ string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rnd.Intn(c.Max + 1), nil
}

// Decide maps a head count to an alert status and message.
func Decide(people int) (status, message string) {
	switch {
	case people < minSafePeople:
		return models.AlertUnsafe, fmt.Sprintf("Unsafe: Only %d person(s). Constable dispatched.", people)
	case people <= maxSafePeople:
		return models.AlertUnsafe, fmt.Sprintf("Unsafe: %d people. Constable requested.", people)
	default:
		return models.AlertReject, fmt.Sprintf("Crowded: %d people. Request rejected.", people)
	}
}

type CompartmentService struct {
	counter    CrowdCounter
	alerts     Alerts
	events     EventLog
	uploadsDir string
	log        *logger.Logger
	now        func() time.Time
}

func NewCompartmentService(counter CrowdCounter, alerts Alerts, events EventLog, uploadsDir string, log *logger.Logger) *CompartmentService {
	if counter == nil {
		counter = NewSimulatedCounter(time.Now().UnixNano())
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CompartmentService{
		counter:    counter,
		alerts:     alerts,
		events:     events,
		uploadsDir: uploadsDir,
		log:        log.Named("compartment"),
		now:        time.Now,
	}
}

// Analyze stores the photo, counts people and raises an alert with the decision.
func (s *CompartmentService) Analyze(ctx context.Context, in CompartmentUpload) (AnalyzeResult, error) {
	if in.Image == nil || strings.TrimSpace(in.Filename) == "" {
		return AnalyzeResult{}, ErrImageRequired
	}

	now := s.now().UTC()
	name, path, err := s.save(in.Image, in.Filename, now)
	if err != nil {
		return AnalyzeResult{}, err
	}

	people, err := s.counter.Count(ctx, path)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("count people: %w", err)
	}
	status, message := Decide(people)

	alert, err := s.alerts.Publish(ctx, models.Alert{
		CreatedAt:   now,
		Source:      models.AlertSourceCompartment,
		Username:    in.Username,
		Train:       in.Train,
		Compartment: in.Compartment,
		Lat:         in.Lat,
		Lon:         in.Lon,
		PeopleCount: &people,
		Status:      status,
		Message:     message,
		Image:       name,
	})
	if err != nil {
		return AnalyzeResult{}, err
	}

	if status == models.AlertUnsafe {
		_ = s.events.Record(ctx, models.Event{
			Username:    in.Username,
			Type:        models.EventConstableDispatch,
			Description: message,
			Metadata:    map[string]any{"alert_id": alert.ID, "train": in.Train, "compartment": in.Compartment, "people_count": people},
		})
	}
	s.log.Infow("compartment_analyzed", "alert_id", alert.ID, "people_count", people, "status", status)

	return AnalyzeResult{PeopleCount: people, Status: status, Message: message, AlertID: alert.ID}, nil
}

func (s *CompartmentService) save(r io.Reader, filename string, now time.Time) (string, string, error) {
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create uploads dir: %w", err)
	}
	base := filepath.Base(filepath.Clean("/" + filename))
	if base == "/" || base == "." {
		base = "upload"
	}
	base = strings.ReplaceAll(base, " ", "_")
	name := fmt.Sprintf("%d_%s", now.UnixNano(), base)
	path := filepath.Join(s.uploadsDir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("close %s: %w", name, err)
	}
	return name, path, nil
}
