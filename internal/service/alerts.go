package service

import (
	"context"
	"sync"
	"time"

	"saferail/internal/models"
	"saferail/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultAlertLimit = 50
	maxAlertLimit     = 500

	subscriberBuffer = 16
)

// Hub fans alerts out to websocket subscribers. Slow subscribers miss
// alerts rather than block publishers; they still get the periodic snapshot.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan models.Alert
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan models.Alert)}
}

// Subscribe returns a channel of new alerts and a function that unsubscribes
// and closes it.
func (h *Hub) Subscribe() (<-chan models.Alert, func()) {
	ch := make(chan models.Alert, subscriberBuffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *Hub) Broadcast(a models.Alert) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- a:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

type AlertService struct {
	repo repository.AlertRepo
	hub  *Hub
}

func NewAlertService(repo repository.AlertRepo, hub *Hub) *AlertService {
	return &AlertService{repo: repo, hub: hub}
}

// Publish fills ID and time when empty, stores the alert and broadcasts it.
func (s *AlertService) Publish(ctx context.Context, a models.Alert) (models.Alert, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return models.Alert{}, err
	}
	s.hub.Broadcast(a)
	return a, nil
}

// Recent returns newest-first alerts; limit is clamped to [1, 500], 0 means 50.
func (s *AlertService) Recent(ctx context.Context, limit int) ([]models.Alert, error) {
	switch {
	case limit <= 0:
		limit = defaultAlertLimit
	case limit > maxAlertLimit:
		limit = maxAlertLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *AlertService) Subscribe() (<-chan models.Alert, func()) {
	return s.hub.Subscribe()
}
