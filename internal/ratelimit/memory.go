package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepThreshold = 1024

type window struct {
	start  time.Time
	length time.Duration
	count  int
}

// Memory keeps windows in process. Used when no Redis address is configured.
type Memory struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{windows: make(map[string]*window), now: time.Now}
}

var _ Limiter = (*Memory)(nil)

func (m *Memory) Allow(_ context.Context, rule Rule, key string) (Decision, error) {
	k := keyFor(rule, key)
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[k]
	if !ok || now.Sub(w.start) >= rule.Window {
		w = &window{start: now, length: rule.Window}
		m.windows[k] = w
	}
	w.count++
	m.sweep(now)

	return decide(rule, w.count, w.start.Add(rule.Window).Sub(now)), nil
}

func (m *Memory) Reset(_ context.Context, rule Rule, key string) error {
	m.mu.Lock()
	delete(m.windows, keyFor(rule, key))
	m.mu.Unlock()
	return nil
}

// sweep drops expired windows once the map grows; caller holds mu.
// Each window expires by its own rule's length.
func (m *Memory) sweep(now time.Time) {
	if len(m.windows) < sweepThreshold {
		return
	}
	for k, w := range m.windows {
		if now.Sub(w.start) >= w.length {
			delete(m.windows, k)
		}
	}
}
