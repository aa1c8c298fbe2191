package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"saferail/internal/models"
	"saferail/internal/repository"
)

// fakeUserRepo is an in-memory repository.Authorization.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[int]models.User
	nextID  int
	touched map[int]time.Time
	err     error
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int]models.User), touched: make(map[int]time.Time), nextID: 1}
	for _, u := range users {
		if u.ID == 0 {
			u.ID = r.nextID
		}
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u models.User) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	for _, ex := range r.users {
		if ex.Username == u.Username || ex.Email == u.Email {
			return 0, fmt.Errorf("insert user %q: %w", u.Username, repository.ErrDuplicate)
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return u.ID, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) UpdateContact(_ context.Context, id int, email, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.users {
		if ex.ID != id && ex.Email == email {
			return repository.ErrDuplicate
		}
	}
	u := r.users[id]
	u.Email, u.PhoneNumber = email, phone
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) TouchLogin(_ context.Context, id int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched[id] = at
	u := r.users[id]
	u.LastLoginAt = &at
	r.users[id] = u
	return nil
}

// fakeFeedbackRepo mimics the SQL semantics of FeedbackSQLite.
type fakeFeedbackRepo struct {
	mu    sync.Mutex
	items map[string]models.Feedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{items: make(map[string]models.Feedback)}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, f models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[f.ID] = f
	return nil
}

func (r *fakeFeedbackRepo) Get(_ context.Context, id string) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *fakeFeedbackRepo) ListActive(_ context.Context, filter repository.FeedbackFilter) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Feedback
	for _, f := range r.items {
		if f.Status != models.FeedbackActive {
			continue
		}
		if filter.Station != "" && !strings.EqualFold(filter.Station, f.Station) {
			continue
		}
		if filter.Priority != "" && !strings.EqualFold(filter.Priority, f.Priority) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeFeedbackRepo) ListSince(_ context.Context, since time.Time) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Feedback
	for _, f := range r.items {
		if !f.CreatedAt.Before(since) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) Vote(_ context.Context, id string, up bool, hideAt int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[id]
	if !ok || f.Status != models.FeedbackActive {
		return fmt.Errorf("vote feedback %s: %w", id, sql.ErrNoRows)
	}
	if up {
		f.Upvotes++
	} else {
		f.Downvotes++
	}
	if f.Downvotes >= hideAt {
		f.Status = models.FeedbackHidden
	}
	r.items[id] = f
	return nil
}

func (r *fakeFeedbackRepo) Stats(_ context.Context) (models.FeedbackStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s models.FeedbackStats
	for _, f := range r.items {
		if f.Status == models.FeedbackActive {
			s.TotalActive++
			if f.Priority == models.PriorityHigh {
				s.HighPriority++
			}
		}
	}
	return s, nil
}

func (r *fakeFeedbackRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	// captured inputs
	gotCtx  context.Context
	gotFrom time.Time
	gotTo   time.Time
	gotType string

	// configured outputs
	events    []models.Event
	err       error
	appendErr error

	appended []models.Event
	calls    int
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error) {
	f.calls++
	f.gotCtx = ctx
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(_ context.Context, e models.Event) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

// recordingEvents is an EventLog that keeps what was recorded.
type recordingEvents struct {
	mu     sync.Mutex
	events []models.Event
}

func (r *recordingEvents) Record(_ context.Context, e models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingEvents) List(context.Context, LogFilter) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Event(nil), r.events...), nil
}

func (r *recordingEvents) ofType(typ string) []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Event
	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts []models.Alert
	err    error
}

func (r *fakeAlertRepo) Create(_ context.Context, a models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *fakeAlertRepo) ListRecent(_ context.Context, limit int) ([]models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Alert, 0, len(r.alerts))
	for i := len(r.alerts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.alerts[i])
	}
	return out, nil
}

func (r *fakeAlertRepo) ListSince(_ context.Context, since time.Time) ([]models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Alert
	for _, a := range r.alerts {
		if !a.CreatedAt.Before(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeContactRepo struct {
	contacts []models.EmergencyContact
	nextID   int
}

func (r *fakeContactRepo) Add(_ context.Context, c models.EmergencyContact) (int, error) {
	r.nextID++
	c.ID = r.nextID
	r.contacts = append(r.contacts, c)
	return c.ID, nil
}

func (r *fakeContactRepo) List(_ context.Context, userID int) ([]models.EmergencyContact, error) {
	var out []models.EmergencyContact
	for _, c := range r.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) Delete(_ context.Context, userID, id int) (bool, error) {
	for i, c := range r.contacts {
		if c.ID == id && c.UserID == userID {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	fail map[string]bool
}

func (n *fakeNotifier) Send(_ context.Context, to, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail[to] {
		return errors.New("undeliverable")
	}
	n.sent = append(n.sent, to)
	return nil
}

type fixedCounter struct{ n int }

func (c fixedCounter) Count(context.Context, string) (int, error) { return c.n, nil }

func newTestTokens() *tokenIssuer {
	return newTokenIssuer("test-secret", time.Hour, 15*time.Minute)
}

func newFakeUserRepoUser() *models.User {
	return &models.User{ID: 1, FullName: "Priya Sharma", Username: "priya", Email: "priya@example.com", IsFemale: true}
}

type fakeQuickRepo struct {
	items []models.QuickFeedback
}

func (r *fakeQuickRepo) Create(_ context.Context, f models.QuickFeedback) error {
	r.items = append(r.items, f)
	return nil
}

func (r *fakeQuickRepo) List(context.Context) ([]models.QuickFeedback, error) {
	return append([]models.QuickFeedback(nil), r.items...), nil
}

func (r *fakeQuickRepo) Get(_ context.Context, id string) (*models.QuickFeedback, error) {
	for _, f := range r.items {
		if f.ID == id {
			cp := f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeQuickRepo) Delete(_ context.Context, id string) error {
	for i, f := range r.items {
		if f.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	return nil
}

type fakeMessageRepo struct {
	saved []models.ContactMessage
}

func (r *fakeMessageRepo) Create(_ context.Context, m models.ContactMessage) (int, error) {
	r.saved = append(r.saved, m)
	return len(r.saved), nil
}

type fakeStationRepo struct {
	readings []models.StationReading
	err      error
}

func (r *fakeStationRepo) ReplaceAll(_ context.Context, readings []models.StationReading) error {
	if r.err != nil {
		return r.err
	}
	r.readings = append([]models.StationReading(nil), readings...)
	return nil
}

func (r *fakeStationRepo) Names(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, rd := range r.readings {
		if !seen[rd.Station] {
			seen[rd.Station] = true
			out = append(out, rd.Station)
		}
	}
	return out, nil
}

func (r *fakeStationRepo) ByStation(_ context.Context, name string) ([]models.StationReading, error) {
	var out []models.StationReading
	for _, rd := range r.readings {
		if strings.EqualFold(rd.Station, name) {
			out = append(out, rd)
		}
	}
	return out, nil
}
