package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"saferail/internal/models"
	"saferail/internal/repository"
	"saferail/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signInRes service.SignInResult
	signInErr error
	parseID   int
	parseErr  error

	lastSignInUsername string
	lastSignInPassword string
	lastParseToken     string
	signInCalls        int
}

func (m *mockAuth) SignIn(_ context.Context, username, password string) (service.SignInResult, error) {
	m.signInCalls++
	m.lastSignInUsername = username
	m.lastSignInPassword = password
	return m.signInRes, m.signInErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) Logout(_ context.Context, _ int) (models.Session, error) {
	return models.Session{Username: "priya"}, nil
}

type mockRegistration struct {
	ticket    string
	verifyErr error
	signUpID  int
	signUpErr error

	lastNumber string
	lastSignUp service.SignUpInput
}

func (m *mockRegistration) VerifyGender(_ context.Context, number []byte) (string, error) {
	m.lastNumber = string(number)
	for i := range number {
		number[i] = 0
	}
	return m.ticket, m.verifyErr
}
func (m *mockRegistration) SignUp(_ context.Context, in service.SignUpInput) (int, error) {
	m.lastSignUp = in
	return m.signUpID, m.signUpErr
}

type mockProfile struct {
	user       *models.User
	err        error
	lastUpdate service.ProfileUpdate
}

func (m *mockProfile) GetProfile(context.Context, int) (*models.User, error) {
	return m.user, m.err
}
func (m *mockProfile) UpdateProfile(_ context.Context, _ int, in service.ProfileUpdate) (*models.User, error) {
	m.lastUpdate = in
	return m.user, m.err
}

type mockFeedback struct {
	item       models.Feedback
	items      []models.Feedback
	err        error
	lastUserID int
	lastInput  service.FeedbackInput
	lastFilter repository.FeedbackFilter
	lastVote   string
}

func (m *mockFeedback) CreateFeedback(_ context.Context, userID int, in service.FeedbackInput) (models.Feedback, error) {
	m.lastUserID = userID
	m.lastInput = in
	return m.item, m.err
}
func (m *mockFeedback) ListFeedback(_ context.Context, f repository.FeedbackFilter) ([]models.Feedback, error) {
	m.lastFilter = f
	return m.items, m.err
}
func (m *mockFeedback) Vote(_ context.Context, _ string, direction string) (models.Feedback, error) {
	m.lastVote = direction
	return m.item, m.err
}
func (m *mockFeedback) FeedbackStats(context.Context) (models.FeedbackStats, error) {
	return models.FeedbackStats{TotalActive: len(m.items)}, m.err
}
func (m *mockFeedback) SeedFeedback(context.Context) error { return nil }

type mockQuick struct {
	item    models.QuickFeedback
	err     error
	deleted []string
}

func (m *mockQuick) SubmitQuick(_ context.Context, typ string, msg *string) (models.QuickFeedback, error) {
	return models.QuickFeedback{ID: "q1", Type: typ, Message: msg}, m.err
}
func (m *mockQuick) ListQuick(context.Context) ([]models.QuickFeedback, error) {
	return []models.QuickFeedback{m.item}, m.err
}
func (m *mockQuick) GetQuick(context.Context, string) (*models.QuickFeedback, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.item, nil
}
func (m *mockQuick) DeleteQuick(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

type mockStationAnalysis struct {
	names      []string
	readings   []models.StationReading
	err        error
	lastPrefix string
}

func (m *mockStationAnalysis) LoadDataset(context.Context, []models.StationReading) error { return nil }
func (m *mockStationAnalysis) StationNames(_ context.Context, prefix string) ([]string, error) {
	m.lastPrefix = prefix
	return m.names, m.err
}
func (m *mockStationAnalysis) Analysis(context.Context, string) ([]models.StationReading, error) {
	return m.readings, m.err
}

type mockSafety struct {
	contacts  []models.EmergencyContact
	sosRes    service.SOSResult
	err       error
	lastSOS   service.SOSRequest
	deletedID int
}

func (m *mockSafety) Contacts(context.Context, int) ([]models.EmergencyContact, error) {
	return m.contacts, m.err
}
func (m *mockSafety) AddContact(_ context.Context, _ int, name, number string) (models.EmergencyContact, error) {
	return models.EmergencyContact{ID: 1, Name: name, Number: number}, m.err
}
func (m *mockSafety) DeleteContact(_ context.Context, _ int, id int) error {
	m.deletedID = id
	return m.err
}
func (m *mockSafety) SOS(_ context.Context, _ int, in service.SOSRequest) (service.SOSResult, error) {
	m.lastSOS = in
	return m.sosRes, m.err
}
func (m *mockSafety) Helplines() []models.Helpline {
	return []models.Helpline{{Title: "Railway Police", Number: "182"}}
}

type mockCompartments struct {
	res      service.AnalyzeResult
	err      error
	lastBody string
	last     service.CompartmentUpload
}

func (m *mockCompartments) Analyze(_ context.Context, in service.CompartmentUpload) (service.AnalyzeResult, error) {
	m.last = in
	if in.Image != nil {
		b, _ := io.ReadAll(in.Image)
		m.lastBody = string(b)
	}
	return m.res, m.err
}

// mockAlerts serves a fixed snapshot and lets tests push live alerts.
type mockAlerts struct {
	mu        sync.Mutex
	recent    []models.Alert
	err       error
	lastLimit int
	live      chan models.Alert
}

func newMockAlerts(recent ...models.Alert) *mockAlerts {
	return &mockAlerts{recent: recent, live: make(chan models.Alert, 4)}
}

func (m *mockAlerts) Publish(_ context.Context, a models.Alert) (models.Alert, error) {
	m.live <- a
	return a, nil
}
func (m *mockAlerts) Recent(_ context.Context, limit int) ([]models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	return m.recent, m.err
}
func (m *mockAlerts) Subscribe() (<-chan models.Alert, func()) {
	return m.live, func() {}
}

type mockEventLog struct {
	resp     []models.Event
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) Record(context.Context, models.Event) error { return nil }
func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.Event, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockReports struct {
	err error
}

func (m *mockReports) WriteWeekly(_ context.Context, w io.Writer, _ time.Time) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	_, _ = w.Write([]byte("PK"))
	return "weekly_report_2026-10-12.xlsx", nil
}
func (m *mockReports) Run(context.Context, time.Duration) {}

type mockContact struct {
	err  error
	last models.ContactMessage
}

func (m *mockContact) SubmitContact(_ context.Context, msg models.ContactMessage) (int, error) {
	m.last = msg
	return 7, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWithOptions(s, Options{})
}

func newTestRouterWithOptions(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// serve runs one request through r. A non-empty token is sent as a bearer token.
func serve(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
