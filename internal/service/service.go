package service

import (
	"context"
	"io"
	"time"

	"saferail/internal/logger"
	"saferail/internal/models"
	"saferail/internal/notify"
	"saferail/internal/repository"
	"saferail/internal/verification"
)

type Authorization interface {
	SignIn(ctx context.Context, username, password string) (SignInResult, error)
	ParseToken(accessToken string) (int, error)
	Logout(ctx context.Context, userID int) (models.Session, error)
}

// Registration is the two-call sign-up wizard: identity check, then account form.
type Registration interface {
	VerifyGender(ctx context.Context, aadhaar []byte) (string, error)
	SignUp(ctx context.Context, in SignUpInput) (int, error)
}

type Profile interface {
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, in ProfileUpdate) (*models.User, error)
}

// Feedback is the community station feedback portal.
type Feedback interface {
	CreateFeedback(ctx context.Context, userID int, in FeedbackInput) (models.Feedback, error)
	ListFeedback(ctx context.Context, f repository.FeedbackFilter) ([]models.Feedback, error)
	Vote(ctx context.Context, id, direction string) (models.Feedback, error)
	FeedbackStats(ctx context.Context) (models.FeedbackStats, error)
	SeedFeedback(ctx context.Context) error
}

type QuickFeedback interface {
	SubmitQuick(ctx context.Context, typ string, message *string) (models.QuickFeedback, error)
	ListQuick(ctx context.Context) ([]models.QuickFeedback, error)
	GetQuick(ctx context.Context, id string) (*models.QuickFeedback, error)
	DeleteQuick(ctx context.Context, id string) error
}

// Stations exposes the static station safety index.
type Stations interface {
	Index() []models.Station
	Rankings() []models.Station
	Trains() []string
	Forecast(train string) ([]models.Station, error)
	IsKnownStation(name string) bool
}

// StationAnalysis serves the hourly crowd/safety dataset.
type StationAnalysis interface {
	LoadDataset(ctx context.Context, readings []models.StationReading) error
	StationNames(ctx context.Context, prefix string) ([]string, error)
	Analysis(ctx context.Context, name string) ([]models.StationReading, error)
}

type Safety interface {
	Contacts(ctx context.Context, userID int) ([]models.EmergencyContact, error)
	AddContact(ctx context.Context, userID int, name, number string) (models.EmergencyContact, error)
	DeleteContact(ctx context.Context, userID, id int) error
	SOS(ctx context.Context, userID int, in SOSRequest) (SOSResult, error)
	Helplines() []models.Helpline
}

type Compartments interface {
	Analyze(ctx context.Context, in CompartmentUpload) (AnalyzeResult, error)
}

// Alerts persists alerts and fans them out to live subscribers.
type Alerts interface {
	Publish(ctx context.Context, a models.Alert) (models.Alert, error)
	Recent(ctx context.Context, limit int) ([]models.Alert, error)
	Subscribe() (<-chan models.Alert, func())
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	Record(ctx context.Context, e models.Event) error
	List(ctx context.Context, f LogFilter) ([]models.Event, error)
}

// Reports builds weekly workbooks. Run writes one every Sunday 23:59 until
// ctx is canceled.
type Reports interface {
	WriteWeekly(ctx context.Context, w io.Writer, now time.Time) (string, error)
	Run(ctx context.Context, tick time.Duration)
}

type Contact interface {
	SubmitContact(ctx context.Context, m models.ContactMessage) (int, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Registration
	Profile
	Feedback
	QuickFeedback
	Stations
	StationAnalysis
	Safety
	Compartments
	Alerts
	EventLog
	Reports
	Contact
}

// Deps are the non-repository collaborators of the services.
type Deps struct {
	Verifier verification.Verifier
	Notifier notify.Notifier
	Counter  CrowdCounter
	Mirror   EventSink // optional
	Log      *logger.Logger

	JWTSecret  string
	TokenTTL   time.Duration
	TicketTTL  time.Duration
	UploadsDir string
	ReportsDir string
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	events := NewEventLogService(repos.EventRepo, deps.Mirror, log)
	alerts := NewAlertService(repos.Alerts, NewHub())
	stations := NewStationService()
	tokens := newTokenIssuer(deps.JWTSecret, deps.TokenTTL, deps.TicketTTL)

	return &Service{
		Authorization:   NewAuthService(repos.Auth, events, tokens),
		Registration:    NewRegistrationService(repos.Auth, deps.Verifier, tokens),
		Profile:         NewProfileService(repos.Auth),
		Feedback:        NewFeedbackService(repos.Feedback, repos.Auth, stations, events, alerts, log),
		QuickFeedback:   NewQuickFeedbackService(repos.QuickFeedback),
		Stations:        stations,
		StationAnalysis: NewStationAnalysisService(repos.Stations),
		Safety:          NewSafetyService(repos.EmergencyContacts, repos.Auth, deps.Notifier, events, alerts, log),
		Compartments:    NewCompartmentService(deps.Counter, alerts, events, deps.UploadsDir, log),
		Alerts:          alerts,
		EventLog:        events,
		Reports:         NewReportService(repos.Feedback, repos.Alerts, deps.ReportsDir, log),
		Contact:         NewContactService(repos.ContactMessages),
	}
}
