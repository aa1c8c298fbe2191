// @title           SafeRail Women API
// @version         1.0
// @description     Women's safety backend for Mumbai local trains.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "saferail/docs"
	"saferail/internal/config"
	"saferail/internal/dataset"
	"saferail/internal/handlers"
	"saferail/internal/logger"
	"saferail/internal/notify"
	"saferail/internal/ratelimit"
	"saferail/internal/repository"
	"saferail/internal/repository/db"
	eventmongo "saferail/internal/repository/mongo"
	"saferail/internal/server"
	"saferail/internal/service"
	"saferail/internal/verification"

	"github.com/gin-gonic/gin"
)

const startupTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Getenv("SAFERAIL_CONFIG"))
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Init(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = log.Sync() }()
	gin.SetMode(cfg.Server.Mode)

	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mirror, closeMirror := openMirror(ctx, cfg, log)
	defer closeMirror()

	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Deps{
		Verifier:   verification.NewMockVerifier(cfg.Verification.Delay),
		Notifier:   newNotifier(cfg, log),
		Mirror:     mirror,
		Log:        log,
		JWTSecret:  cfg.JWT.Secret,
		TokenTTL:   cfg.JWT.TTL,
		TicketTTL:  cfg.JWT.TicketTTL,
		UploadsDir: cfg.Uploads.Dir,
		ReportsDir: cfg.Reports.Dir,
	})

	loadStations(ctx, cfg, services, log)
	if err := services.SeedFeedback(ctx); err != nil {
		log.Warnw("feedback seed failed", "err", err)
	}

	go services.Reports.Run(ctx, cfg.Reports.Tick)

	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		Limiter:     newLimiter(ctx, cfg, log),
		VerifyRule:  ratelimit.Rule{Name: "verify", Limit: cfg.RateLimit.VerifyAttempts, Window: cfg.RateLimit.VerifyWindow},
		LoginRule:   ratelimit.Rule{Name: "login", Limit: cfg.RateLimit.LoginAttempts, Window: cfg.RateLimit.LoginWindow},
		UploadsDir:  cfg.Uploads.Dir,
		MaxUpload:   cfg.Uploads.MaxSize,
		StreamLimit: cfg.Alerts.StreamLimit,
	})

	srv := &server.Server{}
	runHTTPServer(srv, cfg, server.WithCORS(apiHandler.InitRoutes(), cfg.CORS.AllowedOrigins), log)

	waitForShutdown(cancel, srv, cfg.Server.ShutdownTimeout, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DB.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "saferail.db")
		path = "saferail.db"
	}
	return db.InitDB(path)
}

// loadStations fills the station analysis table from the CSV dataset. A
// missing file only disables the analysis endpoints.
func loadStations(ctx context.Context, cfg *config.Config, services *service.Service, log *logger.Logger) {
	readings, err := dataset.LoadFile(cfg.Dataset.StationCSV)
	if err != nil {
		log.Warnw("station dataset not loaded", "path", cfg.Dataset.StationCSV, "err", err)
		return
	}
	if err := services.LoadDataset(ctx, readings); err != nil {
		log.Warnw("station dataset not stored", "err", err)
		return
	}
	log.Infow("station dataset loaded", "rows", len(readings))
}

// newLimiter shares counters through Redis when configured.
func newLimiter(ctx context.Context, cfg *config.Config, log *logger.Logger) ratelimit.Limiter {
	if cfg.Redis.Addr == "" {
		return ratelimit.NewMemory()
	}
	pingCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	client, err := ratelimit.NewRedisClient(pingCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warnw("redis unavailable; using in-memory rate limits", "err", err)
		return ratelimit.NewMemory()
	}
	log.Infow("rate limits backed by redis", "addr", cfg.Redis.Addr)
	return ratelimit.NewRedis(client)
}

// openMirror connects the MongoDB event mirror when a URI is configured.
func openMirror(ctx context.Context, cfg *config.Config, log *logger.Logger) (service.EventSink, func()) {
	noop := func() {}
	if cfg.Mongo.URI == "" {
		return nil, noop
	}
	connCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	client, err := eventmongo.Connect(connCtx, cfg.Mongo.URI)
	if err != nil {
		log.Warnw("mongo unavailable; events stay in sqlite only", "err", err)
		return nil, noop
	}
	closeFn := func() {
		dctx, dcancel := context.WithTimeout(context.Background(), startupTimeout)
		defer dcancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Errorw("failed to disconnect mongo", "err", err)
		}
	}
	return eventmongo.NewEventMirror(client, cfg.Mongo.Database, cfg.Mongo.Collection), closeFn
}

func newNotifier(cfg *config.Config, log *logger.Logger) notify.Notifier {
	if cfg.Twilio.AccountSID == "" {
		log.Infow("twilio not configured; SOS messages are only logged")
		return notify.NewLog(log)
	}
	return notify.NewSMS(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg *config.Config, handler http.Handler, log *logger.Logger) {
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the report scheduler and websocket feeds
	cancel()

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
