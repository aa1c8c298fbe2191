package handlers

import (
	"time"

	"saferail/internal/logger"
	"saferail/internal/ratelimit"
	"saferail/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tune the HTTP layer. Zero values fall back to defaults.
type Options struct {
	Limiter     ratelimit.Limiter
	VerifyRule  ratelimit.Rule
	LoginRule   ratelimit.Rule
	UploadsDir  string
	MaxUpload   int64
	StreamLimit int
}

const (
	defaultMaxUpload   = 8 << 20
	defaultStreamLimit = 20
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.Limiter == nil {
		opts.Limiter = ratelimit.NewMemory()
	}
	if opts.VerifyRule.Limit <= 0 {
		opts.VerifyRule = ratelimit.Rule{Name: "verify", Limit: 3, Window: time.Hour}
	}
	if opts.LoginRule.Limit <= 0 {
		opts.LoginRule = ratelimit.Rule{Name: "login", Limit: 5, Window: 15 * time.Minute}
	}
	if opts.UploadsDir == "" {
		opts.UploadsDir = "uploads"
	}
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = defaultMaxUpload
	}
	if opts.StreamLimit <= 0 {
		opts.StreamLimit = defaultStreamLimit
	}
	return &Handler{services: services, log: log.Named("http"), opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery(), h.accessLog)
	router.MaxMultipartMemory = h.opts.MaxUpload

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerPublicRoutes(router)
	h.registerAPIRoutes(router)

	router.GET("/ws/alerts", h.wsUserIdMiddleware, h.wsAlerts)
	router.Static("/uploads", h.opts.UploadsDir)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/verify-gender", h.rateLimitByIP(h.opts.VerifyRule), h.verifyGender)
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

// registerPublicRoutes mounts the unauthenticated surfaces: the quick
// feedback service, the station dataset API and the contact form.
func (h *Handler) registerPublicRoutes(r *gin.Engine) {
	quick := r.Group("/feedback")
	{
		quick.POST("", h.submitQuick)
		quick.GET("", h.listQuick)
		quick.GET("/:id", h.getQuick)
		quick.DELETE("/:id", h.deleteQuick)
	}

	api := r.Group("/api")
	{
		api.GET("/stations", h.stationNames)
		api.GET("/station_analysis", h.stationAnalysis)
		api.POST("/contact", h.submitContact)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.POST("/auth/logout", h.logout)
		h.registerProfileRoutes(api)
		h.registerFeedbackRoutes(api)
		h.registerStationRoutes(api)
		h.registerSafetyRoutes(api)
		h.registerCompartmentRoutes(api)
		h.registerLogRoutes(api)
		api.GET("/reports/weekly", h.weeklyReport)
	}
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.updateProfile)
}

func (h *Handler) registerFeedbackRoutes(api *gin.RouterGroup) {
	fb := api.Group("/feedback")
	{
		// Body example: {"station":"Dadar","category":"Poor Lighting","message":"..."}
		fb.POST("", h.createFeedback)
		fb.GET("", h.listFeedback)
		fb.GET("/stats", h.feedbackStats)
		fb.POST("/:id/vote", h.voteFeedback)
	}
}

func (h *Handler) registerStationRoutes(api *gin.RouterGroup) {
	api.GET("/stations/index", h.stationIndex)
	api.GET("/stations/rankings", h.stationRankings)
	api.GET("/trains", h.listTrains)
	api.GET("/trains/:train/forecast", h.trainForecast)
}

func (h *Handler) registerSafetyRoutes(api *gin.RouterGroup) {
	safety := api.Group("/safety")
	{
		safety.GET("/contacts", h.listContacts)
		safety.POST("/contacts", h.addContact)
		safety.DELETE("/contacts/:id", h.deleteContact)
		safety.POST("/sos", h.sos)
		safety.GET("/helplines", h.helplines)
	}
}

func (h *Handler) registerCompartmentRoutes(api *gin.RouterGroup) {
	api.POST("/compartments/analyze", h.analyzeCompartment)
	api.GET("/alerts", h.listAlerts)
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
