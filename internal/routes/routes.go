package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/campus-wellbeing/counsel-api/internal/audit"
	"github.com/campus-wellbeing/counsel-api/internal/auth"
	"github.com/campus-wellbeing/counsel-api/internal/config"
	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	"github.com/campus-wellbeing/counsel-api/internal/handlers"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	infraRepo "github.com/campus-wellbeing/counsel-api/internal/infra/repository"
	"github.com/campus-wellbeing/counsel-api/internal/middleware"
	"github.com/campus-wellbeing/counsel-api/internal/storage"
	ucAnalytics "github.com/campus-wellbeing/counsel-api/internal/usecase/analytics"
	ucAppointment "github.com/campus-wellbeing/counsel-api/internal/usecase/appointment"
	ucAvailability "github.com/campus-wellbeing/counsel-api/internal/usecase/availability"
	ucIdentity "github.com/campus-wellbeing/counsel-api/internal/usecase/identity"
	ucSession "github.com/campus-wellbeing/counsel-api/internal/usecase/session"
	ucWellbeing "github.com/campus-wellbeing/counsel-api/internal/usecase/wellbeing"
)

// Deps are the singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Redis    *redis.Client
	Audit    *audit.Dispatcher
	Tokens   *auth.TokenIssuer
	Location *time.Location
	Storage  *storage.ObjectStore

	// DomainCheck validates the e-mail domain on register. Nil disables it.
	DomainCheck func(email string) bool
}

// Handlers is everything Mount attaches to the router.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Slots        *handlers.SlotHandler
	Appointments *handlers.AppointmentHandler
	Sessions     *handlers.SessionHandler
	Journals     *handlers.JournalHandler
	Moods        *handlers.MoodHandler
	Counsellors  *handlers.CounsellorHandler
	Analytics    *handlers.AnalyticsHandler
	AuditLogs    *handlers.AuditLogsHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))
	r.Use(middleware.RequestLogger(d.Log))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	sessionRepo := infraRepo.NewSessionGormRepository(d.DB)
	analyticsRepo := infraRepo.NewAnalyticsGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	wellbeingRepo := infraRepo.NewWellbeingGormRepository(d.DB)

	// a nil *ObjectStore must not end up inside a non-nil interface
	var avatars handlers.AvatarStore
	var reports ucAnalytics.ObjectStore
	if d.Storage != nil {
		avatars = d.Storage
		reports = d.Storage
	}

	// ======================================================
	// USE CASES: IDENTITY
	// ======================================================
	registerUC := ucIdentity.NewRegister(
		userRepo,
		d.Tokens,
		d.Audit,
		d.Config.BcryptCost,
		d.DomainCheck,
	)
	loginUC := ucIdentity.NewLogin(userRepo, d.Tokens)
	onboardingUC := ucIdentity.NewCompleteOnboarding(userRepo, d.Audit)
	profileUC := ucIdentity.NewProfile(userRepo)

	// ======================================================
	// USE CASES: AVAILABILITY & APPOINTMENTS
	// ======================================================
	createSlotUC := ucAvailability.NewCreateSlot(availabilityRepo, d.Audit)
	listSlotsUC := ucAvailability.NewListSlots(availabilityRepo)
	deleteSlotUC := ucAvailability.NewDeleteSlot(availabilityRepo, d.Audit)

	bookAppointmentUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		d.Audit,
		d.Location,
	)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		d.Audit,
	)
	listAppointmentsUC := ucAppointment.NewListMyAppointments(appointmentRepo)

	// ======================================================
	// USE CASES: SESSIONS
	// ======================================================
	startSessionUC := ucSession.NewStartSession(sessionRepo, d.Audit)
	endSessionUC := ucSession.NewEndSession(sessionRepo, d.Audit)
	getSessionUC := ucSession.NewGetSession(sessionRepo)
	listSessionsUC := ucSession.NewListSessions(sessionRepo)

	// ======================================================
	// USE CASES: JOURNALS & MOODS
	// ======================================================
	journalsUC := ucWellbeing.NewJournals(wellbeingRepo)
	moodsUC := ucWellbeing.NewMoods(wellbeingRepo, d.Location)

	// ======================================================
	// USE CASES: ANALYTICS
	// ======================================================
	analyticsSvc := ucAnalytics.NewService(analyticsRepo)
	exportOverviewUC := ucAnalytics.NewExportOverview(
		analyticsSvc,
		reports,
		d.Audit,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	h := Handlers{
		Auth: handlers.NewAuthHandler(
			registerUC,
			loginUC,
			onboardingUC,
			profileUC,
			d.Log,
		),
		Slots: handlers.NewSlotHandler(
			createSlotUC,
			listSlotsUC,
			deleteSlotUC,
			d.Log,
		),
		Appointments: handlers.NewAppointmentHandler(
			bookAppointmentUC,
			cancelAppointmentUC,
			listAppointmentsUC,
			d.Log,
		),
		Sessions: handlers.NewSessionHandler(
			startSessionUC,
			endSessionUC,
			getSessionUC,
			listSessionsUC,
			d.Log,
		),
		Journals:    handlers.NewJournalHandler(journalsUC, d.Log),
		Moods:       handlers.NewMoodHandler(moodsUC, d.Log),
		Counsellors: handlers.NewCounsellorHandler(d.DB, avatars, d.Audit, d.Log),
		Analytics:   handlers.NewAnalyticsHandler(analyticsSvc, exportOverviewUC, d.Log),
		AuditLogs:   handlers.NewAuditLogsHandler(d.DB, d.Log),
	}

	rateLimit := middleware.RateLimit(
		d.Redis,
		d.Config.RateLimitWindow,
		d.Config.RateLimitMax,
		d.Log,
	)

	Mount(r, h, d.Tokens, rateLimit)
}

// Mount attaches the route table. Extra middleware (rate limiting) runs
// in front of every /api route.
func Mount(r *gin.Engine, h Handlers, tokens *auth.TokenIssuer, apiMiddleware ...gin.HandlerFunc) {
	authed := middleware.AuthMiddleware(tokens)
	student := middleware.RequireRole(access.RoleStudent)
	counsellor := middleware.RequireRole(access.RoleCounsellor)
	management := middleware.RequireRole(access.RoleManagement)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
			"routes": []string{
				"/api/auth",
				"/api/appointments",
				"/api/sessions",
				"/api/journals",
				"/api/moods",
				"/api/counsellors",
				"/api/analytics",
				"/api/audit-logs",
			},
		})
	})

	r.NoRoute(func(c *gin.Context) {
		httperr.Write(c, http.StatusNotFound, "route_not_found", "Route not found.")
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(apiMiddleware...)
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/register", h.Auth.Register)
			authAPI.POST("/login", h.Auth.Login)
			authAPI.GET("/me", authed, h.Auth.Me)
			authAPI.POST("/onboarding", authed, student, h.Auth.Onboarding)
			authAPI.GET("/qr-code", authed, student, h.Auth.QRCode)
		}

		// ------------------------------
		// APPOINTMENTS & SLOTS
		// ------------------------------
		appointments := api.Group("/appointments")
		{
			appointments.GET("/slots/:counsellorId", h.Slots.List)
			appointments.POST("/slots", authed, counsellor, h.Slots.Create)
			appointments.DELETE("/slots/:id", authed, counsellor, h.Slots.Delete)

			appointments.GET("/my", authed, h.Appointments.ListMine)
			appointments.POST("", authed, student, h.Appointments.Book)
			appointments.PUT("/:id/cancel", authed, h.Appointments.Cancel)
		}

		// ------------------------------
		// SESSIONS
		// ------------------------------
		sessions := api.Group("/sessions", authed)
		{
			sessions.GET("", h.Sessions.List)
			sessions.GET("/:id", h.Sessions.Get)
			sessions.POST("/start", counsellor, h.Sessions.Start)
			sessions.POST("/:id/end", counsellor, h.Sessions.End)
		}

		// ------------------------------
		// JOURNALS & MOODS
		// ------------------------------
		journals := api.Group("/journals", authed, student)
		{
			journals.GET("", h.Journals.List)
			journals.POST("", h.Journals.Create)
			journals.PUT("/:id", h.Journals.Update)
			journals.DELETE("/:id", h.Journals.Delete)
		}

		moods := api.Group("/moods", authed, student)
		{
			moods.GET("", h.Moods.List)
			moods.POST("", h.Moods.Upsert)
			moods.GET("/month", h.Moods.Month)
			moods.GET("/today", h.Moods.Today)
		}

		// ------------------------------
		// COUNSELLORS
		// ------------------------------
		counsellors := api.Group("/counsellors")
		{
			counsellors.GET("", h.Counsellors.List)
			counsellors.GET("/:id", h.Counsellors.Get)
			counsellors.PUT("/me/avatar", authed, counsellor, h.Counsellors.UploadAvatar)
		}

		// ------------------------------
		// MANAGEMENT
		// ------------------------------
		analytics := api.Group("/analytics", authed, management)
		{
			analytics.GET("/department", h.Analytics.Department)
			analytics.GET("/year", h.Analytics.Year)
			analytics.GET("/severity", h.Analytics.Severity)
			analytics.GET("/volume", h.Analytics.Volume)
			analytics.GET("/overview", h.Analytics.Overview)
			analytics.POST("/overview/export", h.Analytics.ExportOverview)
		}

		api.GET("/audit-logs", authed, management, h.AuditLogs.List)
	}
}
