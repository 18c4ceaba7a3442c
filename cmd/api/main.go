package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-wellbeing/counsel-api/internal/app"
	"github.com/campus-wellbeing/counsel-api/internal/audit"
	"github.com/campus-wellbeing/counsel-api/internal/auth"
	"github.com/campus-wellbeing/counsel-api/internal/config"
	dbpkg "github.com/campus-wellbeing/counsel-api/internal/db"
	"github.com/campus-wellbeing/counsel-api/internal/events"
	infraRepo "github.com/campus-wellbeing/counsel-api/internal/infra/repository"
	"github.com/campus-wellbeing/counsel-api/internal/routes"
	"github.com/campus-wellbeing/counsel-api/internal/storage"
	"github.com/campus-wellbeing/counsel-api/internal/timezone"
	ucsession "github.com/campus-wellbeing/counsel-api/internal/usecase/session"
	"github.com/campus-wellbeing/counsel-api/internal/validators"
)

func main() {

	cfg := config.Load()

	logger := app.NewLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if !timezone.IsValid(cfg.CampusTimezone) {
		logger.Warn("unknown campus timezone, falling back to UTC",
			zap.String("timezone", cfg.CampusTimezone))
	}
	loc := timezone.Location(cfg.CampusTimezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// DATABASE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := dbpkg.Migrate(ctx, db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	rdb := dbpkg.NewRedis(ctx, cfg, logger)

	// ======================================================
	// AUDIT & EVENTS
	// ======================================================
	sinks := []audit.Sink{audit.New(db)}

	publisher, err := events.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to configure events backend", zap.Error(err))
	}
	if publisher != nil {
		sinks = append(sinks, publisher)
		logger.Info("publishing domain events", zap.String("backend", cfg.EventsBackend))
	}

	dispatcher := audit.NewDispatcher(logger, sinks...)

	// ======================================================
	// ROUTER
	// ======================================================
	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      logger,
		Redis:    rdb,
		Audit:    dispatcher,
		Tokens:   auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Location: loc,
		Storage:  storage.NewObjectStore(cfg),
	}
	if cfg.ValidateEmailDomain {
		deps.DomainCheck = validators.IsEmailDomainValid
	}
	if deps.Storage == nil {
		logger.Warn("S3_BUCKET not set, avatar upload and report export disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, deps)

	scheduler := app.NewScheduler(
		ucsession.NewReconcileActiveFlags(infraRepo.NewSessionGormRepository(db), logger),
		cfg.ReconcileInterval,
		logger,
	)
	scheduler.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	scheduler.Stop()

	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("audit queue not drained", zap.Error(err))
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close event publisher", zap.Error(err))
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server stopped")
}
