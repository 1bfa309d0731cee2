package main

import (
	"context"
	"time"

	"github.com/huangang/teamboard/internal/config"
	"github.com/huangang/teamboard/internal/datastore"
	"github.com/huangang/teamboard/internal/metrics"
	"github.com/huangang/teamboard/internal/middleware"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/persistence"
	"github.com/huangang/teamboard/internal/services"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/internal/utils"
	"github.com/huangang/teamboard/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const persistTimeout = 5 * time.Second

// appServices holds everything the routes and shutdown need.
type appServices struct {
	cfg         *config.Config
	db          *gorm.DB
	session     *state.Session
	hub         *services.ChangeHub
	systemLogs  *services.SystemLogService
	cleanup     *cron.Cron
	rateLimiter *middleware.RateLimiter
	unsubscribe []func()
}

// bootstrap wires database, persistence, the dashboard session and schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.Session.Secret)

	db, err := models.OpenDB(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := metrics.RegisterDB(sqlDB, cfg.Database.Driver); err != nil {
			logger.Warn().Err(err).Msg("Failed to register database metrics")
		}
	}

	// Restore the last snapshot; the data store keeps its seed data otherwise.
	adapter := persistence.NewGormAdapter(db, cfg.Storage.Key)
	ds := datastore.New()
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	initial, err := state.Restore(ctx, adapter, ds)
	cancel()
	if err != nil {
		logger.Warn().Err(err).Str("key", cfg.Storage.Key).Msg("Failed to restore dashboard state, starting fresh")
		initial = state.Initial()
	}

	latency := services.NewRandomLatency(
		time.Duration(cfg.Latency.MinMS)*time.Millisecond,
		time.Duration(cfg.Latency.MaxMS)*time.Millisecond,
	)
	facade := services.NewFacade(ds, services.WithLatency(latency))
	store := state.NewStore(initial, state.WithNotificationLimit(cfg.Notifications.Limit))
	session := state.NewSession(store, facade)

	hub := services.NewChangeHub()
	unsubscribe := []func(){
		store.Subscribe(state.PersistTo(adapter, persistTimeout)),
		store.Subscribe(state.Broadcast(hub)),
	}

	systemLogs := services.NewSystemLogService(db)
	cleanup, err := services.StartLogCleanupScheduler(systemLogs, cfg.Audit.CleanupSpec, cfg.Audit.RetentionDays)
	if err != nil {
		logger.Warn().Err(err).Msg("Audit log cleanup disabled")
	}

	if u := initial.Auth.User; u != nil {
		logger.Info().Str("user", u.Email).Bool("impersonating", initial.Auth.Impersonating()).Msg("Restored dashboard session")
	}

	return &appServices{
		cfg:         cfg,
		db:          db,
		session:     session,
		hub:         hub,
		systemLogs:  systemLogs,
		cleanup:     cleanup,
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		unsubscribe: unsubscribe,
	}
}

// shutdown stops schedulers and detaches the session. In-flight facade
// calls finish but their results are dropped.
func (s *appServices) shutdown() {
	if s.cleanup != nil {
		<-s.cleanup.Stop().Done()
	}
	s.rateLimiter.Stop()
	s.session.Close()
	for _, unsub := range s.unsubscribe {
		unsub()
	}
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info().Msg("All services stopped")
}
