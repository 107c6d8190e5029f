package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ponto/internal/config"
	"ponto/internal/geofence"
	"ponto/internal/logging"
	"ponto/internal/store"
)

// Agent runs the geofence monitor against a JSON-lines location stream
// and raises the once-per-day workplace arrival notification.
func main() {
	cfg := config.Load()

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer lg.Closer()
	logger := lg.Base

	settings := loadSettings(cfg, logger)
	if err := settings.Validate(); err != nil {
		logger.Fatal("invalid fence configuration", zap.Error(err))
	}

	// The notify log survives agent restarts when Redis is reachable.
	var notifyLog geofence.NotifyLog
	redisClient := store.NewRedis(cfg.RedisAddr)
	if redisClient.Healthy(context.Background()) {
		notifyLog = geofence.NewRedisNotifyLog(redisClient.Client, "")
	} else {
		logger.Warn("redis unreachable, notify log kept in memory")
		notifyLog = geofence.NewMemoryNotifyLog()
	}

	source := geofence.NewHTTPSource(cfg.LocationStreamURL)
	notifier := &geofence.LogNotifier{Logf: lg.Sugar.Infof}

	monitor := geofence.NewMonitor(settings, source, notifier, notifyLog, cfg.Location(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := monitor.Start(ctx); err != nil {
		logger.Fatal("monitor start failed", zap.Error(err))
	}
	logger.Info("monitoring started",
		zap.String("stream", cfg.LocationStreamURL),
		zap.Float64("radius_m", settings.AllowedRadiusMeters))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown signal received")
	monitor.Stop()
	logger.Info("monitoring stopped")
}

// loadSettings prefers the persisted row the server validates against, so
// monitor and validator cannot drift. The env fence is the fallback for
// agents running without database access.
func loadSettings(cfg config.App, logger *zap.Logger) geofence.Settings {
	if db, err := store.NewDB(cfg.DatabaseURL); err == nil {
		defer db.Close()
		s, gerr := geofence.NewRepository(db.Client).Get(context.Background())
		if gerr == nil && s.Enabled {
			return s
		}
		if gerr != nil {
			logger.Warn("settings row unreadable, using env fence", zap.Error(gerr))
		}
	} else {
		logger.Warn("database unreachable, using env fence", zap.Error(err))
	}
	return geofence.Settings{
		Enabled:             true,
		WorkplaceLatitude:   cfg.WorkplaceLat,
		WorkplaceLongitude:  cfg.WorkplaceLon,
		AllowedRadiusMeters: cfg.AllowedRadiusM,
	}
}
