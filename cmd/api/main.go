package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ponto/internal/absence"
	"ponto/internal/auth"
	"ponto/internal/cloudinary"
	"ponto/internal/config"
	"ponto/internal/coordination"
	"ponto/internal/geofence"
	"ponto/internal/handler"
	"ponto/internal/hierarchy"
	"ponto/internal/httpmiddleware"
	"ponto/internal/logging"
	"ponto/internal/metrics"
	"ponto/internal/observability"
	"ponto/internal/queue"
	"ponto/internal/store"
	"ponto/internal/timeclock"
	"ponto/internal/users"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer lg.Closer()

	if cfg.SentryDSN != "" {
		flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "")
		if err != nil {
			lg.Sugar.Warnw("sentry init failed", "err", err)
		} else {
			defer flush()
		}
	}

	if err := runHTTP(cfg, lg.Base); err != nil {
		lg.Sugar.Fatalw("http server failed", "err", err)
	}
}

func runHTTP(cfg config.App, logger *zap.Logger) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Migrate(db.Client); err != nil {
		return err
	}

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "")
	}

	zone := cfg.Location()

	usersSvc := users.NewService(users.NewRepository(db.Client))
	coords := coordination.NewRepository(db.Client)
	fence := geofence.NewRepository(db.Client)
	clock := timeclock.NewService(timeclock.NewRepository(db.Client), fence, zone)
	absences := absence.NewService(absence.NewRepository(db.Client))

	var cloud *cloudinary.Client
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloud = cloudinary.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		logger.Info("cloudinary configured", zap.String("cloud", cfg.CloudinaryCloudName))
	} else {
		logger.Warn("cloudinary not configured, document uploads disabled")
	}
	breaker := config.NewCircuitBreaker("cloudinary")

	tokens := auth.NewTokenStore(db.Client)

	h := handler.New(cfg, logger, usersSvc, coords, clock, absences, fence, cloud, breaker, q, tokens)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db.Client.PingContext(c.Request.Context()) == nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/refresh", h.Refresh)

	v1 := r.Group("/v1", auth.UserAuth(cfg.JWTSigningKey, cfg.JWTIssuer))
	{
		v1.POST("/auth/level", h.SwitchLevel)

		v1.POST("/clock", h.Clock)
		v1.GET("/clock", h.MyRecords)
		v1.GET("/clock/all", h.AllRecords)

		v1.POST("/absences", h.SubmitAbsence)
		v1.GET("/absences", h.MyAbsences)
		v1.GET("/absences/all", h.AllAbsences)
		v1.POST("/absences/review", h.ReviewAbsence)

		v1.POST("/upload", h.Upload)

		v1.GET("/users", h.ListUsers)
		v1.POST("/users/approve", h.ApproveUser)
		v1.POST("/users/deactivate", h.DeactivateUser)
		v1.POST("/users/schedule", h.SetWorkSchedule)

		v1.GET("/coordinations", h.ListCoordinations)
		v1.POST("/coordinations", h.CreateCoordination)
		v1.PUT("/coordinations/:id", h.UpdateCoordination)
		v1.PUT("/coordinations/:id/coordinator", h.SetCoordinator)
		v1.GET("/coordinations/:id/members", h.ListMembers)
		v1.POST("/coordinations/:id/members", h.AddMember)
		v1.POST("/coordinations/:id/members/remove", h.RemoveMember)

		v1.GET("/settings/geofence", h.GetGeofence)
		v1.PUT("/settings/geofence", h.PutGeofence)

		v1.GET("/reports/timesheet", h.Timesheet)
	}

	// keep the permission table reachable for clients that want to render
	// capabilities without hardcoding them
	r.GET("/v1/levels", func(c *gin.Context) {
		out := gin.H{}
		for _, level := range []hierarchy.Level{hierarchy.LevelAdministrator, hierarchy.LevelCoordinator, hierarchy.LevelCollaborator} {
			out[string(level)] = hierarchy.PermissionsFor(level)
		}
		c.JSON(http.StatusOK, out)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
