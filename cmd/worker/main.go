package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ponto/internal/config"
	"ponto/internal/logging"
	"ponto/internal/observability"
	"ponto/internal/queue"
	"ponto/internal/store"
)

// Worker drains the notification queue and dispatches each message.
// Delivery is a structured log line for now; a mail or chat transport
// plugs in behind dispatch.
func main() {
	cfg := config.Load()

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer lg.Closer()
	logger := lg.Base

	if cfg.SentryDSN != "" {
		flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "")
		if err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer flush()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "")
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		logger.Fatal("queue consume init failed", zap.Error(err))
	}

	logger.Info("worker started, waiting for messages")
	for msg := range messages {
		dispatch(logger, msg)
	}
	logger.Info("worker stopped")
}

func dispatch(logger *zap.Logger, msg queue.Message) {
	switch msg.Kind {
	case queue.KindAbsenceReviewed, queue.KindUserApproved:
		logger.Info("notification",
			zap.String("kind", msg.Kind),
			zap.String("recipient", msg.Recipient),
			zap.String("body", msg.Body),
		)
	default:
		logger.Warn("unknown message kind dropped", zap.String("kind", msg.Kind))
	}
}
