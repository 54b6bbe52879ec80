package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dunamismax/bmpflow/internal/api"
	"github.com/dunamismax/bmpflow/internal/config"
	"github.com/dunamismax/bmpflow/internal/queue"
	"github.com/dunamismax/bmpflow/internal/ratelimit"
	"github.com/dunamismax/bmpflow/internal/storage"
	"github.com/dunamismax/bmpflow/internal/store"
	"github.com/dunamismax/bmpflow/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.Lmsgprefix)

	ctx := context.Background()

	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.TraceConfig{
		ServiceName:  cfg.Trace.ServiceName + "-api",
		Exporter:     cfg.Trace.Exporter,
		OTLPEndpoint: cfg.Trace.OTLPEndpoint,
		OTLPInsecure: cfg.Trace.OTLPInsecure,
	}, logger)
	if err != nil {
		logger.Fatalf("tracing setup failed: %v", err)
	}

	queueClient := queue.NewClient(cfg.Queue.RedisClientOpt(), cfg.Queue.Name)
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Printf("queue client close error: %v", err)
		}
	}()

	jobStore, closeStore, err := openJobStore(ctx, cfg.Store)
	if err != nil {
		logger.Fatalf("job store setup failed: %v", err)
	}
	defer closeStore()

	storageClient, err := storage.NewClient(storage.Config{
		Endpoint: cfg.Storage.Endpoint,
		Access:   cfg.Storage.AccessKey,
		Secret:   cfg.Storage.SecretKey,
		Bucket:   cfg.Storage.Bucket,
		UseSSL:   cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatalf("storage setup failed: %v", err)
	}

	var rateLimiter api.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Queue.RedisAddr,
			Password: cfg.Queue.RedisPassword,
			DB:       cfg.Queue.RedisDB,
		})
		defer redisClient.Close()

		limiter, err := ratelimit.NewRedisFixedWindow(
			redisClient,
			cfg.RateLimit.Requests,
			cfg.RateLimit.Window,
			"bmpflow:ratelimit",
		)
		if err != nil {
			logger.Fatalf("rate limiter setup failed: %v", err)
		}
		rateLimiter = limiter
		logger.Printf("rate limiting enabled requests=%d window=%s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	app := api.NewServer(logger, api.Options{
		QueueClient:     queueClient,
		JobStore:        jobStore,
		Storage:         storageClient,
		RateLimiter:     rateLimiter,
		Tracer:          otel.Tracer("bmpflow/api"),
		PresignTTL:      cfg.API.PresignTTL,
		MaxInspectBytes: cfg.API.MaxInspectBytes,
	})

	httpServer := &http.Server{
		Addr:         cfg.API.Addr,
		Handler:      app.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Printf("listening on %s", cfg.API.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Println("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Printf("tracing shutdown failed: %v", err)
	}
}

func openJobStore(ctx context.Context, cfg config.StoreConfig) (store.JobStore, func(), error) {
	switch cfg.Driver {
	case "postgres":
		s, err := store.NewPostgresJobStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "sqlite":
		s, err := store.NewSQLiteJobStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return store.NewMemoryJobStore(), func() {}, nil
	}
}
