// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
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

	_ "github.com/lib/pq"

	"sichrplace/internal/audit"
	httpapi "sichrplace/internal/http"
	"sichrplace/internal/notification"
	"sichrplace/internal/platform/config"
	"sichrplace/internal/platform/httpserver"
	"sichrplace/internal/platform/logger"
	"sichrplace/internal/platform/postgres"
	platformredis "sichrplace/internal/platform/redis"
	"sichrplace/internal/screening/handler"
	"sichrplace/internal/screening/metrics"
	"sichrplace/internal/screening/ports"
	"sichrplace/internal/screening/providers/employer"
	"sichrplace/internal/screening/providers/schufa"
	"sichrplace/internal/screening/service"
	"sichrplace/internal/screening/store/creditcache"
	"sichrplace/internal/screening/store/request"
)

const auditQueueSize = 256

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthChecks := map[string]httpapi.HealthCheck{}

	// Stores: Postgres when configured, in-memory otherwise.
	var requestStore ports.RequestStore = request.NewInMemoryStore()
	var auditStore audit.Store = audit.NewInMemoryStore()
	pool, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		requestStore = request.NewPostgres(pool.Pool)
		healthChecks["postgres"] = pool.Health

		db, err := sql.Open("postgres", cfg.Postgres.URL)
		if err != nil {
			log.Error("audit store connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		auditStore = audit.NewPostgres(db)
	}

	var creditCache ports.CreditCache = creditcache.NewInMemoryStore()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		creditCache = creditcache.NewRedisStore(redisClient.Client)
		healthChecks["redis"] = redisClient.Health
	}

	var notifier notification.Notifier = notification.NewMemory()
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := notification.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka producer setup failed", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		notifier = kafka
	}

	screeningMetrics := metrics.New()

	// Audit pipeline: non-blocking publisher in front of a single writer.
	auditInbox := make(chan audit.Entry, auditQueueSize)
	auditWorker := audit.NewWorker(auditStore, auditInbox, log)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()
	auditPublisher := audit.NewPublisher(auditInbox, log,
		audit.WithDroppedHook(screeningMetrics.IncrementAuditDropped),
	)

	creditProvider := schufa.New(cfg.Screening.CreditValidity,
		schufa.WithLatency(cfg.Screening.SimMinLatency, cfg.Screening.SimMaxLatency),
	)
	employerVerifier := employer.New(
		employer.WithLatency(cfg.Screening.SimMinLatency, cfg.Screening.SimMaxLatency),
	)

	screeningService, err := service.New(requestStore, creditProvider, employerVerifier,
		service.WithLogger(log),
		service.WithMetrics(screeningMetrics),
		service.WithCreditCache(creditCache),
		service.WithAuditPublisher(auditPublisher),
		service.WithNotifier(notifier),
		service.WithProviderTimeout(cfg.Screening.ProviderTimeout),
	)
	if err != nil {
		log.Error("screening service setup failed", "error", err)
		os.Exit(1)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Screening:    handler.New(screeningService, log),
		Logger:       log,
		HealthChecks: healthChecks,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting sichrplace screening service", "addr", cfg.Server.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
