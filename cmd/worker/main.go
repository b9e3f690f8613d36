package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/donorconnect/donor-api/config"
	"github.com/donorconnect/donor-api/internal/email"
	"github.com/donorconnect/donor-api/pkg/logger"
	"github.com/donorconnect/donor-api/pkg/messaging/redis"
	"github.com/donorconnect/donor-api/pkg/metrics"
	"github.com/donorconnect/donor-api/pkg/worker"
)

const metricsSubsystem = "worker"

type pinger interface {
	Ping(ctx context.Context) error
}

func setupHealthCheck(port int, broker pinger, m *metrics.Metrics, logger *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := broker.Ping(ctx); err != nil {
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "Health check server failed")
			os.Exit(1)
		}
	}()
	return srv
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger(nil).Fatal(err, "Failed to load config")
	}

	log := logger.NewLogger(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Console: cfg.Log.Console,
	})
	log.SetGlobal()

	if !cfg.Redis.Enabled {
		log.Fatal(nil, "The worker needs redis.enabled; without Redis the API dispatches alerts in-process")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics(cfg.Monitoring.Namespace, metricsSubsystem)

	broker, err := redis.NewRedisBroker(ctx, redis.FromConfig(cfg.Redis), log.Zerolog(), m)
	if err != nil {
		log.Fatal(err, "Failed to create Redis broker")
	}
	defer broker.Close()

	dispatcher := worker.NewContactDispatcher(
		broker,
		cfg.Redis.Channel,
		email.NewSMTPService(cfg.SMTP),
		log.WithFields(map[string]interface{}{"component": "contact_dispatcher"}),
		m,
	)

	health := setupHealthCheck(cfg.Worker.HealthPort, broker, m, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutting down...")
		cancel()
	}()

	if err := dispatcher.Start(ctx); err != nil {
		log.Error(err, "Contact dispatcher exited")
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := health.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "Health check server shutdown failed")
	}
}
