package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/time/rate"

	"github.com/donorconnect/donor-api/config"
	"github.com/donorconnect/donor-api/internal/email"
	"github.com/donorconnect/donor-api/internal/handler"
	assistantHandler "github.com/donorconnect/donor-api/internal/handler/assistant"
	authHandler "github.com/donorconnect/donor-api/internal/handler/auth"
	dashboardHandler "github.com/donorconnect/donor-api/internal/handler/dashboard"
	donorHandler "github.com/donorconnect/donor-api/internal/handler/donor"
	inventoryHandler "github.com/donorconnect/donor-api/internal/handler/inventory"
	requestHandler "github.com/donorconnect/donor-api/internal/handler/request"
	"github.com/donorconnect/donor-api/internal/middleware"
	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
	"github.com/donorconnect/donor-api/internal/repository/memory"
	"github.com/donorconnect/donor-api/internal/repository/postgres"
	"github.com/donorconnect/donor-api/internal/router"
	"github.com/donorconnect/donor-api/internal/service/assistant"
	authService "github.com/donorconnect/donor-api/internal/service/auth"
	"github.com/donorconnect/donor-api/internal/service/contact"
	"github.com/donorconnect/donor-api/internal/service/dashboard"
	donorService "github.com/donorconnect/donor-api/internal/service/donor"
	"github.com/donorconnect/donor-api/internal/service/intake"
	inventoryService "github.com/donorconnect/donor-api/internal/service/inventory"
	"github.com/donorconnect/donor-api/internal/service/matchmaker"
	"github.com/donorconnect/donor-api/pkg/auth"
	"github.com/donorconnect/donor-api/pkg/circuitbreaker"
	"github.com/donorconnect/donor-api/pkg/llm"
	"github.com/donorconnect/donor-api/pkg/logger"
	"github.com/donorconnect/donor-api/pkg/messaging"
	memoryBroker "github.com/donorconnect/donor-api/pkg/messaging/memory"
	redisBroker "github.com/donorconnect/donor-api/pkg/messaging/redis"
	"github.com/donorconnect/donor-api/pkg/metrics"
	"github.com/donorconnect/donor-api/pkg/worker"
)

const metricsSubsystem = "api"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger(nil).Fatal(err, "failed to load configuration")
	}

	log := logger.NewLogger(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Console: cfg.Log.Console,
	})
	log.SetGlobal()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics(cfg.Monitoring.Namespace, metricsSubsystem)
	checks := map[string]handler.Checker{}

	// Initialize storage
	var store *repository.Store
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			log.Fatal(err, "failed to connect to database")
		}
		defer db.Close()
		store = postgres.NewStore(db)
		checks["database"] = dbCheck(db)
	default:
		store = memory.NewStore()
		log.Info("using in-memory seeded storage")
	}

	// Initialize message broker
	var broker messaging.Broker
	if cfg.Redis.Enabled {
		rb, err := redisBroker.NewRedisBroker(ctx, redisBroker.FromConfig(cfg.Redis), log.Zerolog(), m)
		if err != nil {
			log.Fatal(err, "failed to connect to Redis")
		}
		broker = rb
		checks["redis"] = rb
	} else {
		mb := memoryBroker.NewBroker()
		broker = mb

		// no separate worker without Redis; dispatch alerts in-process
		dispatcher := worker.NewContactDispatcher(
			mb,
			cfg.Redis.Channel,
			email.NewSMTPService(cfg.SMTP),
			log.WithFields(map[string]interface{}{"component": "contact_dispatcher"}),
			m,
		)
		go func() {
			if err := dispatcher.Start(ctx); err != nil {
				log.Error(err, "contact dispatcher exited")
			}
		}()
	}
	defer broker.Close()

	// Initialize generative service
	gen := newGenerator(ctx, cfg.GenAI, log)
	breakerSettings := func(name string) circuitbreaker.Settings {
		return circuitbreaker.Settings{
			Name:        name,
			MaxFailures: cfg.Matchmaker.BreakerMaxFailures,
			Interval:    cfg.Matchmaker.BreakerInterval,
			Timeout:     cfg.Matchmaker.BreakerTimeout,
			OnStateChange: func(name, from, to string) {
				log.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
				m.SetBreakerState(name, to)
			},
		}
	}

	sample := sampleDonor(ctx, store.Donors, log)

	// Initialize services
	matcher := matchmaker.NewService(gen, matchmaker.Options{
		SampleDonor: sample,
		Breaker:     circuitbreaker.NewCircuitBreaker(breakerSettings("matchmaker")),
		Metrics:     m,
	})
	assistantOpts := assistant.Options{
		Breaker: circuitbreaker.NewCircuitBreaker(breakerSettings("assistant")),
		Metrics: m,
	}

	intakeSvc := intake.NewService(store.Requests, matcher)
	contactSvc := contact.NewService(store.Requests, store.Donors, messaging.NewChannelPublisher(broker, cfg.Redis.Channel), m)
	donorSvc := donorService.NewService(store.Donors)
	inventorySvc := inventoryService.NewService(store.Inventory, store.Drives, cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	dashboardSvc := dashboard.NewService(store.Requests, inventorySvc)
	chatbot := assistant.NewChatbot(gen, assistantOpts)
	summarizer := assistant.NewSummarizer(gen, assistantOpts)

	jwtSvc := auth.NewJWTService(jwtSecret(cfg.JWT.Secret, log), cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(cfg.Operators, jwtSvc, auth.NewBcryptHasher(0))

	// Setup router
	r := router.NewRouter(
		middleware.NewAuthMiddleware(jwtSvc),
		router.Handlers{
			Health:    handler.NewHandler(checks),
			Auth:      authHandler.NewHandler(authSvc),
			Requests:  requestHandler.NewHandler(intakeSvc, contactSvc),
			Donors:    donorHandler.NewHandler(donorSvc, inventorySvc),
			Inventory: inventoryHandler.NewHandler(inventorySvc),
			Assistant: assistantHandler.NewHandler(chatbot, summarizer),
			Dashboard: dashboardHandler.NewHandler(dashboardSvc),
		},
		m,
		router.RouterConfig{
			Mode:           cfg.Server.Mode,
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			RateLimitOn:    cfg.RateLimit.Enabled,
			CORSConfig:     middleware.CORSFromConfig(cfg.CORS),
			MetricsEnabled: cfg.Monitoring.PrometheusEnabled,
			MetricsPath:    cfg.Monitoring.MetricsPath,
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start server
	go func() {
		log.Info("starting server", "addr", srv.Addr, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "server forced to shutdown")
	}
	cancel()

	log.Info("server exited")
}

// newGenerator returns the Gemini generator, or one that always fails when
// no API key is configured. The AI endpoints then answer with their
// unavailable messages while the rest of the API keeps working.
func newGenerator(ctx context.Context, cfg config.GenAIConfig, log *logger.Logger) llm.Generator {
	gen, err := llm.NewGemini(ctx, cfg)
	if err != nil {
		log.Warn("generative service disabled", "error", err.Error())
		return llm.Unconfigured
	}
	log.Info("generative service configured", "model", cfg.Model)
	return gen
}

// sampleDonor picks the first registered donor to quote in match prompts.
func sampleDonor(ctx context.Context, donors repository.DonorRepository, log *logger.Logger) *model.Donor {
	list, err := donors.List(ctx)
	if err != nil || len(list) == 0 {
		log.Warn("no sample donor available for match prompts")
		return nil
	}
	return list[0]
}

// jwtSecret falls back to a random per-process secret. Tokens then stop
// validating after a restart.
func jwtSecret(secret string, log *logger.Logger) string {
	if secret != "" {
		return secret
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal(err, "failed to generate JWT secret")
	}
	log.Warn("DONOR_JWT_SECRET not set, using a random secret")
	return hex.EncodeToString(buf)
}

func dbCheck(db *sqlx.DB) handler.Checker {
	return handler.CheckerFunc(db.PingContext)
}
