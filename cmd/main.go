package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-medication-adherence/internal/config"
	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/handler"
	"github.com/KasumiMercury/primind-medication-adherence/internal/health"
	"github.com/KasumiMercury/primind-medication-adherence/internal/infra/adherencerecorder"
	"github.com/KasumiMercury/primind-medication-adherence/internal/infra/ledger"
	"github.com/KasumiMercury/primind-medication-adherence/internal/infra/notifyhub"
	"github.com/KasumiMercury/primind-medication-adherence/internal/infra/repository"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/logging"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/metrics"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/middleware"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/adherence"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/dispatch"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/engine"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/reminder"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/risk"
)

// Version is set via ldflags at build time
var Version = "dev"

const module = logging.Module("medication-adherence")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := config.LoadDotenv(); err != nil {
		slog.Error("failed to load .env file", slog.String("error", err.Error()))
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	adherenceMetrics, err := metrics.NewAdherenceMetrics()
	if err != nil {
		slog.Error("failed to initialize adherence metrics", slog.String("error", err.Error()))
		return 1
	}

	db, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open database",
			slog.String("event", "database.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := repository.Close(db); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	var redisClient *redis.Client
	if cfg.Ledger.Backend == config.LedgerBackendRedis {
		redisClient, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()
	}

	dedupLedger, err := ledger.New(cfg.Ledger, redisClient)
	if err != nil {
		slog.Error("failed to initialize notification ledger", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	eventRecorder, err := adherencerecorder.NewRecorder(ctx, adherencerecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize adherence event recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := eventRecorder.Close(); err != nil {
			slog.Warn("failed to close adherence event recorder", slog.String("error", err.Error()))
		}
	}()

	publisher, cleanup, err := initRiskPublisher(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize risk publisher", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("risk publisher cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	clock := domain.SystemClock()

	reminderRepo := repository.NewReminderRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	adherenceRepo := repository.NewAdherenceRepository(db)

	hub := notifyhub.NewHub(notifyhub.Config{})

	riskNotifier := risk.NewNotifier(publisher, risk.Config{
		Buffer:         cfg.Risk.QueueBuffer,
		PublishTimeout: cfg.Risk.PublishTimeout,
	}, clock, adherenceMetrics)
	riskDone := make(chan struct{})
	go func() {
		defer close(riskDone)
		riskNotifier.Run(ctx)
	}()

	dispatcher := dispatch.NewDispatcher(dispatch.Dependencies{
		Reminders: reminderRepo,
		Ledger:    dedupLedger,
		InApp:     hub,
		Platform:  hub,
		Tones:     hub,
		Recorder:  eventRecorder,
		Clock:     clock,
		Metrics:   adherenceMetrics,
	}, dispatch.Config{
		AutoDismiss: cfg.Scheduler.AutoDismiss,
		Concurrency: cfg.Scheduler.Concurrency,
		CallTimeout: cfg.Repository.Timeout,
	})

	recorder := adherence.NewRecorder(adherence.Dependencies{
		Adherence:     adherenceRepo,
		Prescriptions: prescriptionRepo,
		Risk:          riskNotifier,
		Events:        eventRecorder,
		Clock:         clock,
		Metrics:       adherenceMetrics,
	}, adherence.Config{
		WindowMinutes:     cfg.Scheduler.ActionWindowMinutes,
		RepositoryTimeout: cfg.Repository.Timeout,
	})

	reminderService := reminder.NewService(reminderRepo, prescriptionRepo, cfg.Repository.Timeout)

	eng := engine.New(engine.Dependencies{
		Reminders: reminderService,
		Recorder:  recorder,
		Adherence: adherenceRepo,
		Ticks:     dispatcher,
		Clock:     clock,
	}, engine.Config{
		TickInterval:      cfg.Scheduler.TickInterval,
		RepositoryTimeout: cfg.Repository.Timeout,
	})

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      module,
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, db, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.RegisterRoutes(r,
		handler.NewReminderHandler(reminderService, eng),
		handler.NewAdherenceHandler(eng),
		handler.NewNotificationHandler(hub, eng),
	)

	// gRPC health shares the port; everything else goes to gin.
	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	mux := http.NewServeMux()
	mux.Handle(grpcHealthPath, grpcHealthHandler)
	mux.Handle("/", r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(otelhttp.NewHandler(mux, "http.server"), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("action_window_minutes", cfg.Scheduler.ActionWindowMinutes),
			slog.String("tick_interval", cfg.Scheduler.TickInterval.String()),
			slog.String("ledger_backend", string(cfg.Ledger.Backend)),
			slog.Bool("risk_events_enabled", publisher != nil),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			exitCode = 1
		}

	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server exited with error", slog.String("error", err.Error()))
			exitCode = 1
		}
	}

	eng.Shutdown()
	hub.Close()
	cancel()
	<-riskDone

	if err := eventRecorder.Flush(context.Background()); err != nil {
		slog.Warn("failed to flush adherence events", slog.String("error", err.Error()))
	}

	if exitCode == 0 {
		slog.Info("server exited properly")
	}
	return exitCode
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(cfg.Options())

	if err := redisotel.InstrumentTracing(client); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(client); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	slog.Info("redis connected", slog.String("addr", cfg.Addr))

	return client, nil
}
