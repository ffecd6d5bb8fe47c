package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "marketplace/internal/app"
	"marketplace/internal/entities"
	"marketplace/internal/handlers/rest/delivery_job_claim_post"
	"marketplace/internal/handlers/rest/delivery_job_delete"
	"marketplace/internal/handlers/rest/delivery_job_get"
	"marketplace/internal/handlers/rest/delivery_job_status_put"
	"marketplace/internal/handlers/rest/delivery_jobs_get"
	"marketplace/internal/handlers/rest/delivery_jobs_post"
	"marketplace/internal/handlers/rest/events_stream_get"
	"marketplace/internal/handlers/rest/healthcheck_head"
	"marketplace/internal/handlers/rest/order_get"
	"marketplace/internal/handlers/rest/order_status_put"
	"marketplace/internal/handlers/rest/orders_list_get"
	"marketplace/internal/handlers/rest/orders_post"
	"marketplace/internal/handlers/rest/ping_get"
	"marketplace/internal/pkg/config"
	"marketplace/internal/pkg/dotenv"
	"marketplace/internal/pkg/grpchealth"
	"marketplace/internal/pkg/kafka"
	metrics_system "marketplace/internal/pkg/metrics"
	"marketplace/internal/pkg/middlewares/actor"
	"marketplace/internal/pkg/middlewares/graceful_shutdown"
	"marketplace/internal/pkg/middlewares/metrics"
	"marketplace/internal/pkg/middlewares/rate_limiter"
	"marketplace/internal/pkg/middlewares/timeout"
	"marketplace/internal/pkg/postgres"
	"marketplace/internal/pkg/realtime"
	"marketplace/migrations"
	"marketplace/pkg/logger"
	"marketplace/pkg/logger/zap_adapter"
	"marketplace/pkg/token_bucket"
)

const (
	eventsStreamPath   = "/events/stream"
	retryAfterShutdown = 5 * time.Second
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting marketplace application")

	if err := dotenv.Load(); err != nil {
		if !errors.Is(err, dotenv.ErrNoEnvFile) {
			mainLog.Error("failed to load environment", logger.NewField("error", err))
			return
		}
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	if cfg.LogLevel != "" {
		leveled, err := zap_adapter.NewZapAdapterWithLevel(cfg.LogLevel)
		if err != nil {
			mainLog.Error("log level", logger.NewField("error", err))
			return
		}
		defer func() { _ = leveled.Sync() }()
		appLogger = leveled
		mainLog = appLogger.With()
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, log, pool, migrations.FS); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer",
				logger.NewField("error", err),
			)
		}
	}()

	registry := realtime.NewRegistry(cfg.Realtime.BufferSize)

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, producer, registry, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second, // поток событий снимает дедлайн сам
		IdleTimeout:       60 * time.Second,
	}
	// открытые SSE потоки иначе держали бы Shutdown до shutdownPeriod
	server.RegisterOnShutdown(func() {
		closed := registry.CloseAll()
		runLog.Info("event streams closed", logger.NewField("count", closed))
	})

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// grpc health сервер
	healthListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCHealthPort))
	if err != nil {
		return fmt.Errorf("grpc health listen: %w", err)
	}
	healthServer := grpchealth.New(log)

	healthServerErr := make(chan error, 1)
	go func() {
		defer close(healthServerErr)
		if err := healthServer.Serve(healthListener); err != nil {
			healthServerErr <- err
		}
	}()
	// grpc health сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-healthServerErr:
		return fmt.Errorf("grpc health server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	healthServer.Shutdown()

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	// эффекты уже закоммиченных операций досылаются до закрытия producer и пула
	if dispatchErr := businessApp.Dispatcher.Close(shutdownCtx); dispatchErr != nil {
		runLog.Error("side effects not drained", logger.NewField("error", dispatchErr))
	}

	healthServer.Stop(shutdownCtx)

	// ctx уже отменен, тикеры фоновых задач останавливаются сами
	businessApp.BackgroundWorkers.Wait()

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx, retryAfterShutdown))

	router.Use(timeout.Middleware(cfg.RequestTimeout, eventsStreamPath))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.DB)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log, app.Registry)).Methods("GET")

	api := router.NewRoute().Subrouter()
	api.Use(actor.Middleware(log))

	api.Handle("/orders", orders_post.New(log, app.ServiceOrder)).Methods("POST")
	api.Handle("/orders/mine", orders_list_get.New(log, app.ServiceOrder, entities.ScopeBuyer)).Methods("GET")
	api.Handle("/orders/seller", orders_list_get.New(log, app.ServiceOrder, entities.ScopeSeller)).Methods("GET")
	api.Handle("/orders/delivery", orders_list_get.New(log, app.ServiceOrder, entities.ScopeDelivery)).Methods("GET")
	api.Handle("/orders/{id:[0-9]+}", order_get.New(log, app.ServiceOrder)).Methods("GET")
	api.Handle("/orders/{id:[0-9]+}/status", order_status_put.New(log, app.ServiceOrder)).Methods("PUT")

	api.Handle("/delivery/jobs", delivery_jobs_get.New(log, app.ServiceDelivery)).Methods("GET")
	api.Handle("/delivery/jobs", delivery_jobs_post.New(log, app.ServiceDelivery)).Methods("POST")
	api.Handle("/delivery/jobs/{id:[0-9]+}", delivery_job_get.New(log, app.ServiceDelivery)).Methods("GET")
	api.Handle("/delivery/jobs/{id:[0-9]+}", delivery_job_delete.New(log, app.ServiceDelivery)).Methods("DELETE")
	api.Handle("/delivery/jobs/{id:[0-9]+}/status", delivery_job_status_put.New(log, app.ServiceDelivery)).Methods("PUT")
	api.Handle("/delivery/jobs/{id:[0-9]+}/claim", delivery_job_claim_post.New(log, app.ServiceDelivery)).Methods("POST")

	api.Handle(eventsStreamPath, events_stream_get.New(log, app.Registry)).Methods("GET")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, nil)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
