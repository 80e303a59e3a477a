package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "dispatch/internal/app"
	"dispatch/internal/gateway/proofstore"
	"dispatch/internal/handlers/rest/courier_duty_put"
	"dispatch/internal/handlers/rest/courier_earnings_get"
	"dispatch/internal/handlers/rest/courier_get"
	"dispatch/internal/handlers/rest/courier_location_put"
	"dispatch/internal/handlers/rest/courier_payout_post"
	"dispatch/internal/handlers/rest/courier_post"
	"dispatch/internal/handlers/rest/courier_put"
	"dispatch/internal/handlers/rest/couriers_get"
	"dispatch/internal/handlers/rest/dispatch_expired_get"
	"dispatch/internal/handlers/rest/dispatch_settings_get"
	"dispatch/internal/handlers/rest/dispatch_settings_put"
	"dispatch/internal/handlers/rest/healthcheck_head"
	"dispatch/internal/handlers/rest/order_action_post"
	"dispatch/internal/handlers/rest/order_cancel_post"
	"dispatch/internal/handlers/rest/order_complete_post"
	"dispatch/internal/handlers/rest/order_dispatch_post"
	"dispatch/internal/handlers/rest/order_get"
	"dispatch/internal/handlers/rest/order_pay_post"
	"dispatch/internal/handlers/rest/order_reject_post"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/dotenv"
	"dispatch/internal/pkg/grpcserver"
	"dispatch/internal/pkg/kafka"
	metrics_system "dispatch/internal/pkg/metrics"
	"dispatch/internal/pkg/middlewares/graceful_shutdown"
	"dispatch/internal/pkg/middlewares/metrics"
	"dispatch/internal/pkg/middlewares/rate_limiter"
	"dispatch/internal/pkg/middlewares/timeout"
	"dispatch/internal/pkg/postgres"
	"dispatch/internal/service/lifecycle"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"
	"dispatch/pkg/token_bucket"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

	mainLog.Info("starting dispatch application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // от context.Background() наследуемся намеренно, это часть graceful shutdown
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

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, log, pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
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

	proofStore, err := newProofStore(ctx, cfg.ProofStore)
	if err != nil {
		return fmt.Errorf("proof store: %w", err)
	}

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, producer, proofStore, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx)

	grpcServer := grpcserver.New(log, cfg.GRPC, pool, &isShuttingDown)
	grpcServerErr := make(chan error, 1)
	go func() {
		defer close(grpcServerErr)
		if err := grpcServer.Run(ctx); err != nil {
			grpcServerErr <- err
		}
	}()

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, pool, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, pool),
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
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-grpcServerErr:
		return fmt.Errorf("grpc server: %w", err)
	case err := <-pprofServerErr: // nil-канал при выключенном pprof, кейс не срабатывает
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

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

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

// newProofStore без проверки фото любая ссылка считается существующей
func newProofStore(ctx context.Context, cfg config.ProofStore) (lifecycle.ProofStore, error) {
	if !cfg.Verify {
		return proofstore.Noop{}, nil
	}

	client, err := proofstore.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return proofstore.New(client, cfg.Bucket), nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	pool *pgxpool.Pool,
	app *application.Application,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS,
		token_bucket.NewKeyedLimiter(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst), cfg.RateLimiterIdleTTL),
	))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods(http.MethodHead)

	router.Handle("/courier", courier_post.New(log, app.ServiceCourier)).Methods(http.MethodPost)
	router.Handle("/couriers", couriers_get.New(log, app.ServiceCourier)).Methods(http.MethodGet)
	router.Handle("/courier/{id:[0-9]+}", courier_get.New(log, app.ServiceCourier)).Methods(http.MethodGet)
	router.Handle("/courier/{id:[0-9]+}", courier_put.New(log, app.ServiceCourier)).Methods(http.MethodPut)
	router.Handle("/courier/{id:[0-9]+}/duty", courier_duty_put.New(log, app.ServiceCourier)).Methods(http.MethodPut)
	router.Handle("/courier/{id:[0-9]+}/location", courier_location_put.New(log, app.ServiceCourier)).Methods(http.MethodPut)
	router.Handle("/courier/{id:[0-9]+}/earnings", courier_earnings_get.New(log, app.ServiceEarnings)).Methods(http.MethodGet)
	router.Handle("/courier/{id:[0-9]+}/payout", courier_payout_post.New(log, app.ServiceEarnings)).Methods(http.MethodPost)

	router.Handle("/order/{id}", order_get.New(log, app.ServiceLifecycle)).Methods(http.MethodGet)
	router.Handle("/order/{id}/dispatch", order_dispatch_post.New(log, app.ServiceDispatch)).Methods(http.MethodPost)
	router.Handle("/order/{id}/reject", order_reject_post.New(log, app.ServiceDispatch, app.ServiceLifecycle)).Methods(http.MethodPost)
	router.Handle("/order/{id}/action", order_action_post.New(log, app.ServiceOrder)).Methods(http.MethodPost)
	router.Handle("/order/{id}/cancel", order_cancel_post.New(log, app.ServiceLifecycle)).Methods(http.MethodPost)
	router.Handle("/order/{id}/pay", order_pay_post.New(log, app.ServiceLifecycle)).Methods(http.MethodPost)
	router.Handle("/order/{id}/complete", order_complete_post.New(log, app.ServiceLifecycle)).Methods(http.MethodPost)

	router.Handle("/dispatch/settings", dispatch_settings_get.New(log, app.ServiceSettings)).Methods(http.MethodGet)
	router.Handle("/dispatch/settings", dispatch_settings_put.New(log, app.ServiceSettings)).Methods(http.MethodPut)
	router.Handle("/dispatch/expired", dispatch_expired_get.New(log, app.ServiceDispatch)).Methods(http.MethodGet)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, pool *pgxpool.Pool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
