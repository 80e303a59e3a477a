package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"dispatch/internal/app"
	"dispatch/internal/gateway/proofstore"
	"dispatch/internal/handlers/kafka-consumer/courier_action"
	"dispatch/internal/handlers/kafka-consumer/order_created"
	"dispatch/internal/handlers/rest/healthcheck_head"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/dotenv"
	"dispatch/internal/pkg/kafka"
	"dispatch/internal/pkg/postgres"
	"dispatch/internal/service/lifecycle"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
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

	mainLog.Info("starting courier-events worker")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file",
				logger.NewField("error", err),
			)
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config",
			logger.NewField("error", err),
		)
		return
	}

	err = run(context.Background(), appLogger, cfg)
	if err != nil {
		mainLog.Error("application failed",
			logger.NewField("error", err),
		)
		return
	}
}

//nolint:contextcheck // от context.Background() наследуемся намеренно, это часть graceful shutdown
func run(ctx context.Context, log logger.Logger, cfg *config.Config) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

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

	businessApp, err := app.InitializeKafkaWorkerApp(ctx, log, pool, pgxv5.DefaultCtxGetter, producer, proofStore, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	// ongoingCtx не отменяется по SIGTERM: consumer дочитывает текущие сообщения.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Kafka.PortHealthcheck),
		Handler: initHealthcheckRouter(&isShuttingDown, pool),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	healthServerErr := make(chan error, 1)
	go func() {
		defer close(healthServerErr)

		runLog.With(
			logger.NewField("port", cfg.Kafka.PortHealthcheck),
		).Info("Server starting")
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			healthServerErr <- err
		}
	}()

	handlers := cfg.Kafka.Handlers

	orderCreatedConsumer, err := kafka.NewConsumer(ctx, log, &cfg.Kafka, handlers.OrderCreated,
		order_created.New(log, businessApp.OrderService, handlers.OrderCreated.ProcessTimeout, kafka.ProcessingRetry()),
	)
	if err != nil {
		return fmt.Errorf("order created consumer: %w", err)
	}

	courierActionConsumer, err := kafka.NewConsumer(ctx, log, &cfg.Kafka, handlers.CourierAction,
		courier_action.New(log, businessApp.OrderService, handlers.CourierAction.ProcessTimeout, kafka.ProcessingRetry()),
	)
	if err != nil {
		if closeErr := orderCreatedConsumer.Close(); closeErr != nil {
			runLog.With(logger.NewField("error", closeErr)).Error("Failed to close Kafka consumer")
		}
		return fmt.Errorf("courier action consumer: %w", err)
	}

	consumers := []*kafka.Consumer{orderCreatedConsumer, courierActionConsumer}

	consumerGroup, consumerCtx := errgroup.WithContext(ongoingCtx)
	for _, consumer := range consumers {
		consumerGroup.Go(func() error {
			return consumer.Start(consumerCtx)
		})
	}

	consumerErr := make(chan error, 1)
	go func() {
		defer close(consumerErr)
		if err := consumerGroup.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			consumerErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-consumerErr:
		return fmt.Errorf("consumer: %w", err)
	case err := <-healthServerErr:
		return fmt.Errorf("healthcheck server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("Draining Kafka messages")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	err = healthServer.Shutdown(shutdownCtx)
	if err != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	stopOngoingGracefully()

	for _, consumer := range consumers {
		if err := consumer.Close(); err != nil {
			runLog.With(logger.NewField("error", err)).Error("Failed to close Kafka consumer")
		}
	}

	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Worker stopped")
	return nil
}

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

func initHealthcheckRouter(isShuttingDown *atomic.Bool, pool *pgxpool.Pool) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool))
	return mux
}
