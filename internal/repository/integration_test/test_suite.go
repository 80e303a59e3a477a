package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/postgres"
	"dispatch/pkg/logger/zap_adapter"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const postgresImage = "postgres:16-alpine"

var (
	poolInstance    *pgxpool.Pool
	querierInstance *querier.Querier
	querierOnce     sync.Once
)

func GetQuerier() *querier.Querier {
	querierOnce.Do(func() {
		ctx := context.Background()

		zapLogger := zap_adapter.NewNop()

		// POSTGRES_* подгружает Makefile; без них поднимаем контейнер.
		// Контейнер удаляет reaper testcontainers после завершения процесса.
		var (
			pool *pgxpool.Pool
			err  error
		)
		if os.Getenv("POSTGRES_HOST") != "" {
			cfg := &config.Database{
				Host:     os.Getenv("POSTGRES_HOST"),
				Port:     os.Getenv("POSTGRES_PORT"),
				User:     os.Getenv("POSTGRES_USER"),
				Password: os.Getenv("POSTGRES_PASSWORD"),
				DBName:   os.Getenv("POSTGRES_DB"),
				SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			}
			pool, err = postgres.NewConnPool(ctx, zapLogger, cfg)
		} else {
			pool, err = startContainer(ctx)
		}
		if err != nil {
			log.Fatalf("failed to connect to test database: %v", err)
		}

		if err := postgres.Migrate(ctx, zapLogger, pool); err != nil {
			log.Fatalf("failed to migrate test database: %v", err)
		}

		poolInstance = pool
		querierInstance = querier.New(pool, pgxv5.DefaultCtxGetter)
	})

	return querierInstance
}

// GetTxManager менеджер транзакций поверх того же пула, что и GetQuerier.
func GetTxManager() *tx.Manager {
	GetQuerier()
	return tx.New(poolInstance, "")
}

func startContainer(ctx context.Context) (*pgxpool.Pool, error) {
	container, err := tcpostgres.Run(ctx,
		postgresImage,
		tcpostgres.WithDatabase("dispatch"),
		tcpostgres.WithUsername("dispatch"),
		tcpostgres.WithPassword("dispatch"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute)),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	return pgxpool.New(ctx, dsn)
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE earning_events, courier_payouts, orders, couriers, dispatch_settings RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}
