package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"marketplace/internal/pkg/config"
	"marketplace/internal/pkg/postgres"
	"marketplace/migrations"
	"marketplace/pkg/logger/zap_adapter"
	"marketplace/pkg/querier"
)

var (
	querierInstance *querier.Querier
	poolInstance    *pgxpool.Pool
	querierOnce     sync.Once
)

func GetQuerier() *querier.Querier {
	querierOnce.Do(func() {
		// godotenv.Load(.env.test) не вызываем так как Makefile подгружает их
		cfg := &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: 8,
			MinConns: 1,
		}

		ctx := context.Background()

		zapLogger, err := zap_adapter.NewZapAdapter()
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Printf("failed to sync logger: %v", err)
			}
		}()

		connPool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			panic(err)
		}

		if err := postgres.Migrate(ctx, zapLogger, connPool, migrations.FS); err != nil {
			panic(err)
		}

		poolInstance = connPool
		querierInstance = querier.New(connPool, pgxv5.DefaultCtxGetter)
	})

	return querierInstance
}

// GetPool пул под тем же querierOnce, нужен менеджеру транзакций.
func GetPool() *pgxpool.Pool {
	GetQuerier()
	return poolInstance
}

// BaseFixture пользователи и объявления, на которые ссылаются заказы и задачи.
const BaseFixture = `
	INSERT INTO users (id, name, role) VALUES
		(1, 'Buyer', 'user'),
		(2, 'Seller', 'user'),
		(3, 'Courier', 'delivery'),
		(4, 'Second Courier', 'delivery'),
		(9, 'Admin', 'admin');

	INSERT INTO listings (id, created_by, title, price, listing_type, latitude, longitude, city, area_code,
		delivery_rate_per_10km, delivery_mode)
	VALUES (7, 2, 'Desk lamp', 500.00, 'buy', 12.9716, 77.5946, 'Bengaluru', '560001', 20.00, 'platform');
`

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
		TRUNCATE TABLE action_logs, notifications, delivery_jobs, orders, listings, users RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}
