package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/resto-analytics/internal/domain/analytics"
	"github.com/yanqian/resto-analytics/internal/domain/restaurant"
	"github.com/yanqian/resto-analytics/internal/infra/analyticsstore"
	"github.com/yanqian/resto-analytics/internal/infra/config"
	"github.com/yanqian/resto-analytics/internal/infra/orderrepo"
	"github.com/yanqian/resto-analytics/internal/infra/restaurantrepo"
)

func provideAnalyticsConfig(cfg *config.Config) analytics.Config {
	return analytics.Config{
		CacheTTL:       cfg.Analytics.CacheTTL,
		WindowMonths:   cfg.Analytics.WindowMonths,
		MaxAmountLimit: cfg.Analytics.MaxAmountLimit,
	}
}

// providePostgresPool returns a ready pool, or nil when Postgres is not
// configured or unreachable; repositories then fall back to memory.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideOrderRepository(pool *pgxpool.Pool, cfg *config.Config) analytics.OrderRepository {
	if pool == nil {
		return orderrepo.NewMemoryRepository()
	}
	return orderrepo.NewPostgresRepository(pool, cfg.Postgres.QueryTimeout)
}

func provideRestaurantRepository(pool *pgxpool.Pool, cfg *config.Config) restaurant.Repository {
	if pool == nil {
		return restaurantrepo.NewMemoryRepository(nil, nil)
	}
	return restaurantrepo.NewPostgresRepository(pool, cfg.Postgres.QueryTimeout)
}

func provideAnalyticsStore(cfg *config.Config, logger *slog.Logger) analytics.Store {
	if cfg.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return analyticsstore.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return analyticsstore.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey analytics store enabled", "addr", cfg.Valkey.Addr)
			return analyticsstore.NewValkeyStore(client)
		}
	}
	return analyticsstore.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
