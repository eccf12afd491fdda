//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/resto-analytics/internal/bootstrap"
	"github.com/yanqian/resto-analytics/internal/domain/analytics"
	"github.com/yanqian/resto-analytics/internal/domain/restaurant"
	"github.com/yanqian/resto-analytics/internal/infra/config"
	httpiface "github.com/yanqian/resto-analytics/internal/interface/http"
	"github.com/yanqian/resto-analytics/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAnalyticsConfig,
		providePostgresPool,
		provideOrderRepository,
		provideRestaurantRepository,
		provideAnalyticsStore,
		analytics.NewService,
		restaurant.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
