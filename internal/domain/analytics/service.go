package analytics

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/resto-analytics/pkg/errors"
	"github.com/yanqian/resto-analytics/pkg/util"
)

// Service exposes per-restaurant order analytics.
type Service interface {
	RestaurantAnalytics(ctx context.Context, q Query) (Result, error)
}

type service struct {
	cfg    Config
	repo   OrderRepository
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the analytics domain.
func NewService(cfg Config, repo OrderRepository, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		store:  store,
		logger: logger.With("component", "analytics.service"),
		now:    util.NowUTC,
	}
}

// RestaurantAnalytics runs the cache-first pipeline: defaulting, cache
// lookup, order fetch, daily aggregation, envelope assembly, cache write.
// Cache failures degrade to a miss rather than failing the request.
func (s *service) RestaurantAnalytics(ctx context.Context, q Query) (Result, error) {
	filter, err := resolveFilter(q, s.now(), s.cfg)
	if err != nil {
		return Result{}, err
	}

	key := CacheKey(q)
	if cached, found, err := s.store.Get(ctx, key); err != nil {
		s.logger.Warn("cache lookup failed", "key", key, "error", err)
	} else if found {
		s.logger.Debug("cache hit", "key", key)
		return cached, nil
	}

	orders, err := s.repo.FetchOrders(ctx, filter.RestaurantID, filter.StartDate, filter.EndDate, filter.MinAmount, filter.MaxAmount)
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.CodeStorageUnavailable, "order fetch failed", err)
	}

	daily, err := AggregateDaily(orders, filter.StartHour, filter.EndHour)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		RestaurantID: filter.RestaurantID,
		DateRange: DateRange{
			Start: filter.StartDate.Format(util.DateLayout),
			End:   filter.EndDate.Format(util.DateLayout),
		},
		Analytics: daily,
	}

	if err := s.store.Save(ctx, key, result, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("cache save failed", "key", key, "error", err)
	}
	return result, nil
}
