package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/resto-analytics/pkg/errors"
)

type stubOrderRepo struct {
	orders  []Order
	err     error
	calls   int
	lastMin float64
	lastMax float64
}

func (s *stubOrderRepo) FetchOrders(_ context.Context, _ int64, _, _ time.Time, minAmount, maxAmount float64) ([]Order, error) {
	s.calls++
	s.lastMin = minAmount
	s.lastMax = maxAmount
	return s.orders, s.err
}

type stubStore struct {
	entries map[string]Result
	getErr  error
	saveErr error
	lastTTL time.Duration
	saves   int
}

func newStubStore() *stubStore {
	return &stubStore{entries: map[string]Result{}}
}

func (s *stubStore) Get(_ context.Context, key string) (Result, bool, error) {
	if s.getErr != nil {
		return Result{}, false, s.getErr
	}
	result, ok := s.entries[key]
	return result, ok, nil
}

func (s *stubStore) Save(_ context.Context, key string, result Result, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.lastTTL = ttl
	s.entries[key] = result
	return nil
}

func newTestService(repo OrderRepository, store Store) *service {
	return &service{
		cfg:    testCfg,
		repo:   repo,
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return time.Date(2025, 7, 15, 13, 0, 0, 0, time.UTC) },
	}
}

func TestService_MissFetchesAggregatesAndSaves(t *testing.T) {
	repo := &stubOrderRepo{orders: []Order{
		orderAt(1, 100, "2025-07-01T09:00"),
		orderAt(2, 50, "2025-07-01T09:30"),
		orderAt(3, 200, "2025-07-01T14:00"),
	}}
	store := newStubStore()
	svc := newTestService(repo, store)

	result, err := svc.RestaurantAnalytics(context.Background(), Query{RestaurantID: 7})
	require.NoError(t, err)

	require.Equal(t, int64(7), result.RestaurantID)
	require.Equal(t, DateRange{Start: "2025-04-15", End: "2025-07-15"}, result.DateRange)
	require.Len(t, result.Analytics, 1)
	require.Equal(t, 3, result.Analytics[0].Orders)
	require.Equal(t, 350.00, result.Analytics[0].Revenue)

	require.Equal(t, 1, repo.calls)
	require.Equal(t, 1, store.saves)
	require.Equal(t, 10*time.Minute, store.lastTTL)
	require.Equal(t, 999999.0, repo.lastMax)
}

func TestService_HitSkipsStorage(t *testing.T) {
	repo := &stubOrderRepo{}
	store := newStubStore()
	svc := newTestService(repo, store)

	q := Query{RestaurantID: 7, StartHour: "9"}
	cached := Result{RestaurantID: 7, Analytics: []DailyMetric{{Date: "2025-07-01", Orders: 2}}}
	store.entries[CacheKey(q)] = cached

	result, err := svc.RestaurantAnalytics(context.Background(), q)
	require.NoError(t, err)
	require.Equal(t, cached, result)
	require.Zero(t, repo.calls)
}

func TestService_NoOrdersYieldsEmptyAnalytics(t *testing.T) {
	repo := &stubOrderRepo{}
	store := newStubStore()
	svc := newTestService(repo, store)

	result, err := svc.RestaurantAnalytics(context.Background(), Query{RestaurantID: 9})
	require.NoError(t, err)
	require.NotNil(t, result.Analytics)
	require.Empty(t, result.Analytics)
	require.Equal(t, DateRange{Start: "2025-04-15", End: "2025-07-15"}, result.DateRange)
}

func TestService_StorageFailurePropagates(t *testing.T) {
	repo := &stubOrderRepo{err: errors.New("connection refused")}
	store := newStubStore()
	svc := newTestService(repo, store)

	_, err := svc.RestaurantAnalytics(context.Background(), Query{RestaurantID: 7})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorageUnavailable))
	require.Zero(t, store.saves)
}

func TestService_CacheGetFailureDegradesToMiss(t *testing.T) {
	repo := &stubOrderRepo{orders: []Order{orderAt(1, 25, "2025-07-02T11:00")}}
	store := newStubStore()
	store.getErr = errors.New("cache down")
	svc := newTestService(repo, store)

	result, err := svc.RestaurantAnalytics(context.Background(), Query{RestaurantID: 7})
	require.NoError(t, err)
	require.Len(t, result.Analytics, 1)
	require.Equal(t, 1, repo.calls)
}

func TestService_CacheSaveFailureIsNonFatal(t *testing.T) {
	repo := &stubOrderRepo{orders: []Order{orderAt(1, 25, "2025-07-02T11:00")}}
	store := newStubStore()
	store.saveErr = errors.New("cache down")
	svc := newTestService(repo, store)

	result, err := svc.RestaurantAnalytics(context.Background(), Query{RestaurantID: 7})
	require.NoError(t, err)
	require.Len(t, result.Analytics, 1)
}

func TestService_InvalidQueryRejectedBeforeFetch(t *testing.T) {
	repo := &stubOrderRepo{}
	store := newStubStore()
	svc := newTestService(repo, store)

	_, err := svc.RestaurantAnalytics(context.Background(), Query{RestaurantID: 7, StartHour: "25"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Zero(t, repo.calls)
}
