package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/resto-analytics/internal/domain/analytics"
	"github.com/yanqian/resto-analytics/internal/domain/restaurant"
	"github.com/yanqian/resto-analytics/internal/infra/config"
	apperrors "github.com/yanqian/resto-analytics/pkg/errors"
	"github.com/yanqian/resto-analytics/pkg/logger"
)

type stubRestaurantService struct {
	listFn func(ctx context.Context, q restaurant.ListQuery) (restaurant.Page, error)
	getFn  func(ctx context.Context, id int64) (restaurant.Restaurant, error)
	topFn  func(ctx context.Context, q restaurant.TopQuery) ([]restaurant.Summary, error)
}

func (s *stubRestaurantService) List(ctx context.Context, q restaurant.ListQuery) (restaurant.Page, error) {
	if s.listFn == nil {
		return restaurant.Page{Data: []restaurant.Summary{}}, nil
	}
	return s.listFn(ctx, q)
}

func (s *stubRestaurantService) Get(ctx context.Context, id int64) (restaurant.Restaurant, error) {
	if s.getFn == nil {
		return restaurant.Restaurant{}, apperrors.Wrap(apperrors.CodeNotFound, "restaurant not found", nil)
	}
	return s.getFn(ctx, id)
}

func (s *stubRestaurantService) Top(ctx context.Context, q restaurant.TopQuery) ([]restaurant.Summary, error) {
	if s.topFn == nil {
		return []restaurant.Summary{}, nil
	}
	return s.topFn(ctx, q)
}

type stubAnalyticsService struct {
	fn func(ctx context.Context, q analytics.Query) (analytics.Result, error)
}

func (s *stubAnalyticsService) RestaurantAnalytics(ctx context.Context, q analytics.Query) (analytics.Result, error) {
	return s.fn(ctx, q)
}

func newRouterUnderTest(restaurantSvc restaurant.Service, analyticsSvc analytics.Service) http.Handler {
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address: ":0",
			Retry: config.RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: time.Millisecond,
			},
		},
	}
	handler := NewHandler(restaurantSvc, analyticsSvc, logger.New())
	return NewRouter(cfg, handler).Handler
}

func performGet(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeErrorBody(t *testing.T, body []byte) map[string]map[string]string {
	t.Helper()
	var decoded map[string]map[string]string
	require.NoError(t, json.Unmarshal(body, &decoded))
	return decoded
}

func TestRouter_AnalyticsSuccess(t *testing.T) {
	want := analytics.Result{
		RestaurantID: 12,
		DateRange:    analytics.DateRange{Start: "2025-04-15", End: "2025-07-15"},
		Analytics: []analytics.DailyMetric{
			{Date: "2025-07-01", Orders: 3, Revenue: 350, AvgOrderValue: 116.67, PeakHour: 9},
		},
	}
	svc := &stubAnalyticsService{fn: func(_ context.Context, q analytics.Query) (analytics.Result, error) {
		require.Equal(t, int64(12), q.RestaurantID)
		require.Equal(t, "9", q.StartHour)
		return want, nil
	}}

	recorder := performGet(t, newRouterUnderTest(&stubRestaurantService{}, svc), "/api/v1/restaurants/12/analytics?start_hour=9")
	require.Equal(t, http.StatusOK, recorder.Code)

	var got analytics.Result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, want, got)
}

func TestRouter_AnalyticsEmptyIsStillOK(t *testing.T) {
	svc := &stubAnalyticsService{fn: func(_ context.Context, _ analytics.Query) (analytics.Result, error) {
		return analytics.Result{
			RestaurantID: 12,
			DateRange:    analytics.DateRange{Start: "2025-04-15", End: "2025-07-15"},
			Analytics:    []analytics.DailyMetric{},
		}, nil
	}}

	recorder := performGet(t, newRouterUnderTest(&stubRestaurantService{}, svc), "/api/v1/restaurants/12/analytics")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"analytics":[]`)
}

func TestRouter_AnalyticsInvalidFilter(t *testing.T) {
	svc := &stubAnalyticsService{fn: func(_ context.Context, _ analytics.Query) (analytics.Result, error) {
		return analytics.Result{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid start_hour", nil)
	}}

	recorder := performGet(t, newRouterUnderTest(&stubRestaurantService{}, svc), "/api/v1/restaurants/12/analytics?start_hour=25")
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_AnalyticsNonNumericID(t *testing.T) {
	svc := &stubAnalyticsService{fn: func(_ context.Context, _ analytics.Query) (analytics.Result, error) {
		t.Fatal("service must not be called")
		return analytics.Result{}, nil
	}}

	recorder := performGet(t, newRouterUnderTest(&stubRestaurantService{}, svc), "/api/v1/restaurants/pizza/analytics")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_RestaurantNotFound(t *testing.T) {
	router := newRouterUnderTest(&stubRestaurantService{}, &stubAnalyticsService{fn: nil})

	recorder := performGet(t, router, "/api/v1/restaurants/99")
	require.Equal(t, http.StatusNotFound, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "not_found", errBody["error"]["code"])
}

func TestRouter_ListPassesFilters(t *testing.T) {
	svc := &stubRestaurantService{listFn: func(_ context.Context, q restaurant.ListQuery) (restaurant.Page, error) {
		require.Equal(t, "grill", q.Search)
		require.Equal(t, "Seafood", q.Cuisine)
		require.Equal(t, restaurant.SortByRevenue, q.SortBy)
		require.Equal(t, 2, q.Page)
		return restaurant.Page{
			Data:       []restaurant.Summary{{Restaurant: restaurant.Restaurant{ID: 3, Name: "Harbor Grill"}}},
			Pagination: restaurant.Pagination{Total: 11, PerPage: 10, CurrentPage: 2, LastPage: 2},
		}, nil
	}}

	recorder := performGet(t, newRouterUnderTest(svc, &stubAnalyticsService{}), "/api/v1/restaurants?search=grill&cuisine=Seafood&sort_by=revenue&page=2")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"last_page":2`)
}

func TestRouter_ListRejectsBadPage(t *testing.T) {
	recorder := performGet(t, newRouterUnderTest(&stubRestaurantService{}, &stubAnalyticsService{}), "/api/v1/restaurants?page=two")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_TopRestaurants(t *testing.T) {
	svc := &stubRestaurantService{topFn: func(_ context.Context, q restaurant.TopQuery) ([]restaurant.Summary, error) {
		require.Equal(t, "2025-01-01", q.StartDate)
		return []restaurant.Summary{
			{Restaurant: restaurant.Restaurant{ID: 2, Name: "Casa Verde"}, TotalRevenue: 250, TotalOrders: 1},
		}, nil
	}}

	recorder := performGet(t, newRouterUnderTest(svc, &stubAnalyticsService{}), "/api/v1/top-restaurants?start_date=2025-01-01")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"total_revenue":250`)
}

func TestRouter_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	svc := &stubAnalyticsService{fn: func(_ context.Context, _ analytics.Query) (analytics.Result, error) {
		attempts++
		if attempts < 3 {
			return analytics.Result{}, apperrors.Wrap(apperrors.CodeStorageUnavailable, "db down", nil)
		}
		return analytics.Result{RestaurantID: 5, Analytics: []analytics.DailyMetric{}}, nil
	}}

	recorder := performGet(t, newRouterUnderTest(&stubRestaurantService{}, svc), "/api/v1/restaurants/5/analytics")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 3, attempts)
}

func TestRouter_Healthz(t *testing.T) {
	recorder := performGet(t, newRouterUnderTest(&stubRestaurantService{}, &stubAnalyticsService{}), "/healthz")
	require.Equal(t, http.StatusOK, recorder.Code)
}
