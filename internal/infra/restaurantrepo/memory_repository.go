package restaurantrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yanqian/resto-analytics/internal/domain/analytics"
	"github.com/yanqian/resto-analytics/internal/domain/restaurant"
)

// MemoryRepository is an in-memory restaurant.Repository for tests/dev.
type MemoryRepository struct {
	mu          sync.RWMutex
	restaurants []restaurant.Restaurant
	orders      []analytics.Order
}

// NewMemoryRepository constructs a repo over the given rows.
func NewMemoryRepository(restaurants []restaurant.Restaurant, orders []analytics.Order) *MemoryRepository {
	return &MemoryRepository{
		restaurants: append([]restaurant.Restaurant(nil), restaurants...),
		orders:      append([]analytics.Order(nil), orders...),
	}
}

// List implements restaurant.Repository.
func (r *MemoryRepository) List(_ context.Context, q restaurant.ListQuery) ([]restaurant.Summary, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []restaurant.Summary
	for _, rec := range r.restaurants {
		if q.Search != "" && !strings.Contains(strings.ToLower(rec.Name), strings.ToLower(q.Search)) {
			continue
		}
		if q.Cuisine != "" && rec.Cuisine != q.Cuisine {
			continue
		}
		if q.Location != "" && rec.Location != q.Location {
			continue
		}
		matched = append(matched, r.summarize(rec, time.Time{}, time.Time{}))
	}

	switch q.SortBy {
	case restaurant.SortByRevenue:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].TotalRevenue > matched[j].TotalRevenue })
	case restaurant.SortByOrders:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].TotalOrders > matched[j].TotalOrders })
	default:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	}

	total := int64(len(matched))
	offset := (q.Page - 1) * q.PerPage
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + q.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// FindByID implements restaurant.Repository.
func (r *MemoryRepository) FindByID(_ context.Context, id int64) (restaurant.Restaurant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.restaurants {
		if rec.ID == id {
			return rec, true, nil
		}
	}
	return restaurant.Restaurant{}, false, nil
}

// TopByRevenue implements restaurant.Repository.
func (r *MemoryRepository) TopByRevenue(_ context.Context, start, end time.Time, limit int) ([]restaurant.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]restaurant.Summary, 0, len(r.restaurants))
	for _, rec := range r.restaurants {
		summaries = append(summaries, r.summarize(rec, start, end))
	}
	sort.SliceStable(summaries, func(i, j int) bool { return summaries[i].TotalRevenue > summaries[j].TotalRevenue })
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// summarize aggregates the restaurant's orders, optionally bounded by an
// inclusive time window (zero bounds mean unbounded).
func (r *MemoryRepository) summarize(rec restaurant.Restaurant, start, end time.Time) restaurant.Summary {
	summary := restaurant.Summary{Restaurant: rec}
	for _, order := range r.orders {
		if order.RestaurantID != rec.ID {
			continue
		}
		if !start.IsZero() && order.Time.Before(start) {
			continue
		}
		if !end.IsZero() && order.Time.After(end) {
			continue
		}
		summary.TotalRevenue += order.Amount
		summary.TotalOrders++
	}
	return summary
}

var _ restaurant.Repository = (*MemoryRepository)(nil)
