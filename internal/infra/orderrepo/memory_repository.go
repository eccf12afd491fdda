package orderrepo

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/resto-analytics/internal/domain/analytics"
)

// MemoryRepository is an in-memory OrderRepository used for tests/dev.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders []analytics.Order
}

// NewMemoryRepository constructs a repo seeded with the given orders.
func NewMemoryRepository(orders ...analytics.Order) *MemoryRepository {
	return &MemoryRepository{orders: append([]analytics.Order(nil), orders...)}
}

// Insert adds an order row.
func (r *MemoryRepository) Insert(order analytics.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
}

// FetchOrders implements analytics.OrderRepository.
func (r *MemoryRepository) FetchOrders(_ context.Context, restaurantID int64, start, end time.Time, minAmount, maxAmount float64) ([]analytics.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []analytics.Order
	for _, order := range r.orders {
		if order.RestaurantID != restaurantID {
			continue
		}
		if order.Time.Before(start) || order.Time.After(end) {
			continue
		}
		if order.Amount < minAmount || order.Amount > maxAmount {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

var _ analytics.OrderRepository = (*MemoryRepository)(nil)
