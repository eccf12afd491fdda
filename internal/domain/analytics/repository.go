package analytics

import (
	"context"
	"time"
)

// OrderRepository fetches order rows from persistent storage. Both time
// and amount bounds are inclusive; no ordering is guaranteed.
type OrderRepository interface {
	FetchOrders(ctx context.Context, restaurantID int64, start, end time.Time, minAmount, maxAmount float64) ([]Order, error)
}
