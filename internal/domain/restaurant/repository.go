package restaurant

import (
	"context"
	"time"
)

// Repository defines the storage contract for restaurant reads.
type Repository interface {
	// List returns one page of summaries plus the total row count for
	// the filter (ignoring pagination).
	List(ctx context.Context, q ListQuery) ([]Summary, int64, error)
	FindByID(ctx context.Context, id int64) (Restaurant, bool, error)
	// TopByRevenue ranks restaurants by order revenue inside the window.
	TopByRevenue(ctx context.Context, start, end time.Time, limit int) ([]Summary, error)
}
