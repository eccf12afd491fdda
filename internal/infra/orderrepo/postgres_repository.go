package orderrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/resto-analytics/internal/domain/analytics"
)

// PostgresRepository implements analytics.OrderRepository using pgx.
type PostgresRepository struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresRepository constructs the repository. queryTimeout bounds
// each fetch defensively; zero disables the bound.
func NewPostgresRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *PostgresRepository {
	return &PostgresRepository{pool: pool, queryTimeout: queryTimeout}
}

// FetchOrders returns every order inside the inclusive time and amount
// bounds. No ORDER BY: the aggregator makes no ordering assumption.
func (r *PostgresRepository) FetchOrders(ctx context.Context, restaurantID int64, start, end time.Time, minAmount, maxAmount float64) ([]analytics.Order, error) {
	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, restaurant_id, order_amount, order_time
		FROM orders
		WHERE restaurant_id = $1
		  AND order_time BETWEEN $2 AND $3
		  AND order_amount BETWEEN $4 AND $5
	`, restaurantID, start, end, minAmount, maxAmount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []analytics.Order
	for rows.Next() {
		var order analytics.Order
		if err := rows.Scan(&order.ID, &order.RestaurantID, &order.Amount, &order.Time); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

var _ analytics.OrderRepository = (*PostgresRepository)(nil)
