package restaurantrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/resto-analytics/internal/domain/restaurant"
)

// PostgresRepository implements restaurant.Repository using pgx.
type PostgresRepository struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *PostgresRepository {
	return &PostgresRepository{pool: pool, queryTimeout: queryTimeout}
}

// List implements restaurant.Repository.
func (r *PostgresRepository) List(ctx context.Context, q restaurant.ListQuery) ([]restaurant.Summary, int64, error) {
	ctx, cancel := r.boundContext(ctx)
	defer cancel()

	where, args := buildListFilter(q)

	var total int64
	countQuery := "SELECT COUNT(*) FROM restaurants r" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := "r.name ASC"
	switch q.SortBy {
	case restaurant.SortByRevenue:
		orderBy = "total_revenue DESC"
	case restaurant.SortByOrders:
		orderBy = "total_orders DESC"
	}

	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	args = append(args, q.PerPage, (q.Page-1)*q.PerPage)

	listQuery := fmt.Sprintf(`
		SELECT r.id, r.name, r.location, r.cuisine,
		       COALESCE(SUM(o.order_amount), 0) AS total_revenue,
		       COUNT(o.id) AS total_orders
		FROM restaurants r
		LEFT JOIN orders o ON o.restaurant_id = r.id
		%s
		GROUP BY r.id, r.name, r.location, r.cuisine
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, orderBy, limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, rows.Err()
}

// FindByID implements restaurant.Repository.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (restaurant.Restaurant, bool, error) {
	ctx, cancel := r.boundContext(ctx)
	defer cancel()

	var record restaurant.Restaurant
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, location, cuisine
		FROM restaurants
		WHERE id = $1
	`, id).Scan(&record.ID, &record.Name, &record.Location, &record.Cuisine)
	if errors.Is(err, pgx.ErrNoRows) {
		return restaurant.Restaurant{}, false, nil
	}
	if err != nil {
		return restaurant.Restaurant{}, false, err
	}
	return record, true, nil
}

// TopByRevenue implements restaurant.Repository. Orders outside the
// window are excluded from the aggregates via the join condition.
func (r *PostgresRepository) TopByRevenue(ctx context.Context, start, end time.Time, limit int) ([]restaurant.Summary, error) {
	ctx, cancel := r.boundContext(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.name, r.location, r.cuisine,
		       COALESCE(SUM(o.order_amount), 0) AS total_revenue,
		       COUNT(o.id) AS total_orders
		FROM restaurants r
		LEFT JOIN orders o
		  ON o.restaurant_id = r.id
		 AND o.order_time BETWEEN $1 AND $2
		GROUP BY r.id, r.name, r.location, r.cuisine
		ORDER BY total_revenue DESC
		LIMIT $3
	`, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, err
	}
	return summaries, rows.Err()
}

func (r *PostgresRepository) boundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout > 0 {
		return context.WithTimeout(ctx, r.queryTimeout)
	}
	return ctx, func() {}
}

func buildListFilter(q restaurant.ListQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		conds = append(conds, fmt.Sprintf("r.name ILIKE $%d", len(args)))
	}
	if q.Cuisine != "" {
		args = append(args, q.Cuisine)
		conds = append(conds, fmt.Sprintf("r.cuisine = $%d", len(args)))
	}
	if q.Location != "" {
		args = append(args, q.Location)
		conds = append(conds, fmt.Sprintf("r.location = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanSummaries(rows pgx.Rows) ([]restaurant.Summary, error) {
	var summaries []restaurant.Summary
	for rows.Next() {
		var s restaurant.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Cuisine, &s.TotalRevenue, &s.TotalOrders); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

var _ restaurant.Repository = (*PostgresRepository)(nil)
