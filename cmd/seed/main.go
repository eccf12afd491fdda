// Command seed materializes the development database. It imports
// restaurants.json / orders.json when present and falls back to
// faker-generated data otherwise.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaswdr/faker"

	"github.com/yanqian/resto-analytics/internal/infra/config"
	"github.com/yanqian/resto-analytics/pkg/logger"
	"github.com/yanqian/resto-analytics/pkg/util"
)

type restaurantRow struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Cuisine  string `json:"cuisine"`
}

type orderRow struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurant_id"`
	OrderAmount  float64 `json:"order_amount"`
	OrderTime    string  `json:"order_time"`
}

var cuisines = []string{"American", "Italian", "Japanese", "Mexican", "Indian", "Thai", "Seafood", "French"}

func main() {
	restaurantsPath := flag.String("restaurants", "data/restaurants.json", "path to restaurants.json")
	ordersPath := flag.String("orders", "data/orders.json", "path to orders.json")
	fakeRestaurants := flag.Int("fake-restaurants", 8, "restaurants to generate when no JSON file exists")
	fakeOrders := flag.Int("fake-orders", 400, "orders per restaurant to generate when no JSON file exists")
	flag.Parse()

	log := logger.New().With("component", "seed")

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if cfg.Postgres.DSN == "" {
		log.Error("postgres dsn is required for seeding; set POSTGRES_DSN")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("postgres connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := run(ctx, pool, log, *restaurantsPath, *ordersPath, *fakeRestaurants, *fakeOrders); err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	log.Info("seeding complete")
}

func run(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger, restaurantsPath, ordersPath string, fakeRestaurants, fakeOrders int) error {
	if err := ensureSchema(ctx, pool); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	restaurants, err := loadJSON[restaurantRow](restaurantsPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", restaurantsPath, err)
	}
	orders, err := loadJSON[orderRow](ordersPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", ordersPath, err)
	}

	if restaurants == nil {
		log.Info("restaurants file not found, generating fake data", "count", fakeRestaurants)
		restaurants, orders = generate(fakeRestaurants, fakeOrders)
	}

	for _, r := range restaurants {
		_, err := pool.Exec(ctx, `
			INSERT INTO restaurants (id, name, location, cuisine)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, location = EXCLUDED.location, cuisine = EXCLUDED.cuisine
		`, r.ID, r.Name, r.Location, r.Cuisine)
		if err != nil {
			return fmt.Errorf("upsert restaurant %d: %w", r.ID, err)
		}
	}
	log.Info("restaurants imported", "count", len(restaurants))

	for _, o := range orders {
		orderTime, _, err := util.ParseDateTime(o.OrderTime)
		if err != nil {
			return fmt.Errorf("order %d: %w", o.ID, err)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO orders (id, restaurant_id, order_amount, order_time)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET restaurant_id = EXCLUDED.restaurant_id,
			    order_amount = EXCLUDED.order_amount,
			    order_time = EXCLUDED.order_time
		`, o.ID, o.RestaurantID, o.OrderAmount, orderTime)
		if err != nil {
			return fmt.Errorf("upsert order %d: %w", o.ID, err)
		}
	}
	log.Info("orders imported", "count", len(orders))
	return nil
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS restaurants (
			id       BIGINT PRIMARY KEY,
			name     TEXT NOT NULL,
			location TEXT NOT NULL,
			cuisine  TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS orders (
			id            BIGINT PRIMARY KEY,
			restaurant_id BIGINT NOT NULL REFERENCES restaurants (id),
			order_amount  NUMERIC(10,2) NOT NULL,
			order_time    TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_orders_restaurant_time ON orders (restaurant_id, order_time);
	`)
	return err
}

// loadJSON returns nil without error when the file does not exist.
func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func generate(restaurantCount, ordersPerRestaurant int) ([]restaurantRow, []orderRow) {
	fake := faker.New()
	now := time.Now().UTC()
	windowStart := now.AddDate(0, -3, 0)

	restaurants := make([]restaurantRow, 0, restaurantCount)
	orders := make([]orderRow, 0, restaurantCount*ordersPerRestaurant)
	orderID := int64(1)

	for i := 0; i < restaurantCount; i++ {
		restaurants = append(restaurants, restaurantRow{
			ID:       int64(i + 1),
			Name:     fake.Company().Name(),
			Location: fake.Address().City(),
			Cuisine:  cuisines[fake.IntBetween(0, len(cuisines)-1)],
		})
		for j := 0; j < ordersPerRestaurant; j++ {
			orders = append(orders, orderRow{
				ID:           orderID,
				RestaurantID: int64(i + 1),
				OrderAmount:  fake.Float64(2, 8, 250),
				OrderTime:    fake.Time().TimeBetween(windowStart, now).Format(time.RFC3339),
			})
			orderID++
		}
	}
	return restaurants, orders
}
