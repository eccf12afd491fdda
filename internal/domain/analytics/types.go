package analytics

import "time"

// Order is a read-only order row fetched from storage.
type Order struct {
	ID           int64
	RestaurantID int64
	Amount       float64
	Time         time.Time
}

// Query carries the raw request inputs before any defaulting. An empty
// string means the parameter was not supplied.
type Query struct {
	RestaurantID int64
	StartDate    string
	EndDate      string
	MinAmount    string
	MaxAmount    string
	StartHour    string
	EndHour      string
}

// Filter is the effective parameter set after defaults are applied.
type Filter struct {
	RestaurantID int64
	StartDate    time.Time
	EndDate      time.Time
	MinAmount    float64
	MaxAmount    float64
	StartHour    int
	EndHour      int
}

// DailyMetric holds the computed metrics for one calendar day.
type DailyMetric struct {
	Date          string  `json:"date"`
	Orders        int     `json:"orders"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
	PeakHour      int     `json:"peak_hour"`
}

// DateRange echoes the effective window of a result.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Result is the response envelope cached per filter set.
type Result struct {
	RestaurantID int64         `json:"restaurant_id"`
	DateRange    DateRange     `json:"date_range"`
	Analytics    []DailyMetric `json:"analytics"`
}

// Config tunes the analytics domain.
type Config struct {
	CacheTTL       time.Duration
	WindowMonths   int
	MaxAmountLimit float64
}
