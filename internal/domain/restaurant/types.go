package restaurant

// Restaurant is a venue row owned by storage.
type Restaurant struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Cuisine  string `json:"cuisine"`
}

// Summary is a listed restaurant with its order aggregates attached.
type Summary struct {
	Restaurant
	TotalRevenue float64 `json:"total_revenue"`
	TotalOrders  int64   `json:"total_orders"`
}

// SortBy selects the listing order.
type SortBy string

const (
	SortByName    SortBy = "name"
	SortByRevenue SortBy = "revenue"
	SortByOrders  SortBy = "orders"
)

// ListQuery scopes a restaurant listing request.
type ListQuery struct {
	Search   string
	Cuisine  string
	Location string
	SortBy   SortBy
	Page     int
	PerPage  int
}

// TopQuery carries the raw date window for the top-restaurants lookup.
type TopQuery struct {
	StartDate string
	EndDate   string
}

// Pagination describes the listing envelope metadata.
type Pagination struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

// Page is one listing page plus its pagination metadata.
type Page struct {
	Data       []Summary  `json:"data"`
	Pagination Pagination `json:"pagination"`
}
