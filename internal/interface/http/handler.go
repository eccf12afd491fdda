package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/resto-analytics/internal/domain/analytics"
	"github.com/yanqian/resto-analytics/internal/domain/restaurant"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	restaurantSvc restaurant.Service
	analyticsSvc  analytics.Service
	logger        *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(restaurantSvc restaurant.Service, analyticsSvc analytics.Service, logger *slog.Logger) *Handler {
	return &Handler{
		restaurantSvc: restaurantSvc,
		analyticsSvc:  analyticsSvc,
		logger:        logger.With("component", "http.handler"),
	}
}

// ListRestaurants handles search/filter/sort listing with pagination.
func (h *Handler) ListRestaurants(c *gin.Context) {
	q := restaurant.ListQuery{
		Search:   c.Query("search"),
		Cuisine:  c.Query("cuisine"),
		Location: c.Query("location"),
		SortBy:   restaurant.SortBy(c.Query("sort_by")),
	}

	var err error
	if q.Page, err = intQuery(c, "page", 1); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "page must be an integer", err))
		return
	}
	if q.PerPage, err = intQuery(c, "per_page", 10); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "per_page must be an integer", err))
		return
	}

	page, err := h.restaurantSvc.List(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetRestaurant returns a single restaurant by id.
func (h *Handler) GetRestaurant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "restaurant id must be an integer", err))
		return
	}

	record, err := h.restaurantSvc.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, record)
}

// TopRestaurants returns the highest-revenue restaurants in a window.
func (h *Handler) TopRestaurants(c *gin.Context) {
	summaries, err := h.restaurantSvc.Top(c.Request.Context(), restaurant.TopQuery{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summaries})
}

// RestaurantAnalytics returns per-day order metrics for one restaurant.
// All filters are optional; the domain applies the documented defaults.
func (h *Handler) RestaurantAnalytics(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "restaurant id must be an integer", err))
		return
	}

	result, err := h.analyticsSvc.RestaurantAnalytics(c.Request.Context(), analytics.Query{
		RestaurantID: id,
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		MinAmount:    c.Query("min_amount"),
		MaxAmount:    c.Query("max_amount"),
		StartHour:    c.Query("start_hour"),
		EndHour:      c.Query("end_hour"),
	})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, result)
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
