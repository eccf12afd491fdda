package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheKey_Deterministic(t *testing.T) {
	q := Query{RestaurantID: 42, StartDate: "2025-01-01", EndHour: "20"}
	require.Equal(t, CacheKey(q), CacheKey(q))
}

func TestCacheKey_Format(t *testing.T) {
	key := CacheKey(Query{RestaurantID: 1})
	require.True(t, strings.HasPrefix(key, "analytics:"))
	require.Len(t, strings.TrimPrefix(key, "analytics:"), 32)
}

func TestCacheKey_DivergesPerFilter(t *testing.T) {
	base := Query{RestaurantID: 1}
	variants := []Query{
		{RestaurantID: 2},
		{RestaurantID: 1, StartDate: "2025-01-01"},
		{RestaurantID: 1, EndDate: "2025-02-01"},
		{RestaurantID: 1, MinAmount: "10"},
		{RestaurantID: 1, MaxAmount: "500"},
		{RestaurantID: 1, StartHour: "9"},
		{RestaurantID: 1, EndHour: "18"},
	}

	seen := map[string]bool{CacheKey(base): true}
	for _, q := range variants {
		key := CacheKey(q)
		require.False(t, seen[key], "query %+v collided", q)
		seen[key] = true
	}
}

func TestCacheKey_ExplicitDefaultDiffersFromOmitted(t *testing.T) {
	// Keys are derived from raw inputs, so spelling out a default still
	// produces a distinct cache entry.
	omitted := Query{RestaurantID: 1}
	explicit := Query{RestaurantID: 1, StartHour: "0", EndHour: "23"}
	require.NotEqual(t, CacheKey(omitted), CacheKey(explicit))
}
