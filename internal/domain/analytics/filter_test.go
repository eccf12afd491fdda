package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/resto-analytics/pkg/errors"
)

var testCfg = Config{
	CacheTTL:       10 * time.Minute,
	WindowMonths:   3,
	MaxAmountLimit: 999999,
}

func TestResolveFilter_Defaults(t *testing.T) {
	now := time.Date(2025, 7, 15, 13, 45, 12, 0, time.UTC)

	filter, err := resolveFilter(Query{RestaurantID: 5}, now, testCfg)
	require.NoError(t, err)

	require.Equal(t, int64(5), filter.RestaurantID)
	require.Equal(t, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), filter.StartDate)
	require.Equal(t, "2025-07-15", filter.EndDate.Format("2006-01-02"))
	require.Equal(t, 23, filter.EndDate.Hour())
	require.Equal(t, 0.0, filter.MinAmount)
	require.Equal(t, 999999.0, filter.MaxAmount)
	require.Equal(t, 0, filter.StartHour)
	require.Equal(t, 23, filter.EndHour)
}

func TestResolveFilter_ExplicitValues(t *testing.T) {
	now := time.Date(2025, 7, 15, 13, 0, 0, 0, time.UTC)
	q := Query{
		RestaurantID: 5,
		StartDate:    "2025-01-01",
		EndDate:      "2025-06-30",
		MinAmount:    "10.5",
		MaxAmount:    "500",
		StartHour:    "9",
		EndHour:      "18",
	}

	filter, err := resolveFilter(q, now, testCfg)
	require.NoError(t, err)

	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), filter.StartDate)
	// A bare end date covers its whole calendar day.
	require.Equal(t, 23, filter.EndDate.Hour())
	require.Equal(t, "2025-06-30", filter.EndDate.Format("2006-01-02"))
	require.Equal(t, 10.5, filter.MinAmount)
	require.Equal(t, 500.0, filter.MaxAmount)
	require.Equal(t, 9, filter.StartHour)
	require.Equal(t, 18, filter.EndHour)
}

func TestResolveFilter_DatetimeEndIsNotExtended(t *testing.T) {
	now := time.Date(2025, 7, 15, 13, 0, 0, 0, time.UTC)
	q := Query{RestaurantID: 5, EndDate: "2025-06-30T12:30:00"}

	filter, err := resolveFilter(q, now, testCfg)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 6, 30, 12, 30, 0, 0, time.UTC), filter.EndDate)
}

func TestResolveFilter_InvalidInputs(t *testing.T) {
	now := time.Date(2025, 7, 15, 13, 0, 0, 0, time.UTC)
	cases := []Query{
		{RestaurantID: 1, StartDate: "not-a-date"},
		{RestaurantID: 1, EndDate: "31/12/2025"},
		{RestaurantID: 1, MinAmount: "ten"},
		{RestaurantID: 1, MaxAmount: "1,000"},
		{RestaurantID: 1, StartHour: "24"},
		{RestaurantID: 1, EndHour: "-1"},
		{RestaurantID: 1, StartHour: "noon"},
	}

	for _, q := range cases {
		_, err := resolveFilter(q, now, testCfg)
		require.Error(t, err, "query %+v", q)
		require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), "query %+v", q)
	}
}

func TestResolveFilter_InvertedHoursAllowed(t *testing.T) {
	// A start hour past the end hour is not an error; the window just
	// matches nothing downstream.
	now := time.Date(2025, 7, 15, 13, 0, 0, 0, time.UTC)

	filter, err := resolveFilter(Query{RestaurantID: 1, StartHour: "20", EndHour: "4"}, now, testCfg)
	require.NoError(t, err)
	require.Equal(t, 20, filter.StartHour)
	require.Equal(t, 4, filter.EndHour)
}
