package analytics

import (
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/yanqian/resto-analytics/pkg/errors"
	"github.com/yanqian/resto-analytics/pkg/util"
)

// resolveFilter applies the documented defaults to a raw query: the date
// window covers the trailing WindowMonths ending now, amounts span
// [0, MaxAmountLimit] and hours span [0, 23]. A bare end date is extended
// to the end of its calendar day so the bound stays inclusive.
func resolveFilter(q Query, now time.Time, cfg Config) (Filter, error) {
	filter := Filter{
		RestaurantID: q.RestaurantID,
		StartDate:    util.StartOfDay(now.AddDate(0, -cfg.WindowMonths, 0)),
		EndDate:      util.EndOfDay(now),
		MinAmount:    0,
		MaxAmount:    cfg.MaxAmountLimit,
		StartHour:    0,
		EndHour:      23,
	}

	if q.StartDate != "" {
		t, _, err := util.ParseDateTime(q.StartDate)
		if err != nil {
			return Filter{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid start_date", err)
		}
		filter.StartDate = t
	}
	if q.EndDate != "" {
		t, dateOnly, err := util.ParseDateTime(q.EndDate)
		if err != nil {
			return Filter{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid end_date", err)
		}
		if dateOnly {
			t = util.EndOfDay(t)
		}
		filter.EndDate = t
	}
	if q.MinAmount != "" {
		v, err := strconv.ParseFloat(q.MinAmount, 64)
		if err != nil {
			return Filter{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid min_amount", err)
		}
		filter.MinAmount = v
	}
	if q.MaxAmount != "" {
		v, err := strconv.ParseFloat(q.MaxAmount, 64)
		if err != nil {
			return Filter{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid max_amount", err)
		}
		filter.MaxAmount = v
	}
	if q.StartHour != "" {
		h, err := parseHour(q.StartHour)
		if err != nil {
			return Filter{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid start_hour", err)
		}
		filter.StartHour = h
	}
	if q.EndHour != "" {
		h, err := parseHour(q.EndHour)
		if err != nil {
			return Filter{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid end_hour", err)
		}
		filter.EndHour = h
	}

	return filter, nil
}

func parseHour(value string) (int, error) {
	h, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 23 {
		return 0, fmt.Errorf("hour %d outside [0,23]", h)
	}
	return h, nil
}
