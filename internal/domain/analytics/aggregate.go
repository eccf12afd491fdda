package analytics

import (
	"fmt"
	"math"
	"sort"

	apperrors "github.com/yanqian/resto-analytics/pkg/errors"
	"github.com/yanqian/resto-analytics/pkg/util"
)

type dayBucket struct {
	sum   float64
	count int
	hours [24]int
}

// AggregateDaily groups orders into per-day buckets and computes the four
// metrics for each day. Orders whose hour falls outside the inclusive
// [startHour, endHour] interval are dropped; the interval does not wrap
// past midnight, so startHour > endHour simply matches nothing. Input
// order does not matter and the output is sorted ascending by date.
func AggregateDaily(orders []Order, startHour, endHour int) ([]DailyMetric, error) {
	buckets := make(map[string]*dayBucket)
	for _, order := range orders {
		if order.Time.IsZero() {
			return nil, apperrors.Wrap(apperrors.CodeDataIntegrity, fmt.Sprintf("order %d has no timestamp", order.ID), nil)
		}
		if math.IsNaN(order.Amount) || math.IsInf(order.Amount, 0) {
			return nil, apperrors.Wrap(apperrors.CodeDataIntegrity, fmt.Sprintf("order %d has a non-numeric amount", order.ID), nil)
		}

		t := order.Time.UTC()
		hour := t.Hour()
		if hour < startHour || hour > endHour {
			continue
		}

		date := t.Format(util.DateLayout)
		bucket := buckets[date]
		if bucket == nil {
			bucket = &dayBucket{}
			buckets[date] = bucket
		}
		bucket.sum += order.Amount
		bucket.count++
		bucket.hours[hour]++
	}

	metrics := make([]DailyMetric, 0, len(buckets))
	for date, bucket := range buckets {
		metrics = append(metrics, DailyMetric{
			Date:   date,
			Orders: bucket.count,
			// The average is taken over the unrounded sum and rounded once.
			Revenue:       round2(bucket.sum),
			AvgOrderValue: round2(bucket.sum / float64(bucket.count)),
			PeakHour:      peakHour(bucket.hours),
		})
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Date < metrics[j].Date })
	return metrics, nil
}

// peakHour scans ascending and keeps the first maximum, so ties resolve
// to the lowest hour.
func peakHour(hours [24]int) int {
	peak := 0
	for h := 1; h < 24; h++ {
		if hours[h] > hours[peak] {
			peak = h
		}
	}
	return peak
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
