package restaurant

import (
	"context"
	"log/slog"
	"math"
	"time"

	apperrors "github.com/yanqian/resto-analytics/pkg/errors"
	"github.com/yanqian/resto-analytics/pkg/util"
)

const (
	defaultPerPage  = 10
	maxPerPage      = 100
	topLimit        = 3
	topWindowMonths = 1
)

// Service exposes restaurant listing and lookup capabilities.
type Service interface {
	List(ctx context.Context, q ListQuery) (Page, error)
	Get(ctx context.Context, id int64) (Restaurant, error)
	Top(ctx context.Context, q TopQuery) ([]Summary, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the restaurant domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "restaurant.service"),
		now:    util.NowUTC,
	}
}

func (s *service) List(ctx context.Context, q ListQuery) (Page, error) {
	q = sanitizeListQuery(q)

	summaries, total, err := s.repo.List(ctx, q)
	if err != nil {
		return Page{}, apperrors.Wrap(apperrors.CodeStorageUnavailable, "restaurant listing failed", err)
	}
	if summaries == nil {
		summaries = []Summary{}
	}

	lastPage := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return Page{
		Data: summaries,
		Pagination: Pagination{
			Total:       total,
			PerPage:     q.PerPage,
			CurrentPage: q.Page,
			LastPage:    lastPage,
		},
	}, nil
}

func (s *service) Get(ctx context.Context, id int64) (Restaurant, error) {
	record, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Restaurant{}, apperrors.Wrap(apperrors.CodeStorageUnavailable, "restaurant lookup failed", err)
	}
	if !found {
		return Restaurant{}, apperrors.Wrap(apperrors.CodeNotFound, "restaurant not found", nil)
	}
	return record, nil
}

func (s *service) Top(ctx context.Context, q TopQuery) ([]Summary, error) {
	now := s.now()
	start := now.AddDate(0, -topWindowMonths, 0)
	end := now

	if q.StartDate != "" {
		t, _, err := util.ParseDateTime(q.StartDate)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid start_date", err)
		}
		start = t
	}
	if q.EndDate != "" {
		t, dateOnly, err := util.ParseDateTime(q.EndDate)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid end_date", err)
		}
		if dateOnly {
			t = util.EndOfDay(t)
		}
		end = t
	}

	summaries, err := s.repo.TopByRevenue(ctx, start, end, topLimit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorageUnavailable, "top restaurants lookup failed", err)
	}
	if summaries == nil {
		summaries = []Summary{}
	}
	// Revenue is summed as raw float64 by both repositories; round once
	// here so the API reports 2-decimal currency amounts.
	for i := range summaries {
		summaries[i].TotalRevenue = round2(summaries[i].TotalRevenue)
	}
	return summaries, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sanitizeListQuery normalizes pagination and falls back to name order
// for unrecognized sort keys, mirroring lenient query-string handling.
func sanitizeListQuery(q ListQuery) ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	switch q.SortBy {
	case SortByRevenue, SortByOrders:
	default:
		q.SortBy = SortByName
	}
	return q
}
