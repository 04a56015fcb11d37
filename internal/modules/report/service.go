package report

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/georgemunganga/salesboard/internal/apperr"
)

// Service defines the dashboard aggregates. Month and year arrive as raw
// query-string values and are coerced here.
type Service interface {
	Statistics(ctx context.Context, month, year string) (*Statistics, error)
	BarChart(ctx context.Context, month string) (Counts, error)
	PieChart(ctx context.Context, month string) (Counts, error)
	// Combined runs the three aggregates concurrently. Any failure fails the
	// whole call.
	Combined(ctx context.Context, month, year string) (*Combined, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repo: repo, logger: logger}
}

func (s *service) Statistics(ctx context.Context, month, year string) (*Statistics, error) {
	m, y, err := parsePeriod(month, year)
	if err != nil {
		return nil, err
	}
	return s.repo.Statistics(ctx, m, y)
}

func (s *service) BarChart(ctx context.Context, month string) (Counts, error) {
	m, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	return s.barChart(ctx, m)
}

func (s *service) PieChart(ctx context.Context, month string) (Counts, error) {
	m, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	return s.pieChart(ctx, m)
}

func (s *service) Combined(ctx context.Context, month, year string) (*Combined, error) {
	m, y, err := parsePeriod(month, year)
	if err != nil {
		return nil, err
	}

	out := &Combined{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.repo.Statistics(gctx, m, y)
		out.Statistics = stats
		return err
	})
	g.Go(func() error {
		bar, err := s.barChart(gctx, m)
		out.BarChart = bar
		return err
	})
	g.Go(func() error {
		pie, err := s.pieChart(gctx, m)
		out.PieChart = pie
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Debug("combined report failed", zap.Int("month", m), zap.Int("year", y), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (s *service) barChart(ctx context.Context, month int) (Counts, error) {
	counts, err := s.repo.PriceRanges(ctx, month)
	if err != nil {
		return nil, err
	}
	return fillBuckets(counts), nil
}

func (s *service) pieChart(ctx context.Context, month int) (Counts, error) {
	counts, err := s.repo.Categories(ctx, month)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts, nil
}

func parseMonth(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, apperr.Validation("Month is required")
	}
	m, err := atoi(raw)
	if err != nil {
		return 0, apperr.Validation("month must be a number")
	}
	return m, nil
}

func parsePeriod(month, year string) (int, int, error) {
	if strings.TrimSpace(month) == "" || strings.TrimSpace(year) == "" {
		return 0, 0, apperr.Validation("Month and year are required")
	}
	m, err := atoi(month)
	if err != nil {
		return 0, 0, apperr.Validation("month must be a number")
	}
	y, err := atoi(year)
	if err != nil {
		return 0, 0, apperr.Validation("year must be a number")
	}
	return m, y, nil
}

// atoi coerces a decimal string; "05" is five, not octal.
func atoi(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	trimmed := strings.TrimLeft(raw, "0")
	if trimmed == "" && raw != "" {
		trimmed = "0"
	}
	return cast.ToIntE(trimmed)
}
