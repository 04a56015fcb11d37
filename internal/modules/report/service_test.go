package report

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/salesboard/internal/apperr"
)

type sale struct {
	price    decimal.Decimal
	date     time.Time
	category string
}

// memRepo computes the aggregates over an in-memory row set.
type memRepo struct {
	rows    []sale
	failOn  string
	calls   atomic.Int32
}

func (m *memRepo) fail(name string) error {
	m.calls.Add(1)
	if m.failOn == name {
		return apperr.Storage("select "+name, errors.New("boom"))
	}
	return nil
}

func (m *memRepo) Statistics(_ context.Context, month, year int) (*Statistics, error) {
	if err := m.fail("statistics"); err != nil {
		return nil, err
	}
	s := &Statistics{TotalSaleAmount: decimal.Zero}
	for _, r := range m.rows {
		if int(r.date.Month()) == month && r.date.Year() == year {
			s.TotalSaleAmount = s.TotalSaleAmount.Add(r.price)
			s.TotalSoldItems++
		}
	}
	return s, nil
}

func (m *memRepo) PriceRanges(_ context.Context, month int) (map[string]int64, error) {
	if err := m.fail("price_ranges"); err != nil {
		return nil, err
	}
	out := map[string]int64{}
	for _, r := range m.rows {
		if int(r.date.Month()) != month {
			continue
		}
		label := priceBuckets[len(priceBuckets)-1].label
		for _, b := range priceBuckets {
			if b.upper != 0 && r.price.LessThanOrEqual(decimal.NewFromInt(int64(b.upper))) {
				label = b.label
				break
			}
		}
		out[label]++
	}
	return out, nil
}

func (m *memRepo) Categories(_ context.Context, month int) (Counts, error) {
	if err := m.fail("categories"); err != nil {
		return nil, err
	}
	byCat := map[string]int64{}
	for _, r := range m.rows {
		if int(r.date.Month()) == month {
			byCat[r.category]++
		}
	}
	out := Counts{}
	for cat, n := range byCat {
		out = append(out, Count{Label: cat, Count: n})
	}
	// deliberately unordered by count; the service sorts.
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func fixture() *memRepo {
	return &memRepo{rows: []sale{
		{decimal.RequireFromString("100"), day(2023, 5, 1), "electronics"},
		{decimal.RequireFromString("250"), day(2023, 5, 9), "jewelery"},
		{decimal.RequireFromString("400"), day(2023, 5, 20), "jewelery"},
		{decimal.RequireFromString("950.5"), day(2022, 5, 3), "jewelery"},
		{decimal.RequireFromString("100.01"), day(2022, 5, 4), "men's clothing"},
		{decimal.RequireFromString("15"), day(2023, 6, 1), "electronics"},
	}}
}

func TestStatistics_SumsPriceForMonthAndYear(t *testing.T) {
	svc := NewService(fixture(), nil)

	s, err := svc.Statistics(context.Background(), "5", "2023")
	require.NoError(t, err)
	assert.Equal(t, "750", s.TotalSaleAmount.String())
	assert.Equal(t, int64(3), s.TotalSoldItems)
	assert.Equal(t, int64(0), s.TotalNotSoldItems)
}

func TestBarChart_TenBucketsSummingToMonthCount(t *testing.T) {
	svc := NewService(fixture(), nil)

	bar, err := svc.BarChart(context.Background(), "05")
	require.NoError(t, err)
	require.Len(t, bar, 10)
	for _, c := range bar {
		assert.GreaterOrEqual(t, c.Count, int64(0))
	}
	assert.Equal(t, int64(5), bar.Total())
	assert.Equal(t, int64(1), bar.Get("0-100"))
	assert.Equal(t, int64(1), bar.Get("101-200"), "100.01 falls in the next bucket")
	assert.Equal(t, int64(1), bar.Get("201-300"))
	assert.Equal(t, int64(1), bar.Get("301-400"))
	assert.Equal(t, int64(1), bar.Get("901-above"))
}

func TestBarChart_EmptyMonthStillHasAllLabels(t *testing.T) {
	bar, err := NewService(fixture(), nil).BarChart(context.Background(), "12")
	require.NoError(t, err)
	assert.Len(t, bar, 10)
	assert.Equal(t, int64(0), bar.Total())
}

func TestPieChart_SortedByDescendingCount(t *testing.T) {
	pie, err := NewService(fixture(), nil).PieChart(context.Background(), "5")
	require.NoError(t, err)

	require.Len(t, pie, 3)
	assert.Equal(t, Count{"jewelery", 3}, pie[0])
	for i := 1; i < len(pie); i++ {
		assert.GreaterOrEqual(t, pie[i-1].Count, pie[i].Count)
	}
}

func TestPieChart_NoZeroFill(t *testing.T) {
	pie, err := NewService(fixture(), nil).PieChart(context.Background(), "6")
	require.NoError(t, err)
	assert.Equal(t, Counts{{"electronics", 1}}, pie)
}

func TestCombined_EqualsIndividualCalls(t *testing.T) {
	ctx := context.Background()
	svc := NewService(fixture(), nil)

	combined, err := svc.Combined(ctx, "5", "2023")
	require.NoError(t, err)

	stats, err := svc.Statistics(ctx, "5", "2023")
	require.NoError(t, err)
	bar, err := svc.BarChart(ctx, "5")
	require.NoError(t, err)
	pie, err := svc.PieChart(ctx, "5")
	require.NoError(t, err)

	assert.Equal(t, stats, combined.Statistics)
	assert.Equal(t, bar, combined.BarChart)
	assert.Equal(t, pie, combined.PieChart)
}

func TestCombined_AnyFailureFailsTheCall(t *testing.T) {
	for _, name := range []string{"statistics", "price_ranges", "categories"} {
		t.Run(name, func(t *testing.T) {
			repo := fixture()
			repo.failOn = name

			out, err := NewService(repo, nil).Combined(context.Background(), "5", "2023")
			assert.Nil(t, out)
			assert.ErrorIs(t, err, apperr.ErrStorage)
		})
	}
}

func TestValidation_MissingOrMalformedParams(t *testing.T) {
	ctx := context.Background()
	repo := fixture()
	svc := NewService(repo, nil)

	_, err := svc.Statistics(ctx, "5", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Month and year are required", apperr.Message(err, ""))

	_, err = svc.Statistics(ctx, "", "2023")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.BarChart(ctx, "")
	assert.Equal(t, "Month is required", apperr.Message(err, ""))

	_, err = svc.PieChart(ctx, " ")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Combined(ctx, "5", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Combined(ctx, "may", "2023")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Statistics(ctx, "5", "twenty")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	assert.Equal(t, int32(0), repo.calls.Load(), "validation happens before any query")
}
