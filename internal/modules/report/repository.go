package report

import "context"

// Repository runs the aggregate queries. Month and year are calendar values
// of date_of_sale.
type Repository interface {
	Statistics(ctx context.Context, month, year int) (*Statistics, error)
	// PriceRanges returns counts keyed by bucket label; empty buckets are omitted.
	PriceRanges(ctx context.Context, month int) (map[string]int64, error)
	// Categories returns counts by category, highest count first.
	Categories(ctx context.Context, month int) (Counts, error)
}
