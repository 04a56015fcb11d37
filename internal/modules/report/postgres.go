package report

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/salesboard/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Statistics(ctx context.Context, month, year int) (*Statistics, error) {
	s := &Statistics{}
	err := r.db.QueryRowContext(ctx, `
		SELECT
		  COALESCE(SUM(price), 0),
		  COUNT(CASE WHEN date_of_sale IS NOT NULL THEN 1 END),
		  COUNT(CASE WHEN date_of_sale IS NULL THEN 1 END)
		FROM products
		WHERE EXTRACT(MONTH FROM date_of_sale) = $1 AND EXTRACT(YEAR FROM date_of_sale) = $2`,
		month, year).Scan(&s.TotalSaleAmount, &s.TotalSoldItems, &s.TotalNotSoldItems)
	if err != nil {
		return nil, apperr.Storage("select statistics", err)
	}
	return s, nil
}

var priceRangeQuery = `
		SELECT ` + bucketCaseSQL() + ` AS price_range, COUNT(*) AS num_items
		FROM products
		WHERE EXTRACT(MONTH FROM date_of_sale) = $1
		GROUP BY price_range`

func (r *postgresRepo) PriceRanges(ctx context.Context, month int) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, priceRangeQuery, month)
	if err != nil {
		return nil, apperr.Storage("select price ranges", err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var (
			label string
			n     int64
		)
		if err := rows.Scan(&label, &n); err != nil {
			return nil, apperr.Storage("scan price range", err)
		}
		counts[label] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterate price ranges", err)
	}
	return counts, nil
}

func (r *postgresRepo) Categories(ctx context.Context, month int) (Counts, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, COUNT(*) AS num_items
		FROM products
		WHERE EXTRACT(MONTH FROM date_of_sale) = $1
		GROUP BY category
		ORDER BY num_items DESC, category`, month)
	if err != nil {
		return nil, apperr.Storage("select categories", err)
	}
	defer rows.Close()

	out := Counts{}
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, apperr.Storage("scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterate categories", err)
	}
	return out, nil
}
