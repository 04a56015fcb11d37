package product

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Product is one sale transaction row of the products table.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	DateOfSale  SaleDate        `json:"date_of_sale"`
	Category    string          `json:"category"`
}

// SaleDate is a calendar date without time of day. It is stored in a DATE
// column and rendered as YYYY-MM-DD.
type SaleDate struct{ time.Time }

// NewSaleDate keeps only the calendar date of t, as seen in t's own offset.
func NewSaleDate(t time.Time) SaleDate {
	y, m, d := t.Date()
	return SaleDate{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseSaleDate accepts any common date or datetime layout (RFC3339 from the
// feed, plain YYYY-MM-DD from the dashboard, ...).
func ParseSaleDate(raw string) (SaleDate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SaleDate{}, fmt.Errorf("empty date")
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return SaleDate{}, err
	}
	return NewSaleDate(t), nil
}

func (d SaleDate) String() string { return d.Format(dateLayout) }

func (d SaleDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *SaleDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = SaleDate{}
		return nil
	}
	parsed, err := ParseSaleDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d SaleDate) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

// Scan implements sql.Scanner.
func (d *SaleDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewSaleDate(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into SaleDate", src)
	}
}

func (d *SaleDate) scanString(s string) error {
	parsed, err := ParseSaleDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ProductRequest is the POST/PUT body. Price accepts a JSON number or a
// numeric string.
type ProductRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	DateOfSale  string              `json:"dateOfSale"`
	Category    string              `json:"category"`
}

// PageQuery carries the raw /page query-string values. Empty strings mean
// "not given".
type PageQuery struct {
	Page    string
	PerPage string
	Search  string
	Month   string
}

// Pagination describes where a page sits in the filtered result set.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PerPage     int `json:"perPage"`
	Total       int `json:"total"`
}

// PageResult is one page of filtered products.
type PageResult struct {
	Data       []*Product `json:"data"`
	Pagination Pagination `json:"pagination"`
}
