package feed

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is one element of the external JSON feed. Extra feed fields (id,
// image, sold) are ignored.
type Record struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	DateOfSale  string          `json:"dateOfSale"`
	Category    string          `json:"category"`
}

// UnmarshalJSON matches the date key case-insensitively (encoding/json
// default) and also accepts the snake_case column name.
func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	var aux struct {
		plain
		DateOfSaleSnake string `json:"date_of_sale"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)
	if r.DateOfSale == "" {
		r.DateOfSale = aux.DateOfSaleSnake
	}
	return nil
}

// Result reports one import run. ID correlates the run's log lines and is
// returned to the caller in the X-Import-Id header.
type Result struct {
	ID       uuid.UUID `json:"importId"`
	Fetched  int       `json:"fetched"`
	Imported int       `json:"imported"`
}
