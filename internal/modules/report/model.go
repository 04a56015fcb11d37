package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Statistics summarizes one calendar month of one year.
//
// TotalNotSoldItems counts rows without a sale date. date_of_sale is NOT NULL
// in the schema, so it is always zero; it is kept for response compatibility.
type Statistics struct {
	TotalSaleAmount   decimal.Decimal `json:"totalSaleAmount"`
	TotalSoldItems    int64           `json:"totalSoldItems"`
	TotalNotSoldItems int64           `json:"totalNotSoldItems"`
}

// Count is one labelled entry of a chart.
type Count struct {
	Label string
	Count int64
}

// Counts is an ordered label → count mapping. It is encoded as a JSON object
// whose keys keep slice order.
type Counts []Count

func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", entry.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Counts) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil {
		return err
	}
	out := Counts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		var n int64
		if err := dec.Decode(&n); err != nil {
			return err
		}
		out = append(out, Count{Label: label, Count: n})
	}
	*c = out
	return nil
}

// Get returns the count for label, or 0.
func (c Counts) Get(label string) int64 {
	for _, entry := range c {
		if entry.Label == label {
			return entry.Count
		}
	}
	return 0
}

// Total sums every entry.
func (c Counts) Total() int64 {
	var n int64
	for _, entry := range c {
		n += entry.Count
	}
	return n
}

// Combined is the dashboard payload: all three aggregates for one period.
type Combined struct {
	Statistics *Statistics `json:"statistics"`
	BarChart   Counts      `json:"barChart"`
	PieChart   Counts      `json:"pieChart"`
}
