package report

import (
	"strconv"
	"strings"
)

type priceBucket struct {
	label string
	upper int // inclusive; 0 marks the open-ended last bucket
}

var priceBuckets = []priceBucket{
	{"0-100", 100},
	{"101-200", 200},
	{"201-300", 300},
	{"301-400", 400},
	{"401-500", 500},
	{"501-600", 600},
	{"601-700", 700},
	{"701-800", 800},
	{"801-900", 900},
	{"901-above", 0},
}

// bucketCaseSQL renders the CASE expression mapping price to a bucket label.
// Only the constant bucket table is inlined.
func bucketCaseSQL() string {
	var b strings.Builder
	b.WriteString("CASE")
	for _, bucket := range priceBuckets {
		if bucket.upper == 0 {
			b.WriteString(" ELSE '" + bucket.label + "'")
			continue
		}
		b.WriteString(" WHEN price <= " + strconv.Itoa(bucket.upper) + " THEN '" + bucket.label + "'")
	}
	b.WriteString(" END")
	return b.String()
}

// fillBuckets returns every bucket in order, zero-filling the ones absent from counts.
func fillBuckets(counts map[string]int64) Counts {
	out := make(Counts, 0, len(priceBuckets))
	for _, bucket := range priceBuckets {
		out = append(out, Count{Label: bucket.label, Count: counts[bucket.label]})
	}
	return out
}
