package product

import (
	"strconv"
	"strings"
)

// Filter narrows a product listing. A zero Filter matches every row.
type Filter struct {
	Search string
	Month  *int
}

// predicate is one named SQL fragment. Placeholders are written as ? and
// renumbered to $n when the WHERE clause is assembled.
type predicate struct {
	name string
	expr string
	args []interface{}
}

func searchPredicate(term string) predicate {
	pattern := "%" + escapeLike(term) + "%"
	return predicate{
		name: "search",
		expr: "(title ILIKE ? OR description ILIKE ? OR price::text ILIKE ?)",
		args: []interface{}{pattern, pattern, pattern},
	}
}

func monthPredicate(month int) predicate {
	return predicate{
		name: "month",
		expr: "EXTRACT(MONTH FROM date_of_sale) = ?",
		args: []interface{}{month},
	}
}

func (f Filter) predicates() []predicate {
	var preds []predicate
	if f.Search != "" {
		preds = append(preds, searchPredicate(f.Search))
	}
	if f.Month != nil {
		preds = append(preds, monthPredicate(*f.Month))
	}
	return preds
}

// whereClause joins the filter's predicates with AND. It returns an empty
// clause for an empty filter. Values are always bound, never inlined.
func (f Filter) whereClause() (string, []interface{}) {
	preds := f.predicates()
	if len(preds) == 0 {
		return "", nil
	}

	var (
		b    strings.Builder
		args []interface{}
	)
	b.WriteString(" WHERE ")
	for i, p := range preds {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(p.expr)
		args = append(args, p.args...)
	}
	return rebind(b.String(), 1), args
}

// rebind replaces each ? with $n, counting up from start.
func rebind(query string, start int) string {
	var b strings.Builder
	n := start
	for _, r := range query {
		if r == '?' {
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes ILIKE treat the user's term literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
