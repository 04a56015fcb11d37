package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestWhereClause_Empty(t *testing.T) {
	where, args := Filter{}.whereClause()
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestWhereClause_SearchOnly(t *testing.T) {
	where, args := Filter{Search: "Jacket"}.whereClause()

	assert.Equal(t, " WHERE (title ILIKE $1 OR description ILIKE $2 OR price::text ILIKE $3)", where)
	assert.Equal(t, []interface{}{"%Jacket%", "%Jacket%", "%Jacket%"}, args)
}

func TestWhereClause_MonthOnly(t *testing.T) {
	where, args := Filter{Month: intPtr(3)}.whereClause()

	assert.Equal(t, " WHERE EXTRACT(MONTH FROM date_of_sale) = $1", where)
	assert.Equal(t, []interface{}{3}, args)
}

func TestWhereClause_SearchAndMonthAreANDed(t *testing.T) {
	where, args := Filter{Search: "ring", Month: intPtr(11)}.whereClause()

	assert.Equal(t,
		" WHERE (title ILIKE $1 OR description ILIKE $2 OR price::text ILIKE $3) AND EXTRACT(MONTH FROM date_of_sale) = $4",
		where)
	assert.Len(t, args, 4)
	assert.Equal(t, 11, args[3])
}

func TestWhereClause_NeverInlinesInput(t *testing.T) {
	term := "'; DROP TABLE products; --"
	where, args := Filter{Search: term}.whereClause()

	assert.NotContains(t, where, "DROP")
	assert.Equal(t, "%"+term+"%", args[0])
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "a = $3 AND b = $4", rebind("a = ? AND b = ?", 3))
	assert.Equal(t, "no params", rebind("no params", 1))
}

func TestPredicates_Order(t *testing.T) {
	var names []string
	for _, p := range (Filter{Search: "x", Month: intPtr(1)}).predicates() {
		names = append(names, p.name)
	}
	assert.Equal(t, []string{"search", "month"}, names)
}
