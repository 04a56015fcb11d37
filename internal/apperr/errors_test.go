package apperr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("Month is required"), http.StatusBadRequest},
		{"not found", NotFound("Product not found"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", NotFound("Product not found")), http.StatusNotFound},
		{"storage", Storage("insert product", sql.ErrConnDone), http.StatusInternalServerError},
		{"upstream", Upstream("fetch feed", context.DeadlineExceeded), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestMessage_HidesInternalCauses(t *testing.T) {
	assert.Equal(t, "Month is required", Message(Validation("Month is required"), "generic"))
	assert.Equal(t, "Product not found", Message(NotFound("Product not found"), "generic"))
	assert.Equal(t, "generic", Message(Storage("select", errors.New("password auth failed")), "generic"))
	assert.Equal(t, "generic", Message(errors.New("raw"), "generic"))
}

func TestError_UnwrapsKindAndCause(t *testing.T) {
	err := Storage("scan product", sql.ErrNoRows)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "scan product: sql: no rows in result set", err.Error())
	assert.True(t, IsClientError(Validation("x")))
	assert.False(t, IsClientError(err))
}
