package product

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/georgemunganga/salesboard/internal/apperr"
)

// memRepo is an in-memory Repository that mimics the postgres semantics the
// service relies on.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]Product
	err    error
}

func newMemRepo() *memRepo { return &memRepo{rows: map[int64]Product{}} }

func (m *memRepo) Create(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	p.ID = m.nextID
	m.rows[p.ID] = *p
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Product not found")
	}
	return &p, nil
}

func (m *memRepo) List(ctx context.Context) ([]*Product, error) {
	products, _, err := m.Page(ctx, Filter{}, 1<<30, 0)
	return products, err
}

func (m *memRepo) Update(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[p.ID]; !ok {
		return apperr.NotFound("Product not found")
	}
	m.rows[p.ID] = *p
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo) Page(_ context.Context, f Filter, limit, offset int) ([]*Product, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, 0, m.err
	}

	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	matched := []*Product{}
	for _, id := range ids {
		p := m.rows[id]
		if f.Search != "" {
			term := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Title), term) &&
				!strings.Contains(strings.ToLower(p.Description), term) &&
				!strings.Contains(p.Price.StringFixed(2), term) {
				continue
			}
		}
		if f.Month != nil && int(p.DateOfSale.Month()) != *f.Month {
			continue
		}
		matched = append(matched, &p)
	}

	total := len(matched)
	if offset >= total {
		return []*Product{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}
