package product

import "context"

// Repository defines the interface for product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	// Page returns the rows of one page and the number of rows matching f.
	Page(ctx context.Context, f Filter, limit, offset int) ([]*Product, int, error)
}
