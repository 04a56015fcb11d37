package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgemunganga/salesboard/internal/apperr"
)

const productColumns = `id, title, description, price, date_of_sale, category`

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (title, description, price, date_of_sale, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.Title, p.Description, p.Price, p.DateOfSale, p.Category).Scan(&p.ID)
	if err != nil {
		return apperr.Storage("insert product", err)
	}
	return nil
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var description sql.NullString
	if err := scan(&p.ID, &p.Title, &description, &p.Price, &p.DateOfSale, &p.Category); err != nil {
		return nil, err
	}
	p.Description = description.String
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Product not found")
	}
	if err != nil {
		return nil, apperr.Storage("select product", err)
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET title = $1, description = $2, price = $3, date_of_sale = $4, category = $5
		WHERE id = $6
		RETURNING id`,
		p.Title, p.Description, p.Price, p.DateOfSale, p.Category, p.ID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Product not found")
	}
	if err != nil {
		return apperr.Storage("update product", err)
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return apperr.Storage("delete product", err)
	}
	return nil
}

func (r *postgresRepo) Page(ctx context.Context, f Filter, limit, offset int) ([]*Product, int, error) {
	where, args := f.whereClause()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperr.Storage("count products", err)
	}

	n := len(args)
	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY id` + rebind(` LIMIT ? OFFSET ?`, n+1)
	products, err := r.query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage("query products", err)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, apperr.Storage("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterate products", err)
	}
	return products, nil
}
