package product

import (
	"context"
	"strings"

	"github.com/spf13/cast"

	"github.com/georgemunganga/salesboard/internal/apperr"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

// Service defines product business logic. Raw string parameters are coerced
// here, not in the HTTP layer.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	// UpdateProduct replaces every mutable field. Concurrent updates to the
	// same id are last-write-wins.
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
	// DeleteProduct succeeds whether or not the row exists.
	DeleteProduct(ctx context.Context, id string) error
	Page(ctx context.Context, q PageQuery) (*PageResult, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	p, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, pid)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = pid
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	pid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, pid)
}

func (s *service) Page(ctx context.Context, q PageQuery) (*PageResult, error) {
	page, err := positiveInt(q.Page, defaultPage, "page")
	if err != nil {
		return nil, err
	}
	perPage, err := positiveInt(q.PerPage, defaultPerPage, "perPage")
	if err != nil {
		return nil, err
	}

	f := Filter{Search: strings.TrimSpace(q.Search)}
	if raw := strings.TrimSpace(q.Month); raw != "" {
		month, err := toInt(raw)
		if err != nil {
			return nil, apperr.Validation("month must be a number")
		}
		f.Month = &month
	}

	products, total, err := s.repo.Page(ctx, f, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	return &PageResult{
		Data: products,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages(total, perPage),
			PerPage:     perPage,
			Total:       total,
		},
	}, nil
}

// fromRequest applies presence checks and coerces the body into a Product.
func fromRequest(req ProductRequest) (*Product, error) {
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if !req.Price.Valid {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(req.DateOfSale) == "" {
		missing = append(missing, "dateOfSale")
	}
	if strings.TrimSpace(req.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, apperr.Validation("missing required fields: " + strings.Join(missing, ", "))
	}

	date, err := ParseSaleDate(req.DateOfSale)
	if err != nil {
		return nil, apperr.Validation("dateOfSale is not a valid date")
	}
	return &Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price.Decimal,
		DateOfSale:  date,
		Category:    req.Category,
	}, nil
}

func parseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperr.Validation("invalid product id")
	}
	id, err := toInt(raw)
	if err != nil {
		return 0, apperr.Validation("invalid product id")
	}
	return int64(id), nil
}

func positiveInt(raw string, fallback int, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := toInt(raw)
	if err != nil || v < 1 {
		return 0, apperr.Validation(name + " must be a positive integer")
	}
	return v, nil
}

// toInt coerces a decimal string. Leading zeros ("08") are not read as octal.
func toInt(raw string) (int, error) {
	trimmed := strings.TrimLeft(raw, "0")
	if trimmed == "" && raw != "" {
		trimmed = "0"
	}
	return cast.ToIntE(trimmed)
}

func totalPages(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
