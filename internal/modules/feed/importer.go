package feed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/georgemunganga/salesboard/internal/apperr"
	"github.com/georgemunganga/salesboard/internal/modules/product"
)

// Store is the slice of the product repository the importer writes through.
type Store interface {
	Create(ctx context.Context, p *product.Product) error
}

// Importer copies the feed into the products table.
//
// Every run appends: nothing is deduplicated against earlier runs, so calling
// it twice stores every record twice. Rows are inserted one at a time with
// no surrounding transaction, so rows written before a failure stay.
type Importer struct {
	client Client
	store  Store
	logger *zap.Logger
}

func NewImporter(client Client, store Store, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{client: client, store: store, logger: logger}
}

// Import fetches the feed and inserts each record. The first fetch, decode or
// insert error aborts the run. The returned Result is never nil and counts the
// rows inserted before any failure.
func (i *Importer) Import(ctx context.Context) (*Result, error) {
	res := &Result{ID: uuid.New()}
	log := i.logger.With(zap.String("import_id", res.ID.String()))

	records, err := i.client.Fetch(ctx)
	if err != nil {
		return res, err
	}
	res.Fetched = len(records)
	log.Info("feed fetched", zap.Int("records", len(records)))

	for idx, rec := range records {
		p, err := toProduct(rec)
		if err != nil {
			return res, apperr.Upstream(fmt.Sprintf("feed record %d", idx), err)
		}
		if err := i.store.Create(ctx, p); err != nil {
			log.Warn("import aborted", zap.Int("record", idx), zap.Int("imported", res.Imported), zap.Error(err))
			return res, err
		}
		res.Imported++
	}

	log.Info("import completed", zap.Int("imported", res.Imported))
	return res, nil
}

func toProduct(rec Record) (*product.Product, error) {
	date, err := product.ParseSaleDate(rec.DateOfSale)
	if err != nil {
		return nil, fmt.Errorf("dateOfSale %q: %w", rec.DateOfSale, err)
	}
	return &product.Product{
		Title:       rec.Title,
		Description: rec.Description,
		Price:       rec.Price,
		DateOfSale:  date,
		Category:    rec.Category,
	}, nil
}
