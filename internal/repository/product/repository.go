package product

import (
	"context"

	"catalog-storefront/internal/domain"
)

// Filter narrows the visible catalog listing.
type Filter struct {
	Category string
}

// PriceRow is the slice of a product touched by price maintenance.
type PriceRow struct {
	ID    string
	Name  string
	Price *int64
}

type Repository interface {
	ListVisible(ctx context.Context, f Filter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Search(ctx context.Context, q string, limit int) ([]domain.Product, error)
	ListPrices(ctx context.Context, offset, limit int) ([]PriceRow, error)
	UpdatePrice(ctx context.Context, id string, price int64) error
	ExistingSKUs(ctx context.Context) (map[string]struct{}, error)
	InsertBatch(ctx context.Context, products []domain.Product) (int, error)
}
