package stock

import (
	"context"

	"catalog-storefront/internal/domain"
)

// Move is a stock adjustment to apply.
type Move struct {
	Target    domain.StockTarget
	MoveType  domain.MoveType
	Qty       int
	Source    string
	UserLabel *string
}

type Repository interface {
	FindByCode(ctx context.Context, code string) (*domain.StockTarget, error)
	Apply(ctx context.Context, m Move) (*domain.StockMove, error)
}
