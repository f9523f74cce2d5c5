// Package pricing runs batch price maintenance over the catalog.
package pricing

import (
	"context"
	"fmt"
	"io"
	"log"

	"catalog-storefront/internal/money"
	productrepo "catalog-storefront/internal/repository/product"
)

// PageSize is the number of products read per page.
const PageSize = 1000

type priceStore interface {
	ListPrices(ctx context.Context, offset, limit int) ([]productrepo.PriceRow, error)
	UpdatePrice(ctx context.Context, id string, price int64) error
}

// Change is one price that was (or would be) rewritten.
type Change struct {
	ID   string
	Name string
	Old  int64
	New  int64
}

func (c Change) Diff() int64 { return c.New - c.Old }

// Result summarises a rounding run.
type Result struct {
	Processed int
	Unchanged int
	Failed    int
	Changes   []Change
}

type Rounder struct {
	store  priceStore
	unit   int64
	dryRun bool
	logger *log.Logger
}

func NewRounder(store priceStore, unit int64, dryRun bool, logger *log.Logger) *Rounder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Rounder{store: store, unit: unit, dryRun: dryRun, logger: logger}
}

// Run rounds every product price to the nearest unit. Products without a
// price and prices already on the grid are left alone. A failed update is
// logged and counted.
func (r *Rounder) Run(ctx context.Context) (Result, error) {
	if r.unit <= 0 {
		return Result{}, fmt.Errorf("rounding unit must be positive, got %d", r.unit)
	}
	var res Result
	for offset := 0; ; offset += PageSize {
		rows, err := r.store.ListPrices(ctx, offset, PageSize)
		if err != nil {
			return res, fmt.Errorf("list prices at %d: %w", offset, err)
		}
		for _, row := range rows {
			res.Processed++
			if row.Price == nil {
				res.Unchanged++
				continue
			}
			next := money.RoundToNearest(*row.Price, r.unit)
			if next == *row.Price {
				res.Unchanged++
				continue
			}
			if !r.dryRun {
				if err := r.store.UpdatePrice(ctx, row.ID, next); err != nil {
					if ctx.Err() != nil {
						return res, ctx.Err()
					}
					r.logger.Printf("pricing: update %s (%s): %v", row.ID, row.Name, err)
					res.Failed++
					continue
				}
			}
			res.Changes = append(res.Changes, Change{ID: row.ID, Name: row.Name, Old: *row.Price, New: next})
		}
		if len(rows) < PageSize {
			break
		}
		r.logger.Printf("pricing: processed %d products", res.Processed)
	}
	return res, nil
}
