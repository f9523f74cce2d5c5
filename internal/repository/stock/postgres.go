package stock

import (
	"context"
	"errors"
	"io"
	"log"

	"catalog-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// FindByCode matches a scanned code against product SKUs and barcodes first,
// then against variant SKUs and barcodes.
func (r *postgresRepo) FindByCode(ctx context.Context, code string) (*domain.StockTarget, error) {
	var target domain.StockTarget
	err := r.pool.QueryRow(ctx, `
SELECT id::text
FROM products
WHERE sku = $1 OR barcode = $1
ORDER BY (sku = $1) DESC
LIMIT 1
`, code).Scan(&target.ProductID)
	if err == nil {
		return &target, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, `
SELECT product_id::text, id::text
FROM product_variants
WHERE sku = $1 OR barcode = $1
ORDER BY (sku = $1) DESC
LIMIT 1
`, code).Scan(&target.ProductID, &target.VariantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &target, nil
}

// Apply records the move and updates the stock of the product or variant in
// one transaction. Stock never goes below zero.
func (r *postgresRepo) Apply(ctx context.Context, m Move) (*domain.StockMove, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	lockQuery := `SELECT stock FROM products WHERE id::text = $1 FOR UPDATE`
	updateQuery := `UPDATE products SET stock = $1, updated_at = now() WHERE id::text = $2`
	key := m.Target.ProductID
	if m.Target.VariantID != "" {
		lockQuery = `SELECT stock FROM product_variants WHERE id::text = $1 FOR UPDATE`
		updateQuery = `UPDATE product_variants SET stock = $1, updated_at = now() WHERE id::text = $2`
		key = m.Target.VariantID
	}

	var current int
	if err := tx.QueryRow(ctx, lockQuery, key).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	next := current + m.Qty
	if m.MoveType == domain.MoveOut {
		next = current - m.Qty
	}
	if next < 0 {
		return nil, domain.ErrInsufficientStock
	}

	if _, err := tx.Exec(ctx, updateQuery, next, key); err != nil {
		return nil, err
	}

	var variantID *string
	if m.Target.VariantID != "" {
		variantID = &m.Target.VariantID
	}
	move := domain.StockMove{
		ProductID:  m.Target.ProductID,
		VariantID:  m.Target.VariantID,
		MoveType:   m.MoveType,
		Qty:        m.Qty,
		Source:     m.Source,
		UserLabel:  m.UserLabel,
		StockAfter: next,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO stock_moves (product_id, variant_id, move_type, qty, source, user_label, stock_after)
VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7)
RETURNING id::text, created_at
`, m.Target.ProductID, variantID, string(m.MoveType), m.Qty, m.Source, m.UserLabel, next).Scan(&move.ID, &move.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("stock repo: %s qty=%d product_id=%s variant_id=%s stock_after=%d", m.MoveType, m.Qty, m.Target.ProductID, m.Target.VariantID, next)
	return &move, nil
}
