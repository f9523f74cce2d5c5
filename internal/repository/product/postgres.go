package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"catalog-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id::text, sku, COALESCE(barcode, ''), name, COALESCE(description, ''), COALESCE(brand, ''),
COALESCE(store, ''), COALESCE(category, ''), price, original_price, stock, COALESCE(image_path, ''), is_visible, created_at`

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

func (r *postgresRepo) ListVisible(ctx context.Context, f Filter) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE is_visible AND ($1 = '' OR category = $1)
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q, strings.TrimSpace(f.Category))
	if err != nil {
		r.logger.Printf("product repo: list category=%q error=%v", f.Category, err)
		return nil, err
	}
	result, err := collectProducts(rows)
	if err != nil {
		r.logger.Printf("product repo: list rows category=%q error=%v", f.Category, err)
		return nil, err
	}
	r.logger.Printf("product repo: list category=%q count=%d", f.Category, len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE id::text = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}

	variants, err := r.listVariants(ctx, p.ID)
	if err != nil {
		r.logger.Printf("product repo: variants id=%s error=%v", id, err)
		return nil, err
	}
	p.Variants = variants
	return &p, nil
}

func (r *postgresRepo) listVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	const q = `
SELECT id::text, product_id::text, COALESCE(sku, ''), COALESCE(barcode, ''), attributes, stock, is_available,
       COALESCE(variant_images, '{}'), created_at
FROM product_variants
WHERE product_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Variant
	for rows.Next() {
		var (
			v     domain.Variant
			attrs map[string]interface{}
		)
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Barcode, &attrs, &v.Stock, &v.IsAvailable, &v.Images, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.Attributes = stringAttributes(attrs)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Search(ctx context.Context, q string, limit int) ([]domain.Product, error) {
	pattern := "%" + escapeLike(q) + "%"
	query := `
SELECT ` + productColumns + `
FROM products
WHERE is_visible AND (name ILIKE $1 OR sku ILIKE $1 OR barcode ILIKE $1)
ORDER BY name
LIMIT $2
`
	rows, err := r.pool.Query(ctx, query, pattern, limit)
	if err != nil {
		r.logger.Printf("product repo: search q=%q error=%v", q, err)
		return nil, err
	}
	result, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	r.logger.Printf("product repo: search q=%q count=%d", q, len(result))
	return result, nil
}

func (r *postgresRepo) ListPrices(ctx context.Context, offset, limit int) ([]PriceRow, error) {
	const q = `
SELECT id::text, name, price
FROM products
ORDER BY created_at, id
OFFSET $1 LIMIT $2
`
	rows, err := r.pool.Query(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PriceRow
	for rows.Next() {
		var row PriceRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Price); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *postgresRepo) UpdatePrice(ctx context.Context, id string, price int64) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE products
SET price = $1, updated_at = now()
WHERE id::text = $2
`, price, id)
	if err != nil {
		r.logger.Printf("product repo: update price id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ExistingSKUs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `SELECT sku FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, err
		}
		out[sku] = struct{}{}
	}
	return out, rows.Err()
}

func (r *postgresRepo) InsertBatch(ctx context.Context, products []domain.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO products (sku, barcode, name, description, brand, store, category, price, original_price, stock, image_path, is_visible)
VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, NULLIF($11, ''), $12)
ON CONFLICT (sku) DO NOTHING
`
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(q, p.SKU, p.Barcode, p.Name, p.Description, p.Brand, p.Store, p.Category, p.Price, p.OriginalPrice, p.Stock, p.ImagePath, p.Visible)
	}
	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for _, p := range products {
		cmd, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("insert sku %q: %w", p.SKU, err)
		}
		inserted += int(cmd.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	r.logger.Printf("product repo: inserted %d of %d", inserted, len(products))
	return inserted, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()
	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Description, &p.Brand, &p.Store, &p.Category,
		&p.Price, &p.OriginalPrice, &p.Stock, &p.ImagePath, &p.Visible, &p.CreatedAt)
	return p, err
}

func stringAttributes(raw map[string]interface{}) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case string:
			out[k] = val
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
