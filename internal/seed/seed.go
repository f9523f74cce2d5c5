package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog-storefront/internal/variant"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	SKU         string
	Barcode     string
	Name        string
	Description string
	Brand       string
	Category    string
	Price       int64
	Stock       int
	Variants    []variantSeed
}

type variantSeed struct {
	Attributes map[string]string
	Stock      int
}

var demoProducts = []productSeed{
	{
		SKU:         "DEMO-TAZA",
		Barcode:     "7800000000011",
		Name:        "Taza cerámica",
		Description: "Taza de cerámica esmaltada, 350 ml",
		Brand:       "Demo",
		Category:    "Cocina",
		Price:       2990,
		Stock:       12,
	},
	{
		SKU:         "DEMO-POLERA",
		Barcode:     "7800000000028",
		Name:        "Polera algodón",
		Description: "Polera de algodón peinado",
		Brand:       "Demo",
		Category:    "Ropa",
		Price:       9990,
		Variants: []variantSeed{
			{Attributes: map[string]string{variant.AttrColor: "Rojo", variant.AttrTalla: "M"}, Stock: 4},
			{Attributes: map[string]string{variant.AttrColor: "Rojo", variant.AttrTalla: "L"}, Stock: 2},
			{Attributes: map[string]string{variant.AttrColor: "Azul", variant.AttrTalla: "M"}, Stock: 0},
		},
	},
	{
		SKU:         "DEMO-ZAPATILLA",
		Barcode:     "7800000000035",
		Name:        "Zapatilla urbana",
		Description: "Zapatilla de lona",
		Brand:       "Demo",
		Category:    "Calzado",
		Price:       24990,
		Variants: []variantSeed{
			{Attributes: map[string]string{variant.AttrTalla: "38", variant.AttrDiseno: "Liso"}, Stock: 3},
			{Attributes: map[string]string{variant.AttrTalla: "40", variant.AttrDiseno: "Liso"}, Stock: 5},
			{Attributes: map[string]string{variant.AttrTalla: "40", variant.AttrDiseno: "Estampado"}, Stock: 1},
		},
	},
}

// Apply inserts a demo catalog for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range demoProducts {
		if err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			return upsertProduct(ctx, tx, p)
		}); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, tx pgx.Tx, p productSeed) error {
	const q = `
INSERT INTO products (sku, barcode, name, description, brand, category, price, stock, is_visible)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
ON CONFLICT (sku) DO UPDATE
SET barcode = EXCLUDED.barcode,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    brand = EXCLUDED.brand,
    category = EXCLUDED.category,
    price = EXCLUDED.price,
    stock = EXCLUDED.stock,
    updated_at = now()
RETURNING id::text
`
	stock := p.Stock
	if len(p.Variants) > 0 {
		stock = 0
		for _, v := range p.Variants {
			stock += v.Stock
		}
	}
	var productID string
	if err := tx.QueryRow(ctx, q, p.SKU, p.Barcode, p.Name, p.Description, p.Brand, p.Category, p.Price, stock).Scan(&productID); err != nil {
		return err
	}

	for _, v := range p.Variants {
		attrs, err := json.Marshal(v.Attributes)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
INSERT INTO product_variants (product_id, sku, attributes, stock, is_available)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (sku) WHERE sku IS NOT NULL DO UPDATE
SET attributes = EXCLUDED.attributes,
    stock = EXCLUDED.stock,
    is_available = EXCLUDED.is_available,
    updated_at = now()
`, productID, variant.GenerateSKU(p.SKU, v.Attributes), attrs, v.Stock, v.Stock > 0)
		if err != nil {
			return fmt.Errorf("variant %v: %w", v.Attributes, err)
		}
	}
	return nil
}
