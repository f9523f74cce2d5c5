package category

import (
	"context"

	"catalog-storefront/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// List returns the categories of visible products with their product counts.
func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT category, COUNT(*)
FROM products
WHERE is_visible AND COALESCE(category, '') <> ''
GROUP BY category
ORDER BY category
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.Products); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
