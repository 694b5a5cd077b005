package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const queryTimeout = 5 * time.Second

// Querier is the subset of *pgxpool.Pool the seed loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSeedSource reads the initial catalog from a products table.
type PostgresSeedSource struct {
	db Querier
}

func NewPostgresSeedSource(db Querier) *PostgresSeedSource {
	return &PostgresSeedSource{db: db}
}

func (s *PostgresSeedSource) Load(ctx context.Context) ([]Seed, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, name, price::text, image, stock
		FROM products
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := make([]Seed, 0, 16)
	for rows.Next() {
		var (
			sd    Seed
			price string
		)
		if err := rows.Scan(&sd.ID, &sd.Name, &price, &sd.Image, &sd.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		sd.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("product %d: bad price %q: %w", sd.ID, price, err)
		}
		out = append(out, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}
