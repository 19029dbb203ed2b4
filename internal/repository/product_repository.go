package repository

import (
	"context"
	"errors"
	"fmt"

	"stockwatch/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, type, name, lead_time, available, expiry_date, season_start_date, season_end_date`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// scanProduct reads one products row selected with productColumns.
func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p   model.Product
		typ string
	)
	err := row.Scan(&p.ID, &typ, &p.Name, &p.LeadTime, &p.Available, &p.ExpiryDate, &p.SeasonStartDate, &p.SeasonEndDate)
	if err != nil {
		return model.Product{}, err
	}
	p.Type = model.ProductType(typ)
	normalizeTimes(&p)
	return p, nil
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return r.collect(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}

	return r.collect(rows)
}

// ValidateProductsExist checks if all provided product IDs exist in the database.
func (r *productRepository) ValidateProductsExist(ctx context.Context, ids []int64) error {
	ids = distinctIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	query := `SELECT COUNT(*) FROM products WHERE id = ANY($1)`

	var count int
	if err := r.pool.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to validate products exist")
		return fmt.Errorf("failed to validate products exist: %w", err)
	}

	if count != len(ids) {
		r.logger.Warn().
			Int("expected", len(ids)).
			Int("found", count).
			Msg("not all product IDs exist")
		return model.ErrProductNotFound
	}

	return nil
}

// Update overwrites every column of the stored product with the same ID.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET type = $2, name = $3, lead_time = $4, available = $5,
			expiry_date = $6, season_start_date = $7, season_end_date = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, string(p.Type), p.Name, p.LeadTime, p.Available,
		p.ExpiryDate, p.SeasonStartDate, p.SeasonEndDate,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Int64("product_id", p.ID).Msg("update matched no product")
		return model.ErrProductNotFound
	}

	r.logger.Debug().
		Int64("product_id", p.ID).
		Int("available", p.Available).
		Int("lead_time", p.LeadTime).
		Msg("product updated")

	return nil
}

// Upsert inserts the product or overwrites the existing row with the same ID.
func (r *productRepository) Upsert(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			name = EXCLUDED.name,
			lead_time = EXCLUDED.lead_time,
			available = EXCLUDED.available,
			expiry_date = EXCLUDED.expiry_date,
			season_start_date = EXCLUDED.season_start_date,
			season_end_date = EXCLUDED.season_end_date
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, string(p.Type), p.Name, p.LeadTime, p.Available,
		p.ExpiryDate, p.SeasonStartDate, p.SeasonEndDate,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", p.ID).Msg("failed to upsert product")
		return fmt.Errorf("failed to upsert product %d: %w", p.ID, err)
	}

	return nil
}
