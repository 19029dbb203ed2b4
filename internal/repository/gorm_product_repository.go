package repository

import (
	"context"
	"errors"
	"fmt"

	"stockwatch/internal/model"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormProductRepository implements ProductRepository on top of gorm.
// It backs the embedded SQLite store used for local runs and tests.
type gormProductRepository struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewGormProductRepository creates a gorm-backed product repository.
func NewGormProductRepository(db *gorm.DB, logger zerolog.Logger) ProductRepository {
	return &gormProductRepository{
		db:     db,
		logger: logger.With().Str("repository", "product").Str("store", "gorm").Logger(),
	}
}

func (r *gormProductRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&products).Error
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Int("offset", offset).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	for i := range products {
		normalizeTimes(&products[i])
	}
	return products, nil
}

func (r *gormProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	normalizeTimes(&p)
	return &p, nil
}

func (r *gormProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	var products []model.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&products).Error
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}

	for i := range products {
		normalizeTimes(&products[i])
	}
	return products, nil
}

func (r *gormProductRepository) ValidateProductsExist(ctx context.Context, ids []int64) error {
	ids = distinctIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("id IN ?", ids).Count(&count).Error
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to validate products exist")
		return fmt.Errorf("failed to validate products exist: %w", err)
	}

	if int(count) != len(ids) {
		r.logger.Warn().Int("expected", len(ids)).Int64("found", count).Msg("not all product IDs exist")
		return model.ErrProductNotFound
	}

	return nil
}

// Update writes every column, zero values included.
func (r *gormProductRepository) Update(ctx context.Context, p *model.Product) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", p.ID).
		Select("*").
		Updates(p)
	if result.Error != nil {
		r.logger.Error().Err(result.Error).Int64("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product %d: %w", p.ID, result.Error)
	}

	if result.RowsAffected == 0 {
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

func (r *gormProductRepository) Upsert(ctx context.Context, p *model.Product) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(p).Error
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", p.ID).Msg("failed to upsert product")
		return fmt.Errorf("failed to upsert product %d: %w", p.ID, err)
	}
	return nil
}
