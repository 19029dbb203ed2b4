package catalog

import (
	"context"
	"fmt"

	"stockwatch/internal/model"

	"github.com/rs/zerolog"
)

// Store is the write side of a product repository used for seeding.
type Store interface {
	Upsert(ctx context.Context, product *model.Product) error
}

// Seeder loads a feed and writes every product to a store.
type Seeder struct {
	loader Loader
	store  Store
	logger zerolog.Logger
}

// NewSeeder creates a new catalog seeder.
func NewSeeder(loader Loader, store Store, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader: loader,
		store:  store,
		logger: logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed upserts every product of the feed at path and returns how many were written.
// It stops at the first failed write; earlier writes are kept.
func (s *Seeder) Seed(ctx context.Context, path string) (int, error) {
	products, err := s.loader.Load(ctx, path)
	if err != nil {
		return 0, err
	}

	for i := range products {
		if err := s.store.Upsert(ctx, &products[i]); err != nil {
			s.logger.Error().Err(err).Int64("product_id", products[i].ID).Msg("failed to seed product")
			return i, fmt.Errorf("failed to seed product %d: %w", products[i].ID, err)
		}
	}

	s.logger.Info().
		Str("path", path).
		Int("products_seeded", len(products)).
		Msg("catalog seeded")

	return len(products), nil
}
