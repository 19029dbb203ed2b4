package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"stockwatch/internal/database"
	"stockwatch/internal/model"
	"stockwatch/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Upsert(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func TestSeeder_SeedSQLite(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "seed.db"), zerolog.Nop())
	require.NoError(t, err)
	repo := repository.NewGormProductRepository(db, zerolog.Nop())

	seeder := NewSeeder(NewFileLoader(zerolog.Nop()), repo, zerolog.Nop())
	path := writeFeed(t, sampleProducts())

	n, err := seeder.Seed(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Seeding twice overwrites rather than duplicates.
	n, err = seeder.Seed(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	stored, err := repo.GetAll(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, sampleProducts(), stored)
}

func TestSeeder_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("disk full")

	store := new(MockStore)
	store.On("Upsert", ctx, mock.MatchedBy(func(p *model.Product) bool { return p.ID == 1 })).Return(nil).Once()
	store.On("Upsert", ctx, mock.MatchedBy(func(p *model.Product) bool { return p.ID == 2 })).Return(storeErr).Once()

	seeder := NewSeeder(NewFileLoader(zerolog.Nop()), store, zerolog.Nop())

	n, err := seeder.Seed(ctx, writeFeed(t, sampleProducts()))

	require.ErrorIs(t, err, storeErr)
	assert.Equal(t, 1, n)
	store.AssertExpectations(t)
}

func TestSeeder_LoadFailure(t *testing.T) {
	store := new(MockStore)
	seeder := NewSeeder(NewFileLoader(zerolog.Nop()), store, zerolog.Nop())

	n, err := seeder.Seed(context.Background(), filepath.Join(t.TempDir(), "missing.gz"))

	require.Error(t, err)
	assert.Zero(t, n)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
