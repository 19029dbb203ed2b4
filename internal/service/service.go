package service

import (
	"context"

	"stockwatch/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for product management and lifecycle handling.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	// NotifyDelay sets the product's lead time, persists it and sends a delay notification.
	NotifyDelay(ctx context.Context, leadTime int, product *model.Product) error

	// HandleProduct applies the lifecycle rules of the product's type.
	HandleProduct(ctx context.Context, product *model.Product) error

	// HandleSeasonalProduct is HandleProduct; the strategy is still chosen by type.
	HandleSeasonalProduct(ctx context.Context, product *model.Product) error

	// HandleExpiredProduct is HandleProduct; the strategy is still chosen by type.
	HandleExpiredProduct(ctx context.Context, product *model.Product) error

	// HandleByID loads a product, applies its lifecycle rules and returns the result.
	HandleByID(ctx context.Context, id int64) (*model.Product, error)

	// NotifyDelayByID loads a product and runs NotifyDelay on it.
	NotifyDelayByID(ctx context.Context, id int64, leadTime int) (*model.Product, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder validates the items and stores a new order.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order by its ID with all items and product details.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// ProcessOrder runs the lifecycle rules for every product of the order,
	// one at a time, stopping at the first failure.
	ProcessOrder(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)
}
