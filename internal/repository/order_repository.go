package repository

import (
	"context"
	"errors"
	"fmt"

	"stockwatch/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var orderItemColumns = []string{"id", "order_id", "product_id", "quantity"}

type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a PostgreSQL-backed order repository.
// Orders are only available on the postgres driver.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO orders (id, created_at, updated_at) VALUES ($1, $2, $3)`,
		order.ID, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().Str("order_id", order.ID.String()).Msg("order created")
	return nil
}

// CreateOrderItems copies the items into order_items inside tx.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"order_items"},
		orderItemColumns,
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			item := items[i]
			return []any{item.ID, item.OrderID, item.ProductID, item.Quantity}, nil
		}),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", items[0].OrderID.String()).Msg("failed to create order items")
		return fmt.Errorf("failed to create order items: %w", err)
	}

	r.logger.Debug().Int64("count", n).Msg("order items created")
	return nil
}

// GetByID returns the order and its items ordered by product ID.
// A missing order yields nil values and a nil error.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	var order model.Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, created_at, updated_at FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id
	`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order items")
		return nil, nil, fmt.Errorf("failed to query order items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.OrderItem, error) {
		var item model.OrderItem
		err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity)
		return item, err
	})
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to read order items")
		return nil, nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return &order, items, nil
}
