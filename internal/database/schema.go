package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the PostgreSQL schema for products and orders.
// The product type column is free text: unknown types are handled as NORMAL.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id BIGINT PRIMARY KEY,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		lead_time INTEGER NOT NULL DEFAULT 0,
		available INTEGER NOT NULL DEFAULT 0 CHECK (available >= 0),
		expiry_date TIMESTAMPTZ,
		season_start_date TIMESTAMPTZ,
		season_end_date TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS idx_products_type ON products(type);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0)
	);
	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// Migrate applies Schema. Every statement is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
