package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"stockwatch/internal/database"
	"stockwatch/internal/model"
	"stockwatch/internal/notification"
	"stockwatch/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Now is the fixed wall clock used by the integration server.
var Now = time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with a migrated schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// Day returns Now shifted by n days.
func Day(n int) *time.Time {
	t := Now.AddDate(0, 0, n)
	return &t
}

// FixtureProducts covers every lifecycle branch relative to Now.
func FixtureProducts() []model.Product {
	return []model.Product{
		{ID: 1, Type: model.ProductTypeNormal, Name: "RJ45 Cable", LeadTime: 15, Available: 0},
		{ID: 2, Type: model.ProductTypeSeasonal, Name: "Watermelon", LeadTime: 5, Available: 0,
			SeasonStartDate: Day(-10), SeasonEndDate: Day(30)},
		{ID: 3, Type: model.ProductTypeSeasonal, Name: "Grapes", LeadTime: 15, Available: 30,
			SeasonStartDate: Day(-10), SeasonEndDate: Day(10)},
		{ID: 4, Type: model.ProductTypeSeasonal, Name: "Pumpkin", LeadTime: 5, Available: 12,
			SeasonStartDate: Day(20), SeasonEndDate: Day(90)},
		{ID: 5, Type: model.ProductTypeExpirable, Name: "Butter", LeadTime: 15, Available: 10,
			ExpiryDate: Day(10)},
		{ID: 6, Type: model.ProductTypeExpirable, Name: "Milk", LeadTime: 15, Available: 10,
			ExpiryDate: Day(-5)},
	}
}

// SeedProducts writes FixtureProducts to the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewProductRepository(pool, zerolog.Nop())

	products := FixtureProducts()
	for i := range products {
		if err := repo.Upsert(ctx, &products[i]); err != nil {
			t.Fatalf("failed to seed product %d: %v", products[i].ID, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// MemoryWriter stands in for a Kafka writer and keeps every published message.
type MemoryWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
}

func (w *MemoryWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *MemoryWriter) Close() error { return nil }

// Events decodes and clears the published messages.
func (w *MemoryWriter) Events(t *testing.T) []notification.Event {
	t.Helper()
	w.mu.Lock()
	defer w.mu.Unlock()

	events := make([]notification.Event, 0, len(w.messages))
	for _, msg := range w.messages {
		var ev notification.Event
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			t.Fatalf("failed to decode notification: %v", err)
		}
		events = append(events, ev)
	}
	w.messages = nil
	return events
}
