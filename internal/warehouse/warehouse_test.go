package warehouse

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"orders-dashboard/internal/config"
	"orders-dashboard/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	cfg := config.WarehouseConfig{
		Driver:      "sqlite3",
		DSN:         filepath.Join(t.TempDir(), "orders.db"),
		OrdersTable: "orders",
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error: %v", err)
	}
	return store
}

func seedOrders() []models.Order {
	return []models.Order{
		{OrderKey: 1, OrderDate: time.Date(2020, time.January, 5, 0, 0, 0, 0, time.UTC), Status: "F", Priority: "HIGH", TotalPrice: 100},
		{OrderKey: 2, OrderDate: time.Date(2020, time.February, 10, 0, 0, 0, 0, time.UTC), Status: "O", Priority: "LOW", TotalPrice: 200},
		{OrderKey: 3, OrderDate: time.Date(2021, time.January, 20, 0, 0, 0, 0, time.UTC), Status: "F", Priority: "HIGH", TotalPrice: 300},
	}
}

func TestStore_SeedAndQuery(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx, seedOrders()); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	orders, err := store.OrdersBetween(ctx,
		time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("OrdersBetween() error: %v", err)
	}

	if len(orders) != 3 {
		t.Fatalf("OrdersBetween() returned %d rows, want 3", len(orders))
	}
	if orders[0].OrderKey != 1 || orders[0].Status != "F" || orders[0].TotalPrice != 100 {
		t.Errorf("first row = %+v", orders[0])
	}
	if !orders[0].OrderDate.Equal(time.Date(2020, time.January, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first row date = %v", orders[0].OrderDate)
	}
}

func TestStore_DateRangeInclusive(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx, seedOrders()); err != nil {
		t.Fatal(err)
	}

	// Bounds land exactly on the first two order dates.
	orders, err := store.OrdersBetween(ctx,
		time.Date(2020, time.January, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2020, time.February, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	if len(orders) != 2 {
		t.Errorf("inclusive range returned %d rows, want 2", len(orders))
	}
}

func TestStore_EmptyRange(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx, seedOrders()); err != nil {
		t.Fatal(err)
	}

	orders, err := store.OrdersBetween(ctx,
		time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1995, time.December, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("empty range must not error, got: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("empty range returned %d rows", len(orders))
	}
}

func TestStore_QueryErrorPropagates(t *testing.T) {
	cfg := config.WarehouseConfig{
		Driver:      "sqlite3",
		DSN:         filepath.Join(t.TempDir(), "orders.db"),
		OrdersTable: "missing_table",
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	// No EnsureSchema: the table does not exist.
	_, err = store.OrdersBetween(context.Background(),
		time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Error("query against a missing table must surface the error")
	}
}
