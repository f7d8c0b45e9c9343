// Package warehouse is the read-only adapter for the order-fact table. It
// speaks plain database/sql so any registered driver works; sqlite3 is the
// default for local use.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"orders-dashboard/internal/config"
	"orders-dashboard/internal/models"
)

const dateLayout = "2006-01-02"

type Store struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

// Open connects to the warehouse and verifies the connection. Connectivity
// failures surface here, before the server starts serving.
func Open(cfg config.WarehouseConfig, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open(cfg.Driver, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping warehouse: %w", err)
	}

	return &Store{
		db:     db,
		table:  cfg.OrdersTable,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the orders table if it does not exist. Only the local
// sqlite3 driver needs this; a shared warehouse already has the table.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		order_key   INTEGER PRIMARY KEY,
		order_date  TEXT NOT NULL,
		status      TEXT NOT NULL,
		priority    TEXT NOT NULL,
		total_price REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_%s_order_date ON %s (order_date);
	`, s.table, s.table, s.table)

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Seed bulk-inserts orders inside one transaction. Dev and test helper.
func (s *Store) Seed(ctx context.Context, orders []models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (order_key, order_date, status, priority, total_price) VALUES (?, ?, ?, ?, ?)`,
		s.table))
	if err != nil {
		return fmt.Errorf("prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range orders {
		if _, err := stmt.ExecContext(ctx,
			o.OrderKey,
			o.OrderDate.Format(dateLayout),
			o.Status,
			o.Priority,
			o.TotalPrice,
		); err != nil {
			return fmt.Errorf("seed order %d: %w", o.OrderKey, err)
		}
	}

	return tx.Commit()
}

// OrdersBetween runs the one parameterized query of the service: all orders
// with order_date in [start, end], both bounds inclusive. Errors propagate
// untouched; retries are not this layer's concern.
func (s *Store) OrdersBetween(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	query := fmt.Sprintf(
		`SELECT order_key, order_date, status, priority, total_price
		 FROM %s
		 WHERE order_date BETWEEN ? AND ?
		 ORDER BY order_key`,
		s.table)

	started := time.Now()
	rows, err := s.db.QueryContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var (
			o       models.Order
			rawDate string
		)
		if err := rows.Scan(&o.OrderKey, &rawDate, &o.Status, &o.Priority, &o.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		o.OrderDate, err = time.Parse(dateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse order_date %q: %w", rawDate, err)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	s.logger.Debug("warehouse query complete",
		"rows", len(orders),
		"start", start.Format(dateLayout),
		"end", end.Format(dateLayout),
		"duration", time.Since(started),
	)

	return orders, nil
}
