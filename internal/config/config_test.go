package config

import (
	"testing"
	"time"

	"orders-dashboard/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Warehouse.Driver != "sqlite3" {
		t.Errorf("expected default driver sqlite3, got %q", cfg.Warehouse.Driver)
	}
	if cfg.Warehouse.OrdersTable != "orders" {
		t.Errorf("expected default orders table, got %q", cfg.Warehouse.OrdersTable)
	}
	if cfg.Cache.TTL != 600*time.Second {
		t.Errorf("expected default cache TTL 600s, got %v", cfg.Cache.TTL)
	}
	if cfg.Address() != "localhost:8084" {
		t.Errorf("expected default address localhost:8084, got %q", cfg.Address())
	}
}

func TestWarehouseConfig_ConnectionString(t *testing.T) {
	tests := []struct {
		name string
		cfg  WarehouseConfig
		want string
	}{
		{
			name: "sqlite path passes through",
			cfg:  WarehouseConfig{Driver: "sqlite3", DSN: "orders.db", User: "ignored"},
			want: "orders.db",
		},
		{
			name: "no extra fields passes through",
			cfg:  WarehouseConfig{Driver: "postgres", DSN: "host=wh"},
			want: "host=wh",
		},
		{
			name: "credentials appended as parameters",
			cfg: WarehouseConfig{
				Driver:   "snowflake",
				DSN:      "account.region",
				User:     "reporter",
				Password: "secret",
				Database: "analytics",
				Schema:   "public",
				Role:     "reader",
			},
			want: "account.region?database=analytics&password=secret&role=reader&schema=public&user=reporter",
		},
		{
			name: "existing query string extended",
			cfg:  WarehouseConfig{Driver: "snowflake", DSN: "account.region?warehouse=wh", User: "reporter"},
			want: "account.region?warehouse=wh&user=reporter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ConnectionString(); got != tt.want {
				t.Errorf("ConnectionString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate_MissingWarehouseDSN(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cfg.Warehouse.DSN = ""
	err = cfg.validate()
	if err == nil {
		t.Fatal("validate() should reject an empty warehouse DSN")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.CodeConfig {
		t.Errorf("expected code %s, got %s", errors.CodeConfig, appErr.Code)
	}
}

func TestLoad_InvalidValuesAreConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "SERVER_PORT", "99999"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "yaml"},
		{"non-positive cache TTL", "CACHE_TTL", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should reject the invalid value")
			}

			appErr, ok := err.(*errors.AppError)
			if !ok {
				t.Fatalf("expected *errors.AppError, got %T", err)
			}
			if appErr.Code != errors.CodeConfig {
				t.Errorf("expected code %s, got %s", errors.CodeConfig, appErr.Code)
			}
		})
	}
}
