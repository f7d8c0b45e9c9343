package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"orders-dashboard/internal/errors"
)

type Config struct {
	Server    ServerConfig
	Warehouse WarehouseConfig
	Cache     CacheConfig
	Logger    LoggerConfig
	Security  SecurityConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// WarehouseConfig describes the order-fact store. ConnectionString folds the
// credential and catalog fields into the DSN for drivers that need them; they
// are optional for the local sqlite3 driver.
type WarehouseConfig struct {
	Driver      string
	DSN         string
	OrdersTable string
	User        string
	Password    string
	Database    string
	Schema      string
	Role        string
}

type CacheConfig struct {
	TTL time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "localhost"),
			Port:            getEnvInt("SERVER_PORT", 8084),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Warehouse: WarehouseConfig{
			Driver:      getEnvString("WAREHOUSE_DRIVER", "sqlite3"),
			DSN:         getEnvString("WAREHOUSE_DSN", "orders.db"),
			OrdersTable: getEnvString("WAREHOUSE_ORDERS_TABLE", "orders"),
			User:        getEnvString("WAREHOUSE_USER", ""),
			Password:    getEnvString("WAREHOUSE_PASSWORD", ""),
			Database:    getEnvString("WAREHOUSE_DATABASE", ""),
			Schema:      getEnvString("WAREHOUSE_SCHEMA", ""),
			Role:        getEnvString("WAREHOUSE_ROLE", ""),
		},
		Cache: CacheConfig{
			TTL: getEnvDuration("CACHE_TTL", 600*time.Second),
		},
		Logger: LoggerConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		Security: SecurityConfig{
			EnableRateLimit: getEnvBool("SECURITY_RATE_LIMIT_ENABLED", true),
			RateLimitRPS:    getEnvInt("SECURITY_RATE_LIMIT_RPS", 100),
			RateLimitBurst:  getEnvInt("SECURITY_RATE_LIMIT_BURST", 10),
			AllowedOrigins:  getEnvStringSlice("SECURITY_ALLOWED_ORIGINS", []string{"http://localhost:8084"}),
			TrustedProxies:  getEnvStringSlice("SECURITY_TRUSTED_PROXIES", []string{"127.0.0.1"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate classifies every startup failure as a configuration error.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.Config(fmt.Sprintf("server port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Server.ReadTimeout <= 0 {
		return errors.Config("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return errors.Config("server write timeout must be positive")
	}

	// Missing warehouse fields are fatal before any query runs.
	if c.Warehouse.Driver == "" {
		return errors.Config("missing required warehouse field WAREHOUSE_DRIVER")
	}
	if c.Warehouse.DSN == "" {
		return errors.Config("missing required warehouse field WAREHOUSE_DSN")
	}
	if c.Warehouse.OrdersTable == "" {
		return errors.Config("missing required warehouse field WAREHOUSE_ORDERS_TABLE")
	}

	if c.Cache.TTL <= 0 {
		return errors.Config("cache TTL must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.Logger.Level) {
		return errors.Config(fmt.Sprintf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, c.Logger.Format) {
		return errors.Config(fmt.Sprintf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", ")))
	}

	if c.Security.RateLimitRPS <= 0 {
		return errors.Config("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return errors.Config("rate limit burst must be positive")
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ConnectionString builds the database/sql data source name. The sqlite3
// driver takes a bare file path, so its DSN passes through untouched. Other
// drivers get the credential and catalog fields appended as query parameters.
func (w WarehouseConfig) ConnectionString() string {
	if w.Driver == "sqlite3" {
		return w.DSN
	}

	params := url.Values{}
	if w.User != "" {
		params.Set("user", w.User)
	}
	if w.Password != "" {
		params.Set("password", w.Password)
	}
	if w.Database != "" {
		params.Set("database", w.Database)
	}
	if w.Schema != "" {
		params.Set("schema", w.Schema)
	}
	if w.Role != "" {
		params.Set("role", w.Role)
	}
	if len(params) == 0 {
		return w.DSN
	}

	sep := "?"
	if strings.Contains(w.DSN, "?") {
		sep = "&"
	}
	return w.DSN + sep + params.Encode()
}
