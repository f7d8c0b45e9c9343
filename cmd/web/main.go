package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"orders-dashboard/internal/config"
	"orders-dashboard/internal/middleware"
	"orders-dashboard/internal/observability"
	"orders-dashboard/internal/server"
	"orders-dashboard/internal/services"
	"orders-dashboard/internal/ui/templates"
	"orders-dashboard/internal/warehouse"
)

const (
	renderTimeout = 10 * time.Second
	schemaTimeout = 30 * time.Second
	cacheMaxAge   = "public, max-age=300"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Cache-Control", cacheMaxAge)
	if err := templates.Dashboard().Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"warehouse_driver", cfg.Warehouse.Driver,
	)

	store, err := warehouse.Open(cfg.Warehouse, logger)
	if err != nil {
		logger.Error("failed to open warehouse", "error", err)
		os.Exit(1)
	}

	if cfg.Warehouse.Driver == "sqlite3" {
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure warehouse schema", "error", err)
			os.Exit(1)
		}
	}

	analytics := services.NewAnalytics(store.OrdersBetween, cfg.Cache.TTL, logger)

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	srv := server.NewServer(analytics, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("closing warehouse connection")
		return store.Close()
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
