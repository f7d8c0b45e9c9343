// Package services holds the order analytics pipeline: enrichment, filtering,
// the aggregation transforms, and the TTL-bound result cache in front of the
// warehouse adapter.
package services

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"orders-dashboard/internal/models"
)

// Analytics orchestrates one render pass: load the date range through the
// cache, then apply the user filter. All derived tables are pure functions of
// the returned slice, so handlers call the aggregate transforms directly.
type Analytics struct {
	cache    *Cache
	logger   *slog.Logger
	requests atomic.Int64
}

// NewAnalytics wires the loader behind an enriching TTL cache. The loader is
// typically warehouse.Store.OrdersBetween.
func NewAnalytics(load Loader, ttl time.Duration, logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}

	enriching := func(ctx context.Context, start, end time.Time) ([]models.Order, error) {
		orders, err := load(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return Enrich(orders), nil
	}

	return &Analytics{
		cache:  NewCache(enriching, ttl),
		logger: logger,
	}
}

// Orders returns the enriched, filtered working set for a render pass.
func (a *Analytics) Orders(ctx context.Context, f models.Filter) ([]models.Order, error) {
	a.requests.Add(1)

	base, err := a.cache.Get(ctx, f.Start, f.End)
	if err != nil {
		a.logger.Error("load orders", "error", err,
			"start", f.Start.Format("2006-01-02"),
			"end", f.End.Format("2006-01-02"),
		)
		return nil, err
	}

	return ApplyFilter(base, f), nil
}

// Stats feeds the admin endpoint.
func (a *Analytics) Stats() map[string]any {
	return map[string]any{
		"requests":      a.requests.Load(),
		"cached_ranges": a.cache.Len(),
	}
}
