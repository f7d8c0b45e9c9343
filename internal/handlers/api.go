package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"orders-dashboard/internal/errors"
	"orders-dashboard/internal/models"
	"orders-dashboard/internal/observability"
	"orders-dashboard/internal/services"
)

const (
	dateLayout = "2006-01-02"

	// Default range covers the whole sample fact table.
	defaultStart = "1992-01-01"
	defaultEnd   = "1998-12-31"

	cacheControl = "public, max-age=300"
)

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// ParseFilter reads the dashboard controls from the query string: start/end
// (inclusive, YYYY-MM-DD) plus repeated status and priority params. All are
// optional; absent selections mean no restriction.
func ParseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()

	startParam := q.Get("start")
	if startParam == "" {
		startParam = defaultStart
	}
	start, err := time.Parse(dateLayout, startParam)
	if err != nil {
		return models.Filter{}, errors.ValidationWrap(err, "invalid start date, want YYYY-MM-DD")
	}

	endParam := q.Get("end")
	if endParam == "" {
		endParam = defaultEnd
	}
	end, err := time.Parse(dateLayout, endParam)
	if err != nil {
		return models.Filter{}, errors.ValidationWrap(err, "invalid end date, want YYYY-MM-DD")
	}

	if end.Before(start) {
		return models.Filter{}, errors.Validation("end date is before start date")
	}

	return models.Filter{
		Start:      start,
		End:        end,
		Statuses:   q["status"],
		Priorities: q["priority"],
	}, nil
}

// orders resolves the filtered working set or writes the error envelope.
func (h *APIHandlers) orders(w http.ResponseWriter, r *http.Request) ([]models.Order, bool) {
	requestID := observability.GetRequestID(r.Context())

	f, err := ParseFilter(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return nil, false
	}

	data, err := h.analytics.Orders(r.Context(), f)
	if err != nil {
		errors.WriteError(w, h.logger, errors.DataAccess(err, "failed to load orders from warehouse"), requestID)
		return nil, false
	}

	return data, true
}

func writeTable(w http.ResponseWriter, data any) {
	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.Summarize(orders))
}

func (h *APIHandlers) HandleMonthlySeries(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.MonthlySeries(orders))
}

func (h *APIHandlers) HandleYearlyTrend(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}

	trend := services.YearlyTrend(orders)
	writeTable(w, map[string]any{
		"years":  trend,
		"growth": services.RevenueGrowth(trend),
	})
}

func (h *APIHandlers) HandleMonthComparison(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.MonthComparison(orders))
}

func (h *APIHandlers) HandleStatusRevenue(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.StatusRevenueSeries(orders))
}

func (h *APIHandlers) HandleStatusCounts(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.CountByStatus(orders))
}

func (h *APIHandlers) HandlePriorityCounts(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.CountByPriority(orders))
}

func (h *APIHandlers) HandleStatusStats(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.StatusBreakdown(orders))
}

func (h *APIHandlers) HandlePriorityStatus(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.PriorityStatusCounts(orders))
}

func (h *APIHandlers) HandleValueHistogram(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.ValueHistogram(orders))
}

func (h *APIHandlers) HandleValueOutliers(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.OutliersByStatus(orders))
}

func (h *APIHandlers) HandleRevenueMatrix(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.StatusPriorityMatrix(orders))
}

func (h *APIHandlers) HandleOrdersSample(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.orders(w, r)
	if !ok {
		return
	}
	writeTable(w, services.SampleOrders(orders))
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
