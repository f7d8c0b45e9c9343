package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"orders-dashboard/internal/models"
	"orders-dashboard/internal/services"
)

const noDataMessage = "No data for the current filters. Adjust the date range or selections."

// noDataFragment renders the empty-state replacement for a chart container so
// the client never sees an empty chart after filtering everything out.
func noDataFragment(containerID string) string {
	return `<div id="` + containerID + `" class="empty-state">` + noDataMessage + `</div>`
}

var summaryCardTemplate = template.Must(template.New("summaryCards").Parse(`
<div id="summary-content">
<div class="kpi-grid">
<div class="kpi-card"><span class="kpi-label">Total orders</span><span class="kpi-value">{{.TotalOrders}}</span></div>
<div class="kpi-card"><span class="kpi-label">Total revenue</span><span class="kpi-value">${{printf "%.0f" .TotalRevenue}}</span></div>
<div class="kpi-card"><span class="kpi-label">Average order value</span><span class="kpi-value">${{printf "%.0f" .AvgOrderValue}}</span></div>
<div class="kpi-card"><span class="kpi-label">Median order value</span><span class="kpi-value">${{printf "%.0f" .MedianOrderValue}}</span></div>
<div class="kpi-card"><span class="kpi-label">90th percentile value</span><span class="kpi-value">${{printf "%.0f" .P90OrderValue}}</span></div>
<div class="kpi-card"><span class="kpi-label">Orders per active day</span><span class="kpi-value">{{printf "%.1f" .OrdersPerDay}}</span></div>
</div>
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *SSEHandlers) renderSummaryCards(s models.Summary) (string, error) {
	var buf strings.Builder
	err := summaryCardTemplate.Execute(&buf, s)
	return buf.String(), err
}

// filtered loads the working set for an SSE request. A load failure logs and
// ends the stream; the client keeps its last fragment.
func (h *SSEHandlers) filtered(r *http.Request) ([]models.Order, bool) {
	f, err := ParseFilter(r)
	if err != nil {
		h.logger.Warn("invalid sse filter", "error", err)
		return nil, false
	}

	orders, err := h.analytics.Orders(r.Context(), f)
	if err != nil {
		h.logger.Error("load orders for sse", "error", err)
		return nil, false
	}
	return orders, true
}

func (h *SSEHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	orders, ok := h.filtered(r)
	if !ok {
		return
	}

	if len(orders) == 0 {
		sse.PatchElements(noDataFragment("summary-content"))
		flush(w)
		return
	}

	html, err := h.renderSummaryCards(services.Summarize(orders))
	if err != nil {
		h.logger.Error("render summary cards", "error", err)
		return
	}
	sse.PatchElements(html)

	flush(w)
}

func (h *SSEHandlers) HandleMonthlySeries(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	orders, ok := h.filtered(r)
	if !ok {
		return
	}

	if len(orders) == 0 {
		sse.PatchElements(noDataFragment("monthly-content"))
		flush(w)
		return
	}

	jsonData, err := json.Marshal(map[string]any{
		"monthlyData": services.MonthlySeries(orders),
		"statusData":  services.StatusRevenueSeries(orders),
	})
	if err != nil {
		h.logger.Error("marshal monthly data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="monthly-content">Monthly trend data loaded</div>`)

	flush(w)
}

func (h *SSEHandlers) HandleYearlyTrend(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	orders, ok := h.filtered(r)
	if !ok {
		return
	}

	if len(orders) == 0 {
		sse.PatchElements(noDataFragment("yearly-content"))
		flush(w)
		return
	}

	trend := services.YearlyTrend(orders)
	jsonData, err := json.Marshal(map[string]any{
		"yearlyData": trend,
		"growthData": services.RevenueGrowth(trend),
	})
	if err != nil {
		h.logger.Error("marshal yearly data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="yearly-content">Yearly trend data loaded</div>`)

	flush(w)
}

func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	orders, ok := h.filtered(r)
	if !ok {
		return
	}

	if len(orders) == 0 {
		sse.PatchElements(noDataFragment("summary-content"))
		flush(w)
		return
	}

	html, err := h.renderSummaryCards(services.Summarize(orders))
	if err != nil {
		h.logger.Error("render summary cards", "error", err)
		return
	}
	sse.PatchElements(html)

	trend := services.YearlyTrend(orders)
	allSignals, err := json.Marshal(map[string]any{
		"monthlyData":   services.MonthlySeries(orders),
		"statusData":    services.StatusRevenueSeries(orders),
		"yearlyData":    trend,
		"growthData":    services.RevenueGrowth(trend),
		"seasonData":    services.MonthComparison(orders),
		"matrixData":    services.StatusPriorityMatrix(orders),
		"histogramData": services.ValueHistogram(orders),
	})
	if err != nil {
		h.logger.Error("marshal refresh signals", "error", err)
		return
	}
	sse.PatchSignals(allSignals)

	flush(w)
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
