package server

import (
	"log/slog"
	"net/http"

	"orders-dashboard/internal/handlers"
	"orders-dashboard/internal/services"
)

type Server struct {
	analytics   *services.Analytics
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		analytics:   analytics,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(analytics, logger),
		sseHandlers: handlers.NewSSEHandlers(analytics, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints, one per derived table
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)
	s.mux.HandleFunc("GET /api/monthly-series", s.apiHandlers.HandleMonthlySeries)
	s.mux.HandleFunc("GET /api/yearly-trend", s.apiHandlers.HandleYearlyTrend)
	s.mux.HandleFunc("GET /api/month-comparison", s.apiHandlers.HandleMonthComparison)
	s.mux.HandleFunc("GET /api/status-revenue", s.apiHandlers.HandleStatusRevenue)
	s.mux.HandleFunc("GET /api/status-counts", s.apiHandlers.HandleStatusCounts)
	s.mux.HandleFunc("GET /api/priority-counts", s.apiHandlers.HandlePriorityCounts)
	s.mux.HandleFunc("GET /api/status-stats", s.apiHandlers.HandleStatusStats)
	s.mux.HandleFunc("GET /api/priority-status", s.apiHandlers.HandlePriorityStatus)
	s.mux.HandleFunc("GET /api/value-histogram", s.apiHandlers.HandleValueHistogram)
	s.mux.HandleFunc("GET /api/value-outliers", s.apiHandlers.HandleValueOutliers)
	s.mux.HandleFunc("GET /api/revenue-matrix", s.apiHandlers.HandleRevenueMatrix)
	s.mux.HandleFunc("GET /api/orders-sample", s.apiHandlers.HandleOrdersSample)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/summary", s.sseHandlers.HandleSummary)
	s.mux.HandleFunc("GET /sse/monthly-series", s.sseHandlers.HandleMonthlySeries)
	s.mux.HandleFunc("GET /sse/yearly-trend", s.sseHandlers.HandleYearlyTrend)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
