package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"orders-dashboard/internal/models"
	"orders-dashboard/internal/server"
	"orders-dashboard/internal/services"
)

func newTestAnalytics() *services.Analytics {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	orders := []models.Order{
		{OrderKey: 1, OrderDate: time.Date(2020, time.January, 5, 0, 0, 0, 0, time.UTC), Status: "F", Priority: "HIGH", TotalPrice: 100},
		{OrderKey: 2, OrderDate: time.Date(2020, time.February, 10, 0, 0, 0, 0, time.UTC), Status: "O", Priority: "LOW", TotalPrice: 200},
		{OrderKey: 3, OrderDate: time.Date(2021, time.January, 20, 0, 0, 0, 0, time.UTC), Status: "F", Priority: "HIGH", TotalPrice: 300},
	}
	return services.NewAnalytics(func(ctx context.Context, start, end time.Time) ([]models.Order, error) {
		return orders, nil
	}, 600*time.Second, logger)
}

func newTestServer() *server.Server {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	templateHandlers := &server.TemplateHandlers{Dashboard: handleDashboard}
	return server.NewServer(newTestAnalytics(), logger, templateHandlers)
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer()

	routes := []string{
		"/health",
		"/admin/stats",
		"/api/summary",
		"/api/monthly-series",
		"/api/yearly-trend",
		"/api/month-comparison",
		"/api/status-revenue",
		"/api/status-counts",
		"/api/priority-counts",
		"/api/status-stats",
		"/api/priority-status",
		"/api/value-histogram",
		"/api/value-outliers",
		"/api/revenue-matrix",
		"/api/orders-sample",
	}

	for _, route := range routes {
		t.Run(route, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, route, nil)
			w := httptest.NewRecorder()

			srv.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("GET %s = %d, want %d", route, w.Code, http.StatusOK)
			}
		})
	}
}

func TestServer_JSONResponse(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/summary?start=2020-01-01&end=2021-12-31", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}

	if success, ok := response["success"].(bool); !ok || !success {
		t.Error("expected success=true")
	}

	data := response["data"].(map[string]interface{})
	if data["total_orders"].(float64) != 3 {
		t.Errorf("total_orders = %v, want 3", data["total_orders"])
	}
}

func TestServer_SSERoutes(t *testing.T) {
	srv := newTestServer()

	routes := []string{
		"/sse/summary",
		"/sse/monthly-series",
		"/sse/yearly-trend",
		"/sse/refresh-all",
	}

	for _, route := range routes {
		t.Run(route, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, route, nil)
			w := httptest.NewRecorder()

			srv.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("GET %s = %d, want %d", route, w.Code, http.StatusOK)
			}
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
				t.Errorf("GET %s content type = %q, want SSE", route, ct)
			}
		})
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/summary", nil)
	w := httptest.NewRecorder()

	srv.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/summary = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestDashboardTemplate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handleDashboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	for _, want := range []string{"Orders Analytics Dashboard", "summary-content", "/sse/refresh-all"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}
