package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"olist-dashboard/internal/models"
	"olist-dashboard/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestAnalytics() *services.Analytics {
	a := services.NewAnalytics(services.WithLogger(testLogger()))
	a.SetOrders("test", []models.Order{
		{OrderID: "o1", CustomerUniqueID: "c1", PurchasedAt: time.Date(2018, 1, 5, 10, 0, 0, 0, time.UTC), PaymentValue: decimal.RequireFromString("120.50"), PaymentType: "credit_card", ProductCategory: "toys", CustomerCity: "sao paulo", CustomerState: "SP"},
		{OrderID: "o2", CustomerUniqueID: "c2", PurchasedAt: time.Date(2018, 1, 22, 18, 0, 0, 0, time.UTC), PaymentValue: decimal.RequireFromString("35.00"), PaymentType: "boleto", ProductCategory: "garden_tools", CustomerCity: "curitiba", CustomerState: "PR"},
		{OrderID: "o3", CustomerUniqueID: "c1", PurchasedAt: time.Date(2018, 2, 14, 9, 0, 0, 0, time.UTC), PaymentValue: decimal.RequireFromString("64.50"), PaymentType: "credit_card", ProductCategory: "toys", CustomerCity: "sao paulo", CustomerState: "SP"},
	})
	return a
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	return env
}

func newTestMux(h *APIHandlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/report", h.HandleReport)
	mux.HandleFunc("GET /api/tables", h.HandleTables)
	mux.HandleFunc("GET /api/tables/{name}", h.HandleTable)
	return mux
}

func TestNewAPIHandlers(t *testing.T) {
	analytics := createTestAnalytics()
	handlers := NewAPIHandlers(analytics, testLogger())

	if handlers == nil {
		t.Fatal("NewAPIHandlers() returned nil")
	}
	if handlers.analytics != analytics {
		t.Error("NewAPIHandlers() should set analytics field")
	}
}

func TestAPIHandlers_HandleReport(t *testing.T) {
	mux := newTestMux(NewAPIHandlers(createTestAnalytics(), testLogger()))

	req := httptest.NewRequest(http.MethodGet, "/api/report?startDate=2018-01-01&endDate=2018-01-31", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected content-type 'application/json', got %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != cacheMaxAge {
		t.Errorf("expected cache-control %q, got %q", cacheMaxAge, cc)
	}

	env := decode(t, w)
	if !env.Success {
		t.Fatal("expected success=true in response")
	}
	var views struct {
		TotalOrders  int    `json:"total_orders"`
		TotalRevenue string `json:"total_revenue"`
		PaymentMix   []struct {
			PaymentType string  `json:"payment_type"`
			Percent     float64 `json:"percent"`
		} `json:"payment_mix"`
	}
	if err := json.Unmarshal(env.Data, &views); err != nil {
		t.Fatal(err)
	}
	if views.TotalOrders != 2 {
		t.Errorf("total_orders = %d, want 2", views.TotalOrders)
	}
	if views.TotalRevenue != "155.5" {
		t.Errorf("total_revenue = %q, want 155.5", views.TotalRevenue)
	}
	if len(views.PaymentMix) != 2 || views.PaymentMix[0].Percent != 50 {
		t.Errorf("payment_mix = %+v", views.PaymentMix)
	}
}

func TestAPIHandlers_HandleReport_DefaultsToDatasetSpan(t *testing.T) {
	mux := newTestMux(NewAPIHandlers(createTestAnalytics(), testLogger()))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/report", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var views struct {
		TotalOrders int `json:"total_orders"`
		Range       struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"range"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &views); err != nil {
		t.Fatal(err)
	}
	if views.TotalOrders != 3 {
		t.Errorf("total_orders = %d, want 3", views.TotalOrders)
	}
	if !views.Range.End.Equal(time.Date(2018, 2, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("range end = %v", views.Range.End)
	}
}

func TestAPIHandlers_HandleReport_Errors(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantCode int
		wantErr  string
	}{
		{"start after end", "/api/report?startDate=2018-02-01&endDate=2018-01-01", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed date", "/api/report?startDate=01/02/2018", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	mux := newTestMux(NewAPIHandlers(createTestAnalytics(), testLogger()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			if w.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, w.Code)
			}
			env := decode(t, w)
			if env.Success {
				t.Error("expected success=false")
			}
			if env.Error.Code != tt.wantErr {
				t.Errorf("error code = %q, want %q", env.Error.Code, tt.wantErr)
			}
		})
	}
}

func TestAPIHandlers_HandleReport_EmptyRange(t *testing.T) {
	mux := newTestMux(NewAPIHandlers(createTestAnalytics(), testLogger()))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/report?startDate=2019-01-01&endDate=2019-01-31", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var views struct {
		TotalOrders int `json:"total_orders"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &views); err != nil {
		t.Fatal(err)
	}
	if views.TotalOrders != 0 {
		t.Errorf("total_orders = %d, want 0", views.TotalOrders)
	}
}

func TestAPIHandlers_HandleReport_FiltersByQueryRange(t *testing.T) {
	mux := newTestMux(NewAPIHandlers(createTestAnalytics(), testLogger()))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/report?startDate=2018-02-01&endDate=2018-02-28", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var views struct {
		TotalOrders  int    `json:"total_orders"`
		TotalRevenue string `json:"total_revenue"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &views); err != nil {
		t.Fatal(err)
	}
	if views.TotalOrders != 1 {
		t.Errorf("total_orders = %d, want 1", views.TotalOrders)
	}
	if views.TotalRevenue != "64.5" {
		t.Errorf("total_revenue = %q, want 64.5", views.TotalRevenue)
	}
}

func TestAPIHandlers_HandleTable(t *testing.T) {
	mux := newTestMux(NewAPIHandlers(createTestAnalytics(), testLogger()))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tables/monthly_orders", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var table struct {
		Name    string     `json:"name"`
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &table); err != nil {
		t.Fatal(err)
	}
	if table.Name != "monthly_orders" {
		t.Errorf("name = %q", table.Name)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %v", table.Rows)
	}
	if table.Rows[0][0] != "2018-01-31" || table.Rows[0][1] != "2" || table.Rows[0][2] != "155.50" {
		t.Errorf("first row = %v", table.Rows[0])
	}
}

func TestAPIHandlers_HandleTable_Unknown(t *testing.T) {
	mux := newTestMux(NewAPIHandlers(createTestAnalytics(), testLogger()))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tables/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if env := decode(t, w); env.Error.Code != "NOT_FOUND" {
		t.Errorf("error code = %q", env.Error.Code)
	}
}

func TestAPIHandlers_HandleTables(t *testing.T) {
	mux := newTestMux(NewAPIHandlers(createTestAnalytics(), testLogger()))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tables?startDate=2018-02-01", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var tables []struct {
		Name string     `json:"name"`
		Rows [][]string `json:"rows"`
	}
	if err := json.Unmarshal(decode(t, w).Data, &tables); err != nil {
		t.Fatal(err)
	}
	if len(tables) != 9 {
		t.Fatalf("got %d tables, want 9", len(tables))
	}
	if tables[0].Name != "monthly_orders" || tables[8].Name != "rfm" {
		t.Errorf("table order = %s ... %s", tables[0].Name, tables[8].Name)
	}
	if len(tables[8].Rows) != 1 {
		t.Errorf("rfm rows = %v, want one customer", tables[8].Rows)
	}
}

func TestAPIHandlers_HandleBounds(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleBounds(w, httptest.NewRequest(http.MethodGet, "/api/bounds", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var bounds map[string]string
	if err := json.Unmarshal(decode(t, w).Data, &bounds); err != nil {
		t.Fatal(err)
	}
	if bounds["start"] != "2018-01-05" || bounds["end"] != "2018-02-14" {
		t.Errorf("bounds = %v", bounds)
	}
	if bounds["reference_date"] != "2018-02-14" {
		t.Errorf("reference_date = %q", bounds["reference_date"])
	}
}

func TestAPIHandlers_NoDataset(t *testing.T) {
	handlers := NewAPIHandlers(services.NewAnalytics(services.WithLogger(testLogger())), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleBounds(w, httptest.NewRequest(http.MethodGet, "/api/bounds", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("bounds status = %d, want 503", w.Code)
	}

	w = httptest.NewRecorder()
	newTestMux(handlers).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/report", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("report status = %d, want 503", w.Code)
	}
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var health map[string]string
	if err := json.Unmarshal(decode(t, w).Data, &health); err != nil {
		t.Fatal(err)
	}
	if health["status"] != "healthy" {
		t.Errorf("expected status 'healthy', got %q", health["status"])
	}
	if _, err := time.Parse(time.RFC3339, health["timestamp"]); err != nil {
		t.Errorf("timestamp not RFC3339: %v", err)
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleStats(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var stats map[string]any
	if err := json.Unmarshal(decode(t, w).Data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats["record_count"] != float64(3) {
		t.Errorf("record_count = %v, want 3", stats["record_count"])
	}
}
