package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/posledger/internal/metrics"
	"github.com/hitoshi/posledger/internal/middleware"
	"github.com/hitoshi/posledger/internal/model"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

// newTestRouter は商品サービスのモックだけを配線したルーターを返す。
func newTestRouter(t *testing.T, products *mockProductService, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewRouter(&RouterDeps{
		Metrics:           metrics.NewCollector(reg),
		CORSAllowedOrigin: "http://localhost:3000",
		RateLimiter:       limiter,
		DB:                &mockPinger{},
		MetricsHandler:    metrics.Handler(reg),
		Products:          products,
	})
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Index(t *testing.T) {
	router := newTestRouter(t, &mockProductService{}, nil)

	w := serve(router, http.MethodGet, "/", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), "posledger") {
		t.Error("landing page must name the service")
	}
}

func TestRouter_ProductRoutes(t *testing.T) {
	svc := &mockProductService{
		getFn: func(ctx context.Context, id int64) (*model.Product, error) {
			return &model.Product{ID: id, Name: "Widget"}, nil
		},
		updateFn: func(ctx context.Context, id int64, in model.ProductInput) (*model.Product, error) {
			return &model.Product{ID: id}, nil
		},
	}
	router := newTestRouter(t, svc, nil)

	tests := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/products", "", http.StatusOK},
		{http.MethodPost, "/api/products", `{"name":"Widget","price":1}`, http.StatusCreated},
		{http.MethodGet, "/api/products/1", "", http.StatusOK},
		{http.MethodPut, "/api/products/1", `{"name":"Gadget"}`, http.StatusOK},
		{http.MethodDelete, "/api/products/1", "", http.StatusOK},
		{http.MethodGet, "/api/products/abc", "", http.StatusBadRequest},
		{http.MethodPatch, "/api/products/1", `{}`, http.StatusMethodNotAllowed},
		{http.MethodDelete, "/api/products", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := serve(router, tt.method, tt.target, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

// TestRouter_InventoryHasNoItemRoutes は在庫にID指定のルートが存在しないことを検証する。
func TestRouter_InventoryHasNoItemRoutes(t *testing.T) {
	router := newTestRouter(t, &mockProductService{}, nil)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := serve(router, method, "/api/inventory/1", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("%s /api/inventory/1: status = %d, want 404", method, w.Code)
		}
	}

	w := serve(router, http.MethodPut, "/api/inventory", `{}`)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("PUT /api/inventory: status = %d, want 405", w.Code)
	}
}

func TestRouter_UnknownPath(t *testing.T) {
	router := newTestRouter(t, &mockProductService{}, nil)

	w := serve(router, http.MethodGet, "/api/widgets", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body := parseAPIErrorResponse(t, w); body["code"] != model.ErrCodeNotFound {
		t.Errorf("code = %q, want %q", body["code"], model.ErrCodeNotFound)
	}
}

// TestRouter_ErrorBodyEchoesRequestID はエラーボディのrequest_idがX-Request-IDと一致することを検証する。
func TestRouter_ErrorBodyEchoesRequestID(t *testing.T) {
	router := newTestRouter(t, &mockProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-req-7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := parseAPIErrorResponse(t, w)
	if body["code"] != model.ErrCodeInvalidRequest {
		t.Errorf("code = %q, want %q", body["code"], model.ErrCodeInvalidRequest)
	}
	if body["request_id"] != "client-req-7" {
		t.Errorf("request_id = %q, want client-req-7", body["request_id"])
	}
}

func TestRouter_Health(t *testing.T) {
	router := NewRouter(&RouterDeps{DB: &mockPinger{}})
	if w := serve(router, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("healthy: status = %d, want 200", w.Code)
	}

	router = NewRouter(&RouterDeps{DB: &mockPinger{err: errors.New("connection refused")}})
	w := serve(router, http.MethodGet, "/health", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy: status = %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"database":"down"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

// TestRouter_MetricsEndpoint はリクエストとレコード変更がメトリクスに反映されることを検証する。
func TestRouter_MetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, &mockProductService{}, nil)

	serve(router, http.MethodGet, "/api/products", "")

	w := serve(router, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `posledger_http_requests_total{method="GET",status_code="200"}`) {
		t.Errorf("metrics output missing request counter:\n%s", w.Body.String())
	}
}

func TestRouter_CommonHeaders(t *testing.T) {
	router := newTestRouter(t, &mockProductService{}, nil)

	w := serve(router, http.MethodGet, "/api/products", "")

	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("X-Request-ID must be set on every response")
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("CORS origin header must be set")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers must be set")
	}
}

func TestRouter_PreflightBypassesRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralRate: 0.001, GeneralBurst: 1, WriteRate: 0.001, WriteBurst: 1, CleanupInterval: time.Minute,
	})
	defer limiter.Stop()
	router := newTestRouter(t, &mockProductService{}, limiter)

	for i := 0; i < 3; i++ {
		if w := serve(router, http.MethodOptions, "/api/products", ""); w.Code != http.StatusNoContent {
			t.Errorf("preflight %d: status = %d, want 204", i, w.Code)
		}
	}
}

func TestRouter_WriteRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralRate: 100, GeneralBurst: 100, WriteRate: 0.001, WriteBurst: 1, CleanupInterval: time.Minute,
	})
	defer limiter.Stop()
	router := newTestRouter(t, &mockProductService{}, limiter)

	if w := serve(router, http.MethodPost, "/api/products", `{"name":"a","price":1}`); w.Code != http.StatusCreated {
		t.Fatalf("first POST: status = %d, want 201", w.Code)
	}
	w := serve(router, http.MethodPost, "/api/products", `{"name":"b","price":1}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second POST: status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After must be set")
	}

	// 読み取りは更新系の制限を受けない
	if w := serve(router, http.MethodGet, "/api/products", ""); w.Code != http.StatusOK {
		t.Errorf("GET after write limit: status = %d, want 200", w.Code)
	}
	// 運用エンドポイントは制限の対象外
	if w := serve(router, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("GET /health: status = %d, want 200", w.Code)
	}
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	router := newTestRouter(t, &mockProductService{
		listFn: func(ctx context.Context) ([]*model.Product, error) {
			panic("unexpected")
		},
	}, nil)

	w := serve(router, http.MethodGet, "/api/products", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body := parseAPIErrorResponse(t, w); body["code"] != model.ErrCodeInternal {
		t.Errorf("code = %q, want %q", body["code"], model.ErrCodeInternal)
	}
}
