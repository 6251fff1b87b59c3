package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/hitoshi/posledger/internal/model"
)

func testRateLimiterConfig(generalBurst, writeBurst int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     1,
		GeneralBurst:    generalBurst,
		WriteRate:       1,
		WriteBurst:      writeBurst,
		CleanupInterval: time.Minute,
	}
}

func newRequestFrom(method, remoteAddr string) *http.Request {
	req := httptest.NewRequest(method, "/api/products", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// --- GeneralMiddleware (API全般) のテスト ---

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(5, 10))
	defer rl.Stop()

	handlerCallCount := 0
	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCallCount++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequestFrom(http.MethodGet, "192.0.2.1:50000"))
		if w.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}

	if handlerCallCount != 5 {
		t.Errorf("handler call count = %d, want 5", handlerCallCount)
	}
}

func TestRateLimitMiddleware_Returns429WithUnifiedBody(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(1, 10))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequestFrom(http.MethodGet, "192.0.2.1:50000"))
	if w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, newRequestFrom(http.MethodGet, "192.0.2.1:50001"))

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || retryAfter < 1 {
		t.Errorf("Retry-After = %q, want positive integer", w.Header().Get("Retry-After"))
	}

	var body ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Code != model.ErrCodeRateLimited {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeRateLimited)
	}
}

// TestRateLimitMiddleware_IndependentPerClient は接続元IPごとに独立して制限されることを検証する。
func TestRateLimitMiddleware_IndependentPerClient(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(1, 10))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, newRequestFrom(http.MethodGet, "192.0.2.1:1234"))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, newRequestFrom(http.MethodGet, "192.0.2.1:1234"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("client A second request: status = %d, want 429", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, newRequestFrom(http.MethodGet, "198.51.100.7:1234"))
	if w.Code != http.StatusOK {
		t.Errorf("client B: status = %d, want 200", w.Code)
	}

	if got := rl.GeneralLimiterCount(); got != 2 {
		t.Errorf("GeneralLimiterCount = %d, want 2", got)
	}
}

// --- WriteMiddleware (更新系) のテスト ---

func TestWriteMiddleware_IgnoresReadRequests(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(100, 1))
	defer rl.Stop()

	handler := rl.WriteMiddleware()(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequestFrom(http.MethodGet, "192.0.2.1:1234"))
		if w.Code != http.StatusOK {
			t.Errorf("GET %d: status = %d, want 200", i, w.Code)
		}
	}
	if got := rl.WriteLimiterCount(); got != 0 {
		t.Errorf("WriteLimiterCount = %d, want 0", got)
	}
}

func TestWriteMiddleware_LimitsMutations(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(100, 2))
	defer rl.Stop()

	handler := rl.WriteMiddleware()(okHandler())

	methods := []string{http.MethodPost, http.MethodPut, http.MethodDelete}
	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i, method := range methods {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newRequestFrom(method, "192.0.2.1:1234"))
		if w.Code != want[i] {
			t.Errorf("%s: status = %d, want %d", method, w.Code, want[i])
		}
	}
}

func TestRateLimiter_CleanupEvictsStaleEntries(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(5, 5))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(rl.WriteMiddleware()(okHandler()))
	handler.ServeHTTP(httptest.NewRecorder(), newRequestFrom(http.MethodPost, "192.0.2.1:1234"))

	if rl.GeneralLimiterCount() != 1 || rl.WriteLimiterCount() != 1 {
		t.Fatalf("expected one entry per set, got general=%d write=%d", rl.GeneralLimiterCount(), rl.WriteLimiterCount())
	}

	rl.cleanup(time.Now().Add(time.Minute))
	if rl.GeneralLimiterCount() != 1 {
		t.Error("fresh entry must survive cleanup")
	}

	rl.cleanup(time.Now().Add(3 * time.Minute))
	if rl.GeneralLimiterCount() != 0 || rl.WriteLimiterCount() != 0 {
		t.Errorf("stale entries must be evicted, got general=%d write=%d", rl.GeneralLimiterCount(), rl.WriteLimiterCount())
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimiterConfig())
	rl.Stop()
	rl.Stop()
}

func TestNewRateLimiterConfig_PerMinute(t *testing.T) {
	cfg := NewRateLimiterConfig(120, 60)
	if cfg.GeneralRate != 2 {
		t.Errorf("GeneralRate = %v, want 2", cfg.GeneralRate)
	}
	if cfg.WriteRate != 1 {
		t.Errorf("WriteRate = %v, want 1", cfg.WriteRate)
	}
	if cfg.GeneralBurst != 120 || cfg.WriteBurst != 60 {
		t.Errorf("bursts = %d/%d, want 120/60", cfg.GeneralBurst, cfg.WriteBurst)
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"pipe", "pipe"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remoteAddr
		if got := clientKey(req); got != tt.want {
			t.Errorf("clientKey(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
		}
	}
}
