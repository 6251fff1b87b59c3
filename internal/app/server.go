package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/posledger/internal/events"
	"github.com/hitoshi/posledger/internal/handler"
	"github.com/hitoshi/posledger/internal/metrics"
	"github.com/hitoshi/posledger/internal/middleware"
	"github.com/hitoshi/posledger/internal/repository"
	"github.com/hitoshi/posledger/internal/service"
)

// routerParams はbuildRouterの入力。
type routerParams struct {
	DB                *sql.DB
	Publisher         events.Publisher
	Registry          *prometheus.Registry
	RateLimiter       *middleware.RateLimiter
	CORSAllowedOrigin string
	BcryptCost        int
	Logger            *slog.Logger
}

// newMetricsRegistry はランタイムとプロセスのメトリクスを含むレジストリを生成する。
func newMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// buildRouter はリポジトリ・サービス・ハンドラーをワイヤリングしたルーターを返す。
func buildRouter(p routerParams) http.Handler {
	collector := metrics.NewCollector(p.Registry)
	notifier := service.NewNotifier(collector, p.Publisher)

	// リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(p.DB)
	productRepo := repository.NewPostgresProductRepo(p.DB)
	orderRepo := repository.NewPostgresOrderRepo(p.DB)
	customerRepo := repository.NewPostgresCustomerRepo(p.DB)
	paymentRepo := repository.NewPostgresPaymentRepo(p.DB)
	inventoryRepo := repository.NewPostgresInventoryRepo(p.DB)
	saleRepo := repository.NewPostgresSaleRepo(p.DB)
	deliverymanRepo := repository.NewPostgresDeliverymanRepo(p.DB)
	deliveryRepo := repository.NewPostgresDeliveryRepo(p.DB)

	return handler.NewRouter(&handler.RouterDeps{
		Logger:            p.Logger,
		Metrics:           collector,
		CORSAllowedOrigin: p.CORSAllowedOrigin,
		RateLimiter:       p.RateLimiter,

		DB:             p.DB,
		MetricsHandler: metrics.Handler(p.Registry),

		Users:       service.NewUserService(userRepo, notifier, p.BcryptCost),
		Products:    service.NewProductService(productRepo, notifier),
		Orders:      service.NewOrderService(orderRepo, notifier),
		Customers:   service.NewCustomerService(customerRepo, notifier),
		Payments:    service.NewPaymentService(paymentRepo, notifier),
		Inventory:   service.NewInventoryService(inventoryRepo, notifier),
		Sales:       service.NewSaleService(saleRepo, notifier),
		Deliverymen: service.NewDeliverymanService(deliverymanRepo, notifier),
		Deliveries:  service.NewDeliveryService(deliveryRepo, notifier),
	})
}

// newHTTPServer はタイムアウトを設定したhttp.Serverを生成する。
func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serveUntilDone はctxがキャンセルされるまでサーバーを動かし、その後グレースフルシャットダウンする。
// 起動に失敗した場合はそのエラーを返す。
func serveUntilDone(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server listen error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

func healthcheckURL(port string) string {
	return fmt.Sprintf("http://127.0.0.1:%s/health", port)
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(url string) error {
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
