package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/posledger/internal/metrics"
	"github.com/hitoshi/posledger/internal/middleware"
	"github.com/hitoshi/posledger/internal/model"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	Metrics           metrics.MetricsCollector
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// 運用エンドポイント
	DB             Pinger
	MetricsHandler http.Handler

	// エンティティ
	Users       ResourceService[model.User, model.UserInput, model.UserSummary]
	Products    ResourceService[model.Product, model.ProductInput, *model.Product]
	Orders      ResourceService[model.Order, model.OrderInput, *model.Order]
	Customers   ResourceService[model.Customer, model.ContactInput, *model.Customer]
	Payments    ResourceService[model.Payment, model.PaymentInput, *model.Payment]
	Inventory   CollectionService[model.Inventory, model.InventoryInput, *model.Inventory]
	Sales       ResourceService[model.Sale, model.SaleInput, *model.Sale]
	Deliverymen ResourceService[model.Deliveryman, model.ContactInput, *model.Deliveryman]
	Deliveries  ResourceService[model.Delivery, model.DeliveryInput, *model.Delivery]
}

// resourceRoutes はResourceHandlerをchiに登録するための共通形。
type resourceRoutes interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// mountResource は /api/<entity> と /api/<entity>/{id} のルートを登録する。
func mountResource(r chi.Router, path string, h resourceRoutes) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Metrics → Recovery → SecurityHeaders → CORS
//
// /api 配下にはさらに RateLimit(General) → RateLimit(Write) を適用する。
// /health と /metrics はレート制限の対象外とする。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	r.MethodNotAllowed(methodNotAllowed)
	r.NotFound(notFound)

	// --- 運用エンドポイント ---
	r.Get("/", Index)
	if deps.DB != nil {
		r.Get("/health", NewHealthHandler(deps.DB))
	}
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- POSレコード ---
	r.Route("/api", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
			r.Use(deps.RateLimiter.WriteMiddleware())
		}

		mountResource(r, "/users", NewResourceHandler("User", deps.Users, func(u *model.User) int64 { return u.ID }))
		mountResource(r, "/products", NewResourceHandler("Product", deps.Products, func(p *model.Product) int64 { return p.ID }))
		mountResource(r, "/orders", NewResourceHandler("Order", deps.Orders, func(o *model.Order) int64 { return o.ID }))
		mountResource(r, "/customers", NewResourceHandler("Customer", deps.Customers, func(c *model.Customer) int64 { return c.ID }))
		mountResource(r, "/payments", NewResourceHandler("Payment", deps.Payments, func(p *model.Payment) int64 { return p.ID }))
		mountResource(r, "/sales", NewResourceHandler("Sale", deps.Sales, func(s *model.Sale) int64 { return s.ID }))
		mountResource(r, "/deliverymen", NewResourceHandler("Deliveryman", deps.Deliverymen, func(d *model.Deliveryman) int64 { return d.ID }))
		mountResource(r, "/deliveries", NewResourceHandler("Delivery", deps.Deliveries, func(d *model.Delivery) int64 { return d.ID }))

		// 在庫は一覧と作成のみ
		inventory := NewCollectionHandler("Inventory", deps.Inventory, func(i *model.Inventory) int64 { return i.ID })
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", inventory.List)
			r.Post("/", inventory.Create)
		})
	})

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	middleware.WriteAPIError(w, r, &model.APIError{
		Code:     model.ErrCodeNotFound,
		Message:  "指定されたパスは存在しません: " + r.URL.Path,
		Category: "resource",
		Action:   "URLを確認してください。",
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	middleware.WriteErrorResponse(w, r, http.StatusMethodNotAllowed, &model.APIError{
		Code:     model.ErrCodeInvalidRequest,
		Message:  "このパスでは" + r.Method + "は使用できません。",
		Category: "validation",
		Action:   "HTTPメソッドを確認してください。",
	})
}
