package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order は単一商品の注文を表す。
// UserID・ProductIDは弱参照で、参照先の存在は検証しない。
type Order struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OrderInput は注文作成・更新リクエストの入力。
// CreatedAtが未指定の場合はDB側で現在時刻が設定される。
type OrderInput struct {
	UserID     *int64           `json:"user_id"`
	ProductID  *int64           `json:"product_id"`
	Quantity   *int             `json:"quantity"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	CreatedAt  *time.Time       `json:"created_at"`
}

// Validate は作成時の必須フィールドの有無だけを検証する。金額の範囲は検証しない。
func (in OrderInput) Validate() error {
	var m missingFields
	m.require(in.UserID != nil, "user_id")
	m.require(in.ProductID != nil, "product_id")
	m.require(in.Quantity != nil, "quantity")
	m.require(in.TotalPrice != nil, "total_price")
	return m.err()
}

// ApplyTo は指定されたフィールドだけをoに上書きする。
func (in OrderInput) ApplyTo(o *Order) {
	setInt64(&o.UserID, in.UserID)
	setInt64(&o.ProductID, in.ProductID)
	setInt(&o.Quantity, in.Quantity)
	setMoney(&o.TotalPrice, in.TotalPrice)
	setTime(&o.CreatedAt, in.CreatedAt)
}

// Payment は注文に対する支払いを表す。
type Payment struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PaymentInput は支払い作成・更新リクエストの入力。
type PaymentInput struct {
	OrderID       *int64           `json:"order_id"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod *string          `json:"payment_method"`
	PaymentStatus *string          `json:"payment_status"`
	CreatedAt     *time.Time       `json:"created_at"`
}

// Validate は作成時の必須フィールドの有無だけを検証する。金額の範囲は検証しない。
func (in PaymentInput) Validate() error {
	var m missingFields
	m.require(in.OrderID != nil, "order_id")
	m.require(in.Amount != nil, "amount")
	return m.err()
}

// ApplyTo は指定されたフィールドだけをpに上書きする。
func (in PaymentInput) ApplyTo(p *Payment) {
	setInt64(&p.OrderID, in.OrderID)
	setMoney(&p.Amount, in.Amount)
	setString(&p.PaymentMethod, in.PaymentMethod)
	setString(&p.PaymentStatus, in.PaymentStatus)
	setTime(&p.CreatedAt, in.CreatedAt)
}

// Sale は注文から計上された売上を表す。
type Sale struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SaleInput は売上作成・更新リクエストの入力。
type SaleInput struct {
	OrderID      *int64           `json:"order_id"`
	TotalRevenue *decimal.Decimal `json:"total_revenue"`
	CreatedAt    *time.Time       `json:"created_at"`
}

// Validate は作成時の必須フィールドの有無だけを検証する。金額の範囲は検証しない。
func (in SaleInput) Validate() error {
	var m missingFields
	m.require(in.OrderID != nil, "order_id")
	m.require(in.TotalRevenue != nil, "total_revenue")
	return m.err()
}

// ApplyTo は指定されたフィールドだけをsに上書きする。
func (in SaleInput) ApplyTo(s *Sale) {
	setInt64(&s.OrderID, in.OrderID)
	setMoney(&s.TotalRevenue, in.TotalRevenue)
	setTime(&s.CreatedAt, in.CreatedAt)
}

func setTime(dst *time.Time, src *time.Time) {
	if src != nil {
		*dst = *src
	}
}
