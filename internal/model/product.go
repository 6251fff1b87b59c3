package model

import "github.com/shopspring/decimal"

// Product は販売商品を表す。
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductInput は商品作成・更新リクエストの入力。
type ProductInput struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// Validate は作成時の必須フィールドと価格の符号を検証する。
func (in ProductInput) Validate() error {
	var m missingFields
	m.require(in.Name != nil, "name")
	m.require(in.Price != nil, "price")
	if err := m.err(); err != nil {
		return err
	}
	return in.ValidatePatch()
}

// ValidatePatch は更新時に指定された値だけを検証する。
func (in ProductInput) ValidatePatch() error {
	return nonNegativeMoney("price", in.Price)
}

// ApplyTo は指定されたフィールドだけをpに上書きする。
func (in ProductInput) ApplyTo(p *Product) {
	setString(&p.Name, in.Name)
	setMoney(&p.Price, in.Price)
}

// Inventory は商品ごとの在庫数を表す。
// 注文による自動減算は行わない。
type Inventory struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// InventoryInput は在庫作成リクエストの入力。
type InventoryInput struct {
	ProductID *int64 `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

// Validate は作成時の必須フィールドを検証する。
func (in InventoryInput) Validate() error {
	var m missingFields
	m.require(in.ProductID != nil, "product_id")
	m.require(in.Quantity != nil, "quantity")
	return m.err()
}

// ApplyTo は指定されたフィールドだけをinvに上書きする。
func (in InventoryInput) ApplyTo(inv *Inventory) {
	setInt64(&inv.ProductID, in.ProductID)
	setInt(&inv.Quantity, in.Quantity)
}

func setMoney(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = RoundMoney(*src)
	}
}

func setInt64(dst *int64, src *int64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
