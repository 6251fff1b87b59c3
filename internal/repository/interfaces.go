// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"

	"github.com/hitoshi/posledger/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// List は全ユーザーをID昇順で返す。
	List(ctx context.Context) ([]*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// Create はユーザーを作成し、採番されたIDをuser.IDに設定する。
	// ユーザー名が重複する場合はErrDuplicateKeyを返す。
	Create(ctx context.Context, user *model.User) error

	// Update は指定フィールドだけを上書きし、更新後のユーザーを返す。
	// 見つからない場合はErrNotFoundを返す。
	Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error)

	// Delete は指定IDのユーザーを削除する。見つからない場合はErrNotFoundを返す。
	Delete(ctx context.Context, id int64) error
}

// ProductRepository は商品データの永続化インターフェース。
type ProductRepository interface {
	List(ctx context.Context) ([]*model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, id int64, in model.ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

// OrderRepository は注文データの永続化インターフェース。
type OrderRepository interface {
	List(ctx context.Context) ([]*model.Order, error)
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	// Create はCreatedAtがゼロ値の場合、DB側の現在時刻を設定する。
	Create(ctx context.Context, order *model.Order) error
	Update(ctx context.Context, id int64, in model.OrderInput) (*model.Order, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerRepository は顧客データの永続化インターフェース。
type CustomerRepository interface {
	List(ctx context.Context) ([]*model.Customer, error)
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, id int64, in model.ContactInput) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository は支払いデータの永続化インターフェース。
type PaymentRepository interface {
	List(ctx context.Context) ([]*model.Payment, error)
	FindByID(ctx context.Context, id int64) (*model.Payment, error)
	Create(ctx context.Context, payment *model.Payment) error
	Update(ctx context.Context, id int64, in model.PaymentInput) (*model.Payment, error)
	Delete(ctx context.Context, id int64) error
}

// InventoryRepository は在庫データの永続化インターフェース。
// 在庫は一覧と作成のみを公開する。個別の取得・更新・削除は持たない。
type InventoryRepository interface {
	List(ctx context.Context) ([]*model.Inventory, error)
	Create(ctx context.Context, inventory *model.Inventory) error
}

// SaleRepository は売上データの永続化インターフェース。
type SaleRepository interface {
	List(ctx context.Context) ([]*model.Sale, error)
	FindByID(ctx context.Context, id int64) (*model.Sale, error)
	Create(ctx context.Context, sale *model.Sale) error
	Update(ctx context.Context, id int64, in model.SaleInput) (*model.Sale, error)
	Delete(ctx context.Context, id int64) error
}

// DeliverymanRepository は配達員データの永続化インターフェース。
type DeliverymanRepository interface {
	List(ctx context.Context) ([]*model.Deliveryman, error)
	FindByID(ctx context.Context, id int64) (*model.Deliveryman, error)
	Create(ctx context.Context, deliveryman *model.Deliveryman) error
	Update(ctx context.Context, id int64, in model.ContactInput) (*model.Deliveryman, error)
	// Delete は配達員を削除する。参照しているdeliveriesの行は変更しない。
	Delete(ctx context.Context, id int64) error
}

// DeliveryRepository は配達データの永続化インターフェース。
type DeliveryRepository interface {
	List(ctx context.Context) ([]*model.Delivery, error)
	FindByID(ctx context.Context, id int64) (*model.Delivery, error)
	Create(ctx context.Context, delivery *model.Delivery) error
	Update(ctx context.Context, id int64, in model.DeliveryInput) (*model.Delivery, error)
	Delete(ctx context.Context, id int64) error
}

// TxBeginner はトランザクション開始用のインターフェース。
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
