package service

import (
	"context"
	"fmt"

	"github.com/hitoshi/posledger/internal/events"
	"github.com/hitoshi/posledger/internal/model"
	"github.com/hitoshi/posledger/internal/repository"
)

// OrderService は注文の管理を提供する。
// user_id・product_idの参照先が存在するかは検証しない。
type OrderService struct {
	repo     repository.OrderRepository
	notifier *Notifier
}

// NewOrderService はOrderServiceを生成する。
func NewOrderService(repo repository.OrderRepository, notifier *Notifier) *OrderService {
	return &OrderService{repo: repo, notifier: notifier}
}

func (s *OrderService) List(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Orderの一覧取得に失敗しました: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	return getOrNotFound(o, err, "Order", id)
}

func (s *OrderService) Create(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	o := &model.Order{}
	in.ApplyTo(o)
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("Orderの作成に失敗しました: %w", err)
	}

	s.notifier.notify(ctx, "order", events.ActionCreated, o.ID)
	return o, nil
}

func (s *OrderService) Update(ctx context.Context, id int64, in model.OrderInput) (*model.Order, error) {
	o, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapWriteError(err, "Order", id, "更新")
	}

	s.notifier.notify(ctx, "order", events.ActionUpdated, id)
	return o, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Order", id, "削除")
	}
	s.notifier.notify(ctx, "order", events.ActionDeleted, id)
	return nil
}

// PaymentService は支払いの管理を提供する。
type PaymentService struct {
	repo     repository.PaymentRepository
	notifier *Notifier
}

// NewPaymentService はPaymentServiceを生成する。
func NewPaymentService(repo repository.PaymentRepository, notifier *Notifier) *PaymentService {
	return &PaymentService{repo: repo, notifier: notifier}
}

func (s *PaymentService) List(ctx context.Context) ([]*model.Payment, error) {
	payments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Paymentの一覧取得に失敗しました: %w", err)
	}
	return payments, nil
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*model.Payment, error) {
	p, err := s.repo.FindByID(ctx, id)
	return getOrNotFound(p, err, "Payment", id)
}

func (s *PaymentService) Create(ctx context.Context, in model.PaymentInput) (*model.Payment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := &model.Payment{}
	in.ApplyTo(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("Paymentの作成に失敗しました: %w", err)
	}

	s.notifier.notify(ctx, "payment", events.ActionCreated, p.ID)
	return p, nil
}

func (s *PaymentService) Update(ctx context.Context, id int64, in model.PaymentInput) (*model.Payment, error) {
	p, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapWriteError(err, "Payment", id, "更新")
	}

	s.notifier.notify(ctx, "payment", events.ActionUpdated, id)
	return p, nil
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Payment", id, "削除")
	}
	s.notifier.notify(ctx, "payment", events.ActionDeleted, id)
	return nil
}

// SaleService は売上の管理を提供する。
type SaleService struct {
	repo     repository.SaleRepository
	notifier *Notifier
}

// NewSaleService はSaleServiceを生成する。
func NewSaleService(repo repository.SaleRepository, notifier *Notifier) *SaleService {
	return &SaleService{repo: repo, notifier: notifier}
}

func (s *SaleService) List(ctx context.Context) ([]*model.Sale, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Saleの一覧取得に失敗しました: %w", err)
	}
	return sales, nil
}

func (s *SaleService) Get(ctx context.Context, id int64) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	return getOrNotFound(sale, err, "Sale", id)
}

func (s *SaleService) Create(ctx context.Context, in model.SaleInput) (*model.Sale, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sale := &model.Sale{}
	in.ApplyTo(sale)
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("Saleの作成に失敗しました: %w", err)
	}

	s.notifier.notify(ctx, "sale", events.ActionCreated, sale.ID)
	return sale, nil
}

func (s *SaleService) Update(ctx context.Context, id int64, in model.SaleInput) (*model.Sale, error) {
	sale, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapWriteError(err, "Sale", id, "更新")
	}

	s.notifier.notify(ctx, "sale", events.ActionUpdated, id)
	return sale, nil
}

func (s *SaleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Sale", id, "削除")
	}
	s.notifier.notify(ctx, "sale", events.ActionDeleted, id)
	return nil
}
