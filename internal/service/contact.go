package service

import (
	"context"
	"fmt"

	"github.com/hitoshi/posledger/internal/events"
	"github.com/hitoshi/posledger/internal/model"
	"github.com/hitoshi/posledger/internal/repository"
)

// CustomerService は顧客の管理を提供する。必須フィールドはない。
type CustomerService struct {
	repo     repository.CustomerRepository
	notifier *Notifier
}

// NewCustomerService はCustomerServiceを生成する。
func NewCustomerService(repo repository.CustomerRepository, notifier *Notifier) *CustomerService {
	return &CustomerService{repo: repo, notifier: notifier}
}

func (s *CustomerService) List(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Customerの一覧取得に失敗しました: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	return getOrNotFound(c, err, "Customer", id)
}

func (s *CustomerService) Create(ctx context.Context, in model.ContactInput) (*model.Customer, error) {
	c := &model.Customer{}
	in.ApplyTo(&c.Contact)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("Customerの作成に失敗しました: %w", err)
	}

	s.notifier.notify(ctx, "customer", events.ActionCreated, c.ID)
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id int64, in model.ContactInput) (*model.Customer, error) {
	c, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapWriteError(err, "Customer", id, "更新")
	}

	s.notifier.notify(ctx, "customer", events.ActionUpdated, id)
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Customer", id, "削除")
	}
	s.notifier.notify(ctx, "customer", events.ActionDeleted, id)
	return nil
}

// DeliverymanService は配達員の管理を提供する。
// 削除しても配達レコードのdeliveryman_idはそのまま残る。
type DeliverymanService struct {
	repo     repository.DeliverymanRepository
	notifier *Notifier
}

// NewDeliverymanService はDeliverymanServiceを生成する。
func NewDeliverymanService(repo repository.DeliverymanRepository, notifier *Notifier) *DeliverymanService {
	return &DeliverymanService{repo: repo, notifier: notifier}
}

func (s *DeliverymanService) List(ctx context.Context) ([]*model.Deliveryman, error) {
	deliverymen, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Deliverymanの一覧取得に失敗しました: %w", err)
	}
	return deliverymen, nil
}

func (s *DeliverymanService) Get(ctx context.Context, id int64) (*model.Deliveryman, error) {
	d, err := s.repo.FindByID(ctx, id)
	return getOrNotFound(d, err, "Deliveryman", id)
}

func (s *DeliverymanService) Create(ctx context.Context, in model.ContactInput) (*model.Deliveryman, error) {
	d := &model.Deliveryman{}
	in.ApplyTo(&d.Contact)
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("Deliverymanの作成に失敗しました: %w", err)
	}

	s.notifier.notify(ctx, "deliveryman", events.ActionCreated, d.ID)
	return d, nil
}

func (s *DeliverymanService) Update(ctx context.Context, id int64, in model.ContactInput) (*model.Deliveryman, error) {
	d, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapWriteError(err, "Deliveryman", id, "更新")
	}

	s.notifier.notify(ctx, "deliveryman", events.ActionUpdated, id)
	return d, nil
}

func (s *DeliverymanService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Deliveryman", id, "削除")
	}
	s.notifier.notify(ctx, "deliveryman", events.ActionDeleted, id)
	return nil
}
