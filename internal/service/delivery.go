package service

import (
	"context"
	"fmt"

	"github.com/hitoshi/posledger/internal/events"
	"github.com/hitoshi/posledger/internal/model"
	"github.com/hitoshi/posledger/internal/repository"
)

// DeliveryService は配達の管理を提供する。
type DeliveryService struct {
	repo     repository.DeliveryRepository
	notifier *Notifier
}

// NewDeliveryService はDeliveryServiceを生成する。
func NewDeliveryService(repo repository.DeliveryRepository, notifier *Notifier) *DeliveryService {
	return &DeliveryService{repo: repo, notifier: notifier}
}

func (s *DeliveryService) List(ctx context.Context) ([]*model.Delivery, error) {
	deliveries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Deliveryの一覧取得に失敗しました: %w", err)
	}
	return deliveries, nil
}

func (s *DeliveryService) Get(ctx context.Context, id int64) (*model.Delivery, error) {
	d, err := s.repo.FindByID(ctx, id)
	return getOrNotFound(d, err, "Delivery", id)
}

func (s *DeliveryService) Create(ctx context.Context, in model.DeliveryInput) (*model.Delivery, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	d := &model.Delivery{}
	in.ApplyTo(d)
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("Deliveryの作成に失敗しました: %w", err)
	}

	s.notifier.notify(ctx, "delivery", events.ActionCreated, d.ID)
	return d, nil
}

func (s *DeliveryService) Update(ctx context.Context, id int64, in model.DeliveryInput) (*model.Delivery, error) {
	d, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapWriteError(err, "Delivery", id, "更新")
	}

	s.notifier.notify(ctx, "delivery", events.ActionUpdated, id)
	return d, nil
}

func (s *DeliveryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Delivery", id, "削除")
	}
	s.notifier.notify(ctx, "delivery", events.ActionDeleted, id)
	return nil
}
