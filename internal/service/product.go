package service

import (
	"context"
	"fmt"

	"github.com/hitoshi/posledger/internal/events"
	"github.com/hitoshi/posledger/internal/model"
	"github.com/hitoshi/posledger/internal/repository"
)

// ProductService は商品の管理を提供する。
type ProductService struct {
	repo     repository.ProductRepository
	notifier *Notifier
}

// NewProductService はProductServiceを生成する。
func NewProductService(repo repository.ProductRepository, notifier *Notifier) *ProductService {
	return &ProductService{repo: repo, notifier: notifier}
}

func (s *ProductService) List(ctx context.Context) ([]*model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Productの一覧取得に失敗しました: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	return getOrNotFound(p, err, "Product", id)
}

func (s *ProductService) Create(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := &model.Product{}
	in.ApplyTo(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("Productの作成に失敗しました: %w", err)
	}

	s.notifier.notify(ctx, "product", events.ActionCreated, p.ID)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in model.ProductInput) (*model.Product, error) {
	if err := in.ValidatePatch(); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, mapWriteError(err, "Product", id, "更新")
	}

	s.notifier.notify(ctx, "product", events.ActionUpdated, id)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "Product", id, "削除")
	}
	s.notifier.notify(ctx, "product", events.ActionDeleted, id)
	return nil
}

// InventoryService は在庫の一覧と登録を提供する。
// 在庫数は注文と連動しない。
type InventoryService struct {
	repo     repository.InventoryRepository
	notifier *Notifier
}

// NewInventoryService はInventoryServiceを生成する。
func NewInventoryService(repo repository.InventoryRepository, notifier *Notifier) *InventoryService {
	return &InventoryService{repo: repo, notifier: notifier}
}

func (s *InventoryService) List(ctx context.Context) ([]*model.Inventory, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Inventoryの一覧取得に失敗しました: %w", err)
	}
	return items, nil
}

func (s *InventoryService) Create(ctx context.Context, in model.InventoryInput) (*model.Inventory, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	inv := &model.Inventory{}
	in.ApplyTo(inv)
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("Inventoryの作成に失敗しました: %w", err)
	}

	s.notifier.notify(ctx, "inventory", events.ActionCreated, inv.ID)
	return inv, nil
}
