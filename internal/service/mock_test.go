package service

import (
	"context"
	"sync"
	"time"

	"github.com/hitoshi/posledger/internal/events"
	"github.com/hitoshi/posledger/internal/model"
)

// --- モック ---

type mockUserRepo struct {
	listFn     func(ctx context.Context) ([]*model.User, error)
	findByIDFn func(ctx context.Context, id int64) (*model.User, error)
	createFn   func(ctx context.Context, user *model.User) error
	updateFn   func(ctx context.Context, id int64, in model.UserInput) (*model.User, error)
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	return m.listFn(ctx)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error) {
	return m.updateFn(ctx, id, in)
}
func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockProductRepo struct {
	findByIDFn func(ctx context.Context, id int64) (*model.Product, error)
	createFn   func(ctx context.Context, p *model.Product) error
	updateFn   func(ctx context.Context, id int64, in model.ProductInput) (*model.Product, error)
	deleteFn   func(ctx context.Context, id int64) error
}

func (m *mockProductRepo) List(ctx context.Context) ([]*model.Product, error) {
	return []*model.Product{}, nil
}
func (m *mockProductRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockProductRepo) Create(ctx context.Context, p *model.Product) error {
	return m.createFn(ctx, p)
}
func (m *mockProductRepo) Update(ctx context.Context, id int64, in model.ProductInput) (*model.Product, error) {
	return m.updateFn(ctx, id, in)
}
func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockOrderRepo struct {
	findByIDFn func(ctx context.Context, id int64) (*model.Order, error)
	createFn   func(ctx context.Context, o *model.Order) error
}

func (m *mockOrderRepo) List(ctx context.Context) ([]*model.Order, error) {
	return []*model.Order{}, nil
}
func (m *mockOrderRepo) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockOrderRepo) Create(ctx context.Context, o *model.Order) error {
	return m.createFn(ctx, o)
}
func (m *mockOrderRepo) Update(ctx context.Context, id int64, in model.OrderInput) (*model.Order, error) {
	return nil, nil
}
func (m *mockOrderRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

type mockDeliverymanRepo struct {
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockDeliverymanRepo) List(ctx context.Context) ([]*model.Deliveryman, error) {
	return nil, nil
}
func (m *mockDeliverymanRepo) FindByID(ctx context.Context, id int64) (*model.Deliveryman, error) {
	return nil, nil
}
func (m *mockDeliverymanRepo) Create(ctx context.Context, d *model.Deliveryman) error {
	return nil
}
func (m *mockDeliverymanRepo) Update(ctx context.Context, id int64, in model.ContactInput) (*model.Deliveryman, error) {
	return nil, nil
}
func (m *mockDeliverymanRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockInventoryRepo struct {
	createFn func(ctx context.Context, inv *model.Inventory) error
}

func (m *mockInventoryRepo) List(ctx context.Context) ([]*model.Inventory, error) {
	return []*model.Inventory{}, nil
}
func (m *mockInventoryRepo) Create(ctx context.Context, inv *model.Inventory) error {
	return m.createFn(ctx, inv)
}

// recordingMetrics は呼び出しを記録するMetricsCollector。
type recordingMetrics struct {
	mu              sync.Mutex
	mutations       []string
	publishFailures []string
}

func (m *recordingMetrics) RecordHTTPRequest(string, int, time.Duration) {}

func (m *recordingMetrics) RecordMutation(entity, action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations = append(m.mutations, entity+"."+action)
}

func (m *recordingMetrics) RecordEventPublishFailure(entity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishFailures = append(m.publishFailures, entity)
}

// recordingPublisher は発行されたイベントを記録するPublisher。
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func newTestNotifier() (*Notifier, *recordingMetrics, *recordingPublisher) {
	m := &recordingMetrics{}
	p := &recordingPublisher{}
	return NewNotifier(m, p), m, p
}
