package commands_test

import (
	"context"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/audit"
	"backoffice/internal/core/domain/model/inventory"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) LoadJoinedState(ctx context.Context, orderID int64) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateItem(ctx context.Context, orderID int64, item order.Item) error {
	args := m.Called(ctx, orderID, item)
	return args.Error(0)
}

func (m *MockOrderRepository) PersistOrderAndHistory(
	ctx context.Context,
	o *order.Order,
	actorID int64,
	comment string,
) (int64, error) {
	args := m.Called(ctx, o, actorID, comment)
	return args.Get(0).(int64), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Get(ctx context.Context, inventoryID int64) (*inventory.Record, error) {
	args := m.Called(ctx, inventoryID)
	r, _ := args.Get(0).(*inventory.Record)
	return r, args.Error(1)
}

func (m *MockInventoryRepository) GetByStoreAndProduct(
	ctx context.Context,
	storeID, productID int64,
) (*inventory.Record, error) {
	args := m.Called(ctx, storeID, productID)
	r, _ := args.Get(0).(*inventory.Record)
	return r, args.Error(1)
}

func (m *MockInventoryRepository) Edit(ctx context.Context, inventoryID int64, quantity int, actorID int64) error {
	args := m.Called(ctx, inventoryID, quantity, actorID)
	return args.Error(0)
}

func (m *MockInventoryRepository) AssignToStore(
	ctx context.Context,
	productID, storeID int64,
	quantity int,
	actorID int64,
) (int64, error) {
	args := m.Called(ctx, productID, storeID, quantity, actorID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditLog struct{ mock.Mock }

func (m *MockAuditLog) Log(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockUoW) AuditLog() ports.AuditLog {
	args := m.Called()
	return args.Get(0).(ports.AuditLog)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) OrderTransitioned(from, to order.Status, r role.Role) {
	m.Called(from, to, r)
}
