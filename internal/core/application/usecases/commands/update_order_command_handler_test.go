package commands_test

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/audit"
	"backoffice/internal/core/domain/model/inventory"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const warehouseID int64 = 1

type handlerFixture struct {
	orders   *MockOrderRepository
	stock    *MockInventoryRepository
	log      *MockAuditLog
	uow      *MockUoW
	factory  *MockUoWFactory
	recorder *MockRecorder
	handler  commands.UpdateOrderCommandHandler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	f := &handlerFixture{
		orders:   new(MockOrderRepository),
		stock:    new(MockInventoryRepository),
		log:      new(MockAuditLog),
		uow:      new(MockUoW),
		factory:  new(MockUoWFactory),
		recorder: new(MockRecorder),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("InventoryRepository").Return(f.stock).Maybe()
	f.uow.On("AuditLog").Return(f.log).Maybe()

	f.handler = commands.NewUpdateOrderCommandHandler(f.factory, warehouseID, f.recorder, zaptest.NewLogger(t))
	return f
}

func (f *handlerFixture) expectCommit() {
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (f *handlerFixture) assertNoWrites(t *testing.T) {
	t.Helper()
	f.orders.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "PersistOrderAndHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.stock.AssertNotCalled(t, "Edit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.stock.AssertNotCalled(t, "AssignToStore", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.log.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.recorder.AssertNotCalled(t, "OrderTransitioned", mock.Anything, mock.Anything, mock.Anything)
}

func (f *handlerFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.factory.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.stock.AssertExpectations(t)
	f.log.AssertExpectations(t)
	f.recorder.AssertExpectations(t)
}

type storedState struct {
	status      order.Status
	storeID     int64
	creatorID   int64
	creatorRole role.Role
	total       string
	comments    string
	items       []order.Item
}

func item(t *testing.T, id, productID int64, qty int, total string) order.Item {
	t.Helper()
	it, err := order.NewItem(id, productID, order.SourceWarehouse, qty, kernel.MustMoney(total))
	require.NoError(t, err)
	return it
}

func storedOrder(t *testing.T, s storedState) *order.Order {
	t.Helper()
	if s.storeID == 0 {
		s.storeID = 2
	}
	if s.creatorID == 0 {
		s.creatorID = 3
	}
	if s.creatorRole == "" {
		s.creatorRole = role.Manager
	}
	if s.total == "" {
		s.total = "100.00"
	}
	if s.items == nil {
		s.items = []order.Item{item(t, 10, 1, 5, "50.00")}
	}
	o, err := order.RestoreOrder(order.State{
		ID:          1,
		StoreID:     s.storeID,
		Status:      s.status,
		Total:       kernel.MustMoney(s.total),
		Comments:    s.comments,
		CreatorID:   s.creatorID,
		CreatorRole: s.creatorRole,
		Items:       s.items,
	})
	require.NoError(t, err)
	return o
}

func record(t *testing.T, id, productID, storeID int64, qty int) *inventory.Record {
	t.Helper()
	r, err := inventory.RestoreRecord(id, productID, storeID, qty)
	require.NoError(t, err)
	return r
}

func updateCmd(t *testing.T, in commands.UpdateOrderInput) commands.UpdateOrderCommand {
	t.Helper()
	if in.OrderID == 0 {
		in.OrderID = 1
	}
	cmd, err := commands.NewUpdateOrderCommand(in)
	require.NoError(t, err)
	return cmd
}

func auditEntry(table audit.Table, action audit.Action) any {
	return mock.MatchedBy(func(e audit.Entry) bool {
		return e.Table == table && e.Action == action
	})
}

func TestUpdateOrderCommandHandler_ApprovalDeductsWarehouseStock(t *testing.T) {
	f := newHandlerFixture(t)
	o := storedOrder(t, storedState{status: order.Pending, storeID: 1})

	f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
	f.stock.On("GetByStoreAndProduct", mock.Anything, warehouseID, int64(1)).Return(record(t, 11, 1, 1, 5), nil).Once()
	f.stock.On("Edit", mock.Anything, int64(11), 0, int64(8)).Return(nil).Once()
	f.orders.On("PersistOrderAndHistory", mock.Anything, o, int64(8), "Updated order. status: Pendiente → Aprobada").
		Return(int64(42), nil).Once()
	f.log.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Entry) bool {
		return e.Table == audit.TableOrders && e.RecordID == 1 && e.EmployeeID == 8 &&
			e.Comment == "Updated: status: Pendiente → Aprobada"
	})).Return(nil).Once()
	f.log.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Entry) bool {
		return e.Table == audit.TableOrderHistory && e.RecordID == 42 && e.Action == audit.ActionInsert
	})).Return(nil).Once()
	f.expectCommit()
	f.recorder.On("OrderTransitioned", order.Pending, order.Approved, role.WarehouseManager).Once()

	res, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status:        "Aprobada",
		OrderTotal:    strPtr("100.00"),
		Comments:      strPtr(""),
		RequesterID:   8,
		RequesterRole: "warehouse_manager",
	}))

	require.NoError(t, err)
	assert.Equal(t, commands.UpdateOrderResult{Success: true, OrderID: 1, HistoryID: 42}, res)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_InsufficientStockRollsBack(t *testing.T) {
	tests := map[string]any{
		"stock below item quantity": record(t, 50, 2, 1, 2),
		"no warehouse record":       nil,
	}

	for name, rec := range tests {
		t.Run(name, func(t *testing.T) {
			f := newHandlerFixture(t)
			o := storedOrder(t, storedState{status: order.Pending, total: "20.00", items: []order.Item{item(t, 200, 2, 5, "20.00")}})

			f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
			f.stock.On("GetByStoreAndProduct", mock.Anything, warehouseID, int64(2)).Return(rec, nil).Once()

			_, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
				Status: "Aprobada", OrderTotal: strPtr("20.00"), Comments: strPtr(""),
				RequesterID: 8, RequesterRole: "warehouse_manager",
			}))

			require.ErrorIs(t, err, errs.ErrInsufficientStock)
			assert.Regexp(t, `(?i)not enough stock`, err.Error())
			f.assertNoWrites(t)
			f.assertExpectations(t)
		})
	}
}

func TestUpdateOrderCommandHandler_CancelApprovedReimburses(t *testing.T) {
	f := newHandlerFixture(t)
	o := storedOrder(t, storedState{
		status: order.Approved, storeID: 1, creatorID: 9, total: "30.00",
		items: []order.Item{item(t, 101, 10, 7, "30.00")},
	})

	f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
	f.stock.On("GetByStoreAndProduct", mock.Anything, warehouseID, int64(10)).Return(record(t, 300, 10, 1, 2), nil).Once()
	f.stock.On("Edit", mock.Anything, int64(300), 9, int64(9)).Return(nil).Once()
	f.orders.On("PersistOrderAndHistory", mock.Anything, o, int64(9), mock.Anything).Return(int64(13), nil).Once()
	f.log.On("Log", mock.Anything, mock.Anything).Return(nil).Twice()
	f.expectCommit()
	f.recorder.On("OrderTransitioned", order.Approved, order.Cancelled, role.Manager).Once()

	res, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status: "Cancelada", OrderTotal: strPtr("30.00"), Comments: strPtr(""),
		RequesterID: 9, RequesterRole: "manager",
	}))

	require.NoError(t, err)
	assert.Equal(t, int64(13), res.HistoryID)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_CancelRecreatesVanishedWarehouseRecord(t *testing.T) {
	f := newHandlerFixture(t)
	o := storedOrder(t, storedState{status: order.Approved, items: []order.Item{item(t, 101, 10, 7, "30.00")}})

	f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
	f.stock.On("GetByStoreAndProduct", mock.Anything, warehouseID, int64(10)).Return(nil, nil).Once()
	f.stock.On("AssignToStore", mock.Anything, int64(10), warehouseID, 7, int64(8)).Return(int64(301), nil).Once()
	f.orders.On("PersistOrderAndHistory", mock.Anything, o, int64(8), mock.Anything).Return(int64(5), nil).Once()
	f.log.On("Log", mock.Anything, mock.Anything).Return(nil).Twice()
	f.expectCommit()
	f.recorder.On("OrderTransitioned", order.Approved, order.Cancelled, role.WarehouseManager).Once()

	_, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status: "Cancelada", RequesterID: 8, RequesterRole: "warehouse_manager",
	}))

	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_DeliveryAssignsMissingStoreInventory(t *testing.T) {
	f := newHandlerFixture(t)
	o := storedOrder(t, storedState{
		status: order.Confirmed, storeID: 2, total: "15.00",
		items: []order.Item{item(t, 111, 33, 4, "15.00")},
	})

	f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
	f.stock.On("GetByStoreAndProduct", mock.Anything, int64(2), int64(33)).Return(nil, nil).Once()
	f.stock.On("AssignToStore", mock.Anything, int64(33), int64(2), 4, int64(10)).Return(int64(77), nil).Once()
	f.orders.On("PersistOrderAndHistory", mock.Anything, o, int64(10), mock.Anything).Return(int64(14), nil).Once()
	f.log.On("Log", mock.Anything, mock.Anything).Return(nil).Twice()
	f.expectCommit()
	f.recorder.On("OrderTransitioned", order.Confirmed, order.Delivered, role.WarehouseManager).Once()

	_, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status: "Entregada", OrderTotal: strPtr("15.00"), Comments: strPtr(""),
		RequesterID: 10, RequesterRole: "warehouse_manager",
	}))

	require.NoError(t, err)
	f.stock.AssertNotCalled(t, "Edit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_DeliveryIncrementsExistingStoreInventory(t *testing.T) {
	f := newHandlerFixture(t)
	o := storedOrder(t, storedState{
		status: order.Approved, storeID: 4, total: "123.45", comments: "oldcom",
		items: []order.Item{item(t, 201, 60, 8, "50.00")},
	})

	f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
	f.stock.On("GetByStoreAndProduct", mock.Anything, int64(4), int64(60)).Return(record(t, 2, 60, 4, 99), nil).Once()
	f.stock.On("Edit", mock.Anything, int64(2), 107, int64(12)).Return(nil).Once()
	f.orders.On("PersistOrderAndHistory", mock.Anything, o, int64(12),
		"Updated order. status: Aprobada → Entregada | comments: oldcom → delivered").Return(int64(16), nil).Once()
	f.log.On("Log", mock.Anything, mock.Anything).Return(nil).Twice()
	f.expectCommit()
	f.recorder.On("OrderTransitioned", order.Approved, order.Delivered, role.WarehouseManager).Once()

	_, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status: "Entregada", Comments: strPtr("delivered"), RequesterID: 12, RequesterRole: "warehouse_manager",
	}))

	require.NoError(t, err)
	assert.Equal(t, "123.45", o.Total().String(), "omitted total keeps the stored value")
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_ManagerUpdatesProvidedItem(t *testing.T) {
	f := newHandlerFixture(t)
	o := storedOrder(t, storedState{
		status: order.Pending, storeID: 1, creatorID: 9, total: "10.00",
		items: []order.Item{item(t, 100, 1, 5, "25.00"), item(t, 101, 2, 2, "10.00")},
	})

	f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
	f.orders.On("UpdateItem", mock.Anything, int64(1), mock.MatchedBy(func(it order.Item) bool {
		return it.ID() == 100 && it.Quantity().Int() == 3 && it.Total().String() == "15.00" &&
			it.Source() == order.SourceWarehouse
	})).Return(nil).Once()
	f.orders.On("PersistOrderAndHistory", mock.Anything, o, int64(9), mock.Anything).Return(int64(11), nil).Once()
	f.log.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Entry) bool {
		return e.Table == audit.TableOrderItems && e.RecordID == 100 && e.Action == audit.ActionUpdate &&
			e.Comment == "Item 100: quantity: 5 → 3, itemTotal: 25.00 → 15.00"
	})).Return(nil).Once()
	f.log.On("Log", mock.Anything, auditEntry(audit.TableOrders, audit.ActionUpdate)).Return(nil).Once()
	f.log.On("Log", mock.Anything, auditEntry(audit.TableOrderHistory, audit.ActionInsert)).Return(nil).Once()
	f.expectCommit()
	f.recorder.On("OrderTransitioned", order.Pending, order.Pending, role.Manager).Once()

	_, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status: "Pendiente", OrderTotal: strPtr("10.00"), Comments: strPtr(""),
		Items:       []commands.UpdateOrderItemInput{{OrderItemID: 100, Source: "warehouse", Quantity: 3, ItemTotal: "15"}},
		RequesterID: 9, RequesterRole: "manager",
	}))

	require.NoError(t, err)
	assert.Equal(t, "25.00", o.Total().String())
	f.stock.AssertNotCalled(t, "GetByStoreAndProduct", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_AuditComments(t *testing.T) {
	tests := []struct {
		name     string
		comments string
		want     string
	}{
		{name: "only comments changed", comments: "New", want: "Updated order. comments:  → New"},
		{name: "nothing changed", comments: "", want: "No changes detected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			o := storedOrder(t, storedState{status: order.Pending})

			f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
			f.orders.On("PersistOrderAndHistory", mock.Anything, o, int64(1), tt.want).Return(int64(8), nil).Once()
			f.log.On("Log", mock.Anything, auditEntry(audit.TableOrders, audit.ActionUpdate)).Return(nil).Once()
			f.log.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Entry) bool {
				return e.Table == audit.TableOrderHistory && e.Comment == tt.want
			})).Return(nil).Once()
			f.expectCommit()
			f.recorder.On("OrderTransitioned", order.Pending, order.Pending, role.Manager).Once()

			_, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
				Status: "Pendiente", OrderTotal: strPtr("100.00"), Comments: strPtr(tt.comments),
				RequesterID: 1, RequesterRole: "manager",
			}))

			require.NoError(t, err)
			f.assertExpectations(t)
		})
	}
}

func TestUpdateOrderCommandHandler_RejectsBeforeAnyWrite(t *testing.T) {
	tests := []struct {
		name    string
		stored  storedState
		input   commands.UpdateOrderInput
		wantErr error
		message string
	}{
		{
			name: "warehouse manager modifies items",
			stored: storedState{status: order.Pending},
			input: commands.UpdateOrderInput{
				Status:        "Aprobada",
				Items:         []commands.UpdateOrderItemInput{{OrderItemID: 10, Source: "warehouse", Quantity: 1, ItemTotal: "10"}},
				RequesterID:   8,
				RequesterRole: "warehouse_manager",
			},
			wantErr: errs.ErrForbidden,
			message: `(?i)warehouse managers cannot modify items`,
		},
		{
			name:    "manager edits warehouse manager order",
			stored:  storedState{status: order.Pending, creatorRole: role.WarehouseManager},
			input:   commands.UpdateOrderInput{Status: "Pendiente", RequesterID: 1, RequesterRole: "manager"},
			wantErr: errs.ErrForbidden,
			message: `(?i)cannot edit orders created by warehouse managers`,
		},
		{
			name:    "manager self approval",
			stored:  storedState{status: order.Pending},
			input:   commands.UpdateOrderInput{Status: "Aprobada", RequesterID: 3, RequesterRole: "manager"},
			wantErr: errs.ErrInvalidTransition,
			message: `(?i)invalid status transition`,
		},
		{
			name: "foreign order item",
			stored: storedState{status: order.Pending},
			input: commands.UpdateOrderInput{
				Status:        "Pendiente",
				Items:         []commands.UpdateOrderItemInput{{OrderItemID: 999, Source: "warehouse", Quantity: 5, ItemTotal: "50"}},
				RequesterID:   1,
				RequesterRole: "manager",
			},
			wantErr: errs.ErrItemNotInOrder,
			message: `(?i)does not belong to this order`,
		},
		{
			name:    "sales moves order",
			stored:  storedState{status: order.Approved},
			input:   commands.UpdateOrderInput{Status: "Cancelada", RequesterID: 4, RequesterRole: "sales"},
			wantErr: errs.ErrInvalidTransition,
			message: `Aprobada → Cancelada`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(storedOrder(t, tt.stored), nil).Once()

			_, err := f.handler.Handle(t.Context(), updateCmd(t, tt.input))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Regexp(t, tt.message, err.Error())
			f.assertNoWrites(t)
			f.stock.AssertNotCalled(t, "GetByStoreAndProduct", mock.Anything, mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestUpdateOrderCommandHandler_OrderNotFound(t *testing.T) {
	f := newHandlerFixture(t)
	notFound := errs.NewObjectNotFoundError("orderID", int64(1))
	f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(nil, notFound).Once()

	_, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status: "Pendiente", RequesterID: 1, RequesterRole: "manager",
	}))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Same(t, notFound, err)
	f.assertNoWrites(t)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_StoreFailuresAreReturnedUnchanged(t *testing.T) {
	storageErr := errs.NewStorageFailureError("update inventory", errors.New("connection reset"))

	f := newHandlerFixture(t)
	o := storedOrder(t, storedState{status: order.Pending, storeID: 1})
	f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
	f.stock.On("GetByStoreAndProduct", mock.Anything, warehouseID, int64(1)).Return(record(t, 11, 1, 1, 5), nil).Once()
	f.stock.On("Edit", mock.Anything, int64(11), 0, int64(8)).Return(storageErr).Once()

	_, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status: "Aprobada", RequesterID: 8, RequesterRole: "warehouse_manager",
	}))

	assert.Same(t, storageErr, err)
	f.orders.AssertNotCalled(t, "PersistOrderAndHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_AuditFailureRollsBack(t *testing.T) {
	f := newHandlerFixture(t)
	o := storedOrder(t, storedState{status: order.Pending})
	f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
	f.orders.On("PersistOrderAndHistory", mock.Anything, o, int64(1), mock.Anything).Return(int64(3), nil).Once()
	f.log.On("Log", mock.Anything, mock.Anything).Return(errors.New("audit down")).Once()

	_, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status: "Cancelada", RequesterID: 1, RequesterRole: "manager",
	}))

	require.EqualError(t, err, "audit down")
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_CommitError(t *testing.T) {
	f := newHandlerFixture(t)
	o := storedOrder(t, storedState{status: order.Pending})
	f.orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
	f.orders.On("PersistOrderAndHistory", mock.Anything, o, int64(1), mock.Anything).Return(int64(3), nil).Once()
	f.log.On("Log", mock.Anything, mock.Anything).Return(nil).Twice()
	f.uow.On("Commit", mock.Anything).Return(errors.New("commit failed")).Once()

	_, err := f.handler.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status: "Cancelada", RequesterID: 1, RequesterRole: "manager",
	}))

	require.EqualError(t, err, "commit failed")
	f.recorder.AssertNotCalled(t, "OrderTransitioned", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_BeginError(t *testing.T) {
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()

	h := commands.NewUpdateOrderCommandHandler(factory, warehouseID, nil, nil)
	_, err := h.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
		Status: "Pendiente", RequesterID: 1, RequesterRole: "manager",
	}))

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := commands.NewUpdateOrderCommandHandler(factory, warehouseID, nil, nil)

	_, err := h.Handle(t.Context(), commands.UpdateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrUpdateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

// memoryStock is an in-memory InventoryRepository for multi-step scenarios.
type memoryStock struct {
	records map[[2]int64]*inventory.Record
	nextID  int64
}

func newMemoryStock() *memoryStock {
	return &memoryStock{records: map[[2]int64]*inventory.Record{}, nextID: 1}
}

func (s *memoryStock) put(t *testing.T, productID, storeID int64, qty int) {
	t.Helper()
	s.records[[2]int64{storeID, productID}] = record(t, s.nextID, productID, storeID, qty)
	s.nextID++
}

func (s *memoryStock) quantity(productID, storeID int64) int {
	r, ok := s.records[[2]int64{storeID, productID}]
	if !ok {
		return -1
	}
	return r.Quantity().Int()
}

func (s *memoryStock) Get(_ context.Context, inventoryID int64) (*inventory.Record, error) {
	for _, r := range s.records {
		if r.ID() == inventoryID {
			return inventory.RestoreRecord(r.ID(), r.ProductID(), r.StoreID(), r.Quantity().Int())
		}
	}
	return nil, errs.NewObjectNotFoundError("inventoryID", inventoryID)
}

func (s *memoryStock) GetByStoreAndProduct(_ context.Context, storeID, productID int64) (*inventory.Record, error) {
	r, ok := s.records[[2]int64{storeID, productID}]
	if !ok {
		return nil, nil
	}
	return inventory.RestoreRecord(r.ID(), r.ProductID(), r.StoreID(), r.Quantity().Int())
}

func (s *memoryStock) Edit(_ context.Context, inventoryID int64, quantity int, _ int64) error {
	for key, r := range s.records {
		if r.ID() == inventoryID {
			updated, err := inventory.RestoreRecord(r.ID(), r.ProductID(), r.StoreID(), quantity)
			if err != nil {
				return err
			}
			s.records[key] = updated
			return nil
		}
	}
	return errs.NewObjectNotFoundError("inventoryID", inventoryID)
}

func (s *memoryStock) AssignToStore(_ context.Context, productID, storeID int64, quantity int, _ int64) (int64, error) {
	id := s.nextID
	r, err := inventory.RestoreRecord(id, productID, storeID, quantity)
	if err != nil {
		return 0, err
	}
	s.records[[2]int64{storeID, productID}] = r
	s.nextID++
	return id, nil
}

func TestUpdateOrderCommandHandler_ApproveThenCancelRestoresStock(t *testing.T) {
	stock := newMemoryStock()
	stock.put(t, 1, warehouseID, 12)
	stock.put(t, 2, warehouseID, 4)

	o := storedOrder(t, storedState{
		status: order.Pending,
		items:  []order.Item{item(t, 10, 1, 5, "50.00"), item(t, 11, 2, 4, "40.00")},
	})

	run := func(status string) {
		orders := new(MockOrderRepository)
		orders.On("LoadJoinedState", mock.Anything, int64(1)).Return(o, nil).Once()
		orders.On("PersistOrderAndHistory", mock.Anything, o, int64(8), mock.Anything).Return(int64(1), nil).Once()
		log := new(MockAuditLog)
		log.On("Log", mock.Anything, mock.Anything).Return(nil)
		uow := new(MockUoW)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		uow.On("OrderRepository").Return(orders)
		uow.On("InventoryRepository").Return(stock)
		uow.On("AuditLog").Return(log)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewUpdateOrderCommandHandler(factory, warehouseID, nil, zaptest.NewLogger(t))
		_, err := h.Handle(t.Context(), updateCmd(t, commands.UpdateOrderInput{
			Status: status, RequesterID: 8, RequesterRole: "warehouse_manager",
		}))
		require.NoError(t, err)
	}

	run("Aprobada")
	assert.Equal(t, 7, stock.quantity(1, warehouseID))
	assert.Equal(t, 0, stock.quantity(2, warehouseID))

	run("Cancelada")
	assert.Equal(t, 12, stock.quantity(1, warehouseID))
	assert.Equal(t, 4, stock.quantity(2, warehouseID))
}
