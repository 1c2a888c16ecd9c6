package commands

import (
	"context"
	"fmt"

	"backoffice/internal/core/domain/model/audit"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"go.uber.org/zap"
)

// TransitionRecorder is notified about every committed order update.
type TransitionRecorder interface {
	OrderTransitioned(from, to order.Status, r role.Role)
}

type noopRecorder struct{}

func (noopRecorder) OrderTransitioned(order.Status, order.Status, role.Role) {}

// UpdateOrderResult is returned after a successful commit.
type UpdateOrderResult struct {
	Success   bool
	OrderID   int64
	HistoryID int64
}

// UpdateOrderCommandHandler runs the order update engine: it loads the order
// under a row lock, applies the update in memory, moves inventory for the
// status edge and writes order, lines, history and audit rows in one
// transaction.
//
// Example:
//
//	handler := NewUpdateOrderCommandHandler(uowFactory, warehouseID, metrics, logger)
//	res, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInsufficientStock) {
//	    // nothing was written
//	}
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	planner    services.StockPlanner
	recorder   TransitionRecorder
	logger     *zap.Logger
}

// NewUpdateOrderCommandHandler creates the handler. Approved stock is taken
// from warehouseID. recorder and logger may be nil.
func NewUpdateOrderCommandHandler(
	uowFactory UoWFactory,
	warehouseID int64,
	recorder TransitionRecorder,
	logger *zap.Logger,
) UpdateOrderCommandHandler {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewStockPlanner(warehouseID),
		recorder:   recorder,
		logger:     logger.Named("update_order"),
	}
}

// Handle applies the command. Any error rolls the transaction back and is
// returned as is.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (UpdateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	res, from, err := h.update(ctx, uow, cmd)
	if err != nil {
		h.logger.Warn("order update rejected",
			zap.Int64("order_id", cmd.OrderID()),
			zap.Int64("requester_id", cmd.RequesterID()),
			zap.Stringer("requester_role", cmd.RequesterRole()),
			zap.Error(err),
		)
		return UpdateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateOrderResult{}, err
	}

	h.recorder.OrderTransitioned(from, cmd.Patch().Status, cmd.RequesterRole())
	h.logger.Info("order updated",
		zap.Int64("order_id", res.OrderID),
		zap.Int64("history_id", res.HistoryID),
		zap.Stringer("from", from),
		zap.Stringer("to", cmd.Patch().Status),
		zap.Int64("requester_id", cmd.RequesterID()),
	)
	return res, nil
}

func (h UpdateOrderCommandHandler) update(
	ctx context.Context,
	uow UoW,
	cmd UpdateOrderCommand,
) (UpdateOrderResult, order.Status, error) {
	orders := uow.OrderRepository()
	o, err := orders.LoadJoinedState(ctx, cmd.OrderID())
	if err != nil {
		return UpdateOrderResult{}, order.Unknown, err
	}
	if o == nil {
		return UpdateOrderResult{}, order.Unknown, errs.NewObjectNotFoundError("orderID", cmd.OrderID())
	}

	changes, err := o.Update(cmd.RequesterID(), cmd.RequesterRole(), cmd.Patch())
	if err != nil {
		return UpdateOrderResult{}, changes.From, err
	}

	actorID := cmd.RequesterID()
	var entries []audit.Entry

	for _, ic := range changes.Items {
		if err = orders.UpdateItem(ctx, o.ID(), ic.Item); err != nil {
			return UpdateOrderResult{}, changes.From, err
		}
		entries = append(entries, audit.Entry{
			Table: audit.TableOrderItems, RecordID: ic.Item.ID(), Action: audit.ActionUpdate, Comment: ic.Description(),
		})
	}

	stock := uow.InventoryRepository()
	for _, m := range h.planner.Plan(o, changes.From, changes.To) {
		if err = moveStock(ctx, stock, m, actorID); err != nil {
			return UpdateOrderResult{}, changes.From, err
		}
	}

	comment := changes.HistoryComment()
	historyID, err := orders.PersistOrderAndHistory(ctx, o, actorID, comment)
	if err != nil {
		return UpdateOrderResult{}, changes.From, err
	}
	entries = append(entries,
		audit.Entry{Table: audit.TableOrders, RecordID: o.ID(), Action: audit.ActionUpdate, Comment: changes.OrderLogComment()},
		audit.Entry{Table: audit.TableOrderHistory, RecordID: historyID, Action: audit.ActionInsert, Comment: comment},
	)

	log := uow.AuditLog()
	for _, e := range entries {
		entry, err := audit.NewEntry(actorID, e.Table, e.RecordID, e.Action, e.Comment)
		if err != nil {
			return UpdateOrderResult{}, changes.From, err
		}
		if err = log.Log(ctx, entry); err != nil {
			return UpdateOrderResult{}, changes.From, err
		}
	}

	return UpdateOrderResult{Success: true, OrderID: o.ID(), HistoryID: historyID}, changes.From, nil
}

// moveStock applies one movement to the locked inventory record.
func moveStock(ctx context.Context, stock ports.InventoryRepository, m services.StockMovement, actorID int64) error {
	rec, err := stock.GetByStoreAndProduct(ctx, m.StoreID, m.ProductID)
	if err != nil {
		return err
	}

	switch m.Kind {
	case services.Deduct:
		if rec == nil {
			return errs.NewInsufficientStockError(m.ProductID, m.StoreID, 0, m.Quantity.Int())
		}
		if err = rec.Deduct(m.Quantity); err != nil {
			return err
		}
	case services.Reimburse, services.Receive:
		if rec == nil {
			_, err = stock.AssignToStore(ctx, m.ProductID, m.StoreID, m.Quantity.Int(), actorID)
			return err
		}
		rec.Add(m.Quantity)
	default:
		return fmt.Errorf("unknown stock movement %s", m.Kind)
	}

	return stock.Edit(ctx, rec.ID(), rec.Quantity().Int(), actorID)
}
