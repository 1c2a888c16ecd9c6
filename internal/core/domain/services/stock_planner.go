package services

import (
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
)

// MovementKind is what happens to an inventory record.
type MovementKind int

const (
	// Deduct takes warehouse stock when an order is approved.
	Deduct MovementKind = iota + 1
	// Reimburse returns warehouse stock when an approved order is cancelled.
	Reimburse
	// Receive adds delivered goods to the order's location.
	Receive
)

func (k MovementKind) String() string {
	switch k {
	case Deduct:
		return "deduct"
	case Reimburse:
		return "reimburse"
	case Receive:
		return "receive"
	}
	return fmt.Sprintf("MovementKind(%d)", int(k))
}

// StockMovement is one inventory change for one order line.
type StockMovement struct {
	Kind        MovementKind
	OrderItemID int64
	ProductID   int64
	StoreID     int64
	Quantity    kernel.Quantity
}

// StockPlanner maps status edges to inventory movements.
//
// Business rules:
//   - any status → Aprobada: deduct every warehouse line from the warehouse
//   - Aprobada → Cancelada: put warehouse lines back where they were taken from
//   - Aprobada or Confirmada → Entregada: receive every line at the order's location
//   - any other edge, self-loops included, moves nothing
//
// Example usage:
//
//	planner := services.NewStockPlanner(warehouseID)
//	for _, m := range planner.Plan(o, changes.From, changes.To) {
//	    // lock the record for (m.StoreID, m.ProductID) and apply m
//	}
type StockPlanner struct {
	warehouseID int64
}

// NewStockPlanner creates a planner drawing approved stock from warehouseID.
func NewStockPlanner(warehouseID int64) StockPlanner {
	return StockPlanner{warehouseID: warehouseID}
}

// WarehouseID is the location approved stock is taken from.
func (p StockPlanner) WarehouseID() int64 {
	return p.warehouseID
}

// Plan lists the movements for moving o from one status to another, using
// the order lines as they are after the update.
func (p StockPlanner) Plan(o *order.Order, from, to order.Status) []StockMovement {
	if o == nil || from == to {
		return nil
	}

	var kind MovementKind
	switch {
	case to == order.Approved:
		kind = Deduct
	case from == order.Approved && to == order.Cancelled:
		kind = Reimburse
	case (from == order.Approved || from == order.Confirmed) && to == order.Delivered:
		kind = Receive
	default:
		return nil
	}

	var movements []StockMovement
	for _, it := range o.Items() {
		storeID := p.warehouseID
		if kind == Receive {
			storeID = o.StoreID()
		} else if !it.IsFromWarehouse() {
			continue
		}

		movements = append(movements, StockMovement{
			Kind:        kind,
			OrderItemID: it.ID(),
			ProductID:   it.ProductID(),
			StoreID:     storeID,
			Quantity:    it.Quantity(),
		})
	}
	return movements
}
