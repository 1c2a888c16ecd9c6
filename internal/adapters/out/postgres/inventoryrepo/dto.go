// Package inventoryrepo persists inventory records with GORM.
package inventoryrepo

import "backoffice/internal/core/domain/model/inventory"

// InventoryDTO maps the inventory table.
type InventoryDTO struct {
	ID        int64 `gorm:"column:inventory_id;primaryKey"`
	ProductID int64 `gorm:"column:product_id"`
	StoreID   int64 `gorm:"column:store_id"`
	Quantity  int   `gorm:"column:quantity"`
}

func (InventoryDTO) TableName() string {
	return "inventory"
}

func toDomain(dto InventoryDTO) (*inventory.Record, error) {
	return inventory.RestoreRecord(dto.ID, dto.ProductID, dto.StoreID, dto.Quantity)
}
