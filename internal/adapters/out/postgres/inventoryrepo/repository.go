package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/adapters/out/postgres/pgerr"
	"backoffice/internal/core/domain/model/audit"
	"backoffice/internal/core/domain/model/inventory"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
// Every write is recorded in the audit log on the same connection.
type GormInventoryRepository struct {
	db  *gorm.DB
	log ports.AuditLog
}

func NewGormInventoryRepository(db *gorm.DB, log ports.AuditLog) *GormInventoryRepository {
	return &GormInventoryRepository{db: db, log: log}
}

func (r *GormInventoryRepository) locked(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

// Get loads and locks a record by id.
func (r *GormInventoryRepository) Get(ctx context.Context, inventoryID int64) (*inventory.Record, error) {
	var dto InventoryDTO
	if err := r.locked(ctx).Where("inventory_id = ?", inventoryID).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventoryID", inventoryID)
		}
		return nil, pgerr.Wrap("load inventory", err)
	}
	return toDomain(dto)
}

// GetByStoreAndProduct loads and locks the record of a product at a location.
// It returns (nil, nil) when there is none.
func (r *GormInventoryRepository) GetByStoreAndProduct(
	ctx context.Context,
	storeID, productID int64,
) (*inventory.Record, error) {
	var dto InventoryDTO
	err := r.locked(ctx).Where("store_id = ? AND product_id = ?", storeID, productID).Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pgerr.Wrap("load inventory", err)
	}
	return toDomain(dto)
}

// Edit sets the quantity of a record.
func (r *GormInventoryRepository) Edit(ctx context.Context, inventoryID int64, quantity int, actorID int64) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}

	result := r.db.WithContext(ctx).
		Model(&InventoryDTO{}).
		Where("inventory_id = ?", inventoryID).
		Update("quantity", quantity)
	if result.Error != nil {
		return pgerr.Wrap("update inventory", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("inventoryID", inventoryID)
	}

	return r.audit(ctx, actorID, inventoryID, audit.ActionUpdate, fmt.Sprintf("quantity: %d", quantity))
}

// AssignToStore creates the record of a product at a location.
func (r *GormInventoryRepository) AssignToStore(
	ctx context.Context,
	productID, storeID int64,
	quantity int,
	actorID int64,
) (int64, error) {
	if quantity < 0 {
		return 0, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}

	dto := InventoryDTO{ProductID: productID, StoreID: storeID, Quantity: quantity}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return 0, pgerr.Wrap("insert inventory", err)
	}

	comment := fmt.Sprintf("assigned product %d to store %d with quantity %d", productID, storeID, quantity)
	if err := r.audit(ctx, actorID, dto.ID, audit.ActionInsert, comment); err != nil {
		return 0, err
	}
	return dto.ID, nil
}

func (r *GormInventoryRepository) audit(
	ctx context.Context,
	actorID, inventoryID int64,
	action audit.Action,
	comment string,
) error {
	entry, err := audit.NewEntry(actorID, audit.TableInventory, inventoryID, action, comment)
	if err != nil {
		return err
	}
	return r.log.Log(ctx, entry)
}
