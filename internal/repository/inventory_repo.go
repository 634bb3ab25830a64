package repository

import (
	"context"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository is the data access contract for per-branch stock rows.
// AdjustStockTx is the stock ledger primitive: it runs inside the caller's
// transaction and enforces the non-negative invariant at the database.
type InventoryRepository interface {
	Get(ctx context.Context, branchID, productID uuid.UUID) (*model.BranchInventory, error)
	Upsert(ctx context.Context, row *model.BranchInventory) error
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.BranchInventory, error)
	LowStock(ctx context.Context, branchID uuid.UUID) ([]model.BranchInventory, error)

	// Used inside transactions — callers must pass the tx instance
	AdjustStockTx(tx *gorm.DB, branchID, productID uuid.UUID, delta int) error
	ListByProductTx(tx *gorm.DB, productID uuid.UUID) ([]model.BranchInventory, error)
	DeactivateByProductTx(tx *gorm.DB, productID uuid.UUID) error
	DeleteByProductTx(tx *gorm.DB, productID uuid.UUID) error
	CreateTx(tx *gorm.DB, row *model.BranchInventory) error
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Get(ctx context.Context, branchID, productID uuid.UUID) (*model.BranchInventory, error) {
	var row model.BranchInventory
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND product_id = ?", branchID, productID).
		First(&row).Error
	return &row, err
}

func (r *inventoryRepo) Upsert(ctx context.Context, row *model.BranchInventory) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *inventoryRepo) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]model.BranchInventory, error) {
	var rows []model.BranchInventory
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("branch_id = ? AND is_active = true", branchID).
		Find(&rows).Error
	return rows, err
}

func (r *inventoryRepo) LowStock(ctx context.Context, branchID uuid.UUID) ([]model.BranchInventory, error) {
	var rows []model.BranchInventory
	err := r.db.WithContext(ctx).
		Preload("Product").
		Joins("JOIN products ON products.id = branch_inventory.product_id").
		Where("branch_inventory.branch_id = ? AND branch_inventory.is_active = true", branchID).
		Where("branch_inventory.stock <= products.critical").
		Find(&rows).Error
	return rows, err
}

// AdjustStockTx applies stock += delta as a single conditional UPDATE. The
// WHERE guard makes the database reject a decrement that would go negative:
// zero rows affected means insufficient stock (or an inactive row) and the
// caller must roll back the whole transaction. The row lock the UPDATE takes
// serializes concurrent sales of the same (branch, product).
func (r *inventoryRepo) AdjustStockTx(tx *gorm.DB, branchID, productID uuid.UUID, delta int) error {
	res := tx.Model(&model.BranchInventory{}).
		Where("branch_id = ? AND product_id = ? AND is_active = true AND stock + ? >= 0",
			branchID, productID, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.ErrInsufficientStock
	}
	return nil
}

func (r *inventoryRepo) ListByProductTx(tx *gorm.DB, productID uuid.UUID) ([]model.BranchInventory, error) {
	var rows []model.BranchInventory
	err := tx.Where("product_id = ?", productID).Find(&rows).Error
	return rows, err
}

func (r *inventoryRepo) DeactivateByProductTx(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Model(&model.BranchInventory{}).
		Where("product_id = ?", productID).
		Update("is_active", false).Error
}

func (r *inventoryRepo) DeleteByProductTx(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Where("product_id = ?", productID).Delete(&model.BranchInventory{}).Error
}

func (r *inventoryRepo) CreateTx(tx *gorm.DB, row *model.BranchInventory) error {
	return tx.Create(row).Error
}
