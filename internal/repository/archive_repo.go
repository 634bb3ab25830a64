package repository

import (
	"context"

	"j5pharmacy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArchiveRepository owns the archive twin tables. Snapshot rows are written
// and deleted only inside the archive/restore transactions, so most of the
// surface is Tx-scoped.
type ArchiveRepository interface {
	ListProducts(ctx context.Context) ([]model.ProductArchive, error)
	ListCategories(ctx context.Context) ([]model.CategoryArchive, error)
	ListBranches(ctx context.Context) ([]model.BranchArchive, error)
	ListCustomers(ctx context.Context) ([]model.CustomerArchive, error)

	// Used inside transactions — callers must pass the tx instance
	SaveTx(tx *gorm.DB, row interface{}) error
	FindProductTx(tx *gorm.DB, id uuid.UUID) (*model.ProductArchive, error)
	FindCategoryTx(tx *gorm.DB, id uuid.UUID) (*model.CategoryArchive, error)
	FindBranchTx(tx *gorm.DB, id uuid.UUID) (*model.BranchArchive, error)
	FindCustomerTx(tx *gorm.DB, id uuid.UUID) (*model.CustomerArchive, error)
	ListInventoryByProductTx(tx *gorm.DB, productID uuid.UUID) ([]model.BranchInventoryArchive, error)
	DeleteProductTx(tx *gorm.DB, id uuid.UUID) error
	DeleteInventoryByProductTx(tx *gorm.DB, productID uuid.UUID) error
	DeleteCategoryTx(tx *gorm.DB, id uuid.UUID) error
	DeleteBranchTx(tx *gorm.DB, id uuid.UUID) error
	DeleteCustomerTx(tx *gorm.DB, id uuid.UUID) error
}

type archiveRepo struct{ db *gorm.DB }

func NewArchiveRepository(db *gorm.DB) ArchiveRepository { return &archiveRepo{db: db} }

func (r *archiveRepo) ListProducts(ctx context.Context) ([]model.ProductArchive, error) {
	var list []model.ProductArchive
	err := r.db.WithContext(ctx).Order("archived_at DESC").Find(&list).Error
	return list, err
}

func (r *archiveRepo) ListCategories(ctx context.Context) ([]model.CategoryArchive, error) {
	var list []model.CategoryArchive
	err := r.db.WithContext(ctx).Order("archived_at DESC").Find(&list).Error
	return list, err
}

func (r *archiveRepo) ListBranches(ctx context.Context) ([]model.BranchArchive, error) {
	var list []model.BranchArchive
	err := r.db.WithContext(ctx).Order("archived_at DESC").Find(&list).Error
	return list, err
}

func (r *archiveRepo) ListCustomers(ctx context.Context) ([]model.CustomerArchive, error) {
	var list []model.CustomerArchive
	err := r.db.WithContext(ctx).Order("archived_at DESC").Find(&list).Error
	return list, err
}

func (r *archiveRepo) SaveTx(tx *gorm.DB, row interface{}) error {
	return tx.Create(row).Error
}

func (r *archiveRepo) FindProductTx(tx *gorm.DB, id uuid.UUID) (*model.ProductArchive, error) {
	var row model.ProductArchive
	err := tx.First(&row, id).Error
	return &row, err
}

func (r *archiveRepo) FindCategoryTx(tx *gorm.DB, id uuid.UUID) (*model.CategoryArchive, error) {
	var row model.CategoryArchive
	err := tx.First(&row, id).Error
	return &row, err
}

func (r *archiveRepo) FindBranchTx(tx *gorm.DB, id uuid.UUID) (*model.BranchArchive, error) {
	var row model.BranchArchive
	err := tx.First(&row, id).Error
	return &row, err
}

func (r *archiveRepo) FindCustomerTx(tx *gorm.DB, id uuid.UUID) (*model.CustomerArchive, error) {
	var row model.CustomerArchive
	err := tx.First(&row, id).Error
	return &row, err
}

func (r *archiveRepo) ListInventoryByProductTx(tx *gorm.DB, productID uuid.UUID) ([]model.BranchInventoryArchive, error) {
	var rows []model.BranchInventoryArchive
	err := tx.Where("product_id = ?", productID).Find(&rows).Error
	return rows, err
}

func (r *archiveRepo) DeleteProductTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.ProductArchive{}, id).Error
}

func (r *archiveRepo) DeleteInventoryByProductTx(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Where("product_id = ?", productID).Delete(&model.BranchInventoryArchive{}).Error
}

func (r *archiveRepo) DeleteCategoryTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.CategoryArchive{}, id).Error
}

func (r *archiveRepo) DeleteBranchTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.BranchArchive{}, id).Error
}

func (r *archiveRepo) DeleteCustomerTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.CustomerArchive{}, id).Error
}
