package repository

import (
	"context"

	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines the data access contract for the medicine
// catalog. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	BarcodeExists(ctx context.Context, barcode string) (bool, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	// NextBarcodeSeq bumps and returns the category's barcode counter.
	NextBarcodeSeq(ctx context.Context, categoryID uuid.UUID) (int, error)
	DB() *gorm.DB

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	SetActiveTx(tx *gorm.DB, id uuid.UUID, active bool) error
	ReassignCategoryTx(tx *gorm.DB, fromCategoryID, toCategoryID uuid.UUID) (int64, error)
	CreateTx(tx *gorm.DB, p *model.Product) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	return &p, err
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("barcode = ? AND is_active = true", barcode).First(&p).Error
	return &p, err
}

func (r *productRepo) BarcodeExists(ctx context.Context, barcode string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("barcode = ?", barcode).Count(&n).Error
	return n > 0, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	p := (&Predicates{}).
		WhereIf(filter.Active != "all", "is_active = ?", filter.Active != "false").
		WhereIf(filter.Barcode != "", "barcode = ?", filter.Barcode).
		WhereIf(filter.Name != "", "name ILIKE ?", "%"+filter.Name+"%").
		WhereIf(filter.CategoryID != "", "category_id = ?", filter.CategoryID)

	q := p.Apply(r.db.WithContext(ctx).Model(&model.Product{}))

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Category").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ? AND is_active = true", categoryID).
		Count(&n).Error
	return n, err
}

// NextBarcodeSeq increments the per-category counter and returns the new
// value. The UPDATE ... RETURNING form keeps concurrent callers from drawing
// the same sequence number.
func (r *productRepo) NextBarcodeSeq(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var seq int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO category_barcode_counters (category_id, last_sequence, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (category_id) DO UPDATE
		SET last_sequence = category_barcode_counters.last_sequence + 1, updated_at = now()
		RETURNING last_sequence`, categoryID).Scan(&seq).Error
	return seq, err
}

// FindByIDTx row-locks the product so the archive snapshot cannot race a
// concurrent update.
func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *productRepo) SetActiveTx(tx *gorm.DB, id uuid.UUID, active bool) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).Update("is_active", active).Error
}

func (r *productRepo) ReassignCategoryTx(tx *gorm.DB, fromCategoryID, toCategoryID uuid.UUID) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("category_id = ?", fromCategoryID).
		Update("category_id", toCategoryID)
	return res.RowsAffected, res.Error
}

func (r *productRepo) CreateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Create(p).Error
}

func (r *productRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Product{}, id).Error
}
