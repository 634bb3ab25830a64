package repository

import (
	"context"

	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, s *model.Sale) error
	NextInvoiceSeq(tx *gorm.DB) (int64, error)
	UpdatePointsEarnedTx(tx *gorm.DB, id uuid.UUID, points int) error
	UpdatePointsRedeemedTx(tx *gorm.DB, id uuid.UUID, points int) error
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items.Product").Preload("Customer").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	p := (&Predicates{}).
		WhereIf(filter.BranchID != "", "branch_id = ?", filter.BranchID).
		WhereIf(filter.Status != "" && filter.Status != "all", "status = ?", filter.Status).
		WhereIf(filter.DateFrom != "", "DATE(created_at) >= ?", filter.DateFrom).
		WhereIf(filter.DateTo != "", "DATE(created_at) <= ?", filter.DateTo).
		WhereIf(filter.SessionID != "", "pharmacist_session_id = ?", filter.SessionID)

	q := p.Apply(r.db.WithContext(ctx).Model(&model.Sale{}))

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

// NextInvoiceSeq draws from a PostgreSQL sequence so concurrent sales never
// collide on invoice numbers.
func (r *saleRepo) NextInvoiceSeq(tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.Raw("SELECT nextval('sales_invoice_seq')").Scan(&num).Error
	return num, err
}

func (r *saleRepo) UpdatePointsEarnedTx(tx *gorm.DB, id uuid.UUID, points int) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("points_earned", points).Error
}

func (r *saleRepo) UpdatePointsRedeemedTx(tx *gorm.DB, id uuid.UUID, points int) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("points_redeemed", points).Error
}

func (r *saleRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("status", status).Error
}
