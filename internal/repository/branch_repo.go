package repository

import (
	"context"

	"j5pharmacy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BranchRepository interface {
	Create(ctx context.Context, b *model.Branch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	FindByCode(ctx context.Context, code string) (*model.Branch, error)
	List(ctx context.Context, includeArchived bool) ([]model.Branch, error)
	Update(ctx context.Context, b *model.Branch) error
	// CountActiveUsers backs the archive precondition: a branch with active
	// staff assigned cannot be archived.
	CountActiveUsers(ctx context.Context, branchID uuid.UUID) (int64, error)
	DB() *gorm.DB

	// Used inside transactions — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Branch, error)
	CountActiveUsersTx(tx *gorm.DB, branchID uuid.UUID) (int64, error)
	ListActiveTx(tx *gorm.DB) ([]model.Branch, error)
	SetArchivedTx(tx *gorm.DB, id uuid.UUID, archived bool) error
	CreateTx(tx *gorm.DB, b *model.Branch) error
}

type branchRepo struct{ db *gorm.DB }

func NewBranchRepository(db *gorm.DB) BranchRepository { return &branchRepo{db: db} }

func (r *branchRepo) DB() *gorm.DB { return r.db }

func (r *branchRepo) Create(ctx context.Context, b *model.Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *branchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	var b model.Branch
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}

func (r *branchRepo) FindByCode(ctx context.Context, code string) (*model.Branch, error) {
	var b model.Branch
	err := r.db.WithContext(ctx).Where("branch_code = ?", code).First(&b).Error
	return &b, err
}

func (r *branchRepo) List(ctx context.Context, includeArchived bool) ([]model.Branch, error) {
	var list []model.Branch
	q := r.db.WithContext(ctx)
	if !includeArchived {
		q = q.Where("is_archived = false")
	}
	err := q.Order("branch_code ASC").Find(&list).Error
	return list, err
}

func (r *branchRepo) Update(ctx context.Context, b *model.Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *branchRepo) CountActiveUsers(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("branch_id = ? AND is_active = true", branchID).
		Count(&n).Error
	return n, err
}

// FindByIDTx row-locks the branch so the archive snapshot cannot race a
// concurrent update.
func (r *branchRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Branch, error) {
	var b model.Branch
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error
	return &b, err
}

func (r *branchRepo) CountActiveUsersTx(tx *gorm.DB, branchID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.User{}).
		Where("branch_id = ? AND is_active = true", branchID).
		Count(&n).Error
	return n, err
}

func (r *branchRepo) ListActiveTx(tx *gorm.DB) ([]model.Branch, error) {
	var list []model.Branch
	err := tx.Where("is_active = true AND is_archived = false").Find(&list).Error
	return list, err
}

func (r *branchRepo) SetArchivedTx(tx *gorm.DB, id uuid.UUID, archived bool) error {
	return tx.Model(&model.Branch{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_archived": archived, "is_active": !archived}).Error
}

func (r *branchRepo) CreateTx(tx *gorm.DB, b *model.Branch) error {
	return tx.Create(b).Error
}
