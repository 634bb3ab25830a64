package repository

import (
	"context"
	"fmt"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StarPointsRepository owns the loyalty ledger. AdjustPointsTx is the points
// ledger primitive: every balance change appends exactly one immutable
// StarPointsTransaction row inside the caller's transaction.
type StarPointsRepository interface {
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*model.StarPoints, error)
	ListTransactions(ctx context.Context, starPointsID uuid.UUID, limit int) ([]model.StarPointsTransaction, error)

	// Used inside transactions — callers must pass the tx instance
	FindByCustomerTx(tx *gorm.DB, customerID uuid.UUID) (*model.StarPoints, error)
	CreateTx(tx *gorm.DB, sp *model.StarPoints) error
	AdjustPointsTx(tx *gorm.DB, starPointsID uuid.UUID, delta int, kind string, refSaleID *uuid.UUID) error
}

type starPointsRepo struct{ db *gorm.DB }

func NewStarPointsRepository(db *gorm.DB) StarPointsRepository { return &starPointsRepo{db: db} }

func (r *starPointsRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*model.StarPoints, error) {
	var sp model.StarPoints
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&sp).Error
	return &sp, err
}

func (r *starPointsRepo) ListTransactions(ctx context.Context, starPointsID uuid.UUID, limit int) ([]model.StarPointsTransaction, error) {
	var entries []model.StarPointsTransaction
	err := r.db.WithContext(ctx).
		Where("star_points_id = ?", starPointsID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *starPointsRepo) FindByCustomerTx(tx *gorm.DB, customerID uuid.UUID) (*model.StarPoints, error) {
	var sp model.StarPoints
	err := tx.Where("customer_id = ?", customerID).First(&sp).Error
	return &sp, err
}

func (r *starPointsRepo) CreateTx(tx *gorm.DB, sp *model.StarPoints) error {
	return tx.Create(sp).Error
}

// AdjustPointsTx applies points_balance += delta with the matching earned or
// redeemed total, guarded so the balance can never go negative, then appends
// the ledger entry. kind must be model.PointsEarned (delta > 0) or
// model.PointsRedeemed (delta < 0).
func (r *starPointsRepo) AdjustPointsTx(tx *gorm.DB, starPointsID uuid.UUID, delta int, kind string, refSaleID *uuid.UUID) error {
	updates := map[string]interface{}{
		"points_balance": gorm.Expr("points_balance + ?", delta),
	}
	switch kind {
	case model.PointsEarned:
		updates["total_points_earned"] = gorm.Expr("total_points_earned + ?", delta)
	case model.PointsRedeemed:
		updates["total_points_redeemed"] = gorm.Expr("total_points_redeemed + ?", -delta)
	default:
		return fmt.Errorf("unknown points transaction type %q", kind)
	}

	res := tx.Model(&model.StarPoints{}).
		Where("id = ? AND points_balance + ? >= 0", starPointsID, delta).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.ErrInsufficientPoints
	}

	amount := delta
	if amount < 0 {
		amount = -amount
	}
	entry := &model.StarPointsTransaction{
		StarPointsID:    starPointsID,
		PointsAmount:    amount,
		TransactionType: kind,
		ReferenceSaleID: refSaleID,
	}
	return tx.Create(entry).Error
}
