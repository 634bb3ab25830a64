package repository

import (
	"context"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	FindPharmacistSession(ctx context.Context, id uuid.UUID) (*model.PharmacistSession, error)
	FindSalesSession(ctx context.Context, id uuid.UUID) (*model.SalesSession, error)
	// FindOpenByUser returns the pharmacist's session whose SalesSession is
	// still open (end_time IS NULL), or gorm.ErrRecordNotFound.
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*model.PharmacistSession, *model.SalesSession, error)
	CountSales(ctx context.Context, pharmacistSessionID uuid.UUID) (int64, error)
	SumSales(ctx context.Context, pharmacistSessionID uuid.UUID) (decimal.Decimal, error)
	DB() *gorm.DB

	// Used inside transactions — callers must pass the tx instance
	// LockUserTx takes the user's row lock; concurrent session opens for the
	// same user serialize behind it.
	LockUserTx(tx *gorm.DB, userID uuid.UUID) error
	FindOpenByUserTx(tx *gorm.DB, userID uuid.UUID) (*model.PharmacistSession, *model.SalesSession, error)
	CreateSalesSessionTx(tx *gorm.DB, s *model.SalesSession) error
	CreatePharmacistSessionTx(tx *gorm.DB, p *model.PharmacistSession) error
	SumSalesTx(tx *gorm.DB, pharmacistSessionID uuid.UUID) (decimal.Decimal, error)
	CloseSalesSessionTx(tx *gorm.DB, s *model.SalesSession) error
	CreateReconciliationTx(tx *gorm.DB, r *model.CashReconciliation) error
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) DB() *gorm.DB { return r.db }

func (r *sessionRepo) FindPharmacistSession(ctx context.Context, id uuid.UUID) (*model.PharmacistSession, error) {
	var ps model.PharmacistSession
	err := r.db.WithContext(ctx).First(&ps, id).Error
	return &ps, err
}

func (r *sessionRepo) FindSalesSession(ctx context.Context, id uuid.UUID) (*model.SalesSession, error) {
	var ss model.SalesSession
	err := r.db.WithContext(ctx).First(&ss, id).Error
	return &ss, err
}

func (r *sessionRepo) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*model.PharmacistSession, *model.SalesSession, error) {
	return findOpenByUser(r.db.WithContext(ctx), userID)
}

func (r *sessionRepo) CountSales(ctx context.Context, pharmacistSessionID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("pharmacist_session_id = ? AND status = 'completed'", pharmacistSessionID).
		Count(&n).Error
	return n, err
}

func (r *sessionRepo) SumSales(ctx context.Context, pharmacistSessionID uuid.UUID) (decimal.Decimal, error) {
	return sumSales(r.db.WithContext(ctx), pharmacistSessionID)
}

func (r *sessionRepo) LockUserTx(tx *gorm.DB, userID uuid.UUID) error {
	var u model.User
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, userID).Error
}

func (r *sessionRepo) FindOpenByUserTx(tx *gorm.DB, userID uuid.UUID) (*model.PharmacistSession, *model.SalesSession, error) {
	return findOpenByUser(tx, userID)
}

func (r *sessionRepo) CreateSalesSessionTx(tx *gorm.DB, s *model.SalesSession) error {
	return tx.Create(s).Error
}

func (r *sessionRepo) CreatePharmacistSessionTx(tx *gorm.DB, p *model.PharmacistSession) error {
	return tx.Create(p).Error
}

func (r *sessionRepo) SumSalesTx(tx *gorm.DB, pharmacistSessionID uuid.UUID) (decimal.Decimal, error) {
	return sumSales(tx, pharmacistSessionID)
}

// CloseSalesSessionTx stamps end_time and total_sales as a single
// conditional UPDATE. The end_time IS NULL guard makes the database reject a
// second close: zero rows affected means another request already closed the
// session, and the caller's whole transaction must roll back.
func (r *sessionRepo) CloseSalesSessionTx(tx *gorm.DB, s *model.SalesSession) error {
	res := tx.Model(&model.SalesSession{}).
		Where("id = ? AND end_time IS NULL", s.ID).
		Updates(map[string]interface{}{
			"end_time":    s.EndTime,
			"total_sales": s.TotalSales,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apierror.ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepo) CreateReconciliationTx(tx *gorm.DB, rec *model.CashReconciliation) error {
	return tx.Create(rec).Error
}

func findOpenByUser(q *gorm.DB, userID uuid.UUID) (*model.PharmacistSession, *model.SalesSession, error) {
	var ps model.PharmacistSession
	err := q.
		Joins("JOIN sales_sessions ON sales_sessions.id = pharmacist_sessions.sales_session_id").
		Where("pharmacist_sessions.user_id = ? AND sales_sessions.end_time IS NULL", userID).
		Order("pharmacist_sessions.created_at DESC").
		First(&ps).Error
	if err != nil {
		return nil, nil, err
	}
	var ss model.SalesSession
	if err := q.First(&ss, ps.SalesSessionID).Error; err != nil {
		return nil, nil, err
	}
	return &ps, &ss, nil
}

// sumSales recomputes the session total from the sale rows themselves —
// voided sales excluded, cached running totals never trusted.
func sumSales(q *gorm.DB, pharmacistSessionID uuid.UUID) (decimal.Decimal, error) {
	var raw *string
	err := q.Model(&model.Sale{}).
		Select("SUM(total_amount)").
		Where("pharmacist_session_id = ? AND status = 'completed'", pharmacistSessionID).
		Scan(&raw).Error
	if err != nil || raw == nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(*raw)
}
