package repository

import (
	"context"

	"j5pharmacy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, p *model.Prescription) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Prescription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// ExpireOverdue flips ACTIVE prescriptions past their expiry to EXPIRED
	// and returns the number of rows affected.
	ExpireOverdue(ctx context.Context) (int64, error)
}

type prescriptionRepo struct{ db *gorm.DB }

func NewPrescriptionRepository(db *gorm.DB) PrescriptionRepository {
	return &prescriptionRepo{db: db}
}

func (r *prescriptionRepo) Create(ctx context.Context, p *model.Prescription) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *prescriptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	var p model.Prescription
	err := r.db.WithContext(ctx).Preload("Items.Product").First(&p, id).Error
	return &p, err
}

func (r *prescriptionRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Prescription, error) {
	var list []model.Prescription
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *prescriptionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Prescription{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *prescriptionRepo) ExpireOverdue(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Prescription{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < now()", model.PrescriptionActive).
		Update("status", model.PrescriptionExpired)
	return res.RowsAffected, res.Error
}
