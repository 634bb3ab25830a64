package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/model"
	"j5pharmacy/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PrescriptionService interface {
	Create(ctx context.Context, req dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error)
	GetImage(ctx context.Context, id uuid.UUID) ([]byte, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.PrescriptionResponse, error)
	// ExpireOverdue is invoked lazily from the listing endpoints so stale
	// ACTIVE rows never reach a client.
	ExpireOverdue(ctx context.Context) error
}

type prescriptionService struct {
	repo      repository.PrescriptionRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

func NewPrescriptionService(repo repository.PrescriptionRepository, customers repository.CustomerRepository, products repository.ProductRepository) PrescriptionService {
	return &prescriptionService{repo: repo, customers: customers, products: products}
}

func (s *prescriptionService) Create(ctx context.Context, req dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer not found", apierror.ErrNotFound)
		}
		return nil, err
	}

	p := &model.Prescription{
		CustomerID: customerID,
		DoctorName: req.DoctorName,
		Image:      req.Image,
		Status:     model.PrescriptionActive,
	}
	if req.ExpiresAt != nil {
		t, err := time.Parse("2006-01-02", *req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: expires_at must be YYYY-MM-DD", apierror.ErrPrecondition)
		}
		p.ExpiresAt = &t
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		if _, err := s.products.FindByID(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %s not found", apierror.ErrNotFound, item.ProductID)
			}
			return nil, err
		}
		p.Items = append(p.Items, model.PrescriptionItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Dosage:    item.Dosage,
		})
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return prescriptionToResponse(p), nil
}

func (s *prescriptionService) Get(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return prescriptionToResponse(p), nil
}

func (s *prescriptionService) GetImage(ctx context.Context, id uuid.UUID) ([]byte, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	if len(p.Image) == 0 {
		return nil, fmt.Errorf("%w: prescription has no image", apierror.ErrNotFound)
	}
	return p.Image, nil
}

func (s *prescriptionService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.PrescriptionResponse, error) {
	if err := s.ExpireOverdue(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to expire overdue prescriptions")
	}
	list, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PrescriptionResponse, 0, len(list))
	for i := range list {
		out = append(out, *prescriptionToResponse(&list[i]))
	}
	return out, nil
}

func (s *prescriptionService) ExpireOverdue(ctx context.Context) error {
	n, err := s.repo.ExpireOverdue(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Int64("count", n).Msg("prescriptions expired")
	}
	return nil
}

func prescriptionToResponse(p *model.Prescription) *dto.PrescriptionResponse {
	resp := &dto.PrescriptionResponse{
		ID:         p.ID.String(),
		CustomerID: p.CustomerID.String(),
		DoctorName: p.DoctorName,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Items:      make([]dto.PrescriptionItemResponse, 0, len(p.Items)),
	}
	if p.ExpiresAt != nil {
		d := p.ExpiresAt.Format("2006-01-02")
		resp.ExpiresAt = &d
	}
	for _, item := range p.Items {
		ir := dto.PrescriptionItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Dosage:    item.Dosage,
		}
		if item.Product != nil {
			ir.ProductName = item.Product.Name
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
