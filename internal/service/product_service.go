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
	"gorm.io/gorm"
)

// ProductService manages the medicine catalog and per-branch stock levels.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	SetStock(ctx context.Context, req dto.SetStockRequest) (*dto.BranchStockResponse, error)
	BranchStock(ctx context.Context, branchID uuid.UUID) ([]dto.BranchStockResponse, error)
	LowStock(ctx context.Context, branchID uuid.UUID) ([]dto.BranchStockResponse, error)
}

// barcodeProbeLimit bounds the collision re-probe loop when manually entered
// barcodes have squatted on counter values.
const barcodeProbeLimit = 100

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	inventory  repository.InventoryRepository
}

func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository, inventory repository.InventoryRepository) ProductService {
	return &productService{repo: repo, categories: categories, inventory: inventory}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category_id: %w", err)
	}
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category not found", apierror.ErrNotFound)
		}
		return nil, err
	}

	var barcode string
	if req.Barcode != nil && *req.Barcode != "" {
		exists, err := s.repo.BarcodeExists(ctx, *req.Barcode)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: barcode %s already in use", apierror.ErrConflict, *req.Barcode)
		}
		barcode = *req.Barcode
	} else {
		barcode, err = s.generateBarcode(ctx, category)
		if err != nil {
			return nil, err
		}
	}

	p := &model.Product{
		Barcode:     barcode,
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		CategoryID:  &category.ID,
		Price:       req.Price,
		Critical:    req.Critical,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Category = category
	return productToResponse(p), nil
}

// generateBarcode draws the next counter value for the category and probes
// the catalog for collisions before committing to it. Counter values are
// never reused, so a skipped value is simply burned.
func (s *productService) generateBarcode(ctx context.Context, category *model.Category) (string, error) {
	for i := 0; i < barcodeProbeLimit; i++ {
		seq, err := s.repo.NextBarcodeSeq(ctx, category.ID)
		if err != nil {
			return "", err
		}
		candidate := fmt.Sprintf("%s%06d", category.Prefix, seq)
		exists, err := s.repo.BarcodeExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: barcode space exhausted for category %s", apierror.ErrConflict, category.Name)
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Brand != nil {
		p.Brand = req.Brand
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		category, err := s.categories.FindByID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category not found", apierror.ErrNotFound)
			}
			return nil, err
		}
		p.CategoryID = &category.ID
		p.Category = category
	}
	if req.Price != nil {
		if req.Price.Sign() <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", apierror.ErrPrecondition)
		}
		p.Price = *req.Price
	}
	if req.Critical != nil {
		if *req.Critical < 0 {
			return nil, fmt.Errorf("%w: critical threshold cannot be negative", apierror.ErrPrecondition)
		}
		p.Critical = *req.Critical
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// SetStock overwrites the absolute stock level for one (branch, product)
// row. Relative adjustments go through the sale path instead.
func (s *productService) SetStock(ctx context.Context, req dto.SetStockRequest) (*dto.BranchStockResponse, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branch_id: %w", err)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", apierror.ErrNotFound)
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, fmt.Errorf("%w: product is archived", apierror.ErrPrecondition)
	}

	row := &model.BranchInventory{
		BranchID:  branchID,
		ProductID: productID,
		Stock:     req.Stock,
		IsActive:  true,
	}
	if req.ExpiryDate != nil {
		t, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", apierror.ErrPrecondition)
		}
		row.ExpiryDate = &t
	}
	if err := s.inventory.Upsert(ctx, row); err != nil {
		return nil, err
	}
	return stockToResponse(row, p), nil
}

func (s *productService) BranchStock(ctx context.Context, branchID uuid.UUID) ([]dto.BranchStockResponse, error) {
	rows, err := s.inventory.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return stockRowsToResponse(rows), nil
}

func (s *productService) LowStock(ctx context.Context, branchID uuid.UUID) ([]dto.BranchStockResponse, error) {
	rows, err := s.inventory.LowStock(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return stockRowsToResponse(rows), nil
}

func stockRowsToResponse(rows []model.BranchInventory) []dto.BranchStockResponse {
	out := make([]dto.BranchStockResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *stockToResponse(&rows[i], rows[i].Product))
	}
	return out
}

func stockToResponse(row *model.BranchInventory, p *model.Product) *dto.BranchStockResponse {
	resp := &dto.BranchStockResponse{
		BranchID:  row.BranchID.String(),
		ProductID: row.ProductID.String(),
		Stock:     row.Stock,
	}
	if p != nil {
		resp.ProductName = p.Name
		resp.Barcode = p.Barcode
		resp.Critical = p.Critical
	}
	if row.ExpiryDate != nil {
		d := row.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &d
	}
	return resp
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:       p.ID.String(),
		Barcode:  p.Barcode,
		Name:     p.Name,
		Brand:    p.Brand,
		Price:    p.Price,
		Critical: p.Critical,
		IsActive: p.IsActive,
	}
	resp.Description = p.Description
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
