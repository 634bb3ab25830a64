package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/model"
	"j5pharmacy/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Categories ────────────────────────────────────────────────────────────

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: category %s already exists", apierror.ErrConflict, name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c := &model.Category{
		Name:        name,
		Prefix:      strings.ToUpper(req.Prefix),
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return categoryToResponse(c), nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return categoryToResponse(c), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, *categoryToResponse(&list[i]))
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	if c.Name == model.NoCategoryName {
		return nil, fmt.Errorf("%w: the %s category cannot be renamed", apierror.ErrPrecondition, model.NoCategoryName)
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Prefix = strings.ToUpper(req.Prefix)
	c.Description = req.Description
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return categoryToResponse(c), nil
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Prefix:      c.Prefix,
		Description: c.Description,
	}
}

// ── Branches ──────────────────────────────────────────────────────────────

type BranchService interface {
	Create(ctx context.Context, req dto.CreateBranchRequest) (*dto.BranchResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BranchResponse, error)
	List(ctx context.Context, includeArchived bool) ([]dto.BranchResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CreateBranchRequest) (*dto.BranchResponse, error)
}

type branchService struct {
	repo repository.BranchRepository
}

func NewBranchService(repo repository.BranchRepository) BranchService {
	return &branchService{repo: repo}
}

func (s *branchService) Create(ctx context.Context, req dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if _, err := s.repo.FindByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: branch code %s already exists", apierror.ErrConflict, code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	b := &model.Branch{
		Code:     code,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return branchToResponse(b), nil
}

func (s *branchService) Get(ctx context.Context, id uuid.UUID) (*dto.BranchResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return branchToResponse(b), nil
}

func (s *branchService) List(ctx context.Context, includeArchived bool) ([]dto.BranchResponse, error) {
	list, err := s.repo.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(list))
	for i := range list {
		out = append(out, *branchToResponse(&list[i]))
	}
	return out, nil
}

func (s *branchService) Update(ctx context.Context, id uuid.UUID, req dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	if b.IsArchived {
		return nil, fmt.Errorf("%w: branch is archived", apierror.ErrPrecondition)
	}
	b.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	b.Name = req.Name
	b.Address = req.Address
	b.Phone = req.Phone
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return branchToResponse(b), nil
}

func branchToResponse(b *model.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:         b.ID.String(),
		Code:       b.Code,
		Name:       b.Name,
		Address:    b.Address,
		Phone:      b.Phone,
		IsActive:   b.IsActive,
		IsArchived: b.IsArchived,
	}
}

// ── Customers ─────────────────────────────────────────────────────────────

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	FindByCard(ctx context.Context, cardID string) (*dto.CustomerResponse, error)
	Search(ctx context.Context, query string) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
}

const customerSearchLimit = 25

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if req.CardID != nil && *req.CardID != "" {
		if _, err := s.repo.FindByCardID(ctx, *req.CardID); err == nil {
			return nil, fmt.Errorf("%w: card %s already registered", apierror.ErrConflict, *req.CardID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	discountType := req.DiscountType
	if discountType == "" {
		discountType = "none"
	}
	c := &model.Customer{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		CardID:       req.CardID,
		DiscountType: discountType,
		DiscountID:   req.DiscountID,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) FindByCard(ctx context.Context, cardID string) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByCardID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) Search(ctx context.Context, query string) ([]dto.CustomerResponse, error) {
	list, err := s.repo.Search(ctx, query, customerSearchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for i := range list {
		out = append(out, *customerToResponse(&list[i]))
	}
	return out, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	if req.CardID != nil && *req.CardID != "" && (c.CardID == nil || *c.CardID != *req.CardID) {
		if other, err := s.repo.FindByCardID(ctx, *req.CardID); err == nil && other.ID != c.ID {
			return nil, fmt.Errorf("%w: card %s already registered", apierror.ErrConflict, *req.CardID)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	c.Name = req.Name
	c.Phone = req.Phone
	c.Email = req.Email
	c.CardID = req.CardID
	if req.DiscountType != "" {
		c.DiscountType = req.DiscountType
	}
	c.DiscountID = req.DiscountID
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		CardID:       c.CardID,
		DiscountType: c.DiscountType,
		IsActive:     c.IsActive,
	}
}
