package service

import (
	"context"
	"errors"
	"fmt"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/infra"
	"j5pharmacy/internal/model"
	"j5pharmacy/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.CreateSaleResponse, error)
	VoidSale(ctx context.Context, id uuid.UUID, reason string) error
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo            repository.SaleRepository
	inventory       repository.InventoryRepository
	starPoints      repository.StarPointsRepository
	products        repository.ProductRepository
	clock           *infra.Clock
	pointsPerAmount int64
}

func NewSaleService(
	repo repository.SaleRepository,
	inventory repository.InventoryRepository,
	starPoints repository.StarPointsRepository,
	products repository.ProductRepository,
	clock *infra.Clock,
	pointsPerAmount int,
) SaleService {
	return &saleService{
		repo:            repo,
		inventory:       inventory,
		starPoints:      starPoints,
		products:        products,
		clock:           clock,
		pointsPerAmount: int64(pointsPerAmount),
	}
}

// ── CreateSale ───────────────────────────────────────────────────────────────
// One ACID transaction per sale:
//  1. draw an invoice number from the sequence
//  2. insert the Sale header (payment_status fixed to "paid") with its items
//  3. decrement branch stock per line — insufficient stock aborts everything
//  4. award star points when a customer is attached (1 per 100 spent, floored)
// No partial sales are ever persisted; there are no retries.

func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branch_id: %w", err)
	}
	sessionID, err := uuid.Parse(req.PharmacistSessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid pharmacist_session_id: %w", err)
	}
	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer_id: %w", err)
		}
		customerID = &cid
	}

	// Pre-flight, outside the transaction: resolve products and compute the
	// total. Bad quantities reject the whole request before any mutation.
	type resolvedLine struct {
		productID uuid.UUID
		name      string
		quantity  int
		unitPrice decimal.Decimal
		lineTotal decimal.Decimal
	}
	var resolved []resolvedLine
	subtotal := decimal.Zero
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", apierror.ErrPrecondition)
		}
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, item.ProductID)
		}
		if !p.IsActive {
			return nil, fmt.Errorf("%w: product %q is archived", apierror.ErrPrecondition, p.Name)
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		resolved = append(resolved, resolvedLine{
			productID: pid,
			name:      p.Name,
			quantity:  item.Quantity,
			unitPrice: item.UnitPrice,
			lineTotal: lineTotal,
		})
	}

	total := subtotal.Sub(req.DiscountAmount)
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: discount exceeds subtotal", apierror.ErrPrecondition)
	}
	discountType := req.DiscountType
	if discountType == "" {
		discountType = "none"
	}

	var sale model.Sale
	pointsEarned := 0
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		seq, err := s.repo.NextInvoiceSeq(tx)
		if err != nil {
			return err
		}

		sale = model.Sale{
			InvoiceNumber:       fmt.Sprintf("INV-%s-%06d", s.clock.Now().Format("20060102"), seq),
			CustomerID:          customerID,
			BranchID:            branchID,
			PharmacistSessionID: sessionID,
			TotalAmount:         total,
			DiscountAmount:      req.DiscountAmount,
			DiscountType:        discountType,
			PaymentMethod:       req.PaymentMethod,
			PaymentStatus:       "paid",
			Status:              "completed",
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:  r.productID,
				Quantity:   r.quantity,
				UnitPrice:  r.unitPrice,
				TotalPrice: r.lineTotal,
			})
		}
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		// Decrement branch stock per line. The conditional UPDATE serializes
		// concurrent sales of the same row and rejects any decrement that
		// would go negative, failing the whole transaction.
		for _, r := range resolved {
			if err := s.inventory.AdjustStockTx(tx, branchID, r.productID, -r.quantity); err != nil {
				if errors.Is(err, apierror.ErrInsufficientStock) {
					return fmt.Errorf("%w for %q", apierror.ErrInsufficientStock, r.name)
				}
				return err
			}
		}

		// Star points: 1 per pointsPerAmount spent, floor rounding, awarded
		// only when the sale is attached to a customer. The StarPoints row is
		// materialized even on a zero-point sale so the customer's account
		// exists from their first purchase.
		if customerID != nil {
			sp, err := s.findOrCreateStarPointsTx(tx, *customerID)
			if err != nil {
				return err
			}
			earned := total.Div(decimal.NewFromInt(s.pointsPerAmount)).Floor().IntPart()
			if earned > 0 {
				saleID := sale.ID
				if err := s.starPoints.AdjustPointsTx(tx, sp.ID, int(earned), model.PointsEarned, &saleID); err != nil {
					return err
				}
				if err := s.repo.UpdatePointsEarnedTx(tx, sale.ID, int(earned)); err != nil {
					return err
				}
				pointsEarned = int(earned)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CreateSaleResponse{
		SaleID:        sale.ID.String(),
		InvoiceNumber: sale.InvoiceNumber,
		PointsEarned:  pointsEarned,
	}, nil
}

func (s *saleService) findOrCreateStarPointsTx(tx *gorm.DB, customerID uuid.UUID) (*model.StarPoints, error) {
	sp, err := s.starPoints.FindByCustomerTx(tx, customerID)
	if err == nil {
		return sp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	sp = &model.StarPoints{CustomerID: customerID}
	if err := s.starPoints.CreateTx(tx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// ── VoidSale ─────────────────────────────────────────────────────────────────
// Restores stock for every line and claws back the points the sale earned.
// The clawback is best-effort: if the customer already spent the points the
// balance guard refuses and the void proceeds with a warning.

func (s *saleService) VoidSale(ctx context.Context, id uuid.UUID, reason string) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: sale %s", apierror.ErrNotFound, id)
	}
	if sale.Status == "voided" {
		return fmt.Errorf("%w: sale is already voided", apierror.ErrPrecondition)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range sale.Items {
			if err := s.inventory.AdjustStockTx(tx, sale.BranchID, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if sale.CustomerID != nil && sale.PointsEarned > 0 {
			sp, err := s.starPoints.FindByCustomerTx(tx, *sale.CustomerID)
			if err != nil {
				return err
			}
			saleID := sale.ID
			err = s.starPoints.AdjustPointsTx(tx, sp.ID, -sale.PointsEarned, model.PointsRedeemed, &saleID)
			if errors.Is(err, apierror.ErrInsufficientPoints) {
				log.Warn().
					Str("sale_id", sale.ID.String()).
					Str("reason", reason).
					Int("points", sale.PointsEarned).
					Msg("void: earned points already spent, skipping clawback")
			} else if err != nil {
				return err
			}
		}

		return s.repo.UpdateStatusTx(tx, id, "voided")
	})
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: sale %s", apierror.ErrNotFound, id)
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func saleToResponse(sale *model.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	var customerID *string
	if sale.CustomerID != nil {
		cid := sale.CustomerID.String()
		customerID = &cid
	}
	return dto.SaleResponse{
		ID:             sale.ID.String(),
		InvoiceNumber:  sale.InvoiceNumber,
		CustomerID:     customerID,
		BranchID:       sale.BranchID.String(),
		TotalAmount:    sale.TotalAmount,
		DiscountAmount: sale.DiscountAmount,
		DiscountType:   sale.DiscountType,
		PaymentMethod:  sale.PaymentMethod,
		PaymentStatus:  sale.PaymentStatus,
		Status:         sale.Status,
		PointsEarned:   sale.PointsEarned,
		PointsRedeemed: sale.PointsRedeemed,
		Items:          items,
		CreatedAt:      sale.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
