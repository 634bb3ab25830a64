package service

import (
	"context"
	"errors"
	"fmt"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/model"
	"j5pharmacy/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointsService is the redemption mirror of the earning path in SaleService.
// Every balance change appends exactly one ledger row; the ledger is never
// updated in place.
type PointsService interface {
	Redeem(ctx context.Context, req dto.RedeemPointsRequest) (*dto.RedeemPointsResponse, error)
	GetBalance(ctx context.Context, customerID uuid.UUID) (*dto.PointsBalanceResponse, error)
}

// ledgerHistoryLimit caps the entries returned with a balance lookup.
const ledgerHistoryLimit = 10

type pointsService struct {
	repo  repository.StarPointsRepository
	sales repository.SaleRepository
}

func NewPointsService(repo repository.StarPointsRepository, sales repository.SaleRepository) PointsService {
	return &pointsService{repo: repo, sales: sales}
}

func (s *pointsService) Redeem(ctx context.Context, req dto.RedeemPointsRequest) (*dto.RedeemPointsResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}
	saleID, err := uuid.Parse(req.SaleID)
	if err != nil {
		return nil, fmt.Errorf("invalid sale_id: %w", err)
	}
	if req.PointsToRedeem <= 0 {
		return nil, fmt.Errorf("%w: points_to_redeem must be positive", apierror.ErrPrecondition)
	}

	var newBalance int
	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		sp, err := s.repo.FindByCustomerTx(tx, customerID)
		if err != nil {
			// No StarPoints row means a zero balance — same failure as
			// over-redeeming.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.ErrInsufficientPoints
			}
			return err
		}
		if req.PointsToRedeem > sp.PointsBalance {
			return apierror.ErrInsufficientPoints
		}
		if err := s.repo.AdjustPointsTx(tx, sp.ID, -req.PointsToRedeem, model.PointsRedeemed, &saleID); err != nil {
			return err
		}
		if err := s.sales.UpdatePointsRedeemedTx(tx, saleID, req.PointsToRedeem); err != nil {
			return err
		}
		newBalance = sp.PointsBalance - req.PointsToRedeem
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &dto.RedeemPointsResponse{NewBalance: newBalance}, nil
}

func (s *pointsService) GetBalance(ctx context.Context, customerID uuid.UUID) (*dto.PointsBalanceResponse, error) {
	sp, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No ledger yet — report an empty balance instead of 404 so the
			// POS can show 0 for brand-new customers.
			return &dto.PointsBalanceResponse{
				CustomerID:   customerID.String(),
				Transactions: []dto.PointsTransactionResponse{},
			}, nil
		}
		return nil, err
	}

	entries, err := s.repo.ListTransactions(ctx, sp.ID, ledgerHistoryLimit)
	if err != nil {
		return nil, err
	}
	history := make([]dto.PointsTransactionResponse, 0, len(entries))
	for _, e := range entries {
		var ref *string
		if e.ReferenceSaleID != nil {
			r := e.ReferenceSaleID.String()
			ref = &r
		}
		history = append(history, dto.PointsTransactionResponse{
			ID:              e.ID.String(),
			PointsAmount:    e.PointsAmount,
			TransactionType: e.TransactionType,
			ReferenceSaleID: ref,
			CreatedAt:       e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return &dto.PointsBalanceResponse{
		CustomerID:          customerID.String(),
		PointsBalance:       sp.PointsBalance,
		TotalPointsEarned:   sp.TotalPointsEarned,
		TotalPointsRedeemed: sp.TotalPointsRedeemed,
		Transactions:        history,
	}, nil
}
