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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SessionService drives the pharmacist shift lifecycle: open on POS login,
// close with reconciliation at end of shift. A session is open while its
// SalesSession.EndTime is NULL; that column is the single source of truth.
type SessionService interface {
	// OpenForPharmacist creates a SalesSession and its PharmacistSession in
	// one transaction. Called from the POS login path.
	OpenForPharmacist(ctx context.Context, userID, branchID uuid.UUID) (*model.PharmacistSession, *model.SalesSession, error)
	Summary(ctx context.Context, pharmacistSessionID uuid.UUID) (*dto.SessionSummaryResponse, error)
	// EndSessionByUser closes the caller's open session without a declared
	// cash count. Used by the POS logout button.
	EndSessionByUser(ctx context.Context, userID uuid.UUID) (*dto.EndSessionResponse, error)
	SaveReconciliation(ctx context.Context, req dto.SaveReconciliationRequest) (*dto.ReconciliationResponse, error)
}

type sessionService struct {
	repo  repository.SessionRepository
	clock *infra.Clock
}

func NewSessionService(repo repository.SessionRepository, clock *infra.Clock) SessionService {
	return &sessionService{repo: repo, clock: clock}
}

var fullShare = decimal.NewFromInt(100)

func (s *sessionService) OpenForPharmacist(ctx context.Context, userID, branchID uuid.UUID) (*model.PharmacistSession, *model.SalesSession, error) {
	ss := &model.SalesSession{
		BranchID:   branchID,
		StartTime:  s.clock.Now(),
		TotalSales: decimal.Zero,
	}
	ps := &model.PharmacistSession{
		UserID:          userID,
		SharePercentage: fullShare,
	}
	var reusedPs *model.PharmacistSession
	var reusedSs *model.SalesSession
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// The user row lock serializes concurrent POS logins; the open-check
		// and the create commit or roll back as one unit, so a re-login after
		// a terminal crash reuses the shift instead of forking it.
		if err := s.repo.LockUserTx(tx, userID); err != nil {
			return err
		}
		if eps, ess, err := s.repo.FindOpenByUserTx(tx, userID); err == nil {
			reusedPs, reusedSs = eps, ess
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.repo.CreateSalesSessionTx(tx, ss); err != nil {
			return err
		}
		ps.SalesSessionID = ss.ID
		return s.repo.CreatePharmacistSessionTx(tx, ps)
	})
	if err != nil {
		return nil, nil, err
	}
	if reusedPs != nil {
		return reusedPs, reusedSs, nil
	}
	return ps, ss, nil
}

func (s *sessionService) Summary(ctx context.Context, pharmacistSessionID uuid.UUID) (*dto.SessionSummaryResponse, error) {
	ps, err := s.repo.FindPharmacistSession(ctx, pharmacistSessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrSessionNotFound
		}
		return nil, err
	}
	ss, err := s.repo.FindSalesSession(ctx, ps.SalesSessionID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountSales(ctx, ps.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.SumSales(ctx, ps.ID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionSummaryResponse{
		PharmacistSessionID: ps.ID.String(),
		SalesSessionID:      ss.ID.String(),
		BranchID:            ss.BranchID.String(),
		StartTime:           ss.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		SaleCount:           count,
		SystemTotal:         total,
	}, nil
}

func (s *sessionService) EndSessionByUser(ctx context.Context, userID uuid.UUID) (*dto.EndSessionResponse, error) {
	ps, ss, err := s.repo.FindOpenByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrSessionNotFound
		}
		return nil, err
	}

	var total decimal.Decimal
	endTime := s.clock.Now()
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		total, err = s.repo.SumSalesTx(tx, ps.ID)
		if err != nil {
			return err
		}
		ss.EndTime = &endTime
		ss.TotalSales = total
		return s.repo.CloseSalesSessionTx(tx, ss)
	})
	if err != nil {
		return nil, err
	}
	return &dto.EndSessionResponse{
		SalesSessionID: ss.ID.String(),
		TotalSales:     total,
		EndTime:        endTime.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// SaveReconciliation closes the session and records the declared cash count
// atomically. The system total is recomputed from the sale rows inside the
// same transaction; discrepancy = declared - system.
func (s *sessionService) SaveReconciliation(ctx context.Context, req dto.SaveReconciliationRequest) (*dto.ReconciliationResponse, error) {
	pharmacistSessionID, err := uuid.Parse(req.PharmacistSessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid pharmacist_session_id: %w", err)
	}
	ps, err := s.repo.FindPharmacistSession(ctx, pharmacistSessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrSessionNotFound
		}
		return nil, err
	}
	ss, err := s.repo.FindSalesSession(ctx, ps.SalesSessionID)
	if err != nil {
		return nil, err
	}

	endTime := s.clock.Now()
	declared := req.DeclaredCash.Add(req.DeclaredNonCash)
	var rec *model.CashReconciliation
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		systemTotal, err := s.repo.SumSalesTx(tx, ps.ID)
		if err != nil {
			return err
		}
		ss.EndTime = &endTime
		ss.TotalSales = systemTotal
		if err := s.repo.CloseSalesSessionTx(tx, ss); err != nil {
			return err
		}
		rec = &model.CashReconciliation{
			PharmacistSessionID: ps.ID,
			DeclaredCash:        req.DeclaredCash,
			DeclaredNonCash:     req.DeclaredNonCash,
			SystemTotal:         systemTotal,
			Discrepancy:         declared.Sub(systemTotal),
			Notes:               req.Notes,
		}
		return s.repo.CreateReconciliationTx(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationResponse{
		PharmacistSessionID: ps.ID.String(),
		SystemTotal:         rec.SystemTotal,
		DeclaredTotal:       declared,
		Discrepancy:         rec.Discrepancy,
		EndTime:             endTime.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
