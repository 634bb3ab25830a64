package service_test

import (
	"context"
	"testing"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	svc      service.SessionService
	sessions *stubSessionRepo
}

func buildSessionSvc(t *testing.T) *sessionFixture {
	t.Helper()
	f := &sessionFixture{sessions: newStubSessionRepo()}
	f.svc = service.NewSessionService(f.sessions, testClock(t))
	return f
}

func TestOpenForPharmacistCreatesSessionPair(t *testing.T) {
	f := buildSessionSvc(t)
	userID := uuid.New()
	branchID := uuid.New()

	ps, ss, err := f.svc.OpenForPharmacist(context.Background(), userID, branchID)
	require.NoError(t, err)
	assert.Equal(t, userID, ps.UserID)
	assert.Equal(t, ss.ID, ps.SalesSessionID)
	assert.Equal(t, branchID, ss.BranchID)
	assert.Nil(t, ss.EndTime)
	assert.True(t, ps.SharePercentage.Equal(decimal.NewFromInt(100)))
}

func TestOpenForPharmacistReusesOpenSession(t *testing.T) {
	f := buildSessionSvc(t)
	userID := uuid.New()
	branchID := uuid.New()

	ps1, ss1, err := f.svc.OpenForPharmacist(context.Background(), userID, branchID)
	require.NoError(t, err)

	// A POS terminal crash and re-login must not fork the shift.
	ps2, ss2, err := f.svc.OpenForPharmacist(context.Background(), userID, branchID)
	require.NoError(t, err)
	assert.Equal(t, ps1.ID, ps2.ID)
	assert.Equal(t, ss1.ID, ss2.ID)
}

func TestOpenForPharmacistAfterCloseStartsFresh(t *testing.T) {
	f := buildSessionSvc(t)
	userID := uuid.New()
	branchID := uuid.New()

	ps1, _, err := f.svc.OpenForPharmacist(context.Background(), userID, branchID)
	require.NoError(t, err)
	_, err = f.svc.EndSessionByUser(context.Background(), userID)
	require.NoError(t, err)

	ps2, ss2, err := f.svc.OpenForPharmacist(context.Background(), userID, branchID)
	require.NoError(t, err)
	assert.NotEqual(t, ps1.ID, ps2.ID)
	assert.Nil(t, ss2.EndTime)
}

func TestEndSessionRecomputesTotal(t *testing.T) {
	f := buildSessionSvc(t)
	userID := uuid.New()

	ps, ss, err := f.svc.OpenForPharmacist(context.Background(), userID, uuid.New())
	require.NoError(t, err)
	f.sessions.sumBySession[ps.ID] = decimal.RequireFromString("550.00")

	resp, err := f.svc.EndSessionByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, ss.ID.String(), resp.SalesSessionID)
	assert.True(t, resp.TotalSales.Equal(decimal.RequireFromString("550.00")))

	closed, err := f.sessions.FindSalesSession(context.Background(), ss.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.EndTime)
	assert.True(t, closed.TotalSales.Equal(decimal.RequireFromString("550.00")))
}

func TestEndSessionWithoutOpenSession(t *testing.T) {
	f := buildSessionSvc(t)

	_, err := f.svc.EndSessionByUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apierror.ErrSessionNotFound)
}

func TestSaveReconciliationComputesDiscrepancy(t *testing.T) {
	f := buildSessionSvc(t)
	userID := uuid.New()

	ps, ss, err := f.svc.OpenForPharmacist(context.Background(), userID, uuid.New())
	require.NoError(t, err)
	f.sessions.sumBySession[ps.ID] = decimal.RequireFromString("550.00")

	resp, err := f.svc.SaveReconciliation(context.Background(), dto.SaveReconciliationRequest{
		PharmacistSessionID: ps.ID.String(),
		DeclaredCash:        decimal.RequireFromString("500.00"),
		DeclaredNonCash:     decimal.RequireFromString("40.00"),
	})
	require.NoError(t, err)

	// declared 540.00 against a recomputed system total of 550.00
	assert.True(t, resp.SystemTotal.Equal(decimal.RequireFromString("550.00")))
	assert.True(t, resp.DeclaredTotal.Equal(decimal.RequireFromString("540.00")))
	assert.True(t, resp.Discrepancy.Equal(decimal.RequireFromString("-10.00")))

	closed, err := f.sessions.FindSalesSession(context.Background(), ss.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.EndTime)

	require.Len(t, f.sessions.reconciliations, 1)
	rec := f.sessions.reconciliations[0]
	assert.Equal(t, ps.ID, rec.PharmacistSessionID)
	assert.True(t, rec.Discrepancy.Equal(decimal.RequireFromString("-10.00")))
}

func TestSaveReconciliationTwice(t *testing.T) {
	f := buildSessionSvc(t)
	userID := uuid.New()

	ps, _, err := f.svc.OpenForPharmacist(context.Background(), userID, uuid.New())
	require.NoError(t, err)

	req := dto.SaveReconciliationRequest{
		PharmacistSessionID: ps.ID.String(),
		DeclaredCash:        decimal.Zero,
		DeclaredNonCash:     decimal.Zero,
	}
	_, err = f.svc.SaveReconciliation(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.SaveReconciliation(context.Background(), req)
	assert.ErrorIs(t, err, apierror.ErrSessionNotFound)
	assert.Len(t, f.sessions.reconciliations, 1)
}

func TestSaveReconciliationAfterLogoutClose(t *testing.T) {
	f := buildSessionSvc(t)
	userID := uuid.New()

	ps, _, err := f.svc.OpenForPharmacist(context.Background(), userID, uuid.New())
	require.NoError(t, err)

	// POS logout already stamped end_time; the reconciliation's close must
	// hit zero rows and leave no second CashReconciliation behind.
	_, err = f.svc.EndSessionByUser(context.Background(), userID)
	require.NoError(t, err)

	_, err = f.svc.SaveReconciliation(context.Background(), dto.SaveReconciliationRequest{
		PharmacistSessionID: ps.ID.String(),
		DeclaredCash:        decimal.RequireFromString("100.00"),
	})
	assert.ErrorIs(t, err, apierror.ErrSessionNotFound)
	assert.Empty(t, f.sessions.reconciliations)
}

func TestSaveReconciliationUnknownSession(t *testing.T) {
	f := buildSessionSvc(t)

	_, err := f.svc.SaveReconciliation(context.Background(), dto.SaveReconciliationRequest{
		PharmacistSessionID: uuid.NewString(),
		DeclaredCash:        decimal.Zero,
	})
	assert.ErrorIs(t, err, apierror.ErrSessionNotFound)
}

func TestSummaryReportsCountsAndTotal(t *testing.T) {
	f := buildSessionSvc(t)
	userID := uuid.New()

	ps, ss, err := f.svc.OpenForPharmacist(context.Background(), userID, uuid.New())
	require.NoError(t, err)
	f.sessions.countBySession[ps.ID] = 7
	f.sessions.sumBySession[ps.ID] = decimal.RequireFromString("1234.50")

	resp, err := f.svc.Summary(context.Background(), ps.ID)
	require.NoError(t, err)
	assert.Equal(t, ss.ID.String(), resp.SalesSessionID)
	assert.Equal(t, int64(7), resp.SaleCount)
	assert.True(t, resp.SystemTotal.Equal(decimal.RequireFromString("1234.50")))
}

func TestSummaryUnknownSession(t *testing.T) {
	f := buildSessionSvc(t)

	_, err := f.svc.Summary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apierror.ErrSessionNotFound)
}
