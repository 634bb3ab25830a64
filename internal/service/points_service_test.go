package service_test

import (
	"context"
	"testing"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/model"
	"j5pharmacy/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pointsFixture struct {
	svc    service.PointsService
	points *stubStarPointsRepo
	sales  *stubSaleRepo
}

func buildPointsSvc(t *testing.T) *pointsFixture {
	t.Helper()
	f := &pointsFixture{
		points: newStubStarPointsRepo(),
		sales:  newStubSaleRepo(),
	}
	f.svc = service.NewPointsService(f.points, f.sales)
	return f
}

func TestRedeemDebitsBalanceAndPatchesSale(t *testing.T) {
	f := buildPointsSvc(t)
	customerID := uuid.New()
	f.points.seed(customerID, 50)

	sale := &model.Sale{ID: uuid.New(), Status: "completed"}
	require.NoError(t, f.sales.CreateTx(nil, sale))

	resp, err := f.svc.Redeem(context.Background(), dto.RedeemPointsRequest{
		CustomerID:     customerID.String(),
		PointsToRedeem: 20,
		SaleID:         sale.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.NewBalance)

	sp, err := f.points.FindByCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, 30, sp.PointsBalance)
	assert.Equal(t, 20, sp.TotalPointsRedeemed)

	assert.Equal(t, 20, sale.PointsRedeemed)

	require.Len(t, f.points.ledger, 1)
	entry := f.points.ledger[0]
	assert.Equal(t, model.PointsRedeemed, entry.TransactionType)
	assert.Equal(t, 20, entry.PointsAmount)
	require.NotNil(t, entry.ReferenceSaleID)
	assert.Equal(t, sale.ID, *entry.ReferenceSaleID)
}

func TestRedeemMoreThanBalance(t *testing.T) {
	f := buildPointsSvc(t)
	customerID := uuid.New()
	f.points.seed(customerID, 10)

	_, err := f.svc.Redeem(context.Background(), dto.RedeemPointsRequest{
		CustomerID:     customerID.String(),
		PointsToRedeem: 11,
		SaleID:         uuid.NewString(),
	})
	assert.ErrorIs(t, err, apierror.ErrInsufficientPoints)

	sp, err := f.points.FindByCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, 10, sp.PointsBalance)
	assert.Empty(t, f.points.ledger)
}

func TestRedeemWithoutLedgerRow(t *testing.T) {
	f := buildPointsSvc(t)

	// A customer who never earned anything has no StarPoints row at all.
	_, err := f.svc.Redeem(context.Background(), dto.RedeemPointsRequest{
		CustomerID:     uuid.NewString(),
		PointsToRedeem: 1,
		SaleID:         uuid.NewString(),
	})
	assert.ErrorIs(t, err, apierror.ErrInsufficientPoints)
}

func TestRedeemRejectsNonPositiveAmount(t *testing.T) {
	f := buildPointsSvc(t)

	_, err := f.svc.Redeem(context.Background(), dto.RedeemPointsRequest{
		CustomerID:     uuid.NewString(),
		PointsToRedeem: 0,
		SaleID:         uuid.NewString(),
	})
	assert.ErrorIs(t, err, apierror.ErrPrecondition)
}

func TestGetBalanceForUnknownCustomer(t *testing.T) {
	f := buildPointsSvc(t)
	customerID := uuid.New()

	resp, err := f.svc.GetBalance(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, customerID.String(), resp.CustomerID)
	assert.Equal(t, 0, resp.PointsBalance)
	assert.NotNil(t, resp.Transactions)
	assert.Empty(t, resp.Transactions)
}

func TestGetBalanceWithHistory(t *testing.T) {
	f := buildPointsSvc(t)
	customerID := uuid.New()
	sp := f.points.seed(customerID, 0)

	saleID := uuid.New()
	require.NoError(t, f.points.AdjustPointsTx(nil, sp.ID, 5, model.PointsEarned, &saleID))
	require.NoError(t, f.points.AdjustPointsTx(nil, sp.ID, -2, model.PointsRedeemed, &saleID))

	resp, err := f.svc.GetBalance(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.PointsBalance)
	require.Len(t, resp.Transactions, 2)
	// Most recent first.
	assert.Equal(t, model.PointsRedeemed, resp.Transactions[0].TransactionType)
	assert.Equal(t, model.PointsEarned, resp.Transactions[1].TransactionType)
}
