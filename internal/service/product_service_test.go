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

type productFixture struct {
	svc        service.ProductService
	products   *stubProductRepo
	categories *stubCategoryRepo
	inventory  *stubInventoryRepo
}

func buildProductSvc(t *testing.T) *productFixture {
	t.Helper()
	f := &productFixture{
		products:   newStubProductRepo(),
		categories: newStubCategoryRepo(),
		inventory:  newStubInventoryRepo(),
	}
	f.svc = service.NewProductService(f.products, f.categories, f.inventory)
	return f
}

func createReq(categoryID uuid.UUID, name string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:       name,
		CategoryID: categoryID.String(),
		Price:      decimal.RequireFromString("10.00"),
		Critical:   10,
	}
}

func TestCreateGeneratesBarcodeFromPrefix(t *testing.T) {
	f := buildProductSvc(t)
	cat := f.categories.seed("Antibiotics", "ANT")

	resp, err := f.svc.Create(context.Background(), createReq(cat.ID, "Amoxicillin"))
	require.NoError(t, err)
	assert.Equal(t, "ANT000001", resp.Barcode)

	resp, err = f.svc.Create(context.Background(), createReq(cat.ID, "Cefalexin"))
	require.NoError(t, err)
	assert.Equal(t, "ANT000002", resp.Barcode)
}

func TestGenerateBarcodeSkipsSquattedValues(t *testing.T) {
	f := buildProductSvc(t)
	cat := f.categories.seed("Antibiotics", "ANT")

	// A manually entered barcode sits exactly where the counter starts.
	f.products.seed("Legacy Item", "ANT000001", decimal.RequireFromString("5.00"))

	resp, err := f.svc.Create(context.Background(), createReq(cat.ID, "Amoxicillin"))
	require.NoError(t, err)
	assert.Equal(t, "ANT000002", resp.Barcode)
}

func TestCreateWithManualBarcode(t *testing.T) {
	f := buildProductSvc(t)
	cat := f.categories.seed("Vitamins", "VIT")
	barcode := "4800888123456"

	req := createReq(cat.ID, "Vitamin C")
	req.Barcode = &barcode
	resp, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, barcode, resp.Barcode)
}

func TestCreateRejectsDuplicateManualBarcode(t *testing.T) {
	f := buildProductSvc(t)
	cat := f.categories.seed("Vitamins", "VIT")
	f.products.seed("Existing", "4800888123456", decimal.RequireFromString("5.00"))

	barcode := "4800888123456"
	req := createReq(cat.ID, "Vitamin C")
	req.Barcode = &barcode
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apierror.ErrConflict)
}

func TestCreateUnknownCategory(t *testing.T) {
	f := buildProductSvc(t)

	_, err := f.svc.Create(context.Background(), createReq(uuid.New(), "Orphan"))
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestGetByBarcodeIgnoresArchivedProducts(t *testing.T) {
	f := buildProductSvc(t)
	p := f.products.seed("Retired", "MED000001", decimal.RequireFromString("9.00"))
	p.IsActive = false

	_, err := f.svc.GetByBarcode(context.Background(), "MED000001")
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestSetStockOverwritesLevel(t *testing.T) {
	f := buildProductSvc(t)
	branchID := uuid.New()
	p := f.products.seed("Paracetamol", "MED000002", decimal.RequireFromString("12.00"))
	f.inventory.seed(branchID, p.ID, 3)

	expiry := "2027-06-30"
	resp, err := f.svc.SetStock(context.Background(), dto.SetStockRequest{
		BranchID:   branchID.String(),
		ProductID:  p.ID.String(),
		Stock:      120,
		ExpiryDate: &expiry,
	})
	require.NoError(t, err)
	assert.Equal(t, 120, resp.Stock)
	assert.Equal(t, 120, f.inventory.stock(branchID, p.ID))
}

func TestSetStockRejectsArchivedProduct(t *testing.T) {
	f := buildProductSvc(t)
	p := f.products.seed("Retired", "MED000003", decimal.RequireFromString("9.00"))
	p.IsActive = false

	_, err := f.svc.SetStock(context.Background(), dto.SetStockRequest{
		BranchID:  uuid.NewString(),
		ProductID: p.ID.String(),
		Stock:     10,
	})
	assert.ErrorIs(t, err, apierror.ErrPrecondition)
}

func TestSetStockRejectsBadExpiryFormat(t *testing.T) {
	f := buildProductSvc(t)
	p := f.products.seed("Paracetamol", "MED000004", decimal.RequireFromString("12.00"))

	expiry := "30/06/2027"
	_, err := f.svc.SetStock(context.Background(), dto.SetStockRequest{
		BranchID:   uuid.NewString(),
		ProductID:  p.ID.String(),
		Stock:      10,
		ExpiryDate: &expiry,
	})
	assert.ErrorIs(t, err, apierror.ErrPrecondition)
}

func TestUpdateRejectsNonPositivePrice(t *testing.T) {
	f := buildProductSvc(t)
	p := f.products.seed("Paracetamol", "MED000005", decimal.RequireFromString("12.00"))

	bad := decimal.Zero
	_, err := f.svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Price: &bad})
	assert.ErrorIs(t, err, apierror.ErrPrecondition)
}
