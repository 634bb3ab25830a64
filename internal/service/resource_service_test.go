package service_test

import (
	"context"
	"testing"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/model"
	"j5pharmacy/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreateNormalizesAndRejectsDuplicates(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := service.NewCategoryService(repo)

	resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:   "  Antibiotics  ",
		Prefix: "ant",
	})
	require.NoError(t, err)
	assert.Equal(t, "Antibiotics", resp.Name)
	assert.Equal(t, "ANT", resp.Prefix)

	_, err = svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:   "Antibiotics",
		Prefix: "ABX",
	})
	assert.ErrorIs(t, err, apierror.ErrConflict)
}

func TestSentinelCategoryCannotBeRenamed(t *testing.T) {
	repo := newStubCategoryRepo()
	sentinel := repo.seed(model.NoCategoryName, "GEN")
	svc := service.NewCategoryService(repo)

	_, err := svc.Update(context.Background(), sentinel.ID, dto.CreateCategoryRequest{
		Name:   "General",
		Prefix: "GEN",
	})
	assert.ErrorIs(t, err, apierror.ErrPrecondition)
}

func TestBranchCreateRejectsDuplicateCode(t *testing.T) {
	repo := newStubBranchRepo()
	repo.seed("MAIN", "Main Branch")
	svc := service.NewBranchService(repo)

	_, err := svc.Create(context.Background(), dto.CreateBranchRequest{
		Code: "main",
		Name: "Another Main",
	})
	assert.ErrorIs(t, err, apierror.ErrConflict)
}

func TestCustomerCreateRejectsDuplicateCard(t *testing.T) {
	repo := newStubCustomerRepo()
	card := "SP-000123"
	existing := repo.seed("Juan Dela Cruz")
	existing.CardID = &card
	svc := service.NewCustomerService(repo)

	_, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:   "Maria Santos",
		CardID: &card,
	})
	assert.ErrorIs(t, err, apierror.ErrConflict)
}

func TestCustomerCreateDefaultsDiscountType(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := service.NewCustomerService(repo)

	resp, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Maria Santos"})
	require.NoError(t, err)
	assert.Equal(t, "none", resp.DiscountType)
	assert.True(t, resp.IsActive)
}

func TestCustomerUpdateKeepsOwnCard(t *testing.T) {
	repo := newStubCustomerRepo()
	card := "SP-000123"
	c := repo.seed("Juan Dela Cruz")
	c.CardID = &card
	svc := service.NewCustomerService(repo)

	resp, err := svc.Update(context.Background(), c.ID, dto.CreateCustomerRequest{
		Name:         "Juan M. Dela Cruz",
		CardID:       &card,
		DiscountType: "senior",
	})
	require.NoError(t, err)
	assert.Equal(t, "Juan M. Dela Cruz", resp.Name)
	assert.Equal(t, "senior", resp.DiscountType)
}
