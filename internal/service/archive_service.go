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
	"gorm.io/gorm"
)

// ArchiveService is the generic archive/restore subsystem. Each entity kind
// registers an archiver implementing the shared contract; HTTP handlers
// dispatch by kind string so adding an archivable entity never touches the
// endpoint layer.
type ArchiveService interface {
	Archive(ctx context.Context, kind string, id uuid.UUID, req dto.ArchiveRequest) (*dto.ArchiveResponse, error)
	Restore(ctx context.Context, kind string, id uuid.UUID) (*dto.ArchiveResponse, error)
	ListArchived(ctx context.Context, kind string) (interface{}, error)
}

// archiver is the per-entity contract. Both hooks run inside the service's
// transaction and return the number of rows they touched.
type archiver interface {
	archive(tx *gorm.DB, id uuid.UUID, stamp model.ArchiveStamp) (int, error)
	restore(tx *gorm.DB, id uuid.UUID) (int, error)
	listArchived(ctx context.Context) (interface{}, error)
}

type archiveService struct {
	db       *gorm.DB
	clock    *infra.Clock
	registry map[string]archiver
}

func NewArchiveService(
	db *gorm.DB,
	clock *infra.Clock,
	archives repository.ArchiveRepository,
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
	categories repository.CategoryRepository,
	branches repository.BranchRepository,
	customers repository.CustomerRepository,
) ArchiveService {
	return &archiveService{
		db:    db,
		clock: clock,
		registry: map[string]archiver{
			"product":  &productArchiver{archives: archives, products: products, inventory: inventory, branches: branches},
			"category": &categoryArchiver{archives: archives, categories: categories, products: products},
			"branch":   &branchArchiver{archives: archives, branches: branches},
			"customer": &customerArchiver{archives: archives, customers: customers},
		},
	}
}

func (s *archiveService) lookup(kind string) (archiver, error) {
	a, ok := s.registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown archive entity %q", apierror.ErrNotFound, kind)
	}
	return a, nil
}

func (s *archiveService) Archive(ctx context.Context, kind string, id uuid.UUID, req dto.ArchiveRequest) (*dto.ArchiveResponse, error) {
	a, err := s.lookup(kind)
	if err != nil {
		return nil, err
	}
	archivedBy, err := uuid.Parse(req.ArchivedBy)
	if err != nil {
		return nil, fmt.Errorf("invalid archived_by: %w", err)
	}
	stamp := model.ArchiveStamp{
		ArchivedBy:    archivedBy,
		ArchiveReason: req.Reason,
		ArchivedAt:    s.clock.Now(),
	}
	var affected int
	err = runTx(ctx, s.db, func(tx *gorm.DB) error {
		n, err := a.archive(tx, id, stamp)
		affected = n
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return &dto.ArchiveResponse{Affected: affected}, nil
}

func (s *archiveService) Restore(ctx context.Context, kind string, id uuid.UUID) (*dto.ArchiveResponse, error) {
	a, err := s.lookup(kind)
	if err != nil {
		return nil, err
	}
	var affected int
	err = runTx(ctx, s.db, func(tx *gorm.DB) error {
		n, err := a.restore(tx, id)
		affected = n
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.ErrNotFound
		}
		return nil, err
	}
	return &dto.ArchiveResponse{Affected: affected}, nil
}

func (s *archiveService) ListArchived(ctx context.Context, kind string) (interface{}, error) {
	a, err := s.lookup(kind)
	if err != nil {
		return nil, err
	}
	return a.listArchived(ctx)
}

// ── Product ───────────────────────────────────────────────────────────────

// productArchiver flips the product inactive rather than deleting it, so
// historical sale items keep their foreign key. Per-branch stock rows are
// snapshotted alongside and rebuilt on restore.
type productArchiver struct {
	archives  repository.ArchiveRepository
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	branches  repository.BranchRepository
}

func (a *productArchiver) archive(tx *gorm.DB, id uuid.UUID, stamp model.ArchiveStamp) (int, error) {
	p, err := a.products.FindByIDTx(tx, id)
	if err != nil {
		return 0, err
	}
	if !p.IsActive {
		return 0, fmt.Errorf("%w: product already archived", apierror.ErrPrecondition)
	}
	snapshot := &model.ProductArchive{
		ID:           p.ID,
		Barcode:      p.Barcode,
		Name:         p.Name,
		Brand:        p.Brand,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		Price:        p.Price,
		Critical:     p.Critical,
		ArchiveStamp: stamp,
	}
	if err := a.archives.SaveTx(tx, snapshot); err != nil {
		return 0, err
	}
	affected := 1

	rows, err := a.inventory.ListByProductTx(tx, id)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		inv := &model.BranchInventoryArchive{
			BranchID:   row.BranchID,
			ProductID:  row.ProductID,
			Stock:      row.Stock,
			ExpiryDate: row.ExpiryDate,
			ArchivedAt: stamp.ArchivedAt,
		}
		if err := a.archives.SaveTx(tx, inv); err != nil {
			return 0, err
		}
		affected++
	}
	if err := a.inventory.DeactivateByProductTx(tx, id); err != nil {
		return 0, err
	}
	if err := a.products.SetActiveTx(tx, id, false); err != nil {
		return 0, err
	}
	return affected, nil
}

func (a *productArchiver) restore(tx *gorm.DB, id uuid.UUID) (int, error) {
	if _, err := a.archives.FindProductTx(tx, id); err != nil {
		return 0, err
	}
	if err := a.products.SetActiveTx(tx, id, true); err != nil {
		return 0, err
	}
	affected := 1

	snapshots, err := a.archives.ListInventoryByProductTx(tx, id)
	if err != nil {
		return 0, err
	}
	archivedStock := make(map[uuid.UUID]model.BranchInventoryArchive, len(snapshots))
	for _, s := range snapshots {
		archivedStock[s.BranchID] = s
	}

	// Every active branch gets a stock row back. Branches opened while the
	// product was archived start at zero.
	if err := a.inventory.DeleteByProductTx(tx, id); err != nil {
		return 0, err
	}
	branches, err := a.branches.ListActiveTx(tx)
	if err != nil {
		return 0, err
	}
	for _, b := range branches {
		row := &model.BranchInventory{
			BranchID:  b.ID,
			ProductID: id,
			IsActive:  true,
		}
		if snap, ok := archivedStock[b.ID]; ok {
			row.Stock = snap.Stock
			row.ExpiryDate = snap.ExpiryDate
		}
		if err := a.inventory.CreateTx(tx, row); err != nil {
			return 0, err
		}
		affected++
	}

	if err := a.archives.DeleteInventoryByProductTx(tx, id); err != nil {
		return 0, err
	}
	return affected, a.archives.DeleteProductTx(tx, id)
}

func (a *productArchiver) listArchived(ctx context.Context) (interface{}, error) {
	return a.archives.ListProducts(ctx)
}

// ── Category ──────────────────────────────────────────────────────────────

// categoryArchiver hard-deletes the category after reassigning its products
// to the NO CATEGORY sentinel. The sentinel itself is not archivable.
type categoryArchiver struct {
	archives   repository.ArchiveRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func (a *categoryArchiver) archive(tx *gorm.DB, id uuid.UUID, stamp model.ArchiveStamp) (int, error) {
	c, err := a.categories.FindByIDTx(tx, id)
	if err != nil {
		return 0, err
	}
	if c.Name == model.NoCategoryName {
		return 0, fmt.Errorf("%w: the %s category cannot be archived", apierror.ErrPrecondition, model.NoCategoryName)
	}
	sentinel, err := a.categories.FindByNameTx(tx, model.NoCategoryName)
	if err != nil {
		return 0, err
	}
	snapshot := &model.CategoryArchive{
		ID:           c.ID,
		Name:         c.Name,
		Prefix:       c.Prefix,
		Description:  c.Description,
		ArchiveStamp: stamp,
	}
	if err := a.archives.SaveTx(tx, snapshot); err != nil {
		return 0, err
	}
	moved, err := a.products.ReassignCategoryTx(tx, c.ID, sentinel.ID)
	if err != nil {
		return 0, err
	}
	if err := a.categories.DeleteTx(tx, c.ID); err != nil {
		return 0, err
	}
	return 1 + int(moved), nil
}

func (a *categoryArchiver) restore(tx *gorm.DB, id uuid.UUID) (int, error) {
	snapshot, err := a.archives.FindCategoryTx(tx, id)
	if err != nil {
		return 0, err
	}
	c := &model.Category{
		ID:          snapshot.ID,
		Name:        snapshot.Name,
		Prefix:      snapshot.Prefix,
		Description: snapshot.Description,
	}
	if err := a.categories.CreateTx(tx, c); err != nil {
		return 0, err
	}
	// Products moved to NO CATEGORY stay there; the reassignment is not
	// reversible once other archives touch the sentinel.
	return 1, a.archives.DeleteCategoryTx(tx, id)
}

func (a *categoryArchiver) listArchived(ctx context.Context) (interface{}, error) {
	return a.archives.ListCategories(ctx)
}

// ── Branch ────────────────────────────────────────────────────────────────

type branchArchiver struct {
	archives repository.ArchiveRepository
	branches repository.BranchRepository
}

func (a *branchArchiver) archive(tx *gorm.DB, id uuid.UUID, stamp model.ArchiveStamp) (int, error) {
	b, err := a.branches.FindByIDTx(tx, id)
	if err != nil {
		return 0, err
	}
	if b.IsArchived {
		return 0, fmt.Errorf("%w: branch already archived", apierror.ErrPrecondition)
	}
	staff, err := a.branches.CountActiveUsersTx(tx, id)
	if err != nil {
		return 0, err
	}
	if staff > 0 {
		return 0, fmt.Errorf("%w: %d active users still assigned to this branch", apierror.ErrPrecondition, staff)
	}
	snapshot := &model.BranchArchive{
		ID:           b.ID,
		Code:         b.Code,
		Name:         b.Name,
		Address:      b.Address,
		Phone:        b.Phone,
		ArchiveStamp: stamp,
	}
	if err := a.archives.SaveTx(tx, snapshot); err != nil {
		return 0, err
	}
	return 1, a.branches.SetArchivedTx(tx, id, true)
}

func (a *branchArchiver) restore(tx *gorm.DB, id uuid.UUID) (int, error) {
	if _, err := a.archives.FindBranchTx(tx, id); err != nil {
		return 0, err
	}
	if err := a.branches.SetArchivedTx(tx, id, false); err != nil {
		return 0, err
	}
	return 1, a.archives.DeleteBranchTx(tx, id)
}

func (a *branchArchiver) listArchived(ctx context.Context) (interface{}, error) {
	return a.archives.ListBranches(ctx)
}

// ── Customer ──────────────────────────────────────────────────────────────

// customerArchiver flips the active flag only. The loyalty ledger keeps its
// rows so a restored customer comes back with their balance intact.
type customerArchiver struct {
	archives  repository.ArchiveRepository
	customers repository.CustomerRepository
}

func (a *customerArchiver) archive(tx *gorm.DB, id uuid.UUID, stamp model.ArchiveStamp) (int, error) {
	c, err := a.customers.FindByIDTx(tx, id)
	if err != nil {
		return 0, err
	}
	if !c.IsActive {
		return 0, fmt.Errorf("%w: customer already archived", apierror.ErrPrecondition)
	}
	snapshot := &model.CustomerArchive{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		CardID:       c.CardID,
		DiscountType: c.DiscountType,
		DiscountID:   c.DiscountID,
		ArchiveStamp: stamp,
	}
	if err := a.archives.SaveTx(tx, snapshot); err != nil {
		return 0, err
	}
	return 1, a.customers.SetActiveTx(tx, id, false)
}

func (a *customerArchiver) restore(tx *gorm.DB, id uuid.UUID) (int, error) {
	if _, err := a.archives.FindCustomerTx(tx, id); err != nil {
		return 0, err
	}
	if err := a.customers.SetActiveTx(tx, id, true); err != nil {
		return 0, err
	}
	return 1, a.archives.DeleteCustomerTx(tx, id)
}

func (a *customerArchiver) listArchived(ctx context.Context) (interface{}, error) {
	return a.archives.ListCustomers(ctx)
}
