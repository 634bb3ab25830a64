package service_test

import (
	"context"

	"j5pharmacy/internal/apierror"
	"j5pharmacy/internal/dto"
	"j5pharmacy/internal/model"
	"j5pharmacy/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Services run with a nil *gorm.DB, so every Tx
// method receives a nil tx and operates on the stub's own maps.

// ── Products ──────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	barcodes map[string]bool
	seq      map[uuid.UUID]int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: make(map[uuid.UUID]*model.Product),
		barcodes: make(map[string]bool),
		seq:      make(map[uuid.UUID]int),
	}
}

func (r *stubProductRepo) seed(name, barcode string, price decimal.Decimal) *model.Product {
	p := &model.Product{
		ID:       uuid.New(),
		Barcode:  barcode,
		Name:     name,
		Price:    price,
		Critical: 10,
		IsActive: true,
	}
	r.products[p.ID] = p
	r.barcodes[barcode] = true
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	r.barcodes[p.Barcode] = true
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode && p.IsActive {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) BarcodeExists(_ context.Context, barcode string) (bool, error) {
	return r.barcodes[barcode], nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) CountActiveByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.IsActive && p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) NextBarcodeSeq(_ context.Context, categoryID uuid.UUID) (int, error) {
	r.seq[categoryID]++
	return r.seq[categoryID], nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) SetActiveTx(_ *gorm.DB, id uuid.UUID, active bool) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = active
	}
	return nil
}

func (r *stubProductRepo) ReassignCategoryTx(_ *gorm.DB, from, to uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == from {
			toCopy := to
			p.CategoryID = &toCopy
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	return r.Create(context.Background(), p)
}

func (r *stubProductRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Inventory ─────────────────────────────────────────────────────────────

type invKey struct{ branch, product uuid.UUID }

type stubInventoryRepo struct {
	rows map[invKey]*model.BranchInventory
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{rows: make(map[invKey]*model.BranchInventory)}
}

func (r *stubInventoryRepo) seed(branchID, productID uuid.UUID, stock int) {
	r.rows[invKey{branchID, productID}] = &model.BranchInventory{
		BranchID: branchID, ProductID: productID, Stock: stock, IsActive: true,
	}
}

func (r *stubInventoryRepo) stock(branchID, productID uuid.UUID) int {
	if row, ok := r.rows[invKey{branchID, productID}]; ok {
		return row.Stock
	}
	return -1
}

func (r *stubInventoryRepo) Get(_ context.Context, branchID, productID uuid.UUID) (*model.BranchInventory, error) {
	row, ok := r.rows[invKey{branchID, productID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (r *stubInventoryRepo) Upsert(_ context.Context, row *model.BranchInventory) error {
	r.rows[invKey{row.BranchID, row.ProductID}] = row
	return nil
}

func (r *stubInventoryRepo) ListByBranch(_ context.Context, branchID uuid.UUID) ([]model.BranchInventory, error) {
	var out []model.BranchInventory
	for _, row := range r.rows {
		if row.BranchID == branchID && row.IsActive {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) LowStock(_ context.Context, _ uuid.UUID) ([]model.BranchInventory, error) {
	return nil, nil
}

func (r *stubInventoryRepo) AdjustStockTx(_ *gorm.DB, branchID, productID uuid.UUID, delta int) error {
	row, ok := r.rows[invKey{branchID, productID}]
	if !ok || !row.IsActive || row.Stock+delta < 0 {
		return apierror.ErrInsufficientStock
	}
	row.Stock += delta
	return nil
}

func (r *stubInventoryRepo) ListByProductTx(_ *gorm.DB, productID uuid.UUID) ([]model.BranchInventory, error) {
	var out []model.BranchInventory
	for _, row := range r.rows {
		if row.ProductID == productID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) DeactivateByProductTx(_ *gorm.DB, productID uuid.UUID) error {
	for _, row := range r.rows {
		if row.ProductID == productID {
			row.IsActive = false
		}
	}
	return nil
}

func (r *stubInventoryRepo) DeleteByProductTx(_ *gorm.DB, productID uuid.UUID) error {
	for k, row := range r.rows {
		if row.ProductID == productID {
			delete(r.rows, k)
		}
	}
	return nil
}

func (r *stubInventoryRepo) CreateTx(_ *gorm.DB, row *model.BranchInventory) error {
	r.rows[invKey{row.BranchID, row.ProductID}] = row
	return nil
}

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// ── Star points ───────────────────────────────────────────────────────────

type stubStarPointsRepo struct {
	byCustomer map[uuid.UUID]*model.StarPoints
	ledger     []model.StarPointsTransaction
}

func newStubStarPointsRepo() *stubStarPointsRepo {
	return &stubStarPointsRepo{byCustomer: make(map[uuid.UUID]*model.StarPoints)}
}

func (r *stubStarPointsRepo) seed(customerID uuid.UUID, balance int) *model.StarPoints {
	sp := &model.StarPoints{
		ID: uuid.New(), CustomerID: customerID,
		PointsBalance: balance, TotalPointsEarned: balance,
	}
	r.byCustomer[customerID] = sp
	return sp
}

func (r *stubStarPointsRepo) FindByCustomer(_ context.Context, customerID uuid.UUID) (*model.StarPoints, error) {
	sp, ok := r.byCustomer[customerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sp, nil
}

func (r *stubStarPointsRepo) ListTransactions(_ context.Context, starPointsID uuid.UUID, limit int) ([]model.StarPointsTransaction, error) {
	var out []model.StarPointsTransaction
	for i := len(r.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		if r.ledger[i].StarPointsID == starPointsID {
			out = append(out, r.ledger[i])
		}
	}
	return out, nil
}

func (r *stubStarPointsRepo) FindByCustomerTx(_ *gorm.DB, customerID uuid.UUID) (*model.StarPoints, error) {
	return r.FindByCustomer(context.Background(), customerID)
}

func (r *stubStarPointsRepo) CreateTx(_ *gorm.DB, sp *model.StarPoints) error {
	if sp.ID == uuid.Nil {
		sp.ID = uuid.New()
	}
	r.byCustomer[sp.CustomerID] = sp
	return nil
}

func (r *stubStarPointsRepo) AdjustPointsTx(_ *gorm.DB, starPointsID uuid.UUID, delta int, kind string, refSaleID *uuid.UUID) error {
	var sp *model.StarPoints
	for _, row := range r.byCustomer {
		if row.ID == starPointsID {
			sp = row
			break
		}
	}
	if sp == nil || sp.PointsBalance+delta < 0 {
		return apierror.ErrInsufficientPoints
	}
	sp.PointsBalance += delta
	if kind == model.PointsEarned {
		sp.TotalPointsEarned += delta
	} else {
		sp.TotalPointsRedeemed -= delta
	}
	amount := delta
	if amount < 0 {
		amount = -amount
	}
	r.ledger = append(r.ledger, model.StarPointsTransaction{
		ID: uuid.New(), StarPointsID: starPointsID,
		PointsAmount: amount, TransactionType: kind, ReferenceSaleID: refSaleID,
	})
	return nil
}

var _ repository.StarPointsRepository = (*stubStarPointsRepo)(nil)

// ── Sales ─────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
	seq   int64
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) NextInvoiceSeq(_ *gorm.DB) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubSaleRepo) UpdatePointsEarnedTx(_ *gorm.DB, id uuid.UUID, points int) error {
	if s, ok := r.sales[id]; ok {
		s.PointsEarned = points
	}
	return nil
}

func (r *stubSaleRepo) UpdatePointsRedeemedTx(_ *gorm.DB, id uuid.UUID, points int) error {
	if s, ok := r.sales[id]; ok {
		s.PointsRedeemed = points
	}
	return nil
}

func (r *stubSaleRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	if s, ok := r.sales[id]; ok {
		s.Status = status
	}
	return nil
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Sessions ──────────────────────────────────────────────────────────────

type stubSessionRepo struct {
	pharmacist      map[uuid.UUID]*model.PharmacistSession
	sales           map[uuid.UUID]*model.SalesSession
	sumBySession    map[uuid.UUID]decimal.Decimal
	countBySession  map[uuid.UUID]int64
	reconciliations []model.CashReconciliation
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{
		pharmacist:     make(map[uuid.UUID]*model.PharmacistSession),
		sales:          make(map[uuid.UUID]*model.SalesSession),
		sumBySession:   make(map[uuid.UUID]decimal.Decimal),
		countBySession: make(map[uuid.UUID]int64),
	}
}

// Find methods hand out copies, the same way gorm scans fresh structs:
// callers mutating the result must not change the stored row until a
// Tx method writes it back.
func (r *stubSessionRepo) FindPharmacistSession(_ context.Context, id uuid.UUID) (*model.PharmacistSession, error) {
	ps, ok := r.pharmacist[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ps
	return &cp, nil
}

func (r *stubSessionRepo) FindSalesSession(_ context.Context, id uuid.UUID) (*model.SalesSession, error) {
	ss, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ss
	return &cp, nil
}

func (r *stubSessionRepo) FindOpenByUser(_ context.Context, userID uuid.UUID) (*model.PharmacistSession, *model.SalesSession, error) {
	return r.findOpenByUser(userID)
}

func (r *stubSessionRepo) findOpenByUser(userID uuid.UUID) (*model.PharmacistSession, *model.SalesSession, error) {
	for _, ps := range r.pharmacist {
		ss := r.sales[ps.SalesSessionID]
		if ps.UserID == userID && ss != nil && ss.EndTime == nil {
			pcp, scp := *ps, *ss
			return &pcp, &scp, nil
		}
	}
	return nil, nil, gorm.ErrRecordNotFound
}

func (r *stubSessionRepo) CountSales(_ context.Context, id uuid.UUID) (int64, error) {
	return r.countBySession[id], nil
}

func (r *stubSessionRepo) SumSales(_ context.Context, id uuid.UUID) (decimal.Decimal, error) {
	return r.sumBySession[id], nil
}

func (r *stubSessionRepo) DB() *gorm.DB { return nil }

func (r *stubSessionRepo) LockUserTx(_ *gorm.DB, _ uuid.UUID) error { return nil }

func (r *stubSessionRepo) FindOpenByUserTx(_ *gorm.DB, userID uuid.UUID) (*model.PharmacistSession, *model.SalesSession, error) {
	return r.findOpenByUser(userID)
}

func (r *stubSessionRepo) CreateSalesSessionTx(_ *gorm.DB, s *model.SalesSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *stubSessionRepo) CreatePharmacistSessionTx(_ *gorm.DB, p *model.PharmacistSession) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.pharmacist[p.ID] = &cp
	return nil
}

func (r *stubSessionRepo) SumSalesTx(_ *gorm.DB, id uuid.UUID) (decimal.Decimal, error) {
	return r.sumBySession[id], nil
}

// CloseSalesSessionTx mirrors the conditional UPDATE: closing an
// already-closed session affects zero rows.
func (r *stubSessionRepo) CloseSalesSessionTx(_ *gorm.DB, s *model.SalesSession) error {
	stored, ok := r.sales[s.ID]
	if !ok || stored.EndTime != nil {
		return apierror.ErrSessionNotFound
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *stubSessionRepo) CreateReconciliationTx(_ *gorm.DB, rec *model.CashReconciliation) error {
	r.reconciliations = append(r.reconciliations, *rec)
	return nil
}

var _ repository.SessionRepository = (*stubSessionRepo)(nil)

// ── Categories ────────────────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) seed(name, prefix string) *model.Category {
	c := &model.Category{ID: uuid.New(), Name: name, Prefix: prefix}
	r.categories[c.ID] = c
	return c
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) DB() *gorm.DB { return nil }

func (r *stubCategoryRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Category, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubCategoryRepo) FindByNameTx(_ *gorm.DB, name string) (*model.Category, error) {
	return r.FindByName(context.Background(), name)
}

func (r *stubCategoryRepo) CreateTx(_ *gorm.DB, c *model.Category) error {
	return r.Create(context.Background(), c)
}

func (r *stubCategoryRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── Branches ──────────────────────────────────────────────────────────────

type stubBranchRepo struct {
	branches    map[uuid.UUID]*model.Branch
	activeUsers map[uuid.UUID]int64
}

func newStubBranchRepo() *stubBranchRepo {
	return &stubBranchRepo{
		branches:    make(map[uuid.UUID]*model.Branch),
		activeUsers: make(map[uuid.UUID]int64),
	}
}

func (r *stubBranchRepo) seed(code, name string) *model.Branch {
	b := &model.Branch{ID: uuid.New(), Code: code, Name: name, IsActive: true}
	r.branches[b.ID] = b
	return b
}

func (r *stubBranchRepo) Create(_ context.Context, b *model.Branch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.branches[b.ID] = b
	return nil
}

func (r *stubBranchRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Branch, error) {
	b, ok := r.branches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBranchRepo) FindByCode(_ context.Context, code string) (*model.Branch, error) {
	for _, b := range r.branches {
		if b.Code == code {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBranchRepo) List(_ context.Context, includeArchived bool) ([]model.Branch, error) {
	var out []model.Branch
	for _, b := range r.branches {
		if includeArchived || !b.IsArchived {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBranchRepo) Update(_ context.Context, b *model.Branch) error {
	r.branches[b.ID] = b
	return nil
}

func (r *stubBranchRepo) CountActiveUsers(_ context.Context, branchID uuid.UUID) (int64, error) {
	return r.activeUsers[branchID], nil
}

func (r *stubBranchRepo) DB() *gorm.DB { return nil }

func (r *stubBranchRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Branch, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubBranchRepo) CountActiveUsersTx(_ *gorm.DB, branchID uuid.UUID) (int64, error) {
	return r.activeUsers[branchID], nil
}

func (r *stubBranchRepo) ListActiveTx(_ *gorm.DB) ([]model.Branch, error) {
	var out []model.Branch
	for _, b := range r.branches {
		if b.IsActive && !b.IsArchived {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBranchRepo) SetArchivedTx(_ *gorm.DB, id uuid.UUID, archived bool) error {
	if b, ok := r.branches[id]; ok {
		b.IsArchived = archived
		b.IsActive = !archived
	}
	return nil
}

func (r *stubBranchRepo) CreateTx(_ *gorm.DB, b *model.Branch) error {
	return r.Create(context.Background(), b)
}

var _ repository.BranchRepository = (*stubBranchRepo)(nil)

// ── Customers ─────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) seed(name string) *model.Customer {
	c := &model.Customer{ID: uuid.New(), Name: name, DiscountType: "none", IsActive: true}
	r.customers[c.ID] = c
	return c
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) FindByCardID(_ context.Context, cardID string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.CardID != nil && *c.CardID == cardID && c.IsActive {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) Search(_ context.Context, _ string, _ int) ([]model.Customer, error) {
	return nil, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) DB() *gorm.DB { return nil }

func (r *stubCustomerRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Customer, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubCustomerRepo) SetActiveTx(_ *gorm.DB, id uuid.UUID, active bool) error {
	if c, ok := r.customers[id]; ok {
		c.IsActive = active
	}
	return nil
}

func (r *stubCustomerRepo) CreateTx(_ *gorm.DB, c *model.Customer) error {
	return r.Create(context.Background(), c)
}

func (r *stubCustomerRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── Archives ──────────────────────────────────────────────────────────────

type stubArchiveRepo struct {
	products   map[uuid.UUID]*model.ProductArchive
	categories map[uuid.UUID]*model.CategoryArchive
	branches   map[uuid.UUID]*model.BranchArchive
	customers  map[uuid.UUID]*model.CustomerArchive
	inventory  []model.BranchInventoryArchive
}

func newStubArchiveRepo() *stubArchiveRepo {
	return &stubArchiveRepo{
		products:   make(map[uuid.UUID]*model.ProductArchive),
		categories: make(map[uuid.UUID]*model.CategoryArchive),
		branches:   make(map[uuid.UUID]*model.BranchArchive),
		customers:  make(map[uuid.UUID]*model.CustomerArchive),
	}
}

func (r *stubArchiveRepo) ListProducts(_ context.Context) ([]model.ProductArchive, error) {
	var out []model.ProductArchive
	for _, row := range r.products {
		out = append(out, *row)
	}
	return out, nil
}

func (r *stubArchiveRepo) ListCategories(_ context.Context) ([]model.CategoryArchive, error) {
	var out []model.CategoryArchive
	for _, row := range r.categories {
		out = append(out, *row)
	}
	return out, nil
}

func (r *stubArchiveRepo) ListBranches(_ context.Context) ([]model.BranchArchive, error) {
	var out []model.BranchArchive
	for _, row := range r.branches {
		out = append(out, *row)
	}
	return out, nil
}

func (r *stubArchiveRepo) ListCustomers(_ context.Context) ([]model.CustomerArchive, error) {
	var out []model.CustomerArchive
	for _, row := range r.customers {
		out = append(out, *row)
	}
	return out, nil
}

func (r *stubArchiveRepo) SaveTx(_ *gorm.DB, row interface{}) error {
	switch v := row.(type) {
	case *model.ProductArchive:
		r.products[v.ID] = v
	case *model.CategoryArchive:
		r.categories[v.ID] = v
	case *model.BranchArchive:
		r.branches[v.ID] = v
	case *model.CustomerArchive:
		r.customers[v.ID] = v
	case *model.BranchInventoryArchive:
		r.inventory = append(r.inventory, *v)
	}
	return nil
}

func (r *stubArchiveRepo) FindProductTx(_ *gorm.DB, id uuid.UUID) (*model.ProductArchive, error) {
	row, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (r *stubArchiveRepo) FindCategoryTx(_ *gorm.DB, id uuid.UUID) (*model.CategoryArchive, error) {
	row, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (r *stubArchiveRepo) FindBranchTx(_ *gorm.DB, id uuid.UUID) (*model.BranchArchive, error) {
	row, ok := r.branches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (r *stubArchiveRepo) FindCustomerTx(_ *gorm.DB, id uuid.UUID) (*model.CustomerArchive, error) {
	row, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (r *stubArchiveRepo) ListInventoryByProductTx(_ *gorm.DB, productID uuid.UUID) ([]model.BranchInventoryArchive, error) {
	var out []model.BranchInventoryArchive
	for _, row := range r.inventory {
		if row.ProductID == productID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubArchiveRepo) DeleteProductTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubArchiveRepo) DeleteInventoryByProductTx(_ *gorm.DB, productID uuid.UUID) error {
	var kept []model.BranchInventoryArchive
	for _, row := range r.inventory {
		if row.ProductID != productID {
			kept = append(kept, row)
		}
	}
	r.inventory = kept
	return nil
}

func (r *stubArchiveRepo) DeleteCategoryTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubArchiveRepo) DeleteBranchTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.branches, id)
	return nil
}

func (r *stubArchiveRepo) DeleteCustomerTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

var _ repository.ArchiveRepository = (*stubArchiveRepo)(nil)
