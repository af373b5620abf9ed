package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx executes the
// transaction body directly (unit test mode).

// ── ProductRepository ────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for _, existing := range r.products {
		if existing.Name == p.Name {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) FindLowStock(_ context.Context, threshold int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.StockQuantity <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ── StockMovementRepository ──────────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func newStubMovementRepo() *stubMovementRepo { return &stubMovementRepo{} }

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if filter.ProductID != "" && m.ProductID.String() != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

// ── PurchaseRepository ───────────────────────────────────────────────────────

type stubPurchaseRepo struct {
	purchases map[uuid.UUID]*model.Purchase
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, _ dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	out := make([]model.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, p := range r.purchases {
		if !p.PurchaseDate.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *stubPurchaseRepo) UpdateTx(_ *gorm.DB, p *model.Purchase) error {
	if _, ok := r.purchases[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *stubPurchaseRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.purchases[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.purchases, id)
	return nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

// ── InvoiceRepository ────────────────────────────────────────────────────────

type stubInvoiceRepo struct {
	invoices map[uuid.UUID]*model.Invoice
	items    map[uuid.UUID]*model.InvoiceItem
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{
		invoices: make(map[uuid.UUID]*model.Invoice),
		items:    make(map[uuid.UUID]*model.InvoiceItem),
	}
}

func (r *stubInvoiceRepo) itemsOf(invoiceID uuid.UUID) []model.InvoiceItem {
	var out []model.InvoiceItem
	for _, it := range r.items {
		if it.InvoiceID == invoiceID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	cp.Items = r.itemsOf(id)
	return &cp, nil
}

func (r *stubInvoiceRepo) FindItemByID(_ context.Context, itemID uuid.UUID) (*model.InvoiceItem, error) {
	it, ok := r.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *stubInvoiceRepo) List(_ context.Context, _ dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	out := make([]model.Invoice, 0, len(r.invoices))
	for id, inv := range r.invoices {
		cp := *inv
		cp.Items = r.itemsOf(id)
		out = append(out, cp)
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) Recent(_ context.Context, limit int) ([]model.Invoice, error) {
	out := make([]model.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubInvoiceRepo) SumTotalsSince(_ context.Context, since time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range r.invoices {
		if !inv.InvoiceDate.Before(since) {
			total = total.Add(inv.TotalAmount)
		}
	}
	return total, nil
}

func (r *stubInvoiceRepo) CreateTx(_ *gorm.DB, inv *model.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	for _, existing := range r.invoices {
		if existing.InvoiceNo == inv.InvoiceNo {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	for i := range inv.Items {
		it := &inv.Items[i]
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		it.InvoiceID = inv.ID
		cp := *it
		r.items[it.ID] = &cp
	}
	cp := *inv
	cp.Items = nil
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *stubInvoiceRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.invoices[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.invoices, id)
	return nil
}

func (r *stubInvoiceRepo) DeleteItemsTx(_ *gorm.DB, invoiceID uuid.UUID) error {
	for id, it := range r.items {
		if it.InvoiceID == invoiceID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *stubInvoiceRepo) CreateItemTx(_ *gorm.DB, item *model.InvoiceItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *stubInvoiceRepo) UpdateItemTx(_ *gorm.DB, item *model.InvoiceItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *stubInvoiceRepo) DeleteItemTx(_ *gorm.DB, itemID uuid.UUID) error {
	if _, ok := r.items[itemID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *stubInvoiceRepo) SumItemsTx(_ *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range r.items {
		if it.InvoiceID == invoiceID {
			total = total.Add(it.LineTotal())
		}
	}
	return total, nil
}

func (r *stubInvoiceRepo) UpdateTotalTx(_ *gorm.DB, invoiceID uuid.UUID, total decimal.Decimal) error {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.TotalAmount = total
	return nil
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

// ── CustomerRepository ───────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers   map[uuid.UUID]*model.Customer
	invoiceRefs map[uuid.UUID]int64
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{
		customers:   make(map[uuid.UUID]*model.Customer),
		invoiceRefs: make(map[uuid.UUID]int64),
	}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for _, existing := range r.customers {
		if existing.Name == c.Name {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) List(_ context.Context, _ dto.CustomerFilter) ([]model.Customer, int64, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	if _, ok := r.customers[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.customers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

func (r *stubCustomerRepo) CountInvoices(_ context.Context, id uuid.UUID) (int64, error) {
	return r.invoiceRefs[id], nil
}

// ── CompanyRepository ────────────────────────────────────────────────────────

type stubCompanyRepo struct {
	profile *model.CompanyProfile
}

func newStubCompanyRepo() *stubCompanyRepo { return &stubCompanyRepo{} }

func (r *stubCompanyRepo) Get(_ context.Context) (*model.CompanyProfile, error) {
	if r.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.profile
	return &cp, nil
}

func (r *stubCompanyRepo) Save(_ context.Context, p *model.CompanyProfile) error {
	cp := *p
	r.profile = &cp
	return nil
}

func (r *stubCompanyRepo) NextInvoiceNoTx(_ *gorm.DB) (string, error) {
	if r.profile == nil {
		r.profile = &model.CompanyProfile{
			ID:            model.CompanyProfileID,
			InvoicePrefix: "INV",
			NextInvoiceNo: 1,
		}
	}
	no := fmt.Sprintf("%s-%05d", r.profile.InvoicePrefix, r.profile.NextInvoiceNo)
	r.profile.NextInvoiceNo++
	return no, nil
}

// ── Wired fixture ────────────────────────────────────────────────────────────

type testEnv struct {
	products  *stubProductRepo
	movements *stubMovementRepo
	purchases *stubPurchaseRepo
	invoices  *stubInvoiceRepo
	customers *stubCustomerRepo
	company   *stubCompanyRepo

	stock       StockService
	purchaseSvc PurchaseService
	invoiceSvc  InvoiceService
	customerSvc CustomerService
	companySvc  CompanyService
}

func newTestEnv() *testEnv {
	e := &testEnv{
		products:  newStubProductRepo(),
		movements: newStubMovementRepo(),
		purchases: newStubPurchaseRepo(),
		invoices:  newStubInvoiceRepo(),
		customers: newStubCustomerRepo(),
		company:   newStubCompanyRepo(),
	}
	e.stock = NewStockService(e.products, e.movements)
	e.purchaseSvc = NewPurchaseService(e.purchases, e.products, e.stock, nil)
	e.invoiceSvc = NewInvoiceService(e.invoices, e.products, e.customers, e.company, e.stock, nil)
	e.customerSvc = NewCustomerService(e.customers)
	e.companySvc = NewCompanyService(e.company)
	return e
}

func (e *testEnv) seedProduct(name string, stock int, price, taxRate string) uuid.UUID {
	p := &model.Product{
		ID:            uuid.New(),
		Name:          name,
		HSNCode:       "9404",
		StockQuantity: stock,
		UnitPrice:     decimal.RequireFromString(price),
		TaxRate:       decimal.RequireFromString(taxRate),
	}
	e.products.products[p.ID] = p
	return p.ID
}

func (e *testEnv) stockOf(id uuid.UUID) int {
	return e.products.products[id].StockQuantity
}

// ── ReportRepository ─────────────────────────────────────────────────────────

type stubReportRepo struct {
	rows []dto.TransactionRow
}

func (r *stubReportRepo) filtered(filter dto.ReportFilter) []dto.TransactionRow {
	var out []dto.TransactionRow
	for _, row := range r.rows {
		if filter.Type != dto.TxTypeAll && row.TransactionType != filter.Type {
			continue
		}
		if row.TransactionDate.Before(filter.Start) || row.TransactionDate.After(filter.End) {
			continue
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out
}

func (r *stubReportRepo) Page(_ context.Context, filter dto.ReportFilter) ([]dto.TransactionRow, error) {
	rows := r.filtered(filter)
	if filter.Offset >= len(rows) {
		return nil, nil
	}
	rows = rows[filter.Offset:]
	if len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}
	return rows, nil
}

func (r *stubReportRepo) Count(_ context.Context, filter dto.ReportFilter) (int64, error) {
	return int64(len(r.filtered(filter))), nil
}

func (r *stubReportRepo) Export(_ context.Context, filter dto.ReportFilter) ([]dto.TransactionRow, error) {
	return r.filtered(filter), nil
}
