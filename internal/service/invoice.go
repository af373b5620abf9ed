package service

import (
	"context"
	"fmt"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/model"
	"github.com/Faroffweb/Gst-Trail/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceService owns the stock-outflow half of the ledger and the invoice
// total rule. Every item mutation recomputes the affected invoice's total as
// a full SUM over its current items inside the same transaction — never an
// incremental delta. The recompute costs one aggregate query but cannot
// drift under concurrent edits or partial failures.
type InvoiceService interface {
	Create(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error)

	// Delete removes the invoice and all its items in one transaction,
	// returning each item's quantity to stock.
	Delete(ctx context.Context, id uuid.UUID) error

	AddItem(ctx context.Context, invoiceID uuid.UUID, req dto.AddInvoiceItemRequest) (*dto.InvoiceResponse, error)
	UpdateItem(ctx context.Context, invoiceID, itemID uuid.UUID, req dto.UpdateInvoiceItemRequest) (*dto.InvoiceResponse, error)
	DeleteItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*dto.InvoiceResponse, error)
}

type invoiceService struct {
	repo      repository.InvoiceRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	company   repository.CompanyRepository
	stock     StockService
	cache     CacheInvalidator // optional, may be nil
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	company repository.CompanyRepository,
	stock StockService,
	cache CacheInvalidator,
) InvoiceService {
	return &invoiceService{
		repo:      repo,
		products:  products,
		customers: customers,
		company:   company,
		stock:     stock,
		cache:     cache,
	}
}

// ─── Create ──────────────────────────────────────────────────────────────────

func (s *invoiceService) Create(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer_id", ErrConstraintViolation)
	}
	if customerID != nil {
		if _, err := s.customers.FindByID(ctx, *customerID); err != nil {
			return nil, translateDBError(err)
		}
	}

	// Resolve products outside the tx; snapshot price and tax rate from the
	// catalog when the request doesn't pin them.
	items := make([]model.InvoiceItem, 0, len(req.Items))
	names := make(map[uuid.UUID]string, len(req.Items))
	for _, in := range req.Items {
		pid, err := uuid.Parse(in.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product_id", ErrConstraintViolation)
		}
		product, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, translateDBError(err)
		}
		names[pid] = product.Name

		item := model.InvoiceItem{
			ProductID: pid,
			Quantity:  in.Quantity,
			UnitPrice: product.UnitPrice,
			TaxRate:   product.TaxRate,
		}
		if in.UnitPrice != nil {
			item.UnitPrice = *in.UnitPrice
		}
		if in.TaxRate != nil {
			item.TaxRate = *in.TaxRate
		}
		items = append(items, item)
	}

	inv := &model.Invoice{
		CustomerID:  customerID,
		InvoiceDate: req.InvoiceDate,
		Notes:       req.Notes,
		Items:       items,
	}
	if req.InvoiceNo != nil && *req.InvoiceNo != "" {
		inv.InvoiceNo = *req.InvoiceNo
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if inv.InvoiceNo == "" {
			no, err := s.company.NextInvoiceNoTx(tx)
			if err != nil {
				return translateDBError(err)
			}
			inv.InvoiceNo = no
		}

		if err := s.repo.CreateTx(tx, inv); err != nil {
			return translateDBError(err)
		}

		// Sale consumes stock. No availability check here: oversell is
		// allowed and simply drives stock negative.
		for i := range inv.Items {
			it := &inv.Items[i]
			reason := fmt.Sprintf("invoice %s", inv.InvoiceNo)
			if err := s.stock.ApplyTx(tx, it.ProductID, -it.Quantity, model.MovementSale, reason, &inv.ID); err != nil {
				return err
			}
		}

		total, err := s.recomputeTotalTx(tx, inv.ID)
		if err != nil {
			return err
		}
		inv.TotalAmount = total
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.invalidate(ctx)

	resp := s.invoiceToResponse(inv)
	for i := range resp.Items {
		if pid, err := uuid.Parse(resp.Items[i].ProductID); err == nil {
			resp.Items[i].ProductName = names[pid]
		}
	}
	return &resp, nil
}

// ─── Reads ───────────────────────────────────────────────────────────────────

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	resp := s.invoiceToResponse(inv)
	return &resp, nil
}

func (s *invoiceService) List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	invoices, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, translateDBError(err)
	}

	resp := &dto.InvoiceListResponse{
		Invoices: make([]dto.InvoiceResponse, 0, len(invoices)),
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}
	for i := range invoices {
		resp.Invoices = append(resp.Invoices, s.invoiceToResponse(&invoices[i]))
	}
	return resp, nil
}

// ─── Delete (cascade + stock restore) ────────────────────────────────────────

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateDBError(err)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Return stock for every item before the rows disappear. Total
		// recomputation is moot: the invoice itself is going away.
		for i := range inv.Items {
			it := &inv.Items[i]
			reason := fmt.Sprintf("invoice %s deleted", inv.InvoiceNo)
			if err := s.stock.ApplyTx(tx, it.ProductID, it.Quantity, model.MovementInvoiceRestore, reason, &inv.ID); err != nil {
				return err
			}
		}
		if err := s.repo.DeleteItemsTx(tx, id); err != nil {
			return translateDBError(err)
		}
		return translateDBError(s.repo.DeleteTx(tx, id))
	})
	if txErr != nil {
		return txErr
	}
	s.invalidate(ctx)
	return nil
}

// ─── Item mutations ──────────────────────────────────────────────────────────

func (s *invoiceService) AddItem(ctx context.Context, invoiceID uuid.UUID, req dto.AddInvoiceItemRequest) (*dto.InvoiceResponse, error) {
	if _, err := s.repo.FindByID(ctx, invoiceID); err != nil {
		return nil, translateDBError(err)
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product_id", ErrConstraintViolation)
	}
	product, err := s.products.FindByID(ctx, pid)
	if err != nil {
		return nil, translateDBError(err)
	}

	item := &model.InvoiceItem{
		InvoiceID: invoiceID,
		ProductID: pid,
		Quantity:  req.Quantity,
		UnitPrice: product.UnitPrice,
		TaxRate:   product.TaxRate,
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.TaxRate != nil {
		item.TaxRate = *req.TaxRate
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateItemTx(tx, item); err != nil {
			return translateDBError(err)
		}
		reason := fmt.Sprintf("item added to invoice %s", invoiceID)
		if err := s.stock.ApplyTx(tx, pid, -req.Quantity, model.MovementSale, reason, &invoiceID); err != nil {
			return err
		}
		_, err := s.recomputeTotalTx(tx, invoiceID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	s.invalidate(ctx)
	return s.GetByID(ctx, invoiceID)
}

// UpdateItem adjusts stock symmetrically: the old line's effect is reversed
// and the new line's applied. A move to another invoice recomputes both
// totals.
func (s *invoiceService) UpdateItem(ctx context.Context, invoiceID, itemID uuid.UUID, req dto.UpdateInvoiceItemRequest) (*dto.InvoiceResponse, error) {
	old, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, translateDBError(err)
	}
	if old.InvoiceID != invoiceID {
		return nil, ErrNotFound
	}

	updated := *old
	updated.Product = nil
	if req.InvoiceID != nil {
		target, err := uuid.Parse(*req.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid invoice_id", ErrConstraintViolation)
		}
		if _, err := s.repo.FindByID(ctx, target); err != nil {
			return nil, translateDBError(err)
		}
		updated.InvoiceID = target
	}
	if req.ProductID != nil {
		pid, err := uuid.Parse(*req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product_id", ErrConstraintViolation)
		}
		updated.ProductID = pid
	}
	if req.Quantity != nil {
		updated.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		updated.UnitPrice = *req.UnitPrice
	}
	if req.TaxRate != nil {
		updated.TaxRate = *req.TaxRate
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateItemTx(tx, &updated); err != nil {
			return translateDBError(err)
		}

		reason := fmt.Sprintf("item %s updated", itemID)
		if updated.ProductID != old.ProductID {
			// Reverse the old product's outflow in full, apply the new one.
			if err := s.stock.ApplyTx(tx, old.ProductID, old.Quantity, model.MovementSaleUpdate, reason, &old.InvoiceID); err != nil {
				return err
			}
			if err := s.stock.ApplyTx(tx, updated.ProductID, -updated.Quantity, model.MovementSaleUpdate, reason, &updated.InvoiceID); err != nil {
				return err
			}
		} else if err := s.stock.ApplyTx(tx, old.ProductID, old.Quantity-updated.Quantity, model.MovementSaleUpdate, reason, &old.InvoiceID); err != nil {
			return err
		}

		if _, err := s.recomputeTotalTx(tx, old.InvoiceID); err != nil {
			return err
		}
		if updated.InvoiceID != old.InvoiceID {
			if _, err := s.recomputeTotalTx(tx, updated.InvoiceID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.invalidate(ctx)
	return s.GetByID(ctx, updated.InvoiceID)
}

func (s *invoiceService) DeleteItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*dto.InvoiceResponse, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, translateDBError(err)
	}
	if item.InvoiceID != invoiceID {
		return nil, ErrNotFound
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItemTx(tx, itemID); err != nil {
			return translateDBError(err)
		}
		// Deleting a sale line returns its stock.
		reason := fmt.Sprintf("item removed from invoice %s", invoiceID)
		if err := s.stock.ApplyTx(tx, item.ProductID, item.Quantity, model.MovementSaleReturn, reason, &invoiceID); err != nil {
			return err
		}
		_, err := s.recomputeTotalTx(tx, invoiceID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	s.invalidate(ctx)
	return s.GetByID(ctx, invoiceID)
}

// ─── Internals ───────────────────────────────────────────────────────────────

// recomputeTotalTx re-derives the invoice total from scratch and writes it
// back. Idempotent: running it twice without intervening writes yields the
// same value.
func (s *invoiceService) recomputeTotalTx(tx *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error) {
	total, err := s.repo.SumItemsTx(tx, invoiceID)
	if err != nil {
		return decimal.Zero, translateDBError(err)
	}
	if err := s.repo.UpdateTotalTx(tx, invoiceID, total); err != nil {
		return decimal.Zero, translateDBError(err)
	}
	return total, nil
}

func (s *invoiceService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *invoiceService) invoiceToResponse(inv *model.Invoice) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		ID:          inv.ID.String(),
		InvoiceNo:   inv.InvoiceNo,
		InvoiceDate: inv.InvoiceDate,
		Notes:       inv.Notes,
		TotalAmount: inv.TotalAmount,
		Items:       make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
	}
	if inv.CustomerID != nil {
		id := inv.CustomerID.String()
		resp.CustomerID = &id
	}
	if inv.Customer != nil {
		resp.CustomerName = &inv.Customer.Name
	}
	for _, it := range inv.Items {
		ir := dto.InvoiceItemResponse{
			ID:        it.ID.String(),
			ProductID: it.ProductID.String(),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxRate:   it.TaxRate,
			LineTotal: it.LineTotal(),
		}
		if it.Product != nil {
			ir.ProductName = it.Product.Name
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
