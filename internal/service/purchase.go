package service

import (
	"context"
	"fmt"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/model"
	"github.com/Faroffweb/Gst-Trail/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseService owns the stock-inflow half of the ledger. Every mutation
// runs the write and its stock adjustment in one transaction, so a reader
// never observes a product whose stock lags a committed purchase.
type PurchaseService interface {
	Create(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	List(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error)

	// DeleteSafely refuses to delete when doing so would drive the product's
	// stock negative (the inflow has already been sold on). The caller must
	// adjust sales first.
	DeleteSafely(ctx context.Context, id uuid.UUID) error
}

type purchaseService struct {
	repo     repository.PurchaseRepository
	products repository.ProductRepository
	stock    StockService
	cache    CacheInvalidator // optional, may be nil
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	products repository.ProductRepository,
	stock StockService,
	cache CacheInvalidator,
) PurchaseService {
	return &purchaseService{repo: repo, products: products, stock: stock, cache: cache}
}

func (s *purchaseService) Create(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product_id", ErrConstraintViolation)
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, translateDBError(err)
	}

	purchase := &model.Purchase{
		ProductID:    productID,
		Quantity:     req.Quantity,
		PurchaseDate: req.PurchaseDate,
		RefNo:        req.RefNo,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, purchase); err != nil {
			return translateDBError(err)
		}
		reason := fmt.Sprintf("purchase of %d × %s", req.Quantity, product.Name)
		return s.stock.ApplyTx(tx, productID, req.Quantity, model.MovementPurchase, reason, &purchase.ID)
	})
	if txErr != nil {
		return nil, txErr
	}
	s.invalidate(ctx)

	resp := purchaseToResponse(purchase)
	resp.ProductName = product.Name
	return &resp, nil
}

func (s *purchaseService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	resp := purchaseToResponse(p)
	return &resp, nil
}

func (s *purchaseService) List(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	purchases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, translateDBError(err)
	}

	resp := &dto.PurchaseListResponse{
		Purchases: make([]dto.PurchaseResponse, 0, len(purchases)),
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	for i := range purchases {
		resp.Purchases = append(resp.Purchases, purchaseToResponse(&purchases[i]))
	}
	return resp, nil
}

// Update adjusts stock by the delta between old and new quantity; when the
// product reference changes, the old product's inflow is reversed in full and
// the new product receives the new quantity.
func (s *purchaseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	old, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}

	updated := *old
	updated.Product = nil
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
	if req.PurchaseDate != nil {
		updated.PurchaseDate = *req.PurchaseDate
	}
	if req.RefNo != nil {
		updated.RefNo = req.RefNo
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, &updated); err != nil {
			return translateDBError(err)
		}

		reason := fmt.Sprintf("purchase %s updated", id)
		if updated.ProductID != old.ProductID {
			if err := s.stock.ApplyTx(tx, old.ProductID, -old.Quantity, model.MovementPurchaseUpdate, reason, &old.ID); err != nil {
				return err
			}
			return s.stock.ApplyTx(tx, updated.ProductID, updated.Quantity, model.MovementPurchaseUpdate, reason, &old.ID)
		}
		return s.stock.ApplyTx(tx, old.ProductID, updated.Quantity-old.Quantity, model.MovementPurchaseUpdate, reason, &old.ID)
	})
	if txErr != nil {
		return nil, txErr
	}
	s.invalidate(ctx)

	resp := purchaseToResponse(&updated)
	return &resp, nil
}

func (s *purchaseService) DeleteSafely(ctx context.Context, id uuid.UUID) error {
	purchase, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translateDBError(err)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Re-read inside the tx: the guard must see stock as of this
		// transaction, not the earlier unlocked read.
		product, err := s.products.FindByIDTx(tx, purchase.ProductID)
		if err != nil {
			return translateDBError(err)
		}
		if product.StockQuantity-purchase.Quantity < 0 {
			return fmt.Errorf("%w: deleting this purchase would leave stock at %d; adjust sales first",
				ErrWouldViolateInvariant, product.StockQuantity-purchase.Quantity)
		}

		if err := s.repo.DeleteTx(tx, id); err != nil {
			return translateDBError(err)
		}
		reason := fmt.Sprintf("purchase %s deleted", id)
		return s.stock.ApplyTx(tx, purchase.ProductID, -purchase.Quantity, model.MovementPurchaseDelete, reason, &purchase.ID)
	})
	if txErr != nil {
		return txErr
	}
	s.invalidate(ctx)
	return nil
}

func (s *purchaseService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func purchaseToResponse(p *model.Purchase) dto.PurchaseResponse {
	resp := dto.PurchaseResponse{
		ID:           p.ID.String(),
		ProductID:    p.ProductID.String(),
		Quantity:     p.Quantity,
		PurchaseDate: p.PurchaseDate,
		RefNo:        p.RefNo,
	}
	if p.Product != nil {
		resp.ProductName = p.Product.Name
	}
	return resp
}
