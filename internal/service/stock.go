package service

import (
	"context"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/model"
	"github.com/Faroffweb/Gst-Trail/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockService is the single entry point for every stock mutation. Both the
// purchase path and the sale path go through ApplyTx, so the ledger invariant
// (stock == Σ purchases − Σ sale items) is enforced in exactly one place.
//
// ApplyTx deliberately performs NO availability check: a sale may drive stock
// negative. Only the guarded deletes (purchase safe-delete) check the
// would-be stock first. Changing that asymmetry is a product decision, not a
// bug fix.
type StockService interface {
	// ApplyTx adjusts the product's stock by delta (signed) and records an
	// audit movement, all inside the caller's transaction.
	ApplyTx(tx *gorm.DB, productID uuid.UUID, delta int, movType, reason string, refID *uuid.UUID) error

	// AdjustManual applies an operator stock correction in its own
	// transaction. Unlike sales, manual corrections may not drive stock
	// negative.
	AdjustManual(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)

	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
}

type stockService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

func NewStockService(products repository.ProductRepository, movements repository.StockMovementRepository) StockService {
	return &stockService{products: products, movements: movements}
}

func (s *stockService) ApplyTx(tx *gorm.DB, productID uuid.UUID, delta int, movType, reason string, refID *uuid.UUID) error {
	if delta == 0 {
		return nil
	}

	// Read inside the tx so StockBefore reflects any earlier adjustment in
	// the same transaction. The row lock taken by AdjustStockTx serializes
	// concurrent mutations against the same product.
	before, err := s.products.FindByIDTx(tx, productID)
	if err != nil {
		return translateDBError(err)
	}

	if err := s.products.AdjustStockTx(tx, productID, delta); err != nil {
		return translateDBError(err)
	}

	mov := &model.StockMovement{
		ProductID:   productID,
		Type:        movType,
		Quantity:    delta,
		StockBefore: before.StockQuantity,
		StockAfter:  before.StockQuantity + delta,
		Reason:      reason,
		ReferenceID: refID,
	}
	return translateDBError(s.movements.CreateTx(tx, mov))
}

func (s *stockService) AdjustManual(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, translateDBError(err)
	}

	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		current, err := s.products.FindByIDTx(tx, productID)
		if err != nil {
			return translateDBError(err)
		}
		if current.StockQuantity+req.Delta < 0 {
			return ErrWouldViolateInvariant
		}
		return s.ApplyTx(tx, productID, req.Delta, model.MovementManualAdjust, req.Reason, nil)
	})
	if txErr != nil {
		return nil, txErr
	}

	p.StockQuantity += req.Delta
	resp := productToResponse(p)
	return &resp, nil
}

func (s *stockService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, translateDBError(err)
	}

	resp := &dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	for _, m := range movements {
		mr := dto.MovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt,
		}
		if m.Product != nil {
			mr.ProductName = m.Product.Name
		}
		resp.Movements = append(resp.Movements, mr)
	}
	return resp, nil
}
