package service

import (
	"context"
	"fmt"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/model"
	"github.com/Faroffweb/Gst-Trail/internal/repository"

	"github.com/google/uuid"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		Name:      req.Name,
		HSNCode:   req.HSNCode,
		UnitPrice: req.UnitPrice,
		TaxRate:   req.TaxRate,
	}

	var err error
	if p.UnitID, err = parseOptionalUUID(req.UnitID); err != nil {
		return nil, fmt.Errorf("%w: invalid unit_id", ErrConstraintViolation)
	}
	if p.CategoryID, err = parseOptionalUUID(req.CategoryID); err != nil {
		return nil, fmt.Errorf("%w: invalid category_id", ErrConstraintViolation)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, translateDBError(err)
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, translateDBError(err)
	}

	resp := &dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}
	for i := range products {
		resp.Products = append(resp.Products, productToResponse(&products[i]))
	}
	return resp, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.HSNCode != nil {
		p.HSNCode = *req.HSNCode
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.TaxRate != nil {
		p.TaxRate = *req.TaxRate
	}
	if req.UnitID != nil {
		if p.UnitID, err = parseOptionalUUID(req.UnitID); err != nil {
			return nil, fmt.Errorf("%w: invalid unit_id", ErrConstraintViolation)
		}
	}
	if req.CategoryID != nil {
		if p.CategoryID, err = parseOptionalUUID(req.CategoryID); err != nil {
			return nil, fmt.Errorf("%w: invalid category_id", ErrConstraintViolation)
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, translateDBError(err)
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	// Products referenced by purchases or invoice items are protected by FK
	// constraints; the violation surfaces as ErrConstraintViolation.
	return translateDBError(s.repo.Delete(ctx, id))
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func productToResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		HSNCode:       p.HSNCode,
		StockQuantity: p.StockQuantity,
		UnitPrice:     p.UnitPrice,
		TaxRate:       p.TaxRate,
	}
	if p.UnitID != nil {
		id := p.UnitID.String()
		resp.UnitID = &id
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}
