package service

import (
	"context"
	"fmt"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/model"
	"github.com/Faroffweb/Gst-Trail/internal/repository"

	"github.com/google/uuid"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		GSTIN:   req.GSTIN,
		IsGuest: req.IsGuest,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, translateDBError(err)
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, translateDBError(err)
	}

	resp := &dto.CustomerListResponse{
		Customers: make([]dto.CustomerResponse, 0, len(customers)),
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	for i := range customers {
		resp.Customers = append(resp.Customers, customerToResponse(&customers[i]))
	}
	return resp, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.GSTIN != nil {
		c.GSTIN = req.GSTIN
	}
	if req.IsGuest != nil {
		c.IsGuest = *req.IsGuest
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, translateDBError(err)
	}
	resp := customerToResponse(c)
	return &resp, nil
}

// Delete enforces the restrict rule: a customer with invoices cannot be
// removed. Their invoices keep history that deletion would orphan.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.CountInvoices(ctx, id)
	if err != nil {
		return translateDBError(err)
	}
	if n > 0 {
		return fmt.Errorf("%w: customer has %d invoices", ErrConstraintViolation, n)
	}
	return translateDBError(s.repo.Delete(ctx, id))
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		GSTIN:   c.GSTIN,
		IsGuest: c.IsGuest,
	}
}
