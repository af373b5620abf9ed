package service

import (
	"context"
	"errors"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/model"
	"github.com/Faroffweb/Gst-Trail/internal/repository"

	"gorm.io/gorm"
)

// CompanyService manages the singleton company profile. Get seeds a default
// row on first read so the rest of the system can assume the profile exists.
type CompanyService interface {
	Get(ctx context.Context) (*dto.CompanyResponse, error)
	Update(ctx context.Context, req dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
}

type companyService struct {
	repo repository.CompanyRepository
}

func NewCompanyService(repo repository.CompanyRepository) CompanyService {
	return &companyService{repo: repo}
}

func (s *companyService) Get(ctx context.Context) (*dto.CompanyResponse, error) {
	p, err := s.repo.Get(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound) {
		p = &model.CompanyProfile{
			ID:            model.CompanyProfileID,
			BusinessName:  "My Business",
			InvoicePrefix: "INV",
			NextInvoiceNo: 1,
		}
		if err := s.repo.Save(ctx, p); err != nil {
			return nil, translateDBError(err)
		}
	} else if err != nil {
		return nil, translateDBError(err)
	}
	return companyToResponse(p), nil
}

func (s *companyService) Update(ctx context.Context, req dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	p, err := s.repo.Get(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, ErrNotFound) {
		return nil, translateDBError(err)
	}
	if p == nil || err != nil {
		p = &model.CompanyProfile{ID: model.CompanyProfileID, NextInvoiceNo: 1}
	}

	p.BusinessName = req.BusinessName
	p.Address = req.Address
	p.GSTIN = req.GSTIN
	p.StateCode = req.StateCode
	p.Phone = req.Phone
	p.Email = req.Email
	if req.InvoicePrefix != "" {
		p.InvoicePrefix = req.InvoicePrefix
	} else if p.InvoicePrefix == "" {
		p.InvoicePrefix = "INV"
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, translateDBError(err)
	}
	return companyToResponse(p), nil
}

func companyToResponse(p *model.CompanyProfile) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		BusinessName:  p.BusinessName,
		Address:       p.Address,
		GSTIN:         p.GSTIN,
		StateCode:     p.StateCode,
		Phone:         p.Phone,
		Email:         p.Email,
		InvoicePrefix: p.InvoicePrefix,
		NextInvoiceNo: p.NextInvoiceNo,
	}
}
