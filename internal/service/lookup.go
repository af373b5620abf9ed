package service

import (
	"context"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/model"
	"github.com/Faroffweb/Gst-Trail/internal/repository"

	"github.com/google/uuid"
)

// LookupService handles the units and categories admin tables.
type LookupService interface {
	CreateUnit(ctx context.Context, req dto.CreateLookupRequest) (*dto.LookupResponse, error)
	ListUnits(ctx context.Context) ([]dto.LookupResponse, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, req dto.CreateLookupRequest) (*dto.LookupResponse, error)
	ListCategories(ctx context.Context) ([]dto.LookupResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type lookupService struct {
	repo repository.LookupRepository
}

func NewLookupService(repo repository.LookupRepository) LookupService {
	return &lookupService{repo: repo}
}

func (s *lookupService) CreateUnit(ctx context.Context, req dto.CreateLookupRequest) (*dto.LookupResponse, error) {
	u := &model.Unit{Name: req.Name}
	if err := s.repo.CreateUnit(ctx, u); err != nil {
		return nil, translateDBError(err)
	}
	return &dto.LookupResponse{ID: u.ID.String(), Name: u.Name}, nil
}

func (s *lookupService) ListUnits(ctx context.Context) ([]dto.LookupResponse, error) {
	units, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	out := make([]dto.LookupResponse, 0, len(units))
	for _, u := range units {
		out = append(out, dto.LookupResponse{ID: u.ID.String(), Name: u.Name})
	}
	return out, nil
}

func (s *lookupService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	return translateDBError(s.repo.DeleteUnit(ctx, id))
}

func (s *lookupService) CreateCategory(ctx context.Context, req dto.CreateLookupRequest) (*dto.LookupResponse, error) {
	c := &model.Category{Name: req.Name}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, translateDBError(err)
	}
	return &dto.LookupResponse{ID: c.ID.String(), Name: c.Name}, nil
}

func (s *lookupService) ListCategories(ctx context.Context) ([]dto.LookupResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	out := make([]dto.LookupResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.LookupResponse{ID: c.ID.String(), Name: c.Name})
	}
	return out, nil
}

func (s *lookupService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return translateDBError(s.repo.DeleteCategory(ctx, id))
}
