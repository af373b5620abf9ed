package repository

import (
	"context"

	"github.com/Faroffweb/Gst-Trail/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LookupRepository serves the two small admin lookup tables (units and
// categories) through one generic-free contract.
type LookupRepository interface {
	CreateUnit(ctx context.Context, u *model.Unit) error
	ListUnits(ctx context.Context) ([]model.Unit, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, c *model.Category) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type lookupRepo struct{ db *gorm.DB }

func NewLookupRepository(db *gorm.DB) LookupRepository { return &lookupRepo{db: db} }

func (r *lookupRepo) CreateUnit(ctx context.Context, u *model.Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *lookupRepo) ListUnits(ctx context.Context) ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.WithContext(ctx).Order("name ASC").Find(&units).Error
	return units, err
}

func (r *lookupRepo) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Unit{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *lookupRepo) CreateCategory(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *lookupRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *lookupRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
