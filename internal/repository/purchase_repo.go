package repository

import (
	"context"
	"time"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)

	// In-transaction writes — the stock ledger runs in the same tx.
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	UpdateTx(tx *gorm.DB, p *model.Purchase) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).Preload("Product").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Purchase{})
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.From != "" {
		q = q.Where("purchase_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("purchase_date <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").
		Order("purchase_date DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("purchase_date >= ?", since).Count(&n).Error
	return n, err
}

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) UpdateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Save(p).Error
}

func (r *purchaseRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Delete(&model.Purchase{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *purchaseRepo) DB() *gorm.DB { return r.db }
