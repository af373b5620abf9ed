package repository

import (
	"context"
	"time"

	"github.com/Faroffweb/Gst-Trail/internal/dto"
	"github.com/Faroffweb/Gst-Trail/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindItemByID(ctx context.Context, itemID uuid.UUID) (*model.InvoiceItem, error)
	List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error)
	Recent(ctx context.Context, limit int) ([]model.Invoice, error)
	SumTotalsSince(ctx context.Context, since time.Time) (decimal.Decimal, error)

	// In-transaction writes — stock ledger and total recompute share the tx.
	CreateTx(tx *gorm.DB, inv *model.Invoice) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DeleteItemsTx(tx *gorm.DB, invoiceID uuid.UUID) error
	CreateItemTx(tx *gorm.DB, item *model.InvoiceItem) error
	UpdateItemTx(tx *gorm.DB, item *model.InvoiceItem) error
	DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error

	// SumItemsTx computes Σ quantity × unit_price × (1 + tax_rate) over the
	// invoice's current items. Always a full SUM, never an incremental delta.
	SumItemsTx(tx *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error)
	UpdateTotalTx(tx *gorm.DB, invoiceID uuid.UUID, total decimal.Decimal) error

	DB() *gorm.DB
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *invoiceRepo) FindItemByID(ctx context.Context, itemID uuid.UUID) (*model.InvoiceItem, error) {
	var item model.InvoiceItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	return &item, err
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.From != "" {
		q = q.Where("invoice_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("invoice_date <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").Preload("Items").
		Order("invoice_date DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepo) Recent(ctx context.Context, limit int) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).Preload("Customer").
		Order("created_at DESC").Limit(limit).Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) SumTotalsSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("invoice_date >= ?", since).
		Select("SUM(total_amount)").Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *invoiceRepo) CreateTx(tx *gorm.DB, inv *model.Invoice) error {
	return tx.Create(inv).Error
}

func (r *invoiceRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Delete(&model.Invoice{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *invoiceRepo) DeleteItemsTx(tx *gorm.DB, invoiceID uuid.UUID) error {
	return tx.Delete(&model.InvoiceItem{}, "invoice_id = ?", invoiceID).Error
}

func (r *invoiceRepo) CreateItemTx(tx *gorm.DB, item *model.InvoiceItem) error {
	return tx.Create(item).Error
}

func (r *invoiceRepo) UpdateItemTx(tx *gorm.DB, item *model.InvoiceItem) error {
	return tx.Save(item).Error
}

func (r *invoiceRepo) DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	res := tx.Delete(&model.InvoiceItem{}, "id = ?", itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *invoiceRepo) SumItemsTx(tx *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := tx.Model(&model.InvoiceItem{}).
		Where("invoice_id = ?", invoiceID).
		Select("SUM(quantity * unit_price * (1 + tax_rate))").
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *invoiceRepo) UpdateTotalTx(tx *gorm.DB, invoiceID uuid.UUID, total decimal.Decimal) error {
	return tx.Model(&model.Invoice{}).Where("id = ?", invoiceID).
		Update("total_amount", total).Error
}

func (r *invoiceRepo) DB() *gorm.DB { return r.db }
