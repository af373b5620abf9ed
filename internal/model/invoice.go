package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is a GST sales invoice. TotalAmount is derived: it always equals
// the sum over Items of quantity × unit_price × (1 + tax_rate), recomputed
// in full inside every transaction that touches the items.
type Invoice struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"` // nil ⇒ guest invoice
	InvoiceNo   string     `gorm:"uniqueIndex;not null"`
	InvoiceDate time.Time  `gorm:"not null;index"`
	Notes       *string
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Customer *Customer     `gorm:"foreignKey:CustomerID"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID"`
}

// InvoiceItem is a sale line. UnitPrice and TaxRate are snapshotted from the
// product at sale time so later catalog edits never change issued invoices.
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"` // > 0, enforced by check constraint
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"` // pre-tax
	TaxRate   decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// LineTotal returns quantity × unit_price × (1 + tax_rate).
func (it InvoiceItem) LineTotal() decimal.Decimal {
	qty := decimal.NewFromInt(int64(it.Quantity))
	return qty.Mul(it.UnitPrice).Mul(decimal.NewFromInt(1).Add(it.TaxRate))
}
