package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable good. StockQuantity is derived state maintained by
// the stock ledger: sum of purchase quantities minus sum of invoice item
// quantities for this product. It is never written directly outside the
// ledger service.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"uniqueIndex;not null"`
	HSNCode       string    `gorm:"column:hsn_code"`
	StockQuantity int       `gorm:"not null;default:0"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// TaxRate is a fraction in [0,1], e.g. 0.18 for 18% GST.
	TaxRate    decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`
	UnitID     *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Unit     *Unit     `gorm:"foreignKey:UnitID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
}
