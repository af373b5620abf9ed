package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement types recorded by the stock ledger.
const (
	MovementPurchase       = "purchase"
	MovementPurchaseUpdate = "purchase_update"
	MovementPurchaseDelete = "purchase_delete"
	MovementSale           = "sale"
	MovementSaleUpdate     = "sale_update"
	MovementSaleReturn     = "sale_return"
	MovementInvoiceRestore = "invoice_delete_restore"
	MovementManualAdjust   = "manual_adjust"
)

// StockMovement is an audit row written for every stock adjustment.
// Quantity is signed: positive = inflow, negative = outflow.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	ReferenceID *uuid.UUID `gorm:"type:uuid"` // purchase or invoice id, when applicable
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
