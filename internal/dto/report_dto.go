package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type filter values for the combined report.
const (
	TxTypeAll      = "all"
	TxTypeSale     = "sale"
	TxTypePurchase = "purchase"
)

// ReportFilter selects combined-report rows. Type must be one of the TxType
// constants; Limit/Offset are ignored by the count and export variants.
type ReportFilter struct {
	Start  time.Time `form:"start" time_format:"2006-01-02"`
	End    time.Time `form:"end"   time_format:"2006-01-02"`
	Type   string    `form:"type,default=all"`
	Limit  int       `form:"limit,default=20" validate:"min=1,max=100"`
	Offset int       `form:"offset,default=0" validate:"min=0"`
}

// TransactionRow is one line of the unified sales+purchases report.
// QuantityChange is negative for sales and positive for purchases.
type TransactionRow struct {
	TransactionDate time.Time       `json:"transaction_date" gorm:"column:transaction_date"`
	TransactionType string          `json:"transaction_type" gorm:"column:transaction_type"`
	ProductName     string          `json:"product_name"     gorm:"column:product_name"`
	HSNCode         string          `json:"hsn_code"         gorm:"column:hsn_code"`
	QuantityChange  int             `json:"quantity_change"  gorm:"column:quantity_change"`
	UnitPrice       decimal.Decimal `json:"unit_price"       gorm:"column:unit_price"`
	Amount          decimal.Decimal `json:"amount"           gorm:"column:amount"`
	Reference       string          `json:"reference"        gorm:"column:reference"`
}

type ReportPageResponse struct {
	Rows   []TransactionRow `json:"rows"`
	Total  int64            `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}
