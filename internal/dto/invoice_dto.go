package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Requests ────────────────────────────────────────────────────────────────

// InvoiceItemInput is one sale line in a create-invoice request. UnitPrice and
// TaxRate are optional: when omitted they are snapshotted from the product.
type InvoiceItemInput struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity"   validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
	TaxRate   *decimal.Decimal `json:"tax_rate"   validate:"omitempty,min=0,max=1"`
}

type CreateInvoiceRequest struct {
	CustomerID  *string            `json:"customer_id" validate:"omitempty,uuid"`
	InvoiceNo   *string            `json:"invoice_no"  validate:"omitempty,max=50"` // allocated from company sequence when absent
	InvoiceDate time.Time          `json:"invoice_date" validate:"required"`
	Notes       *string            `json:"notes"       validate:"omitempty,max=500"`
	Items       []InvoiceItemInput `json:"items"       validate:"required,min=1,dive"`
}

type AddInvoiceItemRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity"   validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
	TaxRate   *decimal.Decimal `json:"tax_rate"   validate:"omitempty,min=0,max=1"`
}

// UpdateInvoiceItemRequest mutates a single sale line. Setting InvoiceID moves
// the item to another invoice; both invoice totals are then recomputed.
type UpdateInvoiceItemRequest struct {
	InvoiceID *string          `json:"invoice_id" validate:"omitempty,uuid"`
	ProductID *string          `json:"product_id" validate:"omitempty,uuid"`
	Quantity  *int             `json:"quantity"   validate:"omitempty,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
	TaxRate   *decimal.Decimal `json:"tax_rate"   validate:"omitempty,min=0,max=1"`
}

type InvoiceFilter struct {
	CustomerID string `form:"customer_id"`
	From       string `form:"from"` // YYYY-MM-DD
	To         string `form:"to"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type InvoiceResponse struct {
	ID           string                `json:"id"`
	CustomerID   *string               `json:"customer_id"`
	CustomerName *string               `json:"customer_name,omitempty"`
	InvoiceNo    string                `json:"invoice_no"`
	InvoiceDate  time.Time             `json:"invoice_date"`
	Notes        *string               `json:"notes"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	Items        []InvoiceItemResponse `json:"items"`
}

type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}
