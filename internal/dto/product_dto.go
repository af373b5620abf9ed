package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name       string          `json:"name"        validate:"required,min=2,max=120"`
	HSNCode    string          `json:"hsn_code"    validate:"max=10"`
	UnitPrice  decimal.Decimal `json:"unit_price"  validate:"min=0"`
	TaxRate    decimal.Decimal `json:"tax_rate"    validate:"min=0,max=1"`
	UnitID     *string         `json:"unit_id"     validate:"omitempty,uuid"`
	CategoryID *string         `json:"category_id" validate:"omitempty,uuid"`
}

type UpdateProductRequest struct {
	Name       *string          `json:"name"        validate:"omitempty,min=2,max=120"`
	HSNCode    *string          `json:"hsn_code"    validate:"omitempty,max=10"`
	UnitPrice  *decimal.Decimal `json:"unit_price"  validate:"omitempty,min=0"`
	TaxRate    *decimal.Decimal `json:"tax_rate"    validate:"omitempty,min=0,max=1"`
	UnitID     *string          `json:"unit_id"     validate:"omitempty,uuid"`
	CategoryID *string          `json:"category_id" validate:"omitempty,uuid"`
}

// AdjustStockRequest applies a signed manual correction to on-hand stock.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3,max=200"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	HSNCode    string `form:"hsn_code"`
	CategoryID string `form:"category_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	HSNCode       string          `json:"hsn_code"`
	StockQuantity int             `json:"stock_quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	UnitID        *string         `json:"unit_id"`
	CategoryID    *string         `json:"category_id"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}
