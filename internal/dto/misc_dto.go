package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Units & categories ──────────────────────────────────────────────────────

type CreateLookupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=60"`
}

type LookupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ─── Stock movements ─────────────────────────────────────────────────────────

type MovementFilter struct {
	ProductID string `form:"product_id"`
	Type      string `form:"type"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

type DashboardSummary struct {
	ProductCount     int64             `json:"product_count"`
	CustomerCount    int64             `json:"customer_count"`
	MonthSalesTotal  decimal.Decimal   `json:"month_sales_total"`
	MonthPurchaseQty int64             `json:"month_purchase_count"`
	LowStockProducts []ProductResponse `json:"low_stock_products"`
	RecentInvoices   []InvoiceResponse `json:"recent_invoices"`
	GeneratedAt      time.Time         `json:"generated_at"`
}
