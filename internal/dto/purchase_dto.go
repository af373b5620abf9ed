package dto

import "time"

type CreatePurchaseRequest struct {
	ProductID    string    `json:"product_id"    validate:"required,uuid"`
	Quantity     int       `json:"quantity"      validate:"required,gt=0"`
	PurchaseDate time.Time `json:"purchase_date" validate:"required"`
	RefNo        *string   `json:"ref_no"        validate:"omitempty,max=50"`
}

type UpdatePurchaseRequest struct {
	ProductID    *string    `json:"product_id"    validate:"omitempty,uuid"`
	Quantity     *int       `json:"quantity"      validate:"omitempty,gt=0"`
	PurchaseDate *time.Time `json:"purchase_date"`
	RefNo        *string    `json:"ref_no"        validate:"omitempty,max=50"`
}

type PurchaseFilter struct {
	ProductID string `form:"product_id"`
	From      string `form:"from"` // YYYY-MM-DD
	To        string `form:"to"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type PurchaseResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	Quantity     int       `json:"quantity"`
	PurchaseDate time.Time `json:"purchase_date"`
	RefNo        *string   `json:"ref_no"`
}

type PurchaseListResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}
