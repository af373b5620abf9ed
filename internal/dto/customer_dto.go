package dto

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,min=2,max=120"`
	Phone   *string `json:"phone"   validate:"omitempty,max=20"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	GSTIN   *string `json:"gstin"   validate:"omitempty,len=15"`
	IsGuest bool    `json:"is_guest"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=2,max=120"`
	Phone   *string `json:"phone"   validate:"omitempty,max=20"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	GSTIN   *string `json:"gstin"   validate:"omitempty,len=15"`
	IsGuest *bool   `json:"is_guest"`
}

type CustomerFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type CustomerResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin"`
	IsGuest bool    `json:"is_guest"`
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}
