package dto

type UpdateCompanyRequest struct {
	BusinessName  string `json:"business_name"  validate:"required,min=2,max=160"`
	Address       string `json:"address"        validate:"max=300"`
	GSTIN         string `json:"gstin"          validate:"omitempty,len=15"`
	StateCode     string `json:"state_code"     validate:"omitempty,max=4"`
	Phone         string `json:"phone"          validate:"omitempty,max=20"`
	Email         string `json:"email"          validate:"omitempty,email"`
	InvoicePrefix string `json:"invoice_prefix" validate:"omitempty,max=10"`
}

type CompanyResponse struct {
	BusinessName  string `json:"business_name"`
	Address       string `json:"address"`
	GSTIN         string `json:"gstin"`
	StateCode     string `json:"state_code"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	InvoicePrefix string `json:"invoice_prefix"`
	NextInvoiceNo int    `json:"next_invoice_no"`
}
