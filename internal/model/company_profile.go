package model

import (
	"time"

	"github.com/google/uuid"
)

// CompanyProfileID is the fixed primary key of the single profile row.
// Exactly one company is ever expected, so the profile is modelled as a
// well-known singleton row rather than a general table.
var CompanyProfileID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// CompanyProfile holds the issuing business's identity printed on invoices
// and the invoice numbering sequence.
type CompanyProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessName  string    `gorm:"not null"`
	Address       string
	GSTIN         string `gorm:"column:gstin"`
	StateCode     string
	Phone         string
	Email         string
	InvoicePrefix string `gorm:"not null;default:'INV'"`
	NextInvoiceNo int    `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (CompanyProfile) TableName() string { return "company_profile" }
