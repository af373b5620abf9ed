package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an invoice counterparty. Invoices may also be issued with no
// customer at all (guest invoices). A customer with invoices cannot be
// deleted.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Phone     *string
	Email     *string
	Address   *string
	GSTIN     *string `gorm:"column:gstin"`
	IsGuest   bool    `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
