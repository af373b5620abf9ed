package model

import (
	"time"

	"github.com/google/uuid"
)

// Purchase is a stock inflow record. Creating one increments the product's
// stock; deleting one is guarded so stock can never go negative.
type Purchase struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity     int       `gorm:"not null"` // > 0, enforced by check constraint
	PurchaseDate time.Time `gorm:"not null;index"`
	RefNo        *string   `gorm:"column:ref_no"` // supplier bill / challan number
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
