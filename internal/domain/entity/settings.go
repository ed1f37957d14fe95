package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/pkg/money"
	"gorm.io/gorm"
)

// PosSettings holds store-wide configuration the engine reads at run
// time: the flat tax rate and the role discount ceilings. A single row
// exists; config supplies the defaults it is seeded from.
type PosSettings struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Currency string    `gorm:"size:10;default:'USD'" json:"currency"`
	TaxRate  float64   `gorm:"default:0" json:"tax_rate"`

	CashierMaxDiscountPct    float64     `gorm:"default:10" json:"cashier_max_discount_pct"`
	CashierMaxDiscountAmount money.Cents `gorm:"default:2000" json:"cashier_max_discount_amount"`
	ManagerMaxDiscountPct    float64     `gorm:"default:50" json:"manager_max_discount_pct"`
	ManagerMaxDiscountAmount money.Cents `gorm:"default:50000" json:"manager_max_discount_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the settings row
func (s *PosSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PosSettings model
func (PosSettings) TableName() string {
	return "pos_settings"
}
