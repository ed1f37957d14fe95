package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/pkg/money"
	"gorm.io/gorm"
)

// GiftCard holds a stored-value balance. The balance is debited only
// when an order is finalized, never when a tender is merely pending.
type GiftCard struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CardNo    string         `gorm:"size:100;unique;not null" json:"card_no"`
	Balance   money.Cents    `gorm:"default:0" json:"balance"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new gift card
func (g *GiftCard) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GiftCard model
func (GiftCard) TableName() string {
	return "gift_cards"
}
