package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/money"
	"gorm.io/gorm"
)

// Shift is one clock-in-to-clock-out session on a terminal by one
// user. Once closed a shift is terminal and immutable; reports are
// pure reads of its data.
type Shift struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TerminalID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"terminal_id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Status         enum.ShiftStatus `gorm:"default:0" json:"status"`
	StartTime      time.Time        `gorm:"not null" json:"start_time"`
	EndTime        *time.Time       `json:"end_time,omitempty"`
	OpeningBalance money.Cents      `gorm:"default:0" json:"opening_balance"`
	ClosingBalance *money.Cents     `json:"closing_balance,omitempty"`
	ExpectedCash   *money.Cents     `json:"expected_cash,omitempty"`
	Variance       *money.Cents     `json:"variance,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relationships
	Orders       []Order           `gorm:"foreignKey:ShiftID" json:"orders,omitempty"`
	Transactions []CashTransaction `gorm:"foreignKey:ShiftID" json:"transactions,omitempty"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}

// IsOpen reports whether the shift still accepts orders and cash
// movements.
func (s *Shift) IsOpen() bool {
	return s.Status == enum.ShiftStatusOpen
}

// CashTransaction is an immutable entry in a shift's transaction log.
// Entries are never modified or deleted; corrections create inverse
// entries.
type CashTransaction struct {
	ID        uuid.UUID                `gorm:"type:uuid;primary_key" json:"id"`
	ShiftID   uuid.UUID                `gorm:"type:uuid;not null;index" json:"shift_id"`
	Type      enum.CashTransactionType `gorm:"size:50;not null" json:"type"`
	Method    enum.TenderMethod        `gorm:"size:50" json:"method,omitempty"`
	Amount    money.Cents              `gorm:"default:0" json:"amount"`
	Reason    string                   `gorm:"size:255" json:"reason,omitempty"`
	OrderID   *uuid.UUID               `gorm:"type:uuid" json:"order_id,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new cash transaction
func (t *CashTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashTransaction model
func (CashTransaction) TableName() string {
	return "cash_transactions"
}
