package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/money"
	"gorm.io/gorm"
)

// OrderStatus represents the post-completion state of an order
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusReturned  OrderStatus = "returned"
)

// Order represents a completed sale. Orders are created only by
// checkout completion, with totals already computed and settled.
type Order struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNo     string         `gorm:"size:100;unique;not null" json:"receipt_no"`
	ShiftID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"shift_id"`
	TerminalID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"terminal_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID    *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	OrderDate     time.Time      `gorm:"not null" json:"order_date"`
	OrderType     enum.OrderType `gorm:"size:50" json:"order_type"`
	Status        OrderStatus    `gorm:"size:50;default:'completed'" json:"status"`
	Subtotal      money.Cents    `gorm:"default:0" json:"subtotal"`
	OrderDiscount money.Cents    `gorm:"default:0" json:"order_discount"`
	Tax           money.Cents    `gorm:"default:0" json:"tax"`
	Tip           money.Cents    `gorm:"default:0" json:"tip"`
	Total         money.Cents    `gorm:"default:0" json:"total"`
	TableNumber   *int           `json:"table_number,omitempty"`
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []OrderLine        `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
	Tenders  []TenderSubmission `gorm:"foreignKey:OrderID" json:"tenders,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine is a priced line item frozen at completion time
type OrderLine struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	VariationID    *uuid.UUID     `gorm:"type:uuid" json:"variation_id,omitempty"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	CategoryName   string         `gorm:"size:255" json:"category_name,omitempty"`
	Quantity       int            `gorm:"not null" json:"quantity"`
	UnitBasis      money.Cents    `gorm:"not null" json:"unit_basis"`
	ModifiersTotal money.Cents    `gorm:"default:0" json:"modifiers_total"`
	DiscountAmount money.Cents    `gorm:"default:0" json:"discount_amount"`
	LineTotal      money.Cents    `gorm:"not null" json:"line_total"`
	SeatNumber     *int           `json:"seat_number,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// TenderSubmission is a single payment instrument applied toward an
// order. For cash, Tendered is the amount handed over and Change is
// Tendered minus the recorded Amount, floored at zero.
type TenderSubmission struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"order_id"`
	Method     enum.TenderMethod `gorm:"size:50;not null" json:"method"`
	Amount     money.Cents       `gorm:"not null" json:"amount"`
	Tendered   money.Cents       `gorm:"default:0" json:"tendered,omitempty"`
	Change     money.Cents       `gorm:"default:0" json:"change,omitempty"`
	GiftCardNo string            `gorm:"size:100" json:"gift_card_no,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new tender submission
func (t *TenderSubmission) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TenderSubmission model
func (TenderSubmission) TableName() string {
	return "tender_submissions"
}
