package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/money"
)

// Cart is the open order being built on a terminal. It lives in memory
// only; a cart becomes an Order at checkout completion and is never
// persisted in this form.
type Cart struct {
	TerminalID    uuid.UUID      `json:"terminal_id"`
	UserID        uuid.UUID      `json:"user_id"`
	Lines         []CartLineItem `json:"lines"`
	CustomerID    *uuid.UUID     `json:"customer_id,omitempty"`
	OrderDiscount *Discount      `json:"order_discount,omitempty"`
	TaxRate       float64        `json:"tax_rate"`
	Tip           money.Cents    `json:"tip"`
	OrderType     enum.OrderType `json:"order_type"`
	TableNumber   *int           `json:"table_number,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// CartLineItem is one product (with optional variation and modifiers)
// and its quantity within the cart. Insertion order is display order.
type CartLineItem struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	VariationID   *uuid.UUID      `json:"variation_id,omitempty"`
	Name          string          `json:"name"`
	CategoryName  string          `json:"category_name,omitempty"`
	UnitPrice     money.Cents     `json:"unit_price"`
	VariationPrice *money.Cents   `json:"variation_price,omitempty"`
	Quantity      int             `json:"quantity"`
	Modifiers     []LineModifier  `json:"modifiers,omitempty"`
	PriceOverride *PriceOverride  `json:"price_override,omitempty"`
	Discount      *Discount       `json:"discount,omitempty"`
	SeatNumber    *int            `json:"seat_number,omitempty"`
	Course        *string         `json:"course,omitempty"`
}

// LineModifier is a selected modifier on a cart line, with its own
// quantity and per-unit price
type LineModifier struct {
	ModifierID uuid.UUID   `json:"modifier_id"`
	Name       string      `json:"name"`
	Price      money.Cents `json:"price"`
	Quantity   int         `json:"quantity"`
}

// PriceOverride replaces the catalog/variation price of a line. A
// reason is always required.
type PriceOverride struct {
	Value  money.Cents `json:"value"`
	Reason string      `json:"reason"`
}

// Discount is a percentage or fixed reduction applied to a line or to
// the whole order. For percentage discounts Value is in percentage
// points; for fixed discounts Value is a decimal currency amount.
type Discount struct {
	Type       enum.DiscountType   `json:"type"`
	Value      float64             `json:"value"`
	Reason     enum.DiscountReason `json:"reason,omitempty"`
	ReasonText string              `json:"reason_text,omitempty"`
}

// FindLine returns the cart line with the given id, or nil.
func (c *Cart) FindLine(lineID uuid.UUID) *CartLineItem {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// RemoveLine removes the line with the given id, preserving the order
// of the remaining lines. Returns false if the line was not present.
func (c *Cart) RemoveLine(lineID uuid.UUID) bool {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}
