// Package pricing is the pure calculation engine behind the cart:
// line pricing, order aggregation, and split-check partitioning. Every
// function here is a pure read of its inputs; nothing in this package
// mutates a cart or touches a repository.
package pricing

import (
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/money"
)

// LinePrice is the priced breakdown of a single cart line
type LinePrice struct {
	UnitBasis      money.Cents `json:"unit_basis"`
	ModifiersTotal money.Cents `json:"modifiers_total"`
	LineSubtotal   money.Cents `json:"line_subtotal"`
	DiscountAmount money.Cents `json:"discount_amount"`
	LineTotal      money.Cents `json:"line_total"`
}

// PriceLine computes a cart line's total from its unit price, quantity,
// selected modifiers, optional price override, and optional line-level
// discount. The unit basis is the override value when present, else the
// variation price when a variation is selected, else the product price.
//
// Percentage discount values are computed faithfully even when they
// exceed 100; clamping requests to sane values is the permission gate's
// concern, not this function's.
func PriceLine(item *entity.CartLineItem) LinePrice {
	unitBasis := item.UnitPrice
	if item.VariationPrice != nil {
		unitBasis = *item.VariationPrice
	}
	if item.PriceOverride != nil {
		unitBasis = item.PriceOverride.Value
	}

	var modifiersTotal money.Cents
	for _, m := range item.Modifiers {
		modifiersTotal += m.Price * money.Cents(m.Quantity)
	}

	lineSubtotal := (unitBasis + modifiersTotal) * money.Cents(item.Quantity)
	discountAmount := discountOn(lineSubtotal, item.Discount)

	return LinePrice{
		UnitBasis:      unitBasis,
		ModifiersTotal: modifiersTotal,
		LineSubtotal:   lineSubtotal,
		DiscountAmount: discountAmount,
		LineTotal:      money.Max(0, lineSubtotal-discountAmount),
	}
}

// discountOn computes the discount amount against a base. Fixed
// discounts are capped at the base; percentage discounts are not
// clamped.
func discountOn(base money.Cents, d *entity.Discount) money.Cents {
	if d == nil {
		return 0
	}
	switch d.Type {
	case enum.DiscountTypePercentage:
		return money.PercentOf(base, d.Value)
	case enum.DiscountTypeFixed:
		return money.Min(money.FromFloat(d.Value), base)
	default:
		return 0
	}
}
