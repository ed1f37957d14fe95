package pricing

import (
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/pkg/money"
)

// OrderPrice is the priced breakdown of a whole cart
type OrderPrice struct {
	Subtotal      money.Cents `json:"subtotal"`
	OrderDiscount money.Cents `json:"order_discount"`
	Tax           money.Cents `json:"tax"`
	Tip           money.Cents `json:"tip"`
	Total         money.Cents `json:"total"`
}

// PriceOrder sums line totals, applies the optional order-level
// discount, computes tax on the discounted subtotal, and adds the tip.
// Line discounts reduce each line before the order-level discount is
// computed on the summed subtotal; the two are independent and both
// apply. The taxable base never goes negative.
func PriceOrder(cart *entity.Cart) OrderPrice {
	var subtotal money.Cents
	for i := range cart.Lines {
		subtotal += PriceLine(&cart.Lines[i]).LineTotal
	}

	orderDiscount := discountOn(subtotal, cart.OrderDiscount)
	if orderDiscount > subtotal {
		orderDiscount = subtotal
	}

	taxableBase := subtotal - orderDiscount
	tax := money.TaxOn(taxableBase, cart.TaxRate)

	return OrderPrice{
		Subtotal:      subtotal,
		OrderDiscount: orderDiscount,
		Tax:           tax,
		Tip:           cart.Tip,
		Total:         taxableBase + tax + cart.Tip,
	}
}
