package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/money"
	"github.com/stretchr/testify/assert"
)

func cartWith(taxRate float64, lines ...entity.CartLineItem) *entity.Cart {
	return &entity.Cart{
		TerminalID: uuid.New(),
		UserID:     uuid.New(),
		TaxRate:    taxRate,
		Lines:      lines,
	}
}

func TestPriceOrderFixedDiscountAndTax(t *testing.T) {
	// subtotal $18.00, fixed order discount $3.00, tax 8%:
	// taxable 15.00, tax 1.20, total 16.20
	cart := cartWith(0.08, *line(1800, 1))
	cart.OrderDiscount = &entity.Discount{Type: enum.DiscountTypeFixed, Value: 3.00}

	got := PriceOrder(cart)
	assert.Equal(t, money.Cents(1800), got.Subtotal)
	assert.Equal(t, money.Cents(300), got.OrderDiscount)
	assert.Equal(t, money.Cents(120), got.Tax)
	assert.Equal(t, money.Cents(0), got.Tip)
	assert.Equal(t, money.Cents(1620), got.Total)
}

func TestPriceOrderSubtotalAdditivity(t *testing.T) {
	lines := []entity.CartLineItem{*line(1050, 2), *line(333, 3), *line(799, 1)}
	lines[1].Discount = &entity.Discount{Type: enum.DiscountTypePercentage, Value: 15}

	cart := cartWith(0.0825, lines...)
	got := PriceOrder(cart)

	var sum money.Cents
	for i := range cart.Lines {
		sum += PriceLine(&cart.Lines[i]).LineTotal
	}
	assert.Equal(t, sum, got.Subtotal)
}

func TestPriceOrderPercentageDiscount(t *testing.T) {
	cart := cartWith(0.10, *line(5000, 1))
	cart.OrderDiscount = &entity.Discount{Type: enum.DiscountTypePercentage, Value: 20}

	got := PriceOrder(cart)
	assert.Equal(t, money.Cents(1000), got.OrderDiscount)
	assert.Equal(t, money.Cents(400), got.Tax)
	assert.Equal(t, money.Cents(4400), got.Total)
}

func TestPriceOrderFixedDiscountExceedingSubtotal(t *testing.T) {
	cart := cartWith(0.08, *line(500, 1))
	cart.OrderDiscount = &entity.Discount{Type: enum.DiscountTypeFixed, Value: 99.00}

	got := PriceOrder(cart)
	assert.Equal(t, money.Cents(500), got.OrderDiscount)
	assert.Equal(t, money.Cents(0), got.Tax)
	assert.Equal(t, money.Cents(0), got.Total)
}

func TestPriceOrderTip(t *testing.T) {
	cart := cartWith(0, *line(2000, 1))
	cart.Tip = 350

	got := PriceOrder(cart)
	assert.Equal(t, money.Cents(350), got.Tip)
	assert.Equal(t, money.Cents(2350), got.Total)
}

func TestPriceOrderLineAndOrderDiscountsBothApply(t *testing.T) {
	// Line discounts reduce lines before the order discount is
	// computed on the summed subtotal.
	item := *line(1000, 2)
	item.Discount = &entity.Discount{Type: enum.DiscountTypePercentage, Value: 10}

	cart := cartWith(0, item)
	cart.OrderDiscount = &entity.Discount{Type: enum.DiscountTypePercentage, Value: 10}

	got := PriceOrder(cart)
	assert.Equal(t, money.Cents(1800), got.Subtotal)
	assert.Equal(t, money.Cents(180), got.OrderDiscount)
	assert.Equal(t, money.Cents(1620), got.Total)
}

func TestPriceOrderEmptyCart(t *testing.T) {
	got := PriceOrder(cartWith(0.08))
	assert.Equal(t, money.Cents(0), got.Subtotal)
	assert.Equal(t, money.Cents(0), got.Total)
}
