package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/money"
	"github.com/stretchr/testify/assert"
)

func line(unitPrice money.Cents, qty int) *entity.CartLineItem {
	return &entity.CartLineItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Name:      "House Lager",
		UnitPrice: unitPrice,
		Quantity:  qty,
	}
}

func TestPriceLineBasic(t *testing.T) {
	got := PriceLine(line(1000, 2))

	assert.Equal(t, money.Cents(1000), got.UnitBasis)
	assert.Equal(t, money.Cents(0), got.ModifiersTotal)
	assert.Equal(t, money.Cents(2000), got.LineSubtotal)
	assert.Equal(t, money.Cents(0), got.DiscountAmount)
	assert.Equal(t, money.Cents(2000), got.LineTotal)
}

func TestPriceLinePercentageDiscount(t *testing.T) {
	// unit price $10.00, quantity 2, 10% discount:
	// subtotal 20.00, discount 2.00, total 18.00
	item := line(1000, 2)
	item.Discount = &entity.Discount{Type: enum.DiscountTypePercentage, Value: 10, Reason: enum.ReasonHappyHour}

	got := PriceLine(item)
	assert.Equal(t, money.Cents(2000), got.LineSubtotal)
	assert.Equal(t, money.Cents(200), got.DiscountAmount)
	assert.Equal(t, money.Cents(1800), got.LineTotal)
}

func TestPriceLineFixedDiscountCappedAtSubtotal(t *testing.T) {
	item := line(500, 1)
	item.Discount = &entity.Discount{Type: enum.DiscountTypeFixed, Value: 9.00}

	got := PriceLine(item)
	assert.Equal(t, money.Cents(500), got.DiscountAmount)
	assert.Equal(t, money.Cents(0), got.LineTotal)
}

func TestPriceLinePercentageOver100NotClamped(t *testing.T) {
	// The pricer computes the requested value faithfully; rejecting
	// it is the permission gate's job. Line total still floors at 0.
	item := line(1000, 1)
	item.Discount = &entity.Discount{Type: enum.DiscountTypePercentage, Value: 150}

	got := PriceLine(item)
	assert.Equal(t, money.Cents(1500), got.DiscountAmount)
	assert.Equal(t, money.Cents(0), got.LineTotal)
}

func TestPriceLineVariationAndOverridePrecedence(t *testing.T) {
	variation := money.Cents(1200)

	item := line(1000, 1)
	item.VariationPrice = &variation
	assert.Equal(t, money.Cents(1200), PriceLine(item).UnitBasis)

	item.PriceOverride = &entity.PriceOverride{Value: 800, Reason: "matched competitor price"}
	assert.Equal(t, money.Cents(800), PriceLine(item).UnitBasis)
}

func TestPriceLineModifiers(t *testing.T) {
	item := line(1000, 2)
	item.Modifiers = []entity.LineModifier{
		{ModifierID: uuid.New(), Name: "Extra shot", Price: 75, Quantity: 2},
		{ModifierID: uuid.New(), Name: "Oat milk", Price: 50, Quantity: 1},
	}

	got := PriceLine(item)
	assert.Equal(t, money.Cents(200), got.ModifiersTotal)
	// (1000 + 200) * 2
	assert.Equal(t, money.Cents(2400), got.LineSubtotal)
}

func TestPriceLineMonotonicInPercentage(t *testing.T) {
	prev := money.Cents(1 << 62)
	for _, pct := range []float64{0, 5, 10, 25, 50, 75, 100} {
		item := line(1999, 3)
		item.Discount = &entity.Discount{Type: enum.DiscountTypePercentage, Value: pct}
		got := PriceLine(item)
		assert.LessOrEqual(t, got.LineTotal, prev, "line total must decrease as discount grows (pct=%v)", pct)
		prev = got.LineTotal
	}
}
