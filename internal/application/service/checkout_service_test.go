package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	*cartFixture
	checkout  *CheckoutService
	shifts    *ShiftService
	orders    *fakeOrderRepo
	giftCards *fakeGiftCardRepo
	shiftID   uuid.UUID
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	cf := newCartFixture(t)
	orders := newFakeOrderRepo()
	giftCards := newFakeGiftCardRepo()
	shifts := NewShiftService(newFakeShiftRepo(), orders)

	shift, err := shifts.Open(context.Background(), cf.terminalID, cf.cashier.ID, 100.00)
	require.NoError(t, err)

	return &checkoutFixture{
		cartFixture: cf,
		checkout:    NewCheckoutService(cf.carts, shifts, orders, cf.products, giftCards),
		shifts:      shifts,
		orders:      orders,
		giftCards:   giftCards,
		shiftID:     shift.ID,
	}
}

// buildDiscountedCart produces the worked total: two 10.00 items with a
// 10% line discount, a 3.00 order discount, and 8% tax on the 15.00
// taxable base, owing 16.20.
func (f *checkoutFixture) buildDiscountedCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	view := f.addBurger(t, 2)

	result, err := f.carts.ApplyLineDiscount(ctx, f.terminalID, view.Lines[0].Line.ID, f.manager, entity.Discount{
		Type: enum.DiscountTypePercentage, Value: 10, Reason: enum.ReasonHappyHour,
	})
	require.NoError(t, err)
	require.False(t, result.RequiresApproval)

	result, err = f.carts.ApplyOrderDiscount(ctx, f.terminalID, f.manager, entity.Discount{
		Type: enum.DiscountTypeFixed, Value: 3.00, Reason: enum.ReasonLoyalty,
	})
	require.NoError(t, err)
	require.False(t, result.RequiresApproval)
}

func TestCheckoutService_CashWithChange(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.buildDiscountedCart(t)

	session, err := f.checkout.Begin(ctx, f.terminalID)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(1620), session.Target)
	assert.False(t, session.IsSettled())

	session, err = f.checkout.AddTender(ctx, f.terminalID, &TenderInput{
		Method: enum.TenderCash, Amount: 16.20, Tendered: 20.00,
	})
	require.NoError(t, err)
	require.Len(t, session.Submissions, 1)
	assert.Equal(t, money.Cents(1620), session.Submissions[0].Amount)
	assert.Equal(t, money.Cents(2000), session.Submissions[0].Tendered)
	assert.Equal(t, money.Cents(380), session.Submissions[0].Change)
	assert.True(t, session.IsSettled())

	order, err := f.checkout.Complete(ctx, f.terminalID, f.cashier.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(1620), order.Total)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	require.Len(t, order.Tenders, 1)

	// The cart and session are gone; the sale landed on the shift log.
	_, err = f.carts.GetCart(f.terminalID)
	assert.Error(t, err)
	_, err = f.checkout.Session(f.terminalID)
	assert.Error(t, err)

	report, err := f.shifts.Close(ctx, f.terminalID, 116.20)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(1620), report.Reconciliation.CashSales)
	assert.Equal(t, money.Cents(0), report.Reconciliation.Variance)
}

func TestCheckoutService_SplitTenderAcrossMethods(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.buildDiscountedCart(t)

	_, err := f.checkout.Begin(ctx, f.terminalID)
	require.NoError(t, err)

	session, err := f.checkout.AddTender(ctx, f.terminalID, &TenderInput{Method: enum.TenderCard, Amount: 10.00})
	require.NoError(t, err)
	assert.False(t, session.IsSettled())
	assert.Equal(t, money.Cents(620), session.Remaining())

	// A card tender beyond the remaining balance is clamped to it.
	session, err = f.checkout.AddTender(ctx, f.terminalID, &TenderInput{Method: enum.TenderCard, Amount: 50.00})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(620), session.Submissions[1].Amount)
	assert.True(t, session.IsSettled())

	_, err = f.checkout.AddTender(ctx, f.terminalID, &TenderInput{Method: enum.TenderCash, Amount: 1.00})
	assert.Error(t, err, "a settled session takes no more tenders")
}

func TestCheckoutService_GiftCardLimits(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.giftCards.addCard("GC-AAAA11112222", 1000)
	f.buildDiscountedCart(t)

	_, err := f.checkout.Begin(ctx, f.terminalID)
	require.NoError(t, err)

	_, err = f.checkout.AddTender(ctx, f.terminalID, &TenderInput{
		Method: enum.TenderGiftCard, Amount: 15.00, CardNo: "GC-AAAA11112222",
	})
	assert.Error(t, err, "cannot exceed the card balance")

	_, err = f.checkout.AddTender(ctx, f.terminalID, &TenderInput{
		Method: enum.TenderGiftCard, Amount: 5.00,
	})
	assert.Error(t, err, "card number is required")

	session, err := f.checkout.AddTender(ctx, f.terminalID, &TenderInput{
		Method: enum.TenderGiftCard, Amount: 10.00, CardNo: "GC-AAAA11112222",
	})
	require.NoError(t, err)
	assert.Equal(t, money.Cents(620), session.Remaining())

	// The balance is untouched while the tender is merely pending.
	card, err := f.giftCards.GetByCardNo(ctx, "GC-AAAA11112222")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(1000), card.Balance)

	_, err = f.checkout.AddTender(ctx, f.terminalID, &TenderInput{Method: enum.TenderCash, Amount: 6.20})
	require.NoError(t, err)

	_, err = f.checkout.Complete(ctx, f.terminalID, f.cashier.ID)
	require.NoError(t, err)

	// Debited only at finalization.
	card, err = f.giftCards.GetByCardNo(ctx, "GC-AAAA11112222")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(0), card.Balance)
}

func TestCheckoutService_FailedDebitUnwindsCompletion(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.giftCards.addCard("GC-CCCC11112222", 1100)
	f.giftCards.addCard("GC-DDDD11112222", 1000)
	f.buildDiscountedCart(t)

	_, err := f.checkout.Begin(ctx, f.terminalID)
	require.NoError(t, err)
	_, err = f.checkout.AddTender(ctx, f.terminalID, &TenderInput{
		Method: enum.TenderGiftCard, Amount: 11.00, CardNo: "GC-CCCC11112222",
	})
	require.NoError(t, err)
	session, err := f.checkout.AddTender(ctx, f.terminalID, &TenderInput{
		Method: enum.TenderGiftCard, Amount: 5.20, CardNo: "GC-DDDD11112222",
	})
	require.NoError(t, err)
	require.True(t, session.IsSettled())

	// The second card is spent down elsewhere between tendering and
	// finalization, so its debit fails mid-completion.
	f.giftCards.cards["GC-DDDD11112222"].Balance = 100

	_, err = f.checkout.Complete(ctx, f.terminalID, f.cashier.ID)
	require.Error(t, err)

	// The first card's debit is unwound, not just the stock.
	card, err := f.giftCards.GetByCardNo(ctx, "GC-CCCC11112222")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(1100), card.Balance)

	// No order survives a failed completion.
	orders, _, err := f.orders.List(ctx, &repository.OrderFilterParams{ShiftID: &f.shiftID})
	require.NoError(t, err)
	assert.Empty(t, orders)

	// Stock is back where it started, and the session is still open
	// for the operator to fix the tenders.
	view, err := f.carts.GetCart(f.terminalID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	stock, err := f.products.AvailableStock(ctx, view.Lines[0].Line.ProductID, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, stock)
	_, err = f.checkout.Session(f.terminalID)
	assert.NoError(t, err)
}

func TestCheckoutService_CancelNeverDebits(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.giftCards.addCard("GC-BBBB11112222", 5000)
	f.buildDiscountedCart(t)

	_, err := f.checkout.Begin(ctx, f.terminalID)
	require.NoError(t, err)
	_, err = f.checkout.AddTender(ctx, f.terminalID, &TenderInput{
		Method: enum.TenderGiftCard, Amount: 16.20, CardNo: "GC-BBBB11112222",
	})
	require.NoError(t, err)

	f.checkout.Cancel(f.terminalID)

	card, err := f.giftCards.GetByCardNo(ctx, "GC-BBBB11112222")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(5000), card.Balance)

	// The cart survives an abandoned checkout.
	view, err := f.carts.GetCart(f.terminalID)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

func TestCheckoutService_CompleteUnsettledIsInvariantViolation(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.buildDiscountedCart(t)

	_, err := f.checkout.Begin(ctx, f.terminalID)
	require.NoError(t, err)
	_, err = f.checkout.AddTender(ctx, f.terminalID, &TenderInput{Method: enum.TenderCash, Amount: 5.00})
	require.NoError(t, err)

	_, err = f.checkout.Complete(ctx, f.terminalID, f.cashier.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsInvariantError(err))
}

func TestCheckoutService_CompleteCommitsStock(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	beer := f.products.addProduct("Beer", 600, 10, "Drinks")

	_, err := f.carts.AddLine(ctx, f.terminalID, f.cashier.ID, &AddLineInput{ProductID: beer.ID, Quantity: 3})
	require.NoError(t, err)

	_, err = f.checkout.Begin(ctx, f.terminalID)
	require.NoError(t, err)
	_, err = f.checkout.AddTender(ctx, f.terminalID, &TenderInput{Method: enum.TenderCard, Amount: 19.44})
	require.NoError(t, err)

	_, err = f.checkout.Complete(ctx, f.terminalID, f.cashier.ID)
	require.NoError(t, err)

	stock, err := f.products.AvailableStock(ctx, beer.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestCheckoutService_BeginSnapshotsTheCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	view := f.addBurger(t, 1)

	session, err := f.checkout.Begin(ctx, f.terminalID)
	require.NoError(t, err)
	target := session.Target

	// Editing the cart mid-checkout does not move the target.
	_, err = f.carts.UpdateQuantity(ctx, f.terminalID, view.Lines[0].Line.ID, 5)
	require.NoError(t, err)
	session, err = f.checkout.Session(f.terminalID)
	require.NoError(t, err)
	assert.Equal(t, target, session.Target)

	// Re-beginning reprices against the edited cart.
	session, err = f.checkout.Begin(ctx, f.terminalID)
	require.NoError(t, err)
	assert.Equal(t, target*5, session.Target)
}

func TestCheckoutService_SplitQuotes(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.buildDiscountedCart(t)

	_, err := f.checkout.Begin(ctx, f.terminalID)
	require.NoError(t, err)

	shares, err := f.checkout.SplitEven(f.terminalID, 4)
	require.NoError(t, err)
	require.Len(t, shares, 4)
	var sum money.Cents
	for _, share := range shares {
		sum += share
	}
	assert.Equal(t, money.Cents(1620), sum)
}
