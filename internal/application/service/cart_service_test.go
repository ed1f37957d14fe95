package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	carts    *CartService
	products *fakeProductRepo
	audits   *fakeAuditRepo
	users    *fakeUserRepo

	terminalID uuid.UUID
	cashier    *entity.User
	manager    *entity.User
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	products := newFakeProductRepo()
	audits := &fakeAuditRepo{}
	users := newFakeUserRepo()
	settings := newFakeSettingsRepo(0.08)
	gate := NewPermissionGate(users, settings)

	return &cartFixture{
		carts:      NewCartService(gate, products, newFakeCustomerRepo(), audits, settings, 5*time.Minute),
		products:   products,
		audits:     audits,
		users:      users,
		terminalID: uuid.New(),
		cashier:    users.addUser(enum.RoleCashier, nil),
		manager:    users.addUser(enum.RoleManager, pinHash(t, "4271")),
	}
}

func (f *cartFixture) addBurger(t *testing.T, qty int) *CartView {
	t.Helper()
	burger := f.products.addProduct("Burger", 1000, 100, "Food")
	view, err := f.carts.AddLine(context.Background(), f.terminalID, f.cashier.ID, &AddLineInput{
		ProductID: burger.ID,
		Quantity:  qty,
	})
	require.NoError(t, err)
	return view
}

func TestCartService_AddLineAndPrice(t *testing.T) {
	f := newCartFixture(t)

	view := f.addBurger(t, 2)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, money.Cents(2000), view.Price.Subtotal)
	assert.Equal(t, money.Cents(160), view.Price.Tax)
	assert.Equal(t, money.Cents(2160), view.Price.Total)
}

func TestCartService_AddLineStockCeiling(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	scarce := f.products.addProduct("Last Bottle", 2500, 3, "Wine")

	_, err := f.carts.AddLine(ctx, f.terminalID, f.cashier.ID, &AddLineInput{ProductID: scarce.ID, Quantity: 4})
	assert.Error(t, err)

	view, err := f.carts.AddLine(ctx, f.terminalID, f.cashier.ID, &AddLineInput{ProductID: scarce.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)

	// A second line for the same product counts against the same stock.
	_, err = f.carts.AddLine(ctx, f.terminalID, f.cashier.ID, &AddLineInput{ProductID: scarce.ID, Quantity: 2})
	assert.Error(t, err)
}

func TestCartService_QuantityToZeroLeavesNoTrail(t *testing.T) {
	f := newCartFixture(t)
	view := f.addBurger(t, 2)
	lineID := view.Lines[0].Line.ID

	view, err := f.carts.UpdateQuantity(context.Background(), f.terminalID, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Empty(t, f.audits.entries, "quantity edits are not voids")
}

func TestCartService_VoidByManagerIsAuditedOnce(t *testing.T) {
	f := newCartFixture(t)
	view := f.addBurger(t, 2)
	lineID := view.Lines[0].Line.ID

	result, err := f.carts.VoidLine(context.Background(), f.terminalID, lineID, f.manager, "customer changed mind")
	require.NoError(t, err)
	assert.False(t, result.RequiresApproval)
	assert.Empty(t, result.Cart.Lines)

	require.Len(t, f.audits.entries, 1)
	entry := f.audits.entries[0]
	assert.Equal(t, enum.AuditVoid, entry.Kind)
	assert.Equal(t, f.manager.ID, entry.ActorID)
	assert.Nil(t, entry.ApproverID)
	assert.Equal(t, "customer changed mind", entry.Reason)
	assert.Equal(t, lineID, entry.LineItemID)
}

func TestCartService_VoidRequiresReason(t *testing.T) {
	f := newCartFixture(t)
	view := f.addBurger(t, 1)

	_, err := f.carts.VoidLine(context.Background(), f.terminalID, view.Lines[0].Line.ID, f.manager, "")
	assert.Error(t, err)
	assert.Empty(t, f.audits.entries)
}

func TestCartService_CashierVoidNeedsApproval(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	view := f.addBurger(t, 2)
	lineID := view.Lines[0].Line.ID

	result, err := f.carts.VoidLine(ctx, f.terminalID, lineID, f.cashier, "spilled drink")
	require.NoError(t, err)
	assert.True(t, result.RequiresApproval)
	assert.NotEqual(t, uuid.Nil, result.ApprovalToken)

	// Nothing changed and nothing was logged while the request is parked.
	current, err := f.carts.GetCart(f.terminalID)
	require.NoError(t, err)
	assert.Len(t, current.Lines, 1)
	assert.Empty(t, f.audits.entries)

	approved, err := f.carts.Approve(ctx, result.ApprovalToken, "4271")
	require.NoError(t, err)
	assert.Empty(t, approved.Cart.Lines)

	require.Len(t, f.audits.entries, 1)
	entry := f.audits.entries[0]
	assert.Equal(t, enum.AuditVoid, entry.Kind)
	assert.Equal(t, f.cashier.ID, entry.ActorID)
	require.NotNil(t, entry.ApproverID)
	assert.Equal(t, f.manager.ID, *entry.ApproverID)

	// The token is single-use.
	_, err = f.carts.Approve(ctx, result.ApprovalToken, "4271")
	assert.Error(t, err)
}

func TestCartService_ApproveRejectsBadPIN(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	view := f.addBurger(t, 1)

	result, err := f.carts.VoidLine(ctx, f.terminalID, view.Lines[0].Line.ID, f.cashier, "wrong item")
	require.NoError(t, err)
	require.True(t, result.RequiresApproval)

	_, err = f.carts.Approve(ctx, result.ApprovalToken, "0000")
	assert.Error(t, err)

	current, err := f.carts.GetCart(f.terminalID)
	require.NoError(t, err)
	assert.Len(t, current.Lines, 1, "a failed approval applies nothing")
}

func TestCartService_DiscountWithinCeilingIsNotAudited(t *testing.T) {
	f := newCartFixture(t)
	view := f.addBurger(t, 2)

	result, err := f.carts.ApplyLineDiscount(context.Background(), f.terminalID, view.Lines[0].Line.ID, f.cashier, entity.Discount{
		Type:   enum.DiscountTypePercentage,
		Value:  10,
		Reason: enum.ReasonHappyHour,
	})
	require.NoError(t, err)
	assert.False(t, result.RequiresApproval)

	assert.Equal(t, money.Cents(1800), result.Cart.Lines[0].Price.LineTotal)
	assert.Equal(t, money.Cents(1800), result.Cart.Price.Subtotal, "subtotal sums post-discount line totals")
	assert.Empty(t, f.audits.entries, "permitted discounts leave no audit trail")
}

func TestCartService_DiscountOverCeilingParksAndAudits(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	view := f.addBurger(t, 2)
	lineID := view.Lines[0].Line.ID

	result, err := f.carts.ApplyLineDiscount(ctx, f.terminalID, lineID, f.cashier, entity.Discount{
		Type:   enum.DiscountTypePercentage,
		Value:  25,
		Reason: enum.ReasonCompensation,
	})
	require.NoError(t, err)
	assert.True(t, result.RequiresApproval)
	assert.Contains(t, result.Reason, "exceeds role limit")

	approved, err := f.carts.Approve(ctx, result.ApprovalToken, "4271")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(1500), approved.Cart.Lines[0].Price.LineTotal)

	require.Len(t, f.audits.entries, 1)
	entry := f.audits.entries[0]
	assert.Equal(t, enum.AuditItemDiscount, entry.Kind)
	assert.Equal(t, f.cashier.ID, entry.ActorID)
	require.NotNil(t, entry.ApproverID)
	assert.Equal(t, f.manager.ID, *entry.ApproverID)
	assert.Equal(t, "compensation", entry.Reason)
}

func TestCartService_DiscountValidation(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	view := f.addBurger(t, 1)
	lineID := view.Lines[0].Line.ID

	_, err := f.carts.ApplyLineDiscount(ctx, f.terminalID, lineID, f.manager, entity.Discount{
		Type: enum.DiscountTypePercentage, Value: 10, Reason: "because",
	})
	assert.Error(t, err, "reason must come from the taxonomy")

	_, err = f.carts.ApplyLineDiscount(ctx, f.terminalID, lineID, f.manager, entity.Discount{
		Type: enum.DiscountTypePercentage, Value: 10, Reason: enum.ReasonOther,
	})
	assert.Error(t, err, "other requires free text")

	result, err := f.carts.ApplyLineDiscount(ctx, f.terminalID, lineID, f.manager, entity.Discount{
		Type: enum.DiscountTypePercentage, Value: 10, Reason: enum.ReasonOther, ReasonText: "regular's birthday",
	})
	require.NoError(t, err)
	assert.False(t, result.RequiresApproval)
}

func TestCartService_PriceOverrideIsAlwaysAudited(t *testing.T) {
	f := newCartFixture(t)
	view := f.addBurger(t, 1)
	lineID := view.Lines[0].Line.ID

	result, err := f.carts.OverridePrice(context.Background(), f.terminalID, lineID, f.manager, 8.00, "price match")
	require.NoError(t, err)
	assert.False(t, result.RequiresApproval)
	assert.Equal(t, money.Cents(800), result.Cart.Lines[0].Price.UnitBasis)

	require.Len(t, f.audits.entries, 1)
	entry := f.audits.entries[0]
	assert.Equal(t, enum.AuditPriceOverride, entry.Kind)
	assert.Equal(t, "10.00", entry.BeforeValue)
	assert.Equal(t, "8.00", entry.AfterValue)
}

func TestCartService_OrderDiscountApproval(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	f.addBurger(t, 2)

	result, err := f.carts.ApplyOrderDiscount(ctx, f.terminalID, f.cashier, entity.Discount{
		Type:   enum.DiscountTypeFixed,
		Value:  30.00,
		Reason: enum.ReasonManagersComp,
	})
	require.NoError(t, err)
	require.True(t, result.RequiresApproval)

	approved, err := f.carts.Approve(ctx, result.ApprovalToken, "4271")
	require.NoError(t, err)
	// A fixed discount larger than the subtotal is capped at it.
	assert.Equal(t, money.Cents(2000), approved.Cart.Price.OrderDiscount)
	assert.Equal(t, money.Cents(0), approved.Cart.Price.Total-approved.Cart.Price.Tip)

	require.Len(t, f.audits.entries, 1)
	assert.Equal(t, enum.AuditOrderDiscount, f.audits.entries[0].Kind)
}

func TestCartService_ClearDiscardsWithoutAudit(t *testing.T) {
	f := newCartFixture(t)
	f.addBurger(t, 3)

	f.carts.Clear(f.terminalID)

	_, err := f.carts.GetCart(f.terminalID)
	assert.Error(t, err)
	assert.Empty(t, f.audits.entries)
}
