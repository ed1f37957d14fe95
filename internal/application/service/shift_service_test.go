package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shiftFixture struct {
	shifts     *ShiftService
	shiftRepo  *fakeShiftRepo
	orderRepo  *fakeOrderRepo
	terminalID uuid.UUID
	userID     uuid.UUID
}

func newShiftFixture(t *testing.T) *shiftFixture {
	t.Helper()
	shiftRepo := newFakeShiftRepo()
	orderRepo := newFakeOrderRepo()
	return &shiftFixture{
		shifts:     NewShiftService(shiftRepo, orderRepo),
		shiftRepo:  shiftRepo,
		orderRepo:  orderRepo,
		terminalID: uuid.New(),
		userID:     uuid.New(),
	}
}

// saleOrder persists an order on the shift and logs its tenders as
// sale transactions, the way checkout completion does.
func (f *shiftFixture) saleOrder(t *testing.T, shiftID uuid.UUID, method enum.TenderMethod, total money.Cents) *entity.Order {
	t.Helper()
	ctx := context.Background()
	order := &entity.Order{
		ID:         uuid.New(),
		ReceiptNo:  "RCPT-" + uuid.NewString()[:8],
		ShiftID:    shiftID,
		TerminalID: f.terminalID,
		UserID:     f.userID,
		OrderDate:  time.Now(),
		Status:     entity.OrderStatusCompleted,
		Subtotal:   total,
		Total:      total,
		Lines: []entity.OrderLine{{
			ProductID: uuid.New(),
			Name:      "Item",
			Quantity:  1,
			LineTotal: total,
		}},
		Tenders: []entity.TenderSubmission{{Method: method, Amount: total}},
	}
	require.NoError(t, f.orderRepo.Create(ctx, order))
	require.NoError(t, f.shifts.RecordSale(ctx, shiftID, order))
	return order
}

func TestShiftService_OneOpenShiftPerTerminal(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	shift, err := f.shifts.Open(ctx, f.terminalID, f.userID, 100.00)
	require.NoError(t, err)
	assert.Equal(t, enum.ShiftStatusOpen, shift.Status)
	assert.Equal(t, money.Cents(10000), shift.OpeningBalance)

	_, err = f.shifts.Open(ctx, f.terminalID, f.userID, 50.00)
	assert.Error(t, err)

	// A different terminal opens independently.
	_, err = f.shifts.Open(ctx, uuid.New(), f.userID, 50.00)
	assert.NoError(t, err)
}

func TestShiftService_DrawerReconciliation(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	shift, err := f.shifts.Open(ctx, f.terminalID, f.userID, 100.00)
	require.NoError(t, err)

	f.saleOrder(t, shift.ID, enum.TenderCash, 15000)
	f.saleOrder(t, shift.ID, enum.TenderCash, 9000)
	f.saleOrder(t, shift.ID, enum.TenderCard, 4200) // never touches the drawer

	_, err = f.shifts.RecordMovement(ctx, f.terminalID, enum.TxnCashOut, 20.00, "bank drop")
	require.NoError(t, err)

	report, err := f.shifts.Close(ctx, f.terminalID, 315.00)
	require.NoError(t, err)

	rec := report.Reconciliation
	assert.Equal(t, money.Cents(10000), rec.OpeningBalance)
	assert.Equal(t, money.Cents(24000), rec.CashSales)
	assert.Equal(t, money.Cents(2000), rec.CashOut)
	assert.Equal(t, money.Cents(32000), rec.ExpectedCash)
	assert.Equal(t, money.Cents(31500), rec.CountedCash)
	assert.Equal(t, money.Cents(-500), rec.Variance)

	assert.Equal(t, 3, report.TotalOrders)
	assert.Equal(t, money.Cents(28200), report.GrossSales)
}

func TestShiftService_CashMovements(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	_, err := f.shifts.RecordMovement(ctx, f.terminalID, enum.TxnCashIn, 50.00, "float top-up")
	assert.Error(t, err, "movements need an open shift")

	_, err = f.shifts.Open(ctx, f.terminalID, f.userID, 0)
	require.NoError(t, err)

	_, err = f.shifts.RecordMovement(ctx, f.terminalID, enum.TxnCashIn, -5.00, "negative")
	assert.Error(t, err)

	txn, err := f.shifts.RecordMovement(ctx, f.terminalID, enum.TxnCashIn, 50.00, "float top-up")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(5000), txn.Amount)

	// noSale records a drawer open with no amount.
	txn, err = f.shifts.RecordMovement(ctx, f.terminalID, enum.TxnNoSale, 99.00, "drawer check")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(0), txn.Amount)

	report, err := f.shifts.Close(ctx, f.terminalID, 50.00)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(5000), report.Reconciliation.CashIn)
	assert.Equal(t, 1, report.Reconciliation.NoSaleCount)
	assert.Equal(t, money.Cents(0), report.Reconciliation.Variance)
}

func TestShiftService_CloseWithoutOpenShiftIsInvariantViolation(t *testing.T) {
	f := newShiftFixture(t)

	_, err := f.shifts.Close(context.Background(), f.terminalID, 100.00)
	require.Error(t, err)
	assert.True(t, apperror.IsInvariantError(err))
}

func TestShiftService_CloseIsTerminal(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	shift, err := f.shifts.Open(ctx, f.terminalID, f.userID, 100.00)
	require.NoError(t, err)

	_, err = f.shifts.Close(ctx, f.terminalID, 100.00)
	require.NoError(t, err)

	_, err = f.shifts.Close(ctx, f.terminalID, 100.00)
	require.Error(t, err)
	assert.True(t, apperror.IsInvariantError(err))

	// The closed shift accepts no further movements.
	_, err = f.shifts.RecordMovement(ctx, f.terminalID, enum.TxnCashIn, 10.00, "late")
	assert.Error(t, err)

	closed, err := f.shiftRepo.GetByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ShiftStatusClosed, closed.Status)
	require.NotNil(t, closed.EndTime)
	require.NotNil(t, closed.Variance)
	assert.Equal(t, money.Cents(0), *closed.Variance)
}

func TestShiftService_ZReportIsIdempotent(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	shift, err := f.shifts.Open(ctx, f.terminalID, f.userID, 100.00)
	require.NoError(t, err)
	f.saleOrder(t, shift.ID, enum.TenderCash, 2160)
	f.saleOrder(t, shift.ID, enum.TenderCard, 1080)

	_, err = f.shifts.ZReport(ctx, shift.ID)
	assert.Error(t, err, "no report while the shift is open")

	first, err := f.shifts.Close(ctx, f.terminalID, 121.60)
	require.NoError(t, err)

	second, err := f.shifts.ZReport(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := f.shifts.ZReport(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestShiftService_ZReportMethodOrderIsStable(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	shift, err := f.shifts.Open(ctx, f.terminalID, f.userID, 0)
	require.NoError(t, err)

	// Sales arrive in no particular method order.
	f.saleOrder(t, shift.ID, enum.TenderGiftCard, 500)
	f.saleOrder(t, shift.ID, enum.TenderCash, 1000)
	f.saleOrder(t, shift.ID, enum.TenderCard, 2000)

	report, err := f.shifts.Close(ctx, f.terminalID, 10.00)
	require.NoError(t, err)

	require.Len(t, report.SalesByMethod, 3)
	assert.Equal(t, enum.TenderCash, report.SalesByMethod[0].Method)
	assert.Equal(t, enum.TenderCard, report.SalesByMethod[1].Method)
	assert.Equal(t, enum.TenderGiftCard, report.SalesByMethod[2].Method)
}
