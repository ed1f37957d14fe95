package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/money"
	"github.com/marubini/tillpoint-api/pkg/pagination"
)

// ShiftService owns the shift lifecycle for every terminal: open,
// accumulate orders and cash movements, close once, report. The mutex
// makes the open-to-closed transition a single atomic step; nothing
// can be appended to a shift after its closing balance is recorded.
type ShiftService struct {
	mu        sync.Mutex
	shiftRepo repository.ShiftRepository
	orderRepo repository.OrderRepository
}

// NewShiftService creates a new shift service
func NewShiftService(shiftRepo repository.ShiftRepository, orderRepo repository.OrderRepository) *ShiftService {
	return &ShiftService{shiftRepo: shiftRepo, orderRepo: orderRepo}
}

// Open starts a shift on a terminal with a counted opening balance.
// One open shift per terminal at a time.
func (s *ShiftService) Open(ctx context.Context, terminalID, userID uuid.UUID, openingBalance float64) (*entity.Shift, error) {
	if openingBalance < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "opening_balance", Message: "must not be negative"},
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.shiftRepo.GetOpenByTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A shift is already open on this terminal")
	}

	shift := &entity.Shift{
		TerminalID:     terminalID,
		UserID:         userID,
		Status:         enum.ShiftStatusOpen,
		StartTime:      time.Now(),
		OpeningBalance: money.FromFloat(openingBalance),
	}
	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// Current returns the open shift on a terminal.
func (s *ShiftService) Current(ctx context.Context, terminalID uuid.UUID) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetOpenByTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Open shift")
	}
	return shift, nil
}

// RecordMovement appends a manual cash movement (cashIn, cashOut,
// noSale) to the terminal's open shift. noSale records a drawer open
// with no amount.
func (s *ShiftService) RecordMovement(ctx context.Context, terminalID uuid.UUID, txnType enum.CashTransactionType, amount float64, reason string) (*entity.CashTransaction, error) {
	switch txnType {
	case enum.TxnCashIn, enum.TxnCashOut:
		if amount <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "amount", Message: "must be positive"},
			})
		}
	case enum.TxnNoSale:
		amount = 0
	default:
		return nil, apperror.NewBadRequestError("Unknown cash movement type")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shift, err := s.shiftRepo.GetOpenByTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Open shift")
	}

	txn := &entity.CashTransaction{
		ShiftID: shift.ID,
		Type:    txnType,
		Method:  enum.TenderCash,
		Amount:  money.FromFloat(amount),
		Reason:  reason,
	}
	if err := s.shiftRepo.AppendTransaction(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// RecordSale appends one sale transaction per tender of a completed
// order to the shift's log. Called by checkout completion while the
// shift is known to be open.
func (s *ShiftService) RecordSale(ctx context.Context, shiftID uuid.UUID, order *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range order.Tenders {
		txn := &entity.CashTransaction{
			ShiftID: shiftID,
			Type:    enum.TxnSale,
			Method:  order.Tenders[i].Method,
			Amount:  order.Tenders[i].Amount,
			OrderID: &order.ID,
		}
		if err := s.shiftRepo.AppendTransaction(ctx, txn); err != nil {
			return err
		}
	}
	return nil
}

// RecordReturn appends return transactions mirroring an order's
// tenders to the terminal's open shift.
func (s *ShiftService) RecordReturn(ctx context.Context, terminalID uuid.UUID, order *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shift, err := s.shiftRepo.GetOpenByTerminal(ctx, terminalID)
	if err != nil {
		return err
	}
	if shift == nil {
		return apperror.NewNotFoundError("Open shift")
	}

	for i := range order.Tenders {
		txn := &entity.CashTransaction{
			ShiftID: shift.ID,
			Type:    enum.TxnReturn,
			Method:  order.Tenders[i].Method,
			Amount:  order.Tenders[i].Amount,
			Reason:  "return of " + order.ReceiptNo,
			OrderID: &order.ID,
		}
		if err := s.shiftRepo.AppendTransaction(ctx, txn); err != nil {
			return err
		}
	}
	return nil
}

// Close records the counted closing balance and ends the shift. The
// transition is irreversible and atomic: the transaction log freezes
// and the Z-report snapshot is computed in the same step. Closing an
// already-closed shift is a caller bug.
func (s *ShiftService) Close(ctx context.Context, terminalID uuid.UUID, countedBalance float64) (*entity.ZReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shift, err := s.shiftRepo.GetOpenByTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewInvariantError("close requested with no open shift on terminal")
	}

	full, err := s.shiftRepo.GetWithTransactions(ctx, shift.ID)
	if err != nil {
		return nil, err
	}
	if !full.IsOpen() {
		return nil, apperror.NewInvariantError("shift is already closed")
	}

	now := time.Now()
	counted := money.FromFloat(countedBalance)
	expected := ExpectedCash(full)
	variance := counted - expected

	full.Status = enum.ShiftStatusClosed
	full.EndTime = &now
	full.ClosingBalance = &counted
	full.ExpectedCash = &expected
	full.Variance = &variance

	if err := s.shiftRepo.Update(ctx, full); err != nil {
		return nil, err
	}

	orders, err := s.ordersOf(ctx, full.ID)
	if err != nil {
		return nil, err
	}
	return BuildZReport(full, orders), nil
}

// ZReport regenerates the report for a closed shift. A second
// generation yields output identical to the one produced at close.
func (s *ShiftService) ZReport(ctx context.Context, shiftID uuid.UUID) (*entity.ZReport, error) {
	shift, err := s.shiftRepo.GetWithTransactions(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}
	if shift.IsOpen() {
		return nil, apperror.NewBadRequestError("Shift is still open")
	}

	orders, err := s.ordersOf(ctx, shift.ID)
	if err != nil {
		return nil, err
	}
	return BuildZReport(shift, orders), nil
}

// List returns shifts with pagination.
func (s *ShiftService) List(ctx context.Context, params *repository.ShiftFilterParams) (*pagination.PaginatedResult[entity.Shift], error) {
	shifts, total, err := s.shiftRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(shifts, pag), nil
}

func (s *ShiftService) ordersOf(ctx context.Context, shiftID uuid.UUID) ([]entity.Order, error) {
	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10000},
		ShiftID:    &shiftID,
	}
	orders, _, err := s.orderRepo.List(ctx, params)
	return orders, err
}

// ExpectedCash derives the drawer's expected cash from the shift's
// transaction log: opening balance plus cash sales, minus cash
// returns, plus cash in, minus cash out. Non-cash tenders never touch
// the drawer.
func ExpectedCash(shift *entity.Shift) money.Cents {
	expected := shift.OpeningBalance
	for i := range shift.Transactions {
		txn := &shift.Transactions[i]
		switch txn.Type {
		case enum.TxnSale:
			if txn.Method == enum.TenderCash {
				expected += txn.Amount
			}
		case enum.TxnReturn:
			if txn.Method == enum.TenderCash {
				expected -= txn.Amount
			}
		case enum.TxnCashIn:
			expected += txn.Amount
		case enum.TxnCashOut:
			expected -= txn.Amount
		}
	}
	return expected
}

// tenderMethodOrder fixes the display order of payment methods in
// reports so repeated generations compare equal.
var tenderMethodOrder = []enum.TenderMethod{
	enum.TenderCash, enum.TenderCard, enum.TenderCheque, enum.TenderGiftCard,
}

// BuildZReport aggregates a closed shift into its end-of-day summary.
// It is a pure read: same shift and orders in, same report out.
func BuildZReport(shift *entity.Shift, orders []entity.Order) *entity.ZReport {
	report := &entity.ZReport{
		ShiftID:    shift.ID,
		TerminalID: shift.TerminalID,
		UserID:     shift.UserID,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
	}

	byMethod := make(map[enum.TenderMethod]*entity.MethodSales)
	byCategory := make(map[string]*entity.CategorySales)

	for i := range orders {
		order := &orders[i]
		report.TotalOrders++
		report.GrossSales += order.Total
		report.TotalTax += order.Tax
		report.TotalTips += order.Tip

		for j := range order.Tenders {
			t := &order.Tenders[j]
			ms, ok := byMethod[t.Method]
			if !ok {
				ms = &entity.MethodSales{Method: t.Method}
				byMethod[t.Method] = ms
			}
			ms.Amount += t.Amount
			ms.Count++
		}

		for j := range order.Lines {
			l := &order.Lines[j]
			category := l.CategoryName
			if category == "" {
				category = "Uncategorized"
			}
			cs, ok := byCategory[category]
			if !ok {
				cs = &entity.CategorySales{Category: category}
				byCategory[category] = cs
			}
			cs.Quantity += l.Quantity
			cs.Amount += l.LineTotal
		}
	}

	for _, method := range tenderMethodOrder {
		if ms, ok := byMethod[method]; ok {
			report.SalesByMethod = append(report.SalesByMethod, *ms)
		}
	}

	categories := make([]string, 0, len(byCategory))
	for name := range byCategory {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	for _, name := range categories {
		report.SalesByCategory = append(report.SalesByCategory, *byCategory[name])
	}

	rec := entity.CashReconciliation{OpeningBalance: shift.OpeningBalance}
	for i := range shift.Transactions {
		txn := &shift.Transactions[i]
		switch txn.Type {
		case enum.TxnSale:
			if txn.Method == enum.TenderCash {
				rec.CashSales += txn.Amount
			}
		case enum.TxnReturn:
			if txn.Method == enum.TenderCash {
				rec.CashReturns += txn.Amount
			}
		case enum.TxnCashIn:
			rec.CashIn += txn.Amount
		case enum.TxnCashOut:
			rec.CashOut += txn.Amount
		case enum.TxnNoSale:
			rec.NoSaleCount++
		}
	}
	rec.ExpectedCash = ExpectedCash(shift)
	if shift.ClosingBalance != nil {
		rec.CountedCash = *shift.ClosingBalance
		rec.Variance = rec.CountedCash - rec.ExpectedCash
	}
	report.Reconciliation = rec

	return report
}
