package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/money"
)

// ZReport is the end-of-shift summary. It is derived from a closed
// shift on demand and never stored or mutated; generating it twice
// from the same shift yields identical output.
type ZReport struct {
	ShiftID    uuid.UUID  `json:"shift_id"`
	TerminalID uuid.UUID  `json:"terminal_id"`
	UserID     uuid.UUID  `json:"user_id"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`

	TotalOrders int         `json:"total_orders"`
	GrossSales  money.Cents `json:"gross_sales"`
	TotalTax    money.Cents `json:"total_tax"`
	TotalTips   money.Cents `json:"total_tips"`

	SalesByMethod   []MethodSales   `json:"sales_by_method"`
	SalesByCategory []CategorySales `json:"sales_by_category"`

	Reconciliation CashReconciliation `json:"reconciliation"`
}

// MethodSales aggregates tendered amounts for one payment method
type MethodSales struct {
	Method enum.TenderMethod `json:"method"`
	Amount money.Cents       `json:"amount"`
	Count  int               `json:"count"`
}

// CategorySales aggregates sold line totals for one product category
type CategorySales struct {
	Category string      `json:"category"`
	Quantity int         `json:"quantity"`
	Amount   money.Cents `json:"amount"`
}

// CashReconciliation is the drawer reconciliation block of a Z-report
type CashReconciliation struct {
	OpeningBalance money.Cents `json:"opening_balance"`
	CashSales      money.Cents `json:"cash_sales"`
	CashReturns    money.Cents `json:"cash_returns"`
	CashIn         money.Cents `json:"cash_in"`
	CashOut        money.Cents `json:"cash_out"`
	NoSaleCount    int         `json:"no_sale_count"`
	ExpectedCash   money.Cents `json:"expected_cash"`
	CountedCash    money.Cents `json:"counted_cash"`
	Variance       money.Cents `json:"variance"`
}
