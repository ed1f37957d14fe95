package request

// OpenShiftRequest opens a shift with a counted opening balance
type OpenShiftRequest struct {
	OpeningBalance float64 `json:"opening_balance" binding:"min=0"`
}

// CashMovementRequest records a manual cash movement on the open shift
type CashMovementRequest struct {
	Type   string  `json:"type" binding:"required,oneof=cashIn cashOut noSale"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason,omitempty"`
}

// CloseShiftRequest closes the shift with the counted drawer balance
type CloseShiftRequest struct {
	CountedBalance float64 `json:"counted_balance" binding:"min=0"`
}
