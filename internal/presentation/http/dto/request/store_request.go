package request

// RegisterTerminalRequest registers a new point-of-sale terminal
type RegisterTerminalRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Location string `json:"location,omitempty"`
}

// CreateCustomerRequest creates a customer record
type CreateCustomerRequest struct {
	Name  string  `json:"name" binding:"required,min=2,max=255"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
}

// IssueGiftCardRequest issues a gift card with an opening balance
type IssueGiftCardRequest struct {
	Balance float64 `json:"balance" binding:"required,gt=0"`
}

// UpdateSettingsRequest applies a partial update to the POS settings
type UpdateSettingsRequest struct {
	Currency                 *string  `json:"currency,omitempty"`
	TaxRate                  *float64 `json:"tax_rate,omitempty"`
	CashierMaxDiscountPct    *float64 `json:"cashier_max_discount_pct,omitempty"`
	CashierMaxDiscountAmount *float64 `json:"cashier_max_discount_amount,omitempty"`
	ManagerMaxDiscountPct    *float64 `json:"manager_max_discount_pct,omitempty"`
	ManagerMaxDiscountAmount *float64 `json:"manager_max_discount_amount,omitempty"`
}
