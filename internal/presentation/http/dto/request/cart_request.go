package request

// ModifierSelectionRequest selects one modifier option and a quantity
type ModifierSelectionRequest struct {
	ModifierID string `json:"modifier_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity"`
}

// AddLineRequest adds a product to the cart
type AddLineRequest struct {
	ProductID   string                     `json:"product_id" binding:"required,uuid"`
	VariationID *string                    `json:"variation_id,omitempty" binding:"omitempty,uuid"`
	Quantity    int                        `json:"quantity" binding:"required,min=1"`
	Modifiers   []ModifierSelectionRequest `json:"modifiers,omitempty"`
	SeatNumber  *int                       `json:"seat_number,omitempty"`
	Course      *string                    `json:"course,omitempty"`
}

// UpdateQuantityRequest changes a line's quantity; zero removes the line
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// AssignSeatRequest sets or clears the seat number on a line
type AssignSeatRequest struct {
	SeatNumber *int `json:"seat_number"`
}

// SetModifiersRequest replaces the modifier selection on a line
type SetModifiersRequest struct {
	Modifiers []ModifierSelectionRequest `json:"modifiers"`
}

// DiscountRequest applies a discount to a line or the whole order
type DiscountRequest struct {
	Type       string  `json:"type" binding:"required,oneof=percentage fixed"`
	Value      float64 `json:"value" binding:"required,gt=0"`
	Reason     string  `json:"reason" binding:"required"`
	ReasonText string  `json:"reason_text,omitempty"`
}

// OverridePriceRequest replaces a line's unit price
type OverridePriceRequest struct {
	Value  float64 `json:"value" binding:"min=0"`
	Reason string  `json:"reason" binding:"required"`
}

// VoidLineRequest removes a line with an audited reason
type VoidLineRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SetTipRequest sets the tip amount on the cart
type SetTipRequest struct {
	Amount float64 `json:"amount" binding:"min=0"`
}

// SetCustomerRequest attaches a customer to the cart
type SetCustomerRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
}

// CartInfoRequest updates order type, table number, and notes
type CartInfoRequest struct {
	OrderType   *string `json:"order_type,omitempty"`
	TableNumber *int    `json:"table_number,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ApproveRequest resolves a parked command with a manager PIN
type ApproveRequest struct {
	Token string `json:"token" binding:"required,uuid"`
	PIN   string `json:"pin" binding:"required"`
}
