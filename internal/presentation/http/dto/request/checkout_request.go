package request

// TenderRequest submits one payment instrument toward the session
type TenderRequest struct {
	Method   string  `json:"method" binding:"required,oneof=cash card cheque giftcard"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Tendered float64 `json:"tendered,omitempty"`
	CardNo   string  `json:"card_no,omitempty"`
}

// SplitEvenRequest asks for an n-way even partition quote
type SplitEvenRequest struct {
	Parties int `json:"parties" binding:"required,min=2"`
}

// SplitItemsRequest asks for the subtotal of a subset of cart lines
type SplitItemsRequest struct {
	LineIDs []string `json:"line_ids" binding:"required,min=1,dive,uuid"`
}
