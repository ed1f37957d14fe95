package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/application/service"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles payment collection for a terminal's cart
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Begin freezes the cart into a checkout session
func (h *CheckoutHandler) Begin(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	session, err := h.checkoutService.Begin(c.Request.Context(), terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Checkout started", session)
}

// Session returns the in-flight checkout session for a terminal
func (h *CheckoutHandler) Session(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	session, err := h.checkoutService.Session(terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Checkout session retrieved", session)
}

// Tender records one payment instrument against the session
func (h *CheckoutHandler) Tender(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	var req request.TenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.checkoutService.AddTender(c.Request.Context(), terminalID, &service.TenderInput{
		Method:   enum.TenderMethod(req.Method),
		Amount:   req.Amount,
		Tendered: req.Tendered,
		CardNo:   req.CardNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tender recorded", session)
}

// Cancel abandons the checkout session; the cart survives untouched
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	h.checkoutService.Cancel(terminalID)
	response.OK(c, "Checkout cancelled", nil)
}

// SplitEven quotes an n-way even partition of the session target
func (h *CheckoutHandler) SplitEven(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	var req request.SplitEvenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shares, err := h.checkoutService.SplitEven(terminalID, req.Parties)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Split quote generated", gin.H{"shares": shares})
}

// SplitBySeat quotes per-seat totals for the session
func (h *CheckoutHandler) SplitBySeat(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	split, err := h.checkoutService.SplitBySeat(terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Split quote generated", split)
}

// SplitItems quotes the total owed for a chosen subset of lines
func (h *CheckoutHandler) SplitItems(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	var req request.SplitItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lineIDs := make([]uuid.UUID, 0, len(req.LineIDs))
	for _, s := range req.LineIDs {
		lineIDs = append(lineIDs, uuid.MustParse(s))
	}

	total, err := h.checkoutService.SplitItems(terminalID, lineIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Split quote generated", gin.H{"total": total})
}

// Complete finalizes the settled session into a persisted order. This is
// the only point where stock and gift card balances actually move.
func (h *CheckoutHandler) Complete(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	order, err := h.checkoutService.Complete(c.Request.Context(), terminalID, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order completed", order)
}
