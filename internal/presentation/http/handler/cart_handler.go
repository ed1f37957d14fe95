package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/application/service"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart-related HTTP requests. All routes are scoped
// to a terminal: each terminal carries at most one open cart.
type CartHandler struct {
	cartService *service.CartService
	authService *service.AuthService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, authService *service.AuthService) *CartHandler {
	return &CartHandler{cartService: cartService, authService: authService}
}

// actor resolves the authenticated user for commands that are checked
// against role ceilings.
func (h *CartHandler) actor(c *gin.Context) (*entity.User, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), userID.String())
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return user, true
}

// commandResult renders a gated command outcome. Parked commands answer
// 202 with the approval token; applied commands answer 200 with the cart.
func commandResult(c *gin.Context, result *service.CommandResult) {
	if result.RequiresApproval {
		response.Success(c, 202, "Manager approval required", result)
		return
	}
	response.OK(c, "Command applied", result)
}

// Get returns the cart for a terminal with per-line and order pricing
func (h *CartHandler) Get(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	cart, err := h.cartService.GetCart(terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", cart)
}

// AddLine appends a product to the cart as a new line
func (h *CartHandler) AddLine(c *gin.Context) {
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

	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.AddLineInput{
		ProductID:  uuid.MustParse(req.ProductID),
		Quantity:   req.Quantity,
		SeatNumber: req.SeatNumber,
		Course:     req.Course,
	}
	if req.VariationID != nil {
		vid := uuid.MustParse(*req.VariationID)
		input.VariationID = &vid
	}
	for _, m := range req.Modifiers {
		input.Modifiers = append(input.Modifiers, service.ModifierSelection{
			ModifierID: uuid.MustParse(m.ModifierID),
			Quantity:   m.Quantity,
		})
	}

	cart, err := h.cartService.AddLine(c.Request.Context(), terminalID, *userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line added successfully", cart)
}

// UpdateQuantity changes a line's quantity; zero removes the line silently
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}
	lineID, ok := pathUUID(c, "lineID")
	if !ok {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), terminalID, lineID, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated successfully", cart)
}

// AssignSeat sets or clears the seat number on a line
func (h *CartHandler) AssignSeat(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}
	lineID, ok := pathUUID(c, "lineID")
	if !ok {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.AssignSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.AssignSeat(terminalID, lineID, req.SeatNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Seat assigned successfully", cart)
}

// SetModifiers replaces the modifier selection on a line
func (h *CartHandler) SetModifiers(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}
	lineID, ok := pathUUID(c, "lineID")
	if !ok {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.SetModifiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	selections := make([]service.ModifierSelection, 0, len(req.Modifiers))
	for _, m := range req.Modifiers {
		selections = append(selections, service.ModifierSelection{
			ModifierID: uuid.MustParse(m.ModifierID),
			Quantity:   m.Quantity,
		})
	}

	cart, err := h.cartService.SetModifiers(c.Request.Context(), terminalID, lineID, selections)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Modifiers updated successfully", cart)
}

// LineDiscount applies a discount to a single line, subject to role ceilings
func (h *CartHandler) LineDiscount(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}
	lineID, ok := pathUUID(c, "lineID")
	if !ok {
		response.BadRequest(c, "Invalid line ID")
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.ApplyLineDiscount(c.Request.Context(), terminalID, lineID, actor, entity.Discount{
		Type:       enum.DiscountType(req.Type),
		Value:      req.Value,
		Reason:     enum.DiscountReason(req.Reason),
		ReasonText: req.ReasonText,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	commandResult(c, result)
}

// OrderDiscount applies a discount across the whole order
func (h *CartHandler) OrderDiscount(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.ApplyOrderDiscount(c.Request.Context(), terminalID, actor, entity.Discount{
		Type:       enum.DiscountType(req.Type),
		Value:      req.Value,
		Reason:     enum.DiscountReason(req.Reason),
		ReasonText: req.ReasonText,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	commandResult(c, result)
}

// RemoveOrderDiscount clears the order-level discount
func (h *CartHandler) RemoveOrderDiscount(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	cart, err := h.cartService.RemoveOrderDiscount(terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order discount removed", cart)
}

// OverridePrice replaces a line's unit price; always lands in the audit log
func (h *CartHandler) OverridePrice(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}
	lineID, ok := pathUUID(c, "lineID")
	if !ok {
		response.BadRequest(c, "Invalid line ID")
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req request.OverridePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.OverridePrice(c.Request.Context(), terminalID, lineID, actor, req.Value, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	commandResult(c, result)
}

// VoidLine removes a line with a recorded reason
func (h *CartHandler) VoidLine(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}
	lineID, ok := pathUUID(c, "lineID")
	if !ok {
		response.BadRequest(c, "Invalid line ID")
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req request.VoidLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.VoidLine(c.Request.Context(), terminalID, lineID, actor, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	commandResult(c, result)
}

// Tip sets the tip amount on the cart
func (h *CartHandler) Tip(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	var req request.SetTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.SetTip(terminalID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tip set successfully", cart)
}

// Customer attaches a customer record to the cart
func (h *CartHandler) Customer(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.SetCustomer(c.Request.Context(), terminalID, uuid.MustParse(req.CustomerID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer attached successfully", cart)
}

// Info updates order type, table number, and notes
func (h *CartHandler) Info(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	var req request.CartInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CartInfoInput{
		TableNumber: req.TableNumber,
		Notes:       req.Notes,
	}
	if req.OrderType != nil {
		orderType := enum.OrderType(*req.OrderType)
		input.OrderType = &orderType
	}

	cart, err := h.cartService.UpdateCartInfo(terminalID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart info updated successfully", cart)
}

// Clear discards the cart without a trace
func (h *CartHandler) Clear(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	h.cartService.Clear(terminalID)
	response.OK(c, "Cart cleared", nil)
}

// Approve resolves a parked command with a manager PIN
func (h *CartHandler) Approve(c *gin.Context) {
	var req request.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.Approve(c.Request.Context(), uuid.MustParse(req.Token), req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Command approved", result)
}
