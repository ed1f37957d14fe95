package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/marubini/tillpoint-api/internal/application/service"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/response"
)

// StoreHandler handles terminal, customer, and gift card HTTP requests
type StoreHandler struct {
	storeService *service.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// ListTerminals returns all registered terminals
func (h *StoreHandler) ListTerminals(c *gin.Context) {
	terminals, err := h.storeService.ListTerminals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Terminals retrieved successfully", terminals)
}

// RegisterTerminal registers a new point-of-sale terminal
func (h *StoreHandler) RegisterTerminal(c *gin.Context) {
	var req request.RegisterTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	terminal, err := h.storeService.RegisterTerminal(c.Request.Context(), req.Name, req.Location)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Terminal registered", terminal)
}

// ListCustomers returns all customer records
func (h *StoreHandler) ListCustomers(c *gin.Context) {
	customers, err := h.storeService.ListCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", customers)
}

// CreateCustomer creates a customer record
func (h *StoreHandler) CreateCustomer(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.storeService.CreateCustomer(c.Request.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// IssueGiftCard issues a new gift card with an opening balance
func (h *StoreHandler) IssueGiftCard(c *gin.Context) {
	var req request.IssueGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.storeService.IssueGiftCard(c.Request.Context(), req.Balance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Gift card issued", card)
}

// GetGiftCard looks up a gift card by its card number
func (h *StoreHandler) GetGiftCard(c *gin.Context) {
	cardNo := c.Param("cardNo")
	if cardNo == "" {
		response.BadRequest(c, "Card number is required")
		return
	}

	card, err := h.storeService.GetGiftCard(c.Request.Context(), cardNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Gift card retrieved successfully", card)
}
