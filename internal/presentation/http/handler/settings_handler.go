package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/marubini/tillpoint-api/internal/application/service"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles POS settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the store settings row
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update applies a partial update to the settings row. Open carts keep
// the tax rate they were created with.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		Currency:                 req.Currency,
		TaxRate:                  req.TaxRate,
		CashierMaxDiscountPct:    req.CashierMaxDiscountPct,
		CashierMaxDiscountAmount: req.CashierMaxDiscountAmount,
		ManagerMaxDiscountPct:    req.ManagerMaxDiscountPct,
		ManagerMaxDiscountAmount: req.ManagerMaxDiscountAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
