package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/application/service"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/response"
)

// ShiftHandler handles drawer shift HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// Open opens a shift on a terminal with a counted opening float
func (h *ShiftHandler) Open(c *gin.Context) {
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

	var req request.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shift, err := h.shiftService.Open(c.Request.Context(), terminalID, *userID, req.OpeningBalance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift opened", shift)
}

// Current returns the open shift on a terminal
func (h *ShiftHandler) Current(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	shift, err := h.shiftService.Current(c.Request.Context(), terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift retrieved successfully", shift)
}

// Movement records a manual cash movement on the open shift
func (h *ShiftHandler) Movement(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	var req request.CashMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	txn, err := h.shiftService.RecordMovement(c.Request.Context(), terminalID, enum.CashTransactionType(req.Type), req.Amount, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash movement recorded", txn)
}

// Close closes the open shift and returns its Z-report
func (h *ShiftHandler) Close(c *gin.Context) {
	terminalID, ok := pathUUID(c, "terminalID")
	if !ok {
		response.BadRequest(c, "Invalid terminal ID")
		return
	}

	var req request.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.shiftService.Close(c.Request.Context(), terminalID, req.CountedBalance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift closed", report)
}

// ZReport regenerates the Z-report for a closed shift
func (h *ShiftHandler) ZReport(c *gin.Context) {
	shiftID, ok := pathUUID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	report, err := h.shiftService.ZReport(c.Request.Context(), shiftID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Z-report generated", report)
}

// List handles listing past shifts with terminal and user filters
func (h *ShiftHandler) List(c *gin.Context) {
	params := &repository.ShiftFilterParams{
		Pagination: paginationFromQuery(c),
	}

	if terminalIDStr := c.Query("terminal_id"); terminalIDStr != "" {
		terminalID, err := uuid.Parse(terminalIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid terminal ID")
			return
		}
		params.TerminalID = &terminalID
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		params.UserID = &userID
	}

	result, err := h.shiftService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Shifts retrieved successfully", result)
}
