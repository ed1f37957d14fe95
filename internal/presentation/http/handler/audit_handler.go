package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/application/service"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/internal/presentation/http/dto/response"
)

// AuditHandler exposes the override audit log
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List handles listing audit entries with actor, terminal, and kind filters
func (h *AuditHandler) List(c *gin.Context) {
	params := &repository.AuditFilterParams{
		Pagination: paginationFromQuery(c),
	}

	if actorIDStr := c.Query("actor_id"); actorIDStr != "" {
		actorID, err := uuid.Parse(actorIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid actor ID")
			return
		}
		params.ActorID = &actorID
	}
	if terminalIDStr := c.Query("terminal_id"); terminalIDStr != "" {
		terminalID, err := uuid.Parse(terminalIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid terminal ID")
			return
		}
		params.TerminalID = &terminalID
	}
	if kindStr := c.Query("kind"); kindStr != "" {
		kind := enum.AuditKind(kindStr)
		params.Kind = &kind
	}

	result, err := h.auditService.ListEntries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Audit entries retrieved successfully", result)
}
