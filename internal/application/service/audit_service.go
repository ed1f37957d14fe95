package service

import (
	"context"

	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/pagination"
)

// AuditService reads the override/void audit ledger. The ledger is
// append-only; writes happen inside the cart commands themselves.
type AuditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// ListEntries lists audit entries with filtering
func (s *AuditService) ListEntries(ctx context.Context, params *repository.AuditFilterParams) (*pagination.PaginatedResult[entity.OverrideAuditEntry], error) {
	entries, total, err := s.auditRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}
