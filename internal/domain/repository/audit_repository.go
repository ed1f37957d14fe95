package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/pkg/pagination"
)

// AuditRepository defines the interface for the append-only override
// audit ledger. There is deliberately no update or delete.
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.OverrideAuditEntry) error
	List(ctx context.Context, params *AuditFilterParams) ([]entity.OverrideAuditEntry, int64, error)
}

// AuditFilterParams contains filtering parameters for audit queries
type AuditFilterParams struct {
	Pagination *pagination.PaginationParams
	ActorID    *uuid.UUID
	TerminalID *uuid.UUID
	Kind       *enum.AuditKind
}
