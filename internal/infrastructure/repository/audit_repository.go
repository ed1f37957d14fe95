package repository

import (
	"context"

	"github.com/marubini/tillpoint-api/internal/domain/entity"
	domainRepo "github.com/marubini/tillpoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository. The ledger is
// append-only; this implementation exposes no update or delete.
func NewAuditRepository(db *gorm.DB) domainRepo.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *entity.OverrideAuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, params *domainRepo.AuditFilterParams) ([]entity.OverrideAuditEntry, int64, error) {
	var entries []entity.OverrideAuditEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.OverrideAuditEntry{})

	if params.ActorID != nil {
		query = query.Where("actor_id = ?", *params.ActorID)
	}

	if params.TerminalID != nil {
		query = query.Where("terminal_id = ?", *params.TerminalID)
	}

	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&entries).Error

	return entries, total, err
}
