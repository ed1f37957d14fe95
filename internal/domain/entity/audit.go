package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"gorm.io/gorm"
)

// OverrideAuditEntry is an append-only audit record of a void, price
// override, or gated discount. Entries are immutable once created;
// they are never edited or deleted. When an action needed manager
// approval, ApproverID records the approving identity and ActorID the
// original requester.
type OverrideAuditEntry struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ActorID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"actor_id"`
	ApproverID  *uuid.UUID     `gorm:"type:uuid" json:"approver_id,omitempty"`
	TerminalID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"terminal_id"`
	LineItemID  uuid.UUID      `gorm:"type:uuid;not null" json:"line_item_id"`
	Kind        enum.AuditKind `gorm:"size:50;not null" json:"kind"`
	Reason      string         `gorm:"size:255;not null" json:"reason"`
	BeforeValue string         `gorm:"size:255" json:"before_value"`
	AfterValue  string         `gorm:"size:255" json:"after_value"`
	CreatedAt   time.Time      `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new audit entry
func (e *OverrideAuditEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OverrideAuditEntry model
func (OverrideAuditEntry) TableName() string {
	return "override_audit_entries"
}
