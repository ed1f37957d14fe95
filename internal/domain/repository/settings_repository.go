package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
)

// SettingsRepository defines the interface for the POS settings row
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.PosSettings, error)
	Update(ctx context.Context, settings *entity.PosSettings) error
}

// IdempotencyRepository defines the interface for idempotency key storage
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, entry *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
