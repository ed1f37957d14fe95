package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/pkg/pagination"
)

// OrderRepository defines the interface for completed-order storage.
// Orders arrive fully computed and internally consistent; durability
// and retry are this layer's responsibility, not the engine's.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// Delete removes an order with its lines and tenders. Only used to
	// unwind a completion that failed after the order was stored.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ShiftID    *uuid.UUID
	TerminalID *uuid.UUID
	UserID     *uuid.UUID
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
