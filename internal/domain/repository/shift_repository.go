package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/pkg/pagination"
)

// ShiftRepository defines the interface for shift storage. The
// transaction log is append-only; Update is used only for the one-way
// open-to-closed transition.
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	GetWithTransactions(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	GetOpenByTerminal(ctx context.Context, terminalID uuid.UUID) (*entity.Shift, error)
	Update(ctx context.Context, shift *entity.Shift) error
	AppendTransaction(ctx context.Context, txn *entity.CashTransaction) error
	List(ctx context.Context, params *ShiftFilterParams) ([]entity.Shift, int64, error)
}

// ShiftFilterParams contains filtering parameters for shift queries
type ShiftFilterParams struct {
	Pagination *pagination.PaginationParams
	TerminalID *uuid.UUID
	UserID     *uuid.UUID
}
