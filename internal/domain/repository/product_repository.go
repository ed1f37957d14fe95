package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/pkg/pagination"
)

// ProductRepository defines the interface for catalog reads and stock
// adjustment. The engine never mutates catalog data beyond stock.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetVariation(ctx context.Context, id uuid.UUID) (*entity.Variation, error)
	GetModifiers(ctx context.Context, ids []uuid.UUID) ([]entity.ModifierOption, error)

	// AvailableStock returns the on-hand quantity for a product or,
	// when variationID is set, for that variation.
	AvailableStock(ctx context.Context, productID uuid.UUID, variationID *uuid.UUID) (int, error)

	// AtomicDecrementBatch decrements stock for each product, failing
	// the whole batch when any product has insufficient stock. The IDs
	// of failed products are returned.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error)
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	ActiveOnly bool
}

// CategoryRepository defines the interface for category reads
type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
}
