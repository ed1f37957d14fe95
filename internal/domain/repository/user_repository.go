package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error

	// ListApprovers returns active users whose role is at least the
	// given role and who have an approval PIN set.
	ListApprovers(ctx context.Context, minRole enum.Role) ([]entity.User, error)
}

// TerminalRepository defines the interface for terminal registration
type TerminalRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Terminal, error)
	List(ctx context.Context) ([]entity.Terminal, error)
	Create(ctx context.Context, terminal *entity.Terminal) error
}

// CustomerRepository defines the interface for customer lookups
type CustomerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	List(ctx context.Context) ([]entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
}
