package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	domainRepo "github.com/marubini/tillpoint-api/internal/domain/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) ListApprovers(ctx context.Context, minRole enum.Role) ([]entity.User, error) {
	roles := make([]enum.Role, 0, 2)
	for _, role := range []enum.Role{enum.RoleCashier, enum.RoleManager, enum.RoleAdmin} {
		if role.AtLeast(minRole) {
			roles = append(roles, role)
		}
	}

	var users []entity.User
	err := r.db.WithContext(ctx).
		Where("role IN ? AND active = ? AND pin_hash IS NOT NULL", roles, true).
		Find(&users).Error
	return users, err
}

type terminalRepository struct {
	db *gorm.DB
}

// NewTerminalRepository creates a new terminal repository
func NewTerminalRepository(db *gorm.DB) domainRepo.TerminalRepository {
	return &terminalRepository{db: db}
}

func (r *terminalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Terminal, error) {
	var terminal entity.Terminal
	err := r.db.WithContext(ctx).First(&terminal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &terminal, err
}

func (r *terminalRepository) List(ctx context.Context) ([]entity.Terminal, error) {
	var terminals []entity.Terminal
	err := r.db.WithContext(ctx).Order("name ASC").Find(&terminals).Error
	return terminals, err
}

func (r *terminalRepository) Create(ctx context.Context, terminal *entity.Terminal) error {
	return r.db.WithContext(ctx).Create(terminal).Error
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}
