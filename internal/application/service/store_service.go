package service

import (
	"context"

	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/money"
	"github.com/marubini/tillpoint-api/pkg/utils"
)

// StoreService covers the small registries around the engine:
// terminals, customers, and gift card issuance.
type StoreService struct {
	terminalRepo repository.TerminalRepository
	customerRepo repository.CustomerRepository
	giftCardRepo repository.GiftCardRepository
}

// NewStoreService creates a new store service
func NewStoreService(
	terminalRepo repository.TerminalRepository,
	customerRepo repository.CustomerRepository,
	giftCardRepo repository.GiftCardRepository,
) *StoreService {
	return &StoreService{
		terminalRepo: terminalRepo,
		customerRepo: customerRepo,
		giftCardRepo: giftCardRepo,
	}
}

// ListTerminals lists registered terminals
func (s *StoreService) ListTerminals(ctx context.Context) ([]entity.Terminal, error) {
	return s.terminalRepo.List(ctx)
}

// RegisterTerminal registers a new terminal
func (s *StoreService) RegisterTerminal(ctx context.Context, name, location string) (*entity.Terminal, error) {
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "required"},
		})
	}
	terminal := &entity.Terminal{Name: name, Location: location, Active: true}
	if err := s.terminalRepo.Create(ctx, terminal); err != nil {
		return nil, err
	}
	return terminal, nil
}

// ListCustomers lists customers
func (s *StoreService) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	return s.customerRepo.List(ctx)
}

// CreateCustomer creates a customer record
func (s *StoreService) CreateCustomer(ctx context.Context, name string, email, phone *string) (*entity.Customer, error) {
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "required"},
		})
	}
	customer := &entity.Customer{Name: name, Email: email, Phone: phone}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// IssueGiftCard creates a gift card with an opening balance
func (s *StoreService) IssueGiftCard(ctx context.Context, balance float64) (*entity.GiftCard, error) {
	if balance <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "balance", Message: "must be positive"},
		})
	}
	card := &entity.GiftCard{
		CardNo:  utils.GenerateGiftCardNo(),
		Balance: money.FromFloat(balance),
		Active:  true,
	}
	if err := s.giftCardRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// GetGiftCard looks up a gift card balance by card number
func (s *StoreService) GetGiftCard(ctx context.Context, cardNo string) (*entity.GiftCard, error) {
	card, err := s.giftCardRepo.GetByCardNo(ctx, cardNo)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Gift card")
	}
	return card, nil
}
