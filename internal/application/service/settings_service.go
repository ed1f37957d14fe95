package service

import (
	"context"

	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/money"
)

// SettingsService manages the store-wide POS settings row
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the current settings
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.PosSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput is the input for updating settings
type UpdateSettingsInput struct {
	Currency                 *string  `json:"currency,omitempty"`
	TaxRate                  *float64 `json:"tax_rate,omitempty"`
	CashierMaxDiscountPct    *float64 `json:"cashier_max_discount_pct,omitempty"`
	CashierMaxDiscountAmount *float64 `json:"cashier_max_discount_amount,omitempty"`
	ManagerMaxDiscountPct    *float64 `json:"manager_max_discount_pct,omitempty"`
	ManagerMaxDiscountAmount *float64 `json:"manager_max_discount_amount,omitempty"`
}

// UpdateSettings applies a partial update to the settings row. Carts
// pick up the new tax rate when they are next created; open carts keep
// the rate they were built with.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.PosSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.TaxRate != nil {
		if *input.TaxRate < 0 || *input.TaxRate >= 1 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "tax_rate", Message: "must be a fraction between 0 and 1"},
			})
		}
		settings.TaxRate = *input.TaxRate
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.CashierMaxDiscountPct != nil {
		settings.CashierMaxDiscountPct = *input.CashierMaxDiscountPct
	}
	if input.CashierMaxDiscountAmount != nil {
		settings.CashierMaxDiscountAmount = money.FromFloat(*input.CashierMaxDiscountAmount)
	}
	if input.ManagerMaxDiscountPct != nil {
		settings.ManagerMaxDiscountPct = *input.ManagerMaxDiscountPct
	}
	if input.ManagerMaxDiscountAmount != nil {
		settings.ManagerMaxDiscountAmount = money.FromFloat(*input.ManagerMaxDiscountAmount)
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
