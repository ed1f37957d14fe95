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

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) GetWithTransactions(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) GetOpenByTerminal(ctx context.Context, terminalID uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Where("terminal_id = ? AND status = ?", terminalID, enum.ShiftStatusOpen).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

// Update persists the open-to-closed transition guarded against a
// concurrent close: the row must still be open when the write lands.
func (r *shiftRepository) Update(ctx context.Context, shift *entity.Shift) error {
	if shift.Status == enum.ShiftStatusClosed {
		result := r.db.WithContext(ctx).Model(&entity.Shift{}).
			Where("id = ? AND status = ?", shift.ID, enum.ShiftStatusOpen).
			Updates(map[string]interface{}{
				"status":          shift.Status,
				"end_time":        shift.EndTime,
				"closing_balance": shift.ClosingBalance,
				"expected_cash":   shift.ExpectedCash,
				"variance":        shift.Variance,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("shift already closed")
		}
		return nil
	}
	return r.db.WithContext(ctx).Save(shift).Error
}

func (r *shiftRepository) AppendTransaction(ctx context.Context, txn *entity.CashTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *shiftRepository) List(ctx context.Context, params *domainRepo.ShiftFilterParams) ([]entity.Shift, int64, error) {
	var shifts []entity.Shift
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Shift{})

	if params.TerminalID != nil {
		query = query.Where("terminal_id = ?", *params.TerminalID)
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("start_time DESC").
		Find(&shifts).Error

	return shifts, total, err
}
