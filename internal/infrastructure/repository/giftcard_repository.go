package repository

import (
	"context"
	"errors"

	"github.com/marubini/tillpoint-api/internal/domain/entity"
	domainRepo "github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/money"
	"gorm.io/gorm"
)

type giftCardRepository struct {
	db *gorm.DB
}

// NewGiftCardRepository creates a new gift card repository
func NewGiftCardRepository(db *gorm.DB) domainRepo.GiftCardRepository {
	return &giftCardRepository{db: db}
}

func (r *giftCardRepository) GetByCardNo(ctx context.Context, cardNo string) (*entity.GiftCard, error) {
	var card entity.GiftCard
	err := r.db.WithContext(ctx).First(&card, "card_no = ?", cardNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *giftCardRepository) Create(ctx context.Context, card *entity.GiftCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// AtomicDebit decrements the balance only when it covers the amount:
// UPDATE gift_cards SET balance = balance - ? WHERE card_no = ? AND balance >= ?
func (r *giftCardRepository) AtomicDebit(ctx context.Context, cardNo string, amount money.Cents) error {
	result := r.db.WithContext(ctx).Model(&entity.GiftCard{}).
		Where("card_no = ? AND balance >= ? AND active = ?", cardNo, amount, true).
		Update("balance", gorm.Expr("balance - ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewBadRequestError("Insufficient gift card balance")
	}
	return nil
}

func (r *giftCardRepository) AtomicCredit(ctx context.Context, cardNo string, amount money.Cents) error {
	result := r.db.WithContext(ctx).Model(&entity.GiftCard{}).
		Where("card_no = ?", cardNo).
		Update("balance", gorm.Expr("balance + ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Gift card")
	}
	return nil
}
