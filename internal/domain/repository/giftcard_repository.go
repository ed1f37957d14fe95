package repository

import (
	"context"

	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/pkg/money"
)

// GiftCardRepository defines the interface for stored-value cards
type GiftCardRepository interface {
	GetByCardNo(ctx context.Context, cardNo string) (*entity.GiftCard, error)
	Create(ctx context.Context, card *entity.GiftCard) error

	// AtomicDebit subtracts amount from the card's balance, failing if
	// the remaining balance would go negative.
	AtomicDebit(ctx context.Context, cardNo string, amount money.Cents) error

	// AtomicCredit adds amount back to the card's balance. Used to
	// unwind debits when a completion fails partway.
	AtomicCredit(ctx context.Context, cardNo string, amount money.Cents) error
}
