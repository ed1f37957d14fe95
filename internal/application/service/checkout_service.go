package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/domain/pricing"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/money"
	"github.com/marubini/tillpoint-api/pkg/utils"
)

// settleEpsilon absorbs floating rounding when deciding whether an
// order is fully paid: a remaining balance of at most one cent counts
// as settled.
const settleEpsilon = money.Cents(1)

// CheckoutSession tracks tenders against a frozen cart snapshot. The
// snapshot keeps mid-checkout cart edits from silently changing the
// target; re-beginning checkout reprices.
type CheckoutSession struct {
	TerminalID  uuid.UUID                 `json:"terminal_id"`
	Cart        *entity.Cart              `json:"-"`
	Price       pricing.OrderPrice        `json:"price"`
	Target      money.Cents               `json:"target"`
	Submissions []entity.TenderSubmission `json:"submissions"`
}

// Paid returns the sum of recorded tender amounts.
func (cs *CheckoutSession) Paid() money.Cents {
	var paid money.Cents
	for i := range cs.Submissions {
		paid += cs.Submissions[i].Amount
	}
	return paid
}

// Remaining returns the balance still owed.
func (cs *CheckoutSession) Remaining() money.Cents {
	return cs.Target - cs.Paid()
}

// IsSettled reports whether the remaining balance is within the
// one-cent epsilon.
func (cs *CheckoutSession) IsSettled() bool {
	return cs.Remaining() <= settleEpsilon
}

// TenderInput is one payment instrument submission
type TenderInput struct {
	Method   enum.TenderMethod `json:"method"`
	Amount   float64           `json:"amount"`
	Tendered float64           `json:"tendered,omitempty"`
	CardNo   string            `json:"card_no,omitempty"`
}

// CheckoutService drives payment collection and order completion. Gift
// cards are debited only at the moment the order is finalized, so an
// abandoned checkout never touches a card balance.
type CheckoutService struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*CheckoutSession

	carts        *CartService
	shifts       *ShiftService
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	giftCardRepo repository.GiftCardRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	carts *CartService,
	shifts *ShiftService,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	giftCardRepo repository.GiftCardRepository,
) *CheckoutService {
	return &CheckoutService{
		sessions:     make(map[uuid.UUID]*CheckoutSession),
		carts:        carts,
		shifts:       shifts,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		giftCardRepo: giftCardRepo,
	}
}

// Begin snapshots and prices the terminal's cart, opening a checkout
// session. Beginning again replaces any session in progress and drops
// its pending tenders.
func (s *CheckoutService) Begin(ctx context.Context, terminalID uuid.UUID) (*CheckoutSession, error) {
	cart, err := s.carts.Snapshot(terminalID)
	if err != nil {
		return nil, err
	}

	price := pricing.PriceOrder(cart)

	s.mu.Lock()
	defer s.mu.Unlock()

	session := &CheckoutSession{
		TerminalID: terminalID,
		Cart:       cart,
		Price:      price,
		Target:     price.Total,
	}
	s.sessions[terminalID] = session
	return session, nil
}

// Session returns the checkout session in progress on a terminal.
func (s *CheckoutService) Session(terminalID uuid.UUID) (*CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionFor(terminalID)
}

func (s *CheckoutService) sessionFor(terminalID uuid.UUID) (*CheckoutSession, error) {
	session, ok := s.sessions[terminalID]
	if !ok {
		return nil, apperror.NewNotFoundError("Checkout session")
	}
	return session, nil
}

// AddTender records a payment toward the session's target. The amount
// recorded is capped at the remaining balance; for cash the excess of
// the handed-over amount becomes change. Gift cards are stricter: the
// requested amount may exceed neither the card balance nor the
// remaining balance. Rejected submissions leave the session unchanged.
func (s *CheckoutService) AddTender(ctx context.Context, terminalID uuid.UUID, input *TenderInput) (*CheckoutSession, error) {
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown tender method")
	}
	requested := money.FromFloat(input.Amount)
	if requested <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "must be positive"},
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionFor(terminalID)
	if err != nil {
		return nil, err
	}

	remaining := session.Remaining()
	if remaining <= 0 {
		return nil, apperror.NewBadRequestError("Order is already settled")
	}

	submission := entity.TenderSubmission{Method: input.Method}

	switch input.Method {
	case enum.TenderGiftCard:
		if input.CardNo == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "card_no", Message: "required for gift card tenders"},
			})
		}
		card, err := s.giftCardRepo.GetByCardNo(ctx, input.CardNo)
		if err != nil {
			return nil, err
		}
		if card == nil || !card.Active {
			return nil, apperror.NewNotFoundError("Gift card")
		}
		if requested > card.Balance {
			return nil, apperror.NewBadRequestError("Amount exceeds gift card balance of " + card.Balance.String())
		}
		if requested > remaining {
			return nil, apperror.NewBadRequestError("Amount exceeds remaining balance of " + remaining.String())
		}
		submission.Amount = requested
		submission.GiftCardNo = card.CardNo

	case enum.TenderCash:
		recorded := money.Min(requested, remaining)
		tendered := money.FromFloat(input.Tendered)
		if tendered == 0 {
			tendered = requested
		}
		if tendered < recorded {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "tendered", Message: "less than the amount applied"},
			})
		}
		submission.Amount = recorded
		submission.Tendered = tendered
		submission.Change = money.Max(0, tendered-recorded)

	default:
		submission.Amount = money.Min(requested, remaining)
	}

	session.Submissions = append(session.Submissions, submission)
	return session, nil
}

// Cancel abandons the checkout session. Pending gift card tenders were
// never debited, so nothing needs compensating.
func (s *CheckoutService) Cancel(terminalID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, terminalID)
}

// SplitEven reports an n-way even partition of the session total.
func (s *CheckoutService) SplitEven(terminalID uuid.UUID, n int) ([]money.Cents, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionFor(terminalID)
	if err != nil {
		return nil, err
	}
	return pricing.SplitEven(session.Target, n)
}

// SplitBySeat reports the per-seat partition of the session's cart.
func (s *CheckoutService) SplitBySeat(terminalID uuid.UUID) (*pricing.SeatSplit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionFor(terminalID)
	if err != nil {
		return nil, err
	}
	split := pricing.SplitBySeat(session.Cart)
	return &split, nil
}

// SplitItems reports the subtotal of a chosen subset of the session's
// cart lines.
func (s *CheckoutService) SplitItems(terminalID uuid.UUID, lineIDs []uuid.UUID) (money.Cents, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionFor(terminalID)
	if err != nil {
		return 0, err
	}
	return pricing.SplitItems(session.Cart, lineIDs)
}

// Complete finalizes the order: persists it with its tenders, commits
// stock, debits gift cards, records the sale on the open shift, and
// clears the cart. Calling it on an unsettled session is a caller bug,
// not a tolerated state.
func (s *CheckoutService) Complete(ctx context.Context, terminalID, userID uuid.UUID) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionFor(terminalID)
	if err != nil {
		return nil, err
	}
	if !session.IsSettled() {
		return nil, apperror.NewInvariantError("completing an unsettled payment of " + session.Remaining().String())
	}

	shift, err := s.shifts.Current(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	order := buildOrder(session, shift, userID)

	// Commit stock first; any product gone out of stock since the cart
	// was built fails the whole completion.
	decrements := make(map[uuid.UUID]int)
	for i := range session.Cart.Lines {
		decrements[session.Cart.Lines[i].ProductID] += session.Cart.Lines[i].Quantity
	}
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		return nil, apperror.NewConflictError("Stock changed during checkout; review the cart")
	}

	// Any failure past the stock commit unwinds every movement already
	// made: re-credit debited cards, restock, and drop the stored
	// order. A half-finalized order must never survive.
	var debited []*entity.TenderSubmission
	unwind := func() {
		for _, t := range debited {
			_ = s.giftCardRepo.AtomicCredit(ctx, t.GiftCardNo, t.Amount)
		}
		_ = s.productRepo.AtomicIncrementBatch(ctx, decrements)
	}

	// Gift card redemption happens only now, at finalization. An
	// abandoned checkout never debits a card.
	for i := range order.Tenders {
		t := &order.Tenders[i]
		if t.Method != enum.TenderGiftCard {
			continue
		}
		if err := s.giftCardRepo.AtomicDebit(ctx, t.GiftCardNo, t.Amount); err != nil {
			unwind()
			return nil, err
		}
		debited = append(debited, t)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		unwind()
		return nil, err
	}

	if err := s.shifts.RecordSale(ctx, shift.ID, order); err != nil {
		_ = s.orderRepo.Delete(ctx, order.ID)
		unwind()
		return nil, err
	}

	s.carts.Clear(terminalID)
	delete(s.sessions, terminalID)
	return order, nil
}

// buildOrder freezes the session into a persistable order record.
func buildOrder(session *CheckoutSession, shift *entity.Shift, userID uuid.UUID) *entity.Order {
	cart := session.Cart
	order := &entity.Order{
		ID:            uuid.New(),
		ReceiptNo:     utils.GenerateReceiptNo(),
		ShiftID:       shift.ID,
		TerminalID:    cart.TerminalID,
		UserID:        userID,
		CustomerID:    cart.CustomerID,
		OrderDate:     time.Now(),
		OrderType:     cart.OrderType,
		Status:        entity.OrderStatusCompleted,
		Subtotal:      session.Price.Subtotal,
		OrderDiscount: session.Price.OrderDiscount,
		Tax:           session.Price.Tax,
		Tip:           session.Price.Tip,
		Total:         session.Price.Total,
		TableNumber:   cart.TableNumber,
		Notes:         cart.Notes,
	}

	for i := range cart.Lines {
		line := &cart.Lines[i]
		price := pricing.PriceLine(line)
		order.Lines = append(order.Lines, entity.OrderLine{
			OrderID:        order.ID,
			ProductID:      line.ProductID,
			VariationID:    line.VariationID,
			Name:           line.Name,
			CategoryName:   line.CategoryName,
			Quantity:       line.Quantity,
			UnitBasis:      price.UnitBasis,
			ModifiersTotal: price.ModifiersTotal,
			DiscountAmount: price.DiscountAmount,
			LineTotal:      price.LineTotal,
			SeatNumber:     line.SeatNumber,
		})
	}

	for i := range session.Submissions {
		submission := session.Submissions[i]
		submission.OrderID = order.ID
		order.Tenders = append(order.Tenders, submission)
	}
	return order
}
