package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/domain/pricing"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/apperror"
	"github.com/marubini/tillpoint-api/pkg/money"
)

// CartService owns the open carts, one per terminal. Every mutation
// runs under one lock so a permission check and the change it guards
// are evaluated atomically; nothing interleaves between them.
type CartService struct {
	mu      sync.Mutex
	carts   map[uuid.UUID]*entity.Cart
	pending map[uuid.UUID]*pendingAction

	gate         *PermissionGate
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditRepository
	settingsRepo repository.SettingsRepository
	approvalTTL  time.Duration
}

// NewCartService creates a new cart service
func NewCartService(
	gate *PermissionGate,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditRepository,
	settingsRepo repository.SettingsRepository,
	approvalTTL time.Duration,
) *CartService {
	return &CartService{
		carts:        make(map[uuid.UUID]*entity.Cart),
		pending:      make(map[uuid.UUID]*pendingAction),
		gate:         gate,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		settingsRepo: settingsRepo,
		approvalTTL:  approvalTTL,
	}
}

// pendingAction is a gated command waiting for a manager credential.
// The command is stored in full so approval re-applies exactly what
// was requested, with the approving identity on the audit entry.
type pendingAction struct {
	Action        enum.GateAction
	TerminalID    uuid.UUID
	LineID        uuid.UUID
	ActorID       uuid.UUID
	Discount      *entity.Discount
	OverrideValue money.Cents
	Reason        string
	OrderLevel    bool
	ExpiresAt     time.Time
}

// LineView pairs a cart line with its priced breakdown
type LineView struct {
	Line  entity.CartLineItem `json:"line"`
	Price pricing.LinePrice   `json:"price"`
}

// CartView is the presentation snapshot of a cart: every line priced,
// plus the aggregated order totals.
type CartView struct {
	Cart  *entity.Cart       `json:"cart"`
	Lines []LineView         `json:"lines"`
	Price pricing.OrderPrice `json:"price"`
}

// CommandResult is the outcome of a gated cart command. When
// RequiresApproval is set the command was NOT applied; re-submit it
// via Approve with the returned token and a manager PIN.
type CommandResult struct {
	RequiresApproval bool      `json:"requires_approval"`
	ApprovalToken    uuid.UUID `json:"approval_token,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	Cart             *CartView `json:"cart,omitempty"`
}

// ModifierSelection identifies a modifier and how many of it to attach
type ModifierSelection struct {
	ModifierID uuid.UUID `json:"modifier_id"`
	Quantity   int       `json:"quantity"`
}

// AddLineInput is the input for adding a product to the cart
type AddLineInput struct {
	ProductID   uuid.UUID           `json:"product_id"`
	VariationID *uuid.UUID          `json:"variation_id,omitempty"`
	Quantity    int                 `json:"quantity"`
	Modifiers   []ModifierSelection `json:"modifiers,omitempty"`
	SeatNumber  *int                `json:"seat_number,omitempty"`
	Course      *string             `json:"course,omitempty"`
}

// CartInfoInput updates order-level cart fields
type CartInfoInput struct {
	OrderType   *enum.OrderType `json:"order_type,omitempty"`
	TableNumber *int            `json:"table_number,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
}

func (s *CartService) view(cart *entity.Cart) *CartView {
	lines := make([]LineView, 0, len(cart.Lines))
	for i := range cart.Lines {
		lines = append(lines, LineView{
			Line:  cart.Lines[i],
			Price: pricing.PriceLine(&cart.Lines[i]),
		})
	}
	return &CartView{Cart: cart, Lines: lines, Price: pricing.PriceOrder(cart)}
}

func (s *CartService) cartFor(terminalID uuid.UUID) (*entity.Cart, error) {
	cart, ok := s.carts[terminalID]
	if !ok {
		return nil, apperror.NewNotFoundError("Cart")
	}
	return cart, nil
}

// GetCart returns the priced view of the terminal's open cart.
func (s *CartService) GetCart(terminalID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// Snapshot returns a deep copy of the terminal's cart for checkout to
// price and freeze. The live cart is untouched.
func (s *CartService) Snapshot(terminalID uuid.UUID) (*entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	cp := *cart
	cp.Lines = make([]entity.CartLineItem, len(cart.Lines))
	copy(cp.Lines, cart.Lines)
	return &cp, nil
}

// AddLine adds a product (optionally with variation and modifiers) to
// the terminal's cart, creating the cart on first use. Quantity is
// capped by on-hand stock at the moment of the edit.
func (s *CartService) AddLine(ctx context.Context, terminalID, userID uuid.UUID, input *AddLineInput) (*CartView, error) {
	if input.Quantity < 1 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "must be at least 1"},
		})
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, apperror.NewNotFoundError("Product")
	}

	line := entity.CartLineItem{
		ID:         uuid.New(),
		ProductID:  product.ID,
		Name:       product.Name,
		UnitPrice:  product.Price,
		Quantity:   input.Quantity,
		SeatNumber: input.SeatNumber,
		Course:     input.Course,
	}
	if product.Category != nil {
		line.CategoryName = product.Category.Name
	}

	if input.VariationID != nil {
		variation, err := s.productRepo.GetVariation(ctx, *input.VariationID)
		if err != nil {
			return nil, err
		}
		if variation == nil || variation.ProductID != product.ID {
			return nil, apperror.NewNotFoundError("Variation")
		}
		line.VariationID = &variation.ID
		price := variation.Price
		line.VariationPrice = &price
	}

	if len(input.Modifiers) > 0 {
		ids := make([]uuid.UUID, len(input.Modifiers))
		for i, m := range input.Modifiers {
			ids[i] = m.ModifierID
		}
		options, err := s.productRepo.GetModifiers(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[uuid.UUID]*entity.ModifierOption, len(options))
		for i := range options {
			byID[options[i].ID] = &options[i]
		}
		for _, m := range input.Modifiers {
			opt, ok := byID[m.ModifierID]
			if !ok || opt.ProductID != product.ID {
				return nil, apperror.NewNotFoundError("Modifier")
			}
			qty := m.Quantity
			if qty < 1 {
				qty = 1
			}
			line.Modifiers = append(line.Modifiers, entity.LineModifier{
				ModifierID: opt.ID,
				Name:       opt.Name,
				Price:      opt.Price,
				Quantity:   qty,
			})
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[terminalID]
	if !ok {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		cart = &entity.Cart{
			TerminalID: terminalID,
			UserID:     userID,
			TaxRate:    settings.TaxRate,
			OrderType:  enum.OrderTypeDineIn,
			CreatedAt:  time.Now(),
		}
		s.carts[terminalID] = cart
	}

	if err := s.checkStock(ctx, cart, &line, input.Quantity); err != nil {
		return nil, err
	}

	cart.Lines = append(cart.Lines, line)
	return s.view(cart), nil
}

// checkStock verifies that the carted quantity for this product (and
// variation, when set) stays within on-hand inventory at the moment of
// the edit. addQty is the quantity being added on top of what the cart
// already holds for the same product/variation, excluding the line
// being edited.
func (s *CartService) checkStock(ctx context.Context, cart *entity.Cart, line *entity.CartLineItem, addQty int) error {
	available, err := s.productRepo.AvailableStock(ctx, line.ProductID, line.VariationID)
	if err != nil {
		return err
	}

	carted := 0
	for i := range cart.Lines {
		l := &cart.Lines[i]
		if l.ID == line.ID || l.ProductID != line.ProductID {
			continue
		}
		if (l.VariationID == nil) != (line.VariationID == nil) {
			continue
		}
		if l.VariationID != nil && *l.VariationID != *line.VariationID {
			continue
		}
		carted += l.Quantity
	}

	if carted+addQty > available {
		return apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for %s: %d available", line.Name, available))
	}
	return nil
}

// UpdateQuantity changes a line's quantity. Setting it to zero removes
// the line silently; that is an ordinary edit, not a void, and leaves
// no audit trail.
func (s *CartService) UpdateQuantity(ctx context.Context, terminalID, lineID uuid.UUID, quantity int) (*CartView, error) {
	if quantity < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "must not be negative"},
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	line := cart.FindLine(lineID)
	if line == nil {
		return nil, apperror.NewNotFoundError("Line item")
	}

	if quantity == 0 {
		cart.RemoveLine(lineID)
		return s.view(cart), nil
	}

	if err := s.checkStock(ctx, cart, line, quantity); err != nil {
		return nil, err
	}
	line.Quantity = quantity
	return s.view(cart), nil
}

// AssignSeat sets or clears the seat number on a line for by-seat
// splitting.
func (s *CartService) AssignSeat(terminalID, lineID uuid.UUID, seatNumber *int) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	line := cart.FindLine(lineID)
	if line == nil {
		return nil, apperror.NewNotFoundError("Line item")
	}
	line.SeatNumber = seatNumber
	return s.view(cart), nil
}

// SetModifiers replaces the modifier selection on a line.
func (s *CartService) SetModifiers(ctx context.Context, terminalID, lineID uuid.UUID, selections []ModifierSelection) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	line := cart.FindLine(lineID)
	if line == nil {
		return nil, apperror.NewNotFoundError("Line item")
	}

	if len(selections) == 0 {
		line.Modifiers = nil
		return s.view(cart), nil
	}

	ids := make([]uuid.UUID, len(selections))
	for i, m := range selections {
		ids[i] = m.ModifierID
	}
	options, err := s.productRepo.GetModifiers(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.ModifierOption, len(options))
	for i := range options {
		byID[options[i].ID] = &options[i]
	}

	modifiers := make([]entity.LineModifier, 0, len(selections))
	for _, m := range selections {
		opt, ok := byID[m.ModifierID]
		if !ok || opt.ProductID != line.ProductID {
			return nil, apperror.NewNotFoundError("Modifier")
		}
		qty := m.Quantity
		if qty < 1 {
			qty = 1
		}
		modifiers = append(modifiers, entity.LineModifier{
			ModifierID: opt.ID,
			Name:       opt.Name,
			Price:      opt.Price,
			Quantity:   qty,
		})
	}
	line.Modifiers = modifiers
	return s.view(cart), nil
}

// validateDiscount checks the shape of a discount request: a known
// type, a positive value, and a reason from the taxonomy (free text
// required when the reason is "other").
func validateDiscount(d *entity.Discount) error {
	var fields []apperror.FieldError
	if !d.Type.IsValid() {
		fields = append(fields, apperror.FieldError{Field: "type", Message: "must be percentage or fixed"})
	}
	if d.Value <= 0 {
		fields = append(fields, apperror.FieldError{Field: "value", Message: "must be positive"})
	}
	if !d.Reason.IsValid() {
		fields = append(fields, apperror.FieldError{Field: "reason", Message: "must be one of the discount reasons"})
	}
	if d.Reason == enum.ReasonOther && d.ReasonText == "" {
		fields = append(fields, apperror.FieldError{Field: "reason_text", Message: "required when reason is other"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

func discountReason(d *entity.Discount) string {
	if d.Reason == enum.ReasonOther {
		return d.ReasonText
	}
	return string(d.Reason)
}

func describeDiscount(d *entity.Discount) string {
	if d == nil {
		return "none"
	}
	if d.Type == enum.DiscountTypePercentage {
		return fmt.Sprintf("%g%%", d.Value)
	}
	return money.FromFloat(d.Value).String()
}

// ApplyLineDiscount applies a discount to one line, subject to the
// actor's role ceiling. A request beyond the ceiling is parked and a
// token returned; nothing changes until a manager approves it.
func (s *CartService) ApplyLineDiscount(ctx context.Context, terminalID, lineID uuid.UUID, actor *entity.User, d entity.Discount) (*CommandResult, error) {
	if err := validateDiscount(&d); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	line := cart.FindLine(lineID)
	if line == nil {
		return nil, apperror.NewNotFoundError("Line item")
	}

	decision, err := s.gate.Check(ctx, enum.ActionApplyDiscount, actor.Role, &GateRequest{Discount: &d})
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return s.park(&pendingAction{
			Action:     enum.ActionApplyDiscount,
			TerminalID: terminalID,
			LineID:     lineID,
			ActorID:    actor.ID,
			Discount:   &d,
			Reason:     discountReason(&d),
		}, decision.Reason), nil
	}

	line.Discount = &d
	return &CommandResult{Cart: s.view(cart)}, nil
}

// ApplyOrderDiscount applies the order-level discount. At most one is
// active at a time; applying a new one replaces the old.
func (s *CartService) ApplyOrderDiscount(ctx context.Context, terminalID uuid.UUID, actor *entity.User, d entity.Discount) (*CommandResult, error) {
	if err := validateDiscount(&d); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}

	decision, err := s.gate.Check(ctx, enum.ActionApplyDiscount, actor.Role, &GateRequest{Discount: &d})
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return s.park(&pendingAction{
			Action:     enum.ActionApplyDiscount,
			TerminalID: terminalID,
			ActorID:    actor.ID,
			Discount:   &d,
			Reason:     discountReason(&d),
			OrderLevel: true,
		}, decision.Reason), nil
	}

	cart.OrderDiscount = &d
	return &CommandResult{Cart: s.view(cart)}, nil
}

// RemoveOrderDiscount clears the order-level discount.
func (s *CartService) RemoveOrderDiscount(terminalID uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	cart.OrderDiscount = nil
	return s.view(cart), nil
}

// OverridePrice replaces a line's unit price. A reason is mandatory
// for every override regardless of role, and every override that
// proceeds lands in the audit ledger.
func (s *CartService) OverridePrice(ctx context.Context, terminalID, lineID uuid.UUID, actor *entity.User, value float64, reason string) (*CommandResult, error) {
	if reason == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "reason", Message: "required for price overrides"},
		})
	}
	if value < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "value", Message: "must not be negative"},
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	line := cart.FindLine(lineID)
	if line == nil {
		return nil, apperror.NewNotFoundError("Line item")
	}

	newValue := money.FromFloat(value)
	current := pricing.PriceLine(line).UnitBasis

	decision, err := s.gate.Check(ctx, enum.ActionPriceOverride, actor.Role, &GateRequest{
		OverrideFrom: current,
		OverrideTo:   newValue,
	})
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return s.park(&pendingAction{
			Action:        enum.ActionPriceOverride,
			TerminalID:    terminalID,
			LineID:        lineID,
			ActorID:       actor.ID,
			OverrideValue: newValue,
			Reason:        reason,
		}, decision.Reason), nil
	}

	if err := s.applyOverride(ctx, cart, line, actor.ID, nil, newValue, reason); err != nil {
		return nil, err
	}
	return &CommandResult{Cart: s.view(cart)}, nil
}

// VoidLine removes a line and records the void in the audit ledger.
// This is not quantity-decrement-to-zero; a void always leaves a
// trail.
func (s *CartService) VoidLine(ctx context.Context, terminalID, lineID uuid.UUID, actor *entity.User, reason string) (*CommandResult, error) {
	if reason == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "reason", Message: "required for voids"},
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	line := cart.FindLine(lineID)
	if line == nil {
		return nil, apperror.NewNotFoundError("Line item")
	}

	decision, err := s.gate.Check(ctx, enum.ActionVoidItems, actor.Role, nil)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return s.park(&pendingAction{
			Action:     enum.ActionVoidItems,
			TerminalID: terminalID,
			LineID:     lineID,
			ActorID:    actor.ID,
			Reason:     reason,
		}, decision.Reason), nil
	}

	if err := s.applyVoid(ctx, cart, line, actor.ID, nil, reason); err != nil {
		return nil, err
	}
	return &CommandResult{Cart: s.view(cart)}, nil
}

// SetTip sets the tip amount on the cart.
func (s *CartService) SetTip(terminalID uuid.UUID, amount float64) (*CartView, error) {
	if amount < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "must not be negative"},
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	cart.Tip = money.FromFloat(amount)
	return s.view(cart), nil
}

// SetCustomer attaches a customer reference to the cart.
func (s *CartService) SetCustomer(ctx context.Context, terminalID, customerID uuid.UUID) (*CartView, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	cart.CustomerID = &customer.ID
	return s.view(cart), nil
}

// UpdateCartInfo updates order type, table number, and notes.
func (s *CartService) UpdateCartInfo(terminalID uuid.UUID, input *CartInfoInput) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartFor(terminalID)
	if err != nil {
		return nil, err
	}
	if input.OrderType != nil {
		if !input.OrderType.IsValid() {
			return nil, apperror.NewBadRequestError("Unknown order type")
		}
		cart.OrderType = *input.OrderType
	}
	if input.TableNumber != nil {
		cart.TableNumber = input.TableNumber
	}
	if input.Notes != nil {
		cart.Notes = *input.Notes
	}
	return s.view(cart), nil
}

// Clear discards the terminal's cart without any audit entry. Clearing
// is an ordinary cancellation, not a void.
func (s *CartService) Clear(terminalID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, terminalID)
}

// park stores a gated command and hands back the approval token.
func (s *CartService) park(action *pendingAction, reason string) *CommandResult {
	token := uuid.New()
	action.ExpiresAt = time.Now().Add(s.approvalTTL)
	s.pending[token] = action
	return &CommandResult{
		RequiresApproval: true,
		ApprovalToken:    token,
		Reason:           reason,
	}
}

// Approve resolves a parked command with a manager credential and
// applies it. The audit entry records the approving identity alongside
// the original requester.
func (s *CartService) Approve(ctx context.Context, token uuid.UUID, pin string) (*CommandResult, error) {
	approver, err := s.gate.VerifyApproverPIN(ctx, pin)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	action, ok := s.pending[token]
	if !ok {
		return nil, apperror.NewNotFoundError("Approval request")
	}
	if time.Now().After(action.ExpiresAt) {
		delete(s.pending, token)
		return nil, apperror.NewBadRequestError("Approval request has expired")
	}

	cart, err := s.cartFor(action.TerminalID)
	if err != nil {
		return nil, err
	}

	var approverID *uuid.UUID
	if approver.ID != action.ActorID {
		approverID = &approver.ID
	}

	switch action.Action {
	case enum.ActionApplyDiscount:
		if action.OrderLevel {
			before := describeDiscount(cart.OrderDiscount)
			cart.OrderDiscount = action.Discount
			if err := s.writeAudit(ctx, enum.AuditOrderDiscount, action, approverID, before, describeDiscount(action.Discount)); err != nil {
				return nil, err
			}
		} else {
			line := cart.FindLine(action.LineID)
			if line == nil {
				return nil, apperror.NewNotFoundError("Line item")
			}
			before := describeDiscount(line.Discount)
			line.Discount = action.Discount
			if err := s.writeAudit(ctx, enum.AuditItemDiscount, action, approverID, before, describeDiscount(action.Discount)); err != nil {
				return nil, err
			}
		}

	case enum.ActionPriceOverride:
		line := cart.FindLine(action.LineID)
		if line == nil {
			return nil, apperror.NewNotFoundError("Line item")
		}
		if err := s.applyOverride(ctx, cart, line, action.ActorID, approverID, action.OverrideValue, action.Reason); err != nil {
			return nil, err
		}

	case enum.ActionVoidItems:
		line := cart.FindLine(action.LineID)
		if line == nil {
			return nil, apperror.NewNotFoundError("Line item")
		}
		if err := s.applyVoid(ctx, cart, line, action.ActorID, approverID, action.Reason); err != nil {
			return nil, err
		}
	}

	delete(s.pending, token)
	return &CommandResult{Cart: s.view(cart)}, nil
}

// applyOverride sets the price override and writes its audit entry.
func (s *CartService) applyOverride(ctx context.Context, cart *entity.Cart, line *entity.CartLineItem, actorID uuid.UUID, approverID *uuid.UUID, value money.Cents, reason string) error {
	before := pricing.PriceLine(line).UnitBasis
	line.PriceOverride = &entity.PriceOverride{Value: value, Reason: reason}

	return s.auditRepo.Create(ctx, &entity.OverrideAuditEntry{
		ActorID:     actorID,
		ApproverID:  approverID,
		TerminalID:  cart.TerminalID,
		LineItemID:  line.ID,
		Kind:        enum.AuditPriceOverride,
		Reason:      reason,
		BeforeValue: before.String(),
		AfterValue:  value.String(),
	})
}

// applyVoid removes the line and writes its audit entry.
func (s *CartService) applyVoid(ctx context.Context, cart *entity.Cart, line *entity.CartLineItem, actorID uuid.UUID, approverID *uuid.UUID, reason string) error {
	lineID := line.ID
	before := fmt.Sprintf("%dx %s (%s)", line.Quantity, line.Name, pricing.PriceLine(line).LineTotal)

	entry := &entity.OverrideAuditEntry{
		ActorID:     actorID,
		ApproverID:  approverID,
		TerminalID:  cart.TerminalID,
		LineItemID:  lineID,
		Kind:        enum.AuditVoid,
		Reason:      reason,
		BeforeValue: before,
		AfterValue:  "voided",
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return err
	}

	cart.RemoveLine(lineID)
	return nil
}

// writeAudit records an approved discount in the audit ledger.
func (s *CartService) writeAudit(ctx context.Context, kind enum.AuditKind, action *pendingAction, approverID *uuid.UUID, before, after string) error {
	return s.auditRepo.Create(ctx, &entity.OverrideAuditEntry{
		ActorID:     action.ActorID,
		ApproverID:  approverID,
		TerminalID:  action.TerminalID,
		LineItemID:  action.LineID,
		Kind:        kind,
		Reason:      action.Reason,
		BeforeValue: before,
		AfterValue:  after,
	})
}
