package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/internal/domain/entity"
	"github.com/marubini/tillpoint-api/internal/domain/enum"
	"github.com/marubini/tillpoint-api/internal/domain/repository"
	"github.com/marubini/tillpoint-api/pkg/money"
)

// In-memory repository fakes shared by the service tests.

type fakeProductRepo struct {
	mu         sync.Mutex
	products   map[uuid.UUID]*entity.Product
	variations map[uuid.UUID]*entity.Variation
	modifiers  map[uuid.UUID]*entity.ModifierOption
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:   make(map[uuid.UUID]*entity.Product),
		variations: make(map[uuid.UUID]*entity.Variation),
		modifiers:  make(map[uuid.UUID]*entity.ModifierOption),
	}
}

func (r *fakeProductRepo) addProduct(name string, price money.Cents, stock int, category string) *entity.Product {
	p := &entity.Product{ID: uuid.New(), Name: name, SKU: "SKU-" + name, Price: price, Stock: stock, Active: true}
	if category != "" {
		p.Category = &entity.Category{ID: uuid.New(), Name: category}
	}
	r.products[p.ID] = p
	return p
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetVariation(ctx context.Context, id uuid.UUID) (*entity.Variation, error) {
	return r.variations[id], nil
}

func (r *fakeProductRepo) GetModifiers(ctx context.Context, ids []uuid.UUID) ([]entity.ModifierOption, error) {
	var out []entity.ModifierOption
	for _, id := range ids {
		if m, ok := r.modifiers[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AvailableStock(ctx context.Context, productID uuid.UUID, variationID *uuid.UUID) (int, error) {
	if variationID != nil {
		if v, ok := r.variations[*variationID]; ok {
			return v.Stock, nil
		}
		return 0, nil
	}
	if p, ok := r.products[productID]; ok {
		return p.Stock, nil
	}
	return 0, nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var failed []uuid.UUID
	for id, qty := range decrements {
		p, ok := r.products[id]
		if !ok || p.Stock < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		r.products[id].Stock -= qty
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, qty := range increments {
		if p, ok := r.products[id]; ok {
			p.Stock += qty
		}
	}
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []entity.OverrideAuditEntry
}

func (r *fakeAuditRepo) Create(ctx context.Context, entry *entity.OverrideAuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, params *repository.AuditFilterParams) ([]entity.OverrideAuditEntry, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) addUser(role enum.Role, pinHash *string) *entity.User {
	u := &entity.User{ID: uuid.New(), FirstName: "Test", LastName: string(role), Email: uuid.NewString() + "@till.test", Role: role, Active: true, PinHash: pinHash}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ListApprovers(ctx context.Context, minRole enum.Role) ([]entity.User, error) {
	var out []entity.User
	for _, u := range r.users {
		if u.Active && u.Role.AtLeast(minRole) && u.PinHash != nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings entity.PosSettings
}

func newFakeSettingsRepo(taxRate float64) *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: entity.PosSettings{
		ID:                       uuid.New(),
		Currency:                 "USD",
		TaxRate:                  taxRate,
		CashierMaxDiscountPct:    10,
		CashierMaxDiscountAmount: 2000,
		ManagerMaxDiscountPct:    50,
		ManagerMaxDiscountAmount: 50000,
	}}
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.PosSettings, error) {
	s := r.settings
	return &s, nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, settings *entity.PosSettings) error {
	r.settings = *settings
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) List(ctx context.Context) ([]entity.Customer, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

type fakeShiftRepo struct {
	mu     sync.Mutex
	shifts map[uuid.UUID]*entity.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[uuid.UUID]*entity.Shift)}
}

func (r *fakeShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	cp := *shift
	r.shifts[shift.ID] = &cp
	return nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shifts[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeShiftRepo) GetWithTransactions(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeShiftRepo) GetOpenByTerminal(ctx context.Context, terminalID uuid.UUID) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shifts {
		if s.TerminalID == terminalID && s.Status == enum.ShiftStatusOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, shift *entity.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *shift
	r.shifts[shift.ID] = &cp
	return nil
}

func (r *fakeShiftRepo) AppendTransaction(ctx context.Context, txn *entity.CashTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[txn.ShiftID]
	if !ok {
		return errors.New("shift not found")
	}
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	s.Transactions = append(s.Transactions, *txn)
	return nil
}

func (r *fakeShiftRepo) List(ctx context.Context, params *repository.ShiftFilterParams) ([]entity.Shift, int64, error) {
	var out []entity.Shift
	for _, s := range r.shifts {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ReceiptNo == receiptNo {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Order
	for _, o := range r.orders {
		if params.ShiftID != nil && o.ShiftID != *params.ShiftID {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

type fakeGiftCardRepo struct {
	mu    sync.Mutex
	cards map[string]*entity.GiftCard
}

func newFakeGiftCardRepo() *fakeGiftCardRepo {
	return &fakeGiftCardRepo{cards: make(map[string]*entity.GiftCard)}
}

func (r *fakeGiftCardRepo) addCard(cardNo string, balance money.Cents) *entity.GiftCard {
	c := &entity.GiftCard{ID: uuid.New(), CardNo: cardNo, Balance: balance, Active: true}
	r.cards[cardNo] = c
	return c
}

func (r *fakeGiftCardRepo) GetByCardNo(ctx context.Context, cardNo string) (*entity.GiftCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cards[cardNo]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeGiftCardRepo) Create(ctx context.Context, card *entity.GiftCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[card.CardNo] = card
	return nil
}

func (r *fakeGiftCardRepo) AtomicDebit(ctx context.Context, cardNo string, amount money.Cents) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cards[cardNo]
	if !ok || c.Balance < amount {
		return errors.New("insufficient gift card balance")
	}
	c.Balance -= amount
	return nil
}

func (r *fakeGiftCardRepo) AtomicCredit(ctx context.Context, cardNo string, amount money.Cents) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cards[cardNo]
	if !ok {
		return errors.New("gift card not found")
	}
	c.Balance += amount
	return nil
}
