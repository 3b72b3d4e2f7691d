package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository"
)

// ledgerState is the in-memory backing store shared by fakeLedger views.
// Fund rows are kept newest-first, matching the ordering the durable store
// guarantees.
type ledgerState struct {
	items     map[uint]domain.Item
	purchases map[uint]domain.Purchase
	sales     map[uint]domain.Sale
	funds     []domain.ShopFund
	expenses  []domain.WorkerExpense
	nextID    uint
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		items:     map[uint]domain.Item{},
		purchases: map[uint]domain.Purchase{},
		sales:     map[uint]domain.Sale{},
		nextID:    1,
	}
}

func (s *ledgerState) id() uint {
	id := s.nextID
	s.nextID++

	return id
}

func copyBorrow(p *decimal.Decimal) *decimal.Decimal {
	if p == nil {
		return nil
	}
	v := *p

	return &v
}

func (s *ledgerState) clone() *ledgerState {
	c := newLedgerState()
	c.nextID = s.nextID
	for id, item := range s.items {
		c.items[id] = item
	}
	for id, p := range s.purchases {
		p.BorrowAmount = copyBorrow(p.BorrowAmount)
		c.purchases[id] = p
	}
	for id, sl := range s.sales {
		sl.BorrowAmount = copyBorrow(sl.BorrowAmount)
		c.sales[id] = sl
	}
	c.funds = append([]domain.ShopFund(nil), s.funds...)
	c.expenses = append([]domain.WorkerExpense(nil), s.expenses...)

	return c
}

// fakeLedger implements repository.Ledger over a ledgerState.
type fakeLedger struct {
	s *ledgerState
}

func (f fakeLedger) ItemForUpdate(_ context.Context, itemID uint) (domain.Item, error) {
	item, ok := f.s.items[itemID]
	if !ok {
		return domain.Item{}, repository.ErrItemNotFound
	}

	return item, nil
}

func (f fakeLedger) ItemByName(_ context.Context, ownerID uint, name string) (domain.Item, error) {
	for _, item := range f.s.items {
		if item.UserID == ownerID && item.Name == name {
			return item, nil
		}
	}

	return domain.Item{}, repository.ErrItemNotFound
}

func (f fakeLedger) CreateItem(_ context.Context, item domain.Item) (domain.Item, error) {
	item.ID = f.s.id()
	f.s.items[item.ID] = item

	return item, nil
}

func (f fakeLedger) AdjustStock(_ context.Context, itemID uint, delta decimal.Decimal) error {
	item, ok := f.s.items[itemID]
	if !ok {
		return repository.ErrItemNotFound
	}
	item.Stock = item.Stock.Add(delta)
	f.s.items[itemID] = item

	return nil
}

func (f fakeLedger) PurchaseForUpdate(_ context.Context, id uint) (domain.Purchase, error) {
	p, ok := f.s.purchases[id]
	if !ok {
		return domain.Purchase{}, repository.ErrPurchaseNotFound
	}
	p.BorrowAmount = copyBorrow(p.BorrowAmount)

	return p, nil
}

func (f fakeLedger) CreatePurchase(_ context.Context, purchase domain.Purchase) (domain.Purchase, error) {
	purchase.ID = f.s.id()
	purchase.CreatedAt = time.Now()
	f.s.purchases[purchase.ID] = purchase

	return purchase, nil
}

func (f fakeLedger) SavePurchase(_ context.Context, purchase domain.Purchase) (domain.Purchase, error) {
	if _, ok := f.s.purchases[purchase.ID]; !ok {
		return domain.Purchase{}, repository.ErrPurchaseNotFound
	}
	f.s.purchases[purchase.ID] = purchase

	return purchase, nil
}

func (f fakeLedger) DeletePurchase(_ context.Context, id uint) error {
	if _, ok := f.s.purchases[id]; !ok {
		return repository.ErrPurchaseNotFound
	}
	delete(f.s.purchases, id)

	return nil
}

func (f fakeLedger) SaleForUpdate(_ context.Context, id uint) (domain.Sale, error) {
	sl, ok := f.s.sales[id]
	if !ok {
		return domain.Sale{}, repository.ErrSaleNotFound
	}
	sl.BorrowAmount = copyBorrow(sl.BorrowAmount)

	return sl, nil
}

func (f fakeLedger) CreateSale(_ context.Context, sale domain.Sale) (domain.Sale, error) {
	sale.ID = f.s.id()
	sale.CreatedAt = time.Now()
	f.s.sales[sale.ID] = sale

	return sale, nil
}

func (f fakeLedger) SaveSale(_ context.Context, sale domain.Sale) (domain.Sale, error) {
	if _, ok := f.s.sales[sale.ID]; !ok {
		return domain.Sale{}, repository.ErrSaleNotFound
	}
	f.s.sales[sale.ID] = sale

	return sale, nil
}

func (f fakeLedger) DeleteSale(_ context.Context, id uint) error {
	if _, ok := f.s.sales[id]; !ok {
		return repository.ErrSaleNotFound
	}
	delete(f.s.sales, id)

	return nil
}

func (f fakeLedger) FundRows(_ context.Context, shopID string) ([]domain.ShopFund, error) {
	var rows []domain.ShopFund
	for _, row := range f.s.funds {
		if row.ShopID == shopID {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

func (f fakeLedger) FundRowsForUpdate(ctx context.Context, shopID string) ([]domain.ShopFund, error) {
	return f.FundRows(ctx, shopID)
}

func (f fakeLedger) CreateFundRow(_ context.Context, fund domain.ShopFund) (domain.ShopFund, error) {
	fund.ID = f.s.id()
	fund.CreatedAt = time.Now()
	// Newest first, like the durable store's ordering.
	f.s.funds = append([]domain.ShopFund{fund}, f.s.funds...)

	return fund, nil
}

func (f fakeLedger) AddToFundRow(_ context.Context, fundID uint, givenDelta, remainingDelta decimal.Decimal) error {
	for i, row := range f.s.funds {
		if row.ID == fundID {
			f.s.funds[i].GivenAmount = row.GivenAmount.Add(givenDelta)
			f.s.funds[i].RemainingAmount = row.RemainingAmount.Add(remainingDelta)

			return nil
		}
	}

	return repository.ErrFundNotFound
}

func (f fakeLedger) CreateExpense(_ context.Context, expense domain.WorkerExpense) (domain.WorkerExpense, error) {
	expense.ID = f.s.id()
	expense.CreatedAt = time.Now()
	f.s.expenses = append(f.s.expenses, expense)

	return expense, nil
}

// fakeStore implements service.LedgerStore. Transact runs fn against a deep
// copy of the state and commits the copy only when fn succeeds, so tests can
// assert that failed operations leave no partial writes behind.
type fakeStore struct {
	fakeLedger
}

func newFakeStore() *fakeStore {
	return &fakeStore{fakeLedger{s: newLedgerState()}}
}

func (f *fakeStore) Transact(ctx context.Context, fn func(tx repository.Ledger) error) error {
	clone := f.s.clone()
	if err := fn(fakeLedger{s: clone}); err != nil {
		return err
	}
	f.fakeLedger.s = clone

	return nil
}

// fakeUsers implements service.UserDirectory.
type fakeUsers struct {
	users map[uint]domain.User
}

func (f fakeUsers) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user %d: %w", id, repository.ErrUserNotFound)
	}

	return user, nil
}
