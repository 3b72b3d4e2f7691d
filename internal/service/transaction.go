package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository"
)

// LedgerStore is the transactional ledger the orchestrator runs against.
// Transact executes fn inside one database transaction: every row lock taken
// through the Ledger view lives until fn returns, and no write survives an
// error.
type LedgerStore interface {
	repository.Ledger

	Transact(ctx context.Context, fn func(tx repository.Ledger) error) error
}

// UserDirectory resolves record owners so operations on another worker's
// rows charge that worker's shop, not the caller's.
type UserDirectory interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// PurchaseInput carries the caller-supplied fields of a purchase create or
// update. Exactly one of ItemID/ItemName must be set; ItemName resolves or
// creates an item owned by the record's worker.
type PurchaseInput struct {
	ItemID          uint
	ItemName        string
	Unit            string
	SupplierName    string
	SupplierContact string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	PaymentType     domain.PaymentType
	BorrowAmount    *decimal.Decimal
	PurchaseDate    time.Time
}

// SaleInput mirrors PurchaseInput for the customer side. Sales always
// reference an existing item.
type SaleInput struct {
	ItemID          uint
	CustomerName    string
	CustomerContact string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	PaymentType     domain.PaymentType
	BorrowAmount    *decimal.Decimal
	SaleDate        time.Time
}

// TransactionService orchestrates every ledger mutation: it sequences the
// stock manager, fund ledger and borrow settler inside a single transaction
// per operation, so stock, fund and record rows can never drift apart on
// partial failure.
type TransactionService struct {
	store LedgerStore
	users UserDirectory

	stock   StockManager
	funds   FundLedger
	settler BorrowSettler
}

func NewTransactionService(store LedgerStore, users UserDirectory) *TransactionService {
	return &TransactionService{
		store: store,
		users: users,
	}
}

// CreatePurchase records a purchase for the caller. Non-borrow purchases
// are authorized against the shop fund before any durable write, so a
// purchase can never exist without a funding basis.
func (s *TransactionService) CreatePurchase(ctx context.Context, caller domain.User, in PurchaseInput) (domain.Purchase, error) {
	if caller.ShopID == "" {
		return domain.Purchase{}, ErrNoShop
	}

	total := in.Quantity.Mul(in.UnitPrice)
	borrow, err := borrowAmountFor(in.PaymentType, in.BorrowAmount, total)
	if err != nil {
		return domain.Purchase{}, err
	}

	var created domain.Purchase
	err = s.store.Transact(ctx, func(tx repository.Ledger) error {
		item, err := s.resolveItem(ctx, tx, caller.ID, in.ItemID, in.ItemName, in.Unit)
		if err != nil {
			return err
		}

		if in.PaymentType != domain.PaymentBorrow {
			if err := s.funds.AuthorizeAndDeduct(ctx, tx, caller.ShopID, total); err != nil {
				return err
			}
		}

		created, err = tx.CreatePurchase(ctx, domain.Purchase{
			ItemID:          item.ID,
			UserID:          caller.ID,
			SupplierName:    in.SupplierName,
			SupplierContact: in.SupplierContact,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			TotalAmount:     total,
			PaymentType:     in.PaymentType,
			BorrowAmount:    borrow,
			PurchaseDate:    defaultDate(in.PurchaseDate),
		})
		if err != nil {
			return err
		}

		return s.stock.AdjustStock(ctx, tx, item.ID, in.Quantity)
	})
	if err != nil {
		return domain.Purchase{}, err
	}

	return created, nil
}

// UpdatePurchase recomputes the record from the new quantity and price,
// moves stock by the delta and settles the fund by the difference between
// the old and new non-borrow totals.
func (s *TransactionService) UpdatePurchase(ctx context.Context, caller domain.User, id uint, in PurchaseInput) (domain.Purchase, error) {
	var updated domain.Purchase
	err := s.store.Transact(ctx, func(tx repository.Ledger) error {
		old, err := tx.PurchaseForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorizeRecordAccess(caller, old.UserID, ErrPurchaseNotFound); err != nil {
			return err
		}

		item, err := s.resolveItem(ctx, tx, old.UserID, in.ItemID, in.ItemName, in.Unit)
		if err != nil {
			return err
		}

		newTotal := in.Quantity.Mul(in.UnitPrice)
		borrow, err := borrowAmountFor(in.PaymentType, in.BorrowAmount, newTotal)
		if err != nil {
			return err
		}

		// Stock follows the records: remove the old contribution where it
		// was, add the new one where it goes.
		if item.ID != old.ItemID {
			if err := s.stock.AdjustStock(ctx, tx, old.ItemID, old.Quantity.Neg()); err != nil {
				return err
			}
			if err := s.stock.AdjustStock(ctx, tx, item.ID, in.Quantity); err != nil {
				return err
			}
		} else if diff := in.Quantity.Sub(old.Quantity); !diff.IsZero() {
			if err := s.stock.AdjustStock(ctx, tx, item.ID, diff); err != nil {
				return err
			}
		}

		shopID, err := s.ownerShop(ctx, caller, old.UserID)
		if err != nil {
			return err
		}
		if err := s.settleFundDelta(ctx, tx, shopID, fundCharge(old.PaymentType, old.TotalAmount), fundCharge(in.PaymentType, newTotal)); err != nil {
			return err
		}

		old.ItemID = item.ID
		old.SupplierName = in.SupplierName
		old.SupplierContact = in.SupplierContact
		old.Quantity = in.Quantity
		old.UnitPrice = in.UnitPrice
		old.TotalAmount = newTotal
		old.PaymentType = in.PaymentType
		old.BorrowAmount = borrow
		old.PurchaseDate = defaultDate(in.PurchaseDate)

		updated, err = tx.SavePurchase(ctx, old)

		return err
	})
	if err != nil {
		return domain.Purchase{}, err
	}

	return updated, nil
}

// DeletePurchase reverses the purchase: stock drops by the quantity and,
// for non-borrow purchases, the total is refunded to the shop fund.
func (s *TransactionService) DeletePurchase(ctx context.Context, caller domain.User, id uint) error {
	return s.store.Transact(ctx, func(tx repository.Ledger) error {
		old, err := tx.PurchaseForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorizeRecordAccess(caller, old.UserID, ErrPurchaseNotFound); err != nil {
			return err
		}

		if err := s.stock.AdjustStock(ctx, tx, old.ItemID, old.Quantity.Neg()); err != nil {
			return err
		}

		if !old.IsBorrow() {
			shopID, err := s.ownerShop(ctx, caller, old.UserID)
			if err != nil {
				return err
			}
			if err := s.funds.Refund(ctx, tx, shopID, old.TotalAmount); err != nil {
				return err
			}
		}

		return tx.DeletePurchase(ctx, id)
	})
}

// PayPurchaseBorrow settles part of a borrow purchase. Paying down supplier
// credit spends shop money, so the payment is authorized against the fund;
// nothing changes when the fund is short.
func (s *TransactionService) PayPurchaseBorrow(ctx context.Context, caller domain.User, id uint, amount decimal.Decimal) (domain.Purchase, error) {
	var updated domain.Purchase
	err := s.store.Transact(ctx, func(tx repository.Ledger) error {
		purchase, err := tx.PurchaseForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorizeRecordAccess(caller, purchase.UserID, ErrPurchaseNotFound); err != nil {
			return err
		}

		settlement, err := s.settler.ApplyPartialPayment(purchase.PaymentType, purchase.OutstandingBorrow(), amount)
		if err != nil {
			return err
		}

		shopID, err := s.ownerShop(ctx, caller, purchase.UserID)
		if err != nil {
			return err
		}
		if err := s.funds.AuthorizeAndDeduct(ctx, tx, shopID, amount); err != nil {
			return err
		}

		purchase.BorrowAmount = &settlement.BorrowAmount
		purchase.PaymentType = settlement.PaymentType

		updated, err = tx.SavePurchase(ctx, purchase)

		return err
	})
	if err != nil {
		return domain.Purchase{}, err
	}

	return updated, nil
}

// CreateSale records a sale for the caller. The stock-sufficiency check and
// the decrement run under one item row lock, so concurrent sales cannot
// oversell.
func (s *TransactionService) CreateSale(ctx context.Context, caller domain.User, in SaleInput) (domain.Sale, error) {
	total := in.Quantity.Mul(in.UnitPrice)
	borrow, err := borrowAmountFor(in.PaymentType, in.BorrowAmount, total)
	if err != nil {
		return domain.Sale{}, err
	}

	var created domain.Sale
	err = s.store.Transact(ctx, func(tx repository.Ledger) error {
		item, err := tx.ItemForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if err := s.authorizeRecordAccess(caller, item.UserID, ErrItemNotFound); err != nil {
			return err
		}

		if in.Quantity.GreaterThan(item.Stock) {
			return fmt.Errorf("requested %s, in stock %s: %w", in.Quantity, item.Stock, ErrInsufficientStock)
		}

		created, err = tx.CreateSale(ctx, domain.Sale{
			ItemID:          item.ID,
			UserID:          caller.ID,
			CustomerName:    in.CustomerName,
			CustomerContact: in.CustomerContact,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			TotalAmount:     total,
			PaymentType:     in.PaymentType,
			BorrowAmount:    borrow,
			SaleDate:        defaultDate(in.SaleDate),
		})
		if err != nil {
			return err
		}

		return s.stock.AdjustStock(ctx, tx, item.ID, in.Quantity.Neg())
	})
	if err != nil {
		return domain.Sale{}, err
	}

	return created, nil
}

// UpdateSale recomputes the record and moves stock by the delta, with the
// sale sign convention: a larger quantity takes more stock. The new
// quantity must still be coverable once the old one is handed back.
func (s *TransactionService) UpdateSale(ctx context.Context, caller domain.User, id uint, in SaleInput) (domain.Sale, error) {
	var updated domain.Sale
	err := s.store.Transact(ctx, func(tx repository.Ledger) error {
		old, err := tx.SaleForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorizeRecordAccess(caller, old.UserID, ErrSaleNotFound); err != nil {
			return err
		}

		itemID := in.ItemID
		if itemID == 0 {
			itemID = old.ItemID
		}
		item, err := tx.ItemForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item.UserID != old.UserID {
			return fmt.Errorf("item %d does not belong to user %d: %w", item.ID, old.UserID, ErrItemNotFound)
		}

		available := item.Stock
		if item.ID == old.ItemID {
			available = available.Add(old.Quantity)
		}
		if in.Quantity.GreaterThan(available) {
			return fmt.Errorf("requested %s, in stock %s: %w", in.Quantity, available, ErrInsufficientStock)
		}

		if item.ID != old.ItemID {
			if err := s.stock.AdjustStock(ctx, tx, old.ItemID, old.Quantity); err != nil {
				return err
			}
			if err := s.stock.AdjustStock(ctx, tx, item.ID, in.Quantity.Neg()); err != nil {
				return err
			}
		} else if diff := old.Quantity.Sub(in.Quantity); !diff.IsZero() {
			if err := s.stock.AdjustStock(ctx, tx, item.ID, diff); err != nil {
				return err
			}
		}

		newTotal := in.Quantity.Mul(in.UnitPrice)
		borrow, err := borrowAmountFor(in.PaymentType, in.BorrowAmount, newTotal)
		if err != nil {
			return err
		}

		old.ItemID = item.ID
		old.CustomerName = in.CustomerName
		old.CustomerContact = in.CustomerContact
		old.Quantity = in.Quantity
		old.UnitPrice = in.UnitPrice
		old.TotalAmount = newTotal
		old.PaymentType = in.PaymentType
		old.BorrowAmount = borrow
		old.SaleDate = defaultDate(in.SaleDate)

		updated, err = tx.SaveSale(ctx, old)

		return err
	})
	if err != nil {
		return domain.Sale{}, err
	}

	return updated, nil
}

// DeleteSale reverses the sale: the quantity returns to stock. Sales never
// touched the fund, so there is nothing to refund.
func (s *TransactionService) DeleteSale(ctx context.Context, caller domain.User, id uint) error {
	return s.store.Transact(ctx, func(tx repository.Ledger) error {
		old, err := tx.SaleForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorizeRecordAccess(caller, old.UserID, ErrSaleNotFound); err != nil {
			return err
		}

		if err := s.stock.AdjustStock(ctx, tx, old.ItemID, old.Quantity); err != nil {
			return err
		}

		return tx.DeleteSale(ctx, id)
	})
}

// PaySaleBorrow settles part of a borrow sale. Money received from a
// customer stays outside fund accounting, so only the record changes.
func (s *TransactionService) PaySaleBorrow(ctx context.Context, caller domain.User, id uint, amount decimal.Decimal) (domain.Sale, error) {
	var updated domain.Sale
	err := s.store.Transact(ctx, func(tx repository.Ledger) error {
		sale, err := tx.SaleForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorizeRecordAccess(caller, sale.UserID, ErrSaleNotFound); err != nil {
			return err
		}

		settlement, err := s.settler.ApplyPartialPayment(sale.PaymentType, sale.OutstandingBorrow(), amount)
		if err != nil {
			return err
		}

		sale.BorrowAmount = &settlement.BorrowAmount
		sale.PaymentType = settlement.PaymentType

		updated, err = tx.SaveSale(ctx, sale)

		return err
	})
	if err != nil {
		return domain.Sale{}, err
	}

	return updated, nil
}

// TopUpFund adds amount to the caller's shop fund.
func (s *TransactionService) TopUpFund(ctx context.Context, caller domain.User, amount decimal.Decimal, givenBy string) (domain.ShopFund, error) {
	if caller.ShopID == "" {
		return domain.ShopFund{}, ErrNoShop
	}

	var fund domain.ShopFund
	err := s.store.Transact(ctx, func(tx repository.Ledger) error {
		var err error
		fund, err = s.funds.TopUp(ctx, tx, caller.ShopID, amount, givenBy)

		return err
	})
	if err != nil {
		return domain.ShopFund{}, err
	}

	return fund, nil
}

// FundBalance reports the shop's aggregate balance and its top-up rows.
func (s *TransactionService) FundBalance(ctx context.Context, caller domain.User) (domain.FundBalance, error) {
	if caller.ShopID == "" {
		return domain.FundBalance{}, ErrNoShop
	}

	rows, err := s.store.FundRows(ctx, caller.ShopID)
	if err != nil {
		return domain.FundBalance{}, fmt.Errorf("s.store.FundRows -> %w", err)
	}

	balance := domain.FundBalance{
		ShopID: caller.ShopID,
		Funds:  rows,
	}
	for _, row := range rows {
		balance.TotalGiven = balance.TotalGiven.Add(row.GivenAmount)
		balance.TotalRemaining = balance.TotalRemaining.Add(row.RemainingAmount)
	}

	return balance, nil
}

// AddWorkerExpense deducts amount from the caller's shop fund and records
// the expense. The returned balance is recomputed after the deduction, in
// the same transaction.
func (s *TransactionService) AddWorkerExpense(ctx context.Context, caller domain.User, title string, amount decimal.Decimal) (domain.WorkerExpense, decimal.Decimal, error) {
	if caller.ShopID == "" {
		return domain.WorkerExpense{}, decimal.Zero, ErrNoShop
	}

	var (
		expense   domain.WorkerExpense
		remaining decimal.Decimal
	)
	err := s.store.Transact(ctx, func(tx repository.Ledger) error {
		if err := s.funds.AuthorizeAndDeduct(ctx, tx, caller.ShopID, amount); err != nil {
			return err
		}

		var err error
		expense, err = tx.CreateExpense(ctx, domain.WorkerExpense{
			UserID: caller.ID,
			Title:  title,
			Amount: amount,
		})
		if err != nil {
			return err
		}

		remaining, err = s.funds.CurrentBalance(ctx, tx, caller.ShopID)

		return err
	})
	if err != nil {
		return domain.WorkerExpense{}, decimal.Zero, err
	}

	return expense, remaining, nil
}

// resolveItem loads the item a record refers to, by ID or by owner-scoped
// name, creating it when only an unknown name was given.
func (s *TransactionService) resolveItem(ctx context.Context, tx repository.Ledger, ownerID, itemID uint, itemName, unit string) (domain.Item, error) {
	if itemID != 0 {
		item, err := tx.ItemForUpdate(ctx, itemID)
		if err != nil {
			return domain.Item{}, err
		}
		if item.UserID != ownerID {
			return domain.Item{}, fmt.Errorf("item %d does not belong to user %d: %w", itemID, ownerID, ErrItemNotFound)
		}

		return item, nil
	}

	return s.stock.ResolveOrCreateItem(ctx, tx, ownerID, itemName, unit)
}

// settleFundDelta charges or refunds the difference between the old and new
// non-borrow totals of an updated purchase.
func (s *TransactionService) settleFundDelta(ctx context.Context, tx repository.Ledger, shopID string, oldCharge, newCharge decimal.Decimal) error {
	delta := newCharge.Sub(oldCharge)
	switch {
	case delta.IsPositive():
		return s.funds.AuthorizeAndDeduct(ctx, tx, shopID, delta)
	case delta.IsNegative():
		return s.funds.Refund(ctx, tx, shopID, delta.Neg())
	}

	return nil
}

// authorizeRecordAccess hides other workers' records from non-admin
// callers: an out-of-scope row reads the same as a missing one.
func (s *TransactionService) authorizeRecordAccess(caller domain.User, ownerID uint, notFound error) error {
	if caller.IsAdmin() || caller.ID == ownerID {
		return nil
	}

	return fmt.Errorf("record owner %d, caller %d: %w", ownerID, caller.ID, notFound)
}

// ownerShop resolves the shop whose fund an operation settles against.
func (s *TransactionService) ownerShop(ctx context.Context, caller domain.User, ownerID uint) (string, error) {
	if caller.ID == ownerID {
		if caller.ShopID == "" {
			return "", ErrNoShop
		}

		return caller.ShopID, nil
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("s.users.FindByID -> %w", err)
	}
	if owner.ShopID == "" {
		return "", ErrNoShop
	}

	return owner.ShopID, nil
}

// fundCharge is what a purchase takes out of the fund: its full total when
// paid, nothing when borrowed.
func fundCharge(paymentType domain.PaymentType, total decimal.Decimal) decimal.Decimal {
	if paymentType == domain.PaymentBorrow {
		return decimal.Zero
	}

	return total
}

// borrowAmountFor validates a requested borrow amount against the record
// total, defaulting an omitted one to the full total. The outstanding borrow
// can never exceed what the record is worth.
func borrowAmountFor(paymentType domain.PaymentType, requested *decimal.Decimal, total decimal.Decimal) (*decimal.Decimal, error) {
	if paymentType != domain.PaymentBorrow {
		return nil, nil
	}
	if requested == nil {
		return &total, nil
	}
	if !requested.IsPositive() || requested.GreaterThan(total) {
		return nil, fmt.Errorf("borrow amount %s against total %s: %w", requested, total, ErrInvalidPaymentAmount)
	}

	amount := *requested

	return &amount, nil
}

func defaultDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}

	return t
}
