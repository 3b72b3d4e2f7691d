package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository/dao"
)

var (
	ErrItemNotFound     = dao.ErrItemNotFound
	ErrPurchaseNotFound = dao.ErrPurchaseNotFound
	ErrSaleNotFound     = dao.ErrSaleNotFound
	ErrFundNotFound     = dao.ErrFundNotFound
)

// Ledger is one transactional view over the shop ledger: items, purchases,
// sales, fund rows and worker expenses. The *ForUpdate reads take row locks
// that live until the enclosing transaction commits or rolls back, which is
// what makes check-then-mutate sequences on stock and fund balances safe
// under concurrent requests.
type Ledger interface {
	ItemForUpdate(ctx context.Context, itemID uint) (domain.Item, error)
	ItemByName(ctx context.Context, ownerID uint, name string) (domain.Item, error)
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	AdjustStock(ctx context.Context, itemID uint, delta decimal.Decimal) error

	PurchaseForUpdate(ctx context.Context, id uint) (domain.Purchase, error)
	CreatePurchase(ctx context.Context, purchase domain.Purchase) (domain.Purchase, error)
	SavePurchase(ctx context.Context, purchase domain.Purchase) (domain.Purchase, error)
	DeletePurchase(ctx context.Context, id uint) error

	SaleForUpdate(ctx context.Context, id uint) (domain.Sale, error)
	CreateSale(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	SaveSale(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	DeleteSale(ctx context.Context, id uint) error

	FundRows(ctx context.Context, shopID string) ([]domain.ShopFund, error)
	FundRowsForUpdate(ctx context.Context, shopID string) ([]domain.ShopFund, error)
	CreateFundRow(ctx context.Context, fund domain.ShopFund) (domain.ShopFund, error)
	AddToFundRow(ctx context.Context, fundID uint, givenDelta, remainingDelta decimal.Decimal) error

	CreateExpense(ctx context.Context, expense domain.WorkerExpense) (domain.WorkerExpense, error)
}

// ledgerView implements Ledger over one set of DAO handles, either the root
// connection or a transaction binding.
type ledgerView struct {
	items     *dao.ItemDAO
	purchases *dao.PurchaseDAO
	sales     *dao.SaleDAO
	funds     *dao.FundDAO
	expenses  *dao.ExpenseDAO
}

// LedgerRepository is the durable ledger store. Reads outside a transaction
// go through the embedded root view; Transact rebinds every DAO to a single
// database transaction so either all of an operation's writes commit or none
// do.
type LedgerRepository struct {
	ledgerView

	runner *dao.TxRunner
}

func NewLedgerRepository(runner *dao.TxRunner, items *dao.ItemDAO, purchases *dao.PurchaseDAO, sales *dao.SaleDAO, funds *dao.FundDAO, expenses *dao.ExpenseDAO) *LedgerRepository {
	return &LedgerRepository{
		ledgerView: ledgerView{
			items:     items,
			purchases: purchases,
			sales:     sales,
			funds:     funds,
			expenses:  expenses,
		},
		runner: runner,
	}
}

func (r *LedgerRepository) Transact(ctx context.Context, fn func(tx Ledger) error) error {
	return r.runner.Transact(ctx, func(tx *gorm.DB) error {
		return fn(&ledgerView{
			items:     r.items.WithTx(tx),
			purchases: r.purchases.WithTx(tx),
			sales:     r.sales.WithTx(tx),
			funds:     r.funds.WithTx(tx),
			expenses:  r.expenses.WithTx(tx),
		})
	})
}

func (v *ledgerView) ItemForUpdate(ctx context.Context, itemID uint) (domain.Item, error) {
	found, err := v.items.FindByIDForUpdate(ctx, itemID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("v.items.FindByIDForUpdate -> %w", err)
	}

	return itemDaoToDomain(found), nil
}

func (v *ledgerView) ItemByName(ctx context.Context, ownerID uint, name string) (domain.Item, error) {
	found, err := v.items.FindByName(ctx, ownerID, name)
	if err != nil {
		return domain.Item{}, fmt.Errorf("v.items.FindByName -> %w", err)
	}

	return itemDaoToDomain(found), nil
}

func (v *ledgerView) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	created, err := v.items.Insert(ctx, dao.Item{
		UserID:      item.UserID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Unit:        item.Unit,
		Stock:       item.Stock,
		MinStock:    item.MinStock,
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("v.items.Insert -> %w", err)
	}

	return itemDaoToDomain(created), nil
}

func (v *ledgerView) AdjustStock(ctx context.Context, itemID uint, delta decimal.Decimal) error {
	if err := v.items.AdjustStock(ctx, itemID, delta); err != nil {
		return fmt.Errorf("v.items.AdjustStock -> %w", err)
	}

	return nil
}

func (v *ledgerView) PurchaseForUpdate(ctx context.Context, id uint) (domain.Purchase, error) {
	found, err := v.purchases.FindByIDForUpdate(ctx, id)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("v.purchases.FindByIDForUpdate -> %w", err)
	}

	return purchaseDaoToDomain(found), nil
}

func (v *ledgerView) CreatePurchase(ctx context.Context, purchase domain.Purchase) (domain.Purchase, error) {
	created, err := v.purchases.Insert(ctx, purchaseDomainToDao(purchase))
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("v.purchases.Insert -> %w", err)
	}

	return purchaseDaoToDomain(created), nil
}

func (v *ledgerView) SavePurchase(ctx context.Context, purchase domain.Purchase) (domain.Purchase, error) {
	updated, err := v.purchases.Update(ctx, purchaseDomainToDao(purchase))
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("v.purchases.Update -> %w", err)
	}

	return purchaseDaoToDomain(updated), nil
}

func (v *ledgerView) DeletePurchase(ctx context.Context, id uint) error {
	if err := v.purchases.Delete(ctx, id); err != nil {
		return fmt.Errorf("v.purchases.Delete -> %w", err)
	}

	return nil
}

func (v *ledgerView) SaleForUpdate(ctx context.Context, id uint) (domain.Sale, error) {
	found, err := v.sales.FindByIDForUpdate(ctx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("v.sales.FindByIDForUpdate -> %w", err)
	}

	return saleDaoToDomain(found), nil
}

func (v *ledgerView) CreateSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	created, err := v.sales.Insert(ctx, saleDomainToDao(sale))
	if err != nil {
		return domain.Sale{}, fmt.Errorf("v.sales.Insert -> %w", err)
	}

	return saleDaoToDomain(created), nil
}

func (v *ledgerView) SaveSale(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	updated, err := v.sales.Update(ctx, saleDomainToDao(sale))
	if err != nil {
		return domain.Sale{}, fmt.Errorf("v.sales.Update -> %w", err)
	}

	return saleDaoToDomain(updated), nil
}

func (v *ledgerView) DeleteSale(ctx context.Context, id uint) error {
	if err := v.sales.Delete(ctx, id); err != nil {
		return fmt.Errorf("v.sales.Delete -> %w", err)
	}

	return nil
}

func (v *ledgerView) FundRows(ctx context.Context, shopID string) ([]domain.ShopFund, error) {
	found, err := v.funds.FindByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("v.funds.FindByShop -> %w", err)
	}

	return fundsDaoToDomain(found), nil
}

func (v *ledgerView) FundRowsForUpdate(ctx context.Context, shopID string) ([]domain.ShopFund, error) {
	found, err := v.funds.FindByShopForUpdate(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("v.funds.FindByShopForUpdate -> %w", err)
	}

	return fundsDaoToDomain(found), nil
}

func (v *ledgerView) CreateFundRow(ctx context.Context, fund domain.ShopFund) (domain.ShopFund, error) {
	created, err := v.funds.Insert(ctx, dao.ShopFund{
		ShopID:          fund.ShopID,
		GivenAmount:     fund.GivenAmount,
		RemainingAmount: fund.RemainingAmount,
		GivenBy:         fund.GivenBy,
	})
	if err != nil {
		return domain.ShopFund{}, fmt.Errorf("v.funds.Insert -> %w", err)
	}

	return fundDaoToDomain(created), nil
}

func (v *ledgerView) AddToFundRow(ctx context.Context, fundID uint, givenDelta, remainingDelta decimal.Decimal) error {
	if err := v.funds.AddAmounts(ctx, fundID, givenDelta, remainingDelta); err != nil {
		return fmt.Errorf("v.funds.AddAmounts -> %w", err)
	}

	return nil
}

func (v *ledgerView) CreateExpense(ctx context.Context, expense domain.WorkerExpense) (domain.WorkerExpense, error) {
	created, err := v.expenses.Insert(ctx, dao.WorkerExpense{
		UserID: expense.UserID,
		Title:  expense.Title,
		Amount: expense.Amount,
	})
	if err != nil {
		return domain.WorkerExpense{}, fmt.Errorf("v.expenses.Insert -> %w", err)
	}

	return expenseDaoToDomain(created), nil
}

func itemDaoToDomain(i dao.Item) domain.Item {
	item := domain.Item{
		ID:          i.ID,
		UserID:      i.UserID,
		Name:        i.Name,
		Description: i.Description,
		Category:    i.Category,
		Unit:        i.Unit,
		Stock:       i.Stock,
		MinStock:    i.MinStock,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}

	for _, p := range i.Purchases {
		item.Purchases = append(item.Purchases, purchaseDaoToDomain(p))
	}
	for _, s := range i.Sales {
		item.Sales = append(item.Sales, saleDaoToDomain(s))
	}

	return item
}

func purchaseDaoToDomain(p dao.Purchase) domain.Purchase {
	return domain.Purchase{
		ID:              p.ID,
		ItemID:          p.ItemID,
		UserID:          p.UserID,
		SupplierName:    p.SupplierName,
		SupplierContact: p.SupplierContact,
		Quantity:        p.Quantity,
		UnitPrice:       p.UnitPrice,
		TotalAmount:     p.TotalAmount,
		PaymentType:     domain.PaymentType(p.PaymentType),
		BorrowAmount:    p.BorrowAmount,
		PurchaseDate:    p.PurchaseDate,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		ItemName:        p.Item.Name,
		WorkerName:      p.User.Name,
	}
}

func purchaseDomainToDao(p domain.Purchase) dao.Purchase {
	return dao.Purchase{
		ID:              p.ID,
		ItemID:          p.ItemID,
		UserID:          p.UserID,
		SupplierName:    p.SupplierName,
		SupplierContact: p.SupplierContact,
		Quantity:        p.Quantity,
		UnitPrice:       p.UnitPrice,
		TotalAmount:     p.TotalAmount,
		PaymentType:     string(p.PaymentType),
		BorrowAmount:    p.BorrowAmount,
		PurchaseDate:    p.PurchaseDate,
	}
}

func saleDaoToDomain(s dao.Sale) domain.Sale {
	return domain.Sale{
		ID:              s.ID,
		ItemID:          s.ItemID,
		UserID:          s.UserID,
		CustomerName:    s.CustomerName,
		CustomerContact: s.CustomerContact,
		Quantity:        s.Quantity,
		UnitPrice:       s.UnitPrice,
		TotalAmount:     s.TotalAmount,
		PaymentType:     domain.PaymentType(s.PaymentType),
		BorrowAmount:    s.BorrowAmount,
		SaleDate:        s.SaleDate,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		ItemName:        s.Item.Name,
		WorkerName:      s.User.Name,
	}
}

func saleDomainToDao(s domain.Sale) dao.Sale {
	return dao.Sale{
		ID:              s.ID,
		ItemID:          s.ItemID,
		UserID:          s.UserID,
		CustomerName:    s.CustomerName,
		CustomerContact: s.CustomerContact,
		Quantity:        s.Quantity,
		UnitPrice:       s.UnitPrice,
		TotalAmount:     s.TotalAmount,
		PaymentType:     string(s.PaymentType),
		BorrowAmount:    s.BorrowAmount,
		SaleDate:        s.SaleDate,
	}
}

func fundDaoToDomain(f dao.ShopFund) domain.ShopFund {
	return domain.ShopFund{
		ID:              f.ID,
		ShopID:          f.ShopID,
		GivenAmount:     f.GivenAmount,
		RemainingAmount: f.RemainingAmount,
		GivenBy:         f.GivenBy,
		CreatedAt:       f.CreatedAt,
	}
}

func fundsDaoToDomain(funds []dao.ShopFund) []domain.ShopFund {
	out := make([]domain.ShopFund, 0, len(funds))
	for _, f := range funds {
		out = append(out, fundDaoToDomain(f))
	}

	return out
}

func expenseDaoToDomain(e dao.WorkerExpense) domain.WorkerExpense {
	return domain.WorkerExpense{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Amount:    e.Amount,
		CreatedAt: e.CreatedAt,
	}
}
