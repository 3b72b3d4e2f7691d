package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository/dao"
)

// ListFilter narrows purchase/sale list queries. Nil UserIDs means no owner
// restriction (admin viewing every shop).
type ListFilter struct {
	UserIDs     []uint
	From        *time.Time
	To          *time.Time
	PaymentType string
	Page        int
	Limit       int
}

func (f ListFilter) toDAO() dao.RecordFilter {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}

	return dao.RecordFilter{
		UserIDs:     f.UserIDs,
		From:        f.From,
		To:          f.To,
		PaymentType: f.PaymentType,
		Offset:      (page - 1) * limit,
		Limit:       limit,
	}
}

// InventoryRepository serves the plain read/write item surface and the
// paginated trade listings, everything that does not need the transactional
// ledger view.
type InventoryRepository struct {
	items     *dao.ItemDAO
	purchases *dao.PurchaseDAO
	sales     *dao.SaleDAO
	expenses  *dao.ExpenseDAO
}

func NewInventoryRepository(items *dao.ItemDAO, purchases *dao.PurchaseDAO, sales *dao.SaleDAO, expenses *dao.ExpenseDAO) *InventoryRepository {
	return &InventoryRepository{
		items:     items,
		purchases: purchases,
		sales:     sales,
		expenses:  expenses,
	}
}

func (r *InventoryRepository) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	created, err := r.items.Insert(ctx, dao.Item{
		UserID:      item.UserID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Unit:        item.Unit,
		MinStock:    item.MinStock,
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.items.Insert -> %w", err)
	}

	return itemDaoToDomain(created), nil
}

func (r *InventoryRepository) FindItem(ctx context.Context, id, userID uint) (domain.Item, error) {
	found, err := r.items.FindByID(ctx, id, userID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.items.FindByID -> %w", err)
	}

	return itemDaoToDomain(found), nil
}

func (r *InventoryRepository) FindItemsByUser(ctx context.Context, userID uint) ([]domain.Item, error) {
	found, err := r.items.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.items.FindAllByUser -> %w", err)
	}

	items := make([]domain.Item, 0, len(found))
	for _, i := range found {
		items = append(items, itemDaoToDomain(i))
	}

	return items, nil
}

func (r *InventoryRepository) ItemSummaries(ctx context.Context, userID uint) ([]domain.ItemSummary, error) {
	found, err := r.items.FindNamesAndStock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.items.FindNamesAndStock -> %w", err)
	}

	summaries := make([]domain.ItemSummary, 0, len(found))
	for _, i := range found {
		summaries = append(summaries, domain.ItemSummary{
			ID:    i.ID,
			Name:  i.Name,
			Stock: i.Stock,
			Unit:  i.Unit,
		})
	}

	return summaries, nil
}

func (r *InventoryRepository) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	updated, err := r.items.Update(ctx, dao.Item{
		ID:          item.ID,
		UserID:      item.UserID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Unit:        item.Unit,
		MinStock:    item.MinStock,
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.items.Update -> %w", err)
	}

	return itemDaoToDomain(updated), nil
}

func (r *InventoryRepository) FindPurchases(ctx context.Context, filter ListFilter) ([]domain.Purchase, int64, error) {
	found, totalCount, err := r.purchases.FindAll(ctx, filter.toDAO())
	if err != nil {
		return nil, 0, fmt.Errorf("r.purchases.FindAll -> %w", err)
	}

	purchases := make([]domain.Purchase, 0, len(found))
	for _, p := range found {
		purchases = append(purchases, purchaseDaoToDomain(p))
	}

	return purchases, totalCount, nil
}

func (r *InventoryRepository) FindSales(ctx context.Context, filter ListFilter) ([]domain.Sale, int64, error) {
	found, totalCount, err := r.sales.FindAll(ctx, filter.toDAO())
	if err != nil {
		return nil, 0, fmt.Errorf("r.sales.FindAll -> %w", err)
	}

	sales := make([]domain.Sale, 0, len(found))
	for _, s := range found {
		sales = append(sales, saleDaoToDomain(s))
	}

	return sales, totalCount, nil
}

func (r *InventoryRepository) FindExpensesByUser(ctx context.Context, userID uint) ([]domain.WorkerExpense, error) {
	found, err := r.expenses.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.expenses.FindAllByUser -> %w", err)
	}

	expenses := make([]domain.WorkerExpense, 0, len(found))
	for _, e := range found {
		expenses = append(expenses, expenseDaoToDomain(e))
	}

	return expenses, nil
}
