package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository"
)

// ScopeAll lets an admin list records across every shop.
const ScopeAll = "all"

// ListQuery is the caller-supplied narrowing of a purchase/sale listing.
// ShopID only has effect for admins; workers always see their own records.
type ListQuery struct {
	From        *time.Time
	To          *time.Time
	ShopID      string
	PaymentType string
	Page        int
	Limit       int
}

type InventoryRepository interface {
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	FindItem(ctx context.Context, id, userID uint) (domain.Item, error)
	FindItemsByUser(ctx context.Context, userID uint) ([]domain.Item, error)
	ItemSummaries(ctx context.Context, userID uint) ([]domain.ItemSummary, error)
	UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	FindPurchases(ctx context.Context, filter repository.ListFilter) ([]domain.Purchase, int64, error)
	FindSales(ctx context.Context, filter repository.ListFilter) ([]domain.Sale, int64, error)
	FindExpensesByUser(ctx context.Context, userID uint) ([]domain.WorkerExpense, error)
}

// InventoryService serves the non-transactional surface: item CRUD, the
// paginated trade listings and expense history.
type InventoryService struct {
	repo  InventoryRepository
	users UserRepository
}

func NewInventoryService(repo InventoryRepository, users UserRepository) *InventoryService {
	return &InventoryService{
		repo:  repo,
		users: users,
	}
}

func (s *InventoryService) CreateItem(ctx context.Context, caller domain.User, item domain.Item) (domain.Item, error) {
	item.UserID = caller.ID
	if item.Category == "" {
		item.Category = "general"
	}
	if item.Unit == "" {
		item.Unit = "kg"
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.CreateItem -> %w", err)
	}

	return created, nil
}

func (s *InventoryService) GetItem(ctx context.Context, caller domain.User, id uint) (domain.Item, error) {
	item, err := s.repo.FindItem(ctx, id, caller.ID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindItem -> %w", err)
	}

	return item, nil
}

func (s *InventoryService) ListItems(ctx context.Context, caller domain.User) ([]domain.Item, error) {
	items, err := s.repo.FindItemsByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindItemsByUser -> %w", err)
	}

	return items, nil
}

// ItemSummaries returns just names, stock and units, the shape pickers need.
func (s *InventoryService) ItemSummaries(ctx context.Context, caller domain.User) ([]domain.ItemSummary, error) {
	summaries, err := s.repo.ItemSummaries(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ItemSummaries -> %w", err)
	}

	return summaries, nil
}

// UpdateItem edits the descriptive fields of an owned item. Stock is not
// editable here; it only moves through purchases and sales.
func (s *InventoryService) UpdateItem(ctx context.Context, caller domain.User, item domain.Item) (domain.Item, error) {
	item.UserID = caller.ID

	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.UpdateItem -> %w", err)
	}

	return updated, nil
}

func (s *InventoryService) ListPurchases(ctx context.Context, caller domain.User, q ListQuery) ([]domain.Purchase, int64, error) {
	filter, err := s.scopedFilter(ctx, caller, q)
	if err != nil {
		return nil, 0, err
	}

	purchases, totalCount, err := s.repo.FindPurchases(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindPurchases -> %w", err)
	}

	return purchases, totalCount, nil
}

func (s *InventoryService) ListSales(ctx context.Context, caller domain.User, q ListQuery) ([]domain.Sale, int64, error) {
	filter, err := s.scopedFilter(ctx, caller, q)
	if err != nil {
		return nil, 0, err
	}

	sales, totalCount, err := s.repo.FindSales(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.FindSales -> %w", err)
	}

	return sales, totalCount, nil
}

func (s *InventoryService) ListExpenses(ctx context.Context, caller domain.User) ([]domain.WorkerExpense, error) {
	expenses, err := s.repo.FindExpensesByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindExpensesByUser -> %w", err)
	}

	return expenses, nil
}

// scopedFilter turns the caller's role and shop selection into an owner
// restriction: workers see only themselves, admins see one shop's workers
// or everything.
func (s *InventoryService) scopedFilter(ctx context.Context, caller domain.User, q ListQuery) (repository.ListFilter, error) {
	filter := repository.ListFilter{
		From:        q.From,
		To:          q.To,
		PaymentType: q.PaymentType,
		Page:        q.Page,
		Limit:       q.Limit,
	}

	switch {
	case !caller.IsAdmin():
		filter.UserIDs = []uint{caller.ID}
	case q.ShopID == "" || q.ShopID == ScopeAll:
		// unrestricted
	default:
		ids, err := s.users.WorkerIDsByShop(ctx, q.ShopID)
		if err != nil {
			return repository.ListFilter{}, fmt.Errorf("s.users.WorkerIDsByShop -> %w", err)
		}
		if len(ids) == 0 {
			// No workers in that shop; match nothing rather than everything.
			ids = []uint{0}
		}
		filter.UserIDs = ids
	}

	return filter, nil
}
