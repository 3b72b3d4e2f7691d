package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository"
)

// StockManager keeps each item's on-hand stock equal to the sum of its
// recorded purchases minus its recorded sales. It holds no state of its own;
// every call operates on the transaction scope handed in by the
// orchestrator.
type StockManager struct{}

// AdjustStock applies delta, positive or negative, to the item's stock.
func (StockManager) AdjustStock(ctx context.Context, tx repository.Ledger, itemID uint, delta decimal.Decimal) error {
	if err := tx.AdjustStock(ctx, itemID, delta); err != nil {
		return fmt.Errorf("tx.AdjustStock -> %w", err)
	}

	return nil
}

// ResolveOrCreateItem finds the owner's item by name, creating it with zero
// stock when it does not exist yet.
func (StockManager) ResolveOrCreateItem(ctx context.Context, tx repository.Ledger, ownerID uint, name, unit string) (domain.Item, error) {
	item, err := tx.ItemByName(ctx, ownerID, name)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, repository.ErrItemNotFound) {
		return domain.Item{}, fmt.Errorf("tx.ItemByName -> %w", err)
	}

	if unit == "" {
		unit = "kg"
	}

	created, err := tx.CreateItem(ctx, domain.Item{
		UserID:   ownerID,
		Name:     name,
		Category: "general",
		Unit:     unit,
		Stock:    decimal.Zero,
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("tx.CreateItem -> %w", err)
	}

	return created, nil
}
