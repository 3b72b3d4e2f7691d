package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository"
)

// FundLedger manages a shop's operating fund, kept as an append-only set of
// top-up rows. The spendable balance is always the sum of RemainingAmount
// over every row of the shop; mutations target exactly one row, the most
// recently created, so a deduction is never split. The targeted row's
// remaining may go negative, the aggregate may not: AuthorizeAndDeduct
// checks the fold over all rows (locked for the whole transaction) before it
// touches anything.
type FundLedger struct{}

// TopUp adds amount to the shop's fund, extending the newest row or
// creating the first one.
func (FundLedger) TopUp(ctx context.Context, tx repository.Ledger, shopID string, amount decimal.Decimal, givenBy string) (domain.ShopFund, error) {
	rows, err := tx.FundRowsForUpdate(ctx, shopID)
	if err != nil {
		return domain.ShopFund{}, fmt.Errorf("tx.FundRowsForUpdate -> %w", err)
	}

	if len(rows) == 0 {
		created, err := tx.CreateFundRow(ctx, domain.ShopFund{
			ShopID:          shopID,
			GivenAmount:     amount,
			RemainingAmount: amount,
			GivenBy:         givenBy,
		})
		if err != nil {
			return domain.ShopFund{}, fmt.Errorf("tx.CreateFundRow -> %w", err)
		}

		return created, nil
	}

	target := rows[0]
	if err := tx.AddToFundRow(ctx, target.ID, amount, amount); err != nil {
		return domain.ShopFund{}, fmt.Errorf("tx.AddToFundRow -> %w", err)
	}

	target.GivenAmount = target.GivenAmount.Add(amount)
	target.RemainingAmount = target.RemainingAmount.Add(amount)

	return target, nil
}

// AuthorizeAndDeduct verifies the shop's aggregate balance covers amount and
// deducts it from the most recent fund row. The whole operation fails with
// ErrInsufficientFunds, deducting nothing, when the balance is short.
func (FundLedger) AuthorizeAndDeduct(ctx context.Context, tx repository.Ledger, shopID string, amount decimal.Decimal) error {
	rows, err := tx.FundRowsForUpdate(ctx, shopID)
	if err != nil {
		return fmt.Errorf("tx.FundRowsForUpdate -> %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no fund for shop %q: %w", shopID, ErrFundNotFound)
	}

	total := sumRemaining(rows)
	if total.LessThan(amount) {
		return fmt.Errorf("available ₹%s, required ₹%s: %w", total, amount, ErrInsufficientFunds)
	}

	if err := tx.AddToFundRow(ctx, rows[0].ID, decimal.Zero, amount.Neg()); err != nil {
		return fmt.Errorf("tx.AddToFundRow -> %w", err)
	}

	return nil
}

// Refund returns amount to the shop's most recent fund row, the inverse of
// a deduction.
func (FundLedger) Refund(ctx context.Context, tx repository.Ledger, shopID string, amount decimal.Decimal) error {
	rows, err := tx.FundRowsForUpdate(ctx, shopID)
	if err != nil {
		return fmt.Errorf("tx.FundRowsForUpdate -> %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no fund for shop %q: %w", shopID, ErrFundNotFound)
	}

	if err := tx.AddToFundRow(ctx, rows[0].ID, decimal.Zero, amount); err != nil {
		return fmt.Errorf("tx.AddToFundRow -> %w", err)
	}

	return nil
}

// CurrentBalance folds the shop's remaining amounts. This is the only
// balance ever shown to callers or checked by deductions.
func (FundLedger) CurrentBalance(ctx context.Context, tx repository.Ledger, shopID string) (decimal.Decimal, error) {
	rows, err := tx.FundRows(ctx, shopID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("tx.FundRows -> %w", err)
	}

	return sumRemaining(rows), nil
}

func sumRemaining(rows []domain.ShopFund) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.RemainingAmount)
	}

	return total
}
