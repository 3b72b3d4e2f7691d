package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-api/internal/repository/dao"
)

// TradeTotals is the rollup shape shared by purchase and sale reporting.
type TradeTotals struct {
	Total       decimal.Decimal
	Count       int64
	BorrowCount int64
	BorrowTotal decimal.Decimal
}

type ReportRepository struct {
	reports  *dao.ReportDAO
	expenses *dao.ExpenseDAO
}

func NewReportRepository(reports *dao.ReportDAO, expenses *dao.ExpenseDAO) *ReportRepository {
	return &ReportRepository{
		reports:  reports,
		expenses: expenses,
	}
}

func (r *ReportRepository) PurchaseTotals(ctx context.Context, userIDs []uint, from, to *time.Time) (TradeTotals, error) {
	totals, err := r.reports.PurchaseTotals(ctx, dao.RecordFilter{UserIDs: userIDs, From: from, To: to})
	if err != nil {
		return TradeTotals{}, fmt.Errorf("r.reports.PurchaseTotals -> %w", err)
	}

	return TradeTotals(totals), nil
}

func (r *ReportRepository) SaleTotals(ctx context.Context, userIDs []uint, from, to *time.Time) (TradeTotals, error) {
	totals, err := r.reports.SaleTotals(ctx, dao.RecordFilter{UserIDs: userIDs, From: from, To: to})
	if err != nil {
		return TradeTotals{}, fmt.Errorf("r.reports.SaleTotals -> %w", err)
	}

	return TradeTotals(totals), nil
}

func (r *ReportRepository) ExpenseTotal(ctx context.Context, userIDs []uint, from, to *time.Time) (decimal.Decimal, error) {
	total, err := r.expenses.SumByUsers(ctx, userIDs, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.expenses.SumByUsers -> %w", err)
	}

	return total, nil
}

func (r *ReportRepository) ItemTotals(ctx context.Context, userID uint) (int64, decimal.Decimal, error) {
	count, stock, err := r.reports.ItemTotals(ctx, userID)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("r.reports.ItemTotals -> %w", err)
	}

	return count, stock, nil
}
