package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/repository"
)

type ReportStore interface {
	PurchaseTotals(ctx context.Context, userIDs []uint, from, to *time.Time) (repository.TradeTotals, error)
	SaleTotals(ctx context.Context, userIDs []uint, from, to *time.Time) (repository.TradeTotals, error)
	ExpenseTotal(ctx context.Context, userIDs []uint, from, to *time.Time) (decimal.Decimal, error)
	ItemTotals(ctx context.Context, userID uint) (int64, decimal.Decimal, error)
}

// FundReader is the read-only fund access reports need.
type FundReader interface {
	FundRows(ctx context.Context, shopID string) ([]domain.ShopFund, error)
}

// TradeLister feeds the Excel export with full rows.
type TradeLister interface {
	FindPurchases(ctx context.Context, filter repository.ListFilter) ([]domain.Purchase, int64, error)
	FindSales(ctx context.Context, filter repository.ListFilter) ([]domain.Sale, int64, error)
}

type ReportService struct {
	store  ReportStore
	trades TradeLister
	funds  FundReader
	users  UserRepository
}

func NewReportService(store ReportStore, trades TradeLister, funds FundReader, users UserRepository) *ReportService {
	return &ReportService{
		store:  store,
		trades: trades,
		funds:  funds,
		users:  users,
	}
}

// DashboardStats rolls the caller's scope up: trade totals, expense total,
// item inventory and the shop's remaining fund.
func (s *ReportService) DashboardStats(ctx context.Context, caller domain.User, q ListQuery) (domain.DashboardStats, error) {
	userIDs, err := s.scopeUserIDs(ctx, caller, q.ShopID)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	purchases, err := s.store.PurchaseTotals(ctx, userIDs, q.From, q.To)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.store.PurchaseTotals -> %w", err)
	}
	sales, err := s.store.SaleTotals(ctx, userIDs, q.From, q.To)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.store.SaleTotals -> %w", err)
	}
	expenseTotal, err := s.store.ExpenseTotal(ctx, userIDs, q.From, q.To)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.store.ExpenseTotal -> %w", err)
	}

	stats := domain.DashboardStats{
		Purchases:    domain.TradeSummary(purchases),
		Sales:        domain.TradeSummary(sales),
		ExpenseTotal: expenseTotal,
	}

	stats.ItemCount, stats.TotalStock, err = s.store.ItemTotals(ctx, caller.ID)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.store.ItemTotals -> %w", err)
	}

	if caller.ShopID != "" {
		rows, err := s.funds.FundRows(ctx, caller.ShopID)
		if err != nil {
			return domain.DashboardStats{}, fmt.Errorf("s.funds.FundRows -> %w", err)
		}
		for _, row := range rows {
			stats.FundRemaining = stats.FundRemaining.Add(row.RemainingAmount)
		}
	}

	return stats, nil
}

// DailyReport rolls one calendar day up for the caller's scope. The day is
// taken in the given location so "today" matches the shop's clock.
func (s *ReportService) DailyReport(ctx context.Context, caller domain.User, day time.Time, shopID string) (domain.DailyReport, error) {
	userIDs, err := s.scopeUserIDs(ctx, caller, shopID)
	if err != nil {
		return domain.DailyReport{}, err
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24*time.Hour - time.Nanosecond)

	purchases, err := s.store.PurchaseTotals(ctx, userIDs, &from, &to)
	if err != nil {
		return domain.DailyReport{}, fmt.Errorf("s.store.PurchaseTotals -> %w", err)
	}
	sales, err := s.store.SaleTotals(ctx, userIDs, &from, &to)
	if err != nil {
		return domain.DailyReport{}, fmt.Errorf("s.store.SaleTotals -> %w", err)
	}
	expenses, err := s.store.ExpenseTotal(ctx, userIDs, &from, &to)
	if err != nil {
		return domain.DailyReport{}, fmt.Errorf("s.store.ExpenseTotal -> %w", err)
	}

	return domain.DailyReport{
		Date:      from,
		Purchases: domain.TradeSummary(purchases),
		Sales:     domain.TradeSummary(sales),
		Expenses:  expenses,
		Net:       sales.Total.Sub(purchases.Total).Sub(expenses),
	}, nil
}

// ProfitLoss is the admin-only profit estimate over a date range.
func (s *ReportService) ProfitLoss(ctx context.Context, caller domain.User, q ListQuery) (domain.ProfitLoss, error) {
	userIDs, err := s.scopeUserIDs(ctx, caller, q.ShopID)
	if err != nil {
		return domain.ProfitLoss{}, err
	}

	purchases, err := s.store.PurchaseTotals(ctx, userIDs, q.From, q.To)
	if err != nil {
		return domain.ProfitLoss{}, fmt.Errorf("s.store.PurchaseTotals -> %w", err)
	}
	sales, err := s.store.SaleTotals(ctx, userIDs, q.From, q.To)
	if err != nil {
		return domain.ProfitLoss{}, fmt.Errorf("s.store.SaleTotals -> %w", err)
	}
	expenses, err := s.store.ExpenseTotal(ctx, userIDs, q.From, q.To)
	if err != nil {
		return domain.ProfitLoss{}, fmt.Errorf("s.store.ExpenseTotal -> %w", err)
	}

	return domain.ProfitLoss{
		From:          q.From,
		To:            q.To,
		SaleTotal:     sales.Total,
		PurchaseTotal: purchases.Total,
		ExpenseTotal:  expenses,
		Profit:        sales.Total.Sub(purchases.Total).Sub(expenses),
	}, nil
}

const excelListLimit = 10000

// ExcelReport renders the caller's purchases and sales over a date range as
// a two-sheet workbook.
func (s *ReportService) ExcelReport(ctx context.Context, caller domain.User, q ListQuery) (*bytes.Buffer, error) {
	q.Page = 1
	q.Limit = excelListLimit

	userIDs, err := s.scopeUserIDs(ctx, caller, q.ShopID)
	if err != nil {
		return nil, err
	}

	filter := repository.ListFilter{
		UserIDs:     userIDs,
		From:        q.From,
		To:          q.To,
		PaymentType: q.PaymentType,
		Page:        q.Page,
		Limit:       q.Limit,
	}

	purchases, _, err := s.trades.FindPurchases(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.trades.FindPurchases -> %w", err)
	}
	sales, _, err := s.trades.FindSales(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.trades.FindSales -> %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writePurchaseSheet(f, purchases); err != nil {
		return nil, err
	}
	if err := writeSaleSheet(f, sales); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("f.DeleteSheet -> %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("f.WriteToBuffer -> %w", err)
	}

	return buf, nil
}

func writePurchaseSheet(f *excelize.File, purchases []domain.Purchase) error {
	const sheet = "Purchases"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("f.NewSheet -> %w", err)
	}

	header := []interface{}{"Date", "Item", "Worker", "Supplier", "Quantity", "Unit Price", "Total", "Payment", "Borrow Due"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("f.SetSheetRow -> %w", err)
	}

	for i, p := range purchases {
		row := []interface{}{
			p.PurchaseDate.Format("2006-01-02"),
			p.ItemName,
			p.WorkerName,
			p.SupplierName,
			p.Quantity.String(),
			p.UnitPrice.String(),
			p.TotalAmount.String(),
			string(p.PaymentType),
			p.OutstandingBorrow().String(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	return nil
}

func writeSaleSheet(f *excelize.File, sales []domain.Sale) error {
	const sheet = "Sales"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("f.NewSheet -> %w", err)
	}

	header := []interface{}{"Date", "Item", "Worker", "Customer", "Quantity", "Unit Price", "Total", "Payment", "Borrow Due"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("f.SetSheetRow -> %w", err)
	}

	for i, s := range sales {
		row := []interface{}{
			s.SaleDate.Format("2006-01-02"),
			s.ItemName,
			s.WorkerName,
			s.CustomerName,
			s.Quantity.String(),
			s.UnitPrice.String(),
			s.TotalAmount.String(),
			string(s.PaymentType),
			s.OutstandingBorrow().String(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	return nil
}

func (s *ReportService) scopeUserIDs(ctx context.Context, caller domain.User, shopID string) ([]uint, error) {
	switch {
	case !caller.IsAdmin():
		return []uint{caller.ID}, nil
	case shopID == "" || shopID == ScopeAll:
		return nil, nil
	default:
		ids, err := s.users.WorkerIDsByShop(ctx, shopID)
		if err != nil {
			return nil, fmt.Errorf("s.users.WorkerIDsByShop -> %w", err)
		}
		if len(ids) == 0 {
			ids = []uint{0}
		}

		return ids, nil
	}
}
