package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeSummary is one side (purchase or sale) of a reporting rollup.
type TradeSummary struct {
	Total       decimal.Decimal `json:"total"`
	Count       int64           `json:"count"`
	BorrowCount int64           `json:"borrow_count"`
	BorrowTotal decimal.Decimal `json:"borrow_total"`
}

// DashboardStats is the landing-page rollup for one caller's scope.
type DashboardStats struct {
	Purchases     TradeSummary    `json:"purchases"`
	Sales         TradeSummary    `json:"sales"`
	ExpenseTotal  decimal.Decimal `json:"expense_total"`
	ItemCount     int64           `json:"item_count"`
	TotalStock    decimal.Decimal `json:"total_stock"`
	FundRemaining decimal.Decimal `json:"fund_remaining"`
}

// DailyReport rolls one calendar day up.
type DailyReport struct {
	Date      time.Time       `json:"date"`
	Purchases TradeSummary    `json:"purchases"`
	Sales     TradeSummary    `json:"sales"`
	Expenses  decimal.Decimal `json:"expenses"`
	Net       decimal.Decimal `json:"net"`
}

// ProfitLoss is the admin profit estimate over a date range:
// sales minus purchases minus worker expenses.
type ProfitLoss struct {
	From          *time.Time      `json:"from,omitempty"`
	To            *time.Time      `json:"to,omitempty"`
	SaleTotal     decimal.Decimal `json:"sale_total"`
	PurchaseTotal decimal.Decimal `json:"purchase_total"`
	ExpenseTotal  decimal.Decimal `json:"expense_total"`
	Profit        decimal.Decimal `json:"profit"`
}
