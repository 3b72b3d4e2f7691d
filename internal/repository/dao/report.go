package dao

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TradeTotals is the rollup shape shared by purchase and sale reporting.
type TradeTotals struct {
	Total       decimal.Decimal
	Count       int64
	BorrowCount int64
	BorrowTotal decimal.Decimal
}

const tradeTotalsSelect = `
COALESCE(SUM(total_amount), 0)                                               AS total,
COUNT(*)                                                                     AS count,
COUNT(*)            FILTER (WHERE payment_type = 'borrow')                   AS borrow_count,
COALESCE(SUM(borrow_amount) FILTER (WHERE payment_type = 'borrow'), 0)       AS borrow_total`

type ReportDAO struct {
	db *gorm.DB
}

func NewReportDAO(db *gorm.DB) *ReportDAO {
	return &ReportDAO{
		db: db,
	}
}

func (d *ReportDAO) PurchaseTotals(ctx context.Context, filter RecordFilter) (TradeTotals, error) {
	query := d.db.WithContext(ctx).Model(&Purchase{})

	if filter.UserIDs != nil {
		query = query.Where("user_id IN ?", filter.UserIDs)
	}
	if filter.From != nil && filter.To != nil {
		query = query.Where("purchase_date BETWEEN ? AND ?", *filter.From, *filter.To)
	}

	var totals TradeTotals
	if err := query.Select(tradeTotalsSelect).Scan(&totals).Error; err != nil {
		return TradeTotals{}, err
	}

	return totals, nil
}

func (d *ReportDAO) SaleTotals(ctx context.Context, filter RecordFilter) (TradeTotals, error) {
	query := d.db.WithContext(ctx).Model(&Sale{})

	if filter.UserIDs != nil {
		query = query.Where("user_id IN ?", filter.UserIDs)
	}
	if filter.From != nil && filter.To != nil {
		query = query.Where("sale_date BETWEEN ? AND ?", *filter.From, *filter.To)
	}

	var totals TradeTotals
	if err := query.Select(tradeTotalsSelect).Scan(&totals).Error; err != nil {
		return TradeTotals{}, err
	}

	return totals, nil
}

// ItemTotals returns the item count and summed stock for one owner.
func (d *ReportDAO) ItemTotals(ctx context.Context, userID uint) (int64, decimal.Decimal, error) {
	var row struct {
		Count int64
		Stock decimal.Decimal
	}

	err := d.db.WithContext(ctx).
		Model(&Item{}).
		Select("COUNT(*) AS count, COALESCE(SUM(stock), 0) AS stock").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}

	return row.Count, row.Stock, nil
}
