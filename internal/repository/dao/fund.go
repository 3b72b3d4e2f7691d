package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrFundNotFound = errors.New("shop fund not found")

// ShopFund rows form an append-only ledger of top-ups per shop. Deductions
// and refunds mutate RemainingAmount of existing rows; rows are never
// deleted.
type ShopFund struct {
	ID uint `gorm:"primaryKey"`

	ShopID          string          `gorm:"index;not null"`
	GivenAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	GivenBy         string

	CreatedAt time.Time `gorm:"not null"`
}

type FundDAO struct {
	db *gorm.DB
}

func NewFundDAO(db *gorm.DB) *FundDAO {
	return &FundDAO{
		db: db,
	}
}

func (d *FundDAO) WithTx(tx *gorm.DB) *FundDAO {
	return &FundDAO{db: tx}
}

func (d *FundDAO) Insert(ctx context.Context, fund ShopFund) (ShopFund, error) {
	result := d.db.WithContext(ctx).Create(&fund)
	if result.Error != nil {
		return ShopFund{}, result.Error
	}

	return fund, nil
}

// FindByShop returns the shop's fund rows, newest first.
func (d *FundDAO) FindByShop(ctx context.Context, shopID string) ([]ShopFund, error) {
	var funds []ShopFund

	result := d.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC, id DESC").
		Find(&funds)
	if result.Error != nil {
		return nil, result.Error
	}

	return funds, nil
}

// FindByShopForUpdate locks every fund row of the shop so the aggregate
// balance check and the deduction that follows see one consistent state.
// Rows are ordered newest first; the head is the deduction target.
func (d *FundDAO) FindByShopForUpdate(ctx context.Context, shopID string) ([]ShopFund, error) {
	var funds []ShopFund

	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("shop_id = ?", shopID).
		Order("created_at DESC, id DESC").
		Find(&funds)
	if result.Error != nil {
		return nil, result.Error
	}

	return funds, nil
}

// AddAmounts applies the two deltas to one fund row in a single UPDATE.
func (d *FundDAO) AddAmounts(ctx context.Context, fundID uint, givenDelta, remainingDelta decimal.Decimal) error {
	result := d.db.WithContext(ctx).
		Model(&ShopFund{}).
		Where("id = ?", fundID).
		Updates(map[string]any{
			"given_amount":     gorm.Expr("given_amount + ?", givenDelta),
			"remaining_amount": gorm.Expr("remaining_amount + ?", remainingDelta),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFundNotFound
	}

	return nil
}
