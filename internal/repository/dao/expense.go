package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WorkerExpense struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"index;not null"`
	User   User `gorm:"foreignKey:UserID"`

	Title  string          `gorm:"not null"`
	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type ExpenseDAO struct {
	db *gorm.DB
}

func NewExpenseDAO(db *gorm.DB) *ExpenseDAO {
	return &ExpenseDAO{
		db: db,
	}
}

func (d *ExpenseDAO) WithTx(tx *gorm.DB) *ExpenseDAO {
	return &ExpenseDAO{db: tx}
}

func (d *ExpenseDAO) Insert(ctx context.Context, expense WorkerExpense) (WorkerExpense, error) {
	result := d.db.WithContext(ctx).Create(&expense)
	if result.Error != nil {
		return WorkerExpense{}, result.Error
	}

	return expense, nil
}

func (d *ExpenseDAO) FindAllByUser(ctx context.Context, userID uint) ([]WorkerExpense, error) {
	var expenses []WorkerExpense

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&expenses)
	if result.Error != nil {
		return nil, result.Error
	}

	return expenses, nil
}

// SumByUsers returns the total expense amount recorded by the given users in
// the date range.
func (d *ExpenseDAO) SumByUsers(ctx context.Context, userIDs []uint, from, to *time.Time) (decimal.Decimal, error) {
	query := d.db.WithContext(ctx).Model(&WorkerExpense{})

	if userIDs != nil {
		query = query.Where("user_id IN ?", userIDs)
	}
	if from != nil && to != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *from, *to)
	}

	var total decimal.NullDecimal
	if err := query.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}
