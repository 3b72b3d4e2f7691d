package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSaleNotFound = errors.New("sale not found")

type Sale struct {
	ID uint `gorm:"primaryKey"`

	ItemID uint `gorm:"index;not null"`
	Item   Item `gorm:"foreignKey:ItemID"`
	UserID uint `gorm:"index;not null"`
	User   User `gorm:"foreignKey:UserID"`

	CustomerName    string `gorm:"not null"`
	CustomerContact string

	Quantity     decimal.Decimal  `gorm:"type:numeric(14,3);not null"`
	UnitPrice    decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	TotalAmount  decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	PaymentType  string           `gorm:"not null;default:paid"`
	BorrowAmount *decimal.Decimal `gorm:"type:numeric(14,2)"`

	SaleDate time.Time `gorm:"index;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SaleDAO struct {
	db *gorm.DB
}

func NewSaleDAO(db *gorm.DB) *SaleDAO {
	return &SaleDAO{
		db: db,
	}
}

func (d *SaleDAO) WithTx(tx *gorm.DB) *SaleDAO {
	return &SaleDAO{db: tx}
}

func (d *SaleDAO) Insert(ctx context.Context, sale Sale) (Sale, error) {
	result := d.db.WithContext(ctx).Create(&sale)
	if result.Error != nil {
		return Sale{}, result.Error
	}

	return sale, nil
}

func (d *SaleDAO) FindByID(ctx context.Context, id uint) (Sale, error) {
	var sale Sale

	result := d.db.WithContext(ctx).First(&sale, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Sale{}, ErrSaleNotFound
		}

		return Sale{}, result.Error
	}

	return sale, nil
}

func (d *SaleDAO) FindByIDForUpdate(ctx context.Context, id uint) (Sale, error) {
	var sale Sale

	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sale, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Sale{}, ErrSaleNotFound
		}

		return Sale{}, result.Error
	}

	return sale, nil
}

func (d *SaleDAO) Update(ctx context.Context, sale Sale) (Sale, error) {
	result := d.db.WithContext(ctx).
		Model(&Sale{}).
		Where("id = ?", sale.ID).
		Updates(map[string]any{
			"item_id":          sale.ItemID,
			"customer_name":    sale.CustomerName,
			"customer_contact": sale.CustomerContact,
			"quantity":         sale.Quantity,
			"unit_price":       sale.UnitPrice,
			"total_amount":     sale.TotalAmount,
			"payment_type":     sale.PaymentType,
			"borrow_amount":    sale.BorrowAmount,
			"sale_date":        sale.SaleDate,
		})
	if result.Error != nil {
		return Sale{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Sale{}, ErrSaleNotFound
	}

	return d.FindByID(ctx, sale.ID)
}

func (d *SaleDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Sale{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}

	return nil
}

func (d *SaleDAO) FindAll(ctx context.Context, filter RecordFilter) ([]Sale, int64, error) {
	query := d.db.WithContext(ctx).Model(&Sale{})

	if filter.UserIDs != nil {
		query = query.Where("sales.user_id IN ?", filter.UserIDs)
	}
	if filter.From != nil && filter.To != nil {
		query = query.Where("sale_date BETWEEN ? AND ?", *filter.From, *filter.To)
	}
	if filter.wantsPaymentType() {
		query = query.Where("payment_type = ?", filter.PaymentType)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var sales []Sale
	result := query.
		Preload("Item").
		Preload("User").
		Order("sale_date DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&sales)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return sales, totalCount, nil
}
