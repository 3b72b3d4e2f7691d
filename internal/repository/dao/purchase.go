package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

type Purchase struct {
	ID uint `gorm:"primaryKey"`

	ItemID uint `gorm:"index;not null"`
	Item   Item `gorm:"foreignKey:ItemID"`
	UserID uint `gorm:"index;not null"`
	User   User `gorm:"foreignKey:UserID"`

	SupplierName    string `gorm:"not null"`
	SupplierContact string

	Quantity     decimal.Decimal  `gorm:"type:numeric(14,3);not null"`
	UnitPrice    decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	TotalAmount  decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	PaymentType  string           `gorm:"not null;default:paid"`
	BorrowAmount *decimal.Decimal `gorm:"type:numeric(14,2)"`

	PurchaseDate time.Time `gorm:"index;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PurchaseDAO struct {
	db *gorm.DB
}

func NewPurchaseDAO(db *gorm.DB) *PurchaseDAO {
	return &PurchaseDAO{
		db: db,
	}
}

func (d *PurchaseDAO) WithTx(tx *gorm.DB) *PurchaseDAO {
	return &PurchaseDAO{db: tx}
}

func (d *PurchaseDAO) Insert(ctx context.Context, purchase Purchase) (Purchase, error) {
	result := d.db.WithContext(ctx).Create(&purchase)
	if result.Error != nil {
		return Purchase{}, result.Error
	}

	return purchase, nil
}

func (d *PurchaseDAO) FindByID(ctx context.Context, id uint) (Purchase, error) {
	var purchase Purchase

	result := d.db.WithContext(ctx).First(&purchase, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Purchase{}, ErrPurchaseNotFound
		}

		return Purchase{}, result.Error
	}

	return purchase, nil
}

// FindByIDForUpdate locks the purchase row for the duration of the enclosing
// transaction.
func (d *PurchaseDAO) FindByIDForUpdate(ctx context.Context, id uint) (Purchase, error) {
	var purchase Purchase

	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&purchase, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Purchase{}, ErrPurchaseNotFound
		}

		return Purchase{}, result.Error
	}

	return purchase, nil
}

func (d *PurchaseDAO) Update(ctx context.Context, purchase Purchase) (Purchase, error) {
	result := d.db.WithContext(ctx).
		Model(&Purchase{}).
		Where("id = ?", purchase.ID).
		Updates(map[string]any{
			"item_id":          purchase.ItemID,
			"supplier_name":    purchase.SupplierName,
			"supplier_contact": purchase.SupplierContact,
			"quantity":         purchase.Quantity,
			"unit_price":       purchase.UnitPrice,
			"total_amount":     purchase.TotalAmount,
			"payment_type":     purchase.PaymentType,
			"borrow_amount":    purchase.BorrowAmount,
			"purchase_date":    purchase.PurchaseDate,
		})
	if result.Error != nil {
		return Purchase{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Purchase{}, ErrPurchaseNotFound
	}

	return d.FindByID(ctx, purchase.ID)
}

func (d *PurchaseDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Purchase{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPurchaseNotFound
	}

	return nil
}

// FindAll returns one page of purchases matching the filter plus the total
// match count, newest purchase date first.
func (d *PurchaseDAO) FindAll(ctx context.Context, filter RecordFilter) ([]Purchase, int64, error) {
	query := d.db.WithContext(ctx).Model(&Purchase{})

	if filter.UserIDs != nil {
		query = query.Where("purchases.user_id IN ?", filter.UserIDs)
	}
	if filter.From != nil && filter.To != nil {
		query = query.Where("purchase_date BETWEEN ? AND ?", *filter.From, *filter.To)
	}
	if filter.wantsPaymentType() {
		query = query.Where("payment_type = ?", filter.PaymentType)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var purchases []Purchase
	result := query.
		Preload("Item").
		Preload("User").
		Order("purchase_date DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&purchases)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return purchases, totalCount, nil
}
