package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrItemNotFound = errors.New("item not found")

type Item struct {
	ID uint `gorm:"primaryKey"`

	UserID      uint   `gorm:"index;not null;uniqueIndex:idx_items_owner_name"`
	Name        string `gorm:"not null;uniqueIndex:idx_items_owner_name"`
	Description string
	Category    string          `gorm:"not null;default:general"`
	Unit        string          `gorm:"not null;default:kg"`
	Stock       decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	MinStock    decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`

	Purchases []Purchase `gorm:"foreignKey:ItemID"`
	Sales     []Sale     `gorm:"foreignKey:ItemID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ItemDAO struct {
	db *gorm.DB
}

func NewItemDAO(db *gorm.DB) *ItemDAO {
	return &ItemDAO{
		db: db,
	}
}

// WithTx returns a copy of the DAO bound to the given transaction handle.
func (d *ItemDAO) WithTx(tx *gorm.DB) *ItemDAO {
	return &ItemDAO{db: tx}
}

func (d *ItemDAO) Insert(ctx context.Context, item Item) (Item, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		return Item{}, result.Error
	}

	return item, nil
}

func (d *ItemDAO) FindByID(ctx context.Context, id, userID uint) (Item, error) {
	var item Item

	result := d.db.WithContext(ctx).
		Preload("Purchases").
		Preload("Sales").
		First(&item, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Item{}, ErrItemNotFound
		}

		return Item{}, result.Error
	}

	return item, nil
}

// FindByIDForUpdate loads the item row under a FOR UPDATE lock so stock
// checks and the adjustment that follows are one atomic step.
func (d *ItemDAO) FindByIDForUpdate(ctx context.Context, id uint) (Item, error) {
	var item Item

	result := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Item{}, ErrItemNotFound
		}

		return Item{}, result.Error
	}

	return item, nil
}

func (d *ItemDAO) FindByName(ctx context.Context, userID uint, name string) (Item, error) {
	var item Item

	result := d.db.WithContext(ctx).First(&item, "user_id = ? AND name = ?", userID, name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Item{}, ErrItemNotFound
		}

		return Item{}, result.Error
	}

	return item, nil
}

func (d *ItemDAO) FindAllByUser(ctx context.Context, userID uint) ([]Item, error) {
	var items []Item

	result := d.db.WithContext(ctx).
		Preload("Purchases").
		Preload("Sales").
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

func (d *ItemDAO) FindNamesAndStock(ctx context.Context, userID uint) ([]Item, error) {
	var items []Item

	result := d.db.WithContext(ctx).
		Select("id", "name", "stock", "unit").
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

func (d *ItemDAO) Update(ctx context.Context, item Item) (Item, error) {
	result := d.db.WithContext(ctx).
		Model(&Item{}).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Updates(map[string]any{
			"name":        item.Name,
			"description": item.Description,
			"category":    item.Category,
			"unit":        item.Unit,
			"min_stock":   item.MinStock,
		})
	if result.Error != nil {
		return Item{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Item{}, ErrItemNotFound
	}

	return d.FindByID(ctx, item.ID, item.UserID)
}

// AdjustStock applies delta to the item's stock in a single UPDATE.
func (d *ItemDAO) AdjustStock(ctx context.Context, itemID uint, delta decimal.Decimal) error {
	result := d.db.WithContext(ctx).
		Model(&Item{}).
		Where("id = ?", itemID).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
