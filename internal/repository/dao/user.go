package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNameExists = errors.New("user name already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrAdminExists    = errors.New("an admin account already exists")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Role   string `gorm:"not null"` // "admin" or "worker"
	ShopID string `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Worker struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"index;not null"`
	User     User   `gorm:"foreignKey:UserID"`
	Name     string `gorm:"not null"`
	Phone    string
	Position string
	Salary   *decimal.Decimal `gorm:"type:numeric(12,2)"`
	JoinDate time.Time        `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// Insert creates the user, and the linked worker profile when the role is
// "worker". Only one admin account may exist.
func (d *UserDAO) Insert(ctx context.Context, user User, worker *Worker) (User, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.Role == "admin" {
			var count int64
			if err := tx.Model(&User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrAdminExists
			}
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if worker != nil {
			worker.UserID = user.ID
			if err := tx.Create(worker).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.Message, `unique constraint "uni_users_name"`) {
			return User{}, ErrUserNameExists
		}

		return User{}, err
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByName(ctx context.Context, name string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindWorkerIDsByShop returns the user IDs of every worker in the shop.
func (d *UserDAO) FindWorkerIDsByShop(ctx context.Context, shopID string) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).
		Model(&User{}).
		Where("shop_id = ? AND role = ?", shopID, "worker").
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}
