package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	ShopID    string    `json:"shop_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Worker is the employment profile attached to a worker user.
type Worker struct {
	ID       uint             `json:"id"`
	UserID   uint             `json:"user_id"`
	Name     string           `json:"name"`
	Phone    string           `json:"phone,omitempty"`
	Position string           `json:"position,omitempty"`
	Salary   *decimal.Decimal `json:"salary,omitempty"`
	JoinDate time.Time        `json:"join_date"`
}
