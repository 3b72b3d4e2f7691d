package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records stock sold to a customer. Unlike purchases, sales never touch
// the shop fund; a borrow sale only tracks what the customer still owes.
type Sale struct {
	ID              uint             `json:"id"`
	ItemID          uint             `json:"item_id"`
	UserID          uint             `json:"user_id"`
	CustomerName    string           `json:"customer_name"`
	CustomerContact string           `json:"customer_contact,omitempty"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	PaymentType     PaymentType      `json:"payment_type"`
	BorrowAmount    *decimal.Decimal `json:"borrow_amount,omitempty"`
	SaleDate        time.Time        `json:"sale_date"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Populated on list reads only.
	ItemName   string `json:"item_name,omitempty"`
	WorkerName string `json:"worker_name,omitempty"`
}

func (s Sale) IsBorrow() bool {
	return s.PaymentType == PaymentBorrow
}

func (s Sale) OutstandingBorrow() decimal.Decimal {
	if s.BorrowAmount == nil {
		return decimal.Zero
	}
	return *s.BorrowAmount
}
