package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType distinguishes cash settlements from credit ("borrow") ones.
type PaymentType string

const (
	PaymentPaid   PaymentType = "paid"
	PaymentBorrow PaymentType = "borrow"
)

// Purchase records stock bought from a supplier. A borrow purchase carries
// an outstanding BorrowAmount that shrinks with each settlement until the
// record flips to paid.
type Purchase struct {
	ID              uint             `json:"id"`
	ItemID          uint             `json:"item_id"`
	UserID          uint             `json:"user_id"`
	SupplierName    string           `json:"supplier_name"`
	SupplierContact string           `json:"supplier_contact,omitempty"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	PaymentType     PaymentType      `json:"payment_type"`
	BorrowAmount    *decimal.Decimal `json:"borrow_amount,omitempty"`
	PurchaseDate    time.Time        `json:"purchase_date"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Populated on list reads only.
	ItemName   string `json:"item_name,omitempty"`
	WorkerName string `json:"worker_name,omitempty"`
}

func (p Purchase) IsBorrow() bool {
	return p.PaymentType == PaymentBorrow
}

// OutstandingBorrow returns the unpaid credit, zero for paid records.
func (p Purchase) OutstandingBorrow() decimal.Decimal {
	if p.BorrowAmount == nil {
		return decimal.Zero
	}
	return *p.BorrowAmount
}
