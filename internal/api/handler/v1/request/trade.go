package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var errMissingItem = errors.New("either item_id or item_name is required")

// PurchaseRequest covers both purchase creation and update. The item is
// given by ID or by name; an unknown name creates the item on the fly.
type PurchaseRequest struct {
	ItemID          uint             `json:"item_id"`
	ItemName        string           `json:"item_name"`
	Unit            string           `json:"unit"`
	SupplierName    string           `json:"supplier_name"`
	SupplierContact string           `json:"supplier_contact"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	PaymentType     string           `json:"payment_type"`
	BorrowAmount    *decimal.Decimal `json:"borrow_amount"`
	PurchaseDate    string           `json:"purchase_date"`
}

func (req *PurchaseRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.ItemName, validation.Length(0, 100)),
		validation.Field(&req.Quantity, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&req.UnitPrice, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&req.PaymentType, validation.Required, validation.In("paid", "borrow")),
		validation.Field(&req.PurchaseDate, validation.Date("2006-01-02")),
	)
	if err != nil {
		return err
	}

	if req.ItemID == 0 && req.ItemName == "" {
		return errMissingItem
	}

	return nil
}

// SaleRequest covers both sale creation and update. Sales always reference
// an existing item.
type SaleRequest struct {
	ItemID          uint             `json:"item_id"`
	CustomerName    string           `json:"customer_name"`
	CustomerContact string           `json:"customer_contact"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	PaymentType     string           `json:"payment_type"`
	BorrowAmount    *decimal.Decimal `json:"borrow_amount"`
	SaleDate        string           `json:"sale_date"`
}

func (req *SaleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ItemID, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&req.UnitPrice, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&req.PaymentType, validation.Required, validation.In("paid", "borrow")),
		validation.Field(&req.SaleDate, validation.Date("2006-01-02")),
	)
}

// PayBorrowRequest is one installment against a borrow record.
type PayBorrowRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (req *PayBorrowRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.By(positiveDecimal)),
	)
}

func positiveDecimal(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return errors.New("must be a decimal number")
	}

	if !d.IsPositive() {
		return errors.New("must be greater than zero")
	}

	return nil
}
