package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

type AddFundRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	GivenBy string          `json:"given_by"`
}

func (req *AddFundRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&req.GivenBy, validation.Length(0, 100)),
	)
}

type AddExpenseRequest struct {
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
}

func (req *AddExpenseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Amount, validation.Required, validation.By(positiveDecimal)),
	)
}
