package response

import (
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// ListResponse is the envelope for paginated listings.
type ListResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int64       `json:"totalCount"`
}

type ExpenseResponse struct {
	Expense       domain.WorkerExpense `json:"expense"`
	FundRemaining decimal.Decimal      `json:"fund_remaining"`
}
