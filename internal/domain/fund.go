package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShopFund is one top-up row in a shop's operating fund. A shop accumulates
// one row per top-up event; the spendable balance is the sum of
// RemainingAmount over all of the shop's rows, never a single row read in
// isolation.
type ShopFund struct {
	ID              uint            `json:"id"`
	ShopID          string          `json:"shop_id"`
	GivenAmount     decimal.Decimal `json:"given_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	GivenBy         string          `json:"given_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// FundBalance is the aggregate view of a shop's fund presented to callers.
type FundBalance struct {
	ShopID         string          `json:"shop_id"`
	TotalGiven     decimal.Decimal `json:"total_given"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	Funds          []ShopFund      `json:"funds"`
}
