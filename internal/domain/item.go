package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is an inventory line owned by a single worker. Stock is only ever
// mutated through the stock manager so it stays equal to the sum of
// recorded purchases minus recorded sales.
type Item struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Purchases []Purchase `json:"purchases,omitempty"`
	Sales     []Sale     `json:"sales,omitempty"`
}

// ItemSummary is the lightweight projection used by pick lists.
type ItemSummary struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Stock decimal.Decimal `json:"stock"`
	Unit  string          `json:"unit"`
}
