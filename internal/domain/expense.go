package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkerExpense is a personal expense drawn against the shop fund.
type WorkerExpense struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
