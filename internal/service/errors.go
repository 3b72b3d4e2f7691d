package service

import (
	"errors"

	"github.com/shopkhata/shopkhata-api/internal/repository"
)

var (
	ErrUserNotFound     = repository.ErrUserNotFound
	ErrItemNotFound     = repository.ErrItemNotFound
	ErrPurchaseNotFound = repository.ErrPurchaseNotFound
	ErrSaleNotFound     = repository.ErrSaleNotFound
	ErrFundNotFound     = repository.ErrFundNotFound

	// ErrNoShop rejects ledger operations from users without a shop binding;
	// every fund and trade row is scoped to a shop.
	ErrNoShop = errors.New("user is not linked to any shop")

	// ErrInsufficientStock rejects a sale whose quantity exceeds the item's
	// on-hand stock at check time.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInsufficientFunds rejects any fund deduction larger than the shop's
	// aggregate remaining balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotBorrow rejects a settlement against a record that carries no
	// outstanding credit.
	ErrNotBorrow = errors.New("record is not a borrow")

	// ErrInvalidPaymentAmount rejects non-positive settlements and
	// settlements exceeding the outstanding borrow amount.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
)
