package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-api/internal/domain"
)

// Settlement is the state a borrow record moves to after a partial payment.
type Settlement struct {
	BorrowAmount decimal.Decimal
	PaymentType  domain.PaymentType
}

// Settled reports whether the payment cleared the whole borrow.
func (s Settlement) Settled() bool {
	return s.PaymentType == domain.PaymentPaid
}

// BorrowSettler computes borrow state transitions. It is pure: the
// orchestrator applies the resulting Settlement to the record and performs
// any fund deduction that goes with it.
type BorrowSettler struct{}

// ApplyPartialPayment reduces the outstanding borrow by amount. The record
// flips to paid exactly when the remaining borrow reaches zero. Payments
// must be positive and must not exceed the outstanding amount.
func (BorrowSettler) ApplyPartialPayment(paymentType domain.PaymentType, outstanding, amount decimal.Decimal) (Settlement, error) {
	if paymentType != domain.PaymentBorrow {
		return Settlement{}, fmt.Errorf("payment type %q: %w", paymentType, ErrNotBorrow)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Settlement{}, fmt.Errorf("payment ₹%s is not positive: %w", amount, ErrInvalidPaymentAmount)
	}
	if amount.GreaterThan(outstanding) {
		return Settlement{}, fmt.Errorf("payment ₹%s exceeds outstanding ₹%s: %w", amount, outstanding, ErrInvalidPaymentAmount)
	}

	remaining := outstanding.Sub(amount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	settlement := Settlement{
		BorrowAmount: remaining,
		PaymentType:  domain.PaymentBorrow,
	}
	if remaining.IsZero() {
		settlement.PaymentType = domain.PaymentPaid
	}

	return settlement, nil
}
