package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/service"
)

func TestApplyPartialPayment_ReducesOutstanding(t *testing.T) {
	var settler service.BorrowSettler

	settlement, err := settler.ApplyPartialPayment(domain.PaymentBorrow, dec("500"), dec("300"))
	require.NoError(t, err)

	assert.True(t, settlement.BorrowAmount.Equal(dec("200")))
	assert.Equal(t, domain.PaymentBorrow, settlement.PaymentType)
	assert.False(t, settlement.Settled())
}

func TestApplyPartialPayment_ExactPaymentFlipsToPaid(t *testing.T) {
	var settler service.BorrowSettler

	settlement, err := settler.ApplyPartialPayment(domain.PaymentBorrow, dec("200"), dec("200"))
	require.NoError(t, err)

	assert.True(t, settlement.BorrowAmount.IsZero())
	assert.Equal(t, domain.PaymentPaid, settlement.PaymentType)
	assert.True(t, settlement.Settled())
}

func TestApplyPartialPayment_RejectsNonBorrow(t *testing.T) {
	var settler service.BorrowSettler

	_, err := settler.ApplyPartialPayment(domain.PaymentPaid, dec("0"), dec("100"))
	require.ErrorIs(t, err, service.ErrNotBorrow)
}

func TestApplyPartialPayment_RejectsNonPositive(t *testing.T) {
	var settler service.BorrowSettler

	_, err := settler.ApplyPartialPayment(domain.PaymentBorrow, dec("500"), dec("0"))
	require.ErrorIs(t, err, service.ErrInvalidPaymentAmount)

	_, err = settler.ApplyPartialPayment(domain.PaymentBorrow, dec("500"), dec("-10"))
	require.ErrorIs(t, err, service.ErrInvalidPaymentAmount)
}

func TestApplyPartialPayment_RejectsOverpayment(t *testing.T) {
	var settler service.BorrowSettler

	_, err := settler.ApplyPartialPayment(domain.PaymentBorrow, dec("500"), dec("500.01"))
	require.ErrorIs(t, err, service.ErrInvalidPaymentAmount)
}
