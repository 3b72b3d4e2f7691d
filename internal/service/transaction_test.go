package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/service"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)

	return &d
}

var (
	worker = domain.User{ID: 1, Name: "ravi", Role: domain.RoleWorker, ShopID: "shop-1"}
	admin  = domain.User{ID: 2, Name: "admin", Role: domain.RoleAdmin, ShopID: "shop-1"}
)

func newTestService(t *testing.T) (*service.TransactionService, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	users := fakeUsers{users: map[uint]domain.User{
		worker.ID: worker,
		admin.ID:  admin,
	}}

	return service.NewTransactionService(store, users), store
}

func seedFund(t *testing.T, svc *service.TransactionService, amount string) {
	t.Helper()

	_, err := svc.TopUpFund(context.Background(), worker, dec(amount), "owner")
	require.NoError(t, err)
}

func seedItem(t *testing.T, store *fakeStore, name, stock string) domain.Item {
	t.Helper()

	item, err := store.CreateItem(context.Background(), domain.Item{
		UserID: worker.ID,
		Name:   name,
		Unit:   "kg",
		Stock:  dec(stock),
	})
	require.NoError(t, err)

	return item
}

func fundRemaining(t *testing.T, store *fakeStore, shopID string) decimal.Decimal {
	t.Helper()

	rows, err := store.FundRows(context.Background(), shopID)
	require.NoError(t, err)

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.RemainingAmount)
	}

	return total
}

func stockOf(t *testing.T, store *fakeStore, itemID uint) decimal.Decimal {
	t.Helper()

	item, err := store.ItemForUpdate(context.Background(), itemID)
	require.NoError(t, err)

	return item.Stock
}

func TestCreatePurchase_PaidDeductsFundAndRaisesStock(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "5000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("2"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	assert.True(t, purchase.TotalAmount.Equal(dec("1000")))
	assert.Nil(t, purchase.BorrowAmount)
	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("4000")))
	assert.True(t, stockOf(t, store, item.ID).Equal(dec("2")))
}

func TestCreatePurchase_InsufficientFundsLeavesNothingBehind(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "500")
	item := seedItem(t, store, "rice", "3")

	_, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("2"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentPaid,
	})
	require.ErrorIs(t, err, service.ErrInsufficientFunds)

	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("500")))
	assert.True(t, stockOf(t, store, item.ID).Equal(dec("3")))
}

func TestCreatePurchase_NoFundAtAll(t *testing.T) {
	svc, store := newTestService(t)
	item := seedItem(t, store, "rice", "0")

	_, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("1"),
		UnitPrice:   dec("100"),
		PaymentType: domain.PaymentPaid,
	})
	require.ErrorIs(t, err, service.ErrFundNotFound)
}

func TestCreatePurchase_BorrowSkipsFundAndDefaultsToFullTotal(t *testing.T) {
	svc, store := newTestService(t)
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("5"),
		UnitPrice:   dec("100"),
		PaymentType: domain.PaymentBorrow,
	})
	require.NoError(t, err)

	require.NotNil(t, purchase.BorrowAmount)
	assert.True(t, purchase.BorrowAmount.Equal(dec("500")))
	assert.True(t, fundRemaining(t, store, "shop-1").IsZero())
	assert.True(t, stockOf(t, store, item.ID).Equal(dec("5")))
}

func TestCreatePurchase_PartialBorrowKeepsRequestedAmount(t *testing.T) {
	svc, store := newTestService(t)
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:       item.ID,
		Quantity:     dec("5"),
		UnitPrice:    dec("100"),
		PaymentType:  domain.PaymentBorrow,
		BorrowAmount: decPtr("200"),
	})
	require.NoError(t, err)

	require.NotNil(t, purchase.BorrowAmount)
	assert.True(t, purchase.BorrowAmount.Equal(dec("200")))
}

func TestCreatePurchase_UnknownItemNameCreatesItem(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "1000")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemName:    "jaggery",
		Unit:        "kg",
		Quantity:    dec("4"),
		UnitPrice:   dec("50"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	item, err := store.ItemByName(context.Background(), worker.ID, "jaggery")
	require.NoError(t, err)
	assert.Equal(t, item.ID, purchase.ItemID)
	assert.True(t, item.Stock.Equal(dec("4")))
}

func TestCreatePurchase_OtherWorkersItemRejected(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "1000")

	foreign, err := store.CreateItem(context.Background(), domain.Item{UserID: 99, Name: "salt"})
	require.NoError(t, err)

	_, err = svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      foreign.ID,
		Quantity:    dec("1"),
		UnitPrice:   dec("10"),
		PaymentType: domain.PaymentPaid,
	})
	require.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestCreateSale_InsufficientStockRejected(t *testing.T) {
	svc, store := newTestService(t)
	item := seedItem(t, store, "rice", "5")

	_, err := svc.CreateSale(context.Background(), worker, service.SaleInput{
		ItemID:      item.ID,
		Quantity:    dec("7"),
		UnitPrice:   dec("60"),
		PaymentType: domain.PaymentPaid,
	})
	require.ErrorIs(t, err, service.ErrInsufficientStock)

	assert.True(t, stockOf(t, store, item.ID).Equal(dec("5")))
}

func TestCreateSale_DecrementsStockWithoutTouchingFund(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "1000")
	item := seedItem(t, store, "rice", "5")

	sale, err := svc.CreateSale(context.Background(), worker, service.SaleInput{
		ItemID:      item.ID,
		Quantity:    dec("3"),
		UnitPrice:   dec("60"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	assert.True(t, sale.TotalAmount.Equal(dec("180")))
	assert.True(t, stockOf(t, store, item.ID).Equal(dec("2")))
	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("1000")))
}

func TestPayPurchaseBorrow_InstallmentsFlipToPaidAtZero(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "5000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("5"),
		UnitPrice:   dec("100"),
		PaymentType: domain.PaymentBorrow,
	})
	require.NoError(t, err)

	after300, err := svc.PayPurchaseBorrow(context.Background(), worker, purchase.ID, dec("300"))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentBorrow, after300.PaymentType)
	require.NotNil(t, after300.BorrowAmount)
	assert.True(t, after300.BorrowAmount.Equal(dec("200")))
	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("4700")))

	after200, err := svc.PayPurchaseBorrow(context.Background(), worker, purchase.ID, dec("200"))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, after200.PaymentType)
	require.NotNil(t, after200.BorrowAmount)
	assert.True(t, after200.BorrowAmount.IsZero())
	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("4500")))
}

func TestPayPurchaseBorrow_OverpaymentRejected(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "5000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("1"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentBorrow,
	})
	require.NoError(t, err)

	_, err = svc.PayPurchaseBorrow(context.Background(), worker, purchase.ID, dec("600"))
	require.ErrorIs(t, err, service.ErrInvalidPaymentAmount)

	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("5000")))
}

func TestPayPurchaseBorrow_InsufficientFundRejectsInstallment(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "100")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("1"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentBorrow,
	})
	require.NoError(t, err)

	_, err = svc.PayPurchaseBorrow(context.Background(), worker, purchase.ID, dec("300"))
	require.ErrorIs(t, err, service.ErrInsufficientFunds)

	refetched, err := store.PurchaseForUpdate(context.Background(), purchase.ID)
	require.NoError(t, err)
	assert.True(t, refetched.BorrowAmount.Equal(dec("500")))
	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("100")))
}

func TestPaySaleBorrow_NeverTouchesFund(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "1000")
	item := seedItem(t, store, "rice", "10")

	sale, err := svc.CreateSale(context.Background(), worker, service.SaleInput{
		ItemID:      item.ID,
		Quantity:    dec("5"),
		UnitPrice:   dec("100"),
		PaymentType: domain.PaymentBorrow,
	})
	require.NoError(t, err)

	settled, err := svc.PaySaleBorrow(context.Background(), worker, sale.ID, dec("500"))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, settled.PaymentType)
	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("1000")))
}

func TestPayBorrow_OnPaidRecordRejected(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "5000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("1"),
		UnitPrice:   dec("100"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	_, err = svc.PayPurchaseBorrow(context.Background(), worker, purchase.ID, dec("50"))
	require.ErrorIs(t, err, service.ErrNotBorrow)
}

func TestDeletePurchase_RefundsFundAndReversesStock(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "5000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("2"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)
	require.True(t, fundRemaining(t, store, "shop-1").Equal(dec("4000")))

	require.NoError(t, svc.DeletePurchase(context.Background(), worker, purchase.ID))

	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("5000")))
	assert.True(t, stockOf(t, store, item.ID).IsZero())
}

func TestDeletePurchase_BorrowDoesNotRefund(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "1000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("2"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentBorrow,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePurchase(context.Background(), worker, purchase.ID))

	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("1000")))
	assert.True(t, stockOf(t, store, item.ID).IsZero())
}

func TestDeleteSale_RestoresStock(t *testing.T) {
	svc, store := newTestService(t)
	item := seedItem(t, store, "rice", "5")

	sale, err := svc.CreateSale(context.Background(), worker, service.SaleInput{
		ItemID:      item.ID,
		Quantity:    dec("3"),
		UnitPrice:   dec("60"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)
	require.True(t, stockOf(t, store, item.ID).Equal(dec("2")))

	require.NoError(t, svc.DeleteSale(context.Background(), worker, sale.ID))

	assert.True(t, stockOf(t, store, item.ID).Equal(dec("5")))
}

func TestUpdatePurchase_ChargesFundByTheDelta(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "5000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("2"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)
	require.True(t, fundRemaining(t, store, "shop-1").Equal(dec("4000")))

	updated, err := svc.UpdatePurchase(context.Background(), worker, purchase.ID, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("3"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	assert.True(t, updated.TotalAmount.Equal(dec("1500")))
	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("3500")))
	assert.True(t, stockOf(t, store, item.ID).Equal(dec("3")))
}

func TestUpdatePurchase_ShrinkingRefundsTheDifference(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "5000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("4"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)
	require.True(t, fundRemaining(t, store, "shop-1").Equal(dec("3000")))

	_, err = svc.UpdatePurchase(context.Background(), worker, purchase.ID, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("1"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("4500")))
	assert.True(t, stockOf(t, store, item.ID).Equal(dec("1")))
}

func TestUpdatePurchase_SwitchToBorrowRefundsFullCharge(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "2000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("2"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)
	require.True(t, fundRemaining(t, store, "shop-1").Equal(dec("1000")))

	updated, err := svc.UpdatePurchase(context.Background(), worker, purchase.ID, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("2"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentBorrow,
	})
	require.NoError(t, err)

	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("2000")))
	require.NotNil(t, updated.BorrowAmount)
	assert.True(t, updated.BorrowAmount.Equal(dec("1000")))
}

func TestUpdatePurchase_ItemChangeMovesStockBetweenItems(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "5000")
	rice := seedItem(t, store, "rice", "0")
	wheat := seedItem(t, store, "wheat", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      rice.ID,
		Quantity:    dec("2"),
		UnitPrice:   dec("100"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	_, err = svc.UpdatePurchase(context.Background(), worker, purchase.ID, service.PurchaseInput{
		ItemID:      wheat.ID,
		Quantity:    dec("3"),
		UnitPrice:   dec("100"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	assert.True(t, stockOf(t, store, rice.ID).IsZero())
	assert.True(t, stockOf(t, store, wheat.ID).Equal(dec("3")))
}

func TestUpdateSale_OldQuantityCountsAsAvailable(t *testing.T) {
	svc, store := newTestService(t)
	item := seedItem(t, store, "rice", "5")

	sale, err := svc.CreateSale(context.Background(), worker, service.SaleInput{
		ItemID:      item.ID,
		Quantity:    dec("4"),
		UnitPrice:   dec("60"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)
	require.True(t, stockOf(t, store, item.ID).Equal(dec("1")))

	// 5 > 1 on-hand, but the old 4 come back first.
	_, err = svc.UpdateSale(context.Background(), worker, sale.ID, service.SaleInput{
		ItemID:      item.ID,
		Quantity:    dec("5"),
		UnitPrice:   dec("60"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)
	assert.True(t, stockOf(t, store, item.ID).IsZero())

	_, err = svc.UpdateSale(context.Background(), worker, sale.ID, service.SaleInput{
		ItemID:      item.ID,
		Quantity:    dec("6"),
		UnitPrice:   dec("60"),
		PaymentType: domain.PaymentPaid,
	})
	require.ErrorIs(t, err, service.ErrInsufficientStock)
}

func TestUpdateSale_OtherWorkersItemRejected(t *testing.T) {
	svc, store := newTestService(t)
	item := seedItem(t, store, "rice", "10")

	foreign, err := store.CreateItem(context.Background(), domain.Item{
		UserID: 99,
		Name:   "salt",
		Stock:  dec("8"),
	})
	require.NoError(t, err)

	sale, err := svc.CreateSale(context.Background(), worker, service.SaleInput{
		ItemID:      item.ID,
		Quantity:    dec("3"),
		UnitPrice:   dec("60"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	// Pointing the sale at another worker's item must not drain their stock.
	_, err = svc.UpdateSale(context.Background(), worker, sale.ID, service.SaleInput{
		ItemID:      foreign.ID,
		Quantity:    dec("3"),
		UnitPrice:   dec("60"),
		PaymentType: domain.PaymentPaid,
	})
	require.ErrorIs(t, err, service.ErrItemNotFound)

	assert.True(t, stockOf(t, store, foreign.ID).Equal(dec("8")))
	assert.True(t, stockOf(t, store, item.ID).Equal(dec("7")))
}

func TestCreatePurchase_BorrowAboveTotalRejected(t *testing.T) {
	svc, store := newTestService(t)
	item := seedItem(t, store, "rice", "0")

	_, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:       item.ID,
		Quantity:     dec("1"),
		UnitPrice:    dec("500"),
		PaymentType:  domain.PaymentBorrow,
		BorrowAmount: decPtr("10000"),
	})
	require.ErrorIs(t, err, service.ErrInvalidPaymentAmount)

	assert.True(t, stockOf(t, store, item.ID).IsZero())
}

func TestCreatePurchase_NonPositiveBorrowRejected(t *testing.T) {
	svc, store := newTestService(t)
	item := seedItem(t, store, "rice", "0")

	_, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:       item.ID,
		Quantity:     dec("1"),
		UnitPrice:    dec("500"),
		PaymentType:  domain.PaymentBorrow,
		BorrowAmount: decPtr("0"),
	})
	require.ErrorIs(t, err, service.ErrInvalidPaymentAmount)

	assert.True(t, stockOf(t, store, item.ID).IsZero())
}

func TestUpdateSale_BorrowAboveTotalRejected(t *testing.T) {
	svc, store := newTestService(t)
	item := seedItem(t, store, "rice", "10")

	sale, err := svc.CreateSale(context.Background(), worker, service.SaleInput{
		ItemID:      item.ID,
		Quantity:    dec("2"),
		UnitPrice:   dec("100"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	_, err = svc.UpdateSale(context.Background(), worker, sale.ID, service.SaleInput{
		ItemID:       item.ID,
		Quantity:     dec("2"),
		UnitPrice:    dec("100"),
		PaymentType:  domain.PaymentBorrow,
		BorrowAmount: decPtr("900"),
	})
	require.ErrorIs(t, err, service.ErrInvalidPaymentAmount)

	refetched, err := store.SaleForUpdate(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, refetched.PaymentType)
	assert.True(t, stockOf(t, store, item.ID).Equal(dec("8")))
}

func TestWorkerCannotTouchAnotherWorkersRecord(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "5000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("1"),
		UnitPrice:   dec("100"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	other := domain.User{ID: 3, Role: domain.RoleWorker, ShopID: "shop-2"}
	err = svc.DeletePurchase(context.Background(), other, purchase.ID)
	require.ErrorIs(t, err, service.ErrPurchaseNotFound)

	_, err = store.PurchaseForUpdate(context.Background(), purchase.ID)
	assert.NoError(t, err)
}

func TestAdminOperatesOnOwnersShopFund(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "5000")
	item := seedItem(t, store, "rice", "0")

	purchase, err := svc.CreatePurchase(context.Background(), worker, service.PurchaseInput{
		ItemID:      item.ID,
		Quantity:    dec("2"),
		UnitPrice:   dec("500"),
		PaymentType: domain.PaymentPaid,
	})
	require.NoError(t, err)

	// Admin deletes the worker's purchase; the refund lands in the
	// worker's shop fund.
	require.NoError(t, svc.DeletePurchase(context.Background(), admin, purchase.ID))
	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("5000")))
}

func TestTopUpFund_ExtendsNewestRow(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "3000")
	seedFund(t, svc, "2000")

	balance, err := svc.FundBalance(context.Background(), worker)
	require.NoError(t, err)

	assert.True(t, balance.TotalGiven.Equal(dec("5000")))
	assert.True(t, balance.TotalRemaining.Equal(dec("5000")))
	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("5000")))
}

func TestTopUpFund_WithoutShopRejected(t *testing.T) {
	svc, _ := newTestService(t)

	homeless := domain.User{ID: 9, Role: domain.RoleWorker}
	_, err := svc.TopUpFund(context.Background(), homeless, dec("100"), "x")
	require.ErrorIs(t, err, service.ErrNoShop)
}

func TestAddWorkerExpense_DeductsAndReportsRemaining(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "1000")

	expense, remaining, err := svc.AddWorkerExpense(context.Background(), worker, "chai", dec("40"))
	require.NoError(t, err)

	assert.Equal(t, "chai", expense.Title)
	assert.True(t, remaining.Equal(dec("960")))
	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("960")))
}

func TestAddWorkerExpense_InsufficientFundRejected(t *testing.T) {
	svc, store := newTestService(t)
	seedFund(t, svc, "30")

	_, _, err := svc.AddWorkerExpense(context.Background(), worker, "chai", dec("40"))
	require.ErrorIs(t, err, service.ErrInsufficientFunds)

	assert.True(t, fundRemaining(t, store, "shop-1").Equal(dec("30")))
}
