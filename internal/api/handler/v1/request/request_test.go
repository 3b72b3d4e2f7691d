package request_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shopkhata/shopkhata-api/internal/api/handler/v1/request"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSignupRequest_Validate(t *testing.T) {
	valid := request.SignupRequest{
		Name:            "ravi",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Role:            "worker",
		ShopID:          "shop-1",
	}
	assert.NoError(t, valid.Validate())

	noDigit := valid
	noDigit.Password = "secretsecret"
	noDigit.ConfirmPassword = "secretsecret"
	assert.Error(t, noDigit.Validate())

	short := valid
	short.Password = "ab1"
	short.ConfirmPassword = "ab1"
	assert.Error(t, short.Validate())

	mismatch := valid
	mismatch.ConfirmPassword = "secret124"
	assert.Error(t, mismatch.Validate())

	noShop := valid
	noShop.ShopID = ""
	assert.Error(t, noShop.Validate())

	badRole := valid
	badRole.Role = "owner"
	assert.Error(t, badRole.Validate())
}

func TestPurchaseRequest_Validate(t *testing.T) {
	valid := request.PurchaseRequest{
		ItemName:    "rice",
		Quantity:    d("2"),
		UnitPrice:   d("500"),
		PaymentType: "paid",
	}
	assert.NoError(t, valid.Validate())

	noItem := valid
	noItem.ItemName = ""
	assert.Error(t, noItem.Validate())

	byID := valid
	byID.ItemName = ""
	byID.ItemID = 7
	assert.NoError(t, byID.Validate())

	zeroQty := valid
	zeroQty.Quantity = decimal.Zero
	assert.Error(t, zeroQty.Validate())

	negPrice := valid
	negPrice.UnitPrice = d("-1")
	assert.Error(t, negPrice.Validate())

	badPayment := valid
	badPayment.PaymentType = "credit"
	assert.Error(t, badPayment.Validate())

	badDate := valid
	badDate.PurchaseDate = "31-01-2026"
	assert.Error(t, badDate.Validate())

	goodDate := valid
	goodDate.PurchaseDate = "2026-01-31"
	assert.NoError(t, goodDate.Validate())
}

func TestSaleRequest_Validate(t *testing.T) {
	valid := request.SaleRequest{
		ItemID:      3,
		Quantity:    d("1.5"),
		UnitPrice:   d("60"),
		PaymentType: "borrow",
	}
	assert.NoError(t, valid.Validate())

	noItem := valid
	noItem.ItemID = 0
	assert.Error(t, noItem.Validate())
}

func TestPayBorrowRequest_Validate(t *testing.T) {
	assert.NoError(t, (&request.PayBorrowRequest{Amount: d("10")}).Validate())
	assert.Error(t, (&request.PayBorrowRequest{Amount: decimal.Zero}).Validate())
	assert.Error(t, (&request.PayBorrowRequest{Amount: d("-5")}).Validate())
}

func TestAddFundRequest_Validate(t *testing.T) {
	assert.NoError(t, (&request.AddFundRequest{Amount: d("5000"), GivenBy: "owner"}).Validate())
	assert.Error(t, (&request.AddFundRequest{Amount: decimal.Zero}).Validate())
}

func TestAddExpenseRequest_Validate(t *testing.T) {
	assert.NoError(t, (&request.AddExpenseRequest{Title: "chai", Amount: d("40")}).Validate())
	assert.Error(t, (&request.AddExpenseRequest{Amount: d("40")}).Validate())
	assert.Error(t, (&request.AddExpenseRequest{Title: "chai", Amount: d("-1")}).Validate())
}
