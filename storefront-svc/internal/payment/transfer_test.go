package payment

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAccount = BankAccount{BankCode: "MB", AccountNo: "0123456789", AccountName: "NHA HANG BISTRO"}

func TestTransferNote(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		orderID string
		want    string
	}{
		{name: "phone digits", phone: "0901 234-567", orderID: "15", want: "0901234567"},
		{name: "no phone", phone: "", orderID: "15", want: "DH 15"},
		{name: "phone without digits", phone: "n/a", orderID: " 42 ", want: "DH 42"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, TransferNote(testCase.phone, testCase.orderID))
		})
	}
}

func TestTransferImageURL(t *testing.T) {
	got := TransferImageURL(testAccount, decimal.RequireFromString("117000.5"), "DH 15")

	assert.Equal(t,
		"https://img.vietqr.io/image/MB-0123456789-compact2.png?amount=117001&addInfo=DH%2015&accountName=NHA%20HANG%20BISTRO",
		got)
}

func TestTransferImageURL_Deterministic(t *testing.T) {
	amount := decimal.NewFromInt(130000)
	first := TransferImageURL(testAccount, amount, "0901234567")
	second := TransferImageURL(testAccount, amount, "0901234567")

	assert.Equal(t, first, second)
}

func TestTransferImageURL_EscapesReservedCharacters(t *testing.T) {
	account := BankAccount{BankCode: "VCB", AccountNo: "1", Template: "print"}

	got := TransferImageURL(account, decimal.Zero, "a&b=c")

	assert.Equal(t, "https://img.vietqr.io/image/VCB-1-print.png?amount=0&addInfo=a%26b%3Dc", got)
}

func TestPNGGenerator(t *testing.T) {
	png, err := PNGGenerator{}.Generate("https://img.vietqr.io/image/MB-1-compact2.png?amount=1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
