package payment

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const vietQRBase = "https://img.vietqr.io/image/"

// BankAccount is the restaurant's receiving account.
type BankAccount struct {
	BankCode    string
	AccountNo   string
	AccountName string
	Template    string
}

// TransferNote is the memo a customer types into the transfer: the order
// phone number when there is one, otherwise "DH {orderID}".
func TransferNote(phone, orderID string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits != "" {
		return digits
	}
	return "DH " + strings.TrimSpace(orderID)
}

// TransferImageURL builds the VietQR image link. The amount is rounded to a
// whole dong; identical inputs always give identical URLs.
func TransferImageURL(account BankAccount, amount decimal.Decimal, note string) string {
	template := account.Template
	if template == "" {
		template = "compact2"
	}
	var b strings.Builder
	b.WriteString(vietQRBase)
	b.WriteString(fmt.Sprintf("%s-%s-%s.png", account.BankCode, account.AccountNo, template))
	b.WriteString("?amount=")
	b.WriteString(amount.Round(0).StringFixed(0))
	b.WriteString("&addInfo=")
	b.WriteString(encodeComponent(note))
	if account.AccountName != "" {
		b.WriteString("&accountName=")
		b.WriteString(encodeComponent(account.AccountName))
	}
	return b.String()
}

// encodeComponent escapes like a browser's encodeURIComponent: spaces become
// %20 instead of '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
