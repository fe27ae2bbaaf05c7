package pricing

import (
	"bistro-storefront/storefront-svc/internal/cart"
	"bistro-storefront/storefront-svc/internal/catalog"
	"bistro-storefront/storefront-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Calculator struct {
	ShippingFee decimal.Decimal
}

func NewCalculator(shippingFee decimal.Decimal) *Calculator {
	return &Calculator{ShippingFee: shippingFee}
}

// Quote prices the cart against the menu. It holds no state between calls, so
// every cart or promotion change needs a fresh Quote.
func (c *Calculator) Quote(items *cart.Cart, menu *catalog.Catalog, promo *domain.Promotion, mode domain.FulfillmentMode) domain.PricingResult {
	return c.QuoteLines(items.Lines(menu), promo, mode)
}

func (c *Calculator) QuoteLines(lines []domain.ResolvedCartLine, promo *domain.Promotion, mode domain.FulfillmentMode) domain.PricingResult {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(cart.LineTotal(line.UnitPrice, line.Quantity))
	}

	discount := Discount(subtotal, promo)

	shipping := decimal.Zero
	if mode == domain.ModeDelivery {
		shipping = c.ShippingFee
	}

	afterDiscount := decimal.Max(decimal.Zero, subtotal.Sub(discount))

	return domain.PricingResult{
		Subtotal:   subtotal,
		Discount:   discount,
		Shipping:   shipping,
		GrandTotal: afterDiscount.Add(shipping).Round(0),
	}
}

// Discount returns the promotion's reduction on subtotal, clamped to [0, subtotal].
func Discount(subtotal decimal.Decimal, promo *domain.Promotion) decimal.Decimal {
	if promo == nil || !subtotal.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch promo.Kind {
	case domain.DiscountPercentage:
		discount = subtotal.Mul(promo.Value).Div(hundred)
	case domain.DiscountFixedAmount:
		discount = promo.Value
	default:
		return decimal.Zero
	}

	if discount.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(discount, subtotal)
}
