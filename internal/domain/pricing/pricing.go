// Package pricing computes resale markups, platform fees and payout splits.
// All functions are pure; money is decimal with round-half-up to 2 places.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Currency is the single currency all amounts are denominated in.
const Currency = "GBP"

var (
	// MaxMarkupPct is the ceiling on resale markup over the original price.
	MaxMarkupPct = decimal.NewFromInt(50)

	platformFeeRate   = decimal.NewFromFloat(0.10)
	protectionFeeRate = decimal.NewFromFloat(0.025)

	maxMarkupMultiplier = decimal.NewFromFloat(1.50)
	hundred             = decimal.NewFromInt(100)
)

var ErrNonPositiveInput = errors.New("original price, asking price and quantity must be positive")

// Quote is the full fee breakdown for a prospective sale.
type Quote struct {
	MarkupPct          decimal.Decimal `json:"markup_pct"`
	IsOverLimit        bool            `json:"is_over_limit"`
	MaxAllowedPrice    decimal.Decimal `json:"max_allowed_price"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	PlatformFee        decimal.Decimal `json:"platform_fee"`
	BuyerProtectionFee decimal.Decimal `json:"buyer_protection_fee"`
	BuyerTotal         decimal.Decimal `json:"buyer_total"`
	SellerReceives     decimal.Decimal `json:"seller_receives"`
}

// money rounds half-up to the cent.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Compute builds a Quote for the given unit prices and quantity.
func Compute(originalPrice, askingPrice decimal.Decimal, quantity int64) (Quote, error) {
	qty := decimal.NewFromInt(quantity)
	if !originalPrice.IsPositive() || !askingPrice.IsPositive() || !qty.IsPositive() {
		return Quote{}, ErrNonPositiveInput
	}

	markupPct := askingPrice.Sub(originalPrice).Div(originalPrice).Mul(hundred)

	subtotal := money(askingPrice.Mul(qty))
	platformFee := money(subtotal.Mul(platformFeeRate))
	protectionFee := money(subtotal.Mul(protectionFeeRate))

	return Quote{
		MarkupPct:          markupPct.Round(2),
		IsOverLimit:        markupPct.GreaterThan(MaxMarkupPct),
		MaxAllowedPrice:    money(originalPrice.Mul(maxMarkupMultiplier)),
		Subtotal:           subtotal,
		PlatformFee:        platformFee,
		BuyerProtectionFee: protectionFee,
		BuyerTotal:         subtotal.Add(platformFee).Add(protectionFee),
		SellerReceives:     subtotal.Sub(platformFee),
	}, nil
}
