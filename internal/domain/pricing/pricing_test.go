package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCompute(t *testing.T) {
	t.Parallel()

	t.Run("40 percent markup on a single ticket", func(t *testing.T) {
		// given original=20.00, asking=28.00, qty=1
		quote, err := Compute(dec("20.00"), dec("28.00"), 1)

		// then
		require.NoError(t, err)
		assert.True(t, quote.MarkupPct.Equal(dec("40")))
		assert.False(t, quote.IsOverLimit)
		assert.True(t, quote.PlatformFee.Equal(dec("2.80")), "platform fee %s", quote.PlatformFee)
		assert.True(t, quote.BuyerProtectionFee.Equal(dec("0.70")), "protection fee %s", quote.BuyerProtectionFee)
		assert.True(t, quote.BuyerTotal.Equal(dec("31.50")), "buyer total %s", quote.BuyerTotal)
		assert.True(t, quote.SellerReceives.Equal(dec("25.20")), "seller receives %s", quote.SellerReceives)
	})

	t.Run("55 percent markup is over limit", func(t *testing.T) {
		quote, err := Compute(dec("20.00"), dec("31.00"), 1)

		require.NoError(t, err)
		assert.True(t, quote.MarkupPct.Equal(dec("55")))
		assert.True(t, quote.IsOverLimit)
		assert.True(t, quote.MaxAllowedPrice.Equal(dec("30.00")))
	})

	t.Run("markup of exactly 50 percent is allowed", func(t *testing.T) {
		quote, err := Compute(dec("20.00"), dec("30.00"), 2)

		require.NoError(t, err)
		assert.False(t, quote.IsOverLimit)
	})

	t.Run("rejects non-positive inputs", func(t *testing.T) {
		for _, tc := range []struct {
			name     string
			original string
			asking   string
			qty      int64
		}{
			{"zero original", "0", "10.00", 1},
			{"negative asking", "10.00", "-1.00", 1},
			{"zero quantity", "10.00", "12.00", 0},
		} {
			t.Run(tc.name, func(t *testing.T) {
				_, err := Compute(dec(tc.original), dec(tc.asking), tc.qty)
				assert.ErrorIs(t, err, ErrNonPositiveInput)
			})
		}
	})

	t.Run("money conservation holds for awkward prices", func(t *testing.T) {
		cases := []struct {
			original string
			asking   string
			qty      int64
		}{
			{"19.99", "24.99", 3},
			{"7.77", "9.33", 7},
			{"100.01", "149.99", 2},
			{"0.01", "0.01", 1},
		}

		for _, tc := range cases {
			quote, err := Compute(dec(tc.original), dec(tc.asking), tc.qty)
			require.NoError(t, err)

			// seller_receives + platform_fee == subtotal, to the cent
			assert.True(t, quote.SellerReceives.Add(quote.PlatformFee).Equal(quote.Subtotal),
				"conservation broken for %s x%d", tc.asking, tc.qty)
			// buyer_total == subtotal + both fees
			assert.True(t, quote.BuyerTotal.Equal(quote.Subtotal.Add(quote.PlatformFee).Add(quote.BuyerProtectionFee)))
			// everything is at most 2dp
			assert.LessOrEqual(t, int(quote.BuyerTotal.Exponent())*-1, 2)
		}
	})
}
