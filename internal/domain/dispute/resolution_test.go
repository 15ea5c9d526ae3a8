package dispute

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ticketescrow/internal/controller/apperror"
)

func TestResolveAllocation(t *testing.T) {
	t.Parallel()

	// order: total 135, seller payout 108, platform fee 24
	total := decimal.NewFromInt(135)
	payout := decimal.NewFromInt(108)
	fee := decimal.NewFromInt(24)

	amount := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}

	testCases := []struct {
		name           string
		req            ResolveRequest
		expectedRefund decimal.Decimal
		expectedPayout decimal.Decimal
		expectedError  error
	}{
		{
			name:           "buyer favor refunds the full order value",
			req:            ResolveRequest{Outcome: OutcomeBuyerFavor},
			expectedRefund: total,
			expectedPayout: decimal.Zero,
		},
		{
			name:           "seller favor releases the full escrowed payout",
			req:            ResolveRequest{Outcome: OutcomeSellerFavor},
			expectedRefund: decimal.Zero,
			expectedPayout: payout,
		},
		{
			name:           "closed allocates nothing",
			req:            ResolveRequest{Outcome: OutcomeClosed},
			expectedRefund: decimal.Zero,
			expectedPayout: decimal.Zero,
		},
		{
			name: "partial split within the pool",
			req: ResolveRequest{
				Outcome:            OutcomePartial,
				RefundAmount:       amount(50),
				SellerPayoutAmount: amount(50),
			},
			expectedRefund: decimal.NewFromInt(50),
			expectedPayout: decimal.NewFromInt(50),
		},
		{
			name:          "partial without both amounts",
			req:           ResolveRequest{Outcome: OutcomePartial, RefundAmount: amount(50)},
			expectedError: apperror.ErrValidation,
		},
		{
			name: "partial with a negative refund",
			req: ResolveRequest{
				Outcome:            OutcomePartial,
				RefundAmount:       amount(-1),
				SellerPayoutAmount: amount(50),
			},
			expectedError: apperror.ErrValidation,
		},
		{
			name: "partial payout above the escrowed amount",
			req: ResolveRequest{
				Outcome:            OutcomePartial,
				RefundAmount:       amount(10),
				SellerPayoutAmount: amount(109),
			},
			expectedError: apperror.ErrValidation,
		},
		{
			name: "partial split exceeding total minus the retained fee",
			req: ResolveRequest{
				Outcome:            OutcomePartial,
				RefundAmount:       amount(60),
				SellerPayoutAmount: amount(55), // 115 > 135 - 24
			},
			expectedError: apperror.ErrValidation,
		},
		{
			name: "voiding the platform fee widens the pool",
			req: ResolveRequest{
				Outcome:            OutcomePartial,
				RefundAmount:       amount(80),
				SellerPayoutAmount: amount(50), // 130 > 111 retained pool, fine when voided
				VoidPlatformFee:    true,
			},
			expectedRefund: decimal.NewFromInt(80),
			expectedPayout: decimal.NewFromInt(50),
		},
		{
			name: "partial must stay below the full order value even with the fee voided",
			req: ResolveRequest{
				Outcome:            OutcomePartial,
				RefundAmount:       amount(100),
				SellerPayoutAmount: amount(35), // exactly 135
				VoidPlatformFee:    true,
			},
			expectedError: apperror.ErrValidation,
		},
		{
			name:          "unknown outcome",
			req:           ResolveRequest{Outcome: "flip_a_coin"},
			expectedError: apperror.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			alloc, err := ResolveAllocation(tc.req, total, payout, fee)

			// then
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.True(t, alloc.RefundAmount.Equal(tc.expectedRefund),
				"refund %s != %s", alloc.RefundAmount, tc.expectedRefund)
			assert.True(t, alloc.SellerPayoutAmount.Equal(tc.expectedPayout),
				"payout %s != %s", alloc.SellerPayoutAmount, tc.expectedPayout)
		})
	}
}
