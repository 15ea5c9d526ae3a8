package dispute

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ticketescrow/internal/controller/apperror"
)

// ResolveRequest is the reviewer's resolution input.
type ResolveRequest struct {
	Outcome            Outcome          `json:"outcome" binding:"required"`
	Notes              string           `json:"notes"`
	RefundAmount       *decimal.Decimal `json:"refund_amount,omitempty"`
	SellerPayoutAmount *decimal.Decimal `json:"seller_payout_amount,omitempty"`
	// VoidPlatformFee releases the retained platform fee back into the
	// allocatable pool. Off by default: the fee is never refunded in partial
	// outcomes unless explicitly voided.
	VoidPlatformFee bool `json:"void_platform_fee"`
}

// Allocation is the validated money split a resolution produces.
type Allocation struct {
	RefundAmount       decimal.Decimal
	SellerPayoutAmount decimal.Decimal
}

// SettlementAllocation rebuilds the recorded split so the settlement sweep
// can replay the money moves.
func (d *Dispute) SettlementAllocation() Allocation {
	var alloc Allocation
	if d.RefundAmount != nil {
		alloc.RefundAmount = *d.RefundAmount
	}
	if d.SellerPayoutAmount != nil {
		alloc.SellerPayoutAmount = *d.SellerPayoutAmount
	}
	return alloc
}

// ResolveAllocation validates the reviewer's request against the order's
// financials and returns the binding split.
//
// Invariant: refund + seller_payout <= total - retained_platform_fee, where
// the retained fee is zero when explicitly voided.
func ResolveAllocation(req ResolveRequest, orderTotal, sellerPayout, platformFee decimal.Decimal) (Allocation, error) {
	retainedFee := platformFee
	if req.VoidPlatformFee {
		retainedFee = decimal.Zero
	}
	pool := orderTotal.Sub(retainedFee)

	switch req.Outcome {
	case OutcomeBuyerFavor:
		// Full allocation to the buyer: the whole amount they paid.
		return Allocation{RefundAmount: orderTotal, SellerPayoutAmount: decimal.Zero}, nil

	case OutcomeSellerFavor:
		// Full allocation to the seller: their escrowed payout.
		return Allocation{RefundAmount: decimal.Zero, SellerPayoutAmount: sellerPayout}, nil

	case OutcomePartial:
		if req.RefundAmount == nil || req.SellerPayoutAmount == nil {
			return Allocation{}, fmt.Errorf("%w: partial resolution requires both refund_amount and seller_payout_amount", apperror.ErrValidation)
		}
		refund := *req.RefundAmount
		payout := *req.SellerPayoutAmount

		if refund.IsNegative() || refund.GreaterThan(orderTotal) {
			return Allocation{}, fmt.Errorf("%w: refund_amount must be within [0, %s]", apperror.ErrValidation, orderTotal)
		}
		if payout.IsNegative() || payout.GreaterThan(sellerPayout) {
			return Allocation{}, fmt.Errorf("%w: seller_payout_amount must be within [0, %s]", apperror.ErrValidation, sellerPayout)
		}
		if refund.Add(payout).GreaterThan(pool) {
			return Allocation{}, fmt.Errorf("%w: refund + payout %s exceeds allocatable %s",
				apperror.ErrValidation, refund.Add(payout), pool)
		}
		if refund.Add(payout).GreaterThanOrEqual(orderTotal) {
			return Allocation{}, fmt.Errorf("%w: partial resolution must sum to less than the full order value", apperror.ErrValidation)
		}
		return Allocation{RefundAmount: refund, SellerPayoutAmount: payout}, nil

	case OutcomeClosed:
		return Allocation{RefundAmount: decimal.Zero, SellerPayoutAmount: decimal.Zero}, nil

	default:
		return Allocation{}, fmt.Errorf("%w: unknown outcome %q", apperror.ErrValidation, req.Outcome)
	}
}
